// Package classifier decides whether omnibox input is a URL to open through
// the proxy or a query for the search index.
package classifier

import (
	"net/url"

	"shroud/internal/domain"
)

// Classify tags input as a URL only when it parses as an absolute http(s) URL.
// Anything else, including unparsable input and other schemes such as file:
// or javascript:, is a search term.
func Classify(input string) domain.ClassifiedInput {
	if isHTTPURL(input) {
		return domain.ClassifiedInput{Kind: domain.InputURL, Value: input}
	}
	return domain.ClassifiedInput{Kind: domain.InputSearchTerm, Value: input}
}

func isHTTPURL(input string) bool {
	u, err := url.Parse(input)
	if err != nil || !u.IsAbs() {
		return false
	}
	// url.Parse lowercases the scheme. Opaque and hostless forms such as
	// "http:example.com" still count; the value is passed on verbatim.
	return u.Scheme == "http" || u.Scheme == "https"
}
