package backend

import (
	"net/url"
	"strconv"
	"strings"

	"shroud/internal/domain"
)

// Endpoints builds backend addresses from a base URL
type Endpoints struct {
	base string
}

// NewEndpoints strips one trailing slash from base, as the web client did
func NewEndpoints(base string) Endpoints {
	return Endpoints{base: strings.TrimSuffix(base, "/")}
}

// Base returns the normalized backend address
func (e Endpoints) Base() string {
	return e.base
}

// Search is GET {base}/search?q=<term>&limit=10
func (e Endpoints) Search(term string) string {
	return e.base + "/search?q=" + encodeComponent(term) + "&limit=" + strconv.Itoa(domain.MaxResults)
}

// Proxy is GET {base}/proxy?url=<target>
func (e Endpoints) Proxy(target string) string {
	return e.base + "/proxy?url=" + encodeComponent(target)
}

// Resource is GET {base}/resource?url=<target>, reserved for sub-resources of proxied pages
func (e Endpoints) Resource(target string) string {
	return e.base + "/resource?url=" + encodeComponent(target)
}

// Reset is POST {base}/session/reset
func (e Endpoints) Reset() string {
	return e.base + "/session/reset"
}

// componentUnescapes turns url.QueryEscape output into encodeURIComponent
// output. QueryEscape never emits '%' except as an escape, so the
// replacements cannot misfire.
var componentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent escapes s like encodeURIComponent: spaces as %20 and
// !'()*~ left alone
func encodeComponent(s string) string {
	return componentUnescapes.Replace(url.QueryEscape(s))
}
