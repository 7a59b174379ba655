package domain

// MaxResults is the number of search results kept for display
const MaxResults = 10

// SearchResult is a single hit returned by the backend search index
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// Page is a proxied document as returned by the backend
type Page struct {
	URL  string `json:"url"`
	HTML string `json:"html"` // sanitized server-side, rendered verbatim
}

// IsEmpty reports whether the page holds no displayable markup
func (p Page) IsEmpty() bool {
	return p.HTML == ""
}

// InputKind tells whether omnibox input is navigable or a search
type InputKind int

const (
	InputSearchTerm InputKind = iota
	InputURL
)

func (k InputKind) String() string {
	switch k {
	case InputURL:
		return "url"
	default:
		return "search"
	}
}

// ClassifiedInput is omnibox input tagged with its kind
type ClassifiedInput struct {
	Kind  InputKind
	Value string
}

// IsURL reports whether the input should be opened through the proxy
func (c ClassifiedInput) IsURL() bool {
	return c.Kind == InputURL
}
