package controller

import "shroud/internal/domain"

// Content is what the main area shows. Exactly one variant is active, so
// results and a page can never be displayed together.
type Content interface {
	isContent()
}

// Idle shows nothing but the hint
type Idle struct{}

// Results holds the search results in backend order
type Results struct {
	Items []domain.SearchResult
}

// PageView holds the displayed proxied page
type PageView struct {
	Page domain.Page
}

func (Idle) isContent()     {}
func (Results) isContent()  {}
func (PageView) isContent() {}

// ViewState is the whole visible state of the controller. It is replaced as a
// unit on every transition.
type ViewState struct {
	Query   string
	Loading bool
	Err     string
	Content Content
}

// NewViewState returns the initial, empty state
func NewViewState() ViewState {
	return ViewState{Content: Idle{}}
}

// Results returns the displayed results, nil unless the results view is active
func (s ViewState) Results() []domain.SearchResult {
	if r, ok := s.Content.(Results); ok {
		return r.Items
	}
	return nil
}

// Page returns the displayed page, empty unless the page view is active
func (s ViewState) Page() domain.Page {
	if p, ok := s.Content.(PageView); ok {
		return p.Page
	}
	return domain.Page{}
}

// ShowingPage reports whether a page is displayed
func (s ViewState) ShowingPage() bool {
	_, ok := s.Content.(PageView)
	return ok
}

// clone copies the state so callers cannot reach the controller's slices
func (s ViewState) clone() ViewState {
	if r, ok := s.Content.(Results); ok {
		items := make([]domain.SearchResult, len(r.Items))
		copy(items, r.Items)
		s.Content = Results{Items: items}
	}
	return s
}
