package interceptor

import (
	"golang.org/x/net/html"

	"shroud/internal/domain"
)

// Frame is the rendering slot for the displayed page. It owns at most one
// container at a time and keeps exactly one set of listeners attached to it.
type Frame struct {
	nav       Navigator
	container *Container
	page      domain.Page
	detach    func()
}

// NewFrame creates an empty frame routing intercepted navigations to nav
func NewFrame(nav Navigator) *Frame {
	return &Frame{nav: nav}
}

// Load installs page into the frame. The previous container's listeners are
// removed before the new markup is attached. An empty page unloads the frame.
func (f *Frame) Load(page domain.Page) error {
	if page.IsEmpty() {
		f.Unload()
		return nil
	}
	if f.container != nil && f.page == page {
		return nil
	}

	c, err := NewContainer(page.HTML)
	if err != nil {
		return err
	}

	f.Unload()
	f.container = c
	f.page = page
	f.detach = Attach(c, f.nav, page.URL)
	return nil
}

// Unload detaches listeners and tears down the current container
func (f *Frame) Unload() {
	if f.detach != nil {
		f.detach()
		f.detach = nil
	}
	if f.container != nil {
		f.container.Close()
		f.container = nil
	}
	f.page = domain.Page{}
}

// Container returns the displayed container, nil when empty
func (f *Frame) Container() *Container {
	return f.container
}

// Page returns the displayed page
func (f *Frame) Page() domain.Page {
	return f.page
}

// Click dispatches a click on n inside the displayed page
func (f *Frame) Click(n *html.Node) bool {
	if f.container == nil {
		return false
	}
	return f.container.Dispatch(EventClick, n)
}

// Submit dispatches a submit from n, a form or any element inside one
func (f *Frame) Submit(n *html.Node) bool {
	if f.container == nil {
		return false
	}
	return f.container.Dispatch(EventSubmit, n)
}
