// Package interceptor keeps navigation inside proxied pages routed through the
// proxy. A Container holds one page's markup and dispatches DOM-style events;
// Attach installs delegated listeners that turn marked link clicks and form
// submits into proxy navigations instead of native ones.
package interceptor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// EventKind names the events a Container dispatches
type EventKind string

const (
	EventClick  EventKind = "click"
	EventSubmit EventKind = "submit"
)

// Event is dispatched to the listeners of a Container
type Event struct {
	Kind   EventKind
	Target *html.Node

	defaultPrevented bool
}

// PreventDefault suppresses the native action (navigation or submission)
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener suppressed the native action
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Listener handles an event delivered to a Container
type Listener func(*Event)

type listenerEntry struct {
	id uint64
	fn Listener
}

// Container holds the rendered markup of one page. Its contents never change;
// a new page gets a new Container.
type Container struct {
	doc       *goquery.Document
	listeners map[EventKind][]listenerEntry
	nextID    uint64
	closed    bool
}

// NewContainer parses markup into a container. The markup is trusted to have
// been sanitized by the backend and is not modified.
func NewContainer(markup string) (*Container, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page markup: %w", err)
	}
	return &Container{
		doc:       doc,
		listeners: make(map[EventKind][]listenerEntry),
	}, nil
}

// Document exposes the parsed markup for rendering
func (c *Container) Document() *goquery.Document {
	return c.doc
}

// AddEventListener registers fn for kind and returns a function removing it
func (c *Container) AddEventListener(kind EventKind, fn Listener) func() {
	if c.closed {
		return func() {}
	}
	c.nextID++
	id := c.nextID
	c.listeners[kind] = append(c.listeners[kind], listenerEntry{id: id, fn: fn})

	return func() {
		entries := c.listeners[kind]
		for i, e := range entries {
			if e.id == id {
				c.listeners[kind] = append(entries[:i:i], entries[i+1:]...)
				break
			}
		}
		if len(c.listeners[kind]) == 0 {
			delete(c.listeners, kind)
		}
	}
}

// ListenerCount returns the number of registered listeners across all kinds
func (c *Container) ListenerCount() int {
	n := 0
	for _, entries := range c.listeners {
		n += len(entries)
	}
	return n
}

// Contains reports whether n belongs to this container's markup
func (c *Container) Contains(n *html.Node) bool {
	if n == nil {
		return false
	}
	root := c.doc.Get(0)
	for p := n; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}

// Selection wraps a node of this container in a goquery selection
func (c *Container) Selection(n *html.Node) *goquery.Selection {
	return c.doc.FindNodes(n)
}

// Dispatch delivers an event targeting n. Events bubble from the target up to
// the container, where the listeners sit; targets outside the container, or a
// closed container, deliver nothing. It returns whether the default action was
// prevented.
func (c *Container) Dispatch(kind EventKind, target *html.Node) bool {
	if c.closed || !c.Contains(target) {
		return false
	}

	ev := &Event{Kind: kind, Target: target}
	entries := make([]listenerEntry, len(c.listeners[kind]))
	copy(entries, c.listeners[kind])
	for _, e := range entries {
		e.fn(ev)
	}
	return ev.DefaultPrevented()
}

// Close drops every listener; later dispatches are ignored
func (c *Container) Close() {
	c.listeners = make(map[EventKind][]listenerEntry)
	c.closed = true
}

// Closed reports whether the container was torn down
func (c *Container) Closed() bool {
	return c.closed
}
