package interceptor

import (
	"strings"
)

// Marker attributes written by the backend sanitizer
const (
	AttrProxyHref   = "data-proxy-href"
	AttrProxyAction = "data-proxy-action"
)

const proxiedAnchorSelector = "a[" + AttrProxyHref + "]"

// Navigator receives the URLs intercepted navigations should open
type Navigator interface {
	Navigate(url string)
}

// NavigatorFunc adapts a function to Navigator
type NavigatorFunc func(url string)

func (f NavigatorFunc) Navigate(url string) { f(url) }

// Attach installs one delegated click listener and one submit listener on c.
// currentURL is the address of the displayed page, used when a form carries no
// proxied action. The returned function removes both listeners and is safe to
// call more than once.
func Attach(c *Container, nav Navigator, currentURL string) (detach func()) {
	removeClick := c.AddEventListener(EventClick, func(ev *Event) {
		onClick(c, nav, ev)
	})
	removeSubmit := c.AddEventListener(EventSubmit, func(ev *Event) {
		onSubmit(c, nav, currentURL, ev)
	})

	done := false
	return func() {
		if done {
			return
		}
		done = true
		removeClick()
		removeSubmit()
	}
}

// onClick reroutes clicks on or inside marked anchors. Unmarked anchors are
// left alone.
func onClick(c *Container, nav Navigator, ev *Event) {
	a := c.Selection(ev.Target).Closest(proxiedAnchorSelector)
	if a.Length() == 0 {
		return
	}
	ev.PreventDefault()
	if href := a.AttrOr(AttrProxyHref, ""); href != "" {
		nav.Navigate(href)
	}
}

// onSubmit never lets a form submit natively. Whatever the declared method,
// the fields are sent as a query string to the proxied action, or to the
// current page when the form has none.
func onSubmit(c *Container, nav Navigator, currentURL string, ev *Event) {
	form := c.Selection(ev.Target).Closest("form")
	if form.Length() == 0 {
		return
	}
	ev.PreventDefault()

	action := form.AttrOr(AttrProxyAction, "")
	if action == "" {
		action = currentURL
	}
	nav.Navigate(AppendQuery(action, EncodeFields(CollectFields(form))))
}

// AppendQuery joins query onto address with & when it already has a query, ? otherwise
func AppendQuery(address, query string) string {
	if strings.Contains(address, "?") {
		return address + "&" + query
	}
	return address + "?" + query
}
