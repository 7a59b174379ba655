package interceptor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// FieldPair is one name/value entry of a form's data set
type FieldPair struct {
	Name  string
	Value string
}

// Field describes a form control for display and editing
type Field struct {
	Node     *html.Node
	Tag      string // input, select or textarea
	Type     string // input type, lowercased; empty for select and textarea
	Name     string
	Value    string
	Editable bool // free text the user can type into
}

// Form is an interceptable form inside a container
type Form struct {
	Node   *html.Node
	Action string // proxied action, empty when absent
	Method string // declared method, informational only
	Fields []Field
}

// Link is a marked anchor inside a container
type Link struct {
	Node *html.Node
	Href string
	Text string
}

var skippedInputTypes = map[string]bool{
	"submit": true,
	"button": true,
	"reset":  true,
	"image":  true,
	"file":   true,
}

var textInputTypes = map[string]bool{
	"text":     true,
	"search":   true,
	"email":    true,
	"url":      true,
	"tel":      true,
	"number":   true,
	"password": true,
	"date":     true,
}

// CollectFields returns the data set of form in document order, following
// browser form-data rules for the controls a sanitized page can contain.
func CollectFields(form *goquery.Selection) []FieldPair {
	var pairs []FieldPair
	form.Find("input, select, textarea").Each(func(_ int, s *goquery.Selection) {
		name := s.AttrOr("name", "")
		if name == "" || isDisabled(s) {
			return
		}

		switch goquery.NodeName(s) {
		case "input":
			typ := inputType(s)
			if skippedInputTypes[typ] {
				return
			}
			if typ == "checkbox" || typ == "radio" {
				if !hasAttr(s, "checked") {
					return
				}
				pairs = append(pairs, FieldPair{Name: name, Value: s.AttrOr("value", "on")})
				return
			}
			pairs = append(pairs, FieldPair{Name: name, Value: s.AttrOr("value", "")})

		case "select":
			for _, v := range selectedOptions(s) {
				pairs = append(pairs, FieldPair{Name: name, Value: v})
			}

		case "textarea":
			pairs = append(pairs, FieldPair{Name: name, Value: s.Text()})
		}
	})
	return pairs
}

// formEscapes adjusts url.QueryEscape to the urlencoded serializer's safe
// set, which keeps '*' and escapes '~'
var formEscapes = strings.NewReplacer("%2A", "*", "~", "%7E")

func formEscape(s string) string {
	return formEscapes.Replace(url.QueryEscape(s))
}

// EncodeFields serializes pairs as application/x-www-form-urlencoded, keeping order
func EncodeFields(pairs []FieldPair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, formEscape(p.Name)+"="+formEscape(p.Value))
	}
	return strings.Join(parts, "&")
}

// Links returns the marked anchors of the container in document order
func (c *Container) Links() []Link {
	var links []Link
	c.doc.Find(proxiedAnchorSelector).Each(func(_ int, s *goquery.Selection) {
		links = append(links, Link{
			Node: s.Get(0),
			Href: s.AttrOr(AttrProxyHref, ""),
			Text: strings.Join(strings.Fields(s.Text()), " "),
		})
	})
	return links
}

// Forms returns every form of the container in document order
func (c *Container) Forms() []Form {
	var forms []Form
	c.doc.Find("form").Each(func(_ int, f *goquery.Selection) {
		form := Form{
			Node:   f.Get(0),
			Action: f.AttrOr(AttrProxyAction, ""),
			Method: strings.ToLower(f.AttrOr("method", "get")),
		}
		f.Find("input, select, textarea").Each(func(_ int, s *goquery.Selection) {
			field := Field{
				Node: s.Get(0),
				Tag:  goquery.NodeName(s),
				Name: s.AttrOr("name", ""),
			}
			switch field.Tag {
			case "input":
				field.Type = inputType(s)
				if field.Type == "hidden" || skippedInputTypes[field.Type] {
					return
				}
				field.Value = s.AttrOr("value", "")
				field.Editable = textInputTypes[field.Type] && !isDisabled(s)
			case "select":
				field.Value = strings.Join(selectedOptions(s), ", ")
			case "textarea":
				field.Value = s.Text()
				field.Editable = !isDisabled(s)
			}
			form.Fields = append(form.Fields, field)
		})
		forms = append(forms, form)
	})
	return forms
}

// SetFieldValue writes a user edit into the markup so the next submit sees it
func (c *Container) SetFieldValue(n *html.Node, value string) bool {
	if !c.Contains(n) || n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "input":
		setAttr(n, "value", value)
	case "textarea":
		for child := n.FirstChild; child != nil; {
			next := child.NextSibling
			n.RemoveChild(child)
			child = next
		}
		n.AppendChild(&html.Node{Type: html.TextNode, Data: value})
	default:
		return false
	}
	return true
}

// SetChecked toggles a checkbox or radio button. Checking a radio clears
// the other radios of the same name in its form.
func (c *Container) SetChecked(n *html.Node, checked bool) bool {
	if !c.Contains(n) || n.Data != "input" {
		return false
	}
	if !checked {
		removeAttr(n, "checked")
		return true
	}

	s := c.Selection(n)
	if inputType(s) == "radio" {
		if name := s.AttrOr("name", ""); name != "" {
			scope := s.Closest("form")
			if scope.Length() == 0 {
				scope = c.doc.Selection
			}
			scope.Find("input").Each(func(_ int, other *goquery.Selection) {
				if other.AttrOr("name", "") == name && inputType(other) == "radio" {
					removeAttr(other.Get(0), "checked")
				}
			})
		}
	}
	setAttr(n, "checked", "")
	return true
}

// Checked reports whether a checkbox or radio button is checked
func (c *Container) Checked(n *html.Node) bool {
	return c.Contains(n) && hasAttr(c.Selection(n), "checked")
}

func inputType(s *goquery.Selection) string {
	typ := strings.ToLower(strings.TrimSpace(s.AttrOr("type", "")))
	if typ == "" {
		return "text"
	}
	return typ
}

func isDisabled(s *goquery.Selection) bool {
	if hasAttr(s, "disabled") {
		return true
	}
	return s.ParentsFiltered("fieldset[disabled]").Length() > 0
}

func hasAttr(s *goquery.Selection, name string) bool {
	_, ok := s.Attr(name)
	return ok
}

// selectedOptions returns the submitted values of a select element
func selectedOptions(s *goquery.Selection) []string {
	options := s.Find("option")
	var values []string
	options.Each(func(_ int, o *goquery.Selection) {
		if hasAttr(o, "selected") && !hasAttr(o, "disabled") {
			values = append(values, optionValue(o))
		}
	})
	if len(values) > 0 || hasAttr(s, "multiple") {
		if !hasAttr(s, "multiple") && len(values) > 1 {
			// a single select keeps the last selected option
			values = values[len(values)-1:]
		}
		return values
	}
	// a single select with nothing marked submits its first enabled option
	first := options.FilterFunction(func(_ int, o *goquery.Selection) bool {
		return !hasAttr(o, "disabled")
	}).First()
	if first.Length() == 0 {
		return nil
	}
	return []string{optionValue(first)}
}

func optionValue(o *goquery.Selection) string {
	if v, ok := o.Attr("value"); ok {
		return v
	}
	return strings.Join(strings.Fields(o.Text()), " ")
}

func setAttr(n *html.Node, key, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func removeAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}
