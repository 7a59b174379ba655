package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/net/html"

	"shroud/internal/interceptor"
)

// ElementKind says what activating a page element does
type ElementKind int

const (
	ElementLink   ElementKind = iota // click a proxied anchor
	ElementField                     // edit a text field
	ElementCheck                     // toggle a checkbox or radio
	ElementSubmit                    // submit the enclosing form
)

// Element is a selectable, numbered part of a rendered page
type Element struct {
	Kind  ElementKind
	Node  *html.Node // the anchor, control, or form to dispatch on
	Label string
	Value string
	Line  int // first line of the element's block in the rendered text
}

// PageLayout is a page rendered to terminal text
type PageLayout struct {
	Text     string
	Elements []Element
}

var skippedTags = map[string]bool{
	"head": true, "script": true, "style": true, "template": true,
	"noscript": true, "iframe": true, "object": true, "svg": true,
}

var blockTags = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "header": true,
	"footer": true, "nav": true, "main": true, "aside": true, "ul": true,
	"ol": true, "li": true, "table": true, "tr": true, "blockquote": true,
	"pre": true, "form": true, "fieldset": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "hr": true, "dl": true,
	"dt": true, "dd": true, "figure": true, "figcaption": true, "details": true,
	"summary": true, "address": true,
}

// pageWriter accumulates inline text into blocks and records where each
// element starts
type pageWriter struct {
	styles   *Styles
	selected int

	blocks   []string
	cur      strings.Builder
	elements []Element
	owners   []int // block index per element
	pre      int   // depth of <pre> nesting
	forms    []*formState
}

type formState struct {
	node      *html.Node
	hasSubmit bool
}

// LayoutPage renders the markup of a container as wrapped terminal text with
// numbered links and form controls. selected is highlighted.
func (r *Renderer) LayoutPage(c *interceptor.Container, width, selected int) PageLayout {
	if c == nil {
		return PageLayout{}
	}
	w := &pageWriter{styles: r.styles, selected: selected}
	w.walk(c.Document().Get(0))
	w.flush()

	if width <= 0 {
		width = 80
	}
	wrap := lipgloss.NewStyle().Width(width)

	var out []string
	line := 0
	blockLine := make([]int, len(w.blocks))
	for i, b := range w.blocks {
		blockLine[i] = line
		rendered := strings.TrimPrefix(b, preMarker)
		if rendered == b {
			rendered = wrap.Render(b)
		}
		out = append(out, rendered)
		line += lipgloss.Height(rendered)
	}
	for i := range w.elements {
		if w.owners[i] < len(blockLine) {
			w.elements[i].Line = blockLine[w.owners[i]]
		}
	}

	return PageLayout{Text: strings.Join(out, "\n"), Elements: w.elements}
}

// preMarker flags blocks whose whitespace must survive wrapping
const preMarker = "\x00pre\x00"

func (w *pageWriter) flush() {
	text := w.cur.String()
	w.cur.Reset()
	if strings.HasPrefix(text, preMarker) {
		if strings.TrimSpace(strings.TrimPrefix(text, preMarker)) != "" {
			w.blocks = append(w.blocks, text)
		}
		return
	}
	text = strings.TrimSpace(text)
	if text != "" {
		w.blocks = append(w.blocks, text)
	}
}

func (w *pageWriter) text(s string) {
	if w.pre > 0 {
		w.cur.WriteString(s)
		return
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" {
			w.space()
		}
		return
	}
	if isSpace(s[0]) {
		w.space()
	}
	w.cur.WriteString(strings.Join(fields, " "))
	if isSpace(s[len(s)-1]) {
		w.space()
	}
}

func (w *pageWriter) space() {
	cur := w.cur.String()
	if cur != "" && !strings.HasSuffix(cur, " ") {
		w.cur.WriteByte(' ')
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

// addElement registers e and returns its rendered label
func (w *pageWriter) addElement(e Element, label string, style lipgloss.Style) string {
	index := len(w.elements)
	w.elements = append(w.elements, e)
	w.owners = append(w.owners, len(w.blocks))

	marker := w.styles.Marker.Render(fmt.Sprintf("[%d]", index+1))
	text := style.Render(label)
	if index == w.selected {
		marker = w.styles.Cursor.Render(fmt.Sprintf("[%d]", index+1))
		text = w.styles.Selected.Inherit(style).Render(label)
	}
	return text + marker
}

func (w *pageWriter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text(Clean(n.Data))
		return
	case html.DocumentNode:
		w.children(n)
		return
	case html.ElementNode:
	default:
		return
	}

	tag := n.Data
	if skippedTags[tag] {
		return
	}

	switch tag {
	case "br":
		w.flush()
		return
	case "hr":
		w.flush()
		w.cur.WriteString(w.styles.Marker.Render("────────"))
		w.flush()
		return
	case "img":
		if alt := strings.TrimSpace(attr(n, "alt")); alt != "" {
			w.space()
			w.cur.WriteString(w.styles.Marker.Render("[image: " + alt + "]"))
			w.space()
		}
		return
	case "a":
		w.anchor(n)
		return
	case "input":
		w.input(n)
		return
	case "button":
		w.button(n)
		return
	case "select":
		w.selectBox(n)
		return
	case "textarea":
		w.textarea(n)
		return
	case "form":
		w.form(n)
		return
	case "pre":
		w.flush()
		w.pre++
		w.cur.WriteString(preMarker)
		w.children(n)
		w.pre--
		w.flush()
		return
	}

	if !blockTags[tag] {
		w.children(n)
		return
	}

	w.flush()
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		inner := w.inline(n)
		w.cur.WriteString(w.styles.Heading.Render(strings.Repeat("#", int(tag[1]-'0')) + " " + inner))
	case "li":
		w.cur.WriteString("• ")
		w.children(n)
	default:
		w.children(n)
	}
	w.flush()
}

func (w *pageWriter) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

// inline renders the children of n into a string without touching blocks
func (w *pageWriter) inline(n *html.Node) string {
	saved := w.cur.String()
	w.cur.Reset()
	w.children(n)
	inner := strings.TrimSpace(w.cur.String())
	w.cur.Reset()
	w.cur.WriteString(saved)
	return inner
}

func (w *pageWriter) anchor(n *html.Node) {
	href, marked := attrOK(n, interceptor.AttrProxyHref)
	if !marked {
		w.children(n)
		return
	}
	label := w.inline(n)
	if label == "" {
		label = href
	}
	w.space()
	w.cur.WriteString(w.addElement(Element{Kind: ElementLink, Node: n, Label: label, Value: href}, label, w.styles.Link))
	w.space()
}

func (w *pageWriter) input(n *html.Node) {
	typ := strings.ToLower(strings.TrimSpace(attr(n, "type")))
	if typ == "" {
		typ = "text"
	}
	name := attr(n, "name")

	switch typ {
	case "hidden", "file", "reset":
		return
	case "submit", "image":
		label := attr(n, "value")
		if label == "" {
			label = "Submit"
		}
		w.submitControl(n, label)
	case "button":
		return
	case "checkbox", "radio":
		box := "[ ]"
		if _, ok := attrOK(n, "checked"); ok {
			box = "[x]"
		}
		if typ == "radio" {
			box = "( )"
			if _, ok := attrOK(n, "checked"); ok {
				box = "(•)"
			}
		}
		label := box + " " + name
		w.space()
		w.cur.WriteString(w.addElement(Element{Kind: ElementCheck, Node: n, Label: name, Value: attr(n, "value")}, label, w.styles.Field))
		w.space()
	default:
		value := attr(n, "value")
		w.field(n, name, value, attr(n, "placeholder"))
	}
}

func (w *pageWriter) textarea(n *html.Node) {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	w.field(n, attr(n, "name"), Clean(b.String()), attr(n, "placeholder"))
}

func (w *pageWriter) field(n *html.Node, name, value, placeholder string) {
	shown := value
	if shown == "" {
		shown = placeholder
	}
	if shown == "" {
		shown = "____"
	}
	label := name + ": " + shown
	if name == "" {
		label = shown
	}
	w.space()
	w.cur.WriteString(w.addElement(Element{Kind: ElementField, Node: n, Label: name, Value: value}, "‹"+label+"›", w.styles.Field))
	w.space()
}

func (w *pageWriter) selectBox(n *html.Node) {
	var chosen, first string
	for o := range descendants(n, "option") {
		text := strings.Join(strings.Fields(textOf(o)), " ")
		if first == "" {
			first = text
		}
		if _, ok := attrOK(o, "selected"); ok {
			chosen = text
		}
	}
	if chosen == "" {
		chosen = first
	}
	w.space()
	w.cur.WriteString(w.styles.Field.Render("‹" + attr(n, "name") + ": " + chosen + " ▾›"))
	w.space()
}

func (w *pageWriter) button(n *html.Node) {
	typ := strings.ToLower(attr(n, "type"))
	label := w.inline(n)
	if typ == "button" || typ == "reset" || len(w.forms) == 0 {
		if label != "" {
			w.space()
			w.cur.WriteString(w.styles.Marker.Render("[" + label + "]"))
			w.space()
		}
		return
	}
	if label == "" {
		label = "Submit"
	}
	w.submitControl(n, label)
}

func (w *pageWriter) submitControl(n *html.Node, label string) {
	if len(w.forms) == 0 {
		return
	}
	w.forms[len(w.forms)-1].hasSubmit = true
	w.space()
	w.cur.WriteString(w.addElement(Element{Kind: ElementSubmit, Node: n, Label: label}, "⟨"+label+"⟩", w.styles.Button))
	w.space()
}

func (w *pageWriter) form(n *html.Node) {
	w.flush()
	state := &formState{node: n}
	w.forms = append(w.forms, state)
	w.children(n)
	w.forms = w.forms[:len(w.forms)-1]

	// forms submitted by pressing enter in a browser still need a control here
	if !state.hasSubmit {
		w.space()
		w.cur.WriteString(w.addElement(Element{Kind: ElementSubmit, Node: n, Label: "Submit"}, "⟨Submit⟩", w.styles.Button))
	}
	w.flush()
}

func attr(n *html.Node, key string) string {
	v, _ := attrOK(n, key)
	return v
}

// attrOK returns the cleaned value of an attribute and whether it is present
func attrOK(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return Clean(a.Val), true
		}
	}
	return "", false
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return Clean(b.String())
}

// descendants yields element descendants of n with the given tag in document order
func descendants(n *html.Node, tag string) func(yield func(*html.Node) bool) {
	return func(yield func(*html.Node) bool) {
		var rec func(*html.Node) bool
		rec = func(n *html.Node) bool {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && c.Data == tag && !yield(c) {
					return false
				}
				if !rec(c) {
					return false
				}
			}
			return true
		}
		rec(n)
	}
}
