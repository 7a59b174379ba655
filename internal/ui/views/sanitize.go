package views

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Clean makes text from pages and search results safe to print. Escape
// sequences are dropped whole, then every remaining C0/C1 control except
// newline and tab. A page must not be able to drive the terminal, e.g. with
// OSC 8 hyperlinks that open outside the proxy.
func Clean(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n', r == '\t':
			return r
		case r < 0x20, r == 0x7f, r >= 0x80 && r <= 0x9f:
			return -1
		}
		return r
	}, s)
}
