package views

import (
	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopup centers popupContent in a width x height area. The popup is
// clipped to leave a small margin on small terminals.
func (pr *PopupRenderer) RenderPopup(popupContent string, width, height int) string {
	style := pr.styles.Popup
	if width > 10 {
		style = style.MaxWidth(width - 4)
	}
	if height > 6 {
		style = style.MaxHeight(height - 2)
	}
	styled := style.Render(popupContent)

	if width <= 0 || height <= 0 {
		return styled
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styled,
		lipgloss.WithWhitespaceChars(" "))
}
