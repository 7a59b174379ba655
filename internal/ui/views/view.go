package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shroud/internal/domain"
)

// Fixed interface text
const (
	TitleText       = "Privacy Proxy"
	ButtonLabel     = "Search"
	ButtonBusyLabel = "Working…"
	BackLabel       = "b: back to results"
	HintText        = "Tip: paste a full URL (http/https) to view it through the privacy proxy, or type a search query."
	FooterText      = "No cookies. No local storage. No third-party requests."
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Omnibox        string // rendered text input
	OmniboxFocused bool
	Loading        bool
	Spinner        string
	Err            string
	ShowingPage    bool
	PageURL        string
	HasResults     bool
	Body           string // rendered viewport with results or page
	Status         string
	ModeName       string
	ShortHelp      string
	ShowHelp       bool
	HelpContent    string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles exposes the style set
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// contentWidth is the usable width inside the main padding
func contentWidth(width int) int {
	if width <= 0 {
		width = 80
	}
	if width-4 < 20 {
		return 20
	}
	return width - 4
}

// BodyWidth returns the width available to the viewport
func (r *Renderer) BodyWidth(width int) int {
	return contentWidth(width)
}

// Header renders the title, the omnibox and the error line
func (r *Renderer) Header(state ViewState) string {
	width := contentWidth(state.Width)
	var b strings.Builder

	title := r.styles.Title.Render(TitleText)
	right := r.styles.Dim.Render("N new session")
	if state.ModeName != "" {
		right = r.styles.Dim.Render(state.ModeName+" · ") + right
	}
	gap := width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	b.WriteString(title + strings.Repeat(" ", gap) + right)
	b.WriteString("\n")

	label := ButtonLabel
	button := r.styles.Button
	if state.Loading {
		label = ButtonBusyLabel
		if state.Spinner != "" {
			label = state.Spinner + " " + label
		}
		button = r.styles.ButtonBusy
	}
	box := r.styles.OmniboxIdle
	if state.OmniboxFocused {
		box = r.styles.Omnibox
	}
	renderedButton := button.Render(label)
	inputWidth := width - lipgloss.Width(renderedButton) - 5
	if inputWidth < 10 {
		inputWidth = 10
	}
	input := lipgloss.NewStyle().Width(inputWidth).MaxHeight(1).Render(state.Omnibox)
	row := lipgloss.JoinHorizontal(lipgloss.Center, box.Render(input), " ", renderedButton)
	b.WriteString(row)

	if state.Err != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.Error.Render(Clean(state.Err)))
	}

	if state.ShowingPage {
		b.WriteString("\n")
		back := r.styles.Dim.Render(BackLabel)
		urlWidth := width - lipgloss.Width(back) - 2
		if urlWidth < 10 {
			urlWidth = 10
		}
		url := r.styles.PageURL.Render(truncate(Clean(state.PageURL), urlWidth))
		pad := width - lipgloss.Width(url) - lipgloss.Width(back)
		if pad < 1 {
			pad = 1
		}
		b.WriteString(url + strings.Repeat(" ", pad) + back)
	}

	return b.String()
}

// Footer renders the status line, key hints and the privacy notice
func (r *Renderer) Footer(state ViewState) string {
	width := contentWidth(state.Width)
	var lines []string
	if state.Status != "" {
		lines = append(lines, r.styles.Status.Render(truncate(Clean(state.Status), width)))
	}
	if state.ShortHelp != "" {
		lines = append(lines, state.ShortHelp)
	} else {
		lines = append(lines, r.styles.Help.Render("Press ? for help"))
	}
	lines = append(lines, r.styles.Footer.Render(truncate(FooterText, width)))
	return strings.Join(lines, "\n")
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	header := r.Header(state)
	footer := r.Footer(state)

	body := state.Body
	if !state.ShowingPage && !state.HasResults && !state.Loading && state.Err == "" {
		body = r.styles.Hint.Render(lipgloss.NewStyle().Width(contentWidth(state.Width)).Render(HintText))
	}

	height := state.Height
	if height <= 0 {
		height = 24
	}
	if state.ShowHelp && state.HelpContent != "" {
		bodyHeight := height - lipgloss.Height(header) - lipgloss.Height(footer) - 2
		body = r.popupRender.RenderPopup(state.HelpContent, contentWidth(state.Width), bodyHeight)
	}

	used := lipgloss.Height(header) + lipgloss.Height(body) + lipgloss.Height(footer) + 1
	padding := ""
	if height > used {
		padding = strings.Repeat("\n", height-used)
	}

	content := header + "\n\n" + body + padding + "\n" + footer
	return r.styles.Main.MaxHeight(height).Render(content)
}

// RenderResults renders the result list. It returns the text and the first
// line of every result, for scrolling the selection into view.
func (r *Renderer) RenderResults(results []domain.SearchResult, selected int, showSnippets bool, width int) (string, []int) {
	width = contentWidth(width)
	wrap := lipgloss.NewStyle().Width(width - 2)

	var blocks []string
	lines := make([]int, 0, len(results))
	line := 0
	for i, res := range results {
		res.Title, res.Snippet, res.URL = Clean(res.Title), Clean(res.Snippet), Clean(res.URL)
		cursor := "  "
		title := r.styles.ResultTitle.Render(res.Title)
		if i == selected {
			cursor = r.styles.Cursor.Render("> ")
			title = r.styles.Selected.Inherit(r.styles.ResultTitle).Render(res.Title)
		}
		if res.Title == "" {
			title = r.styles.ResultTitle.Render(res.URL)
		}

		parts := []string{cursor + title}
		if showSnippets && strings.TrimSpace(res.Snippet) != "" {
			parts = append(parts, indent(wrap.Render(r.styles.Snippet.Render(res.Snippet))))
		}
		parts = append(parts, "  "+r.styles.ResultURL.Render(truncate(res.URL, width-2)))

		block := strings.Join(parts, "\n")
		lines = append(lines, line)
		line += lipgloss.Height(block) + 1
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n"), lines
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) > width {
		runes = runes[:width]
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
