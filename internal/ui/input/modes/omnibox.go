package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"shroud/internal/ui/input/types"
)

// OmniboxMode edits the search/URL box. The text survives submits so the
// last query can be refined.
type OmniboxMode struct {
	TextInputMode
}

func NewOmniboxMode(ti *textinput.Model) *OmniboxMode {
	return &OmniboxMode{
		TextInputMode: NewTextInputMode(types.ModeOmnibox, "omnibox", ti),
	}
}

func (m *OmniboxMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "enter":
		// Stay in the box on blank input; submit is a no-op then
		next := types.ModeBrowse
		if isBlank(m.value()) {
			next = types.ModeOmnibox
		}
		return []types.Action{
			types.SubmitTextAction{Text: m.value(), Mode: types.ModeOmnibox},
			types.ChangeModeAction{Mode: next},
		}, true
	case "esc", "tab":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeBrowse}}, true
	case "ctrl+n":
		return []types.Action{types.NewSessionAction{}}, true
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}

func isBlank(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\v', '\f':
		default:
			return false
		}
	}
	return true
}
