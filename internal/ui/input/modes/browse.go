package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"shroud/internal/ui/input/types"
)

// BrowseMode moves through results or the elements of a page
type BrowseMode struct{}

func NewBrowseMode() *BrowseMode {
	return &BrowseMode{}
}

func (m *BrowseMode) Name() string {
	return "browse"
}

func (m *BrowseMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *BrowseMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *BrowseMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp, tea.KeyShiftTab:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.ScrollAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.ScrollAction{Direction: "pagedown"}}, true

	case tea.KeyCtrlU:
		return []types.Action{types.ScrollAction{Direction: "halfup"}}, true

	case tea.KeyCtrlD:
		return []types.Action{types.ScrollAction{Direction: "halfdown"}}, true

	case tea.KeyEnter:
		if ctx.TotalItems() == 0 {
			return nil, false
		}
		return []types.Action{types.ActivateAction{}}, true

	case tea.KeyTab, tea.KeyEsc:
		return []types.Action{types.ChangeModeAction{Mode: types.ModeOmnibox}}, true

	case tea.KeyBackspace, tea.KeyLeft:
		if ctx.ShowingPage() {
			return []types.Action{types.ClosePageAction{}}, true
		}
		return nil, false
	}

	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "g":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case "b", "h":
		if ctx.ShowingPage() {
			return []types.Action{types.ClosePageAction{}}, true
		}
		return nil, false

	case "/", "i":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeOmnibox}}, true

	case "N":
		return []types.Action{types.NewSessionAction{}}, true

	case "P":
		if ctx.ShowingPage() {
			return []types.Action{types.OpenPagerAction{}}, true
		}
		return nil, false

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{}}, true
	}

	return nil, false
}
