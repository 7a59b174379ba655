package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"shroud/internal/ui/input/modes"
	"shroud/internal/ui/input/types"
)

// OmniboxPlaceholder is shown in the empty search/URL box
const OmniboxPlaceholder = "Search or type a URL…"

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	omnibox     *textinput.Model // persistent search/URL text
	field       *textinput.Model // scratch input for page form fields
}

// New creates a handler with the omnibox focused
func New() *Handler {
	omnibox := textinput.New()
	omnibox.Placeholder = OmniboxPlaceholder
	omnibox.Prompt = ""
	omnibox.Focus()

	field := textinput.New()
	field.Prompt = ""

	h := &Handler{
		currentMode: types.ModeOmnibox,
		omnibox:     &omnibox,
		field:       &field,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	// Register all mode handlers
	h.modes[types.ModeOmnibox] = modes.NewOmniboxMode(h.omnibox)
	h.modes[types.ModeBrowse] = modes.NewBrowseMode()
	h.modes[types.ModeFieldEdit] = modes.NewFieldEditMode(h.field)

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	// If not consumed and we're in text mode, we'll handle it below
	if !consumed && h.textInputFor(h.currentMode) == nil {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			allActions = append(allActions, action)
			continue
		}
		if changeMode.Mode == h.currentMode {
			continue
		}
		allActions = append(allActions, h.modes[h.currentMode].Exit(ctx)...)
		if c := h.switchTo(changeMode.Mode, changeMode.Data); c != nil {
			cmd = c
		}
		allActions = append(allActions, h.modes[h.currentMode].Enter(ctx)...)
	}

	// If we're in a text mode and didn't handle the key, pass it to text input
	if ti := h.textInputFor(h.currentMode); ti != nil && !consumed {
		var textCmd tea.Cmd
		*ti, textCmd = ti.Update(msg)
		cmd = textCmd
		allActions = append(allActions, types.UpdateTextAction{Text: ti.Value(), Mode: h.currentMode})
	}

	return allActions, cmd
}

// switchTo changes mode and moves focus; field edits start from data
func (h *Handler) switchTo(mode types.Mode, data string) tea.Cmd {
	if old := h.textInputFor(h.currentMode); old != nil {
		old.Blur()
	}
	h.currentMode = mode

	ti := h.textInputFor(mode)
	if ti == nil {
		return nil
	}
	if mode == types.ModeFieldEdit {
		ti.Reset()
		ti.SetValue(data)
	}
	ti.Focus()
	return textinput.Blink
}

func (h *Handler) textInputFor(mode types.Mode) *textinput.Model {
	switch mode {
	case types.ModeOmnibox:
		return h.omnibox
	case types.ModeFieldEdit:
		return h.field
	default:
		return nil
	}
}

// ChangeMode changes the current input mode from outside a key press
func (h *Handler) ChangeMode(mode types.Mode, data string) tea.Cmd {
	if mode == h.currentMode && mode != types.ModeFieldEdit {
		return nil
	}
	return h.switchTo(mode, data)
}

// GetMode returns the current input mode
func (h *Handler) GetMode() types.Mode {
	if h == nil {
		return types.ModeOmnibox
	}
	return h.currentMode
}

// ModeName returns the display name of the current mode
func (h *Handler) ModeName() string {
	if m := h.modes[h.currentMode]; m != nil {
		return m.Name()
	}
	return ""
}

// Omnibox returns the search/URL input
func (h *Handler) Omnibox() *textinput.Model {
	return h.omnibox
}

// Field returns the form field input
func (h *Handler) Field() *textinput.Model {
	return h.field
}

// SetWidth sizes both inputs
func (h *Handler) SetWidth(width int) {
	if width < 10 {
		width = 10
	}
	h.omnibox.Width = width
	h.field.Width = width
}

// Update handles non-keyboard messages (cursor blink) for the focused input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if ti := h.textInputFor(h.currentMode); ti != nil {
		var cmd tea.Cmd
		*ti, cmd = ti.Update(msg)
		return cmd
	}
	return nil
}
