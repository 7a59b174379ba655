package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"shroud/internal/eventbus"
	"shroud/internal/ui/state"
)

// EventHandler handles domain events and updates state
type EventHandler struct {
	state *state.AppState
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState) *EventHandler {
	return &EventHandler{state: appState}
}

// HandleEvent turns domain events into status bar messages
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.SearchRequestedEvent:
		h.state.StatusMessage = fmt.Sprintf("Searching for %q…", e.Query)

	case eventbus.ResultsLoadedEvent:
		h.state.StatusMessage = fmt.Sprintf("%d results for %q", e.Count, e.Query)

	case eventbus.NavigationRequestedEvent:
		h.state.StatusMessage = fmt.Sprintf("Opening %s…", e.URL)

	case eventbus.PageLoadedEvent:
		h.state.StatusMessage = fmt.Sprintf("Loaded %s", e.URL)

	case eventbus.LoadFailedEvent:
		h.state.StatusMessage = fmt.Sprintf("Error: %s", e.Message)
		if e.Detail != "" {
			h.state.StatusMessage += " (" + e.Detail + ")"
		}

	case eventbus.StaleDiscardedEvent:
		// The newer request is still pending; leave its status in place

	case eventbus.SessionResetEvent:
		h.state.StatusMessage = "Session reset"

	case eventbus.ConfigLoadedEvent:
		if e.Path == "" {
			h.state.StatusMessage = "Using default configuration"
		}
	}

	return nil
}
