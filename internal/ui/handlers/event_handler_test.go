package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shroud/internal/domain"
	"shroud/internal/eventbus"
	"shroud/internal/ui/state"
)

func TestHandleEventSetsStatus(t *testing.T) {
	tests := []struct {
		name  string
		event eventbus.DomainEvent
		want  string
	}{
		{"search", domain.SearchRequestedEvent{Query: "cats"}, `Searching for "cats"…`},
		{"results", domain.ResultsLoadedEvent{Query: "cats", Count: 3}, `3 results for "cats"`},
		{"navigation", domain.NavigationRequestedEvent{URL: "https://a.com"}, "Opening https://a.com…"},
		{"page", domain.PageLoadedEvent{URL: "https://a.com"}, "Loaded https://a.com"},
		{"failure", domain.LoadFailedEvent{Message: domain.MsgSearchFailed}, "Error: Search failed"},
		{"failure detail", domain.LoadFailedEvent{Message: domain.MsgProxyFetchFailed, Detail: "status 502"}, "Error: Proxy fetch failed (status 502)"},
		{"reset", domain.SessionResetEvent{}, "Session reset"},
		{"default config", domain.ConfigLoadedEvent{}, "Using default configuration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := state.NewAppState()
			cmd := NewEventHandler(s).HandleEvent(tt.event)
			assert.Nil(t, cmd)
			assert.Equal(t, tt.want, s.StatusMessage)
		})
	}
}

func TestStaleEventKeepsStatus(t *testing.T) {
	s := state.NewAppState()
	s.StatusMessage = "Opening https://b.com…"
	NewEventHandler(s).HandleEvent(domain.StaleDiscardedEvent{Generation: 1, Latest: 2})
	assert.Equal(t, "Opening https://b.com…", s.StatusMessage)
}
