package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleHelpResetsScroll(t *testing.T) {
	s := NewAppState()
	s.ToggleHelp()
	s.ScrollHelp(3)
	assert.True(t, s.ShowHelp)
	assert.Equal(t, 3, s.HelpScrollOffset)

	s.ToggleHelp()
	assert.False(t, s.ShowHelp)
	assert.Zero(t, s.HelpScrollOffset)
}

func TestScrollHelpStopsAtTop(t *testing.T) {
	s := NewAppState()
	s.ScrollHelp(-5)
	assert.Zero(t, s.HelpScrollOffset)
}
