package state

// AppState contains the UI state the controller does not own
type AppState struct {
	// Selection state
	SelectedIndex  int    // selected result or page element
	ContentVersion uint64 // controller content the selection refers to

	// UI state
	ShowHelp         bool
	HelpScrollOffset int    // scroll offset for help popup
	StatusMessage    string // status bar message
	Reload           bool   // a new session was requested; rebuild on exit
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{}
}

// ResetSelection moves the selection back to the first item
func (s *AppState) ResetSelection() {
	s.SelectedIndex = 0
}

// ToggleHelp shows or hides the help popup
func (s *AppState) ToggleHelp() {
	s.ShowHelp = !s.ShowHelp
	s.HelpScrollOffset = 0
}

// ScrollHelp moves the help popup by delta lines
func (s *AppState) ScrollHelp(delta int) {
	s.HelpScrollOffset += delta
	if s.HelpScrollOffset < 0 {
		s.HelpScrollOffset = 0
	}
}
