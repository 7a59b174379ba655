package viewmodels

import (
	"shroud/internal/config"
	"shroud/internal/controller"
	"shroud/internal/ui/state"
	"shroud/internal/ui/views"
)

// Inputs are the already-rendered widgets that go into a frame
type Inputs struct {
	Omnibox        string
	OmniboxFocused bool
	ModeName       string
	Spinner        string
	Body           string
	ShortHelp      string
	HelpContent    string
}

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state  *state.AppState
	config *config.Config
	width  int
	height int
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, cfg *config.Config) *ViewModel {
	return &ViewModel{
		state:  appState,
		config: cfg,
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState(st controller.ViewState, in Inputs) views.ViewState {
	vs := views.ViewState{
		Width:          vm.width,
		Height:         vm.height,
		Omnibox:        in.Omnibox,
		OmniboxFocused: in.OmniboxFocused,
		Loading:        st.Loading,
		Err:            st.Err,
		ShowingPage:    st.ShowingPage(),
		PageURL:        st.Page().URL,
		HasResults:     len(st.Results()) > 0,
		Body:           in.Body,
		Status:         vm.state.StatusMessage,
		ModeName:       in.ModeName,
		ShortHelp:      in.ShortHelp,
		ShowHelp:       vm.state.ShowHelp,
		HelpContent:    in.HelpContent,
	}
	if st.Loading {
		vs.Spinner = in.Spinner
	}
	return vs
}
