package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"shroud/internal/config"
	"shroud/internal/controller"
	"shroud/internal/interceptor"
	"shroud/internal/ui/handlers"
	"shroud/internal/ui/input"
	inputtypes "shroud/internal/ui/input/types"
	"shroud/internal/ui/logic"
	"shroud/internal/ui/state"
	"shroud/internal/ui/viewmodels"
	"shroud/internal/ui/views"
)

// Model represents the UI state
type Model struct {
	ctrl   *controller.Controller
	config *config.Config
	state  *state.AppState // UI-only state; the controller owns the rest
	log    *zap.Logger

	width       int
	height      int
	help        help.Model
	keys        keyMap
	spinner     spinner.Model
	viewport    viewport.Model
	inPagerMode bool // tracks if we're currently in pager mode

	// Handlers
	navigator    *logic.Navigator       // selection and viewport movement
	renderer     *views.Renderer        // view renderer
	helpRenderer *HelpRenderer          // help popup content
	eventHandler *handlers.EventHandler // event processing handler
	viewModel    *viewmodels.ViewModel  // view model for rendering
	inputHandler *input.Handler         // input handling
	pager        *PagerOps              // ov pager for page text

	// Displayed page
	frame     *interceptor.Frame
	navQueue  []string // navigations raised by the interceptor during a dispatch
	layout    views.PageLayout
	itemLines []int      // first line of every selectable item
	editing   *html.Node // page field whose value is being edited

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model around a controller
func NewModel(ctrl *controller.Controller, cfg *config.Config, logger *zap.Logger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	appState := state.NewAppState()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = views.NewStyles().Cursor

	m := &Model{
		ctrl:         ctrl,
		config:       cfg,
		state:        appState,
		log:          logger.Named("ui"),
		help:         help.New(),
		keys:         newKeyMap(),
		spinner:      sp,
		viewport:     viewport.New(80, 20),
		navigator:    logic.NewNavigator(),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		eventHandler: handlers.NewEventHandler(appState),
		viewModel:    viewmodels.NewViewModel(appState, cfg),
		inputHandler: input.New(),
	}
	m.frame = interceptor.NewFrame(interceptor.NavigatorFunc(func(url string) {
		m.navQueue = append(m.navQueue, url)
	}))
	m.state.ContentVersion = ctrl.ContentVersion()

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// ReloadRequested reports whether the model quit to start a new session
func (m *Model) ReloadRequested() bool {
	return m.state.Reload
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.inputHandler.SetWidth(m.renderer.BodyWidth(msg.Width) - 20)
		m.relayout()
		m.ensureSelectedVisible()
		return m, nil

	case tea.KeyMsg:
		if m.state.ShowHelp {
			return m, m.handleHelpKey(msg)
		}

		actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}
	return m.renderer.Render(m.buildViewState())
}

func (m *Model) buildViewState() views.ViewState {
	st := m.ctrl.State()
	m.viewModel.SetDimensions(m.width, m.height)

	in := viewmodels.Inputs{
		Omnibox:        m.inputHandler.Omnibox().View(),
		OmniboxFocused: m.inputHandler.GetMode() == inputtypes.ModeOmnibox,
		ModeName:       m.inputHandler.ModeName(),
		Spinner:        m.spinner.View(),
		Body:           m.bodyView(),
		ShortHelp:      m.help.View(m.keys.withPage(st.ShowingPage())),
	}
	if m.state.ShowHelp {
		in.HelpContent = m.helpRenderer.renderHelpContent(m.viewport.Height, m.state.HelpScrollOffset)
	}
	return m.viewModel.BuildViewState(st, in)
}

func (m *Model) bodyView() string {
	body := m.viewport.View()
	if m.inputHandler.GetMode() == inputtypes.ModeFieldEdit {
		label := m.renderer.Styles().Field.Render("Edit field (enter to keep, esc to cancel): ")
		body = label + m.inputHandler.Field().View() + "\n" + body
	}
	return body
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		cmd := m.eventHandler.HandleEvent(msg.Event)
		// The status line may have grown or shrunk
		m.viewport.Height = m.bodyHeight()
		return m, cmd

	case controller.ReloadMsg:
		m.state.Reload = true
		m.frame.Unload()
		return m, tea.Quit

	case spinner.TickMsg:
		// Let the tick loop die while idle; the next request restarts it
		if !m.ctrl.State().Loading || m.inPagerMode {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerMsg:
		if msg.err != nil {
			m.log.Warn("pager failed", zap.String("url", msg.url), zap.Error(msg.err))
			m.state.StatusMessage = fmt.Sprintf("Pager error: %v", msg.err)
			m.viewport.Height = m.bodyHeight()
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil
	}

	if m.ctrl.Update(msg) {
		m.refresh()
		return m, nil
	}

	// Cursor blink and other widget messages
	return m, m.inputHandler.Update(msg)
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "esc", "?", "q":
		m.state.ToggleHelp()
	case "j", "down":
		m.state.ScrollHelp(1)
	case "k", "up":
		m.state.ScrollHelp(-1)
	}
	return nil
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.UpdateTextAction:
		if a.Mode == inputtypes.ModeOmnibox {
			m.ctrl.SetQuery(a.Text)
		}

	case inputtypes.SubmitTextAction:
		switch a.Mode {
		case inputtypes.ModeOmnibox:
			return m.startRequest(m.ctrl.Submit(a.Text))
		case inputtypes.ModeFieldEdit:
			m.commitField(a.Text)
		}

	case inputtypes.CancelTextAction:
		if a.Mode == inputtypes.ModeFieldEdit {
			m.editing = nil
			m.relayout()
		}

	case inputtypes.NavigateAction:
		m.state.SelectedIndex = m.navigator.Move(m.state.SelectedIndex, m.itemCount(), a.Direction)
		m.relayout()
		m.ensureSelectedVisible()

	case inputtypes.ScrollAction:
		offset := m.navigator.Scroll(m.viewport.YOffset, m.viewport.Height, m.viewport.TotalLineCount(), a.Direction)
		m.viewport.SetYOffset(offset)

	case inputtypes.ActivateAction:
		return m.activate()

	case inputtypes.ClosePageAction:
		m.ctrl.ClosePage()
		m.refresh()

	case inputtypes.NewSessionAction:
		m.state.StatusMessage = "Starting a new session…"
		return m.ctrl.NewSession()

	case inputtypes.OpenPagerAction:
		return m.openPager()

	case inputtypes.ToggleHelpAction:
		m.state.ToggleHelp()

	case inputtypes.QuitAction:
		return m.quit()
	}

	return nil
}

// activate acts on the selected result or page element
func (m *Model) activate() tea.Cmd {
	idx := m.state.SelectedIndex

	switch content := m.ctrl.State().Content.(type) {
	case controller.Results:
		if idx < 0 || idx >= len(content.Items) {
			return nil
		}
		return m.startRequest(m.ctrl.OpenURL(content.Items[idx].URL))

	case controller.PageView:
		if idx < 0 || idx >= len(m.layout.Elements) {
			return nil
		}
		el := m.layout.Elements[idx]
		switch el.Kind {
		case views.ElementLink:
			m.frame.Click(el.Node)
			return m.followNavigation()

		case views.ElementSubmit:
			m.frame.Submit(el.Node)
			return m.followNavigation()

		case views.ElementField:
			m.editing = el.Node
			cmd := m.inputHandler.ChangeMode(inputtypes.ModeFieldEdit, el.Value)
			m.relayout()
			return cmd

		case views.ElementCheck:
			if c := m.frame.Container(); c != nil {
				c.SetChecked(el.Node, isRadio(el.Node) || !c.Checked(el.Node))
				m.relayout()
			}
		}
	}
	return nil
}

// followNavigation opens whatever the interceptor asked for during the last
// dispatch
func (m *Model) followNavigation() tea.Cmd {
	queued := m.navQueue
	m.navQueue = nil
	if len(queued) == 0 {
		return nil
	}
	return m.startRequest(m.ctrl.OpenURL(queued[len(queued)-1]))
}

// startRequest syncs the view with a transition that just began and starts
// the spinner next to its network command
func (m *Model) startRequest(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	m.refresh()
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *Model) commitField(value string) {
	if c := m.frame.Container(); c != nil && m.editing != nil {
		c.SetFieldValue(m.editing, value)
	}
	m.editing = nil
	m.relayout()
}

// openPager shows the page text in ov
func (m *Model) openPager() tea.Cmd {
	page := m.ctrl.State().Page()
	if page.IsEmpty() {
		return nil
	}
	if m.program == nil {
		m.state.StatusMessage = "Pager unavailable"
		return nil
	}

	content := views.Clean(page.URL) + "\n\n" + m.layout.Text
	pager := m.pager
	program := m.program
	return func() tea.Msg {
		// Send pause message to stop rendering
		program.Send(pauseRenderingMsg{})

		err := pager.ShowInPager(content)

		// Send resume message to restart rendering
		program.Send(resumeRenderingMsg{})

		return pagerMsg{url: page.URL, err: err}
	}
}

func (m *Model) quit() tea.Cmd {
	m.frame.Unload()
	return tea.Quit
}

// refresh brings the frame, the selection and the viewport in line with the
// controller after a transition
func (m *Model) refresh() {
	st := m.ctrl.State()

	if v := m.ctrl.ContentVersion(); v != m.state.ContentVersion {
		m.state.ContentVersion = v
		m.state.ResetSelection()
		m.navQueue = nil
		if m.editing != nil {
			m.editing = nil
			m.inputHandler.ChangeMode(inputtypes.ModeBrowse, "")
		}
		m.viewport.SetYOffset(0)

		if st.ShowingPage() {
			if err := m.frame.Load(st.Page()); err != nil {
				m.log.Error("failed to load page markup", zap.String("url", st.Page().URL), zap.Error(err))
				m.state.StatusMessage = "Could not display page"
			}
		} else {
			m.frame.Unload()
		}
	}

	m.relayout()
}

// relayout re-renders the current content into the viewport
func (m *Model) relayout() {
	st := m.ctrl.State()
	width := m.bodyWidth()
	m.viewport.Width = width
	m.viewport.Height = m.bodyHeight()

	m.itemLines = m.itemLines[:0]
	switch content := st.Content.(type) {
	case controller.PageView:
		m.layout = m.renderer.LayoutPage(m.frame.Container(), width, m.state.SelectedIndex)
		for _, el := range m.layout.Elements {
			m.itemLines = append(m.itemLines, el.Line)
		}
		m.viewport.SetContent(m.layout.Text)

	case controller.Results:
		m.layout = views.PageLayout{}
		text, lines := m.renderer.RenderResults(content.Items, m.state.SelectedIndex, m.config.UISettings.ShowSnippets, m.width)
		m.itemLines = append(m.itemLines, lines...)
		m.viewport.SetContent(text)

	default:
		m.layout = views.PageLayout{}
		m.viewport.SetContent("")
	}

	if total := m.itemCount(); m.state.SelectedIndex >= total {
		m.state.SelectedIndex = m.navigator.Move(m.state.SelectedIndex, total, "")
	}
}

func (m *Model) ensureSelectedVisible() {
	idx := m.state.SelectedIndex
	if idx < 0 || idx >= len(m.itemLines) {
		return
	}
	m.viewport.SetYOffset(m.navigator.EnsureVisible(m.viewport.YOffset, m.viewport.Height, m.itemLines[idx]))
}

func (m *Model) bodyWidth() int {
	width := m.renderer.BodyWidth(m.width)
	if wrap := m.config.UISettings.WrapWidth; wrap > 0 && wrap < width {
		width = wrap
	}
	return width
}

// bodyHeight is what remains of the terminal after header, footer and the
// blank separator line
func (m *Model) bodyHeight() int {
	if m.height == 0 {
		return 20
	}
	vs := m.viewModel.BuildViewState(m.ctrl.State(), viewmodels.Inputs{
		ShortHelp: m.help.View(m.keys.withPage(m.ctrl.State().ShowingPage())),
	})
	vs.Width, vs.Height = m.width, m.height
	vs.Status = m.state.StatusMessage

	height := m.height - countLines(m.renderer.Header(vs)) - countLines(m.renderer.Footer(vs)) - 1
	if m.inputHandler.GetMode() == inputtypes.ModeFieldEdit {
		height--
	}
	return max(height, 3)
}

func (m *Model) itemCount() int {
	st := m.ctrl.State()
	if st.ShowingPage() {
		return len(m.layout.Elements)
	}
	return len(st.Results())
}

func (m *Model) inputContext() input.ModelContext {
	st := m.ctrl.State()
	return input.ModelContext{
		Page:     st.ShowingPage(),
		Results:  len(st.Results()),
		Busy:     st.Loading,
		Index:    m.state.SelectedIndex,
		Elements: m.itemCount(),
	}
}

func isRadio(n *html.Node) bool {
	for _, a := range n.Attr {
		if a.Key == "type" {
			return strings.EqualFold(strings.TrimSpace(a.Val), "radio")
		}
	}
	return false
}

func countLines(s string) int {
	return strings.Count(s, "\n") + 1
}
