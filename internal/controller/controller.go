// Package controller is the view state machine. Transitions update the state
// synchronously and return a bubbletea command for their network half; the
// command's result message completes the transition when fed back to Update.
package controller

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"shroud/internal/classifier"
	"shroud/internal/domain"
	"shroud/internal/eventbus"
)

// Backend is the part of the backend client the controller drives
type Backend interface {
	Search(ctx context.Context, term string) ([]domain.SearchResult, error)
	FetchPage(ctx context.Context, url string) (domain.Page, error)
	ResetSession(ctx context.Context)
}

// Controller owns the ViewState. It is not safe for concurrent use; bubbletea
// calls it from the update loop only.
type Controller struct {
	ctx     context.Context
	backend Backend
	bus     eventbus.EventBus
	log     *zap.Logger

	state      ViewState
	generation uint64 // bumped by every request; only the newest may complete
	version    uint64 // bumped whenever the displayed content changes
}

// New creates a controller in the initial state. bus and logger may be nil.
func New(ctx context.Context, backend Backend, bus eventbus.EventBus, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		ctx:     ctx,
		backend: backend,
		bus:     bus,
		log:     logger.Named("controller"),
		state:   NewViewState(),
	}
}

// State returns a copy of the current state
func (c *Controller) State() ViewState {
	return c.state.clone()
}

// Generation returns the number of the newest request
func (c *Controller) Generation() uint64 {
	return c.generation
}

// ContentVersion changes whenever Content is replaced
func (c *Controller) ContentVersion() uint64 {
	return c.version
}

// SetQuery records the omnibox text as the user types
func (c *Controller) SetQuery(q string) {
	next := c.state
	next.Query = q
	c.commit(next)
}

// Submit classifies raw and starts a search or a page fetch. Blank input
// changes nothing.
func (c *Controller) Submit(raw string) tea.Cmd {
	input := strings.TrimSpace(raw)
	if input == "" {
		return nil
	}

	c.commit(ViewState{
		Query:   c.state.Query,
		Loading: true,
		Content: Idle{},
	})

	classified := classifier.Classify(input)
	if classified.IsURL() {
		return c.OpenURL(classified.Value)
	}
	return c.search(classified.Value)
}

func (c *Controller) search(term string) tea.Cmd {
	gen := c.nextGeneration()
	id := uuid.NewString()

	c.log.Debug("search requested", zap.String("id", id), zap.Uint64("gen", gen))
	c.publish(domain.SearchRequestedEvent{ID: id, Query: term})

	ctx, backend := c.ctx, c.backend
	return func() tea.Msg {
		results, err := backend.Search(ctx, term)
		return searchDoneMsg{gen: gen, id: id, query: term, results: results, err: err}
	}
}

// OpenURL fetches u through the proxy. Existing results stay visible until
// the fetch succeeds.
func (c *Controller) OpenURL(u string) tea.Cmd {
	next := c.state
	next.Loading = true
	next.Err = ""
	c.commit(next)

	gen := c.nextGeneration()
	id := uuid.NewString()

	c.log.Debug("navigation requested", zap.String("id", id), zap.Uint64("gen", gen))
	c.publish(domain.NavigationRequestedEvent{ID: id, URL: u})

	ctx, backend := c.ctx, c.backend
	return func() tea.Msg {
		page, err := backend.FetchPage(ctx, u)
		return pageDoneMsg{gen: gen, id: id, url: u, page: page, err: err}
	}
}

// ClosePage leaves the page view. It does nothing when no page is shown.
func (c *Controller) ClosePage() {
	if !c.state.ShowingPage() {
		return
	}
	next := c.state
	next.Content = Idle{}
	c.commit(next)
}

// NewSession resets the backend session and then asks for a reload, whether
// or not the reset worked. Responses still in flight are abandoned.
func (c *Controller) NewSession() tea.Cmd {
	c.nextGeneration()

	ctx, backend, bus := c.ctx, c.backend, c.bus
	log := c.log
	return func() tea.Msg {
		backend.ResetSession(ctx)
		log.Info("session reset, reloading")
		if bus != nil {
			bus.Publish(domain.SessionResetEvent{})
		}
		return ReloadMsg{}
	}
}

// Update completes a transition from its result message. It reports whether
// msg belonged to the controller.
func (c *Controller) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case searchDoneMsg:
		if c.stale(msg.gen, msg.id) {
			return true
		}
		c.completeSearch(msg)
		return true

	case pageDoneMsg:
		if c.stale(msg.gen, msg.id) {
			return true
		}
		c.completePage(msg)
		return true
	}
	return false
}

func (c *Controller) completeSearch(msg searchDoneMsg) {
	if msg.err != nil {
		message, detail := describe(msg.err)
		c.log.Warn("search failed", zap.String("id", msg.id), zap.String("detail", detail))
		c.publish(domain.LoadFailedEvent{ID: msg.id, Target: msg.query, Message: message, Detail: detail})

		c.commit(ViewState{
			Query:   c.state.Query,
			Err:     message,
			Content: Idle{},
		})
		return
	}

	items := msg.results
	if len(items) > domain.MaxResults {
		items = items[:domain.MaxResults]
	}
	c.publish(domain.ResultsLoadedEvent{ID: msg.id, Query: msg.query, Count: len(items)})

	c.commit(ViewState{
		Query:   c.state.Query,
		Content: Results{Items: items},
	})
}

func (c *Controller) completePage(msg pageDoneMsg) {
	if msg.err != nil {
		message, detail := describe(msg.err)
		c.log.Warn("proxy fetch failed", zap.String("id", msg.id), zap.String("detail", detail))
		c.publish(domain.LoadFailedEvent{ID: msg.id, Target: msg.url, Message: message, Detail: detail})

		content := c.state.Content
		if c.state.ShowingPage() {
			content = Idle{}
		}
		c.commit(ViewState{
			Query:   c.state.Query,
			Err:     message,
			Content: content,
		})
		return
	}

	c.log.Info("page loaded", zap.String("id", msg.id), zap.Int("bytes", len(msg.page.HTML)))
	c.publish(domain.PageLoadedEvent{ID: msg.id, URL: msg.page.URL, Bytes: len(msg.page.HTML)})

	// a page with no markup is not displayed; results are dropped all the same
	var content Content = PageView{Page: msg.page}
	if msg.page.IsEmpty() {
		content = Idle{}
	}
	c.commit(ViewState{
		Query:   c.state.Query,
		Content: content,
	})
}

// stale reports and drops responses overtaken by a newer request
func (c *Controller) stale(gen uint64, id string) bool {
	if gen == c.generation {
		return false
	}
	c.log.Debug("discarding stale response",
		zap.String("id", id),
		zap.Uint64("gen", gen),
		zap.Uint64("latest", c.generation))
	c.publish(domain.StaleDiscardedEvent{ID: id, Generation: gen, Latest: c.generation})
	return true
}

// commit replaces the whole state in one step
func (c *Controller) commit(next ViewState) {
	if !sameContent(c.state.Content, next.Content) {
		c.version++
	}
	c.state = next
}

func sameContent(a, b Content) bool {
	switch a := a.(type) {
	case Idle:
		_, ok := b.(Idle)
		return ok
	case Results:
		r, ok := b.(Results)
		if !ok || len(a.Items) != len(r.Items) {
			return false
		}
		return len(a.Items) == 0 || &a.Items[0] == &r.Items[0]
	case PageView:
		p, ok := b.(PageView)
		return ok && p.Page == a.Page
	}
	return false
}

func (c *Controller) nextGeneration() uint64 {
	c.generation++
	return c.generation
}

func (c *Controller) publish(event domain.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}

// describe splits an error into the user-facing message and a log detail
func describe(err error) (message, detail string) {
	var netErr *domain.NetworkError
	if errors.As(err, &netErr) {
		return netErr.Message, netErr.Detail()
	}
	return err.Error(), err.Error()
}
