package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchRequested     EventType = "SearchRequested"
	EventResultsLoaded       EventType = "ResultsLoaded"
	EventNavigationRequested EventType = "NavigationRequested"
	EventPageLoaded          EventType = "PageLoaded"
	EventLoadFailed          EventType = "LoadFailed"
	EventStaleDiscarded      EventType = "StaleDiscarded"
	EventSessionReset        EventType = "SessionReset"
	EventConfigLoaded        EventType = "ConfigLoaded"
	EventConfigSaved         EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchRequestedEvent is emitted when a search query is sent to the backend
type SearchRequestedEvent struct {
	ID    string
	Query string
}

func (e SearchRequestedEvent) Type() EventType { return EventSearchRequested }

// ResultsLoadedEvent is emitted when search results replace the view
type ResultsLoadedEvent struct {
	ID    string
	Query string
	Count int
}

func (e ResultsLoadedEvent) Type() EventType { return EventResultsLoaded }

// NavigationRequestedEvent is emitted when a page is requested through the proxy
type NavigationRequestedEvent struct {
	ID  string
	URL string
}

func (e NavigationRequestedEvent) Type() EventType { return EventNavigationRequested }

// PageLoadedEvent is emitted when a proxied page replaces the view
type PageLoadedEvent struct {
	ID    string
	URL   string
	Bytes int
}

func (e PageLoadedEvent) Type() EventType { return EventPageLoaded }

// LoadFailedEvent is emitted when a search or proxy fetch surfaces an error
type LoadFailedEvent struct {
	ID      string
	Target  string // query or URL
	Message string
	Detail  string
}

func (e LoadFailedEvent) Type() EventType { return EventLoadFailed }

// StaleDiscardedEvent is emitted when a response arrives after a newer request started
type StaleDiscardedEvent struct {
	ID         string
	Generation uint64
	Latest     uint64
}

func (e StaleDiscardedEvent) Type() EventType { return EventStaleDiscarded }

// SessionResetEvent is emitted once the reset call has been attempted
type SessionResetEvent struct{}

func (e SessionResetEvent) Type() EventType { return EventSessionReset }

// ConfigLoadedEvent is emitted when configuration is read
type ConfigLoadedEvent struct {
	Path       string // empty when defaults were used
	BackendURL string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is written
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
