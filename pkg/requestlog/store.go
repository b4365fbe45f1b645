package requestlog

// Logger is the minimal interface for recording dispatched requests.
type Logger interface {
	Log(entry *Entry)
}

// Store defines the interface for request history storage.
// Store embeds Logger, so any Store implementation can be used where Logger is expected.
type Store interface {
	Logger

	// Get retrieves a log entry by ID.
	Get(id string) *Entry

	// List returns log entries, newest first, optionally filtered.
	List(filter *Filter) []*Entry

	// Clear removes all log entries.
	Clear()

	// Count returns the number of log entries.
	Count() int
}

// Filter defines criteria for filtering request logs.
type Filter struct {
	// Method filters by HTTP method (case-insensitive).
	Method string

	// URL filters by exact request URL.
	URL string

	// MatchedID filters by matched expectation ID.
	MatchedID string

	// Matched filters by match outcome.
	Matched *bool

	// Limit is the maximum number of entries to return.
	Limit int

	// Offset is the number of entries to skip.
	Offset int
}

// Subscriber is a channel that receives new log entries.
type Subscriber chan *Entry

// SubscribableStore extends Store with subscription support for real-time updates.
type SubscribableStore interface {
	Store

	// Subscribe registers a subscriber to receive new log entries.
	// Returns a channel that will receive entries and an unsubscribe function.
	Subscribe() (Subscriber, func())
}
