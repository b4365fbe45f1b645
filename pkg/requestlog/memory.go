package requestlog

import (
	"strings"
	"sync"
	"time"
)

// DefaultCapacity is the number of entries a MemoryStore keeps when no
// capacity is given.
const DefaultCapacity = 1000

// MemoryStore implements SubscribableStore with an in-memory circular buffer.
// When full, the oldest entry is evicted.
type MemoryStore struct {
	entries     []*Entry
	maxEntries  int
	mu          sync.RWMutex
	nextID      int64
	subscribers map[Subscriber]struct{}
	subMu       sync.RWMutex
}

// NewMemoryStore creates a MemoryStore with the given capacity.
func NewMemoryStore(maxEntries int) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = DefaultCapacity
	}
	return &MemoryStore{
		entries:     make([]*Entry, 0, maxEntries),
		maxEntries:  maxEntries,
		subscribers: make(map[Subscriber]struct{}),
	}
}

// Log records an entry, filling in ID and timestamp when missing.
func (s *MemoryStore) Log(entry *Entry) {
	if entry == nil {
		return
	}

	s.mu.Lock()

	if entry.ID == "" {
		s.nextID++
		entry.ID = generateLogID(s.nextID)
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	// FIFO eviction
	if len(s.entries) >= s.maxEntries {
		s.entries = s.entries[1:]
	}
	s.entries = append(s.entries, entry)
	s.mu.Unlock()

	// Notify subscribers (non-blocking)
	s.subMu.RLock()
	for sub := range s.subscribers {
		select {
		case sub <- entry:
		default:
			// Drop if subscriber is slow
		}
	}
	s.subMu.RUnlock()
}

// Get retrieves a log entry by ID.
func (s *MemoryStore) Get(id string) *Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, entry := range s.entries {
		if entry.ID == id {
			return entry
		}
	}
	return nil
}

// List returns log entries newest first, optionally filtered.
func (s *MemoryStore) List(filter *Filter) []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Entry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		entry := s.entries[i]
		if filter != nil && !matchesFilter(entry, filter) {
			continue
		}
		result = append(result, entry)
	}

	if filter != nil {
		if filter.Offset > 0 {
			if filter.Offset >= len(result) {
				return []*Entry{}
			}
			result = result[filter.Offset:]
		}
		if filter.Limit > 0 && filter.Limit < len(result) {
			result = result[:filter.Limit]
		}
	}

	return result
}

func matchesFilter(entry *Entry, filter *Filter) bool {
	if filter.Method != "" && !strings.EqualFold(entry.Method, filter.Method) {
		return false
	}
	if filter.URL != "" && entry.URL != filter.URL {
		return false
	}
	if filter.MatchedID != "" && entry.MatchedID != filter.MatchedID {
		return false
	}
	if filter.Matched != nil && entry.Matched != *filter.Matched {
		return false
	}
	return true
}

// Clear removes all log entries. ID numbering restarts.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make([]*Entry, 0, s.maxEntries)
	s.nextID = 0
}

// Count returns the number of log entries.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Subscribe registers a subscriber to receive new log entries.
// Returns a channel that will receive entries and an unsubscribe function.
func (s *MemoryStore) Subscribe() (Subscriber, func()) {
	ch := make(Subscriber, 100)

	s.subMu.Lock()
	s.subscribers[ch] = struct{}{}
	s.subMu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subscribers, ch)
			s.subMu.Unlock()
			close(ch)
		})
	}

	return ch, unsubscribe
}

// generateLogID generates a sequential log entry ID ("req-1", "req-a", ...).
func generateLogID(n int64) string {
	const charset = "0123456789abcdefghijklmnopqrstuvwxyz"
	if n == 0 {
		return "req-0"
	}

	var result []byte
	for n > 0 {
		result = append([]byte{charset[n%36]}, result...)
		n /= 36
	}
	return "req-" + string(result)
}

var _ SubscribableStore = (*MemoryStore)(nil)
