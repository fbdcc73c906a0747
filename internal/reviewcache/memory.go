package reviewcache

import (
	"sync"
	"time"

	"github.com/HafizAhmed223/backend/internal/extractor"
	"github.com/HafizAhmed223/backend/pkg/timeutil"
)

// entry holds one cached review list together with its expiry instant.
// An entry is live up to and including expiresAt and dead after it.
type entry struct {
	reviews   []extractor.Review
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// MemoryStore is an in-memory implementation of the Store interface.
// It uses a map for storage and provides thread-safe operations via RWMutex.
//
// Entries carry a fixed time-to-live counted from the moment of each write.
// Expiry is enforced lazily on read: Get treats a dead entry as missing but
// leaves its removal to Sweep, which the Janitor runs periodically. The
// cache lives only for the lifetime of the process, there is no persistence.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	clock   timeutil.Clock
}

// NewMemoryStore creates a new in-memory review store whose entries
// live for ttl after each write. A nil clock falls back to the system
// clock; tests inject a fake one to steer expiry.
func NewMemoryStore(ttl time.Duration, clock timeutil.Clock) *MemoryStore {
	if clock == nil {
		clock = timeutil.NewSystemClock()
	}
	return &MemoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		clock:   clock,
	}
}

// Get retrieves the cached review list for a product identifier.
// This method is thread-safe for concurrent reads.
// A dead entry is reported as missing without being removed.
// The returned slice is a copy; callers may not mutate cache contents.
func (s *MemoryStore) Get(productID string) ([]extractor.Review, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[productID]
	if !exists || e.expired(s.clock.Now()) {
		return nil, false
	}

	reviews := make([]extractor.Review, len(e.reviews))
	copy(reviews, e.reviews)
	return reviews, true
}

// Set stores a review list under a product identifier.
// This method is thread-safe for concurrent writes.
// An existing entry is replaced in full and its lifetime restarts;
// readers observe either the old list or the new one, never a mix.
func (s *MemoryStore) Set(productID string, reviews []extractor.Review) {
	stored := make([]extractor.Review, len(reviews))
	copy(stored, reviews)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[productID] = entry{
		reviews:   stored,
		expiresAt: s.clock.Now().Add(s.ttl),
	}
}

// Sweep removes every dead entry and reports how many were evicted
// and how many live entries remain.
func (s *MemoryStore) Sweep() (evicted int, remaining int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	for productID, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, productID)
			evicted++
		}
	}
	return evicted, len(s.entries)
}

// Size returns the number of entries in the cache, dead ones included.
// This method is primarily useful for testing and diagnostics.
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Clear removes all entries from the cache.
// This method is primarily useful for testing.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]entry)
}

var _ Store = (*MemoryStore)(nil)
