package cache

import (
	"strings"
	"sync"
	"time"
)

type localEntry struct {
	value     string
	expiresAt time.Time
}

// localTier is the in-process fallback tier: a mutex-guarded map with an
// absolute expiry per entry. Expired entries are treated as absent and
// removed lazily on read.
type localTier struct {
	mu      sync.RWMutex
	entries map[string]localEntry
	now     func() time.Time
}

func newLocalTier(now func() time.Time) *localTier {
	if now == nil {
		now = time.Now
	}
	return &localTier{
		entries: make(map[string]localEntry),
		now:     now,
	}
}

func (t *localTier) get(key string) (string, bool) {
	t.mu.RLock()
	entry, ok := t.entries[key]
	t.mu.RUnlock()

	if !ok {
		return "", false
	}
	if !t.now().Before(entry.expiresAt) {
		t.mu.Lock()
		delete(t.entries, key)
		t.mu.Unlock()
		return "", false
	}
	return entry.value, true
}

func (t *localTier) set(key, value string, ttl time.Duration) {
	t.mu.Lock()
	t.entries[key] = localEntry{value: value, expiresAt: t.now().Add(ttl)}
	t.mu.Unlock()
}

func (t *localTier) delete(key string) {
	t.mu.Lock()
	delete(t.entries, key)
	t.mu.Unlock()
}

// deleteSuffix removes every entry whose key ends with the given suffix,
// e.g. ":tr" for a per-language clear.
func (t *localTier) deleteSuffix(suffix string) {
	t.mu.Lock()
	for key := range t.entries {
		if strings.HasSuffix(key, suffix) {
			delete(t.entries, key)
		}
	}
	t.mu.Unlock()
}

func (t *localTier) clear() {
	t.mu.Lock()
	t.entries = make(map[string]localEntry)
	t.mu.Unlock()
}

// len counts live entries only.
func (t *localTier) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	now := t.now()
	count := 0
	for _, entry := range t.entries {
		if now.Before(entry.expiresAt) {
			count++
		}
	}
	return count
}
