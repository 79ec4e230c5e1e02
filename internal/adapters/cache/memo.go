package cache

import "sync"

// Memo holds a single last-known-good value and the key it was loaded for.
// A Get with a different key replaces it. Loads run without the lock held,
// so concurrent misses may load twice; the later result wins unless the memo
// was changed while loading.
type Memo[K comparable, V any] struct {
	mu    sync.Mutex
	key   K
	value V
	ok    bool
	gen   uint64
}

// Get returns the memoized value for key, calling load when the memo is
// empty or holds another key. A failed load leaves the memo empty.
func (m *Memo[K, V]) Get(key K, load func() (V, error)) (V, error) {
	m.mu.Lock()
	if m.ok && m.key == key {
		value := m.value
		m.mu.Unlock()
		return value, nil
	}
	gen := m.gen
	m.mu.Unlock()

	value, err := load()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		// changed while loading; hand back the result without storing it
		if err != nil {
			var zero V
			return zero, err
		}
		return value, nil
	}
	m.gen++
	if err != nil {
		var zero V
		m.key, m.value, m.ok = key, zero, false
		return zero, err
	}
	m.key, m.value, m.ok = key, value, true
	return value, nil
}

// Peek returns the memoized value without loading.
func (m *Memo[K, V]) Peek(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ok && m.key == key {
		return m.value, true
	}
	var zero V
	return zero, false
}

// Put stores value for key.
func (m *Memo[K, V]) Put(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	m.key, m.value, m.ok = key, value, true
}

// Invalidate empties the memo.
func (m *Memo[K, V]) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	var zeroK K
	var zeroV V
	m.key, m.value, m.ok = zeroK, zeroV, false
}
