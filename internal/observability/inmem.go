package observability

import "sync"

// Inmem keeps the last N observations in a ring for debugging endpoints
// and tests.
type Inmem struct {
	mu     sync.Mutex
	last   []any
	max    int
	totals struct {
		cacheHits, cacheMiss int
	}
}

func NewInmem(max int) *Inmem {
	return &Inmem{
		max: max,
	}
}

func (m *Inmem) push(v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = append(m.last, v)
	if len(m.last) > m.max {
		m.last = m.last[1:]
	}
}

func (m *Inmem) ObserveSync(resource string, durMs float64, ok bool) {
	m.push(struct {
		Kind     string
		Resource string
		Dur      float64
		OK       bool
	}{"sync", resource, durMs, ok})
}

func (m *Inmem) ObserveCheckout(step string, durMs float64, ok bool) {
	m.push(struct {
		Kind string
		Step string
		Dur  float64
		OK   bool
	}{"checkout", step, durMs, ok})
}

func (m *Inmem) ObserveHTTP(method, route string, status int, durMs float64) {
	m.push(struct {
		Kind          string
		Method, Route string
		Status        int
		Dur           float64
	}{"http", method, route, status, durMs})
}

func (m *Inmem) IncCacheHit() {
	m.mu.Lock()
	m.totals.cacheHits++
	m.mu.Unlock()
}

func (m *Inmem) IncCacheMiss() {
	m.mu.Lock()
	m.totals.cacheMiss++
	m.mu.Unlock()
}

// CacheTotals reports accumulated hit/miss counters.
func (m *Inmem) CacheTotals() (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals.cacheHits, m.totals.cacheMiss
}

// Last returns a copy of the retained observations, oldest first.
func (m *Inmem) Last() []any {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]any, len(m.last))
	copy(out, m.last)
	return out
}
