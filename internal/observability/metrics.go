package observability

type Metrics interface {
	ObserveSync(resource string, durMs float64, ok bool)
	ObserveCheckout(step string, durMs float64, ok bool)
	ObserveHTTP(method, route string, status int, durMs float64)
	IncCacheHit()
	IncCacheMiss()
}

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) ObserveSync(string, float64, bool)        {}
func (Noop) ObserveCheckout(string, float64, bool)    {}
func (Noop) ObserveHTTP(string, string, int, float64) {}
func (Noop) IncCacheHit()                             {}
func (Noop) IncCacheMiss()                            {}
