package circuit

import (
	"errors"
	"sync"
	"time"
)

var ErrOpen = errors.New("circuit open")

type State int

const (
	Closed   State = iota // Ok, normal behavior
	Open                  // Open the breaker, do not allow requests until the timeout passes
	HalfOpen              // Half-open state, with trial requests
)

// Breaker guards calls to the storefront backend. After 'threshold'
// consecutive errors in Closed state it opens the circuit; in Open state
// it blocks all requests for 'halfOpenAfter'; in HalfOpen state it allows
// up to 'maxHalfOpen' trial requests. Outcomes must be reported via
// Success()/Failure().
type Breaker struct {
	mu                 sync.Mutex
	state              State
	errs, threshold    int
	halfOpenAfter      time.Duration
	lastChange         time.Time
	trial, maxHalfOpen int
}

func New(threshold int, wait time.Duration, maxHalfOpen int) *Breaker {
	return &Breaker{
		state:         Closed,
		threshold:     threshold,
		halfOpenAfter: wait,
		lastChange:    time.Now(),
		maxHalfOpen:   maxHalfOpen,
	}
}

// Allow checks if a request is permitted.
// Returns ErrOpen if circuit is open or half-open trial limit reached.
// Automatically transitions Open→HalfOpen after timeout.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	switch b.state {
	case Open:
		if now.Sub(b.lastChange) >= b.halfOpenAfter {
			b.transitionTo(now, HalfOpen)
			b.trial++
			return nil
		}
		return ErrOpen
	case HalfOpen:
		if b.trial >= b.maxHalfOpen {
			return ErrOpen
		}
		b.trial++
		return nil
	default: // Closed
		return nil
	}
}

// Success reports a successful operation.
// Resets error count and transitions HalfOpen→Closed.
func (b *Breaker) Success() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case HalfOpen:
		b.transitionTo(time.Now(), Closed)
	case Closed:
		b.errs = 0
	}
}

// Failure reports a failed operation.
// Triggers Closed→Open transition if error threshold reached.
// Immediate HalfOpen→Open transition on any failure.
func (b *Breaker) Failure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	switch b.state {
	case HalfOpen:
		b.transitionTo(now, Open)
	case Closed:
		b.errs++
		if b.errs >= b.threshold {
			b.transitionTo(now, Open)
		}
	}
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) transitionTo(now time.Time, next State) {
	b.state = next
	b.lastChange = now
	b.trial = 0
	if next == Closed {
		b.errs = 0
	}
}
