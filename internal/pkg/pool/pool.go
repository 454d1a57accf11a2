package pool

import "sync"

// Pool is a fixed worker pool for best-effort background jobs.
type Pool struct {
	jobs chan func()
	wg   sync.WaitGroup
}

func New(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{
		jobs: make(chan func(), n*4),
	}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for f := range p.jobs {
				if f != nil {
					f()
				}
			}
		}()
	}
	return p
}

// Submit blocks until a worker can take the job.
func (p *Pool) Submit(f func()) {
	p.jobs <- f
}

// TrySubmit enqueues the job if the queue has room; it reports false and
// drops the job otherwise. Used for fire-and-forget work that must never
// block a caller.
func (p *Pool) TrySubmit(f func()) bool {
	select {
	case p.jobs <- f:
		return true
	default:
		return false
	}
}

func (p *Pool) Close() {
	close(p.jobs)
}

func (p *Pool) Wait() {
	p.wg.Wait()
}
