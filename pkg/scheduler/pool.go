package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
)

// pendingItem is an armed timer, or a fired item queued for a free worker.
// It stays in the pending set until a worker starts it.
type pendingItem struct {
	timer *time.Timer
	work  func()
}

// Pool arms one timer per item and runs fired items on a bounded pool of
// worker goroutines.
type Pool struct {
	name   string
	logger *slog.Logger

	workers *pool.Pool

	mu     sync.Mutex
	items  map[Handle]*pendingItem
	next   Handle
	closed bool

	// submitting counts fire callbacks that have not yet returned from
	// workers.Go, so Shutdown can wait for them before waiting on the pool
	// itself.
	submitting sync.WaitGroup

	// stopped is closed once the first Shutdown has drained the workers.
	stopped chan struct{}
}

// NewPool creates a pool scheduler with at most size concurrent workers.
func NewPool(name string, size int, opts ...Option) *Pool {
	if size <= 0 {
		size = DefaultPoolSize
	}
	o := applyOptions(opts)
	return &Pool{
		name:    name,
		logger:  o.logger,
		workers: pool.New().WithMaxGoroutines(size),
		items:   make(map[Handle]*pendingItem),
		stopped: make(chan struct{}),
	}
}

// Schedule arms a timer that submits work to the pool after delay.
func (p *Pool) Schedule(work func(), delay time.Duration) Handle {
	if delay < 0 {
		delay = 0
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return InvalidHandle
	}
	p.next++
	h := p.next
	it := &pendingItem{work: work}
	p.items[h] = it
	it.timer = time.AfterFunc(delay, func() {
		p.fire(h)
	})

	p.debugLog("scheduled", "handle", uint64(h), "delay", delay)
	return h
}

// Cancel stops a pending item's timer and forgets it. Items that fired but
// still wait for a free worker are canceled as well.
func (p *Pool) Cancel(h Handle) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	it, exists := p.items[h]
	if !exists {
		return false
	}
	it.timer.Stop()
	delete(p.items, h)
	return true
}

// Pending returns the number of items no worker has started.
func (p *Pool) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

// Shutdown drops items no worker has started and waits for running work.
// Later calls wait for the first one to finish.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		<-p.stopped
		return
	}
	p.closed = true
	dropped := len(p.items)
	for h, it := range p.items {
		it.timer.Stop()
		delete(p.items, h)
	}
	p.mu.Unlock()

	p.submitting.Wait()
	p.workers.Wait()
	close(p.stopped)
	p.debugLog("shut down", "dropped", dropped)
}

// fire queues a fired item on the worker pool. The item leaves the pending
// set only when a worker starts it, so a Cancel that wins the lock first
// turns the queued closure into a no-op.
func (p *Pool) fire(h Handle) {
	p.mu.Lock()
	if _, exists := p.items[h]; !exists || p.closed {
		p.mu.Unlock()
		return
	}
	p.submitting.Add(1)
	p.mu.Unlock()

	defer p.submitting.Done()
	p.workers.Go(func() {
		if work := p.start(h); work != nil {
			run(p.name, h, work, p.logger)
		}
	})
}

// start removes h from the pending set and returns its work, or nil if the
// item was canceled or dropped while queued.
func (p *Pool) start(h Handle) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	it, exists := p.items[h]
	if !exists {
		return nil
	}
	delete(p.items, h)
	return it.work
}

func (p *Pool) debugLog(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, append([]any{"scheduler", p.name}, args...)...)
	}
}
