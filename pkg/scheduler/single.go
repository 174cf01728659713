package scheduler

import (
	"container/heap"
	"log/slog"
	"sync"
	"time"
)

// item is a pending unit of work.
type item struct {
	handle Handle
	due    time.Time
	seq    uint64
	work   func()
	index  int
}

// itemQueue is a min-heap ordered by due time, then submission order.
type itemQueue []*item

func (q itemQueue) Len() int { return len(q) }

func (q itemQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}

func (q itemQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *itemQueue) Push(x any) {
	it := x.(*item)
	it.index = len(*q)
	*q = append(*q, it)
}

func (q *itemQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*q = old[:n-1]
	return it
}

// SingleThreaded executes all work serially on one dedicated goroutine.
type SingleThreaded struct {
	name   string
	logger *slog.Logger

	mu     sync.Mutex
	items  map[Handle]*item
	queue  itemQueue
	next   Handle
	seq    uint64
	closed bool

	wake    chan struct{}
	done    chan struct{}
	stopped chan struct{}
}

// NewSingleThreaded starts a scheduler with a single worker goroutine.
func NewSingleThreaded(name string, opts ...Option) *SingleThreaded {
	o := applyOptions(opts)
	s := &SingleThreaded{
		name:    name,
		logger:  o.logger,
		items:   make(map[Handle]*item),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.loop()
	return s
}

// Schedule queues work to run after delay.
func (s *SingleThreaded) Schedule(work func(), delay time.Duration) Handle {
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return InvalidHandle
	}
	s.next++
	s.seq++
	it := &item{
		handle: s.next,
		due:    time.Now().Add(delay),
		seq:    s.seq,
		work:   work,
	}
	s.items[it.handle] = it
	heap.Push(&s.queue, it)
	s.mu.Unlock()

	s.signal()
	s.debugLog("scheduled", "handle", uint64(it.handle), "delay", delay)
	return it.handle
}

// Cancel removes a pending item.
func (s *SingleThreaded) Cancel(h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, exists := s.items[h]
	if !exists {
		return false
	}
	heap.Remove(&s.queue, it.index)
	delete(s.items, h)
	it.work = nil
	return true
}

// Pending returns the number of queued items.
func (s *SingleThreaded) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Shutdown drops pending items and waits for the worker to exit.
func (s *SingleThreaded) Shutdown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.stopped
		return
	}
	s.closed = true
	dropped := len(s.items)
	s.items = make(map[Handle]*item)
	s.queue = nil
	s.mu.Unlock()

	close(s.done)
	<-s.stopped
	s.debugLog("shut down", "dropped", dropped)
}

func (s *SingleThreaded) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// loop pops due items and runs them one at a time. An item is removed from
// the pending set before it runs, which makes Cancel fail from that point on.
func (s *SingleThreaded) loop() {
	defer close(s.stopped)

	timer := time.NewTimer(time.Hour)
	timer.Stop()

	for {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return
		}

		wait := time.Duration(-1)
		if len(s.queue) > 0 {
			next := s.queue[0]
			now := time.Now()
			if !now.Before(next.due) {
				heap.Pop(&s.queue)
				delete(s.items, next.handle)
				work := next.work
				s.mu.Unlock()

				run(s.name, next.handle, work, s.logger)
				continue
			}
			wait = next.due.Sub(now)
		}
		s.mu.Unlock()

		if wait < 0 {
			select {
			case <-s.wake:
			case <-s.done:
				return
			}
			continue
		}

		timer.Reset(wait)
		select {
		case <-timer.C:
		case <-s.wake:
			timer.Stop()
		case <-s.done:
			timer.Stop()
			return
		}
	}
}

func (s *SingleThreaded) debugLog(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, append([]any{"scheduler", s.name}, args...)...)
	}
}
