package scheduler

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// strategies runs a test against both implementations.
func strategies(t *testing.T, fn func(t *testing.T, s Scheduler)) {
	t.Helper()
	t.Run("single", func(t *testing.T) {
		s := New(StrategySingleThreaded, "test-single", 0)
		defer s.Shutdown()
		fn(t, s)
	})
	t.Run("pool", func(t *testing.T) {
		s := New(StrategyPool, "test-pool", 2)
		defer s.Shutdown()
		fn(t, s)
	})
}

func TestScheduleRunsOnce(t *testing.T) {
	strategies(t, func(t *testing.T, s Scheduler) {
		var runs atomic.Int32
		done := make(chan struct{})

		h := s.Schedule(func() {
			runs.Add(1)
			close(done)
		}, 10*time.Millisecond)
		require.NotEqual(t, InvalidHandle, h)

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("work did not run")
		}

		time.Sleep(30 * time.Millisecond)
		assert.Equal(t, int32(1), runs.Load())
		assert.Equal(t, 0, s.Pending(), "fired item must leave the pending set")
	})
}

func TestCancelBeforeFire(t *testing.T) {
	strategies(t, func(t *testing.T, s Scheduler) {
		var ran atomic.Bool

		h := s.Schedule(func() { ran.Store(true) }, 50*time.Millisecond)
		assert.Equal(t, 1, s.Pending())
		assert.True(t, s.Cancel(h))
		assert.Equal(t, 0, s.Pending())

		time.Sleep(100 * time.Millisecond)
		assert.False(t, ran.Load(), "canceled item must never run")
		assert.False(t, s.Cancel(h), "second cancel must fail")
	})
}

func TestCancelAfterFire(t *testing.T) {
	strategies(t, func(t *testing.T, s Scheduler) {
		done := make(chan struct{})
		h := s.Schedule(func() { close(done) }, time.Millisecond)

		<-done
		assert.False(t, s.Cancel(h))
	})
}

func TestCancelWhileRunning(t *testing.T) {
	strategies(t, func(t *testing.T, s Scheduler) {
		started := make(chan struct{})
		release := make(chan struct{})
		var finished atomic.Bool

		h := s.Schedule(func() {
			close(started)
			<-release
			finished.Store(true)
		}, 0)

		<-started
		assert.False(t, s.Cancel(h), "running item cannot be canceled")
		close(release)

		assert.Eventually(t, finished.Load, time.Second, 5*time.Millisecond)
	})
}

func TestCancelUnknownHandle(t *testing.T) {
	strategies(t, func(t *testing.T, s Scheduler) {
		assert.False(t, s.Cancel(InvalidHandle))
		assert.False(t, s.Cancel(Handle(12345)))
	})
}

func TestRepeatedScheduleCancelDoesNotLeak(t *testing.T) {
	strategies(t, func(t *testing.T, s Scheduler) {
		for i := 0; i < 1000; i++ {
			h := s.Schedule(func() {}, time.Hour)
			require.True(t, s.Cancel(h))
		}
		assert.Equal(t, 0, s.Pending())
	})
}

func TestShutdownDropsPending(t *testing.T) {
	for _, strategy := range []Strategy{StrategySingleThreaded, StrategyPool} {
		t.Run(strategy.String(), func(t *testing.T) {
			s := New(strategy, "shutdown", 2)
			var ran atomic.Int32

			for i := 0; i < 10; i++ {
				s.Schedule(func() { ran.Add(1) }, 50*time.Millisecond)
			}
			canceled := s.Schedule(func() { ran.Add(100) }, 10*time.Millisecond)
			require.True(t, s.Cancel(canceled))

			s.Shutdown()
			assert.Equal(t, 0, s.Pending())

			time.Sleep(100 * time.Millisecond)
			assert.Equal(t, int32(0), ran.Load())
			assert.Equal(t, InvalidHandle, s.Schedule(func() {}, 0))

			// Idempotent.
			s.Shutdown()
		})
	}
}

func TestShutdownWaitsForRunningWork(t *testing.T) {
	for _, strategy := range []Strategy{StrategySingleThreaded, StrategyPool} {
		t.Run(strategy.String(), func(t *testing.T) {
			s := New(strategy, "shutdown-wait", 2)
			started := make(chan struct{})
			var finished atomic.Bool

			s.Schedule(func() {
				close(started)
				time.Sleep(50 * time.Millisecond)
				finished.Store(true)
			}, 0)

			<-started
			s.Shutdown()
			assert.True(t, finished.Load())
		})
	}
}

func TestSecondShutdownWaitsForRunningWork(t *testing.T) {
	for _, strategy := range []Strategy{StrategySingleThreaded, StrategyPool} {
		t.Run(strategy.String(), func(t *testing.T) {
			s := New(strategy, "shutdown-twice", 2)
			started := make(chan struct{})
			release := make(chan struct{})
			var finished atomic.Bool

			s.Schedule(func() {
				close(started)
				<-release
				finished.Store(true)
			}, 0)
			<-started

			go s.Shutdown()
			time.Sleep(20 * time.Millisecond)

			second := make(chan struct{})
			go func() {
				s.Shutdown()
				close(second)
			}()

			select {
			case <-second:
				t.Fatal("second Shutdown returned while work was running")
			case <-time.After(50 * time.Millisecond):
			}

			close(release)
			select {
			case <-second:
			case <-time.After(time.Second):
				t.Fatal("second Shutdown did not return")
			}
			assert.True(t, finished.Load())
		})
	}
}

func TestPoolCancelsItemQueuedForWorker(t *testing.T) {
	s := NewPool("saturated", 1)
	defer s.Shutdown()

	started := make(chan struct{})
	release := make(chan struct{})
	s.Schedule(func() {
		close(started)
		<-release
	}, 0)
	<-started

	var ran atomic.Bool
	h := s.Schedule(func() { ran.Store(true) }, time.Millisecond)

	// The timer fires while the only worker is busy.
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, s.Pending())
	assert.True(t, s.Cancel(h), "queued item has not started and must be cancelable")
	assert.Equal(t, 0, s.Pending())

	close(release)
	time.Sleep(50 * time.Millisecond)
	assert.False(t, ran.Load(), "canceled item must never run")
}

func TestSingleThreadedPreservesOrder(t *testing.T) {
	s := NewSingleThreaded("order")
	defer s.Shutdown()

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	wg.Add(4)

	record := func(n int) func() {
		return func() {
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
			wg.Done()
		}
	}

	s.Schedule(record(3), 60*time.Millisecond)
	s.Schedule(record(1), 20*time.Millisecond)
	s.Schedule(record(4), 80*time.Millisecond)
	s.Schedule(record(2), 40*time.Millisecond)

	wg.Wait()
	assert.Equal(t, []int{1, 2, 3, 4}, order)
}

func TestSingleThreadedSlowItemDelaysLaterOnes(t *testing.T) {
	s := NewSingleThreaded("slow")
	defer s.Shutdown()

	start := time.Now()
	secondAt := make(chan time.Duration, 1)

	s.Schedule(func() { time.Sleep(150 * time.Millisecond) }, 0)
	s.Schedule(func() { secondAt <- time.Since(start) }, 10*time.Millisecond)

	elapsed := <-secondAt
	assert.GreaterOrEqual(t, elapsed, 140*time.Millisecond)
}

func TestPoolRunsConcurrently(t *testing.T) {
	s := NewPool("concurrent", 2)
	defer s.Shutdown()

	var running, peak atomic.Int32
	var wg sync.WaitGroup
	wg.Add(2)

	for i := 0; i < 2; i++ {
		s.Schedule(func() {
			defer wg.Done()
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(50 * time.Millisecond)
			running.Add(-1)
		}, 0)
	}

	wg.Wait()
	assert.Equal(t, int32(2), peak.Load())
}

func TestPanickingWorkDoesNotStopScheduler(t *testing.T) {
	strategies(t, func(t *testing.T, s Scheduler) {
		done := make(chan struct{})
		s.Schedule(func() { panic("boom") }, 0)
		s.Schedule(func() { close(done) }, 10*time.Millisecond)

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("scheduler stopped after panic")
		}
	})
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("pool")
	require.NoError(t, err)
	assert.Equal(t, StrategyPool, s)

	s, err = ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategySingleThreaded, s)

	_, err = ParseStrategy("fibers")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}
