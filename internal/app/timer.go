package app

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var (
	ErrTimerRunning    = errors.New("app: timer already started")
	ErrInvalidInterval = errors.New("app: timer interval must be positive")
)

// Timer calls tick on its own goroutine once per interval. Ticks never
// overlap: a slow tick delays the next one instead of running beside it.
type Timer struct {
	interval time.Duration
	tick     func()
	log      *zap.Logger

	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	started  atomic.Bool
	running  atomic.Bool

	errMu sync.Mutex
	err   error
}

func NewTimer(interval time.Duration, tick func(), log *zap.Logger) *Timer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Timer{
		interval: interval,
		tick:     tick,
		log:      log,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the tick goroutine. A Timer starts at most once.
func (t *Timer) Start() error {
	if t.interval <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, t.interval)
	}
	if !t.started.CompareAndSwap(false, true) {
		return ErrTimerRunning
	}
	t.running.Store(true)
	t.wg.Add(1)
	go t.loop()
	t.log.Debug("timer started", zap.Duration("interval", t.interval))
	return nil
}

// Stop halts ticking and waits for a tick in flight to finish. Safe to call
// more than once, and before Start.
func (t *Timer) Stop() {
	t.stopOnce.Do(func() { close(t.stopCh) })
	t.wg.Wait()
}

func (t *Timer) Running() bool { return t.running.Load() }

// Done is closed when the tick goroutine exits.
func (t *Timer) Done() <-chan struct{} { return t.done }

// Err reports a panic recovered from a tick, if any.
func (t *Timer) Err() error {
	t.errMu.Lock()
	defer t.errMu.Unlock()
	return t.err
}

func (t *Timer) loop() {
	defer t.wg.Done()
	defer close(t.done)
	defer t.running.Store(false)
	defer func() {
		if r := recover(); r != nil {
			t.log.Error("tick panicked", zap.Any("panic", r), zap.Stack("stack"))
			t.errMu.Lock()
			t.err = fmt.Errorf("timer tick panicked: %v", r)
			t.errMu.Unlock()
		}
	}()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopCh:
			return
		case <-ticker.C:
			t.tick()
		}
	}
}
