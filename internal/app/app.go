// Package app wires the host, world, toolbar, command queue and timer
// together and runs the input loop.
//
// Two goroutines share the work. The caller's goroutine polls host events,
// turns them into commands and (unless the timer draws) renders. The timer
// goroutine drains the command queue, steps the world and, when configured,
// renders. The queue is the only path for world edits between the two; the
// few synchronous calls the input side makes into the world (window size,
// resolution, keys, cursor) go through the world's own locking.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/san-kum/particlepanic/internal/command"
	"github.com/san-kum/particlepanic/internal/config"
	"github.com/san-kum/particlepanic/internal/host"
	"github.com/san-kum/particlepanic/internal/toolbar"
	"github.com/san-kum/particlepanic/internal/world"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const paceInterval = time.Second

type App struct {
	cfg     config.Config
	log     *zap.Logger
	host    host.Host
	world   world.World
	toolbar *toolbar.Toolbar
	queue   *command.Queue
	timer   *Timer

	counters Counters

	drawInTimer bool

	// timer goroutine only
	updating bool

	// input goroutine only
	width, height int
	onToolbar     bool
	onWorld       bool
	rightDown     bool
	selected      bool
	quit          bool
	lastPace      time.Time

	shutdownOnce sync.Once
}

func New(cfg config.Config, h host.Host, w world.World, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		cfg:         cfg,
		log:         log,
		host:        h,
		world:       w,
		toolbar:     toolbar.New(w, log.Named("toolbar")),
		queue:       command.NewQueue(),
		drawInTimer: cfg.DrawInTimer,
	}
	a.timer = NewTimer(cfg.TimerInterval, a.Tick, log.Named("timer"))
	return a
}

func (a *App) Toolbar() *toolbar.Toolbar { return a.toolbar }
func (a *App) Queue() *command.Queue     { return a.queue }
func (a *App) Counters() *Counters       { return &a.counters }
func (a *App) Timer() *Timer             { return a.timer }
func (a *App) DrawInTimer() bool         { return a.drawInTimer }

// Start opens the host, sizes the world and starts the timer. Any error is
// fatal to the caller.
func (a *App) Start() error {
	if err := a.host.Open(config.WindowTitle, config.InitialWidth, config.InitialHeight); err != nil {
		return fmt.Errorf("open host: %w", err)
	}
	if a.cfg.VSync {
		if err := a.host.SetSwapInterval(1); err != nil {
			a.log.Warn("vsync unavailable, continuing without it", zap.Error(err))
		}
	}
	a.host.StartTextInput()

	a.world.Init()
	a.width, a.height = config.InitialWidth, config.InitialHeight
	a.world.ResizeWindow(a.width, a.height)
	a.world.ResizeWorld(a.width, a.height)

	if a.drawInTimer && !a.host.CanRenderOffThread() {
		a.log.Warn("host cannot render off the main thread, drawing in the main loop")
		a.drawInTimer = false
	}

	if err := a.timer.Start(); err != nil {
		return fmt.Errorf("start timer: %w", err)
	}
	a.lastPace = time.Now()
	a.log.Info("started",
		zap.Duration("timer_interval", a.cfg.TimerInterval),
		zap.Bool("draw_in_timer", a.drawInTimer),
	)
	return nil
}

// Run starts the app and loops until the host quits, ctx is done or the
// timer fails. Shutdown always runs.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(); err != nil {
		a.Shutdown()
		return err
	}
	for ctx.Err() == nil && a.Step() {
	}
	a.Shutdown()
	return a.timer.Err()
}

// Step runs one main-loop iteration and reports whether to keep going.
func (a *App) Step() bool {
	var wait time.Duration
	if a.drawInTimer {
		wait = a.cfg.PollWait
	}
	for {
		ev, ok := a.host.PollEvent(wait)
		if !ok {
			break
		}
		wait = 0
		a.Handle(ev)
		if a.quit {
			return false
		}
	}

	a.Sample()
	if !a.drawInTimer {
		a.Render()
	}
	a.logPace()

	select {
	case <-a.timer.Done():
		return false
	default:
		return !a.quit
	}
}

// Tick is one timer period: apply queued edits, step, optionally render.
func (a *App) Tick() {
	a.queue.DrainAndExecute()
	if a.world.SnapshotMode() < world.SnapshotFrozen {
		a.world.Update(&a.updating)
	}
	if a.drawInTimer {
		if err := a.host.MakeCurrent(); err != nil {
			a.log.Debug("skip timer render", zap.Error(err))
		} else {
			a.Render()
		}
	}
	a.counters.Tick()
}

func (a *App) Render() {
	c := a.host.BeginFrame()
	a.world.Draw(c)
	w, h := a.world.WindowSize()
	a.toolbar.Render(c, w, h)
	a.host.Present()
	a.counters.Drawn()
}

// Shutdown tears down in dependency order: the timer first so nothing steps
// or renders, then the world, then the host. Errors are logged.
func (a *App) Shutdown() {
	a.shutdownOnce.Do(func() {
		a.host.StopTextInput()
		a.timer.Stop()
		a.world.ClearWorld()
		if err := multierr.Combine(a.world.Close(), a.host.Close()); err != nil {
			a.log.Error("shutdown", zap.Error(err))
		}
		a.log.Info("stopped", zap.Uint64("ticks", a.counters.Frame()))
	})
}

func (a *App) logPace() {
	if time.Since(a.lastPace) < paceInterval {
		return
	}
	a.lastPace = time.Now()
	ticks, drawn := a.counters.Pace()
	a.log.Debug("pace",
		zap.Uint64("ticks", ticks),
		zap.Uint64("frames", drawn),
		zap.Int("queued", a.queue.Len()),
		zap.Int("particles", a.world.ParticleCount()),
	)
}
