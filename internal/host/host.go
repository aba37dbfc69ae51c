// Package host abstracts the window, its drawing context and its input
// events. Adapters live in the rlhost (raylib window) and termhost (tcell
// terminal) subpackages.
package host

import (
	"errors"
	"time"

	"github.com/san-kum/particlepanic/internal/gfx"
)

var (
	// ErrNoOffThreadContext is returned by MakeCurrent on hosts whose drawing
	// context is bound to the main thread.
	ErrNoOffThreadContext = errors.New("host: drawing context cannot move off the main thread")

	ErrUnknownHost = errors.New("host: unknown host")
	ErrNotOpen     = errors.New("host: not open")
)

// Host owns the window and turns platform input into Events.
type Host interface {
	Open(title string, width, height int) error
	SetSwapInterval(n int) error

	StartTextInput()
	StopTextInput()

	// PollEvent returns the next pending event. When none is pending it waits
	// up to wait for one, then reports false.
	PollEvent(wait time.Duration) (Event, bool)
	MouseState() (x, y int)

	// CanRenderOffThread reports whether BeginFrame/Present may be called
	// from a goroutine other than the one that called Open.
	CanRenderOffThread() bool
	MakeCurrent() error

	BeginFrame() gfx.Canvas
	Present()

	Close() error
}
