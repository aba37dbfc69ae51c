package app

import (
	"errors"
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"github.com/san-kum/particlepanic/internal/gfx"
	"github.com/san-kum/particlepanic/internal/host"
)

// callLog is shared by the fake host and world so tests can assert ordering
// across both.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.mu.Lock()
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
	l.mu.Unlock()
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

func (l *callLog) count(call string) int {
	n := 0
	for _, c := range l.all() {
		if c == call {
			n++
		}
	}
	return n
}

func (l *callLog) reset() {
	l.mu.Lock()
	l.calls = nil
	l.mu.Unlock()
}

var errNoVSync = errors.New("no vsync")

type fakeHost struct {
	log *callLog

	mu        sync.Mutex
	events    []host.Event
	mouseX    int
	mouseY    int
	offThread bool
	vsyncErr  error
	openErr   error
}

func (h *fakeHost) script(evs ...host.Event) {
	h.mu.Lock()
	h.events = append(h.events, evs...)
	h.mu.Unlock()
}

func (h *fakeHost) setMouse(x, y int) {
	h.mu.Lock()
	h.mouseX, h.mouseY = x, y
	h.mu.Unlock()
}

func (h *fakeHost) Open(title string, w, hgt int) error {
	h.log.add("host.Open(%s,%d,%d)", title, w, hgt)
	return h.openErr
}

func (h *fakeHost) SetSwapInterval(n int) error {
	h.log.add("host.SetSwapInterval(%d)", n)
	return h.vsyncErr
}

func (h *fakeHost) StartTextInput() { h.log.add("host.StartTextInput") }
func (h *fakeHost) StopTextInput()  { h.log.add("host.StopTextInput") }

func (h *fakeHost) PollEvent(time.Duration) (host.Event, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.events) == 0 {
		return host.Event{}, false
	}
	ev := h.events[0]
	h.events = h.events[1:]
	return ev, true
}

func (h *fakeHost) MouseState() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mouseX, h.mouseY
}

func (h *fakeHost) CanRenderOffThread() bool { return h.offThread }

func (h *fakeHost) MakeCurrent() error {
	if !h.offThread {
		return host.ErrNoOffThreadContext
	}
	return nil
}

func (h *fakeHost) BeginFrame() gfx.Canvas {
	h.log.add("host.BeginFrame")
	return nopCanvas{}
}

func (h *fakeHost) Present() { h.log.add("host.Present") }

func (h *fakeHost) Close() error {
	h.log.add("host.Close")
	return nil
}

type nopCanvas struct{}

func (nopCanvas) Size() (int, int)                         { return 900, 600 }
func (nopCanvas) Clear(color.RGBA)                         {}
func (nopCanvas) Circle(_, _, _ float32, _ color.RGBA)     {}
func (nopCanvas) Rect(_, _, _, _ int, _ color.RGBA)        {}
func (nopCanvas) RectLines(_, _, _, _ int, _ color.RGBA)   {}
func (nopCanvas) Text(_ string, _, _, _ int, _ color.RGBA) {}

// recordWorld implements world.World by logging every call.
type recordWorld struct {
	log *callLog

	snapshot   atomic.Int32
	threeD     atomic.Bool
	winW, winH atomic.Int32
	updates    atomic.Int32
	closeErr   error

	mu     sync.Mutex
	params map[string]float64
}

func newRecordWorld(log *callLog) *recordWorld {
	return &recordWorld{log: log, params: map[string]float64{"resolution": 64}}
}

func (w *recordWorld) Init() { w.log.add("world.Init") }

func (w *recordWorld) Update(running *bool) bool {
	if *running {
		return false
	}
	*running = true
	w.updates.Add(1)
	*running = false
	return true
}

func (w *recordWorld) Draw(gfx.Canvas) { w.log.add("world.Draw") }

func (w *recordWorld) ResizeWindow(width, height int) {
	w.winW.Store(int32(width))
	w.winH.Store(int32(height))
	w.log.add("world.ResizeWindow(%d,%d)", width, height)
}

func (w *recordWorld) WindowSize() (int, int) { return int(w.winW.Load()), int(w.winH.Load()) }

func (w *recordWorld) ResizeWorld(width, height int) {
	w.log.add("world.ResizeWorld(%d,%d)", width, height)
}

func (w *recordWorld) ClearWorld()       { w.log.add("world.ClearWorld") }
func (w *recordWorld) HandleKeys(r rune) { w.log.add("world.HandleKeys(%c)", r) }

func (w *recordWorld) MouseMove(x, y int, dragging bool) {
	w.log.add("world.MouseMove(%d,%d,%t)", x, y, dragging)
}

func (w *recordWorld) Increase2DResolution() { w.log.add("world.Increase2DResolution") }
func (w *recordWorld) Decrease2DResolution() { w.log.add("world.Decrease2DResolution") }

func (w *recordWorld) SnapshotMode() int { return int(w.snapshot.Load()) }
func (w *recordWorld) Is3D() bool        { return w.threeD.Load() }

func (w *recordWorld) Set3D(enabled bool) {
	w.threeD.Store(enabled)
	w.log.add("world.Set3D(%t)", enabled)
}

func (w *recordWorld) SelectDraggedParticles(x, y int) {
	w.log.add("world.SelectDraggedParticles(%d,%d)", x, y)
}
func (w *recordWorld) MouseDrag(x, y int)    { w.log.add("world.MouseDrag(%d,%d)", x, y) }
func (w *recordWorld) MouseDraw(x, y int)    { w.log.add("world.MouseDraw(%d,%d)", x, y) }
func (w *recordWorld) MouseErase(x, y int)   { w.log.add("world.MouseErase(%d,%d)", x, y) }
func (w *recordWorld) MouseDragEnd(x, y int) { w.log.add("world.MouseDragEnd(%d,%d)", x, y) }

func (w *recordWorld) Params() map[string]float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]float64, len(w.params))
	for k, v := range w.params {
		out[k] = v
	}
	return out
}

func (w *recordWorld) SetParam(name string, v float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.params[name] = v
	w.log.add("world.SetParam(%s,%g)", name, v)
	return nil
}

func (w *recordWorld) ParticleCount() int { return 0 }

func (w *recordWorld) Close() error {
	w.log.add("world.Close")
	return w.closeErr
}
