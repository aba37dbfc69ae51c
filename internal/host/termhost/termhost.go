// Package termhost runs the app inside a terminal through tcell.
//
// The terminal grid is exposed as a pixel canvas of CellW x CellH logical
// pixels per cell, so the world and toolbar draw the same way they do in a
// window. The tcell screen serializes its own writes, so rendering from the
// timer goroutine is allowed.
package termhost

import (
	"image/color"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/san-kum/particlepanic/internal/gfx"
	"github.com/san-kum/particlepanic/internal/host"
	"go.uber.org/zap"
)

const closeWait = time.Second

// Logical pixels per terminal cell.
const (
	CellW = 8
	CellH = 16
)

type Host struct {
	log       *zap.Logger
	newScreen func() (tcell.Screen, error)
	screen    tcell.Screen

	events   chan tcell.Event
	done     chan struct{}
	pumpDone chan struct{}

	textInput atomic.Bool
	pending   []host.Event

	mouseX, mouseY int
	buttons        tcell.ButtonMask
}

func New(log *zap.Logger) *Host {
	if log == nil {
		log = zap.NewNop()
	}
	return &Host{log: log.Named("term"), newScreen: tcell.NewScreen}
}

// Open takes over the terminal. Title and size are advisory; the terminal
// decides its own dimensions and reports them as the first resize event.
func (h *Host) Open(title string, width, height int) error {
	screen, err := h.newScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	screen.SetTitle(title)
	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()

	h.screen = screen
	h.events = make(chan tcell.Event, 100)
	h.done = make(chan struct{})
	h.pumpDone = make(chan struct{})
	go h.pump(screen)

	cols, rows := screen.Size()
	h.log.Debug("terminal open", zap.Int("cols", cols), zap.Int("rows", rows),
		zap.Int("requested_width", width), zap.Int("requested_height", height))
	return nil
}

// pump owns its screen reference; Close clears h.screen without racing it.
func (h *Host) pump(screen tcell.Screen) {
	defer close(h.pumpDone)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case h.events <- ev:
		case <-h.done:
			return
		}
	}
}

// SetSwapInterval is a no-op; terminals have no vertical sync.
func (h *Host) SetSwapInterval(int) error {
	if h.screen == nil {
		return host.ErrNotOpen
	}
	return nil
}

func (h *Host) StartTextInput() { h.textInput.Store(true) }
func (h *Host) StopTextInput()  { h.textInput.Store(false) }

func (h *Host) PollEvent(wait time.Duration) (host.Event, bool) {
	if h.screen == nil {
		return host.Event{}, false
	}
	for len(h.pending) == 0 {
		var ev tcell.Event
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case ev = <-h.events:
				timer.Stop()
			case <-timer.C:
				return host.Event{}, false
			}
		} else {
			select {
			case ev = <-h.events:
			default:
				return host.Event{}, false
			}
		}
		h.pending = append(h.pending, h.translate(ev)...)
	}
	ev := h.pending[0]
	h.pending = h.pending[1:]
	return ev, true
}

// translate turns one tcell event into zero or more host events.
func (h *Host) translate(ev tcell.Event) []host.Event {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		return []host.Event{host.Resize(cols*CellW, rows*CellH)}

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC, tcell.KeyEscape:
			return []host.Event{host.Quit()}
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			return []host.Event{host.KeyPress(host.KeyBackspace)}
		case tcell.KeyUp:
			return []host.Event{host.KeyPress(host.KeyUp)}
		case tcell.KeyDown:
			return []host.Event{host.KeyPress(host.KeyDown)}
		case tcell.KeyRune:
			if h.textInput.Load() {
				return []host.Event{host.Text(ev.Rune())}
			}
		}

	case *tcell.EventMouse:
		cx, cy := ev.Position()
		x, y := cx*CellW+CellW/2, cy*CellH+CellH/2
		var out []host.Event
		if x != h.mouseX || y != h.mouseY {
			h.mouseX, h.mouseY = x, y
			out = append(out, host.Motion(x, y))
		}
		btn := ev.Buttons()
		out = h.edge(out, btn, tcell.Button1, host.ButtonLeft)
		out = h.edge(out, btn, tcell.Button2, host.ButtonRight)
		h.buttons = btn
		return out
	}
	return nil
}

func (h *Host) edge(out []host.Event, now, mask tcell.ButtonMask, b host.Button) []host.Event {
	was := h.buttons&mask != 0
	down := now&mask != 0
	switch {
	case down && !was:
		out = append(out, host.MouseDown(b, h.mouseX, h.mouseY))
	case !down && was:
		out = append(out, host.MouseUp(b, h.mouseX, h.mouseY))
	}
	return out
}

func (h *Host) MouseState() (x, y int) { return h.mouseX, h.mouseY }

func (h *Host) CanRenderOffThread() bool { return true }

func (h *Host) MakeCurrent() error {
	if h.screen == nil {
		return host.ErrNotOpen
	}
	return nil
}

func (h *Host) BeginFrame() gfx.Canvas { return &canvas{screen: h.screen} }

func (h *Host) Present() { h.screen.Show() }

func (h *Host) Close() error {
	if h.screen == nil {
		return nil
	}
	close(h.done)
	h.screen.Fini()
	select {
	case <-h.pumpDone:
	case <-time.After(closeWait):
		h.log.Warn("event pump still blocked after close")
	}
	h.screen = nil
	h.pending = nil
	return nil
}

type canvas struct {
	screen tcell.Screen
	bg     tcell.Color
}

func tc(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (c *canvas) Size() (int, int) {
	cols, rows := c.screen.Size()
	return cols * CellW, rows * CellH
}

func (c *canvas) Clear(col color.RGBA) {
	c.bg = tc(col)
	c.screen.Fill(' ', tcell.StyleDefault.Background(c.bg))
}

func (c *canvas) Circle(x, y, r float32, col color.RGBA) {
	glyph := '·'
	if r >= 2 {
		glyph = '•'
	}
	c.screen.SetContent(int(x)/CellW, int(y)/CellH, glyph, nil,
		tcell.StyleDefault.Foreground(tc(col)).Background(c.bg))
}

func (c *canvas) Rect(x, y, w, h int, col color.RGBA) {
	st := tcell.StyleDefault.Background(tc(col))
	for cy := y / CellH; cy <= (y+h-1)/CellH; cy++ {
		for cx := x / CellW; cx <= (x+w-1)/CellW; cx++ {
			c.screen.SetContent(cx, cy, ' ', nil, st)
		}
	}
}

func (c *canvas) RectLines(x, y, w, h int, col color.RGBA) {
	st := tcell.StyleDefault.Foreground(tc(col)).Background(c.bg)
	x0, y0 := x/CellW, y/CellH
	x1, y1 := (x+w-1)/CellW, (y+h-1)/CellH
	if x1 <= x0 || y1 <= y0 {
		c.screen.SetContent(x0, y0, '□', nil, st)
		return
	}
	for cx := x0 + 1; cx < x1; cx++ {
		c.screen.SetContent(cx, y0, '─', nil, st)
		c.screen.SetContent(cx, y1, '─', nil, st)
	}
	for cy := y0 + 1; cy < y1; cy++ {
		c.screen.SetContent(x0, cy, '│', nil, st)
		c.screen.SetContent(x1, cy, '│', nil, st)
	}
	c.screen.SetContent(x0, y0, '┌', nil, st)
	c.screen.SetContent(x1, y0, '┐', nil, st)
	c.screen.SetContent(x0, y1, '└', nil, st)
	c.screen.SetContent(x1, y1, '┘', nil, st)
}

func (c *canvas) Text(s string, x, y, _ int, col color.RGBA) {
	st := tcell.StyleDefault.Foreground(tc(col)).Background(c.bg)
	cx, cy := x/CellW, y/CellH
	for _, r := range s {
		c.screen.SetContent(cx, cy, r, nil, st)
		cx++
	}
}
