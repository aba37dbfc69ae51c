// Package rlhost runs the app in a raylib window.
//
// Raylib binds its GL context to the thread that opened the window and
// offers no way to move it, so this host cannot render off the main thread.
// Input is sampled once per frame and replayed as host events.
package rlhost

import (
	"fmt"
	"image/color"
	"runtime"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/particlepanic/internal/gfx"
	"github.com/san-kum/particlepanic/internal/host"
	"go.uber.org/zap"
)

const fontPath = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"

func init() {
	// raylib calls must stay on the thread that opened the window
	runtime.LockOSThread()
}

type Host struct {
	log *zap.Logger

	open      bool
	textInput bool
	font      rl.Font
	canvas    *canvas

	pending   []host.Event
	collected bool
	mouseX    int32
	mouseY    int32
	leftDown  bool
	rightDown bool
}

func New(log *zap.Logger) *Host {
	if log == nil {
		log = zap.NewNop()
	}
	return &Host{log: log.Named("raylib")}
}

func (h *Host) Open(title string, width, height int) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(width), int32(height), title)
	if !rl.IsWindowReady() {
		return fmt.Errorf("raylib: window %q not created", title)
	}
	rl.SetExitKey(0)

	h.font = loadFont()
	h.canvas = &canvas{font: h.font}
	h.mouseX, h.mouseY = rl.GetMouseX(), rl.GetMouseY()
	h.open = true
	h.log.Debug("window open", zap.Int("width", width), zap.Int("height", height))
	return nil
}

// loadFont prefers Liberation Mono and falls back to raylib's built-in font.
func loadFont() rl.Font {
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func (h *Host) SetSwapInterval(n int) error {
	if !h.open {
		return host.ErrNotOpen
	}
	if n <= 0 {
		rl.ClearWindowState(rl.FlagVsyncHint)
		return nil
	}
	rl.SetWindowState(rl.FlagVsyncHint)
	if !rl.IsWindowState(rl.FlagVsyncHint) {
		return fmt.Errorf("raylib: vsync not supported by this display")
	}
	return nil
}

func (h *Host) StartTextInput() { h.textInput = true }
func (h *Host) StopTextInput()  { h.textInput = false }

// PollEvent replays the input sampled since the last Present. Raylib only
// refreshes input inside EndDrawing, so wait is honored only as a sleep.
func (h *Host) PollEvent(wait time.Duration) (host.Event, bool) {
	if !h.open {
		return host.Event{}, false
	}
	if !h.collected {
		h.collect()
		h.collected = true
	}
	if len(h.pending) == 0 {
		if wait > 0 {
			time.Sleep(wait)
		}
		return host.Event{}, false
	}
	ev := h.pending[0]
	h.pending = h.pending[1:]
	return ev, true
}

func (h *Host) collect() {
	h.pending = h.pending[:0]

	if rl.WindowShouldClose() {
		h.pending = append(h.pending, host.Quit())
	}
	if rl.IsWindowResized() {
		h.pending = append(h.pending, host.Resize(rl.GetScreenWidth(), rl.GetScreenHeight()))
	}

	for _, k := range []struct {
		code int32
		key  host.Key
	}{
		{rl.KeyBackspace, host.KeyBackspace},
		{rl.KeyUp, host.KeyUp},
		{rl.KeyDown, host.KeyDown},
	} {
		if rl.IsKeyPressed(k.code) || rl.IsKeyPressedRepeat(k.code) {
			h.pending = append(h.pending, host.KeyPress(k.key))
		}
	}

	if h.textInput {
		for r := rl.GetCharPressed(); r != 0; r = rl.GetCharPressed() {
			h.pending = append(h.pending, host.Text(rune(r)))
		}
	}

	x, y := rl.GetMouseX(), rl.GetMouseY()
	if x != h.mouseX || y != h.mouseY {
		h.mouseX, h.mouseY = x, y
		h.pending = append(h.pending, host.Motion(int(x), int(y)))
	}

	h.leftDown = h.button(rl.MouseLeftButton, host.ButtonLeft, h.leftDown)
	h.rightDown = h.button(rl.MouseRightButton, host.ButtonRight, h.rightDown)
}

// button emits press and release edges against the previous frame's state.
func (h *Host) button(b rl.MouseButton, hb host.Button, was bool) bool {
	down := rl.IsMouseButtonDown(b)
	switch {
	case down && !was:
		h.pending = append(h.pending, host.MouseDown(hb, int(h.mouseX), int(h.mouseY)))
	case !down && was:
		h.pending = append(h.pending, host.MouseUp(hb, int(h.mouseX), int(h.mouseY)))
	}
	return down
}

func (h *Host) MouseState() (x, y int) {
	return int(rl.GetMouseX()), int(rl.GetMouseY())
}

func (h *Host) CanRenderOffThread() bool { return false }
func (h *Host) MakeCurrent() error       { return host.ErrNoOffThreadContext }

func (h *Host) BeginFrame() gfx.Canvas {
	rl.BeginDrawing()
	return h.canvas
}

func (h *Host) Present() {
	rl.EndDrawing()
	h.collected = false
}

func (h *Host) Close() error {
	if !h.open {
		return nil
	}
	h.open = false
	if h.font.Texture.ID != rl.GetFontDefault().Texture.ID {
		rl.UnloadFont(h.font)
	}
	rl.CloseWindow()
	return nil
}

type canvas struct {
	font rl.Font
}

func rlColor(c color.RGBA) rl.Color { return rl.NewColor(c.R, c.G, c.B, c.A) }

func (c *canvas) Size() (int, int) { return rl.GetScreenWidth(), rl.GetScreenHeight() }

func (c *canvas) Clear(col color.RGBA) { rl.ClearBackground(rlColor(col)) }

func (c *canvas) Circle(x, y, r float32, col color.RGBA) {
	rl.DrawCircleV(rl.NewVector2(x, y), r, rlColor(col))
}

func (c *canvas) Rect(x, y, w, h int, col color.RGBA) {
	rl.DrawRectangle(int32(x), int32(y), int32(w), int32(h), rlColor(col))
}

func (c *canvas) RectLines(x, y, w, h int, col color.RGBA) {
	rl.DrawRectangleLines(int32(x), int32(y), int32(w), int32(h), rlColor(col))
}

func (c *canvas) Text(s string, x, y, size int, col color.RGBA) {
	rl.DrawTextEx(c.font, s, rl.NewVector2(float32(x), float32(y)), float32(size)*1.6, 1, rlColor(col))
}
