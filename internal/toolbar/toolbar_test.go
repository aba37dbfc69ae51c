package toolbar

import (
	"errors"
	"image/color"
	"testing"

	"github.com/san-kum/particlepanic/internal/world"
)

var errBounds = errors.New("out of bounds")

type fakeWorld struct {
	params map[string]float64
	sets   int
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{params: map[string]float64{
		world.ParamResolution: 64,
		world.ParamBrush:      24,
	}}
}

func (f *fakeWorld) Params() map[string]float64 { return f.params }

func (f *fakeWorld) SetParam(name string, v float64) error {
	f.sets++
	if v > 1000 {
		return errBounds
	}
	f.params[name] = v
	return nil
}

func TestToolbar_NumericEntry(t *testing.T) {
	tb := New(newFakeWorld(), nil)

	tb.AddNumber('5')
	tb.AddNumber('a')
	if got := tb.Buffer(); got != "5" {
		t.Errorf("buffer = %q, want %q", got, "5")
	}

	tb.RemoveNumber()
	tb.RemoveNumber()
	if got := tb.Buffer(); got != "" {
		t.Errorf("buffer = %q, want empty", got)
	}

	for _, r := range "12345678" {
		tb.AddNumber(r)
	}
	if got := tb.Buffer(); got != "123456" {
		t.Errorf("buffer = %q, want capped at 6 digits", got)
	}

	tb.HandleKeys('x')
	if got := tb.Buffer(); got != "" {
		t.Errorf("x did not clear buffer: %q", got)
	}
}

func TestToolbar_ClickTargeting(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"drag button", 10, 10, true},
		{"empty strip", 800, 20, true},
		{"bottom edge", 10, Height - 1, true},
		{"below strip", 10, Height, false},
		{"world", 450, 300, false},
		{"outside window", 950, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := New(newFakeWorld(), nil)
			if got := tb.HandleClickDown(tt.x, tt.y, 900, 600); got != tt.want {
				t.Errorf("HandleClickDown(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestToolbar_Modes(t *testing.T) {
	tb := New(newFakeWorld(), nil)
	exactlyOne := func() {
		t.Helper()
		n := 0
		for _, b := range []bool{tb.Drag(), tb.Draw(), tb.Erase()} {
			if b {
				n++
			}
		}
		if n != 1 {
			t.Fatalf("%d modes active", n)
		}
	}

	exactlyOne()
	if !tb.Draw() {
		t.Error("default mode should be draw")
	}

	tb.HandleKeys('d')
	exactlyOne()
	if !tb.Drag() {
		t.Error("d should select drag")
	}

	tb.HandleKeys('e')
	exactlyOne()
	if !tb.Erase() {
		t.Error("e should select erase")
	}

	// click on the draw button
	tb.HandleClickDown(80, 10, 900, 600)
	if !tb.Erase() {
		t.Error("mode changed before click up")
	}
	tb.HandleClickUp()
	exactlyOne()
	if !tb.Draw() {
		t.Error("click should select draw")
	}
}

func TestToolbar_Dropdown(t *testing.T) {
	tb := New(newFakeWorld(), nil)

	tb.HandleClickDown(220, 10, 900, 600)
	tb.HandleClickUp()
	if !tb.DropdownOpen() {
		t.Fatal("field button should open the dropdown")
	}

	// header click keeps it open until click up toggles
	tb.HandleClickDropDown(220, 10, 900, 600)
	if !tb.DropdownOpen() {
		t.Error("header click closed the dropdown early")
	}
	tb.HandleClickDown(220, 10, 900, 600)
	tb.HandleClickUp()
	if tb.DropdownOpen() {
		t.Error("second header click should close")
	}

	// reopen and select the brush item
	tb.HandleClickDown(220, 10, 900, 600)
	tb.HandleClickUp()
	r := itemRect(int(FieldBrush))
	if !tb.HandleClickDropDown(r.x+1, r.y+1, 900, 600) {
		t.Error("item click should be reported as consumed")
	}
	if tb.DropdownOpen() {
		t.Error("item click should close")
	}
	if tb.Field() != FieldBrush {
		t.Errorf("field = %v, want brush", tb.Field())
	}

	// click elsewhere closes without changing field
	tb.HandleClickDown(220, 10, 900, 600)
	tb.HandleClickUp()
	if tb.HandleClickDropDown(700, 400, 900, 600) {
		t.Error("outside click should not be consumed")
	}
	if tb.DropdownOpen() || tb.Field() != FieldBrush {
		t.Errorf("outside click: open=%v field=%v", tb.DropdownOpen(), tb.Field())
	}
}

func TestToolbar_Apply(t *testing.T) {
	w := newFakeWorld()
	tb := New(w, nil)

	tb.HandleKeys('=')
	if w.sets != 0 {
		t.Error("empty buffer should not apply")
	}

	tb.HandleKeys('f')
	tb.HandleKeys('f')
	if tb.Field() != FieldBrush {
		t.Fatalf("field = %v, want brush", tb.Field())
	}
	tb.AddNumber('4')
	tb.AddNumber('0')
	tb.HandleKeys('=')
	if w.params[world.ParamBrush] != 40 {
		t.Errorf("brush = %v, want 40", w.params[world.ParamBrush])
	}
	if tb.Buffer() != "" {
		t.Error("buffer not cleared after apply")
	}

	for _, r := range "5000" {
		tb.AddNumber(r)
	}
	tb.HandleClickDown(450, 10, 900, 600)
	tb.HandleClickUp()
	if tb.Buffer() != "5000" {
		t.Errorf("rejected value should stay in buffer, got %q", tb.Buffer())
	}
}

func TestToolbar_DigitsIgnoredByHandleKeys(t *testing.T) {
	tb := New(newFakeWorld(), nil)
	tb.HandleKeys('7')
	if tb.Buffer() != "" {
		t.Errorf("HandleKeys accepted a digit: %q", tb.Buffer())
	}
}

type countCanvas struct{ texts, rects int }

func (c *countCanvas) Size() (int, int)                         { return 900, 600 }
func (c *countCanvas) Clear(color.RGBA)                         {}
func (c *countCanvas) Circle(_, _, _ float32, _ color.RGBA)     {}
func (c *countCanvas) Rect(_, _, _, _ int, _ color.RGBA)        { c.rects++ }
func (c *countCanvas) RectLines(_, _, _, _ int, _ color.RGBA)   { c.rects++ }
func (c *countCanvas) Text(_ string, _, _, _ int, _ color.RGBA) { c.texts++ }

func TestToolbar_Render(t *testing.T) {
	tb := New(newFakeWorld(), nil)
	closed := &countCanvas{}
	tb.Render(closed, 900, 600)

	tb.HandleClickDown(220, 10, 900, 600)
	tb.HandleClickUp()
	open := &countCanvas{}
	tb.Render(open, 900, 600)

	if open.texts != closed.texts+int(numFields) {
		t.Errorf("open dropdown drew %d texts, closed %d", open.texts, closed.texts)
	}
}
