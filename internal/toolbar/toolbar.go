// Package toolbar is the edit-mode and numeric-entry strip at the top of the
// window.
package toolbar

import (
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// Mode is the left-button edit mode. Exactly one is active.
type Mode uint8

const (
	ModeDrag Mode = iota
	ModeDraw
	ModeErase
)

func (m Mode) String() string {
	switch m {
	case ModeDraw:
		return "draw"
	case ModeErase:
		return "erase"
	default:
		return "drag"
	}
}

const maxDigits = 6

// World is what the toolbar writes numeric entries to.
type World interface {
	Params() map[string]float64
	SetParam(name string, value float64) error
}

type Toolbar struct {
	world World
	log   *zap.Logger

	mu           sync.Mutex
	mode         Mode
	dropdownOpen bool
	field        Field
	buf          []byte
	pressed      button
}

func New(w World, log *zap.Logger) *Toolbar {
	if log == nil {
		log = zap.NewNop()
	}
	return &Toolbar{
		world: w,
		log:   log,
		mode:  ModeDraw,
		buf:   make([]byte, 0, maxDigits),
	}
}

// AddNumber appends a digit to the entry buffer. Anything else is ignored, as
// are digits past the buffer limit.
func (t *Toolbar) AddNumber(r rune) {
	if r < '0' || r > '9' {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.buf) < maxDigits {
		t.buf = append(t.buf, byte(r))
	}
}

func (t *Toolbar) RemoveNumber() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.buf) > 0 {
		t.buf = t.buf[:len(t.buf)-1]
	}
}

// Buffer returns the pending numeric entry.
func (t *Toolbar) Buffer() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}

// HandleClickDown reports whether (x, y) hits the strip and remembers which
// button was pressed for HandleClickUp.
func (t *Toolbar) HandleClickDown(x, y, width, height int) bool {
	if y < 0 || y >= Height || y >= height || x < 0 || x >= width {
		return false
	}
	t.mu.Lock()
	t.pressed = buttonAt(x, y)
	t.mu.Unlock()
	return true
}

// HandleClickUp acts on the button recorded by HandleClickDown.
func (t *Toolbar) HandleClickUp() {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.pressed {
	case btnDrag:
		t.mode = ModeDrag
	case btnDraw:
		t.mode = ModeDraw
	case btnErase:
		t.mode = ModeErase
	case btnField:
		t.dropdownOpen = !t.dropdownOpen
	case btnApply:
		t.applyLocked()
	}
	t.pressed = btnNone
}

// HandleClickDropDown resolves a click while the dropdown is open: an item
// selects its field and closes the list, the header is left to HandleClickUp
// to toggle, anything else closes the list. It reports whether the click
// landed on an item, which makes it a toolbar click even below the strip.
func (t *Toolbar) HandleClickDropDown(x, y, width, height int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.dropdownOpen {
		return false
	}
	if rectOf(btnField).contains(x, y) {
		return false
	}
	t.dropdownOpen = false
	for i := Field(0); i < numFields; i++ {
		if itemRect(int(i)).contains(x, y) {
			t.field = i
			return true
		}
	}
	return false
}

// HandleKeys handles the toolbar shortcuts. Digits go through AddNumber.
func (t *Toolbar) HandleKeys(r rune) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch r {
	case 'd':
		t.mode = ModeDrag
	case 'w':
		t.mode = ModeDraw
	case 'e':
		t.mode = ModeErase
	case 'f':
		t.field = (t.field + 1) % numFields
	case '=':
		t.applyLocked()
	case 'x':
		t.buf = t.buf[:0]
	}
}

// applyLocked writes the buffer to the selected world parameter. A rejected
// value leaves the buffer in place for correction.
func (t *Toolbar) applyLocked() {
	if len(t.buf) == 0 {
		return
	}
	v, err := strconv.Atoi(string(t.buf))
	if err != nil {
		t.buf = t.buf[:0]
		return
	}
	param := t.field.Param()
	if err := t.world.SetParam(param, float64(v)); err != nil {
		t.log.Debug("parameter rejected", zap.String("param", param), zap.Int("value", v), zap.Error(err))
		return
	}
	t.log.Debug("parameter applied", zap.String("param", param), zap.Int("value", v))
	t.buf = t.buf[:0]
}

func (t *Toolbar) Mode() Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

func (t *Toolbar) Drag() bool  { return t.Mode() == ModeDrag }
func (t *Toolbar) Draw() bool  { return t.Mode() == ModeDraw }
func (t *Toolbar) Erase() bool { return t.Mode() == ModeErase }

func (t *Toolbar) DropdownOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dropdownOpen
}

func (t *Toolbar) Field() Field {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.field
}
