package host

import "fmt"

type EventType uint8

const (
	EventResize EventType = iota + 1
	EventQuit
	EventKeyDown
	EventTextInput
	EventMouseDown
	EventMouseUp
	EventMouseMotion
)

func (t EventType) String() string {
	switch t {
	case EventResize:
		return "resize"
	case EventQuit:
		return "quit"
	case EventKeyDown:
		return "keydown"
	case EventTextInput:
		return "text"
	case EventMouseDown:
		return "mousedown"
	case EventMouseUp:
		return "mouseup"
	case EventMouseMotion:
		return "motion"
	default:
		return fmt.Sprintf("EventType(%d)", t)
	}
}

// Key is a non-text key the app reacts to.
type Key uint8

const (
	KeyNone Key = iota
	KeyBackspace
	KeyUp
	KeyDown
)

type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
)

// Event is one input event. Only the fields relevant to Type are set:
// W/H for resize, Key for keydown, Rune for text, Button and X/Y for mouse.
type Event struct {
	Type   EventType
	Key    Key
	Rune   rune
	Button Button
	X, Y   int
	W, H   int
}

func Resize(w, h int) Event              { return Event{Type: EventResize, W: w, H: h} }
func Quit() Event                        { return Event{Type: EventQuit} }
func KeyPress(k Key) Event               { return Event{Type: EventKeyDown, Key: k} }
func Text(r rune) Event                  { return Event{Type: EventTextInput, Rune: r} }
func MouseDown(b Button, x, y int) Event { return Event{Type: EventMouseDown, Button: b, X: x, Y: y} }
func MouseUp(b Button, x, y int) Event   { return Event{Type: EventMouseUp, Button: b, X: x, Y: y} }
func Motion(x, y int) Event              { return Event{Type: EventMouseMotion, X: x, Y: y} }
