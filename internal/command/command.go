// Package command carries deferred world mutations from the input goroutine
// to the timer goroutine.
package command

import "fmt"

type Kind uint8

const (
	KindResizeWorld Kind = iota + 1
	KindClearWorld
	KindSet3D
	KindSelectDraggedParticles
	KindMouseDrag
	KindMouseDraw
	KindMouseErase
	KindMouseDragEnd
)

var kindNames = [...]string{
	KindResizeWorld:            "ResizeWorld",
	KindClearWorld:             "ClearWorld",
	KindSet3D:                  "Set3D",
	KindSelectDraggedParticles: "SelectDraggedParticles",
	KindMouseDrag:              "MouseDrag",
	KindMouseDraw:              "MouseDraw",
	KindMouseErase:             "MouseErase",
	KindMouseDragEnd:           "MouseDragEnd",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Target is the part of the world commands mutate.
type Target interface {
	ResizeWorld(w, h int)
	ClearWorld()
	Set3D(enabled bool)
	SelectDraggedParticles(x, y int)
	MouseDrag(x, y int)
	MouseDraw(x, y int)
	MouseErase(x, y int)
	MouseDragEnd(x, y int)
}

// Command is one deferred world mutation. Fields are fixed at construction;
// for ResizeWorld x and y hold width and height.
type Command struct {
	kind    Kind
	x, y    int
	enabled bool
	world   Target
}

func NewResizeWorld(w Target, width, height int) Command {
	return Command{kind: KindResizeWorld, x: width, y: height, world: w}
}

func NewClearWorld(w Target) Command {
	return Command{kind: KindClearWorld, world: w}
}

func NewSet3D(w Target, enabled bool) Command {
	return Command{kind: KindSet3D, enabled: enabled, world: w}
}

func NewSelectDraggedParticles(w Target, x, y int) Command {
	return Command{kind: KindSelectDraggedParticles, x: x, y: y, world: w}
}

func NewMouseDrag(w Target, x, y int) Command {
	return Command{kind: KindMouseDrag, x: x, y: y, world: w}
}

func NewMouseDraw(w Target, x, y int) Command {
	return Command{kind: KindMouseDraw, x: x, y: y, world: w}
}

func NewMouseErase(w Target, x, y int) Command {
	return Command{kind: KindMouseErase, x: x, y: y, world: w}
}

func NewMouseDragEnd(w Target, x, y int) Command {
	return Command{kind: KindMouseDragEnd, x: x, y: y, world: w}
}

func (c Command) Kind() Kind        { return c.kind }
func (c Command) Point() (x, y int) { return c.x, c.y }
func (c Command) Enabled() bool     { return c.enabled }

// Size returns the dimensions carried by a ResizeWorld command.
func (c Command) Size() (w, h int) { return c.x, c.y }

func (c Command) String() string {
	switch c.kind {
	case KindClearWorld:
		return c.kind.String()
	case KindSet3D:
		return fmt.Sprintf("%s(%t)", c.kind, c.enabled)
	default:
		return fmt.Sprintf("%s(%d,%d)", c.kind, c.x, c.y)
	}
}

// Execute applies the command to its world. Commands without a world do
// nothing.
func (c Command) Execute() {
	if c.world == nil {
		return
	}
	switch c.kind {
	case KindResizeWorld:
		c.world.ResizeWorld(c.x, c.y)
	case KindClearWorld:
		c.world.ClearWorld()
	case KindSet3D:
		c.world.Set3D(c.enabled)
	case KindSelectDraggedParticles:
		c.world.SelectDraggedParticles(c.x, c.y)
	case KindMouseDrag:
		c.world.MouseDrag(c.x, c.y)
	case KindMouseDraw:
		c.world.MouseDraw(c.x, c.y)
	case KindMouseErase:
		c.world.MouseErase(c.x, c.y)
	case KindMouseDragEnd:
		c.world.MouseDragEnd(c.x, c.y)
	}
}
