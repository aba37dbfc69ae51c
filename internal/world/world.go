package world

import "github.com/san-kum/particlepanic/internal/gfx"

// Snapshot modes.
const (
	SnapshotLive        = 0
	SnapshotEditsFrozen = 1
	SnapshotFrozen      = 2
)

// Resolution limits. 2D resolution is the number of grid columns across the
// world width; 3D resolution is cells per axis.
const (
	MinResolution2D  = 8
	MaxResolution2D  = 256
	Resolution2DStep = 8

	MinResolution3D  = 4
	MaxResolution3D  = 32
	Resolution3DStep = 2
)

// World is the simulation as the app drives it.
type World interface {
	Init()
	// Update steps once unless *running is already set, in which case it
	// returns false without touching the particles.
	Update(running *bool) bool
	Draw(c gfx.Canvas)

	ResizeWindow(w, h int)
	ResizeWorld(w, h int)
	ClearWorld()
	WindowSize() (w, h int)

	HandleKeys(r rune)
	MouseMove(x, y int, dragging bool)
	Increase2DResolution()
	Decrease2DResolution()

	SnapshotMode() int
	Is3D() bool
	Set3D(enabled bool)

	SelectDraggedParticles(x, y int)
	MouseDrag(x, y int)
	MouseDraw(x, y int)
	MouseErase(x, y int)
	MouseDragEnd(x, y int)

	Params() map[string]float64
	SetParam(name string, value float64) error
	ParticleCount() int

	Close() error
}
