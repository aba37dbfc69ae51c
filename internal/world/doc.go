// Package world holds the particle simulation state machine.
//
// A [World] owns the particle set, the 2D/3D mode, the snapshot mode and the
// spatial grid, and is mutated only through its methods:
//
//   - edits: [World.MouseDraw], [World.MouseErase], [World.SelectDraggedParticles],
//     [World.MouseDrag], [World.MouseDragEnd]
//   - layout: [World.ResizeWindow], [World.ResizeWorld], [World.Set3D], [World.ClearWorld]
//   - stepping: [World.Update]
//   - rendering: [World.Draw]
//
// # Snapshot modes
//
//	0  live: edits and stepping
//	1  edits frozen, stepping continues
//	2  everything frozen
//
// # Thread Safety
//
// [Sim] is safe for concurrent use. Particle mutations, stepping and Draw are
// serialized by an internal RWMutex; snapshot mode, the 3D flag and the window
// size are atomics so the input goroutine can read them without blocking on a
// step in flight.
package world
