// Package compute provides the particle stepping backends behind the world.
//
// The package selects a backend once at startup:
//
//   - CUDA: GPU stepping, compiled in with the cuda build tag
//   - CPU: parallel workers, always available
//
// # Selection
//
//	backend, err := compute.Select("auto", 0)
//	backend.Step(particles, grid, params)
//
// Build with CUDA support:
//
//	go build -tags cuda ./...
//
// Without the tag the CUDA backend reports itself unavailable and steps on
// the CPU, so "auto" always resolves to something usable.
package compute
