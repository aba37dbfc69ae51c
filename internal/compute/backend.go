package compute

import (
	"errors"
	"fmt"

	"github.com/san-kum/particlepanic/internal/particle"
)

var (
	ErrUnknownBackend = errors.New("compute: unknown backend")
	ErrUnavailable    = errors.New("compute: backend not available on this machine")
)

// Backend advances a particle set by one step. Step owns the particle slice
// for its duration; callers serialize access.
type Backend interface {
	Name() string
	Available() bool
	Step(ps []particle.Particle, g *particle.Grid, p particle.Params)
	Cleanup()
}

// Select resolves a backend by name. "auto" prefers the GPU and falls back to
// the CPU; an explicit "gpu" on a machine without one returns ErrUnavailable.
func Select(name string, workers int) (Backend, error) {
	switch name {
	case "cpu":
		return NewCPUBackend(workers), nil
	case "gpu":
		gpu := NewCUDABackend(workers)
		if !gpu.Available() {
			return nil, fmt.Errorf("%s: %w", gpu.Name(), ErrUnavailable)
		}
		return gpu, nil
	case "auto", "":
		return AutoSelectBackend(workers), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

func AutoSelectBackend(workers int) Backend {
	cuda := NewCUDABackend(workers)
	if cuda.Available() {
		return cuda
	}
	return NewCPUBackend(workers)
}
