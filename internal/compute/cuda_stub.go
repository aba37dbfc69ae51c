//go:build !cuda

package compute

import "github.com/san-kum/particlepanic/internal/particle"

type CUDABackend struct {
	fallback *CPUBackend
}

func NewCUDABackend(workers int) *CUDABackend {
	return &CUDABackend{fallback: NewCPUBackend(workers)}
}

func (c *CUDABackend) Name() string    { return "cuda (not available)" }
func (c *CUDABackend) Available() bool { return false }
func (c *CUDABackend) Cleanup()        {}

func (c *CUDABackend) Step(ps []particle.Particle, g *particle.Grid, p particle.Params) {
	c.fallback.Step(ps, g, p)
}
