//go:build cuda

package compute

/*
#cgo CFLAGS: -I/opt/cuda/include
#cgo LDFLAGS: -L/opt/cuda/lib64 -L${SRCDIR} -lcudart -lppkernels -lstdc++
#include <stdlib.h>

extern int cuda_device_count();
extern const char* cuda_device_name_get();
extern void sph_step_gpu(float* pos, float* vel, int n, int dims,
	float dt, float gravity, float h, float rest, float stiffness,
	float viscosity, float damping, float w, float hgt, float d);
*/
import "C"
import (
	"unsafe"

	"github.com/san-kum/particlepanic/internal/particle"
)

type CUDABackend struct {
	available  bool
	deviceName string
	fallback   *CPUBackend

	pos, vel []float32
}

func NewCUDABackend(workers int) *CUDABackend {
	count := int(C.cuda_device_count())
	name := ""
	if count > 0 {
		name = C.GoString(C.cuda_device_name_get())
	}
	return &CUDABackend{
		available:  count > 0,
		deviceName: name,
		fallback:   NewCPUBackend(workers),
	}
}

func (c *CUDABackend) Name() string {
	if c.available {
		return "cuda (" + c.deviceName + ")"
	}
	return "cuda (not available)"
}

func (c *CUDABackend) Available() bool { return c.available }
func (c *CUDABackend) Cleanup()        {}

func (c *CUDABackend) Step(ps []particle.Particle, g *particle.Grid, p particle.Params) {
	n := len(ps)
	if !c.available || n == 0 {
		c.fallback.Step(ps, g, p)
		return
	}

	if cap(c.pos) < n*3 {
		c.pos = make([]float32, n*3)
		c.vel = make([]float32, n*3)
	}
	c.pos, c.vel = c.pos[:n*3], c.vel[:n*3]
	for i := range ps {
		c.pos[i*3], c.pos[i*3+1], c.pos[i*3+2] = float32(ps[i].Pos.X), float32(ps[i].Pos.Y), float32(ps[i].Pos.Z)
		c.vel[i*3], c.vel[i*3+1], c.vel[i*3+2] = float32(ps[i].Vel.X), float32(ps[i].Vel.Y), float32(ps[i].Vel.Z)
	}

	C.sph_step_gpu(
		(*C.float)(unsafe.Pointer(&c.pos[0])),
		(*C.float)(unsafe.Pointer(&c.vel[0])),
		C.int(n),
		C.int(p.Bounds.Dims()),
		C.float(p.Dt),
		C.float(p.Gravity),
		C.float(p.H),
		C.float(p.RestDensity),
		C.float(p.Stiffness),
		C.float(p.Viscosity),
		C.float(p.Damping),
		C.float(p.Bounds.W),
		C.float(p.Bounds.H),
		C.float(p.Bounds.D),
	)

	for i := range ps {
		if ps[i].Dragged {
			continue
		}
		ps[i].Pos = particle.Vec3{X: float64(c.pos[i*3]), Y: float64(c.pos[i*3+1]), Z: float64(c.pos[i*3+2])}
		ps[i].Vel = particle.Vec3{X: float64(c.vel[i*3]), Y: float64(c.vel[i*3+1]), Z: float64(c.vel[i*3+2])}
	}
}
