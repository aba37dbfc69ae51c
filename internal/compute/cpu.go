package compute

import (
	"math"
	"runtime"

	"github.com/san-kum/particlepanic/internal/particle"
	"golang.org/x/sync/errgroup"
)

// below this many particles the fan-out costs more than it saves
const parallelThreshold = 256

type CPUBackend struct {
	workers int
	scratch *particle.VecPool
}

func NewCPUBackend(workers int) *CPUBackend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &CPUBackend{
		workers: workers,
		scratch: particle.NewVecPool(),
	}
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}
func (c *CPUBackend) Workers() int    { return c.workers }

func (c *CPUBackend) Step(ps []particle.Particle, g *particle.Grid, p particle.Params) {
	n := len(ps)
	if n == 0 {
		return
	}
	if p.H <= 0 {
		p.H = g.CellSize()
	}

	g.Build(ps)

	c.parallel(n, func(lo, hi int) {
		densities(ps, g, p, lo, hi)
	})

	acc := c.scratch.Get(n)
	defer c.scratch.Put(acc)

	c.parallel(n, func(lo, hi int) {
		forces(ps, g, p, acc, lo, hi)
	})

	c.parallel(n, func(lo, hi int) {
		integrate(ps, acc, p, lo, hi)
	})
}

// parallel splits [0,n) into one chunk per worker. Chunks write disjoint
// index ranges so no locking is needed.
func (c *CPUBackend) parallel(n int, fn func(lo, hi int)) {
	if n < parallelThreshold || c.workers == 1 {
		fn(0, n)
		return
	}

	var eg errgroup.Group
	chunk := (n + c.workers - 1) / c.workers
	for lo := 0; lo < n; lo += chunk {
		lo, hi := lo, min(lo+chunk, n)
		eg.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = eg.Wait()
}

func densities(ps []particle.Particle, g *particle.Grid, p particle.Params, lo, hi int) {
	h2 := p.H * p.H
	for i := lo; i < hi; i++ {
		pi := ps[i].Pos
		rho := 0.0
		g.Neighbors(pi, func(j int) {
			r2 := pi.Sub(ps[j].Pos).Len2()
			if r2 < h2 {
				rho += particle.Density(r2, p.H)
			}
		})
		ps[i].Density = rho
		ps[i].Pressure = p.Stiffness * (rho - p.RestDensity)
	}
}

func forces(ps []particle.Particle, g *particle.Grid, p particle.Params, acc []particle.Vec3, lo, hi int) {
	for i := lo; i < hi; i++ {
		pi, vi := ps[i].Pos, ps[i].Vel
		rhoI := math.Max(ps[i].Density, 1e-6)
		var f particle.Vec3

		g.Neighbors(pi, func(j int) {
			if i == j {
				return
			}
			d := pi.Sub(ps[j].Pos)
			r := d.Len()
			if r >= p.H {
				return
			}
			rhoJ := math.Max(ps[j].Density, 1e-6)
			if r < 1e-9 {
				// coincident particles: nudge apart deterministically
				d, r = particle.Vec3{X: float64(i-j) * 1e-3}, 1e-3
			}

			fp := (ps[i].Pressure + ps[j].Pressure) / (2 * rhoJ) * particle.PressureGrad(r, p.H)
			f = f.Add(d.Scale(fp / r))

			fv := p.Viscosity * particle.ViscosityLap(r, p.H) / rhoJ
			f = f.Add(ps[j].Vel.Sub(vi).Scale(fv))
		})

		a := f.Scale(1 / rhoI)
		a.Y += p.Gravity
		acc[i] = a
	}
}

func integrate(ps []particle.Particle, acc []particle.Vec3, p particle.Params, lo, hi int) {
	b := p.Bounds
	threeD := b.Dims() == 3
	for i := lo; i < hi; i++ {
		pt := &ps[i]
		if pt.Dragged {
			continue
		}

		v := pt.Vel.Add(acc[i].Scale(p.Dt))
		if !threeD {
			v.Z = 0
		}
		if p.MaxSpeed > 0 {
			if s := v.Len(); s > p.MaxSpeed {
				v = v.Scale(p.MaxSpeed / s)
			}
		}
		if !v.IsValid() {
			v = particle.Vec3{}
		}

		x := pt.Pos.Add(v.Scale(p.Dt))
		x, v = reflect(x.X, v.X, b.W, p.Damping, x, v, 0)
		x, v = reflect(x.Y, v.Y, b.H, p.Damping, x, v, 1)
		if threeD {
			x, v = reflect(x.Z, v.Z, b.D, p.Damping, x, v, 2)
		}
		pt.Pos, pt.Vel = x, v
	}
}

// reflect bounces one axis off the walls at 0 and max.
func reflect(pos, vel, max, damping float64, x, v particle.Vec3, axis int) (particle.Vec3, particle.Vec3) {
	switch {
	case pos < 0:
		pos, vel = -pos, -vel*damping
	case pos > max:
		pos, vel = 2*max-pos, -vel*damping
	default:
		return x, v
	}
	if pos < 0 || pos > max {
		pos = max / 2
	}
	switch axis {
	case 0:
		x.X, v.X = pos, vel
	case 1:
		x.Y, v.Y = pos, vel
	default:
		x.Z, v.Z = pos, vel
	}
	return x, v
}
