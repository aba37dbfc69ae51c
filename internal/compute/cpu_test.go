package compute

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/particlepanic/internal/particle"
)

func testParams(b particle.Bounds) particle.Params {
	return particle.Params{
		Dt:          0.016,
		Gravity:     400,
		H:           10,
		RestDensity: 2,
		Stiffness:   900,
		Viscosity:   4,
		Damping:     0.5,
		MaxSpeed:    600,
		Bounds:      b,
	}
}

func block(n int, b particle.Bounds) []particle.Particle {
	ps := make([]particle.Particle, n)
	cols := int(math.Sqrt(float64(n))) + 1
	for i := range ps {
		ps[i].Pos = particle.Vec3{
			X: 20 + float64(i%cols)*4,
			Y: 20 + float64(i/cols)*4,
		}
		if b.D > 0 {
			ps[i].Pos.Z = b.D / 2
		}
	}
	return ps
}

func TestCPUBackend_StaysInBounds(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		workers int
		bounds  particle.Bounds
	}{
		{"serial 2D", 50, 1, particle.Bounds{W: 200, H: 150}},
		{"parallel 2D", 600, 4, particle.Bounds{W: 300, H: 200}},
		{"parallel 3D", 400, 3, particle.Bounds{W: 200, H: 200, D: 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCPUBackend(tt.workers)
			g := particle.NewGrid()
			g.Reflow(tt.bounds, 10)
			ps := block(tt.n, tt.bounds)

			for step := 0; step < 200; step++ {
				c.Step(ps, g, testParams(tt.bounds))
			}

			for i, p := range ps {
				if !p.Pos.IsValid() || !p.Vel.IsValid() {
					t.Fatalf("particle %d invalid: %+v", i, p)
				}
				if !tt.bounds.Contains(p.Pos) {
					t.Fatalf("particle %d escaped: %+v", i, p.Pos)
				}
			}
		})
	}
}

func TestCPUBackend_GravityPullsDown(t *testing.T) {
	b := particle.Bounds{W: 100, H: 100}
	c := NewCPUBackend(1)
	g := particle.NewGrid()
	g.Reflow(b, 10)

	ps := []particle.Particle{{Pos: particle.Vec3{X: 50, Y: 10}}}
	for i := 0; i < 10; i++ {
		c.Step(ps, g, testParams(b))
	}
	if ps[0].Pos.Y <= 10 {
		t.Errorf("expected particle to fall, y=%f", ps[0].Pos.Y)
	}
	if ps[0].Pos.Z != 0 {
		t.Errorf("2D particle left the plane: z=%f", ps[0].Pos.Z)
	}
}

func TestCPUBackend_SkipsDragged(t *testing.T) {
	b := particle.Bounds{W: 100, H: 100}
	c := NewCPUBackend(1)
	g := particle.NewGrid()
	g.Reflow(b, 10)

	ps := []particle.Particle{{Pos: particle.Vec3{X: 50, Y: 10}, Dragged: true}}
	c.Step(ps, g, testParams(b))
	if ps[0].Pos != (particle.Vec3{X: 50, Y: 10}) {
		t.Errorf("dragged particle moved: %+v", ps[0].Pos)
	}
}

func TestCPUBackend_SerialMatchesParallel(t *testing.T) {
	b := particle.Bounds{W: 300, H: 300}
	serial := block(500, b)
	par := block(500, b)

	g1, g2 := particle.NewGrid(), particle.NewGrid()
	g1.Reflow(b, 10)
	g2.Reflow(b, 10)

	NewCPUBackend(1).Step(serial, g1, testParams(b))
	NewCPUBackend(8).Step(par, g2, testParams(b))

	for i := range serial {
		if serial[i].Pos.Sub(par[i].Pos).Len() > 1e-9 {
			t.Fatalf("particle %d diverged: %v vs %v", i, serial[i].Pos, par[i].Pos)
		}
	}
}

func TestSelect(t *testing.T) {
	b, err := Select("cpu", 2)
	if err != nil || b.Name() != "cpu" {
		t.Errorf("Select(cpu) = %v, %v", b, err)
	}

	if cpu, ok := b.(*CPUBackend); !ok || cpu.Workers() != 2 {
		t.Errorf("Select(cpu, 2) = %v, want 2 workers", b)
	}
	if NewCPUBackend(0).Workers() < 1 {
		t.Error("zero workers should default to one per CPU")
	}

	b, err = Select("auto", 2)
	if err != nil || !b.Available() {
		t.Errorf("Select(auto) = %v, %v", b, err)
	}

	if _, err := Select("tpu", 1); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}

	gpu := NewCUDABackend(1)
	if !gpu.Available() {
		if _, err := Select("gpu", 1); !errors.Is(err, ErrUnavailable) {
			t.Errorf("expected ErrUnavailable, got %v", err)
		}
	}
}

func TestCUDABackend_FallbackSteps(t *testing.T) {
	b := particle.Bounds{W: 100, H: 100}
	gpu := NewCUDABackend(1)
	g := particle.NewGrid()
	g.Reflow(b, 10)

	ps := []particle.Particle{{Pos: particle.Vec3{X: 50, Y: 10}}}
	gpu.Step(ps, g, testParams(b))
	if ps[0].Pos.Y <= 10 {
		t.Errorf("expected fallback step to move particle, y=%f", ps[0].Pos.Y)
	}
}
