package world

import (
	"math"

	"github.com/san-kum/particlepanic/internal/particle"
)

// Edits below are no-ops outside live snapshot mode.

func (s *Sim) editable() bool { return s.SnapshotMode() == SnapshotLive }

// MouseDraw spawns particles jittered inside the brush around (x, y).
func (s *Sim) MouseDraw(x, y int) {
	if !s.editable() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.boundsLocked()
	c := s.toWorldLocked(x, y)
	for i := 0; i < s.perDraw && len(s.particles) < s.maxParticles; i++ {
		a := s.rng.Float64() * 2 * math.Pi
		r := s.brush * math.Sqrt(s.rng.Float64())
		p := particle.Vec3{X: c.X + math.Cos(a)*r, Y: c.Y + math.Sin(a)*r}
		if b.D > 0 {
			p.Z = b.D/2 + (s.rng.Float64()*2-1)*s.brush
		}
		s.particles = append(s.particles, particle.Particle{Pos: b.Clamp(p)})
	}
}

// MouseErase removes every particle inside the brush.
func (s *Sim) MouseErase(x, y int) {
	if !s.editable() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.toWorldLocked(x, y)
	r2 := s.brush * s.brush
	kept := s.particles[:0]
	for _, p := range s.particles {
		if planar2(p.Pos, c) > r2 {
			kept = append(kept, p)
		}
	}
	clear(s.particles[len(kept):])
	s.particles = kept
}

// SelectDraggedParticles marks the particles inside the brush for dragging.
func (s *Sim) SelectDraggedParticles(x, y int) {
	if !s.editable() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.toWorldLocked(x, y)
	r2 := s.brush * s.brush
	for i := range s.particles {
		p := &s.particles[i]
		p.Dragged = planar2(p.Pos, c) <= r2
		if p.Dragged {
			p.Vel = particle.Vec3{}
		}
	}
	s.lastDrag = c
	s.dragVel = particle.Vec3{}
}

// MouseDrag moves the selection by the cursor delta since the last sample.
func (s *Sim) MouseDrag(x, y int) {
	if !s.editable() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.toWorldLocked(x, y)
	delta := c.Sub(s.lastDrag)
	s.lastDrag = c
	if delta.Len2() == 0 {
		return
	}

	v := delta.Scale(1 / s.dt)
	if limit := s.cellLocked() / s.dt; v.Len() > limit {
		v = v.Scale(limit / v.Len())
	}
	s.dragVel = v

	b := s.boundsLocked()
	for i := range s.particles {
		p := &s.particles[i]
		if !p.Dragged {
			continue
		}
		p.Pos = b.Clamp(p.Pos.Add(delta))
		p.Vel = v
	}
}

// MouseDragEnd releases the selection with the last drag velocity.
func (s *Sim) MouseDragEnd(x, y int) {
	if !s.editable() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.particles {
		p := &s.particles[i]
		if p.Dragged {
			p.Dragged = false
			p.Vel = s.dragVel
		}
	}
	s.dragVel = particle.Vec3{}
}

// toWorldLocked maps window pixels to particle space.
func (s *Sim) toWorldLocked(x, y int) particle.Vec3 {
	p := particle.Vec3{X: float64(x), Y: float64(y)}
	w, h := s.WindowSize()
	if w > 0 && h > 0 {
		p.X *= s.worldW / float64(w)
		p.Y *= s.worldH / float64(h)
	}
	return p
}

func planar2(a, b particle.Vec3) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}
