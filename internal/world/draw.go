package world

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/particlepanic/internal/gfx"
)

type dot struct {
	x, y, depth float32
	r           float32
	speed       float64
}

// Draw renders the particles and the HUD. Particle state is copied out under
// the read lock, so a step in flight is never half-observed.
func (s *Sim) Draw(c gfx.Canvas) {
	s.drawMu.Lock()
	defer s.drawMu.Unlock()

	cw, ch := c.Size()
	w, h := s.WindowSize()
	if w <= 0 || h <= 0 {
		w, h = cw, ch
	}
	threeD := s.Is3D()

	s.mu.RLock()
	n := len(s.particles)
	res2D, res3D := s.res2D, s.res3D
	brush := s.brush
	ww, wh := math.Max(s.worldW, 1), math.Max(s.worldH, 1)
	maxSpeed := s.paramsLocked().MaxSpeed
	if threeD {
		s.project3DLocked(w, h)
	} else {
		s.project2DLocked(w, h)
	}
	s.mu.RUnlock()

	c.Clear(gfx.ColBg)
	if threeD {
		// back to front
		sort.Slice(s.drawBuf, func(i, j int) bool { return s.drawBuf[i].depth > s.drawBuf[j].depth })
	} else {
		s.drawBrush(c, float64(w)/ww, float64(h)/wh, brush)
	}
	for _, d := range s.drawBuf {
		c.Circle(d.x, d.y, d.r, gfx.Speed(d.speed/maxSpeed))
	}

	mode := "2D"
	res := res2D
	if threeD {
		mode, res = "3D", res3D
	}
	hud := fmt.Sprintf("%s  res %d  particles %d  %s", mode, res, n, snapshotLabel(s.SnapshotMode()))
	c.Text(hud, 8, ch-20, 10, gfx.ColText)
}

func snapshotLabel(m int) string {
	switch m {
	case SnapshotLive:
		return "live"
	case SnapshotEditsFrozen:
		return "edits frozen"
	default:
		return "frozen"
	}
}

func (s *Sim) drawBrush(c gfx.Canvas, sx, sy, brush float64) {
	x, y := int(s.cursorX.Load()), int(s.cursorY.Load())
	rx, ry := int(brush*sx), int(brush*sy)
	c.RectLines(x-rx, y-ry, 2*rx, 2*ry, gfx.ColGrid)
}

func (s *Sim) project2DLocked(w, h int) {
	sx := float64(w) / math.Max(s.worldW, 1)
	sy := float64(h) / math.Max(s.worldH, 1)
	s.drawBuf = s.drawBuf[:0]
	for _, p := range s.particles {
		s.drawBuf = append(s.drawBuf, dot{
			x:     float32(p.Pos.X * sx),
			y:     float32(p.Pos.Y * sy),
			r:     2,
			speed: p.Vel.Len(),
		})
	}
}

// project3DLocked orbits the box center by yaw and pitch and applies a simple
// perspective divide.
func (s *Sim) project3DLocked(w, h int) {
	b := s.boundsLocked()
	cx, cy, cz := b.W/2, b.H/2, b.D/2
	extent := math.Max(b.W, math.Max(b.H, b.D))
	dist := 2 * extent
	scale := math.Min(float64(w), float64(h)) / (extent * 1.2)
	sinY, cosY := math.Sincos(s.yaw)
	sinP, cosP := math.Sincos(s.pitch)

	s.drawBuf = s.drawBuf[:0]
	for _, p := range s.particles {
		x, y, z := p.Pos.X-cx, p.Pos.Y-cy, p.Pos.Z-cz
		x, z = x*cosY-z*sinY, x*sinY+z*cosY
		y, z = y*cosP-z*sinP, y*sinP+z*cosP

		f := dist / (dist + z)
		s.drawBuf = append(s.drawBuf, dot{
			x:     float32(float64(w)/2 + x*f*scale),
			y:     float32(float64(h)/2 + y*f*scale),
			depth: float32(z),
			r:     float32(2.5 * f),
			speed: p.Vel.Len(),
		})
	}
}
