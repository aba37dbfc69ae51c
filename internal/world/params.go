package world

import (
	"fmt"
	"math"
)

// Parameter names accepted by SetParam.
const (
	ParamResolution   = "resolution"
	ParamResolution3D = "resolution3d"
	ParamBrush        = "brush"
	ParamPerDraw      = "per_draw"
	ParamGravity      = "gravity"
	ParamMaxParticles = "max_particles"
)

type paramRange struct{ lo, hi float64 }

var paramRanges = map[string]paramRange{
	ParamResolution:   {MinResolution2D, MaxResolution2D},
	ParamResolution3D: {MinResolution3D, MaxResolution3D},
	ParamBrush:        {1, 200},
	ParamPerDraw:      {1, 100},
	ParamGravity:      {0, 5000},
	ParamMaxParticles: {1, 50000},
}

func (s *Sim) Params() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]float64{
		ParamResolution:   float64(s.res2D),
		ParamResolution3D: float64(s.res3D),
		ParamBrush:        s.brush,
		ParamPerDraw:      float64(s.perDraw),
		ParamGravity:      s.gravity,
		ParamMaxParticles: float64(s.maxParticles),
	}
}

// SetParam updates one parameter. Resolutions snap down to their step.
func (s *Sim) SetParam(name string, value float64) error {
	r, ok := paramRanges[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	if math.IsNaN(value) || value < r.lo || value > r.hi {
		return fmt.Errorf("%s=%g not in [%g, %g]: %w", name, value, r.lo, r.hi, ErrParamBounds)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch name {
	case ParamResolution:
		s.res2D = clampStep(int(value), MinResolution2D, MaxResolution2D, Resolution2DStep)
		s.reflowLocked()
	case ParamResolution3D:
		s.res3D = clampStep(int(value), MinResolution3D, MaxResolution3D, Resolution3DStep)
		s.reflowLocked()
	case ParamBrush:
		s.brush = value
	case ParamPerDraw:
		s.perDraw = int(value)
	case ParamGravity:
		s.gravity = value
	case ParamMaxParticles:
		s.maxParticles = int(value)
		if len(s.particles) > s.maxParticles {
			clear(s.particles[s.maxParticles:])
			s.particles = s.particles[:s.maxParticles]
		}
	}
	return nil
}
