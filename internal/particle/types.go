package particle

import "math"

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(f float64) Vec3 { return Vec3{v.X * f, v.Y * f, v.Z * f} }

func (v Vec3) Len2() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }
func (v Vec3) Len() float64  { return math.Sqrt(v.Len2()) }

func (v Vec3) IsValid() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

type Particle struct {
	Pos, Vel Vec3
	Density  float64
	Pressure float64
	Dragged  bool
}

// Bounds is the box particles live in. D is zero in 2D.
type Bounds struct {
	W, H, D float64
}

func (b Bounds) Dims() int {
	if b.D > 0 {
		return 3
	}
	return 2
}

func (b Bounds) Clamp(p Vec3) Vec3 {
	p.X = clamp(p.X, 0, b.W)
	p.Y = clamp(p.Y, 0, b.H)
	p.Z = clamp(p.Z, 0, b.D)
	return p
}

func (b Bounds) Contains(p Vec3) bool {
	return p.X >= 0 && p.X <= b.W && p.Y >= 0 && p.Y <= b.H && p.Z >= 0 && p.Z <= b.D
}

// Params drives a single simulation step.
type Params struct {
	Dt          float64
	Gravity     float64 // +Y is down
	H           float64 // interaction radius, equals grid cell size
	RestDensity float64
	Stiffness   float64
	Viscosity   float64
	Damping     float64
	MaxSpeed    float64
	Bounds      Bounds
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
