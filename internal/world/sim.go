package world

import (
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/san-kum/particlepanic/internal/compute"
	"github.com/san-kum/particlepanic/internal/config"
	"github.com/san-kum/particlepanic/internal/particle"
	"go.uber.org/zap"
)

const (
	restDensity  = 2.0
	defaultYaw   = 0.6
	defaultPitch = 0.35
)

var _ World = (*Sim)(nil)

// Sim is the World implementation backed by a compute.Backend.
type Sim struct {
	log     *zap.Logger
	backend compute.Backend

	mu        sync.RWMutex
	particles []particle.Particle
	grid      *particle.Grid
	rng       *rand.Rand

	worldW, worldH float64
	res2D, res3D   int

	gravityOn    bool
	gravity      float64
	brush        float64
	perDraw      int
	maxParticles int
	dt           float64
	stiffness    float64
	viscosity    float64
	damping      float64

	yaw, pitch float64

	lastDrag particle.Vec3
	dragVel  particle.Vec3

	snapshot   atomic.Int32
	threeD     atomic.Bool
	winW, winH atomic.Int32
	cursorX    atomic.Int32
	cursorY    atomic.Int32
	stepping   atomic.Bool
	steps      atomic.Uint64
	closed     atomic.Bool

	drawMu  sync.Mutex
	drawBuf []dot
}

func New(cfg config.Sim, backend compute.Backend, log *zap.Logger) *Sim {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sim{
		log:          log,
		backend:      backend,
		grid:         particle.NewGrid(),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		res2D:        clampStep(cfg.Resolution2D, MinResolution2D, MaxResolution2D, Resolution2DStep),
		res3D:        clampStep(cfg.Resolution3D, MinResolution3D, MaxResolution3D, Resolution3DStep),
		gravityOn:    true,
		gravity:      cfg.Gravity,
		brush:        cfg.BrushRadius,
		perDraw:      cfg.ParticlesPerDraw,
		maxParticles: cfg.MaxParticles,
		dt:           cfg.Dt,
		stiffness:    cfg.Stiffness,
		viscosity:    cfg.Viscosity,
		damping:      cfg.Damping,
		yaw:          defaultYaw,
		pitch:        defaultPitch,
	}
}

// Init sizes the world to the initial window. Subsequent ResizeWorld calls
// replace these dimensions.
func (s *Sim) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.worldW == 0 || s.worldH == 0 {
		s.worldW, s.worldH = config.InitialWidth, config.InitialHeight
	}
	s.reflowLocked()
	s.log.Info("world initialized",
		zap.String("backend", s.backend.Name()),
		zap.Int("resolution_2d", s.res2D),
		zap.Int("resolution_3d", s.res3D),
	)
}

func (s *Sim) Update(running *bool) bool {
	if *running || s.SnapshotMode() >= SnapshotFrozen {
		return false
	}
	if !s.stepping.CompareAndSwap(false, true) {
		return false
	}
	defer s.stepping.Store(false)

	*running = true
	defer func() { *running = false }()

	s.mu.Lock()
	s.backend.Step(s.particles, s.grid, s.paramsLocked())
	s.mu.Unlock()

	s.steps.Add(1)
	return true
}

func (s *Sim) ResizeWindow(w, h int) {
	s.winW.Store(int32(w))
	s.winH.Store(int32(h))
}

func (s *Sim) WindowSize() (w, h int) {
	return int(s.winW.Load()), int(s.winH.Load())
}

// ResizeWorld changes the particle-space bounds. Particles outside the new
// bounds are pulled back inside, never dropped.
func (s *Sim) ResizeWorld(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.worldW, s.worldH = float64(max(w, 1)), float64(max(h, 1))
	b := s.boundsLocked()
	for i := range s.particles {
		s.particles[i].Pos = b.Clamp(s.particles[i].Pos)
	}
	s.reflowLocked()
}

func (s *Sim) WorldSize() (w, h int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int(s.worldW), int(s.worldH)
}

func (s *Sim) ClearWorld() {
	s.mu.Lock()
	s.particles = s.particles[:0]
	s.dragVel = particle.Vec3{}
	s.mu.Unlock()
}

func (s *Sim) SnapshotMode() int { return int(s.snapshot.Load()) }

func (s *Sim) SetSnapshotMode(m int) {
	s.snapshot.Store(int32(min(max(m, SnapshotLive), SnapshotFrozen)))
}

func (s *Sim) Is3D() bool { return s.threeD.Load() }

// Set3D flips the dimensionality. Callers clear the world first; existing
// particles are not converted.
func (s *Sim) Set3D(enabled bool) {
	s.threeD.Store(enabled)
	s.mu.Lock()
	s.reflowLocked()
	s.mu.Unlock()
}

func (s *Sim) HandleKeys(r rune) {
	switch r {
	case 's':
		s.snapshot.Store((s.snapshot.Load() + 1) % 3)
	case ' ':
		if s.SnapshotMode() >= SnapshotFrozen {
			s.snapshot.Store(SnapshotLive)
		} else {
			s.snapshot.Store(SnapshotFrozen)
		}
	case 'g':
		s.mu.Lock()
		s.gravityOn = !s.gravityOn
		s.mu.Unlock()
	case '<':
		s.step3DResolution(-Resolution3DStep)
	case '>':
		s.step3DResolution(Resolution3DStep)
	case 'r':
		s.mu.Lock()
		s.yaw, s.pitch = defaultYaw, defaultPitch
		s.mu.Unlock()
	}
}

func (s *Sim) Increase2DResolution() { s.step2DResolution(Resolution2DStep) }
func (s *Sim) Decrease2DResolution() { s.step2DResolution(-Resolution2DStep) }

func (s *Sim) step2DResolution(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.res2D = clampStep(s.res2D+delta, MinResolution2D, MaxResolution2D, Resolution2DStep)
	s.reflowLocked()
}

func (s *Sim) step3DResolution(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.res3D = clampStep(s.res3D+delta, MinResolution3D, MaxResolution3D, Resolution3DStep)
	s.reflowLocked()
}

// Resolutions reports the current 2D and 3D grid resolutions.
func (s *Sim) Resolutions() (res2D, res3D int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.res2D, s.res3D
}

// MouseMove records the cursor for the brush outline. In 3D a drag orbits
// the camera by the cursor delta.
func (s *Sim) MouseMove(x, y int, dragging bool) {
	px, py := s.cursorX.Swap(int32(x)), s.cursorY.Swap(int32(y))
	if !dragging || !s.Is3D() {
		return
	}
	s.mu.Lock()
	s.yaw += float64(int32(x)-px) * 0.01
	s.pitch = math.Max(-1.4, math.Min(1.4, s.pitch+float64(int32(y)-py)*0.01))
	s.mu.Unlock()
}

func (s *Sim) ParticleCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.particles)
}

// Particles returns a copy of the current particle set.
func (s *Sim) Particles() []particle.Particle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]particle.Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// Steps is the number of completed Update steps.
func (s *Sim) Steps() uint64 { return s.steps.Load() }

func (s *Sim) Backend() string { return s.backend.Name() }

// Populate seeds n particles uniformly inside the bounds, up to the particle
// cap. Used by bench to start from a loaded world.
func (s *Sim) Populate(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.boundsLocked()
	for i := 0; i < n && len(s.particles) < s.maxParticles; i++ {
		p := particle.Vec3{X: s.rng.Float64() * b.W, Y: s.rng.Float64() * b.H}
		if b.D > 0 {
			p.Z = s.rng.Float64() * b.D
		}
		s.particles = append(s.particles, particle.Particle{Pos: p})
	}
}

func (s *Sim) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.backend.Cleanup()
	s.log.Debug("world closed", zap.Uint64("steps", s.steps.Load()))
	return nil
}

func (s *Sim) boundsLocked() particle.Bounds {
	b := particle.Bounds{W: s.worldW, H: s.worldH}
	if s.Is3D() {
		b.D = math.Min(s.worldW, s.worldH)
	}
	return b
}

func (s *Sim) cellLocked() float64 {
	if s.Is3D() {
		b := s.boundsLocked()
		return math.Max(b.W, math.Max(b.H, b.D)) / float64(s.res3D)
	}
	return s.worldW / float64(s.res2D)
}

func (s *Sim) reflowLocked() {
	s.grid.Reflow(s.boundsLocked(), s.cellLocked())
}

func (s *Sim) paramsLocked() particle.Params {
	h := s.cellLocked()
	g := 0.0
	if s.gravityOn {
		g = s.gravity
	}
	return particle.Params{
		Dt:          s.dt,
		Gravity:     g,
		H:           h,
		RestDensity: restDensity,
		Stiffness:   s.stiffness,
		Viscosity:   s.viscosity,
		Damping:     s.damping,
		MaxSpeed:    h / s.dt,
		Bounds:      s.boundsLocked(),
	}
}

func clampStep(v, lo, hi, step int) int {
	v = min(max(v, lo), hi)
	return lo + (v-lo)/step*step
}
