// Package bench steps a world without a host and reports step times, live
// in the terminal while it runs and as a summary when it ends.
package bench

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/particlepanic/internal/store"
)

// graphWindow is how many recent samples the live graph shows.
const graphWindow = 120

// Stepper is the part of world.World the bench drives.
type Stepper interface {
	Update(running *bool) bool
	ParticleCount() int
}

type Options struct {
	Steps    int
	Duration time.Duration // zero means no limit
	Backend  string
	Workers  int // zero when the backend has no worker pool
	ThreeD   bool
}

type StepMsg time.Time

// Model runs one world step per StepMsg until the step or time budget is
// spent, or the user quits.
type Model struct {
	world   Stepper
	opts    Options
	running bool

	start       time.Time
	times       []float64
	interrupted bool
	done        bool
	now         func() time.Time
}

func NewModel(w Stepper, opts Options) Model {
	return Model{
		world: w,
		opts:  opts,
		times: make([]float64, 0, max(opts.Steps, 0)),
		now:   time.Now,
	}
}

func step() tea.Msg { return StepMsg(time.Now()) }

func (m Model) Init() tea.Cmd { return step }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.interrupted = true
			m.done = true
			return m, tea.Quit
		}
	case StepMsg:
		if m.done {
			return m, nil
		}
		if m.start.IsZero() {
			m.start = m.now()
		}
		if m.finished() {
			m.done = true
			return m, tea.Quit
		}
		t0 := m.now()
		m.world.Update(&m.running)
		m.times = append(m.times, float64(m.now().Sub(t0).Nanoseconds())/1e6)
		return m, step
	}
	return m, nil
}

func (m Model) finished() bool {
	if len(m.times) >= m.opts.Steps {
		return true
	}
	return m.opts.Duration > 0 && m.now().Sub(m.start) >= m.opts.Duration
}

func (m Model) Done() bool        { return m.done }
func (m Model) Interrupted() bool { return m.interrupted }

// Times returns the recorded step durations in milliseconds.
func (m Model) Times() []float64 { return m.times }

// Report summarizes the run for display and export.
func (m Model) Report() *store.BenchReport {
	mean, p95 := store.Summarize(m.times)
	return &store.BenchReport{
		Backend:   m.opts.Backend,
		Workers:   m.opts.Workers,
		ThreeD:    m.opts.ThreeD,
		Particles: m.world.ParticleCount(),
		Steps:     len(m.times),
		MeanMs:    mean,
		P95Ms:     p95,
		StepMs:    m.times,
		Recorded:  m.now().UTC(),
	}
}
