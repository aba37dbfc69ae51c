package bench

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/particlepanic/internal/store"
)

var (
	TitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	LabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	betterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	worseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func (m Model) View() string {
	if m.done {
		return ""
	}
	mean, p95 := store.Summarize(m.times)
	var s strings.Builder
	s.WriteString(TitleStyle.Render("particlepanic bench") + "\n\n")
	s.WriteString(row("backend", m.opts.Backend))
	s.WriteString(row("particles", fmt.Sprint(m.world.ParticleCount())))
	s.WriteString(row("steps", fmt.Sprintf("%d/%d", len(m.times), m.opts.Steps)))
	s.WriteString(row("mean", fmt.Sprintf("%.3f ms", mean)))
	s.WriteString(row("p95", fmt.Sprintf("%.3f ms", p95)))
	if len(m.times) > 1 {
		recent := m.times[max(len(m.times)-graphWindow, 0):]
		s.WriteString("\n" + graphStyle.Render(Plot(recent, 60, 8)) + "\n")
	}
	s.WriteString("\n" + helpStyle.Render("q: stop"))
	return s.String()
}

func row(label, value string) string {
	return LabelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

// Plot draws step times with asciigraph.
func Plot(times []float64, width, height int) string {
	if len(times) == 0 {
		return ""
	}
	return asciigraph.Plot(times,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("step time (ms)"),
	)
}

// Summary renders the final report box. steps/s is omitted when the mean is
// too small to measure.
func Summary(r *store.BenchReport) string {
	mode := "2D"
	if r.ThreeD {
		mode = "3D"
	}
	var b strings.Builder
	b.WriteString(TitleStyle.Render("particlepanic bench"))
	b.WriteString("\n" + row("backend", r.Backend))
	if r.Workers > 0 {
		b.WriteString(row("workers", fmt.Sprint(r.Workers)))
	}
	b.WriteString(row("mode", mode))
	b.WriteString(row("particles", fmt.Sprint(r.Particles)))
	b.WriteString(row("steps", fmt.Sprint(r.Steps)))
	b.WriteString(row("mean", fmt.Sprintf("%.3f ms", r.MeanMs)))
	b.WriteString(row("p95", fmt.Sprintf("%.3f ms", r.P95Ms)))
	if r.MeanMs > 0 {
		b.WriteString(row("steps/s", fmt.Sprintf("%.1f", 1000/r.MeanMs)))
	} else {
		b.WriteString(row("steps/s", "n/a"))
	}
	return boxStyle.Render(strings.TrimSuffix(b.String(), "\n"))
}

// Compare renders the change in mean and p95 against a baseline report.
// Negative deltas are faster.
func Compare(base, cur *store.BenchReport) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("vs baseline") + "\n")
	b.WriteString(row("baseline", fmt.Sprintf("%s, %d particles, %s", base.Backend, base.Particles, base.Recorded.Format("2006-01-02 15:04"))))
	b.WriteString(LabelStyle.Render("mean") + delta(base.MeanMs, cur.MeanMs) + "\n")
	b.WriteString(LabelStyle.Render("p95") + delta(base.P95Ms, cur.P95Ms))
	return b.String()
}

func delta(base, cur float64) string {
	if base <= 0 {
		return valueStyle.Render(fmt.Sprintf("%.3f ms (no baseline)", cur))
	}
	pct := (cur - base) / base * 100
	text := fmt.Sprintf("%.3f ms -> %.3f ms (%+.1f%%)", base, cur, pct)
	if pct <= 0 {
		return betterStyle.Render(text)
	}
	return worseStyle.Render(text)
}
