package main

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/particlepanic/internal/bench"
	"github.com/san-kum/particlepanic/internal/compute"
	"github.com/san-kum/particlepanic/internal/config"
	"github.com/san-kum/particlepanic/internal/store"
	"github.com/san-kum/particlepanic/internal/world"
	"github.com/spf13/cobra"
)

type benchOptions struct {
	particles   int
	steps       int
	duration    time.Duration
	threeD      bool
	jsonPath    string
	comparePath string
	plain       bool
}

func newBenchCmd(opts *options) *cobra.Command {
	bopts := &benchOptions{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "step a seeded world without a window and report step times",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runBench(cmd, cfg, bopts)
		},
	}
	cmd.Flags().IntVar(&bopts.particles, "particles", 2000, "particles to seed")
	cmd.Flags().IntVar(&bopts.steps, "steps", 300, "steps to run")
	cmd.Flags().DurationVar(&bopts.duration, "duration", 0, "stop after this long (0 = no limit)")
	cmd.Flags().BoolVar(&bopts.threeD, "3d", false, "run the 3D world")
	cmd.Flags().StringVar(&bopts.jsonPath, "json", "", "also write the results as json to this path")
	cmd.Flags().StringVar(&bopts.comparePath, "compare", "", "compare against a report written by --json")
	cmd.Flags().BoolVar(&bopts.plain, "plain", false, "no live view, only the final summary")
	return cmd
}

func runBench(cmd *cobra.Command, cfg *config.Config, bopts *benchOptions) error {
	var baseline *store.BenchReport
	if bopts.comparePath != "" {
		var err error
		if baseline, err = store.LoadJSON(bopts.comparePath); err != nil {
			return err
		}
	}

	backend, err := compute.Select(cfg.Backend, cfg.Sim.Workers)
	if err != nil {
		return err
	}

	sim := world.New(cfg.Sim, backend, nil)
	defer sim.Close()
	sim.Init()
	sim.ResizeWindow(config.InitialWidth, config.InitialHeight)
	sim.Set3D(bopts.threeD)
	sim.ResizeWorld(config.InitialWidth, config.InitialHeight)
	sim.Populate(bopts.particles)

	benchOpts := bench.Options{
		Steps:    bopts.steps,
		Duration: bopts.duration,
		Backend:  sim.Backend(),
		ThreeD:   bopts.threeD,
	}
	if cpu, ok := backend.(*compute.CPUBackend); ok {
		benchOpts.Workers = cpu.Workers()
	}

	out := cmd.OutOrStdout()
	progOpts := []tea.ProgramOption{tea.WithContext(cmd.Context()), tea.WithOutput(out)}
	if bopts.plain {
		progOpts = append(progOpts, tea.WithoutRenderer(), tea.WithInput(nil))
	}
	final, err := tea.NewProgram(bench.NewModel(sim, benchOpts), progOpts...).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	m, ok := final.(bench.Model)
	if !ok || len(m.Times()) == 0 {
		return fmt.Errorf("bench: no steps run")
	}

	report := m.Report()
	fmt.Fprintln(out, bench.Summary(report))
	fmt.Fprintln(out, bench.Plot(m.Times(), 80, 10))
	if baseline != nil {
		fmt.Fprintln(out, bench.Compare(baseline, report))
	}

	if bopts.jsonPath == "" {
		return nil
	}
	return store.ExportJSON(bopts.jsonPath, report)
}
