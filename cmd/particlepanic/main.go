package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/san-kum/particlepanic/internal/app"
	"github.com/san-kum/particlepanic/internal/compute"
	"github.com/san-kum/particlepanic/internal/config"
	"github.com/san-kum/particlepanic/internal/host"
	"github.com/san-kum/particlepanic/internal/host/rlhost"
	"github.com/san-kum/particlepanic/internal/host/termhost"
	"github.com/san-kum/particlepanic/internal/logging"
	"github.com/san-kum/particlepanic/internal/world"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const termLogFile = "particlepanic.log"

type options struct {
	configFile  string
	preset      string
	host        string
	backend     string
	drawInTimer bool
	logLevel    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "particlepanic",
		Short:         "interactive particle sandbox",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runApp(cmd.Context(), cfg)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file path (yaml or toml)")
	flags.StringVar(&opts.preset, "preset", "", "simulation preset ("+joinPresets()+")")
	flags.StringVar(&opts.host, "host", "", "display host: raylib or term")
	flags.StringVar(&opts.backend, "backend", "", "compute backend: auto, cpu or gpu")
	flags.BoolVar(&opts.drawInTimer, "draw-in-timer", false, "render from the timer goroutine")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newBenchCmd(opts), newConfigCmd(opts))
	return rootCmd
}

// loadConfig layers defaults, the config file, the preset and finally any
// flags set on the command line.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configFile != "" {
		loaded, err := config.Load(opts.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts.preset != "" {
		if err := cfg.ApplyPreset(opts.preset); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host = opts.host
	}
	if flags.Changed("backend") {
		cfg.Backend = opts.backend
	}
	if flags.Changed("draw-in-timer") {
		cfg.DrawInTimer = opts.drawInTimer
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}

	// the terminal is the display, so logs go to a file and the timer draws
	if cfg.Host == "term" {
		if cfg.Logging.File == "" {
			cfg.Logging.File = termLogFile
		}
		if !flags.Changed("draw-in-timer") {
			cfg.DrawInTimer = true
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newHost(name string, log *zap.Logger) (host.Host, error) {
	switch name {
	case "raylib":
		return rlhost.New(log), nil
	case "term":
		return termhost.New(log), nil
	default:
		return nil, fmt.Errorf("%w: %q", host.ErrUnknownHost, name)
	}
}

func runApp(ctx context.Context, cfg *config.Config) error {
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	backend, err := compute.Select(cfg.Backend, cfg.Sim.Workers)
	if err != nil {
		return err
	}
	if cfg.Backend == "auto" && !isGPU(backend) {
		log.Info("no GPU available, stepping on the CPU")
	}
	log.Info("compute backend", zap.String("name", backend.Name()))

	h, err := newHost(cfg.Host, log)
	if err != nil {
		return err
	}

	w := world.New(cfg.Sim, backend, log.Named("world"))
	return app.New(*cfg, h, w, log).Run(ctx)
}

func isGPU(b compute.Backend) bool {
	_, ok := b.(*compute.CUDABackend)
	return ok
}
