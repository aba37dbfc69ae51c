package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/particlepanic/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

func newConfigCmd(opts *options) *cobra.Command {
	var writePath string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if writePath != "" {
				if err := config.Save(writePath, cfg); err != nil {
					return fmt.Errorf("write config %s: %w", writePath, err)
				}
				fmt.Fprintln(out, noteStyle.Render("# wrote "+writePath))
				return nil
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, headerStyle.Render("# effective configuration"))
			fmt.Fprintln(out, noteStyle.Render("# presets: "+joinPresets()))
			_, err = out.Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&writePath, "write", "", "save the effective configuration to this path instead of printing it")
	return cmd
}

func joinPresets() string {
	return strings.Join(config.ListPresets(), ", ")
}
