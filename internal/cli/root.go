// Package cli implements the command-line interface for puzzled.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/puzzled"
	"github.com/SeamusWaldron/puzzled/internal/config"
	"github.com/SeamusWaldron/puzzled/internal/render"
)

const version = "0.2.0"

var (
	// Global flags
	configPath string
	verbose    bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "puzzled",
	Short: "Twisty puzzle simulator",
	Long: `puzzled - A simulator for face-turning twisty puzzles driven by a compact
move notation with sequences, commutators and conjugates.

Play interactively with the keyboard, the mouse or a GoCube smart cube,
or use the batch commands to apply and analyze move sequences.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: $PUZZLED_CONFIG or ~/.puzzled/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// newLogger returns the text logger used by every command.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// setup loads the configuration and creates a session from it.
func setup(cmd *cobra.Command) (*config.Config, *puzzled.Session, *slog.Logger, error) {
	logger := newLogger(cmd.ErrOrStderr())
	slog.SetDefault(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	opts, err := cfg.Options(logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, puzzled.New(opts...), logger, nil
}

// newRenderer creates a renderer writing styles for w.
func newRenderer(cfg *config.Config, topo *puzzled.Topology, w io.Writer, logger *slog.Logger) *render.Renderer {
	return render.New(topo, render.NewPalette(cfg.FaceColors()), lipgloss.NewRenderer(w), logger)
}
