package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hoppxi/lumen/internal/manager"
	"github.com/hoppxi/lumen/pkg/brightness"
)

var Version = "0.1.0"

var (
	configPath string
	logLevel   string
	noDaemon   bool

	cfg      *manager.ConfigManager
	settings manager.Settings
	logger   = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:           "lumen",
	Version:       Version,
	Short:         "Lumen CLI for display brightness",
	Long:          "Lumen reads and sets display brightness through a backlight device, xbacklight or xrandr",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = manager.LoadConfig(configPath)
		if err != nil {
			return err
		}
		settings, err = cfg.Settings()
		if err != nil {
			return err
		}
		if logLevel != "" {
			settings.LogLevel = logLevel
		}
		level, err := settings.Level()
		if err != nil {
			return err
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
		return nil
	},
}

// Main runs the CLI and returns the process exit code.
func Main() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

func Execute() {
	os.Exit(Main())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/lumen/lumen.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&noDaemon, "no-daemon", false, "do not use a running daemon")

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(killCmd)
	rootCmd.AddCommand(reloadCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(hoverCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(outputsCmd)
}

// daemonRunning reports whether brightness requests should go to a
// running daemon.
func daemonRunning() bool {
	if noDaemon {
		return false
	}
	conn, err := manager.ConnectIPC()
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

func options() (brightness.Options, error) {
	return settings.Options(logger)
}

// newController returns a controller for the detected backend without
// reading the current level.
func newController(ctx context.Context) (*brightness.Controller, error) {
	opts, err := options()
	if err != nil {
		return nil, err
	}
	return brightness.NewWithBackend(brightness.Detect(ctx, opts), opts), nil
}

func formatLevel(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
