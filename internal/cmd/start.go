package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hoppxi/lumen/internal/manager"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the brightness daemon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if conn, err := manager.ConnectIPC(); err == nil {
			conn.Close()
			fmt.Println("Daemon already running.")
			return nil
		}

		m, err := manager.New(cmd.Context(), cfg, logger)
		if errors.Is(err, manager.ErrRunning) {
			fmt.Println("Daemon already running.")
			return nil
		}
		if err != nil {
			return err
		}
		if err := m.Start(); err != nil {
			m.Stop()
			return err
		}

		fmt.Println("Daemon started successfully. Press Ctrl+C to stop.")

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		select {
		case <-sigChan:
			fmt.Println("\nReceived shutdown signal, stopping...")
			m.Stop()
		case <-m.Done():
		}
		return nil
	},
}
