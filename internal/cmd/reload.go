package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hoppxi/lumen/internal/manager"
)

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Restart the daemon, detecting the backend again",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		response, err := manager.Request("STOP")
		if err != nil {
			return fmt.Errorf("%w (is the daemon running?)", err)
		}
		fmt.Println(response)

		// Wait for the old daemon to release its socket.
		for range 20 {
			conn, err := manager.ConnectIPC()
			if err != nil {
				break
			}
			conn.Close()
			time.Sleep(50 * time.Millisecond)
		}

		return startCmd.RunE(cmd, args)
	},
}
