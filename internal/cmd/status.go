package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hoppxi/lumen/internal/manager"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the daemon is running",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		response, err := manager.Request("STATUS")
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}
		fmt.Println(response)

		info, err := manager.Request("INFO")
		if err != nil {
			return err
		}
		fmt.Println(info)
		return nil
	},
}
