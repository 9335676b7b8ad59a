package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hoppxi/lumen/internal/manager"
)

var killCmd = &cobra.Command{
	Use:   "kill",
	Short: "Stop the brightness daemon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		response, err := manager.Request("STOP")
		if err != nil {
			return fmt.Errorf("%w (is the daemon running?)", err)
		}
		fmt.Println(response)
		return nil
	},
}
