package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hoppxi/lumen/internal/manager"
	"github.com/hoppxi/lumen/pkg/displayinfo"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current brightness level (0-1)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		if daemonRunning() {
			req := "GET"
			if asJSON {
				req = "INFO"
			}
			resp, err := manager.Request(req)
			if err != nil {
				return err
			}
			fmt.Println(resp)
			return nil
		}

		ctrl, err := newController(cmd.Context())
		if err != nil {
			return err
		}
		defer ctrl.Close()

		level, err := ctrl.Refresh(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON {
			data, err := displayinfo.GetDisplayInfoJSON(ctrl, nil)
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}
		fmt.Println(formatLevel(level))
		return nil
	},
}

func init() {
	getCmd.Flags().Bool("json", false, "print backend and level as JSON")
}
