package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hoppxi/lumen/internal/manager"
	"github.com/hoppxi/lumen/pkg/hover"
)

var hoverCmd = &cobra.Command{
	Use:   "hover <enter|leave> <trigger|control>",
	Short: "Report pointer movement over the panel icon or the slider",
	Long: `Report pointer movement to the daemon and print the resulting
visibility state. Bind these to the eventbox handlers of the panel icon
(trigger) and the slider (control).`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"enter", "leave"},
	RunE: func(cmd *cobra.Command, args []string) error {
		event := strings.ToUpper(args[0])
		if event != "ENTER" && event != "LEAVE" {
			return fmt.Errorf("unknown event %q", args[0])
		}
		if _, ok := hover.ParseTarget(args[1]); !ok {
			return fmt.Errorf("unknown target %q", args[1])
		}

		state, err := manager.Request(event + " " + args[1])
		if err != nil {
			return err
		}
		fmt.Println(state)
		return nil
	},
}
