package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ncruces/zenity"
	"github.com/spf13/cobra"

	"github.com/hoppxi/lumen/internal/manager"
)

var setCmd = &cobra.Command{
	Use:   "set <level>",
	Short: "Set the brightness level",
	Long: `Set the brightness level.

The level may be a percentage (40%), a relative percentage (+5%, -5%),
a normalized level (0.4), or an expression over current (0-1) and
percent (0-100) such as "current*0.8". Use -- before negative levels:

  lumen set -- -10%`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prompt, _ := cmd.Flags().GetBool("prompt")
		ctx := cmd.Context()

		var expr string
		switch {
		case len(args) == 1:
			expr = args[0]
		case prompt:
			current, err := currentLevel(ctx)
			if err != nil {
				return err
			}
			expr, err = zenity.Entry("Brightness level",
				zenity.Title("lumen"),
				zenity.EntryText(fmt.Sprintf("%.0f%%", current*100)),
			)
			if errors.Is(err, zenity.ErrCanceled) {
				return nil
			}
			if err != nil {
				return err
			}
		default:
			return errors.New("requires a level argument or --prompt")
		}

		if daemonRunning() {
			resp, err := manager.Request("SET " + expr)
			if err != nil {
				return err
			}
			fmt.Println(resp)
			return nil
		}

		ctrl, err := newController(ctx)
		if err != nil {
			return err
		}
		defer ctrl.Close()

		// Relative levels need the current level; a failed read is
		// logged and the level taken as full.
		ctrl.Refresh(ctx)
		level, err := ctrl.Apply(ctx, expr)
		if err != nil {
			return err
		}
		fmt.Println(formatLevel(level))
		return nil
	},
}

func currentLevel(ctx context.Context) (float64, error) {
	if daemonRunning() {
		resp, err := manager.Request("GET")
		if err != nil {
			return 0, err
		}
		return strconv.ParseFloat(resp, 64)
	}
	ctrl, err := newController(ctx)
	if err != nil {
		return 0, err
	}
	defer ctrl.Close()
	return ctrl.Refresh(ctx)
}

func init() {
	setCmd.Flags().Bool("prompt", false, "ask for the level in a dialog")
}
