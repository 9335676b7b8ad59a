package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hoppxi/lumen/pkg/brightness"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Print the backend that would be used",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options()
		if err != nil {
			return err
		}

		b := brightness.Detect(cmd.Context(), opts)
		fmt.Printf("backend: %s\n", b.Kind())
		switch b := b.(type) {
		case brightness.Sysfs:
			fmt.Printf("device: %s\n", b.Name)
			fmt.Printf("path: %s\n", b.DevicePath)
			if b.MaxPath != "" {
				fmt.Printf("max: %s\n", b.MaxPath)
			}
		case brightness.ExternalTool:
			fmt.Printf("binary: %s\n", b.Binary)
		case brightness.DisplayServerUtility:
			fmt.Printf("binary: %s\n", b.Binary)
			fmt.Printf("output: %s\n", b.Output)
		}
		return nil
	},
}

var outputsCmd = &cobra.Command{
	Use:   "outputs",
	Short: "List connected display server outputs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options()
		if err != nil {
			return err
		}
		bin := opts.Xrandr
		if bin == "" {
			bin = brightness.DefaultXrandr
		}

		out, err := brightness.ExecRunner{}.Output(cmd.Context(), bin, "--query")
		if err != nil {
			return fmt.Errorf("failed to query outputs: %w", err)
		}
		outs := brightness.ParseOutputs(out)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			data, err := json.MarshalIndent(outs, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		selected := brightness.SelectOutput(outs, opts.FallbackOutput)
		for _, o := range outs {
			mark := " "
			if o.Name == selected {
				mark = "*"
			}
			if o.Primary {
				fmt.Printf("%s %s primary\n", mark, o.Name)
			} else {
				fmt.Printf("%s %s\n", mark, o.Name)
			}
		}
		if len(outs) == 0 {
			fmt.Printf("* %s (fallback)\n", selected)
		}
		return nil
	},
}

func init() {
	outputsCmd.Flags().Bool("json", false, "print outputs as JSON")
}
