package cmd

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hoppxi/lumen/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Write a default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(cmd.InOrStdin())
		path := cfg.Path()
		force, _ := cmd.Flags().GetBool("force")
		interactive, _ := cmd.Flags().GetBool("interactive")

		if _, err := os.Stat(path); err == nil && !force {
			fmt.Printf("Warning: config already exists at %s\n", path)
			if !confirm(reader, "Overwrite it?") {
				return nil
			}
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}

		var err error
		if interactive {
			err = generateConfig(reader, path)
		} else {
			err = extractEmbed(filepath.Dir(path))
		}
		if err != nil {
			return err
		}
		fmt.Printf("Config written to %s\n", path)
		return nil
	},
}

func init() {
	setupCmd.Flags().Bool("interactive", false, "prompt for each setting")
	setupCmd.Flags().Bool("force", false, "overwrite an existing config without asking")
}

func generateConfig(reader *bufio.Reader, path string) error {
	s := settings
	s.Backend = prompt(reader, "Backend (auto, sysfs, xbacklight, xrandr)", s.Backend)
	s.Logind = prompt(reader, "Write read-only devices through logind (y/n)", yesNo(s.Logind)) == "y"
	s.FallbackOutput = prompt(reader, "Fallback xrandr output", s.FallbackOutput)

	delay, err := time.ParseDuration(prompt(reader, "Hide delay", s.HideDelay.String()))
	if err != nil {
		return fmt.Errorf("invalid hide delay: %w", err)
	}
	s.HideDelay = delay

	s.Eww.Enabled = prompt(reader, "Publish state to eww (y/n)", yesNo(s.Eww.Enabled)) == "y"
	if s.Eww.Enabled {
		s.Eww.LevelVar = prompt(reader, "eww level variable", s.Eww.LevelVar)
		s.Eww.VisibleVar = prompt(reader, "eww visibility variable", s.Eww.VisibleVar)
	}

	d, err := yaml.Marshal(&s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, d, 0o644)
}

func yesNo(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

func prompt(r *bufio.Reader, label, defaultValue string) string {
	fmt.Printf("%s [%s]: ", label, defaultValue)
	input, _ := r.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultValue
	}
	return input
}

func confirm(r *bufio.Reader, message string) bool {
	fmt.Printf("%s (y/N): ", message)
	input, _ := r.ReadString('\n')
	input = strings.ToLower(strings.TrimSpace(input))
	return input == "y" || input == "yes"
}

func extractEmbed(targetDir string) error {
	embeds := config.ConfigFS()
	return fs.WalkDir(embeds, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == "." {
			return err
		}

		targetPath := filepath.Join(targetDir, path)
		if d.IsDir() {
			return os.MkdirAll(targetPath, 0o755)
		}

		content, err := embeds.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(targetPath, content, 0o644)
	})
}
