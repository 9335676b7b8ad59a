package cmd

import (
	"bufio"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/hoppxi/lumen/internal/manager"
)

func TestGenerateConfig(t *testing.T) {
	defaults, err := manager.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	settings, err = defaults.Settings()
	if err != nil {
		t.Fatal(err)
	}

	want := settings
	want.Backend = "sysfs"
	want.Logind = false
	want.HideDelay = 250 * time.Millisecond
	want.Eww.Enabled = true
	want.Eww.LevelVar = "LEVEL"

	// Backend, logind, fallback output, hide delay, eww enabled,
	// level variable and visibility variable.
	answers := "sysfs\nn\n\n250ms\ny\nLEVEL\n\n"
	path := filepath.Join(t.TempDir(), "lumen.yaml")
	err = generateConfig(bufio.NewReader(strings.NewReader(answers)), path)
	if err != nil {
		t.Fatalf("unexpected error generating config: %v", err)
	}

	c, err := manager.LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error loading written config: %v", err)
	}
	got, err := c.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if !cmp.Equal(want, got) {
		t.Errorf("unexpected settings:\n--- want:\n+++ got:\n%s", cmp.Diff(want, got))
	}
}

func TestGenerateConfigBadDelay(t *testing.T) {
	settings = manager.Settings{HideDelay: 100 * time.Millisecond}
	answers := "\n\n\nsoon\n"
	err := generateConfig(bufio.NewReader(strings.NewReader(answers)), filepath.Join(t.TempDir(), "lumen.yaml"))
	if err == nil {
		t.Error("expected error for invalid hide delay")
	}
}

func TestExtractEmbed(t *testing.T) {
	dir := t.TempDir()
	err := extractEmbed(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, err := manager.LoadConfig(filepath.Join(dir, "lumen.yaml"))
	if err != nil {
		t.Fatalf("unexpected error loading default config: %v", err)
	}
	s, err := c.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if s.HideDelay != 100*time.Millisecond {
		t.Errorf("unexpected hide delay: got:%v want:100ms", s.HideDelay)
	}
}
