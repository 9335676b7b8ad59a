package watchers

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hoppxi/lumen/pkg/displayinfo"
)

type recordingRunner struct {
	calls []string
}

func (r *recordingRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, strings.Join(append([]string{name}, args...), " "))
	return nil, nil
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) error {
	_, err := r.Output(ctx, name, args...)
	return err
}

func TestPublisher(t *testing.T) {
	r := &recordingRunner{}
	p := NewPublisher(EwwConfig{}, r, slog.New(slog.DiscardHandler))

	info := &displayinfo.DisplayInfo{Level: 40, Brightness: 0.4, Backend: "xrandr", Output: "eDP-1"}
	p.Level(info)
	p.Visible(true)
	if len(r.calls) != 0 {
		t.Errorf("disabled publisher ran commands: %q", r.calls)
	}

	p.Configure(EwwConfig{
		Enabled:    true,
		Binary:     "eww",
		LevelVar:   "BRIGHTNESS_INFO",
		VisibleVar: "BRIGHTNESS_VISIBLE",
	})
	p.Level(info)
	p.Visible(true)
	p.Visible(false)

	want := []string{
		`eww update BRIGHTNESS_INFO={"level":40,"brightness":0.4,"backend":"xrandr","output":"eDP-1"}`,
		"eww update BRIGHTNESS_VISIBLE=true",
		"eww update BRIGHTNESS_VISIBLE=false",
	}
	if !cmp.Equal(want, r.calls) {
		t.Errorf("unexpected commands:\n--- want:\n+++ got:\n%s", cmp.Diff(want, r.calls))
	}
}
