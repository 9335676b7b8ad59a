package brightness

import (
	"context"
	"math"
	"strconv"
	"strings"
)

// DefaultXbacklight is the xbacklight compatible binary probed when no
// backlight device is usable.
const DefaultXbacklight = "xbacklight"

func probeTool(ctx context.Context, r Runner, bin string) bool {
	_, err := r.Output(ctx, bin, "-get")
	return err == nil
}

func (b ExternalTool) read(ctx context.Context, r Runner) (float64, error) {
	out, err := r.Output(ctx, b.Binary, "-get")
	if err != nil {
		return 0, err
	}
	pct, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, err
	}
	return pct / 100, nil
}

func (b ExternalTool) write(ctx context.Context, r Runner, v float64) error {
	pct := int(math.Round(v * 100))
	return r.Run(ctx, b.Binary, "-set", strconv.Itoa(pct))
}
