package brightness

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

const (
	// DefaultXrandr is the display server utility binary.
	DefaultXrandr = "xrandr"

	// DefaultFallbackOutput is used when no connected output is found.
	DefaultFallbackOutput = "HDMI-A-0"
)

// Output is a connected display server output.
type Output struct {
	Name    string `json:"name"`
	Primary bool   `json:"primary"`
}

// ParseOutputs returns the connected outputs listed in xrandr --query
// output, in listing order.
func ParseOutputs(data []byte) []Output {
	var outs []Output
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if !isHeader(line) {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 2 || f[1] != "connected" {
			continue
		}
		outs = append(outs, Output{
			Name:    f[0],
			Primary: slices.Contains(f[2:], "primary"),
		})
	}
	return outs
}

// SelectOutput returns the first primary output, else the first output,
// else fallback.
func SelectOutput(outs []Output, fallback string) string {
	for _, o := range outs {
		if o.Primary {
			return o.Name
		}
	}
	if len(outs) != 0 {
		return outs[0].Name
	}
	return fallback
}

// ResolveOutput queries the display server for the output to drive.
// A failed query is logged and resolves to fallback.
func ResolveOutput(ctx context.Context, r Runner, bin, fallback string, log *slog.Logger) string {
	out, err := r.Output(ctx, bin, "--query")
	if err != nil {
		log.Warn("failed to query outputs", slog.String("binary", bin), slog.Any("error", err))
		return fallback
	}
	return SelectOutput(ParseOutputs(out), fallback)
}

// isHeader returns whether line starts an xrandr block: screen and output
// lines are not indented, modes and properties are.
func isHeader(line string) bool {
	return line != "" && line[0] != ' ' && line[0] != '\t'
}

var (
	errOutputNotFound = errors.New("output not listed")
	errNoBrightness   = errors.New("no Brightness field")
)

// parseVerboseBrightness returns the Brightness property of output in
// xrandr --verbose output.
func parseVerboseBrightness(data []byte, output string) (float64, error) {
	found := false
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if isHeader(line) {
			if found {
				break
			}
			f := strings.Fields(line)
			found = len(f) != 0 && f[0] == output
			continue
		}
		if !found {
			continue
		}
		val, ok := strings.CutPrefix(strings.TrimSpace(line), "Brightness:")
		if !ok {
			continue
		}
		return strconv.ParseFloat(strings.TrimSpace(val), 64)
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("%s: %w", output, errOutputNotFound)
	}
	return 0, fmt.Errorf("%s: %w", output, errNoBrightness)
}

func (b DisplayServerUtility) read(ctx context.Context, r Runner) (float64, error) {
	out, err := r.Output(ctx, b.Binary, "--verbose")
	if err != nil {
		return 0, err
	}
	return parseVerboseBrightness(out, b.Output)
}

func (b DisplayServerUtility) write(ctx context.Context, r Runner, v float64) error {
	return r.Run(ctx, b.Binary, "--output", b.Output, "--brightness", strconv.FormatFloat(v, 'f', -1, 64))
}
