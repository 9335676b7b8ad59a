package brightness

import (
	"context"
	"log/slog"
)

// Options configure detection and the controller.
type Options struct {
	// Backend forces a backend kind. Empty probes in priority order.
	Backend Kind

	// BacklightDirs are searched for a sysfs device.
	// Nil uses DefaultBacklightDirs.
	BacklightDirs []string
	// Xbacklight and Xrandr are the external binaries.
	Xbacklight string
	Xrandr     string
	// FallbackOutput is driven when xrandr lists no connected output.
	FallbackOutput string

	// Logind allows read-only sysfs devices, writing them through
	// logind instead.
	Logind bool
	// Bus is the logind client. When nil and Logind is set, a system
	// bus connection is made on first use.
	Bus Setter

	Runner Runner
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.BacklightDirs == nil {
		o.BacklightDirs = DefaultBacklightDirs
	}
	if o.Xbacklight == "" {
		o.Xbacklight = DefaultXbacklight
	}
	if o.Xrandr == "" {
		o.Xrandr = DefaultXrandr
	}
	if o.FallbackOutput == "" {
		o.FallbackOutput = DefaultFallbackOutput
	}
	if o.Runner == nil {
		o.Runner = ExecRunner{}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Detect selects the backend to use. It probes, in order, a sysfs
// backlight device, the xbacklight tool and finally falls back to xrandr,
// which is always selected even when no display server is reachable.
func Detect(ctx context.Context, opts Options) Backend {
	opts = opts.withDefaults()
	log := opts.Logger

	switch opts.Backend {
	case KindXbacklight:
		return ExternalTool{Binary: opts.Xbacklight}
	case KindXrandr:
		return xrandrBackend(ctx, opts)
	}

	b, err := findSysfs(opts.BacklightDirs, opts.Logind, log)
	if err == nil {
		return b
	}
	if opts.Backend == KindSysfs {
		log.Warn("sysfs backend requested but unavailable", slog.Any("error", err))
	} else {
		log.Debug("no sysfs backend", slog.Any("error", err))
	}

	if probeTool(ctx, opts.Runner, opts.Xbacklight) {
		return ExternalTool{Binary: opts.Xbacklight}
	}
	log.Debug("no xbacklight backend", slog.String("binary", opts.Xbacklight))

	return xrandrBackend(ctx, opts)
}

func xrandrBackend(ctx context.Context, opts Options) DisplayServerUtility {
	return DisplayServerUtility{
		Binary: opts.Xrandr,
		Output: ResolveOutput(ctx, opts.Runner, opts.Xrandr, opts.FallbackOutput, opts.Logger),
	}
}
