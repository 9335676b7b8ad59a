package brightness

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"sync"
)

// ErrClosed is returned by operations on a closed Controller.
var ErrClosed = errors.New("brightness controller closed")

// Controller reads and writes display brightness through a single backend
// chosen at construction. Levels are normalized to [0, 1].
//
// Operations are serialized; each blocks for the duration of the file
// or subprocess I/O it performs.
type Controller struct {
	mu      sync.Mutex
	backend Backend
	current float64
	closed  bool

	runner Runner
	logind bool
	bus    Setter
	ownBus *Logind

	log *slog.Logger
}

// New detects the backend and reads the current level. A failed read is
// logged and leaves the level at full brightness.
func New(ctx context.Context, opts Options) *Controller {
	opts = opts.withDefaults()
	c := NewWithBackend(Detect(ctx, opts), opts)
	c.log.Info("brightness backend selected", slog.String("backend", c.backend.String()))
	c.Refresh(ctx)
	return c
}

// NewWithBackend returns a controller for b without probing or reading.
func NewWithBackend(b Backend, opts Options) *Controller {
	opts = opts.withDefaults()
	return &Controller{
		backend: b,
		current: 1,
		runner:  opts.Runner,
		logind:  opts.Logind,
		bus:     opts.Bus,
		log:     opts.Logger.With(slog.String("component", "brightness")),
	}
}

// Backend returns the backend selected at construction.
func (c *Controller) Backend() Backend {
	return c.backend
}

// Brightness returns the last known level.
func (c *Controller) Brightness() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Refresh reads the current level from the backend. On failure the error
// is logged and returned as a *ReadError, and the last known level is
// returned unchanged.
func (c *Controller) Refresh(ctx context.Context) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.current, ErrClosed
	}

	v, err := c.read(ctx)
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = fmt.Errorf("invalid level: %v", v)
	}
	if err != nil {
		c.log.Warn("failed to get current brightness", slog.String("backend", c.backend.String()), slog.Any("error", err))
		return c.current, &ReadError{Kind: c.backend.Kind(), Err: err}
	}
	c.current = Clamp(v)
	return c.current, nil
}

func (c *Controller) read(ctx context.Context) (float64, error) {
	switch b := c.backend.(type) {
	case Sysfs:
		return b.read()
	case ExternalTool:
		return b.read(ctx, c.runner)
	case DisplayServerUtility:
		return b.read(ctx, c.runner)
	default:
		panic(fmt.Sprintf("unknown backend type: %T", b))
	}
}

// SetBrightness applies the level v, clamped to [0, 1]. The last known
// level is updated to v whether or not the backend accepted it; a backend
// failure is logged and returned as a *WriteError.
func (c *Controller) SetBrightness(ctx context.Context, v float64) error {
	if math.IsNaN(v) {
		return fmt.Errorf("invalid brightness level: %v", v)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return c.set(ctx, Clamp(v))
}

// Apply sets the level described by expr, interpreted by ParseLevel
// against the last known level, and returns the requested level.
func (c *Controller) Apply(ctx context.Context, expr string) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.current, ErrClosed
	}
	v, err := ParseLevel(expr, c.current)
	if err != nil {
		return c.current, err
	}
	return v, c.set(ctx, v)
}

func (c *Controller) set(ctx context.Context, v float64) error {
	err := c.write(ctx, v)
	c.current = v
	if err != nil {
		c.log.Warn("failed to set brightness", slog.String("backend", c.backend.String()), slog.Float64("level", v), slog.Any("error", err))
		return &WriteError{Kind: c.backend.Kind(), Level: v, Err: err}
	}
	c.log.Debug("brightness set", slog.String("backend", c.backend.String()), slog.Float64("level", v))
	return nil
}

func (c *Controller) write(ctx context.Context, v float64) error {
	switch b := c.backend.(type) {
	case Sysfs:
		raw, err := b.target(v)
		if err != nil {
			return err
		}
		err = b.write(raw)
		if err != nil && c.logind && errors.Is(err, fs.ErrPermission) {
			return c.writeLogind(b, raw)
		}
		return err
	case ExternalTool:
		return b.write(ctx, c.runner, v)
	case DisplayServerUtility:
		return b.write(ctx, c.runner, v)
	default:
		panic(fmt.Sprintf("unknown backend type: %T", b))
	}
}

func (c *Controller) writeLogind(b Sysfs, raw int) error {
	if c.bus == nil {
		l, err := DialLogind()
		if err != nil {
			return err
		}
		c.bus, c.ownBus = l, l
	}
	if raw < 0 {
		raw = 0
	}
	err := c.bus.SetBrightness(b.Subsystem, b.Name, uint32(raw))
	if err != nil {
		return fmt.Errorf("logind: %w", err)
	}
	return nil
}

// Close releases the controller. Later operations return ErrClosed.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.ownBus != nil {
		return c.ownBus.Close()
	}
	return nil
}
