package watchers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hoppxi/lumen/pkg/brightness"
	"github.com/hoppxi/lumen/pkg/displayinfo"
)

// EwwConfig configures publishing of brightness state to EWW variables.
type EwwConfig struct {
	Enabled    bool
	Binary     string
	LevelVar   string
	VisibleVar string
}

// Publisher pushes brightness state to EWW with eww update.
type Publisher struct {
	mu     sync.Mutex
	cfg    EwwConfig
	runner brightness.Runner
	log    *slog.Logger
}

func NewPublisher(cfg EwwConfig, runner brightness.Runner, log *slog.Logger) *Publisher {
	if runner == nil {
		runner = brightness.ExecRunner{}
	}
	return &Publisher{cfg: cfg, runner: runner, log: log.With(slog.String("component", "eww"))}
}

// Configure replaces the publisher configuration.
func (p *Publisher) Configure(cfg EwwConfig) {
	p.mu.Lock()
	p.cfg = cfg
	p.mu.Unlock()
}

// Level publishes info as JSON to the level variable.
func (p *Publisher) Level(info *displayinfo.DisplayInfo) {
	cfg := p.config()
	if !cfg.Enabled || cfg.LevelVar == "" {
		return
	}
	jsonData, err := json.Marshal(info)
	if err != nil {
		p.log.Warn("failed to encode display info", slog.Any("error", err))
		return
	}
	p.update(cfg, cfg.LevelVar+"="+string(jsonData))
}

// Visible publishes the control visibility to the visible variable.
func (p *Publisher) Visible(visible bool) {
	cfg := p.config()
	if !cfg.Enabled || cfg.VisibleVar == "" {
		return
	}
	p.update(cfg, fmt.Sprintf("%s=%v", cfg.VisibleVar, visible))
}

func (p *Publisher) config() EwwConfig {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

func (p *Publisher) update(cfg EwwConfig, assignment string) {
	err := p.runner.Run(context.Background(), cfg.Binary, "update", assignment)
	if err != nil {
		p.log.Debug("eww update failed", slog.String("assignment", assignment), slog.Any("error", err))
	}
}
