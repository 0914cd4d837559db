package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/gwillem/quasiwalk/pkg/config"
	"github.com/gwillem/quasiwalk/pkg/gait"
	"github.com/gwillem/quasiwalk/pkg/sim"
	"github.com/gwillem/quasiwalk/pkg/viewer"
	"github.com/gwillem/quasiwalk/pkg/walk"
)

// newHumanoid builds the simulator. The ankle geometry is not configurable.
func newHumanoid(cfg *config.Config) *sim.Humanoid {
	opts := sim.DefaultOptions()
	opts.Name = cfg.Sim.Robot
	opts.ComHeight = cfg.Sim.ComHeight
	opts.ComGain = cfg.Sim.ComGain
	return sim.NewHumanoid(opts)
}

func sessionConfig(cfg *config.Config) walk.Config {
	return walk.Config{
		Gait: gait.Options{
			Timing:       cfg.Gait.Timing,
			FootAltitude: cfg.Gait.FootAltitude,
			AnkleGain:    cfg.Gait.AnkleGain,
		},
		TimeStep: cfg.Walk.TimeStep,
		Steps:    cfg.Walk.Steps,
		Hz:       cfg.Walk.Hz,
		Element:  cfg.Viewer.Element,
		Width:    cfg.Viewer.Width,
	}
}

// setupLogging configures logrus. When a TUI owns the terminal, logs go to
// the configured file or nowhere. The returned closer must be closed on exit.
func setupLogging(cfg config.LogConfig, verbose, tui bool) (io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logrus.SetOutput(f)
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return f, nil
	}

	if tui {
		logrus.SetOutput(io.Discard)
	} else {
		logrus.SetOutput(os.Stderr)
	}
	return io.NopCloser(nil), nil
}

// openViewer connects the configured visualization outputs. A viewer which
// cannot be reached is skipped for the whole run; it is not an error.
func openViewer(ctx context.Context, cfg config.ViewerConfig) (viewer.Client, error) {
	var clients viewer.Multi

	if cfg.URL != "" {
		c, err := viewer.Dial(ctx, viewer.DialOptions{
			URL:       cfg.URL,
			Namespace: cfg.Namespace,
		})
		if err != nil {
			logrus.WithError(err).WithField("url", cfg.URL).Warn("viewer unavailable, visualization disabled")
		} else {
			clients = append(clients, c)
		}
	}

	if cfg.Record != "" {
		f, err := os.Create(cfg.Record)
		if err != nil {
			clients.Close()
			return nil, fmt.Errorf("create recording: %w", err)
		}
		clients = append(clients, viewer.NewRecorder(f))
	}

	switch len(clients) {
	case 0:
		return nil, nil
	case 1:
		return clients[0], nil
	default:
		return clients, nil
	}
}

// drainLogs passes every session log line to handle until done is closed.
func drainLogs(logs <-chan string, done <-chan struct{}, handle func(string)) {
	for {
		select {
		case msg := <-logs:
			handle(msg)
		case <-done:
			return
		}
	}
}
