package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pkt.systems/pslog"

	"github.com/lixenwraith/tilde/config"
	"github.com/lixenwraith/tilde/logging"
	"github.com/lixenwraith/tilde/session"
	"github.com/lixenwraith/tilde/terminal"
)

// app binds commands to the terminal they drive
type app struct {
	in, out *os.File
}

// setup loads configuration and attaches the file logger to the command context.
// The returned release closes the log file.
func (a *app) setup(cmd *cobra.Command) (context.Context, config.Config, func(), error) {
	path, err := cmd.Flags().GetString(config.FlagConfig)
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, config.Config{}, nil, err
	}

	logger, closer, err := logging.Open(cfg.Log.File, cfg.Log.Level, cfg.Log.MaxSize)
	if err != nil {
		return nil, config.Config{}, nil, fmt.Errorf("open log: %w", err)
	}
	ctx := pslog.ContextWithLogger(cmd.Context(), logger)
	release := func() { _ = closer.Close() }
	return ctx, cfg, release, nil
}

func (a *app) backend(cfg config.Config) terminal.Backend {
	return terminal.NewBackend(a.in, a.out, cfg.Terminal.ReadTimeout)
}

func (a *app) runSession(cmd *cobra.Command, _ []string) error {
	ctx, cfg, release, err := a.setup(cmd)
	if err != nil {
		return err
	}
	defer release()

	opts := session.Options{
		Banner:        cfg.Render.Banner,
		MaxFrameBytes: cfg.Render.MaxFrameBytes,
		ForceFallback: cfg.Terminal.ForceFallback,
	}
	if cfg.Terminal.WatchResize {
		w := terminal.WatchResize()
		defer w.Stop()
		opts.Resize = w
	}

	err = session.Run(ctx, a.backend(cfg), opts)
	if err != nil {
		pslog.Ctx(ctx).Error("session exited", "err", err)
	}
	return err
}
