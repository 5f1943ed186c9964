package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/chenyuan/blogsite/internal/config"
	"git.home.luguber.info/chenyuan/blogsite/internal/hugo"
	"git.home.luguber.info/chenyuan/blogsite/internal/logfields"
	"git.home.luguber.info/chenyuan/blogsite/internal/metrics"
	"git.home.luguber.info/chenyuan/blogsite/internal/preview"
)

// ServeCmd builds the site, serves it and rebuilds on change.
type ServeCmd struct {
	Addr     string        `help:"Listen address" default:":1313"`
	Debounce time.Duration `help:"Quiet period after the last change before rebuilding" default:"300ms"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, dir, err := root.LoadConfig(g)
	if err != nil {
		return err
	}

	opts := preview.Options{
		Addr:       s.Addr,
		ConfigPath: root.ConfigPath(),
		SourceDir:  dir,
		Debounce:   s.Debounce,
		Recorder:   metrics.NewPrometheusRecorder(nil),
	}

	store, err := openHistory(cfg, dir)
	if err != nil {
		slog.Warn("Build history unavailable", logfields.Error(err))
	}
	if store != nil {
		defer func() { _ = store.Close() }()
		opts.Observers = append(opts.Observers, hugo.NewHistoryObserver(store, nil))
	}

	load := func() (*config.Config, error) {
		c, _, err := resolveConfig(root.Config)
		return c, err
	}
	return preview.New(load, opts).Run(ctx)
}
