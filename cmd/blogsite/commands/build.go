package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/chenyuan/blogsite/internal/eventstore"
	"git.home.luguber.info/chenyuan/blogsite/internal/hugo"
	"git.home.luguber.info/chenyuan/blogsite/internal/logfields"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output        string `short:"o" help:"Output directory for the Hugo project (overrides output.directory)"`
	RunHugo       string `name:"run-hugo" help:"Run hugo after generating (auto|always|never)" enum:"auto,always,never" default:"auto"`
	SkipUnchanged bool   `name:"skip-unchanged" help:"Skip when configuration, sources and commit match the last successful build"`
	Clean         bool   `help:"Discard Hugo's resource cache before building"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, dir, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	if b.Output != "" || b.Clean {
		cfg = cfg.Clone()
		if b.Output != "" {
			cfg.Output.Directory = b.Output
		}
		cfg.Output.Clean = cfg.Output.Clean || b.Clean
	}

	gen := hugo.NewGenerator(cfg, dir).SetRunMode(hugo.RunMode(b.RunHugo))

	store, err := openHistory(cfg, dir)
	if err != nil {
		slog.Warn("Build history unavailable", logfields.Error(err))
	}
	if store != nil {
		defer func() { _ = store.Close() }()
		projection := eventstore.NewBuildHistoryProjection(store, 50)
		if err := projection.Rebuild(ctx); err != nil {
			slog.Warn("Failed to replay build history", logfields.Error(err))
		}
		gen.AddObserver(hugo.NewHistoryObserver(store, projection.Apply))
		if b.SkipUnchanged {
			if last, ok := projection.LastSuccessful(); ok {
				gen.SkipIfUnchanged(&last)
			}
		}
	} else if b.SkipUnchanged {
		slog.Warn("--skip-unchanged needs build history; building anyway")
	}

	report, err := gen.Generate(ctx, "cli")
	if err != nil {
		return err
	}
	switch report.Outcome {
	case hugo.OutcomeSkipped:
		fmt.Println("Site unchanged; build skipped")
	case hugo.OutcomeWarning:
		fmt.Printf("Build completed with %d warning(s): %s\n", len(report.Warnings), gen.OutputDir())
	default:
		fmt.Printf("Build completed: %s\n", gen.OutputDir())
	}
	return nil
}
