package hugo

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/chenyuan/blogsite/internal/config"
	"git.home.luguber.info/chenyuan/blogsite/internal/eventstore"
	"git.home.luguber.info/chenyuan/blogsite/internal/feature"
	"git.home.luguber.info/chenyuan/blogsite/internal/gitinfo"
	th "git.home.luguber.info/chenyuan/blogsite/internal/hugo/theme"
	_ "git.home.luguber.info/chenyuan/blogsite/internal/hugo/themes/hextra"
	"git.home.luguber.info/chenyuan/blogsite/internal/logfields"
	"git.home.luguber.info/chenyuan/blogsite/internal/metrics"
)

// RunMode decides whether run_hugo invokes the renderer.
type RunMode string

const (
	RunHugoAuto   RunMode = "auto"   // run when the binary is on PATH, warn otherwise
	RunHugoAlways RunMode = "always" // missing binary fails the build
	RunHugoNever  RunMode = "never"
)

// Generator builds the Hugo project for one site configuration.
type Generator struct {
	config    *config.Config
	sourceDir string // relative config paths resolve here
	outputDir string
	stageDir  string

	features  []feature.Record
	recorder  metrics.Recorder
	observers observers
	renderer  Renderer
	runMode   RunMode

	// previous is the last successful build; when set, an unchanged build is skipped.
	previous *eventstore.BuildSummary
}

// NewGenerator creates a generator for cfg. sourceDir is the directory the
// configuration was loaded from.
func NewGenerator(cfg *config.Config, sourceDir string) *Generator {
	g := &Generator{
		config:    cfg,
		sourceDir: filepath.Clean(sourceDir),
		features:  feature.Defaults(),
		recorder:  metrics.NoopRecorder{},
		runMode:   RunHugoAuto,
	}
	g.outputDir = g.sourcePath(cfg.Output.Directory)
	return g
}

// Config exposes the configuration (read-only usage by themes).
func (g *Generator) Config() *config.Config { return g.config }

// OutputDir is where the finished Hugo project lives.
func (g *Generator) OutputDir() string { return g.outputDir }

// PublicDir is the rendered site inside the output directory.
func (g *Generator) PublicDir() string { return filepath.Join(g.outputDir, "public") }

// SetRecorder injects a metrics recorder. Returns the generator for chaining.
func (g *Generator) SetRecorder(r metrics.Recorder) *Generator {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	g.recorder = r
	return g
}

// AddObserver registers an additional build observer.
func (g *Generator) AddObserver(o BuildObserver) *Generator {
	if o != nil {
		g.observers = append(g.observers, o)
	}
	return g
}

// SetRenderer replaces the hugo binary renderer (tests, embedding).
func (g *Generator) SetRenderer(r Renderer) *Generator {
	g.renderer = r
	return g
}

// SetRunMode selects when run_hugo executes.
func (g *Generator) SetRunMode(m RunMode) *Generator {
	g.runMode = m
	return g
}

// SetFeatures replaces the homepage feature list.
func (g *Generator) SetFeatures(records []feature.Record) *Generator {
	g.features = records
	return g
}

// SkipIfUnchanged skips the build when previous has the same config snapshot
// and source commit, the worktree is clean and the output is intact. Outside
// git the snapshot also covers the content of the source directories.
func (g *Generator) SkipIfUnchanged(previous *eventstore.BuildSummary) *Generator {
	g.previous = previous
	return g
}

func (g *Generator) sourcePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(g.sourceDir, p)
}

// SiteURL is the absolute site root including the base path, e.g.
// "https://example.com/blog/".
func (g *Generator) SiteURL() string {
	return strings.TrimRight(g.config.URL, "/") + g.config.BaseURL
}

func (g *Generator) activeTheme() th.Theme { return th.Get(g.config.Hugo.Theme) }

// Generate runs every stage and promotes the staged project on success. The
// returned report is non-nil even when err is not.
func (g *Generator) Generate(ctx context.Context, trigger string) (*BuildReport, error) {
	report := newBuildReport(trigger)
	report.Snapshot = g.config.Snapshot()
	report.Locales = append([]string(nil), g.config.I18n.Locales...)
	dirty := g.stampCommit(report)
	if report.Commit == "" {
		digest, err := g.sourceDigest()
		if err != nil {
			slog.Debug("Could not hash sources", logfields.Error(err))
			dirty = true
		} else {
			report.Snapshot = foldSources(report.Snapshot, digest)
		}
	}

	obs := append(observers{recorderObserver{rec: g.recorder}}, g.observers...)
	log := slog.With(logfields.BuildID(report.BuildID))
	log.Info("Starting site build", logfields.Path(g.outputDir), slog.String("trigger", trigger), slog.String("commit", report.Commit))
	obs.OnBuildStart(report)

	if g.unchangedSince(report, dirty) {
		report.SkipReason = "no_changes"
		report.finish()
		report.deriveOutcome()
		log.Info("Sources and configuration unchanged since last build; skipping", slog.String("previous", g.previous.BuildID))
		obs.OnBuildComplete(report)
		return report, nil
	}

	var err error
	if err = g.beginStaging(); err != nil {
		report.AddIssue(IssueGenericStageError, StagePrepareOutput, SeverityError, err.Error(), false, err)
	} else {
		bs := newBuildState(g, report)
		if err = runStages(ctx, bs, defaultStages(), obs); err != nil {
			g.abortStaging()
		} else if err = g.finalizeStaging(); err != nil {
			report.AddIssue(IssueGenericStageError, StageVerifyLinks, SeverityError, err.Error(), false, err)
		}
	}

	report.finish()
	report.deriveOutcome()
	if perr := report.Persist(g.outputDir); perr != nil {
		log.Warn("Failed to persist build report", logfields.Error(perr))
	}
	obs.OnBuildComplete(report)

	if err != nil {
		log.Error("Site build failed", slog.String("outcome", string(report.Outcome)), logfields.Error(err))
		return report, err
	}
	log.Info("Site build completed", slog.String("summary", report.Summary()))
	return report, nil
}

// stampCommit records the source commit. Returns whether the worktree is dirty.
func (g *Generator) stampCommit(report *BuildReport) bool {
	info, err := gitinfo.Head(g.sourceDir)
	if err != nil {
		if !stderrors.Is(err, gitinfo.ErrNotRepository) {
			slog.Debug("Could not read source commit", logfields.Error(err))
		}
		return false
	}
	report.Commit = info.Commit
	return info.Dirty
}

func (g *Generator) unchangedSince(report *BuildReport, dirty bool) bool {
	prev := g.previous
	if prev == nil || dirty || !prev.Succeeded() {
		return false
	}
	if prev.Snapshot != report.Snapshot || prev.Commit != report.Commit {
		return false
	}
	return g.existingSiteValid()
}

// existingSiteValid probes the current output before an unchanged build is skipped.
func (g *Generator) existingSiteValid() bool {
	for _, name := range []string{ReportFile, hugoConfigFile} {
		if fi, err := os.Stat(filepath.Join(g.outputDir, name)); err != nil || fi.IsDir() {
			return false
		}
	}
	if g.runMode == RunHugoNever {
		return true
	}
	entries, err := os.ReadDir(g.PublicDir())
	return err == nil && len(entries) > 0
}
