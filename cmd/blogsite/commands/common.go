package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/chenyuan/blogsite/internal/config"
	"git.home.luguber.info/chenyuan/blogsite/internal/eventstore"
	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
)

// DefaultConfigFile is looked up in the working directory when --config is not set.
const DefaultConfigFile = "blogsite.yaml"

// Global carries state shared by subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config    string `short:"c" help:"Configuration file path. Without one, ./blogsite.yaml is used if present, else the compiled-in site." env:"BLOGSITE_CONFIG"`
	Verbose   bool   `short:"v" help:"Enable verbose logging"`
	LogFormat string `name:"log-format" help:"Log output format (text|json); overrides logging.format"`

	Build    BuildCmd    `cmd:"" help:"Generate the Hugo project and render the site"`
	Serve    ServeCmd    `cmd:"" help:"Build, serve and rebuild the site on change"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`
	Validate ValidateCmd `cmd:"" help:"Load and validate the configuration"`

	WriteTranslations WriteTranslationsCmd `cmd:"" name:"write-translations" help:"Seed translation files for the non-default locales"`

	Embed   EmbedCmd   `cmd:"" help:"Inspect the comment embed binding"`
	History HistoryCmd `cmd:"" help:"List recent builds"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// AfterApply runs after flag parsing; sets up logging from the flags. The
// configuration's logging section is applied once it has been loaded.
func (c *CLI) AfterApply(g *Global) error {
	level := config.LogLevelInfo
	if c.Verbose {
		level = config.LogLevelDebug
	}
	g.Logger = SetupLogging(level, config.NormalizeLogFormat(c.LogFormat))
	return nil
}

// SetupLogging installs the default slog logger on stderr.
func SetupLogging(level config.LogLevel, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level.SlogLevel()}
	var h slog.Handler
	if format == config.LogFormatJSON {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// LoadConfig resolves the configuration and the directory its relative paths
// are based on, then applies logging settings the flags left open.
func (c *CLI) LoadConfig(g *Global) (*config.Config, string, error) {
	cfg, dir, err := resolveConfig(c.Config)
	if err != nil {
		return nil, "", err
	}
	level, format := cfg.Logging.Level, cfg.Logging.Format
	if c.Verbose {
		level = config.LogLevelDebug
	}
	if c.LogFormat != "" {
		format = config.NormalizeLogFormat(c.LogFormat)
	}
	g.Logger = SetupLogging(level, format)
	return cfg, dir, nil
}

func resolveConfig(path string) (*config.Config, string, error) {
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			slog.Debug("No configuration file; using the compiled-in site")
			return config.Default(), ".", nil
		}
		path = DefaultConfigFile
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, filepath.Dir(path), nil
}

// ConfigPath returns the file serve watches, or "" for the compiled-in site.
func (c *CLI) ConfigPath() string {
	if c.Config != "" {
		return c.Config
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

// openHistory opens the build history database, or returns nil when history
// is disabled.
func openHistory(cfg *config.Config, dir string) (*eventstore.SQLiteStore, error) {
	if cfg.History.Disabled {
		return nil, nil
	}
	path := cfg.History.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return eventstore.NewSQLiteStore(path)
}

func usageError(format string, args ...any) error {
	return errors.ValidationError(fmt.Sprintf(format, args...)).Build()
}
