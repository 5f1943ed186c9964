package config

import (
	"path/filepath"
	"strings"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// SiteDefaultApplier handles top-level site defaults.
type SiteDefaultApplier struct{}

func (s *SiteDefaultApplier) Domain() string { return "site" }

func (s *SiteDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "/"
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.OnBrokenLinks == "" {
		cfg.OnBrokenLinks = LinkPolicyThrow
	}
	if cfg.OnBrokenMarkdownLinks == "" {
		cfg.OnBrokenMarkdownLinks = LinkPolicyWarn
	}
	if cfg.I18n.Dir == "" {
		cfg.I18n.Dir = "i18n"
	}
	if cfg.Navbar.Title == "" {
		cfg.Navbar.Title = cfg.Title
	}
	return nil
}

// ContentDefaultApplier handles docs, blog and theme asset defaults.
type ContentDefaultApplier struct{}

func (c *ContentDefaultApplier) Domain() string { return "content" }

func (c *ContentDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Docs.Path == "" {
		cfg.Docs.Path = "docs"
	}
	if cfg.Docs.RouteBasePath == "" {
		cfg.Docs.RouteBasePath = "docs"
	}
	if cfg.Blog.Path == "" {
		cfg.Blog.Path = "blog"
	}
	if cfg.Blog.RouteBasePath == "" {
		cfg.Blog.RouteBasePath = "blog"
	}
	if cfg.Theme.StaticDir == "" {
		cfg.Theme.StaticDir = "static"
	}
	if cfg.Prism.Theme == "" {
		cfg.Prism.Theme = "github"
	}
	if cfg.Prism.DarkTheme == "" {
		cfg.Prism.DarkTheme = "dracula"
	}
	if cfg.Footer.Style == "" {
		cfg.Footer.Style = "dark"
	}
	return nil
}

// HugoDefaultApplier handles Hugo configuration defaults.
type HugoDefaultApplier struct{}

func (h *HugoDefaultApplier) Domain() string { return "hugo" }

func (h *HugoDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Hugo.Theme == "" {
		cfg.Hugo.Theme = "hextra"
	}
	if cfg.Hugo.Binary == "" {
		cfg.Hugo.Binary = "hugo"
	}
	return nil
}

// OutputDefaultApplier handles Output and history defaults.
type OutputDefaultApplier struct{}

func (o *OutputDefaultApplier) Domain() string { return "output" }

func (o *OutputDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = "./site"
		cfg.Output.Clean = true
	}
	if cfg.History.Path == "" {
		cfg.History.Path = filepath.Join(".blogsite", "history.db")
	}
	return nil
}

// LoggingDefaultApplier handles logging defaults.
type LoggingDefaultApplier struct{}

func (l *LoggingDefaultApplier) Domain() string { return "logging" }

func (l *LoggingDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
	return nil
}

// ConfigDefaultApplier runs the domain appliers in order.
type ConfigDefaultApplier struct {
	appliers []DefaultApplier
}

// NewDefaultApplier creates the applier chain used by Load.
func NewDefaultApplier() *ConfigDefaultApplier {
	return &ConfigDefaultApplier{
		appliers: []DefaultApplier{
			&SiteDefaultApplier{},
			&ContentDefaultApplier{},
			&HugoDefaultApplier{},
			&OutputDefaultApplier{},
			&LoggingDefaultApplier{},
		},
	}
}

func (c *ConfigDefaultApplier) ApplyDefaults(cfg *Config) error {
	for _, a := range c.appliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}

func applyDefaults(cfg *Config) error {
	return NewDefaultApplier().ApplyDefaults(cfg)
}
