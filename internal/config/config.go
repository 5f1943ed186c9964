// Package config defines the site configuration and its load pipeline
// (env expansion, normalize, defaults, validate).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/chenyuan/blogsite/internal/colormode"
	"git.home.luguber.info/chenyuan/blogsite/internal/embed"
	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
)

// Config is the fully resolved site configuration. It is produced once per
// build or serve session and treated as read-only afterwards.
type Config struct {
	Title                 string               `yaml:"title" validate:"required"`
	Tagline               string               `yaml:"tagline,omitempty"`
	URL                   string               `yaml:"url" validate:"required,http_url"`
	BaseURL               string               `yaml:"base_url" validate:"required,startswith=/,endswith=/"`
	Favicon               string               `yaml:"favicon,omitempty"`
	OrganizationName      string               `yaml:"organization_name,omitempty"`
	ProjectName           string               `yaml:"project_name,omitempty"`
	OnBrokenLinks         LinkPolicy           `yaml:"on_broken_links" validate:"link_policy"`
	OnBrokenMarkdownLinks LinkPolicy           `yaml:"on_broken_markdown_links" validate:"link_policy"`
	I18n                  I18nConfig           `yaml:"i18n"`
	Navbar                NavbarConfig         `yaml:"navbar"`
	Footer                FooterConfig         `yaml:"footer,omitempty"`
	Prism                 PrismConfig          `yaml:"prism"`
	ColorMode             colormode.Preference `yaml:"color_mode,omitempty"`
	AnnouncementBar       *AnnouncementBar     `yaml:"announcement_bar,omitempty" validate:"omitempty"`
	Algolia               *AlgoliaConfig       `yaml:"algolia,omitempty" validate:"omitempty"`
	Docs                  DocsConfig           `yaml:"docs"`
	Blog                  BlogConfig           `yaml:"blog"`
	Theme                 ThemeConfig          `yaml:"theme,omitempty"`
	Plugins               []string             `yaml:"plugins,omitempty" validate:"dive,required"`
	Presets               []string             `yaml:"presets,omitempty" validate:"dive,required"`
	Comments              *embed.Binding       `yaml:"comments,omitempty" validate:"-"`
	Hugo                  HugoConfig           `yaml:"hugo"`
	Output                OutputConfig         `yaml:"output"`
	History               HistoryConfig        `yaml:"history"`
	Logging               LoggingConfig        `yaml:"logging,omitempty"`
}

// I18nConfig lists the site locales. The first entry of Locales is the default
// once the config has been normalized.
type I18nConfig struct {
	DefaultLocale string                  `yaml:"default_locale,omitempty"`
	Locales       []string                `yaml:"locales" validate:"required,min=1,dive,bcp47_language_tag"`
	Dir           string                  `yaml:"dir,omitempty"`
	LocaleConfigs map[string]LocaleConfig `yaml:"locale_configs,omitempty" validate:"dive"`
}

// LocaleConfig overrides presentation for one locale.
type LocaleConfig struct {
	Label     string `yaml:"label,omitempty"`
	Direction string `yaml:"direction,omitempty" validate:"omitempty,oneof=ltr rtl"`
}

// NavbarConfig is the top navigation bar.
type NavbarConfig struct {
	Title        string       `yaml:"title,omitempty"`
	Logo         string       `yaml:"logo,omitempty"`
	HideOnScroll bool         `yaml:"hide_on_scroll,omitempty"`
	Items        []NavbarItem `yaml:"items" validate:"-"`
}

// FooterConfig is the page footer.
type FooterConfig struct {
	Style     string         `yaml:"style,omitempty" validate:"omitempty,oneof=light dark"`
	Columns   []FooterColumn `yaml:"columns,omitempty" validate:"dive"`
	Copyright string         `yaml:"copyright,omitempty"`
}

// FooterColumn groups footer links under a heading.
type FooterColumn struct {
	Title string       `yaml:"title" validate:"required"`
	Items []FooterLink `yaml:"items" validate:"dive"`
}

// FooterLink points either inside the site (To) or elsewhere (Href).
type FooterLink struct {
	Label string `yaml:"label" validate:"required"`
	To    string `yaml:"to,omitempty" validate:"required_without=Href"`
	Href  string `yaml:"href,omitempty" validate:"omitempty,http_url"`
}

// PrismConfig is the code highlighting theme pair and language setup.
type PrismConfig struct {
	Theme               string   `yaml:"theme" validate:"required"`
	DarkTheme           string   `yaml:"dark_theme" validate:"required"`
	DefaultLanguage     string   `yaml:"default_language,omitempty"`
	AdditionalLanguages []string `yaml:"additional_languages,omitempty" validate:"dive,required"`
}

// AnnouncementBar is the dismissible banner above the navbar. Content is HTML.
type AnnouncementBar struct {
	ID              string `yaml:"id" validate:"required"`
	Content         string `yaml:"content" validate:"required"`
	BackgroundColor string `yaml:"background_color,omitempty" validate:"omitempty,hexcolor"`
	TextColor       string `yaml:"text_color,omitempty" validate:"omitempty,hexcolor"`
	IsCloseable     bool   `yaml:"is_closeable,omitempty"`
}

// AlgoliaConfig holds search credentials. The values are passed through untouched.
type AlgoliaConfig struct {
	AppID     string `yaml:"app_id" validate:"required"`
	APIKey    string `yaml:"api_key" validate:"required"`
	IndexName string `yaml:"index_name" validate:"required"`
}

// DocsConfig configures the documentation section.
type DocsConfig struct {
	Path               string `yaml:"path"`
	RouteBasePath      string `yaml:"route_base_path"`
	SidebarPath        string `yaml:"sidebar_path,omitempty"`
	SidebarHideable    bool   `yaml:"sidebar_hideable,omitempty"`
	EditURL            string `yaml:"edit_url,omitempty" validate:"omitempty,http_url"`
	ShowLastUpdateTime bool   `yaml:"show_last_update_time,omitempty"`
}

// BlogConfig configures the blog section.
type BlogConfig struct {
	Path            string `yaml:"path"`
	RouteBasePath   string `yaml:"route_base_path"`
	EditURL         string `yaml:"edit_url,omitempty" validate:"omitempty,http_url"`
	ShowReadingTime bool   `yaml:"show_reading_time,omitempty"`
}

// ThemeConfig holds site-level styling inputs.
type ThemeConfig struct {
	CustomCSS string `yaml:"custom_css,omitempty"`
	StaticDir string `yaml:"static_dir,omitempty"`
}

// HugoConfig selects the Hugo theme module and binary.
type HugoConfig struct {
	Theme  string         `yaml:"theme" validate:"required,theme_name"`
	Binary string         `yaml:"binary,omitempty"`
	Params map[string]any `yaml:"params,omitempty"`
}

// OutputConfig is where the generated Hugo project is written.
type OutputConfig struct {
	Directory string `yaml:"directory" validate:"required"`
	Clean     bool   `yaml:"clean"`
}

// HistoryConfig points at the build history database.
type HistoryConfig struct {
	Path     string `yaml:"path,omitempty"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

// LoggingConfig sets the log level and format when no CLI flag overrides them.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// DefaultLocale returns the first locale, or "" when none are configured.
func (c *Config) DefaultLocale() string {
	if len(c.I18n.Locales) == 0 {
		return ""
	}
	return c.I18n.Locales[0]
}

// LocaleLabel returns the configured label for locale, or "" to use the language's own name.
func (c *Config) LocaleLabel(locale string) string {
	return c.I18n.LocaleConfigs[locale].Label
}

// Load reads, expands, normalizes, defaults and validates the config at path.
func Load(path string) (*Config, error) {
	LoadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError(fmt.Sprintf("configuration file not found: %s", path)).
				WithContext("path", path).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read config file").WithContext("path", path).Build()
	}
	return Parse(data)
}

// Parse runs the load pipeline over raw YAML.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		if errors.IsClassified(err) {
			return nil, err
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}
	if err := Resolve(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Resolve applies normalization, defaults and validation to cfg in place.
func Resolve(cfg *Config) error {
	res, err := NormalizeConfig(cfg)
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "normalize").Fatal().Build()
	}
	for _, w := range res.Warnings {
		slog.Warn("config normalization", "warning", w)
	}
	if err := applyDefaults(cfg); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "failed to apply defaults").Fatal().Build()
	}
	return ValidateConfig(cfg)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	out.I18n.Locales = slices.Clone(c.I18n.Locales)
	if c.I18n.LocaleConfigs != nil {
		out.I18n.LocaleConfigs = make(map[string]LocaleConfig, len(c.I18n.LocaleConfigs))
		for k, v := range c.I18n.LocaleConfigs {
			out.I18n.LocaleConfigs[k] = v
		}
	}
	out.Navbar.Items = cloneItems(c.Navbar.Items)
	out.Footer.Columns = make([]FooterColumn, len(c.Footer.Columns))
	for i, col := range c.Footer.Columns {
		out.Footer.Columns[i] = FooterColumn{Title: col.Title, Items: slices.Clone(col.Items)}
	}
	if c.Footer.Columns == nil {
		out.Footer.Columns = nil
	}
	out.Prism.AdditionalLanguages = slices.Clone(c.Prism.AdditionalLanguages)
	out.Plugins = slices.Clone(c.Plugins)
	out.Presets = slices.Clone(c.Presets)
	if c.AnnouncementBar != nil {
		bar := *c.AnnouncementBar
		out.AnnouncementBar = &bar
	}
	if c.Algolia != nil {
		a := *c.Algolia
		out.Algolia = &a
	}
	if c.Comments != nil {
		b := *c.Comments
		out.Comments = &b
	}
	if c.Hugo.Params != nil {
		out.Hugo.Params = cloneParams(c.Hugo.Params)
	}
	return &out
}

func cloneItems(items []NavbarItem) []NavbarItem {
	if items == nil {
		return nil
	}
	out := make([]NavbarItem, len(items))
	for i, it := range items {
		out[i] = it
		if dd, ok := it.Spec.(DropdownItem); ok {
			out[i].Spec = DropdownItem{Locales: dd.Locales, Items: cloneItems(dd.Items)}
		}
	}
	return out
}

func cloneParams(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch tv := v.(type) {
		case map[string]any:
			out[k] = cloneParams(tv)
		case []any:
			out[k] = slices.Clone(tv)
		default:
			out[k] = v
		}
	}
	return out
}
