package config

import (
	"fmt"
	"slices"
	"strings"

	"git.home.luguber.info/chenyuan/blogsite/internal/colormode"
	"git.home.luguber.info/chenyuan/blogsite/internal/embed"
)

// NormalizationResult captures adjustments & warnings from normalization pass.
type NormalizationResult struct{ Warnings []string }

// NormalizeConfig canonicalizes enumerated fields and the locale order prior to
// default application. It mutates c in place.
func NormalizeConfig(c *Config) (*NormalizationResult, error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}
	res := &NormalizationResult{}
	normalizeLocales(&c.I18n, res)
	normalizeLinkPolicy("on_broken_links", &c.OnBrokenLinks, res)
	normalizeLinkPolicy("on_broken_markdown_links", &c.OnBrokenMarkdownLinks, res)
	normalizeColorMode(&c.ColorMode, res)
	normalizeLogging(&c.Logging, res)
	if c.Comments != nil {
		if m, err := embed.ParseMapping(string(c.Comments.Mapping)); err == nil {
			c.Comments.Mapping = m
		}
	}
	c.Hugo.Theme = strings.ToLower(strings.TrimSpace(c.Hugo.Theme))
	return res, nil
}

// normalizeLocales trims entries, drops duplicates and moves the declared default
// locale to the front. An empty list stays empty so validation rejects it.
func normalizeLocales(cfg *I18nConfig, res *NormalizationResult) {
	seen := make(map[string]bool, len(cfg.Locales))
	out := make([]string, 0, len(cfg.Locales))
	for _, l := range cfg.Locales {
		l = strings.TrimSpace(l)
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	if len(out) != len(cfg.Locales) {
		res.Warnings = append(res.Warnings, "i18n.locales: removed empty or duplicate entries")
	}
	def := strings.TrimSpace(cfg.DefaultLocale)
	if def != "" && len(out) > 0 {
		if i := slices.Index(out, def); i > 0 {
			out = append([]string{def}, slices.Delete(out, i, i+1)...)
		} else if i < 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("i18n.default_locale %q not in locales; prepended", def))
			out = append([]string{def}, out...)
		}
	}
	cfg.Locales = out
	if len(out) > 0 {
		cfg.DefaultLocale = out[0]
	}
}

func normalizeLinkPolicy(field string, p *LinkPolicy, res *NormalizationResult) {
	if strings.TrimSpace(string(*p)) == "" {
		return
	}
	v, err := ParseLinkPolicy(string(*p))
	if err != nil {
		// left as-is; validation reports it
		return
	}
	if v != *p {
		res.Warnings = append(res.Warnings, warnChanged(field, *p, v))
		*p = v
	}
}

func normalizeColorMode(p *colormode.Preference, res *NormalizationResult) {
	if strings.TrimSpace(string(p.DefaultMode)) == "" {
		return
	}
	m, err := colormode.Parse(string(p.DefaultMode))
	if err != nil {
		return
	}
	if m != p.DefaultMode {
		res.Warnings = append(res.Warnings, warnChanged("color_mode.default_mode", p.DefaultMode, m))
		p.DefaultMode = m
	}
}

func normalizeLogging(l *LoggingConfig, res *NormalizationResult) {
	if raw := strings.TrimSpace(string(l.Level)); raw != "" {
		lvl := NormalizeLogLevel(raw)
		if string(lvl) != raw {
			res.Warnings = append(res.Warnings, warnChanged("logging.level", l.Level, lvl))
		}
		l.Level = lvl
	}
	if raw := strings.TrimSpace(string(l.Format)); raw != "" {
		f := NormalizeLogFormat(raw)
		if string(f) != raw {
			res.Warnings = append(res.Warnings, warnChanged("logging.format", l.Format, f))
		}
		l.Format = f
	}
}

func warnChanged[T ~string](field string, from, to T) string {
	return fmt.Sprintf("%s normalized from %q to %q", field, from, to)
}
