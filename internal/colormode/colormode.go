// Package colormode models the light/dark display preference that pages read
// but never change. Components receive a Mode as an explicit argument.
package colormode

import "git.home.luguber.info/chenyuan/blogsite/internal/foundation/normalization"

// Mode is the active color scheme.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// All lists every mode in a stable order.
var All = []Mode{Light, Dark}

var modeNormalizer = normalization.NewNormalizer("color mode", map[string]Mode{
	"light": Light,
	"dark":  Dark,
}, Light)

// Parse converts raw into a Mode. Empty input yields Light.
func Parse(raw string) (Mode, error) { return modeNormalizer.Parse(raw) }

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return modeNormalizer.Valid(m) }

func (m Mode) String() string { return string(m) }

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// Preference is the site-level color mode configuration.
type Preference struct {
	DefaultMode               Mode `yaml:"default_mode,omitempty" validate:"omitempty,oneof=light dark"`
	DisableSwitch             bool `yaml:"disable_switch,omitempty"`
	RespectPrefersColorScheme bool `yaml:"respect_prefers_color_scheme,omitempty"`
}

// Initial returns the mode a page is first rendered with before any client-side preference applies.
func (p Preference) Initial() Mode {
	if p.DefaultMode.Valid() {
		return p.DefaultMode
	}
	return Light
}

// HugoThemeDefault maps the preference onto the theme's "default" setting.
func (p Preference) HugoThemeDefault() string {
	if p.RespectPrefersColorScheme {
		return "system"
	}
	return string(p.Initial())
}
