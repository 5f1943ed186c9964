// Package theme is the registry of Hugo themes blogsite knows how to configure.
// Theme packages register themselves from init.
package theme

import (
	"sort"
	"sync"

	"git.home.luguber.info/chenyuan/blogsite/internal/config"
)

// Features describes how a theme is imported and which hooks it offers.
type Features struct {
	Name          string
	ModulePath    string
	ModuleVersion string
	// CommentsHook is the partial the theme calls below page content, overridden
	// to mount the comment widget. Empty when the theme has no such hook.
	CommentsHook string
	// HeadHook is a partial included at the end of <head>.
	HeadHook string
	// CustomCSSTarget is where the site's custom stylesheet is mounted.
	CustomCSSTarget string
	// HomeLayout is set as the layout of the generated landing pages.
	HomeLayout string
}

// ParamContext is the minimal surface a theme needs from the generator.
type ParamContext interface {
	Config() *config.Config
}

// Theme maps blogsite settings onto a theme's own params.
type Theme interface {
	Name() string
	Features() Features
	ApplyParams(ctx ParamContext, params map[string]any)
}

var (
	regMu sync.RWMutex
	reg   = map[string]Theme{}
)

// Register adds t to the registry. The first registration of a name wins.
func Register(t Theme) {
	if t == nil {
		return
	}
	regMu.Lock()
	defer regMu.Unlock()
	if _, ok := reg[t.Name()]; !ok {
		reg[t.Name()] = t
	}
}

// Get returns the theme registered under name, or nil.
func Get(name string) Theme {
	regMu.RLock()
	defer regMu.RUnlock()
	return reg[name]
}

// Names lists registered themes alphabetically.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]string, 0, len(reg))
	for n := range reg {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
