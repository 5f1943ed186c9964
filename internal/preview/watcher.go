package preview

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/chenyuan/blogsite/internal/config"
	"git.home.luguber.info/chenyuan/blogsite/internal/logfields"
)

// watchSet decides which filesystem events trigger a rebuild. Source trees
// are watched recursively; the config file is watched through its directory,
// which usually also holds the output, so everything else there is ignored.
type watchSet struct {
	configPath string
	roots      []string
	excluded   []string
}

func newWatchSet(cfg *config.Config, configPath, sourceDir string) *watchSet {
	ws := &watchSet{}
	if configPath != "" {
		if abs, err := filepath.Abs(configPath); err == nil {
			ws.configPath = abs
		}
	}
	abs := func(p string) string {
		if p == "" {
			return ""
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(sourceDir, p)
		}
		if a, err := filepath.Abs(p); err == nil {
			return a
		}
		return filepath.Clean(p)
	}
	for _, p := range []string{cfg.Docs.Path, cfg.Blog.Path, cfg.I18n.Dir, cfg.Theme.StaticDir} {
		if a := abs(p); a != "" {
			ws.roots = append(ws.roots, a)
		}
	}
	if cfg.Theme.CustomCSS != "" {
		ws.roots = append(ws.roots, abs(filepath.Dir(cfg.Theme.CustomCSS)))
	}
	if out := abs(cfg.Output.Directory); out != "" {
		ws.excluded = append(ws.excluded, out, out+"_stage", out+".prev")
	}
	return ws
}

// register adds the watched directories to w. Missing roots are skipped.
func (ws *watchSet) register(w *fsnotify.Watcher) {
	if ws.configPath != "" {
		if err := w.Add(filepath.Dir(ws.configPath)); err != nil {
			slog.Warn("watch add failed", logfields.Path(ws.configPath), logfields.Error(err))
		}
	}
	for _, root := range ws.roots {
		if st, err := os.Stat(root); err != nil || !st.IsDir() {
			continue
		}
		ws.addRecursive(w, root)
	}
}

func (ws *watchSet) addRecursive(w *fsnotify.Watcher, root string) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if ws.isExcluded(path) {
				return filepath.SkipDir
			}
			if err := w.Add(path); err != nil {
				slog.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// relevant reports whether a change to path should trigger a rebuild.
func (ws *watchSet) relevant(path string) bool {
	if shouldIgnoreEvent(path) || ws.isExcluded(path) {
		return false
	}
	if path == ws.configPath {
		return true
	}
	for _, root := range ws.roots {
		if within(root, path) {
			return true
		}
	}
	return false
}

func (ws *watchSet) isExcluded(path string) bool {
	for _, ex := range ws.excluded {
		if within(ex, path) {
			return true
		}
	}
	return false
}

// handle processes one event and reports whether it should trigger a rebuild.
// New directories under a root are watched as they appear.
func (ws *watchSet) handle(w *fsnotify.Watcher, ev fsnotify.Event) bool {
	if !ws.relevant(ev.Name) {
		return false
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			ws.addRecursive(w, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	return true
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// shouldIgnoreEvent returns true for hidden, editor temp and OS lock files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
