package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/chenyuan/blogsite/internal/config"
	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
	"git.home.luguber.info/chenyuan/blogsite/internal/hugo"
)

// InitCmd writes an editable copy of the compiled-in site configuration.
type InitCmd struct {
	Force    bool `help:"Overwrite an existing configuration file."`
	Scaffold bool `help:"Also create starter docs and blog pages when their directories are missing."`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	path := root.Config
	if path == "" {
		path = DefaultConfigFile
	}
	if err := config.Init(path, i.Force); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	if !i.Scaffold {
		return nil
	}

	cfg := config.Default()
	dir := filepath.Dir(path)
	pages := map[string]string{
		filepath.Join(dir, cfg.Docs.Path, "intro.md"):                                    "---\ntitle: Intro\n---\n\nStart writing notes here.\n",
		filepath.Join(dir, cfg.Blog.Path, time.Now().Format("2006-01-02")+"-welcome.md"): "---\ntitle: Welcome\n---\n\nFirst post.\n",
	}
	for p, body := range pages {
		if _, err := os.Stat(filepath.Dir(p)); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
			return errors.FileSystemError("create content directory").WithCause(err).WithContext("path", p).Build()
		}
		// #nosec G306 -- content pages are public
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			return errors.FileSystemError("write starter page").WithCause(err).WithContext("path", p).Build()
		}
		fmt.Printf("Wrote %s\n", p)
	}
	return nil
}

// WriteTranslationsCmd seeds i18n/<locale>/code.json for the non-default locales.
type WriteTranslationsCmd struct{}

func (w *WriteTranslationsCmd) Run(g *Global, root *CLI) error {
	cfg, dir, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	files, err := hugo.NewGenerator(cfg, dir).WriteTranslations()
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Printf("Wrote %s\n", f)
	}
	return nil
}
