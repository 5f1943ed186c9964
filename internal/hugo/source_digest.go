package hugo

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// sourceDigest hashes every file the site is rendered from. It stands in for
// the commit when the source tree is not a git repository.
func (g *Generator) sourceDigest() (string, error) {
	cfg := g.config
	h := sha256.New()
	for _, root := range []string{cfg.Docs.Path, cfg.Blog.Path, cfg.I18n.Dir, cfg.Theme.StaticDir, cfg.Docs.SidebarPath, cfg.Theme.CustomCSS} {
		if root == "" {
			continue
		}
		if err := hashTree(h, g.sourcePath(root)); err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func hashTree(h io.Writer, root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		_, _ = io.WriteString(h, root+"\x00"+filepath.ToSlash(rel)+"\x00")
		f, err := os.Open(path) // #nosec G304 -- walking the configured source tree
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		_, err = io.Copy(h, f)
		return err
	})
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// foldSources mixes the source digest into the config snapshot.
func foldSources(snapshot, digest string) string {
	sum := sha256.Sum256([]byte(snapshot + "\x00" + digest))
	return hex.EncodeToString(sum[:])
}
