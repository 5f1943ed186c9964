// Package linkverify finds broken internal links, both in the rendered site and
// in the Markdown sources it was built from. External links are not fetched.
package linkverify

import (
	"context"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
	"git.home.luguber.info/chenyuan/blogsite/internal/markdown"
)

// Source says where a broken link was found.
type Source string

const (
	SourceHTML     Source = "html"
	SourceMarkdown Source = "markdown"
)

// BrokenLink is a link whose target does not exist.
type BrokenLink struct {
	Source Source `json:"source"`
	File   string `json:"file"`
	Line   int    `json:"line,omitempty"`
	URL    string `json:"url"`
	Tag    string `json:"tag,omitempty"`
}

// Report summarizes one check.
type Report struct {
	FilesScanned int          `json:"files_scanned"`
	LinksChecked int          `json:"links_checked"`
	Broken       []BrokenLink `json:"broken,omitempty"`
}

// CheckSite resolves every internal link in publicDir/**/*.html against the
// files Hugo wrote. siteURL is the absolute site root including any base path.
func CheckSite(ctx context.Context, publicDir, siteURL string) (*Report, error) {
	base, err := url.Parse(siteURL)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid site URL").WithContext("url", siteURL).Build()
	}
	basePath := base.Path
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}

	report := &Report{}
	err = filepath.WalkDir(publicDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}
		rel, err := filepath.Rel(publicDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		links, err := pageLinks(p, base)
		if err != nil {
			return err
		}
		report.FilesScanned++

		pageURL := base.ResolveReference(&url.URL{Path: basePath + rel})
		for _, l := range links {
			report.LinksChecked++
			if !resolvesOnDisk(publicDir, basePath, pageURL, l.Ref) {
				report.Broken = append(report.Broken, BrokenLink{Source: SourceHTML, File: rel, URL: l.Ref, Tag: l.Tag})
			}
		}
		return nil
	})
	if err != nil {
		if errors.IsClassified(err) {
			return nil, err
		}
		return nil, errors.WrapError(err, errors.CategoryLinks, "scan rendered site").WithContext("path", publicDir).Build()
	}
	sortBroken(report.Broken)
	return report, nil
}

func resolvesOnDisk(publicDir, basePath string, pageURL *url.URL, raw string) bool {
	ref, err := url.Parse(raw)
	if err != nil {
		return false
	}
	target := pageURL.ResolveReference(ref)
	if !strings.HasPrefix(target.Path+"/", basePath) {
		// outside the site root, e.g. another app on the same host
		return true
	}
	rel := strings.TrimPrefix(target.Path, basePath)
	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")

	candidates := []string{rel}
	switch {
	case rel == "" || strings.HasSuffix(target.Path, "/"):
		candidates = []string{path.Join(rel, "index.html")}
	case path.Ext(rel) == "":
		candidates = append(candidates, rel+"/index.html", rel+".html")
	}
	for _, c := range candidates {
		if info, err := os.Stat(filepath.Join(publicDir, filepath.FromSlash(c))); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

// CheckMarkdown verifies relative file links (./other.md, ../img/a.png) in the
// Markdown sources below each dir. Missing dirs are skipped.
func CheckMarkdown(ctx context.Context, dirs ...string) (*Report, error) {
	report := &Report{}
	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() || !isMarkdown(d.Name()) {
				return nil
			}
			data, err := os.ReadFile(p)
			if err != nil {
				return err
			}
			report.FilesScanned++
			for _, l := range markdown.ExtractLinks(data) {
				if !l.IsRelativeFile() {
					continue
				}
				report.LinksChecked++
				if !relativeFileExists(filepath.Dir(p), l.Destination) {
					report.Broken = append(report.Broken, BrokenLink{
						Source: SourceMarkdown, File: filepath.ToSlash(p), Line: l.Line, URL: l.Destination,
					})
				}
			}
			return nil
		})
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryLinks, "scan markdown sources").WithContext("path", dir).Build()
		}
	}
	sortBroken(report.Broken)
	return report, nil
}

func isMarkdown(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".mdx" || ext == ".markdown"
}

func relativeFileExists(dir, dest string) bool {
	if i := strings.IndexAny(dest, "#?"); i >= 0 {
		dest = dest[:i]
	}
	if dest == "" {
		return true
	}
	if unescaped, err := url.PathUnescape(dest); err == nil {
		dest = unescaped
	}
	_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(dest)))
	return err == nil
}

func sortBroken(b []BrokenLink) {
	sort.SliceStable(b, func(i, j int) bool {
		if b[i].File != b[j].File {
			return b[i].File < b[j].File
		}
		return b[i].Line < b[j].Line
	})
}
