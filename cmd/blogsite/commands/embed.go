package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"git.home.luguber.info/chenyuan/blogsite/internal/colormode"
	"git.home.luguber.info/chenyuan/blogsite/internal/embed"
	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
)

// EmbedCmd groups the comment embed subcommands.
type EmbedCmd struct {
	Check EmbedCheckCmd `cmd:"" help:"Compare the binding with the GitHub repository"`
	URL   EmbedURLCmd   `cmd:"" name:"url" help:"Print the widget request URL for a page"`
}

// EmbedCheckCmd verifies the repository id and discussion settings.
type EmbedCheckCmd struct {
	Token string `help:"GitHub token for API requests" env:"GITHUB_TOKEN"`
}

func (e *EmbedCheckCmd) Run(g *Global, root *CLI) error {
	cfg, _, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	if cfg.Comments == nil {
		return usageError("no comments binding configured")
	}
	report, err := embed.NewVerifier(e.Token).Verify(context.Background(), *cfg.Comments)
	if err != nil {
		return err
	}
	fmt.Printf("repository: %s\n", report.Repo)
	fmt.Printf("repo id:    %s (configured %s)\n", report.ActualRepoID, report.ExpectedRepoID)
	fmt.Printf("discussions enabled: %t\n", report.DiscussionsEnabled)
	if report.OK() {
		fmt.Println("binding OK")
		return nil
	}
	for _, p := range report.Problems {
		fmt.Fprintf(os.Stderr, "  - %s\n", p)
	}
	return errors.EmbedError("comment binding does not match the repository").
		WithContext("problems", strings.Join(report.Problems, "; ")).Build()
}

// EmbedURLCmd prints the URL the widget requests for a page.
type EmbedURLCmd struct {
	Path   string `help:"Page path, e.g. /docs/intro" default:"/"`
	Title  string `help:"Page title"`
	Mode   string `help:"Color mode (light|dark); defaults to the site's initial mode"`
	Locale string `help:"Page locale; defaults to the site default"`
}

func (e *EmbedURLCmd) Run(g *Global, root *CLI) error {
	cfg, _, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	if cfg.Comments == nil {
		return usageError("no comments binding configured")
	}
	mode := cfg.ColorMode.Initial()
	if e.Mode != "" {
		if mode, err = colormode.Parse(e.Mode); err != nil {
			return err
		}
	}
	locale := e.Locale
	if locale == "" {
		locale = cfg.DefaultLocale()
	}
	page := embed.Page{Title: e.Title, Path: e.Path, URL: strings.TrimSuffix(cfg.URL, "/") + e.Path}
	fmt.Println(embed.WidgetURL(embed.NewProps(*cfg.Comments, mode, locale), page))
	return nil
}
