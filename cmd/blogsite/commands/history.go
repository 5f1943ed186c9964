package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/chenyuan/blogsite/internal/eventstore"
)

// HistoryCmd lists recent builds from the history database.
type HistoryCmd struct {
	Limit int  `short:"n" help:"Number of builds to show" default:"10"`
	JSON  bool `name:"json" help:"Print JSON instead of a table"`
}

func (h *HistoryCmd) Run(g *Global, root *CLI) error {
	cfg, dir, err := root.LoadConfig(g)
	if err != nil {
		return err
	}
	store, err := openHistory(cfg, dir)
	if err != nil {
		return err
	}
	if store == nil {
		return usageError("build history is disabled (history.disabled)")
	}
	defer func() { _ = store.Close() }()

	projection := eventstore.NewBuildHistoryProjection(store, h.Limit)
	if err := projection.Rebuild(context.Background()); err != nil {
		return err
	}
	builds := projection.GetHistory(h.Limit)
	if h.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(builds)
	}
	return printHistory(os.Stdout, builds)
}

func printHistory(out io.Writer, builds []eventstore.BuildSummary) error {
	if len(builds) == 0 {
		_, err := fmt.Fprintln(out, "no builds recorded")
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "BUILD\tSTARTED\tSTATUS\tDURATION\tTRIGGER\tCOMMIT\tDETAIL")
	for _, b := range builds {
		detail := ""
		switch {
		case b.ErrorStage != "":
			detail = b.ErrorStage + ": " + b.ErrorMessage
		case b.BrokenLinks > 0:
			detail = fmt.Sprintf("%d broken link(s)", b.BrokenLinks)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			short(b.BuildID, 8), b.StartedAt.Local().Format(time.DateTime), b.Status,
			b.Duration.Truncate(time.Millisecond), b.Trigger, short(b.Commit, 10), detail)
	}
	return tw.Flush()
}

func short(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
