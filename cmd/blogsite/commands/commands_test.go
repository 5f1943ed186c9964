package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/chenyuan/blogsite/internal/config"
	"git.home.luguber.info/chenyuan/blogsite/internal/eventstore"
	"git.home.luguber.info/chenyuan/blogsite/internal/hugo"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Bind(&Global{}), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return cli, ctx
}

func TestParseBuildFlags(t *testing.T) {
	cli, ctx := parse(t, "-v", "build", "--run-hugo", "never", "--skip-unchanged", "-o", "out")
	assert.Equal(t, "build", ctx.Command())
	assert.True(t, cli.Verbose)
	assert.Equal(t, "never", cli.Build.RunHugo)
	assert.True(t, cli.Build.SkipUnchanged)
	assert.Equal(t, "out", cli.Build.Output)
}

func TestParseRejectsUnknownRunMode(t *testing.T) {
	parser, err := kong.New(&CLI{}, kong.Bind(&Global{}))
	require.NoError(t, err)
	_, err = parser.Parse([]string{"build", "--run-hugo", "sometimes"})
	require.Error(t, err)
}

func TestParseEmbedAndServe(t *testing.T) {
	cli, ctx := parse(t, "embed", "url", "--path", "/docs/intro", "--mode", "dark")
	assert.Equal(t, "embed url", ctx.Command())
	assert.Equal(t, "/docs/intro", cli.Embed.URL.Path)

	cli, _ = parse(t, "serve", "--debounce", "1s")
	assert.Equal(t, time.Second, cli.Serve.Debounce)
	assert.Equal(t, ":1313", cli.Serve.Addr)
}

func TestResolveConfigFallsBackToCompiledIn(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, dir, err := resolveConfig("")
	require.NoError(t, err)
	assert.Equal(t, ".", dir)
	assert.Equal(t, config.Default().Title, cfg.Title)
}

func TestResolveConfigMissingExplicitFile(t *testing.T) {
	_, _, err := resolveConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestInitThenBuild(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll("docs", 0o750))
	require.NoError(t, os.WriteFile(filepath.Join("docs", "intro.md"), []byte("# Intro\n"), 0o600))

	cli, _ := parse(t, "init")
	require.NoError(t, cli.Init.Run(&Global{}, cli))
	assert.FileExists(t, filepath.Join(dir, DefaultConfigFile))

	cli, _ = parse(t, "build", "--run-hugo", "never")
	g := &Global{}
	require.NoError(t, cli.Build.Run(g, cli))
	assert.FileExists(t, filepath.Join(dir, "site", "hugo.yaml"))
	assert.FileExists(t, filepath.Join(dir, ".blogsite", "history.db"))

	cli, _ = parse(t, "build", "--run-hugo", "never", "--skip-unchanged")
	require.NoError(t, cli.Build.Run(g, cli))

	report, err := hugo.ReadReport(filepath.Join(dir, "site"))
	require.NoError(t, err)
	assert.Equal(t, hugo.OutcomeSuccess, report.Outcome)

	store, err := eventstore.NewSQLiteStore(filepath.Join(dir, ".blogsite", "history.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	projection := eventstore.NewBuildHistoryProjection(store, 10)
	require.NoError(t, projection.Rebuild(t.Context()))
	history := projection.GetHistory(10)
	require.Len(t, history, 2)
	assert.Equal(t, eventstore.StatusSkipped, history[0].Status)
	assert.Equal(t, report.BuildID, history[1].BuildID)
}

func TestInitScaffoldAndTranslations(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cli, _ := parse(t, "init", "--scaffold")
	require.NoError(t, cli.Init.Run(&Global{}, cli))
	assert.FileExists(t, filepath.Join(dir, "docs", "intro.md"))
	blog, err := filepath.Glob(filepath.Join(dir, "blog", "*-welcome.md"))
	require.NoError(t, err)
	assert.Len(t, blog, 1)

	cli, _ = parse(t, "write-translations")
	require.NoError(t, cli.WriteTranslations.Run(&Global{}, cli))
	data, err := os.ReadFile(filepath.Join(dir, "i18n", "en", "code.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"homepage.features.about.title"`)
}

func TestInitRefusesOverwrite(t *testing.T) {
	t.Chdir(t.TempDir())
	cli, _ := parse(t, "init")
	require.NoError(t, cli.Init.Run(&Global{}, cli))
	require.Error(t, cli.Init.Run(&Global{}, cli))
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printHistory(&buf, nil))
	assert.Equal(t, "no builds recorded\n", buf.String())

	buf.Reset()
	builds := []eventstore.BuildSummary{
		{BuildID: "0123456789abcdef", Status: eventstore.StatusFailed, Trigger: "cli", ErrorStage: "verify_links", ErrorMessage: "broken links", StartedAt: time.Now()},
		{BuildID: "fedcba98", Status: eventstore.StatusWarning, Trigger: "watch", BrokenLinks: 2, Commit: "abcdef0123456789", StartedAt: time.Now()},
	}
	require.NoError(t, printHistory(&buf, builds))
	out := buf.String()
	assert.Contains(t, out, "BUILD")
	assert.Contains(t, out, "01234567 ")
	assert.Contains(t, out, "verify_links: broken links")
	assert.Contains(t, out, "2 broken link(s)")
	assert.Contains(t, out, "abcdef0123 ")
}
