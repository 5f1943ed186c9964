package hugo

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"

	"git.home.luguber.info/chenyuan/blogsite/internal/logfields"
)

// Renderer renders a Hugo project directory into <root>/public.
type Renderer interface {
	Execute(ctx context.Context, root string) error
}

// BinaryRenderer runs the hugo executable.
type BinaryRenderer struct {
	Binary string // name or path; "hugo" when empty
	Args   []string
}

func (r *BinaryRenderer) binary() string {
	if r.Binary == "" {
		return "hugo"
	}
	return r.Binary
}

// Available reports whether the binary can be found.
func (r *BinaryRenderer) Available() bool {
	_, err := exec.LookPath(r.binary())
	return err == nil
}

// Execute runs hugo against root. The tail of hugo's output is attached to
// the error on failure.
func (r *BinaryRenderer) Execute(ctx context.Context, root string) error {
	path, err := exec.LookPath(r.binary())
	if err != nil {
		return ErrHugoNotFound.Wrap(err).WithContext("binary", r.binary()).Build()
	}
	args := append([]string{"--source", root, "--gc", "--minify", "--cleanDestinationDir"}, r.Args...)
	// #nosec G204 -- binary comes from the site config
	cmd := exec.CommandContext(ctx, path, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	slog.Info("Running Hugo", logfields.Path(root), slog.String("binary", path))
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrHugoExecution.Wrap(err).WithContext("output", tail(out.String(), 20)).Build()
	}
	slog.Debug("Hugo output", slog.String("output", tail(out.String(), 20)))
	return nil
}

func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
