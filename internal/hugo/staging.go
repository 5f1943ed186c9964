package hugo

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/chenyuan/blogsite/internal/logfields"
)

// buildRoot is where stages write: the staging dir during a build.
func (g *Generator) buildRoot() string {
	if g.stageDir != "" {
		return g.stageDir
	}
	return g.outputDir
}

// beginStaging creates a fresh sibling staging directory (<output>_stage).
// Module mounts are relative paths, so the staging dir and the output dir
// must share a parent. Unless output.clean is set, Hugo's resource cache is
// carried over from the previous output.
func (g *Generator) beginStaging() error {
	stage := g.outputDir + "_stage"
	if err := os.RemoveAll(stage); err != nil {
		return fmt.Errorf("remove stale staging dir: %w", err)
	}
	if err := os.MkdirAll(stage, 0o750); err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	g.stageDir = stage
	if !g.config.Output.Clean {
		prev := filepath.Join(g.outputDir, "resources")
		if fi, err := os.Stat(prev); err == nil && fi.IsDir() {
			if err := os.Rename(prev, filepath.Join(stage, "resources")); err != nil {
				slog.Debug("Could not carry over resource cache", logfields.Error(err))
			}
		}
	}
	slog.Debug("Initialized staging directory", slog.String("staging", stage), slog.String("final", g.outputDir))
	return nil
}

// finalizeStaging swaps the staging dir into place: output -> output.prev,
// staging -> output, then drops the backup.
func (g *Generator) finalizeStaging() error {
	if g.stageDir == "" {
		return fmt.Errorf("no staging directory initialized")
	}
	defer func() { g.stageDir = "" }()
	if _, err := os.Stat(g.stageDir); err != nil {
		return fmt.Errorf("staging directory missing: %w", err)
	}

	prev := g.outputDir + ".prev"
	if err := os.RemoveAll(prev); err != nil {
		return fmt.Errorf("remove old backup: %w", err)
	}
	hadOutput := false
	if _, err := os.Stat(g.outputDir); err == nil {
		if err := os.Rename(g.outputDir, prev); err != nil {
			return fmt.Errorf("backup existing output: %w", err)
		}
		hadOutput = true
	}
	if err := os.Rename(g.stageDir, g.outputDir); err != nil {
		if hadOutput {
			_ = os.Rename(prev, g.outputDir)
		}
		return fmt.Errorf("promote staging dir: %w", err)
	}
	if hadOutput {
		if err := os.RemoveAll(prev); err != nil {
			slog.Warn("Failed to remove previous output", logfields.Path(prev), logfields.Error(err))
		}
	}
	return nil
}

// abortStaging removes the staging dir after a failed build. The previous
// output stays untouched.
func (g *Generator) abortStaging() {
	if g.stageDir == "" {
		return
	}
	if err := os.RemoveAll(g.stageDir); err != nil {
		slog.Warn("Failed to remove staging directory", logfields.Path(g.stageDir), logfields.Error(err))
	}
	g.stageDir = ""
}
