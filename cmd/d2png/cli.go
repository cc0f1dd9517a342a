package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	d2png "github.com/alnah/go-d2png"
	"github.com/alnah/go-d2png/internal/config"
	"github.com/alnah/go-d2png/internal/fileutil"
	"github.com/alnah/go-d2png/internal/summary"
)

// Sentinel errors for CLI operations.
var (
	ErrChapterRead  = errors.New("failed to read chapter")
	ErrChapterWrite = errors.New("failed to write processed chapter")
)

// Warning and summary styles.
var (
	warnStyle    = color.New(color.FgYellow)
	successStyle = color.New(color.FgGreen)
)

// run loads the book, processes every chapter from the SUMMARY.md outline,
// and writes the processed tree under the destination directory.
func run(flags *cliFlags, stderr io.Writer) error {
	if flags.bookRoot == "" { // --version already handled
		return nil
	}

	book, err := config.LoadBook(flags.bookRoot)
	if err != nil {
		return err
	}

	settings := &book.Settings
	if flags.config != "" {
		settings, err = config.LoadSettingsYAML(flags.config)
		if err != nil {
			return err
		}
	}
	applyFlagOverrides(settings, flags)

	cfg := settings.RenderConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	// A bare renderer name is resolved on PATH by the backend; an explicit
	// file path is checked up front so the run fails before any chapter work.
	if fileutil.IsFilePath(cfg.Path) && !fileutil.FileExists(cfg.Path) {
		return fmt.Errorf("%w: %q", d2png.ErrRendererNotFound, cfg.Path)
	}

	srcDir := book.SourceDir()
	chapters, err := summary.Load(filepath.Join(srcDir, "SUMMARY.md"))
	if err != nil {
		return err
	}

	var backendOpts []d2png.BackendOption
	if flags.changed("timeout") {
		if flags.renderer.timeout <= 0 {
			return fmt.Errorf("--timeout must be positive, got %s", flags.renderer.timeout)
		}
		backendOpts = append(backendOpts, d2png.WithTimeout(flags.renderer.timeout))
	}
	backend := d2png.NewBackend(cfg, srcDir, backendOpts...)

	failures := 0
	proc := d2png.NewProcessor(backend, d2png.WithWarnHandler(func(err error) {
		failures++
		warnStyle.Fprintf(stderr, "warning: %v\n", err)
	}))

	var previewer *d2png.HTMLPreviewer
	if flags.output.previewDir != "" {
		previewer = d2png.NewHTMLPreviewer()
	}

	destDir := flags.output.destDir
	if !filepath.IsAbs(destDir) {
		destDir = filepath.Join(flags.bookRoot, destDir)
	}

	processed := 0
	for _, ch := range chapters {
		if ch.Draft() {
			continue
		}
		if err := processChapter(context.Background(), proc, previewer, flags, srcDir, destDir, ch); err != nil {
			return err
		}
		processed++
		if flags.verbose {
			fmt.Fprintf(stderr, "processed %s\n", ch.Path)
		}
	}

	if !flags.quiet {
		style := successStyle
		if failures > 0 {
			style = warnStyle
		}
		style.Fprintf(stderr, "d2png: %d chapters processed, %d diagram failures\n", processed, failures)
	}
	return nil
}

// processChapter reads one chapter, runs the preprocessor, and writes the
// result (plus an optional HTML preview) under the destination directory.
func processChapter(
	ctx context.Context,
	proc *d2png.Processor,
	previewer *d2png.HTMLPreviewer,
	flags *cliFlags,
	srcDir, destDir string,
	ch summary.Chapter,
) error {
	raw, err := os.ReadFile(filepath.Join(srcDir, filepath.FromSlash(ch.Path))) // #nosec G304 -- path comes from SUMMARY.md
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrChapterRead, ch.Path, err)
	}

	out, err := proc.ProcessChapter(ctx, d2png.Chapter{
		Name:    ch.Name,
		Path:    ch.Path,
		Section: d2png.Section(ch.Number),
		Content: string(raw),
	})
	if err != nil {
		return err
	}

	destPath := filepath.Join(destDir, filepath.FromSlash(ch.Path))
	if err := writeFile(destPath, []byte(out)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrChapterWrite, ch.Path, err)
	}

	if previewer != nil {
		html, err := previewer.Render(ctx, ch.Name, out)
		if err != nil {
			return err
		}
		previewPath := filepath.Join(flags.output.previewDir, htmlName(ch.Path))
		if err := writeFile(previewPath, []byte(html)); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrChapterWrite, previewPath, err)
		}
	}
	return nil
}

// writeFile writes data, creating parent directories as needed.
func writeFile(path string, data []byte) error {
	if err := fileutil.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// htmlName swaps a chapter's .md extension for .html, keeping its subpath.
func htmlName(chapterPath string) string {
	p := filepath.FromSlash(chapterPath)
	return strings.TrimSuffix(p, filepath.Ext(p)) + ".html"
}

// applyFlagOverrides lets explicit command-line flags win over the book
// configuration.
func applyFlagOverrides(s *config.Settings, flags *cliFlags) {
	if flags.changed("renderer") {
		s.Path = flags.renderer.renderer
	}
	if flags.changed("layout") {
		s.Layout = flags.renderer.layout
	}
	if flags.changed("output-dir") {
		s.OutputDir = flags.renderer.outputDir
	}
	if flags.changed("theme") {
		s.ThemeID = flags.renderer.theme
	}
	if flags.changed("dark-theme") {
		s.DarkThemeID = flags.renderer.darkTheme
	}
	if flags.changed("inline") {
		s.Inline = flags.renderer.inline
	}
}
