package d2png

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-d2png/internal/fileutil"
	"github.com/alnah/go-d2png/internal/process"
)

// defaultTimeout bounds a single renderer invocation.
const defaultTimeout = 30 * time.Second

// pngMIMEPrefix is the data URI prefix for inline artifacts.
const pngMIMEPrefix = "data:image/png;base64,"

// Backend converts one diagram into one artifact by driving the external d2
// process. A Backend is safe to share across chapters: it only reads its
// config and writes under the output directory.
type Backend struct {
	cfg       *RenderConfig
	sourceDir string // absolute path to the book source root
	timeout   time.Duration
}

// BackendOption configures a Backend.
type BackendOption func(*Backend)

// WithTimeout sets the bounded wait for a single renderer invocation.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) BackendOption {
	if d <= 0 {
		panic("d2png: WithTimeout duration must be positive")
	}
	return func(b *Backend) {
		b.timeout = d
	}
}

// NewBackend creates a Backend writing artifacts under
// sourceDir/cfg.OutputDir.
func NewBackend(cfg *RenderConfig, sourceDir string, opts ...BackendOption) *Backend {
	b := &Backend{
		cfg:       cfg,
		sourceDir: sourceDir,
		timeout:   defaultTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Render compiles one diagram and returns its artifact descriptor.
//
// The output directory is ensured first (idempotent). The renderer receives
// the diagram source on stdin and writes the PNG directly to the destination
// path; there is no retry on failure. Errors other than ErrOutputDir are
// per-diagram and carry the chapter name and diagram index.
func (b *Backend) Render(ctx context.Context, req RenderRequest) (Artifact, error) {
	outputPath := filepath.Join(b.sourceDir, b.cfg.OutputDir)
	if err := fileutil.EnsureDir(outputPath); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOutputDir, outputPath, err)
	}

	filename := artifactFilename(req.Section, req.Index)
	dest := filepath.Join(outputPath, filename)

	if err := b.runRenderer(ctx, req, dest); err != nil {
		return nil, err
	}

	if b.cfg.Inline {
		raw, err := os.ReadFile(dest) // #nosec G304 -- path derived from validated config
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrArtifactRead, dest, err)
		}
		return InlineArtifact{DataURI: pngMIMEPrefix + base64.StdEncoding.EncodeToString(raw)}, nil
	}

	return FileArtifact{RelPath: relativeArtifactPath(req.Path, b.cfg.OutputDir, filename)}, nil
}

// buildArgs assembles the renderer argument list: optional font overrides,
// layout and theme flags, then "-" (read the diagram from stdin) and the
// destination path as the two trailing positionals. No format flag: d2
// infers PNG from the extension.
func (b *Backend) buildArgs(dest string) []string {
	var args []string
	if f := b.cfg.Fonts; f != nil {
		args = append(args,
			"--font-regular", f.Regular,
			"--font-italic", f.Italic,
			"--font-bold", f.Bold,
		)
	}
	if b.cfg.Layout != "" {
		args = append(args, "--layout", b.cfg.Layout)
	}
	if b.cfg.ThemeID != "" {
		args = append(args, "--theme", b.cfg.ThemeID)
	}
	if b.cfg.DarkThemeID != "" {
		args = append(args, "--dark-theme", b.cfg.DarkThemeID)
	}
	return append(args, "-", dest)
}

// runRenderer spawns the d2 process, feeds it the diagram source, and waits
// under the configured timeout. On timeout or context cancellation the whole
// process group is killed and the wait drained, so pipes are released on
// every exit path.
func (b *Backend) runRenderer(ctx context.Context, req RenderRequest, dest string) error {
	cmd := exec.Command(b.cfg.Path, b.buildArgs(dest)...) // #nosec G204 -- renderer path comes from validated config
	cmd.Stdin = strings.NewReader(req.Source)
	cmd.Stdout = io.Discard

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	process.SetGroup(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrRendererNotFound, b.cfg.Path, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	timer := time.NewTimer(b.timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		process.KillGroup(cmd.Process.Pid)
		<-done
		return ctx.Err()

	case <-timer.C:
		process.KillGroup(cmd.Process.Pid)
		<-done
		return fmt.Errorf("%w after %s (%s, #%d)", ErrRendererTimeout, b.timeout, req.Chapter, req.Index)

	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w (%s, #%d):%s",
				ErrRendererExit, req.Chapter, req.Index, indentLines(stderr.String()))
		}
		return nil
	}
}

// indentLines prefixes every line of the renderer's stderr for readability
// inside a wrapped error message. Empty stderr yields an empty string so the
// message ends cleanly.
func indentLines(s string) string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return ""
	}
	return strings.ReplaceAll("\n"+s, "\n", "\n  ")
}
