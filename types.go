package d2png

import (
	"fmt"
	"strings"

	"github.com/alnah/go-d2png/internal/fileutil"
)

// Default render configuration values.
const (
	// DefaultRendererPath is the d2 executable looked up on PATH.
	DefaultRendererPath = "d2"
	// DefaultOutputDir is the directory under the book source root that
	// receives rendered PNG files.
	DefaultOutputDir = "d2"
)

// RenderConfig holds the renderer settings for one run. It is built once,
// shared read-only across all diagrams and chapters, and never mutated
// during a document pass.
type RenderConfig struct {
	Path        string // d2 executable path (default "d2")
	Layout      string // layout engine, e.g. "dagre" or "elk" (optional)
	OutputDir   string // bare directory name under the source root
	Inline      bool   // embed PNGs as base64 data URIs instead of files
	ThemeID     string // optional theme identifier
	DarkThemeID string // optional dark theme identifier
	Fonts       *Fonts // optional font overrides (all three required)
}

// Fonts overrides the renderer's fonts. Only TTF fonts are valid.
type Fonts struct {
	Regular string
	Italic  string
	Bold    string
}

// DefaultRenderConfig returns a config with default values: d2 on PATH,
// file-mode output into the "d2" directory, renderer-default layout.
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		Path:      DefaultRendererPath,
		OutputDir: DefaultOutputDir,
	}
}

// Validate checks that the config is usable.
func (c *RenderConfig) Validate() error {
	if c.Path == "" {
		return ErrEmptyRendererPath
	}
	if err := fileutil.ValidateDirName(c.OutputDir); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidOutputDir, c.OutputDir, err)
	}
	if c.Fonts != nil {
		if c.Fonts.Regular == "" || c.Fonts.Italic == "" || c.Fonts.Bold == "" {
			return ErrIncompleteFonts
		}
	}
	return nil
}

// Section is a hierarchical chapter number, e.g. {1, 2} for chapter 1.2.
// A nil Section means the chapter is unnumbered (prefix, suffix, or draft).
type Section []int

// String renders the section in mdBook style with a trailing dot per level:
// Section{1, 2} -> "1.2.". An empty section renders as "".
func (s Section) String() string {
	var b strings.Builder
	for _, n := range s {
		fmt.Fprintf(&b, "%d.", n)
	}
	return b.String()
}

// Chapter is one document to process.
type Chapter struct {
	Name    string  // human-readable chapter name, used in error reports
	Path    string  // chapter file path relative to the book source root
	Section Section // hierarchical section number (nil if unnumbered)
	Content string  // chapter markdown
}

// RenderRequest is the immutable snapshot handed to the backend for one
// diagram. It is owned solely by the Render call that consumes it.
type RenderRequest struct {
	Chapter string  // chapter name
	Path    string  // chapter path relative to the source root
	Section Section // chapter section number
	Index   int     // 1-based diagram index within the chapter
	Source  string  // d2 diagram source
}

// Artifact describes one rendered diagram: either a file reference relative
// to the chapter, or the image bytes inlined as a data URI. URL returns the
// value an image element should reference.
type Artifact interface {
	URL() string
}

// FileArtifact references a PNG file relative to the chapter's location.
type FileArtifact struct {
	RelPath string
}

// URL returns the relative path to the PNG file.
func (a FileArtifact) URL() string { return a.RelPath }

// InlineArtifact embeds the PNG bytes as a base64 data URI.
type InlineArtifact struct {
	DataURI string
}

// URL returns the data URI.
func (a InlineArtifact) URL() string { return a.DataURI }
