package config

// Notes:
// - book.toml parsing deliberately tolerates unknown tables (the file is
//   shared with every other tool in the build); the standalone YAML file is
//   strict because it belongs to this preprocessor alone.

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	d2png "github.com/alnah/go-d2png"
)

func writeBookToml(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "book.toml"), []byte(content), 0o600); err != nil {
		t.Fatalf("writing book.toml: %v", err)
	}
	return dir
}

// ---------------------------------------------------------------------------
// TestLoadBook - book.toml parsing
// ---------------------------------------------------------------------------

func TestLoadBook_FullTable(t *testing.T) {
	t.Parallel()

	dir := writeBookToml(t, `
[book]
title = "Example"
src = "source"

[preprocessor.d2-png]
path = "/custom/bin/d2"
layout = "elk"
output-dir = "d2-img"
inline = true
theme-id = "102"
dark-theme-id = "200"

[preprocessor.d2-png.fonts]
regular = "r.ttf"
italic = "i.ttf"
bold = "b.ttf"

[output.html]
default-theme = "navy"
`)

	book, err := LoadBook(dir)
	if err != nil {
		t.Fatalf("LoadBook() error = %v", err)
	}

	if book.Src != "source" {
		t.Errorf("Src = %q, want %q", book.Src, "source")
	}
	if book.SourceDir() != filepath.Join(dir, "source") {
		t.Errorf("SourceDir() = %q", book.SourceDir())
	}

	s := book.Settings
	if s.Path != "/custom/bin/d2" || s.Layout != "elk" || s.OutputDir != "d2-img" {
		t.Errorf("settings = %+v", s)
	}
	if !s.Inline || s.ThemeID != "102" || s.DarkThemeID != "200" {
		t.Errorf("settings = %+v", s)
	}
	if s.Fonts == nil || s.Fonts.Regular != "r.ttf" || s.Fonts.Italic != "i.ttf" || s.Fonts.Bold != "b.ttf" {
		t.Errorf("fonts = %+v", s.Fonts)
	}
}

func TestLoadBook_MissingTableUsesDefaults(t *testing.T) {
	t.Parallel()

	dir := writeBookToml(t, "[book]\ntitle = \"Example\"\n")

	book, err := LoadBook(dir)
	if err != nil {
		t.Fatalf("LoadBook() error = %v", err)
	}
	if book.Src != "src" {
		t.Errorf("Src = %q, want default %q", book.Src, "src")
	}
	if book.Settings.Path != d2png.DefaultRendererPath {
		t.Errorf("Path = %q, want default", book.Settings.Path)
	}
	if book.Settings.OutputDir != d2png.DefaultOutputDir {
		t.Errorf("OutputDir = %q, want default", book.Settings.OutputDir)
	}
	if book.Settings.Inline {
		t.Error("Inline should default to false")
	}
}

func TestLoadBook_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadBook(t.TempDir())
	if !errors.Is(err, ErrBookNotFound) {
		t.Errorf("LoadBook() error = %v, want ErrBookNotFound", err)
	}
}

func TestLoadBook_InvalidTOML(t *testing.T) {
	t.Parallel()

	dir := writeBookToml(t, "[book\n")

	_, err := LoadBook(dir)
	if !errors.Is(err, ErrBookParse) {
		t.Errorf("LoadBook() error = %v, want ErrBookParse", err)
	}
}

// ---------------------------------------------------------------------------
// TestLoadSettingsYAML - Standalone override file
// ---------------------------------------------------------------------------

func TestLoadSettingsYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "d2png.yaml")
	content := "path: /opt/d2\nlayout: dagre\ninline: true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing settings: %v", err)
	}

	s, err := LoadSettingsYAML(path)
	if err != nil {
		t.Fatalf("LoadSettingsYAML() error = %v", err)
	}
	if s.Path != "/opt/d2" || s.Layout != "dagre" || !s.Inline {
		t.Errorf("settings = %+v", s)
	}
	if s.OutputDir != d2png.DefaultOutputDir {
		t.Errorf("OutputDir = %q, want default applied", s.OutputDir)
	}
}

func TestLoadSettingsYAML_RejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "d2png.yaml")
	if err := os.WriteFile(path, []byte("pathh: typo\n"), 0o600); err != nil {
		t.Fatalf("writing settings: %v", err)
	}

	_, err := LoadSettingsYAML(path)
	if !errors.Is(err, ErrSettingsParse) {
		t.Errorf("LoadSettingsYAML() error = %v, want ErrSettingsParse", err)
	}
}

func TestLoadSettingsYAML_Missing(t *testing.T) {
	t.Parallel()

	_, err := LoadSettingsYAML(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrSettingsNotFound) {
		t.Errorf("LoadSettingsYAML() error = %v, want ErrSettingsNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// TestSettings - Conversion
// ---------------------------------------------------------------------------

func TestSettings_RenderConfig(t *testing.T) {
	t.Parallel()

	s := Settings{
		Path:        "d2",
		Layout:      "elk",
		OutputDir:   "img",
		Inline:      true,
		ThemeID:     "1",
		DarkThemeID: "2",
		Fonts:       &Fonts{Regular: "r", Italic: "i", Bold: "b"},
	}

	cfg := s.RenderConfig()
	if cfg.Path != "d2" || cfg.Layout != "elk" || cfg.OutputDir != "img" || !cfg.Inline {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.ThemeID != "1" || cfg.DarkThemeID != "2" {
		t.Errorf("themes = %q, %q", cfg.ThemeID, cfg.DarkThemeID)
	}
	if cfg.Fonts == nil || cfg.Fonts.Bold != "b" {
		t.Errorf("fonts = %+v", cfg.Fonts)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("converted config invalid: %v", err)
	}
}
