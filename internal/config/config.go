// Package config loads preprocessor settings from a book.toml
// [preprocessor.d2-png] table, with an optional strict YAML override file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	d2png "github.com/alnah/go-d2png"
	"github.com/alnah/go-d2png/internal/yamlutil"
)

// PreprocessorKey is the table name in book.toml for this preprocessor.
const PreprocessorKey = "d2-png"

// defaultSrcDir is mdBook's default source directory.
const defaultSrcDir = "src"

// Sentinel errors for config operations.
var (
	ErrBookNotFound     = errors.New("book.toml not found")
	ErrBookParse        = errors.New("failed to parse book.toml")
	ErrSettingsNotFound = errors.New("settings file not found")
	ErrSettingsParse    = errors.New("failed to parse settings file")
)

// Fonts mirrors the [preprocessor.d2-png.fonts] table.
type Fonts struct {
	Regular string `toml:"regular" yaml:"regular"`
	Italic  string `toml:"italic" yaml:"italic"`
	Bold    string `toml:"bold" yaml:"bold"`
}

// Settings mirrors the [preprocessor.d2-png] table of book.toml. Zero values
// mean "not set"; Defaults fills them before use.
type Settings struct {
	Path        string `toml:"path" yaml:"path"`
	Layout      string `toml:"layout" yaml:"layout"`
	OutputDir   string `toml:"output-dir" yaml:"output-dir"`
	Inline      bool   `toml:"inline" yaml:"inline"`
	ThemeID     string `toml:"theme-id" yaml:"theme-id"`
	DarkThemeID string `toml:"dark-theme-id" yaml:"dark-theme-id"`
	Fonts       *Fonts `toml:"fonts" yaml:"fonts"`
}

// Defaults fills unset fields with the library defaults.
func (s *Settings) Defaults() {
	if s.Path == "" {
		s.Path = d2png.DefaultRendererPath
	}
	if s.OutputDir == "" {
		s.OutputDir = d2png.DefaultOutputDir
	}
}

// RenderConfig converts settings into the library's render configuration.
func (s *Settings) RenderConfig() *d2png.RenderConfig {
	cfg := &d2png.RenderConfig{
		Path:        s.Path,
		Layout:      s.Layout,
		OutputDir:   s.OutputDir,
		Inline:      s.Inline,
		ThemeID:     s.ThemeID,
		DarkThemeID: s.DarkThemeID,
	}
	if s.Fonts != nil {
		cfg.Fonts = &d2png.Fonts{
			Regular: s.Fonts.Regular,
			Italic:  s.Fonts.Italic,
			Bold:    s.Fonts.Bold,
		}
	}
	return cfg
}

// Book is the subset of book.toml this preprocessor needs.
type Book struct {
	Root     string // absolute path to the book root (dir holding book.toml)
	Src      string // source directory name, default "src"
	Settings Settings
}

// SourceDir returns the absolute path to the book's source directory.
func (b *Book) SourceDir() string {
	return filepath.Join(b.Root, b.Src)
}

// bookToml maps the parts of book.toml we read. Unknown tables and keys are
// ignored: book.toml carries configuration for every tool in the build.
type bookToml struct {
	Book struct {
		Src string `toml:"src"`
	} `toml:"book"`
	Preprocessor struct {
		D2PNG *Settings `toml:"d2-png"`
	} `toml:"preprocessor"`
}

// LoadBook reads rootDir/book.toml. A missing [preprocessor.d2-png] table is
// not an error; defaults apply.
func LoadBook(rootDir string) (*Book, error) {
	path := filepath.Join(rootDir, "book.toml")

	var raw bookToml
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrBookNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrBookParse, err)
	}

	book := &Book{
		Root: rootDir,
		Src:  raw.Book.Src,
	}
	if book.Src == "" {
		book.Src = defaultSrcDir
	}
	if raw.Preprocessor.D2PNG != nil {
		book.Settings = *raw.Preprocessor.D2PNG
	}
	book.Settings.Defaults()

	return book, nil
}

// LoadSettingsYAML reads a standalone settings file, rejecting unknown keys.
// It overrides whatever book.toml provided.
func LoadSettingsYAML(path string) (*Settings, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- settings path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSettingsNotFound, path)
		}
		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	var s Settings
	if err := yamlutil.UnmarshalStrict(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSettingsParse, err)
	}
	s.Defaults()
	return &s, nil
}
