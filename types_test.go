package d2png

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestSection - mdBook-style rendering
// ---------------------------------------------------------------------------

func TestSection_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		section Section
		want    string
	}{
		{name: "nil section", section: nil, want: ""},
		{name: "single level", section: Section{1}, want: "1."},
		{name: "two levels", section: Section{1, 2}, want: "1.2."},
		{name: "three levels", section: Section{10, 2, 3}, want: "10.2.3."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.section.String(); got != tt.want {
				t.Errorf("Section(%v).String() = %q, want %q", tt.section, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRenderConfig - Validation
// ---------------------------------------------------------------------------

func TestRenderConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     RenderConfig
		wantErr error
	}{
		{
			name:    "defaults are valid",
			cfg:     *DefaultRenderConfig(),
			wantErr: nil,
		},
		{
			name:    "empty renderer path",
			cfg:     RenderConfig{OutputDir: "d2"},
			wantErr: ErrEmptyRendererPath,
		},
		{
			name:    "empty output dir",
			cfg:     RenderConfig{Path: "d2"},
			wantErr: ErrInvalidOutputDir,
		},
		{
			name:    "output dir with separator",
			cfg:     RenderConfig{Path: "d2", OutputDir: "a/b"},
			wantErr: ErrInvalidOutputDir,
		},
		{
			name:    "output dir with backslash",
			cfg:     RenderConfig{Path: "d2", OutputDir: `a\b`},
			wantErr: ErrInvalidOutputDir,
		},
		{
			name: "partial fonts",
			cfg: RenderConfig{
				Path:      "d2",
				OutputDir: "d2",
				Fonts:     &Fonts{Regular: "r.ttf"},
			},
			wantErr: ErrIncompleteFonts,
		},
		{
			name: "complete fonts",
			cfg: RenderConfig{
				Path:      "d2",
				OutputDir: "d2",
				Fonts:     &Fonts{Regular: "r.ttf", Italic: "i.ttf", Bold: "b.ttf"},
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestArtifact - Descriptor variants
// ---------------------------------------------------------------------------

func TestArtifact_URL(t *testing.T) {
	t.Parallel()

	var file Artifact = FileArtifact{RelPath: "../d2/1.1.png"}
	if file.URL() != "../d2/1.1.png" {
		t.Errorf("FileArtifact.URL() = %q", file.URL())
	}

	var inline Artifact = InlineArtifact{DataURI: "data:image/png;base64,AAAA"}
	if inline.URL() != "data:image/png;base64,AAAA" {
		t.Errorf("InlineArtifact.URL() = %q", inline.URL())
	}
}
