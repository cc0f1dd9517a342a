package d2png

import (
	"testing"

	"github.com/alnah/go-d2png/internal/mdstream"
)

// ---------------------------------------------------------------------------
// TestImageFragment - Replacement shape
// ---------------------------------------------------------------------------

func TestImageFragment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		artifact Artifact
		want     string
	}{
		{
			name:     "file reference",
			artifact: FileArtifact{RelPath: "../d2/1.2.png"},
			want:     "![](../d2/1.2.png)\n",
		},
		{
			name:     "inline data URI has identical shape",
			artifact: InlineArtifact{DataURI: "data:image/png;base64,AAAA"},
			want:     "![](data:image/png;base64,AAAA)\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			events := imageFragment(tt.artifact)
			if got := mdstream.Serialize(events); got != tt.want {
				t.Errorf("fragment = %q, want %q", got, tt.want)
			}
		})
	}
}
