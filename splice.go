package d2png

import (
	"fmt"

	"github.com/alnah/go-d2png/internal/mdstream"
)

// imageFragment builds the replacement for a rendered diagram block: one
// paragraph containing one image with empty alt text and no title. The shape
// is identical for file and inline artifacts, so downstream consumers never
// need to distinguish rendering modes.
func imageFragment(artifact Artifact) []mdstream.Event {
	return []mdstream.Event{
		{Kind: mdstream.KindOther, Text: fmt.Sprintf("![](%s)\n", artifact.URL())},
	}
}
