package d2png

import (
	"fmt"
	"path"
	"strings"
)

// artifactExt is the image format produced by the renderer. The format flag
// is never passed explicitly: d2 infers it from the destination extension.
const artifactExt = ".png"

// artifactFilename derives the deterministic file name for a diagram from
// its section number and 1-based index: "1.2.3.png" for diagram 3 of chapter
// 1.2, "3.png" when the chapter is unnumbered. The same section/index pair
// always yields the same name, which is what keeps the shared output
// directory collision-free.
func artifactFilename(section Section, index int) string {
	return fmt.Sprintf("%s%d%s", section, index, artifactExt)
}

// relativeArtifactPath computes the reference from a chapter's location to
// an artifact in the shared output directory. The prefix contains exactly
// one ".." per directory level between the chapter and the source root, so a
// root chapter yields "outputDir/filename" and a chapter nested N levels
// deep yields N parent segments. Always slash-separated.
func relativeArtifactPath(chapterPath, outputDir, filename string) string {
	// Normalize Windows-style chapter paths; references are always emitted
	// with forward slashes.
	dir := path.Dir(strings.ReplaceAll(chapterPath, `\`, "/"))

	depth := 0
	if dir != "." && dir != "" {
		depth = strings.Count(dir, "/") + 1
	}

	parts := make([]string, 0, depth+2)
	for i := 0; i < depth; i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, outputDir, filename)
	return path.Join(parts...)
}
