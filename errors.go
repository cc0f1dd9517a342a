package d2png

import "errors"

// Sentinel errors for library operations.
var (
	// Per-diagram failures: reported through the warn handler, the offending
	// block is dropped, and the chapter pass continues.
	ErrRendererNotFound = errors.New("failed to launch d2 renderer")
	ErrRendererTimeout  = errors.New("d2 renderer hung")
	ErrRendererExit     = errors.New("d2 renderer failed")
	ErrArtifactRead     = errors.New("failed to read rendered diagram")

	// Fatal failures: abort the chapter pass.
	ErrOutputDir = errors.New("failed to create output directory")

	// Render config validation errors.
	ErrEmptyRendererPath = errors.New("renderer path cannot be empty")
	ErrInvalidOutputDir  = errors.New("invalid output directory name")
	ErrIncompleteFonts   = errors.New("font overrides require regular, italic, and bold paths")
)
