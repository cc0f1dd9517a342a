// Package d2png converts fenced d2 code blocks in mdBook-style chapters
// into PNG images rendered by the external d2 executable.
//
// # Quick Start
//
// Create a backend and processor, then run each chapter through it:
//
//	cfg := d2png.DefaultRenderConfig()
//	backend := d2png.NewBackend(cfg, "/path/to/book/src")
//	proc := d2png.NewProcessor(backend)
//
//	out, err := proc.ProcessChapter(ctx, d2png.Chapter{
//	    Name:    "Getting Started",
//	    Path:    "guide/start.md",
//	    Section: d2png.Section{1, 2},
//	    Content: content,
//	})
//
// The returned markdown is identical to the input except that every fenced
// block tagged "d2" is replaced by a paragraph containing one image. In file
// mode the image references a PNG written under the shared output directory;
// in inline mode the PNG bytes are embedded as a base64 data URI.
//
// # Processing Pipeline
//
//  1. Chapter markdown is tokenized into an event stream (internal/mdstream)
//  2. A state scanner isolates d2 blocks and accumulates their source
//  3. Each block is compiled by the d2 child process (stdin in, PNG file out)
//  4. The block is spliced out and an image fragment spliced in
//
// # Failure Isolation
//
// A diagram that fails to render is dropped from the output and reported
// through the warn handler (see WithWarnHandler); the rest of the chapter is
// still processed, and diagram numbering is unaffected. Only a failure to
// create the output directory aborts the chapter pass.
//
// # Renderer Requirements
//
// Rendering requires the d2 CLI (https://d2lang.com). The executable path,
// layout engine, themes, and font overrides are set via RenderConfig.
package d2png
