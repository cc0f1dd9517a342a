package d2png

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-d2png/internal/mdstream"
)

// diagramLanguage is the fenced-block language tag recognized as a diagram.
const diagramLanguage = "d2"

// renderer abstracts the render backend to enable testing without real
// subprocesses.
type renderer interface {
	Render(ctx context.Context, req RenderRequest) (Artifact, error)
}

// Compile-time interface implementation check.
var _ renderer = (*Backend)(nil)

// WarnFunc receives per-diagram render failures. The failed block is dropped
// from the output; the chapter pass continues.
type WarnFunc func(error)

// Processor rewrites chapters by replacing fenced d2 blocks with rendered
// images. Create with NewProcessor; a Processor is stateless across chapters
// and may be reused for a whole book.
type Processor struct {
	backend renderer
	warn    WarnFunc
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithWarnHandler sets the handler for per-diagram render failures.
// The default handler writes to stderr.
func WithWarnHandler(fn WarnFunc) ProcessorOption {
	if fn == nil {
		panic("d2png: WithWarnHandler requires a non-nil handler")
	}
	return func(p *Processor) {
		p.warn = fn
	}
}

// NewProcessor creates a Processor that renders through backend.
func NewProcessor(backend *Backend, opts ...ProcessorOption) *Processor {
	p := &Processor{
		backend: backend,
		warn:    func(err error) { fmt.Fprintln(os.Stderr, err) },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessChapter runs one chapter through the scanner and returns the
// rewritten markdown. Content outside recognized d2 blocks is reproduced
// byte for byte. Per-diagram failures go to the warn handler; only fatal
// errors (output directory creation, context cancellation) are returned.
func (p *Processor) ProcessChapter(ctx context.Context, ch Chapter) (string, error) {
	events := mdstream.Tokenize([]byte(ch.Content))

	scanner := newBlockScanner(p.backend, ch, p.warn)
	out := make([]mdstream.Event, 0, len(events))

	for _, ev := range events {
		emitted, err := scanner.processEvent(ctx, ev)
		if err != nil {
			return "", err
		}
		out = append(out, emitted...)
	}

	return mdstream.Serialize(out), nil
}

// blockScanner is the finite-state stream transformer for one chapter pass.
// It holds the scan state (in-block flag, content buffer, running diagram
// index) explicitly and is discarded after the pass.
type blockScanner struct {
	backend renderer
	chapter Chapter
	warn    WarnFunc

	inBlock bool
	buf     strings.Builder
	index   int
}

func newBlockScanner(backend renderer, chapter Chapter, warn WarnFunc) *blockScanner {
	return &blockScanner{
		backend: backend,
		chapter: chapter,
		warn:    warn,
	}
}

// processEvent advances the scanner by one event and returns the events to
// emit: zero while inside a diagram block, the replacement fragment at block
// end, or the event itself passed through.
func (s *blockScanner) processEvent(ctx context.Context, ev mdstream.Event) ([]mdstream.Event, error) {
	switch {
	case !s.inBlock && isDiagramStart(ev):
		s.startBlock()
		return nil, nil

	case s.inBlock && ev.Kind == mdstream.KindCodeBlockText:
		s.buf.WriteString(ev.Text)
		return nil, nil

	case s.inBlock && ev.Kind == mdstream.KindCodeBlockEnd:
		return s.endBlock(ctx)

	default:
		// Includes unexpected structural events while inside a block: pass
		// them through without touching the buffer. Should not occur with
		// well-formed input.
		return []mdstream.Event{ev}, nil
	}
}

// isDiagramStart reports whether an event opens a fenced block tagged with
// the diagram language. The comparison uses the resolved tag content, so
// recognition does not depend on the upstream parser's string representation.
func isDiagramStart(ev mdstream.Event) bool {
	return ev.Kind == mdstream.KindCodeBlockStart && ev.Lang == diagramLanguage
}

// startBlock enters a diagram block. The index increments here, on block
// open, so a later render failure never shifts the numbering of subsequent
// diagrams.
func (s *blockScanner) startBlock() {
	s.inBlock = true
	s.buf.Reset()
	s.index++
}

// endBlock finalizes the accumulated diagram: render it and emit the image
// fragment, or report the failure and emit nothing.
func (s *blockScanner) endBlock(ctx context.Context) ([]mdstream.Event, error) {
	s.inBlock = false

	req := RenderRequest{
		Chapter: s.chapter.Name,
		Path:    s.chapter.Path,
		Section: s.chapter.Section,
		Index:   s.index,
		Source:  s.buf.String(),
	}

	artifact, err := s.backend.Render(ctx, req)
	if err != nil {
		if errors.Is(err, ErrOutputDir) || ctx.Err() != nil {
			return nil, err
		}
		s.warn(err)
		return nil, nil
	}

	return imageFragment(artifact), nil
}
