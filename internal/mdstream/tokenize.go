package mdstream

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Tokenize parses chapter markdown and returns its event stream.
//
// Top-level fenced code blocks that carry an info string become
// start/text/end event runs; everything else is emitted as verbatim
// KindOther regions. Blocks without an info string can never match a
// language tag, so they stay inside the surrounding verbatim region.
// Fenced blocks nested inside containers (lists, blockquotes) are also left
// verbatim: a replacement fragment spliced there could not reproduce the
// container prefixes.
func Tokenize(source []byte) []Event {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var events []Event
	cursor := 0

	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		fcb, ok := child.(*ast.FencedCodeBlock)
		if !ok || fcb.Info == nil {
			continue
		}

		span := fenceSpan(source, fcb)
		if span.openStart < cursor {
			// Overlapping spans should not occur in well-formed parses.
			continue
		}

		if span.openStart > cursor {
			events = append(events, Event{Kind: KindOther, Text: string(source[cursor:span.openStart])})
		}

		events = append(events, Event{
			Kind: KindCodeBlockStart,
			Lang: string(fcb.Language(source)),
			Text: string(source[span.openStart:span.openEnd]),
		})
		for _, line := range splitLines(source[span.openEnd:span.contentEnd]) {
			events = append(events, Event{Kind: KindCodeBlockText, Text: line})
		}
		events = append(events, Event{
			Kind: KindCodeBlockEnd,
			Text: string(source[span.contentEnd:span.blockEnd]),
		})

		cursor = span.blockEnd
	}

	if cursor < len(source) {
		events = append(events, Event{Kind: KindOther, Text: string(source[cursor:])})
	}
	return events
}

// span locates a fenced code block in the raw source, line-aligned.
type span struct {
	openStart  int // start of the opening fence line
	openEnd    int // just past the opening fence line's newline
	contentEnd int // end of the last content line
	blockEnd   int // just past the closing fence line (== contentEnd if unclosed)
}

// fenceSpan computes the raw byte span of a fenced code block. The info
// segment sits on the opening fence line, which anchors the whole block;
// content line segments locate the closing fence.
func fenceSpan(source []byte, fcb *ast.FencedCodeBlock) span {
	var s span

	infoSeg := fcb.Info.Segment
	s.openStart = lineStart(source, infoSeg.Start)
	s.openEnd = lineEnd(source, infoSeg.Stop)

	s.contentEnd = s.openEnd
	if lines := fcb.Lines(); lines.Len() > 0 {
		last := lines.At(lines.Len() - 1)
		s.contentEnd = min(last.Stop, len(source))
	}
	// Realign to a line boundary: segment stops can fall short of the
	// terminator (CRLF endings, trailing padding).
	if s.contentEnd < len(source) && s.contentEnd > s.openEnd && source[s.contentEnd-1] != '\n' {
		s.contentEnd = lineEnd(source, s.contentEnd)
	}

	// The line after the content is the closing fence, unless the block ran
	// unclosed to the end of the document.
	s.blockEnd = s.contentEnd
	if s.contentEnd < len(source) && isFenceLine(source[s.contentEnd:lineEnd(source, s.contentEnd)]) {
		s.blockEnd = lineEnd(source, s.contentEnd)
	}
	return s
}

// isFenceLine reports whether a raw line is a code fence delimiter.
func isFenceLine(line []byte) bool {
	trimmed := strings.TrimLeft(string(line), " ")
	return strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
}

// lineStart returns the index of the first byte of the line containing i.
func lineStart(source []byte, i int) int {
	if i > len(source) {
		i = len(source)
	}
	return bytes.LastIndexByte(source[:i], '\n') + 1
}

// lineEnd returns the index just past the newline of the line containing i,
// or len(source) when the line is unterminated.
func lineEnd(source []byte, i int) int {
	if i >= len(source) {
		return len(source)
	}
	if j := bytes.IndexByte(source[i:], '\n'); j >= 0 {
		return i + j + 1
	}
	return len(source)
}

// splitLines splits raw bytes into lines, keeping the newline terminators so
// the pieces concatenate back to the input.
func splitLines(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var lines []string
	for len(raw) > 0 {
		end := lineEnd(raw, 0)
		lines = append(lines, string(raw[:end]))
		raw = raw[end:]
	}
	return lines
}
