// Package mdstream turns chapter markdown into a flat event stream and back.
//
// The stream isolates fenced code blocks as start/text/end events while
// carrying every other region of the document verbatim, so a transformer can
// replace individual blocks without touching the surrounding structure.
// Serializing an unmodified stream reproduces the input byte for byte.
package mdstream

// Kind identifies the type of an Event.
type Kind uint8

// Event kinds emitted by Tokenize.
const (
	// KindOther carries a verbatim region of the document.
	KindOther Kind = iota
	// KindCodeBlockStart marks the opening fence line of a fenced code block.
	KindCodeBlockStart
	// KindCodeBlockText carries one line of fenced code block content.
	KindCodeBlockText
	// KindCodeBlockEnd marks the closing fence line of a fenced code block.
	KindCodeBlockEnd
)

// Event is one element of the tokenized document.
//
// Text always holds the raw source of the event (including line endings),
// which is what Serialize concatenates. Lang is only set on
// KindCodeBlockStart and holds the language tag resolved from the source
// bytes, so matching on it is independent of how the parser represents
// string ownership internally.
type Event struct {
	Kind Kind
	Lang string
	Text string
}

// Serialize reassembles an event stream into markdown by concatenating the
// raw text of every event.
func Serialize(events []Event) string {
	var n int
	for _, ev := range events {
		n += len(ev.Text)
	}
	buf := make([]byte, 0, n)
	for _, ev := range events {
		buf = append(buf, ev.Text...)
	}
	return string(buf)
}
