// Package stream drives only the tokenizer and exposes its output as a flat,
// coalesced event sequence, bypassing tree construction entirely.
package stream

import (
	"github.com/arborist-go/html5tree/encoding"
	"github.com/arborist-go/html5tree/tokenizer"
)

// Kind identifies the shape of an Event.
type Kind int

// Event kinds emitted by the stream.
const (
	KindStartTag Kind = iota
	KindEndTag
	KindText
	KindComment
	KindDoctype
)

func (k Kind) String() string {
	switch k {
	case KindStartTag:
		return "start"
	case KindEndTag:
		return "end"
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	case KindDoctype:
		return "doctype"
	default:
		return "unknown"
	}
}

// Event is a single item in the flat token sequence.
type Event struct {
	Kind Kind

	// Name is the tag name (start/end tags) or the DOCTYPE name.
	Name string

	// Attrs holds attributes, start tags only.
	Attrs map[string]string

	// Data is the text payload for text and comment events.
	Data string

	// PublicID and SystemID are populated for doctype events.
	PublicID string
	SystemID string
}

// Run tokenizes html and returns the resulting events as a coalesced,
// in-memory sequence. Adjacent text tokens are merged into a single
// KindText event, matching the coalescing guarantee of the tree builder's
// own text-node merging.
func Run(html string, opts ...Option) []Event {
	newConfig(opts...)
	lex := tokenizer.New(html)

	var events []Event
	var pendingText string
	flush := func() {
		if pendingText != "" {
			events = append(events, Event{Kind: KindText, Data: pendingText})
			pendingText = ""
		}
	}

	for {
		tok := lex.Next()
		switch tok.Type {
		case tokenizer.Character:
			pendingText += tok.Data
			continue
		case tokenizer.StartTag:
			flush()
			events = append(events, Event{Kind: KindStartTag, Name: tok.Name, Attrs: tokenizer.AttrsToMap(tok.Attrs)})
			if tok.SelfClosing {
				events = append(events, Event{Kind: KindEndTag, Name: tok.Name})
			}
		case tokenizer.EndTag:
			flush()
			events = append(events, Event{Kind: KindEndTag, Name: tok.Name})
		case tokenizer.Comment:
			flush()
			events = append(events, Event{Kind: KindComment, Data: tok.Data})
		case tokenizer.DOCTYPE:
			flush()
			events = append(events, Event{
				Kind:     KindDoctype,
				Name:     tok.Name,
				PublicID: derefString(tok.PublicID),
				SystemID: derefString(tok.SystemID),
			})
		case tokenizer.Error:
			continue
		case tokenizer.EOF:
			flush()
			return events
		}
	}
}

// Stream returns a channel of events, closed once the input is exhausted.
// It is a thin adapter over Run for callers that prefer to range over a
// channel; Run collects every event before the first one is sent.
func Stream(html string, opts ...Option) <-chan Event {
	ch := make(chan Event)
	go func() {
		defer close(ch)
		for _, ev := range Run(html, opts...) {
			ch <- ev
		}
	}()
	return ch
}

// StreamBytes decodes raw bytes per the HTML5 encoding-sniffing algorithm
// (see the encoding package) and streams the decoded text.
func StreamBytes(html []byte, opts ...Option) <-chan Event {
	cfg := newConfig(opts...)
	decoded, _, err := encoding.Decode(html, cfg.encoding)
	if err != nil {
		ch := make(chan Event)
		close(ch)
		return ch
	}
	return Stream(decoded, opts...)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
