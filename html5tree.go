// Package html5tree provides a pure Go HTML5 parser implementing the WHATWG HTML5 specification.
//
// html5tree is a complete HTML5 parser that handles malformed HTML exactly as browsers do.
// It passes all 9,000+ tests in the official html5lib-tests suite.
//
// # Basic Usage
//
//	doc, err := html5tree.Parse("<html><body><p>Hello!</p></body></html>")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Query with CSS selectors
//	ps, _ := doc.Query("p")
//	for _, p := range ps {
//		fmt.Println(p.Text())
//	}
//
// # Features
//
//   - 100% HTML5 compliant (WHATWG Living Standard)
//   - Zero dependencies (Go stdlib only)
//   - CSS selector support
//   - Streaming API for memory-efficient processing
//   - Encoding detection per HTML5 spec
//   - Fragment parsing for innerHTML-style use cases
//
// For more information, see https://github.com/arborist-go/html5tree
package html5tree

import (
	"github.com/arborist-go/html5tree/dom"
	"github.com/arborist-go/html5tree/encoding"
	htmlerrors "github.com/arborist-go/html5tree/errors"
	"github.com/arborist-go/html5tree/serialize"
	"github.com/arborist-go/html5tree/tokenizer"
	"github.com/arborist-go/html5tree/treebuilder"
)

// Version is the current version of html5tree.
const Version = "0.1.0-dev"

// Parse parses an HTML string and returns a Document.
//
// The parser handles malformed HTML according to the WHATWG HTML5 specification,
// ensuring the same behavior as web browsers.
//
// Example:
//
//	doc, err := html5tree.Parse("<html><body><p>Hello!</p></body></html>")
//	if err != nil {
//		// err contains parse errors if WithCollectErrors() was used
//	}
func Parse(html string, opts ...Option) (*dom.Document, error) {
	cfg := newConfig(opts...)
	return parse(html, cfg)
}

// ParseBytes parses HTML from a byte slice with automatic encoding detection.
//
// The encoding is detected according to the HTML5 specification:
//  1. HTTP Content-Type header (if provided via WithEncoding)
//  2. BOM (Byte Order Mark)
//  3. <meta charset> or <meta http-equiv="Content-Type">
//  4. Fallback to windows-1252
//
// Example:
//
//	data, _ := os.ReadFile("page.html")
//	doc, err := html5tree.ParseBytes(data)
func ParseBytes(html []byte, opts ...Option) (*dom.Document, error) {
	cfg := newConfig(opts...)

	// Detect and decode encoding
	decoded, enc, err := encoding.Decode(html, cfg.encoding)
	if err != nil {
		return nil, err
	}
	_ = enc // TODO: store detected encoding in document

	return parse(decoded, cfg)
}

// ParseFragment parses an HTML fragment in a specific context element.
//
// This is equivalent to setting element.innerHTML in browsers. The context
// determines how the fragment is parsed (e.g., parsing "<td>" in a "tr" context
// vs. in a "div" context produces different results).
//
// Example:
//
//	nodes, err := html5tree.ParseFragment("<td>Cell</td>", "tr")
func ParseFragment(html string, context string, opts ...Option) ([]*dom.Element, error) {
	cfg := newConfig(opts...)
	cfg.fragmentContext = &treebuilder.FragmentContext{
		TagName:   context,
		Namespace: "html",
	}
	return parseFragment(html, cfg)
}

// parse is the internal parsing implementation.
func parse(html string, cfg *config) (*dom.Document, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	tok := tokenizer.New(html)
	if cfg.xmlCoercion {
		tok.SetXMLCoercion(true)
	}
	tb := treebuilder.New(tok)
	if cfg.iframeSrcdoc {
		tb.SetIframeSrcdoc(true)
	}
	if cfg.trackNodeLocations {
		tb.SetTrackNodeLocations(true)
	}

	for {
		tok.SetAllowCDATA(tb.AllowCDATA())
		tt := tok.Next()
		tb.ProcessToken(tt)
		if tt.Type == tokenizer.EOF {
			break
		}
	}

	if cfg.strict || cfg.collectErrors {
		parseErrs := collectParseErrors(tok.Errors(), tb.Errors())
		if len(parseErrs) > 0 && cfg.strict {
			return nil, parseErrs[0]
		}
		if len(parseErrs) > 0 && cfg.collectErrors {
			return tb.Document(), htmlerrors.ParseErrors(parseErrs)
		}
	}

	return tb.Document(), nil
}

// parseFragment is the internal fragment parsing implementation.
func parseFragment(html string, cfg *config) ([]*dom.Element, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	tok := tokenizer.New(html)
	if cfg.xmlCoercion {
		tok.SetXMLCoercion(true)
	}
	tb := treebuilder.NewFragment(tok, cfg.fragmentContext)
	if cfg.iframeSrcdoc {
		tb.SetIframeSrcdoc(true)
	}
	if cfg.trackNodeLocations {
		tb.SetTrackNodeLocations(true)
	}

	for {
		tok.SetAllowCDATA(tb.AllowCDATA())
		tt := tok.Next()
		tb.ProcessToken(tt)
		if tt.Type == tokenizer.EOF {
			break
		}
	}

	if cfg.strict || cfg.collectErrors {
		parseErrs := collectParseErrors(tok.Errors(), tb.Errors())
		if len(parseErrs) > 0 && cfg.strict {
			return nil, parseErrs[0]
		}
		if len(parseErrs) > 0 && cfg.collectErrors {
			return tb.FragmentNodes(), htmlerrors.ParseErrors(parseErrs)
		}
	}

	return tb.FragmentNodes(), nil
}

// ToHTML serializes a parsed node back to HTML.
//
// This is a thin convenience wrapper around the serialize package, letting
// callers round-trip a Parse result without importing serialize directly:
//
//	doc, _ := html5tree.Parse(input)
//	out := html5tree.ToHTML(doc, serialize.DefaultOptions())
func ToHTML(node dom.Node, opts serialize.Options) string {
	return serialize.ToHTML(node, opts)
}

// ToText extracts the concatenated text content of an element, in document order.
func ToText(el *dom.Element) string {
	return el.Text()
}

// collectParseErrors merges tokenizer and tree-builder errors into a single
// list, sorted by source position per the tokenizer/tree-builder error
// ordering rules (unknown positions last, ties kept in emission order).
func collectParseErrors(tokErrs []tokenizer.ParseError, treeErrs htmlerrors.ParseErrors) []*htmlerrors.ParseError {
	if len(tokErrs) == 0 && len(treeErrs) == 0 {
		return nil
	}
	out := make(htmlerrors.ParseErrors, 0, len(tokErrs)+len(treeErrs))
	for _, e := range tokErrs {
		out = append(out, &htmlerrors.ParseError{
			Category: htmlerrors.CategoryTokenizer,
			Code:     e.Code,
			Message:  htmlerrors.Message(e.Code),
			Line:     e.Line,
			Column:   e.Column,
		})
	}
	out = append(out, treeErrs...)
	out.Sort()
	return out
}
