// Command justhtml is a minimal CLI for extracting text or HTML fragments
// from a document by CSS selector, piped from stdin or read from a file.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arborist-go/html5tree"
	"github.com/arborist-go/html5tree/dom"
	"github.com/arborist-go/html5tree/serialize"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	selector := flag.String("selector", "", "CSS selector to filter output")
	selectorShort := flag.String("s", "", "CSS selector to filter output (shorthand)")
	format := flag.String("format", "text", "Output format: html, text, markdown")
	formatShort := flag.String("f", "", "Output format (shorthand)")
	first := flag.Bool("first", false, "Output only first match")
	showVersion := flag.Bool("version", false, "Show version")
	versionShort := flag.Bool("v", false, "Show version (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <file>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Extract text, HTML, or Markdown from a document by selector.\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  file    HTML file path or '-' for stdin\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *selectorShort != "" && *selector == "" {
		*selector = *selectorShort
	}
	if *formatShort != "" {
		*format = *formatShort
	}

	if *showVersion || *versionShort {
		fmt.Printf("justhtml version %s\n", version)
		return nil
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("missing input file")
	}

	input, err := readInput(args[0])
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	doc, err := html5tree.ParseBytes(input)
	if err != nil {
		return fmt.Errorf("parsing HTML: %w", err)
	}

	elements, err := selectElements(doc, *selector, *first)
	if err != nil {
		return fmt.Errorf("invalid selector: %w", err)
	}

	output, err := render(elements, doc, *format)
	if err != nil {
		return err
	}
	fmt.Print(output)
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func selectElements(doc *dom.Document, selector string, first bool) ([]*dom.Element, error) {
	if selector == "" {
		return nil, nil
	}
	elements, err := doc.Query(selector)
	if err != nil {
		return nil, err
	}
	if first && len(elements) > 1 {
		elements = elements[:1]
	}
	return elements, nil
}

func render(elements []*dom.Element, doc *dom.Document, format string) (string, error) {
	var nodes []dom.Node
	if len(elements) == 0 {
		nodes = []dom.Node{doc}
	} else {
		for _, el := range elements {
			nodes = append(nodes, el)
		}
	}

	var parts []string
	for _, node := range nodes {
		switch format {
		case "html":
			parts = append(parts, serialize.ToHTML(node, serialize.DefaultOptions()))
		case "markdown":
			parts = append(parts, serialize.ToMarkdown(node))
		case "text":
			parts = append(parts, textOf(node))
		default:
			return "", fmt.Errorf("invalid format %q: must be html, text, or markdown", format)
		}
	}

	out := strings.Join(parts, "\n")
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

func textOf(node dom.Node) string {
	switch n := node.(type) {
	case *dom.Element:
		return n.Text()
	case *dom.Document:
		root := n.DocumentElement()
		if root == nil {
			return ""
		}
		return root.Text()
	default:
		return ""
	}
}
