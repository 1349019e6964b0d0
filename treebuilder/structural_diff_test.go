package treebuilder_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arborist-go/html5tree"
	"github.com/arborist-go/html5tree/dom"
)

// nodeShape is a cmp-friendly projection of a dom.Node: exported fields only,
// since dom nodes carry unexported parent/origin pointers that cmp.Diff
// can't (and shouldn't) compare directly.
type nodeShape struct {
	Kind     string
	Tag      string
	Text     string
	Children []nodeShape
}

func shapeOf(n dom.Node) nodeShape {
	s := nodeShape{}
	switch v := n.(type) {
	case *dom.Document:
		s.Kind = "document"
	case *dom.Element:
		s.Kind = "element"
		s.Tag = v.TagName
	case *dom.Text:
		s.Kind = "text"
		s.Text = v.Data
	case *dom.Comment:
		s.Kind = "comment"
		s.Text = v.Data
	case *dom.DocumentType:
		s.Kind = "doctype"
		s.Tag = v.Name
	}
	for _, c := range n.Children() {
		s.Children = append(s.Children, shapeOf(c))
	}
	return s
}

// TestTableTextFosterParentingMatchesExplicitMarkup checks that a table with
// implicit tbody insertion and foster-parented leading text produces the
// same tree shape as the equivalent fully-explicit markup, via a structural
// (not string) diff.
func TestTableTextFosterParentingMatchesExplicitMarkup(t *testing.T) {
	implicit, err := html5tree.Parse("<table>foo<tr><td>1</td></tr></table>")
	if err != nil {
		t.Fatalf("Parse(implicit): %v", err)
	}
	explicit, err := html5tree.Parse("foo<table><tbody><tr><td>1</td></tr></tbody></table>")
	if err != nil {
		t.Fatalf("Parse(explicit): %v", err)
	}

	got := shapeOf(implicit.Body())
	want := shapeOf(explicit.Body())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tree shape mismatch (-want +got):\n%s", diff)
	}
}

// TestFragmentParsingMatchesFullDocumentSubtree checks that parsing a
// fragment in a context element produces the same node shape as the
// corresponding subtree of a full-document parse of the same markup.
func TestFragmentParsingMatchesFullDocumentSubtree(t *testing.T) {
	doc, err := html5tree.Parse("<table><tr><td>1</td><td>2</td></tr></table>")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tr, err := doc.QueryFirst("tr")
	if err != nil || tr == nil {
		t.Fatalf("QueryFirst(tr): %v, %v", tr, err)
	}

	nodes, err := html5tree.ParseFragment("<td>1</td><td>2</td>", "tr")
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}

	var fragChildren []nodeShape
	for _, n := range nodes {
		fragChildren = append(fragChildren, shapeOf(n))
	}
	want := shapeOf(tr).Children
	if diff := cmp.Diff(want, fragChildren); diff != "" {
		t.Errorf("fragment shape mismatch (-want +got):\n%s", diff)
	}
}
