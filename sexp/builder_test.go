package sexp

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func TestParseSimple(t *testing.T) {
	n, err := Parse(strings.NewReader(`(kicad_symbol_lib (version 20211014) (generator jlcrs))`))
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, spew.Sdump(n))
	}
	if n.Name != "kicad_symbol_lib" {
		t.Fatalf("got name %q, want kicad_symbol_lib", n.Name)
	}
	if len(n.Children) != 2 {
		t.Fatalf("got %d children, want 2\n%s", len(n.Children), spew.Sdump(n))
	}
	version, ok := n.Find("version")
	if !ok {
		t.Fatalf("missing version child\n%s", spew.Sdump(n))
	}
	if a, ok := version.ArgAt(0); !ok || a.AsIdent() != "20211014" {
		t.Errorf("version arg = %+v, want 20211014", a)
	}
}

func TestParseRejectsMultipleTopLevelNodes(t *testing.T) {
	_, err := Parse(strings.NewReader(`(a) (b)`))
	if err == nil {
		t.Fatalf("expected a *SyntaxError for more than one top-level node")
	}
	if _, ok := err.(*SyntaxError); !ok {
		t.Errorf("got error of type %T, want *SyntaxError: %v", err, err)
	}
}

func TestParseRejectsUnmatchedClose(t *testing.T) {
	_, err := Parse(strings.NewReader(`(a))`))
	if err == nil {
		t.Fatalf("expected a *SyntaxError for an unmatched CLOSE")
	}
}

func TestParseRejectsUnclosedNode(t *testing.T) {
	_, err := Parse(strings.NewReader(`(a (b)`))
	if err == nil {
		t.Fatalf("expected a *SyntaxError for an unclosed node at EOF")
	}
}

func TestParseRejectsEmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(``))
	if err == nil {
		t.Fatalf("expected a *SyntaxError for empty input")
	}
}

func TestParseRejectsValueOutsideNode(t *testing.T) {
	_, err := Parse(strings.NewReader(`foo`))
	if err == nil {
		t.Fatalf("expected a *SyntaxError for a value token outside of any node")
	}
}

func TestParseStringArgumentUnquoted(t *testing.T) {
	n, err := Parse(strings.NewReader(`(descr "a quoted value")`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, ok := n.ArgAt(0)
	if !ok {
		t.Fatalf("missing argument 0\n%s", spew.Sdump(n))
	}
	if a.Kind != ArgString || a.Str != "a quoted value" {
		t.Errorf("got %+v, want unquoted string argument", a)
	}
}
