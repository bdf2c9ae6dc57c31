package sexp

import "testing"

func TestPrintTopLevelNeverBreaks(t *testing.T) {
	n := NewNode("kicad_symbol_lib")
	n.Child(NewNode("version").Num(20211014))
	n.Child(NewNode("generator").Ident("jlcrs"))

	got := Print(n.Tokens(), NewSameLineSet("version", "generator"))
	want := "(kicad_symbol_lib (version 20211014) (generator jlcrs))"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintBreaksNonSameLineChildren(t *testing.T) {
	n := NewNode("kicad_symbol_lib")
	n.Child(NewNode("symbol").Str("R"))

	got := Print(n.Tokens(), NewSameLineSet("version", "generator"))
	want := "(kicad_symbol_lib\n  (symbol \"R\")\n)"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintInlinesEffectsUnderNameAndNumber(t *testing.T) {
	pin := NewNode("pin")
	name := NewNode("name").Str("~")
	name.Child(NewNode("effects").Child(NewNode("font").Child(NewNode("size").Num(1.27).Num(1.27))))
	pin.Child(name)

	root := NewNode("kicad_symbol_lib")
	root.Child(pin)

	got := Print(root.Tokens(), NewSameLineSet("version", "generator", "font", "size"))
	want := "(kicad_symbol_lib\n  (pin\n    (name \"~\" (effects (font (size 1.27 1.27))))\n  )\n)"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}
