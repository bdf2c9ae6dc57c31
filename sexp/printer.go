package sexp

import "strings"

// SameLineSet names the child node identifiers that should not be broken
// onto their own line when pretty-printing a particular top-level record
// kind, per spec.md §4.3. Callers (package kicad) own one of these per
// top-level node name (`kicad_symbol_lib`, `footprint`, ...).
type SameLineSet map[string]bool

// NewSameLineSet builds a SameLineSet from a list of identifier names.
func NewSameLineSet(names ...string) SameLineSet {
	m := make(SameLineSet, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

type printFrame struct {
	name      string
	multiLine bool
}

// Print renders a token stream produced by Node.Tokens using Kicad's
// conventional two-space indentation, per the layout algorithm of spec.md
// §4.3. It does not need to re-parse its own output; tree-equality after
// re-parse (not byte-for-byte equality with hand-edited files) is the
// testable property (spec.md §8).
func Print(tokens []Token, sameLine SameLineSet) string {
	var b strings.Builder
	var stack []printFrame
	indent := 0
	lastWasClose := false
	needSpace := false

	writeIndent := func() {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat("  ", indent))
		needSpace = false
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch tok.Type {
		case OPEN:
			// The following token is always the node's name identifier,
			// per Node.Tokens' emission order.
			var name string
			if i+1 < len(tokens) {
				name = tokens[i+1].Data
			}

			parentName := ""
			if len(stack) > 0 {
				parentName = stack[len(stack)-1].name
			}
			inline := sameLine[name] || isInlinedEffects(name, parentName)

			if len(stack) == 0 {
				// top-level node: never breaks, there's nothing before it
			} else if inline {
				if needSpace {
					b.WriteByte(' ')
				}
			} else {
				writeIndent()
				markParentMultiLine(stack)
			}

			b.WriteByte('(')
			indent++
			stack = append(stack, printFrame{name: name})
			needSpace = false
			lastWasClose = false

		case CLOSE:
			indent--
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			breakBefore := lastWasClose && top.multiLine
			if breakBefore {
				writeIndent()
			}
			b.WriteByte(')')
			needSpace = true
			lastWasClose = true
			if breakBefore && len(stack) > 0 {
				markParentMultiLine(stack)
			}

		case IDENT, QSTRING, NUMBER:
			if needSpace {
				b.WriteByte(' ')
			}
			b.WriteString(tok.Data)
			needSpace = true
			lastWasClose = false

		case EOF:
			// nothing to render
		}
	}

	return b.String()
}

func markParentMultiLine(stack []printFrame) {
	if len(stack) == 0 {
		return
	}
	stack[len(stack)-1].multiLine = true
}

// isInlinedEffects implements the printer's special case: an `effects` node
// always renders inline when its immediate parent is `name` or `number`
// (used for pin labels), per spec.md §4.3.
func isInlinedEffects(name, parentName string) bool {
	return name == "effects" && (parentName == "name" || parentName == "number")
}
