package sexp

import "sort"

// orderedItem is either an Argument or a child Node, tagged with the
// preference band it sorts under, for the stable merge described in
// spec.md §4.3 ("interleaving of argument-tokens and children's token
// streams stably sorted by pref in the order Start < None < End").
type orderedItem struct {
	pref  ArgPref
	index int // original insertion order, for stable sort
	arg   *Argument
	child *Node
}

// Tokens walks n and returns the flat token sequence a writer would need to
// reproduce it, per spec.md §4.3.
func (n *Node) Tokens() []Token {
	var out []Token
	n.appendTokens(&out)
	return out
}

func (n *Node) appendTokens(out *[]Token) {
	*out = append(*out, Token{Type: OPEN})
	*out = append(*out, Token{Type: IDENT, Data: n.Name})

	items := make([]orderedItem, 0, len(n.Arguments)+len(n.Children))
	for i := range n.Arguments {
		a := &n.Arguments[i]
		items = append(items, orderedItem{pref: a.Pref, index: i, arg: a})
	}
	// Children always sort as though PrefNone, after Start-preferred
	// arguments and alongside None-preferred ones, before End-preferred
	// arguments, matching how every record in kicad/ emits its children
	// after its scalar arguments.
	for i := range n.Children {
		items = append(items, orderedItem{pref: PrefNone, index: len(n.Arguments) + i, child: &n.Children[i]})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].pref < items[j].pref
	})

	for _, it := range items {
		if it.arg != nil {
			*out = append(*out, argumentToken(*it.arg))
		} else {
			it.child.appendTokens(out)
		}
	}

	*out = append(*out, Token{Type: CLOSE})
}

func argumentToken(a Argument) Token {
	switch a.Kind {
	case ArgNumber:
		return Token{Type: NUMBER, Data: formatNumber(a.Number)}
	case ArgString:
		return Token{Type: QSTRING, Data: `"` + a.Str + `"`}
	default:
		return Token{Type: IDENT, Data: a.Str}
	}
}
