package sexp

import (
	"io"
	"strconv"
)

// Parse reads a complete token stream from r and builds the single
// top-level Node it describes, per spec.md §4.2.
//
// Failures surface as *SyntaxError (tree-shape problems) or *TokenError
// (lexical problems reported by the underlying Scanner).
func Parse(r io.Reader) (*Node, error) {
	s := NewScanner(r)
	return ParseScanner(s)
}

// ParseScanner is like Parse but consumes tokens from an already-constructed
// Scanner, which lets callers interleave parsing with peeking.
func ParseScanner(s *Scanner) (*Node, error) {
	var stack []*Node
	var result *Node

	for {
		tok, err := s.Read()
		if err != nil {
			return nil, err
		}

		switch tok.Type {
		case OPEN:
			stack = append(stack, &Node{})

		case CLOSE:
			if len(stack) == 0 {
				return nil, &SyntaxError{Offset: tok.Offset, Msg: "unmatched CLOSE"}
			}
			popped := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if popped.Name == "" {
				return nil, &SyntaxError{Offset: tok.Offset, Msg: "node has no name"}
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, *popped)
			} else {
				if result != nil {
					return nil, &SyntaxError{Offset: tok.Offset, Msg: "more than one top-level node"}
				}
				result = popped
			}

		case IDENT, QSTRING, NUMBER:
			if len(stack) == 0 {
				return nil, &SyntaxError{Offset: tok.Offset, Msg: "value token outside of any node"}
			}
			top := stack[len(stack)-1]
			if top.Name == "" {
				if tok.Type != IDENT {
					return nil, &SyntaxError{Offset: tok.Offset, Msg: "node name must be an identifier"}
				}
				top.Name = tok.Data
				continue
			}
			top.Arguments = append(top.Arguments, argumentFromToken(tok))

		case EOF:
			if len(stack) != 0 {
				return nil, &SyntaxError{Offset: tok.Offset, Msg: "unclosed node at end of input"}
			}
			if result == nil {
				return nil, &SyntaxError{Offset: tok.Offset, Msg: "empty input: no top-level node"}
			}
			return result, nil
		}
	}
}

func argumentFromToken(tok Token) Argument {
	switch tok.Type {
	case NUMBER:
		v, _ := strconv.ParseFloat(tok.Data, 64)
		return Argument{Kind: ArgNumber, Number: v}
	case QSTRING:
		return Argument{Kind: ArgString, Str: unquote(tok.Data)}
	default: // IDENT
		return Argument{Kind: ArgIdent, Str: tok.Data}
	}
}

func unquote(tok string) string {
	if len(tok) >= 2 && tok[0] == '"' && tok[len(tok)-1] == '"' {
		return tok[1 : len(tok)-1]
	}
	return tok
}
