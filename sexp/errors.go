package sexp

import "fmt"

// TokenError reports a lexical problem at a known byte offset, per
// spec.md §4.1 ("TokenError").
type TokenError struct {
	Offset int
	Msg    string
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("sexp: token error at offset %d: %s", e.Offset, e.Msg)
}

// SyntaxError reports a tree-shape problem at a known byte offset, per
// spec.md §4.2 ("SyntaxError") — a value token with no open node, an
// unbalanced CLOSE, or a trailing unclosed node.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("sexp: syntax error at offset %d: %s", e.Offset, e.Msg)
}
