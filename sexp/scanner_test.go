package sexp

import (
	"reflect"
	"strings"
	"testing"
)

func TestScanner(t *testing.T) {
	tests := []struct {
		Input string
		Want  []TokenType
	}{
		{``, []TokenType{EOF}},
		{`   `, []TokenType{EOF}},
		{`()`, []TokenType{OPEN, CLOSE, EOF}},
		{`""`, []TokenType{QSTRING, EOF}},
		{`"hello world"`, []TokenType{QSTRING, EOF}},
		{`baz`, []TokenType{IDENT, EOF}},
		{`-12.5`, []TokenType{NUMBER, EOF}},
		{`Resistors_SMD:R_1206`, []TokenType{IDENT, EOF}},
		{
			`(foo (bar "baz") (boz 12))`,
			[]TokenType{OPEN, IDENT, OPEN, IDENT, QSTRING, CLOSE, OPEN, IDENT, NUMBER, CLOSE, CLOSE, EOF},
		},
	}

	for _, tc := range tests {
		s := NewScanner(strings.NewReader(tc.Input))
		var got []TokenType
		for {
			tok, err := s.Read()
			if err != nil {
				t.Fatalf("input %q: unexpected error: %v", tc.Input, err)
			}
			got = append(got, tok.Type)
			if tok.Type == EOF {
				break
			}
		}
		if !reflect.DeepEqual(got, tc.Want) {
			t.Errorf("input %q: got %v, want %v", tc.Input, got, tc.Want)
		}
	}
}

func TestScannerNoEscapeProcessing(t *testing.T) {
	s := NewScanner(strings.NewReader(`"hello\nworld"`))
	tok, err := s.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `"hello\nworld"`
	if tok.Data != want {
		t.Errorf("got %q, want %q (no escape interpretation)", tok.Data, want)
	}
}

func TestScannerRejectsBadIdentByte(t *testing.T) {
	s := NewScanner(strings.NewReader(`foo@bar`))
	_, err := s.Read()
	if err == nil {
		t.Fatalf("expected a *TokenError for '@' inside an identifier")
	}
	if te, ok := err.(*TokenError); !ok || te.Offset != 3 {
		t.Errorf("got %v, want a *TokenError at offset 3", err)
	}
}

func TestScannerUnterminatedString(t *testing.T) {
	s := NewScanner(strings.NewReader(`"unterminated`))
	if _, err := s.Read(); err == nil {
		t.Fatalf("expected a *TokenError for unterminated quoted string")
	}
}

func TestScannerPeekIsIdempotent(t *testing.T) {
	s := NewScanner(strings.NewReader(`(foo)`))
	first, err := s.Peek()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.Peek()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("Peek not idempotent: %v != %v", first, second)
	}
	read, err := s.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if read != first {
		t.Errorf("Read diverged from Peek: %v != %v", read, first)
	}
}
