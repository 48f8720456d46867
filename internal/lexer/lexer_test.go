package lexer

import (
	"testing"

	"strata/internal/source"
	"strata/internal/token"
)

func tokenize(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sta", []byte(src))
	lx := New(fs.Get(id))

	var out []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tok)
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexDeclaration(t *testing.T) {
	toks := tokenize(t, `var a = 1, b = a`)
	want := []token.Kind{
		token.KwVar, token.Ident, token.Assign, token.IntLit,
		token.Comma, token.Ident, token.Assign, token.Ident,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count: got %d want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestLexOperatorsAndComments(t *testing.T) {
	toks := tokenize(t, "a -> b // tail\n/* nested /* deep */ */ ==")
	want := []token.Kind{token.Ident, token.Arrow, token.Ident, token.EqEq}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count: got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestLexSpans(t *testing.T) {
	toks := tokenize(t, "guard let x")
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(toks))
	}
	if toks[0].Span.Start != 0 || toks[0].Span.End != 5 {
		t.Fatalf("guard span: got %v", toks[0].Span)
	}
	if toks[2].Span.Start != 10 || toks[2].Span.End != 11 {
		t.Fatalf("x span: got %v", toks[2].Span)
	}
	if toks[2].Text != "x" {
		t.Fatalf("x text: got %q", toks[2].Text)
	}
}

func TestLexUnderscore(t *testing.T) {
	toks := tokenize(t, "_ _x")
	if toks[0].Kind != token.Underscore {
		t.Fatalf("lone underscore: got %v", toks[0].Kind)
	}
	if toks[1].Kind != token.Ident || toks[1].Text != "_x" {
		t.Fatalf("underscore ident: got %v %q", toks[1].Kind, toks[1].Text)
	}
}

func TestLexString(t *testing.T) {
	toks := tokenize(t, `"hi \" there"`)
	if len(toks) != 1 || toks[0].Kind != token.StringLit {
		t.Fatalf("string literal: got %v", toks)
	}
}
