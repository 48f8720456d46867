package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"strata/internal/source"
	"strata/internal/token"
)

// Lexer produces tokens for one source file. Comments and whitespace are
// skipped; the parser never sees trivia.
type Lexer struct {
	file *source.File
	pos  uint32
	look *token.Token // one-token lookahead buffer
}

func New(file *source.File) *Lexer {
	return &Lexer{file: file}
}

// File returns the file the lexer reads from.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// EmptySpan returns a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.pos, End: lx.pos}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		tok := lx.scan()
		lx.look = &tok
	}
	return *lx.look
}

// Next returns the next significant token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	return lx.scan()
}

func (lx *Lexer) scan() token.Token {
	lx.skipTrivia()
	if lx.eof() {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}

	start := lx.pos
	ch := lx.peekByte()

	switch {
	case ch == '_' && !isIdentContinue(lx.peekByteAt(1)):
		lx.pos++
		return lx.make(token.Underscore, start)
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()
	case ch >= '0' && ch <= '9':
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanOperator()
	}
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.pos
	for !lx.eof() && isIdentContinue(lx.peekByte()) {
		lx.pos++
	}
	text := string(lx.file.Content[start:lx.pos])
	if kind, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kind, Span: lx.span(start), Text: text}
	}
	return token.Token{Kind: token.Ident, Span: lx.span(start), Text: text}
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.pos
	for !lx.eof() && lx.peekByte() >= '0' && lx.peekByte() <= '9' {
		lx.pos++
	}
	return lx.make(token.IntLit, start)
}

func (lx *Lexer) scanString() token.Token {
	start := lx.pos
	lx.pos++ // opening quote
	for !lx.eof() && lx.peekByte() != '"' && lx.peekByte() != '\n' {
		if lx.peekByte() == '\\' && lx.pos+1 < lx.size() {
			lx.pos++
		}
		lx.pos++
	}
	if !lx.eof() && lx.peekByte() == '"' {
		lx.pos++
		return lx.make(token.StringLit, start)
	}
	// Unterminated string: report the consumed prefix as invalid.
	return lx.make(token.Invalid, start)
}

func (lx *Lexer) scanOperator() token.Token {
	start := lx.pos
	ch := lx.peekByte()
	lx.pos++

	var kind token.Kind
	switch ch {
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '<':
		kind = token.Lt
	case '>':
		kind = token.Gt
	case ',':
		kind = token.Comma
	case ':':
		kind = token.Colon
	case ';':
		kind = token.Semicolon
	case '.':
		kind = token.Dot
	case '@':
		kind = token.At
	case '+':
		kind = token.Plus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '=':
		kind = token.Assign
		if !lx.eof() && lx.peekByte() == '=' {
			lx.pos++
			kind = token.EqEq
		}
	case '!':
		kind = token.Invalid
		if !lx.eof() && lx.peekByte() == '=' {
			lx.pos++
			kind = token.BangEq
		}
	case '-':
		kind = token.Minus
		if !lx.eof() && lx.peekByte() == '>' {
			lx.pos++
			kind = token.Arrow
		}
	default:
		kind = token.Invalid
	}
	return lx.make(kind, start)
}

// skipTrivia consumes whitespace, line comments, and nested block comments.
func (lx *Lexer) skipTrivia() {
	for !lx.eof() {
		ch := lx.peekByte()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			lx.pos++
		case ch == '/' && lx.peekByteAt(1) == '/':
			for !lx.eof() && lx.peekByte() != '\n' {
				lx.pos++
			}
		case ch == '/' && lx.peekByteAt(1) == '*':
			lx.pos += 2
			depth := 1
			for !lx.eof() && depth > 0 {
				if lx.peekByte() == '/' && lx.peekByteAt(1) == '*' {
					depth++
					lx.pos += 2
				} else if lx.peekByte() == '*' && lx.peekByteAt(1) == '/' {
					depth--
					lx.pos += 2
				} else {
					lx.pos++
				}
			}
		default:
			return
		}
	}
}

func (lx *Lexer) make(kind token.Kind, start uint32) token.Token {
	return token.Token{
		Kind: kind,
		Span: lx.span(start),
		Text: string(lx.file.Content[start:lx.pos]),
	}
}

func (lx *Lexer) span(start uint32) source.Span {
	return source.Span{File: lx.file.ID, Start: start, End: lx.pos}
}

func (lx *Lexer) size() uint32 {
	n, err := safecast.Conv[uint32](len(lx.file.Content))
	if err != nil {
		panic(fmt.Errorf("file too large: %w", err))
	}
	return n
}

func (lx *Lexer) eof() bool {
	return lx.pos >= lx.size()
}

func (lx *Lexer) peekByte() byte {
	return lx.file.Content[lx.pos]
}

// peekByteAt returns the byte at offset pos+n, or 0 past the end.
func (lx *Lexer) peekByteAt(n uint32) byte {
	if lx.pos+n >= lx.size() {
		return 0
	}
	return lx.file.Content[lx.pos+n]
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}
