package parser

import (
	"fmt"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/lexer"
	"strata/internal/source"
	"strata/internal/token"
)

// Options configures a single-file parse.
type Options struct {
	MaxErrors uint
	Reporter  diag.Reporter
}

// Result carries the parsed file and any collected diagnostics.
type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser holds per-file parsing state.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	opts     Options
	bag      *diag.Bag
	errors   uint
	lastSpan source.Span // span of the last consumed token

	// noBrace suppresses closure literals so `if x { }` does not read the
	// then-block as a trailing closure.
	noBrace bool
}

// ParseFile is the entry point for parsing one file. The lexer must wrap an
// already-loaded source.File.
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	if opts.MaxErrors == 0 {
		opts.MaxErrors = 100
	}
	bag := diag.NewBag(int(opts.MaxErrors)) //nolint:gosec // small bound
	if opts.Reporter == nil {
		opts.Reporter = &diag.BagReporter{Bag: bag}
	}
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(lx.EmptySpan()),
		opts:     opts,
		bag:      bag,
		lastSpan: lx.EmptySpan(),
	}

	p.parseTop()
	return Result{File: p.file, Bag: bag}
}

func (p *Parser) parseTop() {
	fileSpan := p.lx.EmptySpan()
	for !p.at(token.EOF) {
		before := p.peek()
		if p.atItemStart() {
			if item := p.parseItem(); item.IsValid() {
				p.arenas.PushItem(p.file, item)
				fileSpan = fileSpan.Cover(p.arenas.Item(item).Span)
			}
		} else {
			if stmt := p.parseStmt(); stmt.IsValid() {
				p.arenas.PushStmt(p.file, stmt)
				fileSpan = fileSpan.Cover(p.arenas.Stmt(stmt).Span)
			}
		}
		// Guarantee progress even on malformed input.
		if p.peek() == before && p.peek().Kind != token.EOF {
			p.advance()
		}
		p.eatSemis()
	}
	p.arenas.File(p.file).Span = fileSpan
}

// --- token plumbing ---

func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

func (p *Parser) at(kind token.Kind) bool {
	return p.lx.Peek().Kind == kind
}

func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// eat consumes the next token when it matches.
func (p *Parser) eat(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect consumes the next token or reports a syntax error at it.
func (p *Parser) expect(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	got := p.peek()
	p.errorAt(got.Span, diag.SynUnexpectedToken,
		fmt.Sprintf("expected %q, found %q", kind.String(), got.Kind.String()))
	return token.Token{Kind: token.Invalid, Span: got.Span}, false
}

func (p *Parser) eatSemis() {
	for p.at(token.Semicolon) {
		p.advance()
	}
}

func (p *Parser) errorAt(span source.Span, code diag.Code, msg string) {
	p.errors++
	if p.errors > p.opts.MaxErrors {
		return
	}
	p.opts.Reporter.Report(code, diag.SevError, span, msg, nil)
}

// spanFrom covers everything consumed since start.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

func (p *Parser) intern(tok token.Token) source.StringID {
	return p.arenas.Strings.Intern(tok.Text)
}
