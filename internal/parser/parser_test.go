package parser

import (
	"testing"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/lexer"
	"strata/internal/source"
)

func parseSnippet(t *testing.T, src string) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sta", []byte(src))
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := ParseFile(lexer.New(fs.Get(id)), builder, Options{})
	return builder, res.File, res.Bag
}

func requireClean(t *testing.T, bag *diag.Bag) {
	t.Helper()
	if bag.HasErrors() {
		t.Fatalf("unexpected parse diagnostics: %+v", bag.Items())
	}
}

func TestParseStructWithMembers(t *testing.T) {
	builder, fileID, bag := parseSnippet(t, `
		struct S<T: Equatable> where T == Int {
			var x = 1, y = x
			func f(a: Int = 0) -> Int { return a }
			init(v: Int) { }
			subscript(i: Int) { get { return i } set { } }
		}
	`)
	requireClean(t, bag)

	file := builder.File(fileID)
	if len(file.Entries) != 1 || !file.Entries[0].Item.IsValid() {
		t.Fatalf("expected one top-level item, got %+v", file.Entries)
	}
	nominal, ok := builder.Nominal(file.Entries[0].Item)
	if !ok {
		t.Fatalf("expected nominal payload")
	}
	if got := builder.Strings.MustLookup(nominal.Name); got != "S" {
		t.Fatalf("name: got %q", got)
	}
	if len(nominal.GenericParams) != 1 {
		t.Fatalf("generic params: got %d", len(nominal.GenericParams))
	}
	if nominal.WhereSpan.Empty() {
		t.Fatalf("expected where clause span")
	}
	if len(nominal.Members) != 4 {
		t.Fatalf("members: got %d", len(nominal.Members))
	}

	binding, ok := builder.Binding(nominal.Members[0])
	if !ok || !binding.IsVar {
		t.Fatalf("expected var binding first")
	}
	if len(binding.Entries) != 2 {
		t.Fatalf("entries: got %d", len(binding.Entries))
	}
	second := builder.PatternEntry(binding.Entries[1])
	if !second.Init.IsValid() {
		t.Fatalf("second entry must carry an initializer")
	}

	fn, ok := builder.Func(nominal.Members[1])
	if !ok || len(fn.Params) != 1 || !fn.Body.IsValid() {
		t.Fatalf("func member malformed: %+v", fn)
	}
	param := builder.Param(fn.Params[0])
	if !param.Default.IsValid() {
		t.Fatalf("expected default argument")
	}
}

func TestParseConditionLists(t *testing.T) {
	builder, fileID, bag := parseSnippet(t, `
		func g() {
			if let x = a(), y = b(x) { use(x, y) } else { }
			guard let z = c() else { return }
			while let w = d(z) { }
			repeat { } while flag
		}
	`)
	requireClean(t, bag)

	file := builder.File(fileID)
	fn, ok := builder.Func(file.Entries[0].Item)
	if !ok {
		t.Fatalf("expected func")
	}
	body, ok := builder.Brace(fn.Body)
	if !ok || len(body.Stmts) != 4 {
		t.Fatalf("body stmts: got %+v", body)
	}

	ifStmt, ok := builder.If(body.Stmts[0])
	if !ok || len(ifStmt.Conds) != 2 {
		t.Fatalf("if conds: got %+v", ifStmt)
	}
	first := builder.Condition(ifStmt.Conds[0])
	if !first.IsBinding() {
		t.Fatalf("first condition must bind")
	}
	if !ifStmt.Else.IsValid() {
		t.Fatalf("expected else branch")
	}

	guard, ok := builder.Guard(body.Stmts[1])
	if !ok || len(guard.Conds) != 1 || !guard.Else.IsValid() {
		t.Fatalf("guard malformed: %+v", guard)
	}
}

func TestParseClosures(t *testing.T) {
	builder, fileID, bag := parseSnippet(t, `
		let f = { (a: Int, b: Int) in return a }
		let g = { [x = outer, y] in use(x) }
		let h = { implicit }
	`)
	requireClean(t, bag)

	file := builder.File(fileID)
	if len(file.Entries) != 3 {
		t.Fatalf("entries: got %d", len(file.Entries))
	}

	entryInit := func(i int) *ast.ClosureExpr {
		binding, ok := builder.Binding(file.Entries[i].Item)
		if !ok {
			t.Fatalf("entry %d: not a binding", i)
		}
		closure, ok := builder.Closure(builder.PatternEntry(binding.Entries[0]).Init)
		if !ok {
			t.Fatalf("entry %d: initializer is not a closure", i)
		}
		return closure
	}

	f := entryInit(0)
	if !f.HasIn || len(f.Params) != 2 {
		t.Fatalf("closure f malformed: %+v", f)
	}
	g := entryInit(1)
	if len(g.Captures) != 2 || !g.HasIn {
		t.Fatalf("closure g malformed: %+v", g)
	}
	if capture := builder.Capture(g.Captures[0]); !capture.Init.IsValid() {
		t.Fatalf("capture x must carry initializer")
	}
	h := entryInit(2)
	if h.HasIn || len(h.Params) != 0 || len(h.Stmts) != 1 {
		t.Fatalf("closure h malformed: %+v", h)
	}
}

func TestParseDoCatchSwitchFor(t *testing.T) {
	builder, fileID, bag := parseSnippet(t, `
		func h(xs: List) {
			for x in xs { use(x) }
			do { risky() } catch e { log(e) } catch { log(error) }
			switch tag {
			case let v: use(v)
			default: skip()
			}
		}
	`)
	requireClean(t, bag)

	file := builder.File(fileID)
	fn, _ := builder.Func(file.Entries[0].Item)
	body, _ := builder.Brace(fn.Body)
	if len(body.Stmts) != 3 {
		t.Fatalf("body stmts: got %d", len(body.Stmts))
	}

	forStmt, ok := builder.For(body.Stmts[0])
	if !ok || !forStmt.Pat.IsValid() {
		t.Fatalf("for malformed")
	}
	doStmt, ok := builder.Do(body.Stmts[1])
	if !ok || len(doStmt.Catches) != 2 {
		t.Fatalf("do/catch malformed: %+v", doStmt)
	}
	if builder.CatchClause(doStmt.Catches[1]).Pat.IsValid() {
		t.Fatalf("bare catch must have no pattern")
	}
	sw, ok := builder.Switch(body.Stmts[2])
	if !ok || len(sw.Cases) != 2 {
		t.Fatalf("switch malformed: %+v", sw)
	}
	if !builder.SwitchCase(sw.Cases[0]).Pat.IsValid() {
		t.Fatalf("case let must bind a pattern")
	}
	if !builder.SwitchCase(sw.Cases[1]).IsDefault {
		t.Fatalf("expected default case")
	}
}

func TestParseTopLevelCodeAndAttrs(t *testing.T) {
	builder, fileID, bag := parseSnippet(t, `
		@Wrapped var w = make()
		@specialize(T: Int) func s<T>() { }
		print(w)
	`)
	requireClean(t, bag)

	file := builder.File(fileID)
	if len(file.Entries) != 3 {
		t.Fatalf("entries: got %d", len(file.Entries))
	}
	binding, ok := builder.Binding(file.Entries[0].Item)
	if !ok || len(binding.Attrs) != 1 {
		t.Fatalf("wrapped binding malformed")
	}
	attr := builder.Attr(binding.Attrs[0])
	if attr.Kind != ast.AttrCustom {
		t.Fatalf("attr kind: got %v", attr.Kind)
	}
	fn, ok := builder.Func(file.Entries[1].Item)
	if !ok || len(fn.Attrs) != 1 {
		t.Fatalf("specialized func malformed")
	}
	if builder.Attr(fn.Attrs[0]).Kind != ast.AttrSpecialize {
		t.Fatalf("expected specialize attr")
	}
	if !file.Entries[2].Stmt.IsValid() {
		t.Fatalf("expected top-level statement")
	}
}

func TestParseRecoversFromGarbage(t *testing.T) {
	_, _, bag := parseSnippet(t, `struct { ! } func ok() { }`)
	if !bag.HasErrors() {
		t.Fatalf("expected diagnostics for malformed input")
	}
}

func TestSpanInvariants(t *testing.T) {
	builder, fileID, bag := parseSnippet(t, `
		struct S { func f() { let y = x } }
		let top = 1
	`)
	requireClean(t, bag)

	file := builder.File(fileID)
	for _, entry := range file.Entries {
		var span source.Span
		switch {
		case entry.Item.IsValid():
			span = builder.Item(entry.Item).Span
		case entry.Stmt.IsValid():
			span = builder.Stmt(entry.Stmt).Span
		}
		if span.Empty() {
			t.Fatalf("entry with empty span: %+v", entry)
		}
		if !file.Span.ContainsSpan(span) {
			t.Fatalf("entry span %v escapes file span %v", span, file.Span)
		}
	}
}
