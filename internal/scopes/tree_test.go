package scopes

import (
	"strings"
	"testing"

	"strata/internal/ast"
	"strata/internal/lexer"
	"strata/internal/parser"
	"strata/internal/source"
)

func buildTree(t *testing.T, src string) *Tree {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("scope.sta", []byte(src))
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(lexer.New(fs.Get(id)), builder, parser.Options{})
	if res.Bag.HasErrors() {
		t.Fatalf("parse diagnostics: %+v", res.Bag.Items())
	}
	return NewTree(builder, res.File, fs.Span(id))
}

// offsetOf returns the byte offset of the first occurrence of marker.
// Markers must be unique within the snippet.
func offsetOf(t *testing.T, src, marker string) uint32 {
	t.Helper()
	idx := strings.Index(src, marker)
	if idx < 0 {
		t.Fatalf("marker %q not found", marker)
	}
	if strings.Contains(src[idx+len(marker):], marker) {
		t.Fatalf("marker %q is ambiguous", marker)
	}
	return uint32(idx) //nolint:gosec // test sources are tiny
}

const kitchenSink = `
let limit = 10

@Tracked var counter = mk()

struct Pair<A: Equatable, B> where A == B {
	var first = 1, second = first
	let tag: Int
	func sum(bias: Int = 0) -> Int {
		let total = first + bias
		return total
	}
	init(seed: Int) {
		use(seed)
	}
	subscript(i: Int) {
		get { return i }
		set { use(newValue) }
	}
}

extension Pair where A == Int {
	func swapped() -> Pair { return mk() }
}

protocol Greets {
	func hello()
}

@specialize(T: Int) func generic<T: Greets>(v: Int) {
	while let step = mk(v), go(step) {
		use(step)
	}
	repeat { use(v) } while flag
	do { risky() } catch e { use(e) } catch { use(error) }
	switch v {
	case let w: use(w)
	default: use(0)
	}
}

func outer() {
	guard let g = mk() else { return }
	let handler = { [cap = g] (n: Int) in use(cap, n) }
	for e in seq(g) { use(e, handler) }
	if flag, let h = mk(g) { use(h) } else { use(0) }
}

print(counter, limit)
`

func TestVerifyKitchenSink(t *testing.T) {
	tree := buildTree(t, kitchenSink)
	tree.ExpandAll()
	if err := tree.Verify(); err != nil {
		t.Fatalf("invariant violated: %v", err)
	}
	if tree.Len() < 40 {
		t.Fatalf("suspiciously small tree: %d scopes", tree.Len())
	}
}

func TestExpansionIsLazyAndIdempotent(t *testing.T) {
	src := `
struct A { func fa() { mark(1) } }
struct B { func fb() { mark(2) } }
`
	tree := buildTree(t, src)
	if tree.Len() != 1 {
		t.Fatalf("fresh tree must hold only the root, got %d", tree.Len())
	}

	inner := tree.InnermostAt(offsetOf(t, src, "mark(1)"))
	if got := tree.Get(inner).Kind; got != ScopeMethodBody {
		t.Fatalf("innermost at fa body: got %v", got)
	}
	partial := tree.Len()

	tree.ExpandAll()
	if tree.Len() <= partial {
		t.Fatalf("full expansion added nothing past the partial walk")
	}
	full := tree.Len()
	tree.ExpandAll()
	if tree.Len() != full {
		t.Fatalf("re-expansion changed the tree: %d -> %d", full, tree.Len())
	}
	if err := tree.Verify(); err != nil {
		t.Fatalf("invariant violated: %v", err)
	}
}

func TestIgnoredNodesWidenCoveringRange(t *testing.T) {
	src := `func fa() { mark(1) }`
	tree := buildTree(t, src)

	at := offsetOf(t, src, "mark")
	body := tree.InnermostAt(at)
	s := tree.Get(body)
	if s.Kind != ScopeFunctionBody {
		t.Fatalf("innermost: got %v", s.Kind)
	}
	if !s.hasIgnored {
		t.Fatalf("scope-free statement must fold into the ignored range")
	}
	if !tree.SpanOf(body).Contains(at) {
		t.Fatalf("covering range must include the ignored statement")
	}
}

func TestInnermostAtBoundaryPrefersChild(t *testing.T) {
	src := `struct S { func f(a: Int) { mark(a) } }`
	tree := buildTree(t, src)

	// The body's opening brace is also inside the parameter list scope's
	// range; the deeper scope wins.
	at := offsetOf(t, src, "{ mark")
	inner := tree.InnermostAt(at)
	if got := tree.Get(inner).Kind; got != ScopeMethodBody {
		t.Fatalf("boundary offset: got %v", got)
	}
}

func TestSpanMemoizationInvalidates(t *testing.T) {
	src := `func fa() { if flag { mark(1) } }`
	tree := buildTree(t, src)

	body := tree.InnermostAt(offsetOf(t, src, "if flag"))
	if tree.Get(body).Kind != ScopeIfStmt {
		// The if statement owns the offset once the body expands.
		t.Fatalf("innermost: got %v", tree.Get(body).Kind)
	}
	before := tree.SpanOf(body)
	tree.ExpandAll()
	after := tree.SpanOf(body)
	if !after.ContainsSpan(before) {
		t.Fatalf("expansion shrank a covering range: %v -> %v", before, after)
	}
	if err := tree.Verify(); err != nil {
		t.Fatalf("invariant violated: %v", err)
	}
}

func TestDumpListsScopes(t *testing.T) {
	tree := buildTree(t, kitchenSink)
	var sb strings.Builder
	if err := Dump(tree, &sb); err != nil {
		t.Fatalf("dump: %v", err)
	}
	out := sb.String()
	for _, want := range []string{
		"file ",
		"struct(whole)",
		"struct(body)",
		"generic-param",
		"method-body",
		"condition-clause",
		"guard-use",
		"closure-params",
		"binds{",
		"lookup->",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("dump missing %q:\n%s", want, out)
		}
	}
	// Indentation encodes depth: the struct body sits under the struct.
	if !strings.Contains(out, "  struct(whole)") {
		t.Fatalf("top-level struct should be indented once:\n%s", out)
	}
}
