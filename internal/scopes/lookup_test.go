package scopes

import (
	"testing"

	"strata/internal/source"
)

func resolveAt(tree *Tree, name string, at uint32) []Collected {
	var c Collector
	Resolve(tree, name, at, &c)
	return c.Results
}

func wantNone(t *testing.T, tree *Tree, name string, at uint32) {
	t.Helper()
	if got := resolveAt(tree, name, at); len(got) != 0 {
		t.Fatalf("lookup %q: expected no results, got %+v", name, got)
	}
}

func wantVis(t *testing.T, tree *Tree, name string, at uint32, vis Visibility) {
	t.Helper()
	got := resolveAt(tree, name, at)
	if len(got) == 0 {
		t.Fatalf("lookup %q: expected a result", name)
	}
	if got[0].Vis != vis {
		t.Fatalf("lookup %q: got %v, want %v", name, got[0].Vis, vis)
	}
}

func TestImplicitSelfMember(t *testing.T) {
	src := `
struct S {
	var x: Int
	func f() { let y = x + 1 }
}
`
	tree := buildTree(t, src)
	at := offsetOf(t, src, "x + 1")
	wantVis(t, tree, "x", at, VisMember)

	var c Collector
	cascade := Resolve(tree, "x", at, &c)
	if cascade != CascadeNo {
		t.Fatalf("lookup inside a method body must be non-cascading, got %v", cascade)
	}
}

func TestPatternSplitDependsOnContext(t *testing.T) {
	stmtSrc := `
func f() {
	var a = 1, b = a + 2
}
`
	tree := buildTree(t, stmtSrc)
	wantVis(t, tree, "a", offsetOf(t, stmtSrc, "a + 2"), VisLocal)

	typeSrc := `
struct T {
	var a = 1, b = a + 2
}
`
	tree = buildTree(t, typeSrc)
	// Inside a type body, one field's default value cannot name a sibling
	// field, even though both hang off the same var.
	wantNone(t, tree, "a", offsetOf(t, typeSrc, "a + 2"))
}

func TestConditionClauseChaining(t *testing.T) {
	src := `
func g() {
	if let x = mk(), y = use(x) {
		sink(x, y)
	} else {
		fallback(0)
	}
}
`
	tree := buildTree(t, src)

	// The second clause's initializer sees the first clause's binding.
	wantVis(t, tree, "x", offsetOf(t, src, "x)"), VisLocal)
	// The first clause's initializer runs before y exists.
	wantNone(t, tree, "y", offsetOf(t, src, "mk()"))
	// The then-body sees every clause through its non-lexical parent.
	body := offsetOf(t, src, "sink")
	wantVis(t, tree, "x", body, VisLocal)
	wantVis(t, tree, "y", body, VisLocal)
	// The else branch never sees the bindings.
	wantNone(t, tree, "x", offsetOf(t, src, "fallback"))
}

func TestGuardBindingsCoverTheRemainder(t *testing.T) {
	src := `
func h() {
	guard let z = mk() else { bail(0) }
	sink(z)
}
`
	tree := buildTree(t, src)
	wantVis(t, tree, "z", offsetOf(t, src, "z)"), VisLocal)
	wantNone(t, tree, "z", offsetOf(t, src, "bail"))
}

func TestTopLevelGuard(t *testing.T) {
	src := `
guard let flag = mk() else { bail(0) }
sink(flag)
`
	tree := buildTree(t, src)
	wantVis(t, tree, "flag", offsetOf(t, src, "flag)"), VisLocal)
	tree.ExpandAll()
	if err := tree.Verify(); err != nil {
		t.Fatalf("invariant violated: %v", err)
	}
}

func TestNestedTypeOpacity(t *testing.T) {
	src := `
let shared = 1
class Outer<T> {
	var secret = 2
	protocol Inner {
		func req()
	}
}
`
	tree := buildTree(t, src)
	at := offsetOf(t, src, "req")

	// The protocol's own members answer.
	wantVis(t, tree, "req", at, VisMember)
	// The enclosing class's members and generics do not leak in.
	wantNone(t, tree, "secret", at)
	wantNone(t, tree, "T", at)
	// Names above the class stay reachable.
	wantVis(t, tree, "shared", at, VisTopLevel)
	wantVis(t, tree, "Outer", at, VisTopLevel)
}

func TestDefaultArgumentIsIsolated(t *testing.T) {
	src := `
let k = 1
func f(a: Int, b: Int = a + k) { body(0) }
`
	tree := buildTree(t, src)
	at := offsetOf(t, src, "a + k")

	// A default value resolves as if at the call site: sibling
	// parameters are invisible, top-level names are not.
	wantNone(t, tree, "a", at)
	wantVis(t, tree, "k", at, VisTopLevel)

	var c Collector
	if cascade := Resolve(tree, "k", at, &c); cascade != CascadeNo {
		t.Fatalf("default argument lookups are non-cascading, got %v", cascade)
	}
}

func TestShadowingOrderIsInnermostFirst(t *testing.T) {
	src := `
let v = 1
func f(v: Int) {
	if let v = mk(v) {
		sink(v)
	}
}
`
	tree := buildTree(t, src)
	got := resolveAt(tree, "v", offsetOf(t, src, "sink(v"))
	if len(got) != 3 {
		t.Fatalf("expected three candidates, got %+v", got)
	}
	if got[0].Vis != VisLocal || got[1].Vis != VisLocal || got[2].Vis != VisTopLevel {
		t.Fatalf("wrong order: %v %v %v", got[0].Vis, got[1].Vis, got[2].Vis)
	}
	// The innermost candidate is the condition binding, declared after
	// the parameter it shadows.
	if got[0].Span.Start <= got[1].Span.Start {
		t.Fatalf("condition binding must come first: %+v", got)
	}

	// A consumer can stop at the first (innermost) answer.
	var first Collector
	first.Max = 1
	Unqualified(tree, tree.AST().Strings.Intern("v"),
		offsetOf(t, src, "sink(v"), Start{}, CascadeUnknown, &first)
	if len(first.Results) != 1 {
		t.Fatalf("early stop ignored: %+v", first.Results)
	}
}

func TestClosureVisibilityWindows(t *testing.T) {
	src := `
let adder = { [x = outer0] (a: Int) in combine(x, a) }
`
	tree := buildTree(t, src)

	body := offsetOf(t, src, "combine")
	wantVis(t, tree, "x", body, VisLocal)
	wantVis(t, tree, "a", body, VisLocal)

	// Capture initializers evaluate outside the closure: neither the
	// parameters nor the captures themselves are visible there.
	capInit := offsetOf(t, src, "outer0")
	wantNone(t, tree, "a", capInit)
}

func TestSpecializeAttributeSeesGenerics(t *testing.T) {
	src := `@specialize(T: Int) func s<T: Greets>(v: Int) { body(0) }`
	tree := buildTree(t, src)
	wantVis(t, tree, "T", offsetOf(t, src, "(T:"), VisGenericParam)
}

func TestLoopCatchAndCaseBindings(t *testing.T) {
	src := `
func m(xs: Int) {
	for item in mk(xs) { sink(item) }
	do { risky(0) } catch err { log1(err) } catch { log2(error) }
	switch xs {
	case let val: take(val)
	default: skip(0)
	}
}
`
	tree := buildTree(t, src)

	wantVis(t, tree, "item", offsetOf(t, src, "sink"), VisLocal)
	// The sequence expression runs before the element exists.
	wantNone(t, tree, "item", offsetOf(t, src, "mk(xs"))
	wantVis(t, tree, "xs", offsetOf(t, src, "mk(xs"), VisLocal)

	wantVis(t, tree, "err", offsetOf(t, src, "log1"), VisLocal)
	// A bare catch binds the implicit error constant.
	wantVis(t, tree, "error", offsetOf(t, src, "log2"), VisLocal)
	wantNone(t, tree, "error", offsetOf(t, src, "risky"))

	wantVis(t, tree, "val", offsetOf(t, src, "take"), VisLocal)
	wantNone(t, tree, "val", offsetOf(t, src, "skip"))
}

func TestChainedBindingTailReportsItemsOnce(t *testing.T) {
	src := `
func f() {
	var a = 1, b = 2
	func g() { body(0) }
	sink(a, b, g)
}
`
	tree := buildTree(t, src)
	at := offsetOf(t, src, "sink")

	// The tail after the binding hangs off the last entry's use scope;
	// the earlier links in the chain must not repeat its declarations.
	got := resolveAt(tree, "g", at)
	if len(got) != 1 {
		t.Fatalf("expected exactly one report for g, got %d: %+v", len(got), got)
	}
	wantVis(t, tree, "a", at, VisLocal)
	wantVis(t, tree, "b", at, VisLocal)
}

func TestExtensionSeesExtendedTypeMembers(t *testing.T) {
	src := `
struct Pair {
	var first = 1
	func sum() -> Int { return first }
}

extension Pair {
	func swapped() { take(first, sum, swapped) }
}
`
	tree := buildTree(t, src)
	at := offsetOf(t, src, "take")

	// The extension's self type is Pair: its stored properties and
	// methods answer the member search alongside the extension's own.
	wantVis(t, tree, "first", at, VisMember)
	wantVis(t, tree, "sum", at, VisMember)
	wantVis(t, tree, "swapped", at, VisMember)

	got := resolveAt(tree, "first", at)
	if len(got) != 1 {
		t.Fatalf("expected exactly one report for first, got %+v", got)
	}
}

func TestAccessorBodies(t *testing.T) {
	src := `
struct Box {
	var raw = 0
	subscript(i: Int) {
		get { return raw + i }
		set { update(i, newValue) }
	}
}
`
	tree := buildTree(t, src)

	get := offsetOf(t, src, "raw + i")
	wantVis(t, tree, "i", get, VisLocal)
	wantVis(t, tree, "raw", get, VisMember)
	wantNone(t, tree, "newValue", get)

	set := offsetOf(t, src, "update")
	wantVis(t, tree, "newValue", set, VisLocal)
	wantVis(t, tree, "i", set, VisLocal)
}

func TestStartContextPicksTheScope(t *testing.T) {
	src := `
func n() {
	if let q = mk() { sink(q) }
}
`
	tree := buildTree(t, src)
	builder := tree.AST()

	fn, ok := builder.Func(builder.File(tree.File()).Entries[0].Item)
	if !ok {
		t.Fatalf("expected func item")
	}
	bodyStmts, _ := builder.Brace(fn.Body)
	ifStmt := bodyStmts.Stmts[0]

	at := offsetOf(t, src, "q)")
	wantVis(t, tree, "q", at, VisLocal)

	// Starting from the if statement itself, the condition bindings are
	// children, not ancestors, and stay invisible.
	var c Collector
	Unqualified(tree, builder.Strings.Intern("q"), at, Start{Stmt: ifStmt},
		CascadeUnknown, &c)
	if len(c.Results) != 0 {
		t.Fatalf("start context ignored: %+v", c.Results)
	}
}

func TestWildcardEnumeratesScope(t *testing.T) {
	src := `
let top = 1
func f(p: Int) { sink(p) }
`
	tree := buildTree(t, src)
	var c Collector
	Unqualified(tree, source.NoStringID, offsetOf(t, src, "sink"), Start{},
		CascadeUnknown, &c)

	names := map[string]bool{}
	for _, r := range c.Results {
		names[tree.AST().Strings.MustLookup(r.Name)] = true
	}
	for _, want := range []string{"p", "top", "f"} {
		if !names[want] {
			t.Fatalf("wildcard enumeration missing %q: %+v", want, names)
		}
	}
}

func TestCascadeResolution(t *testing.T) {
	src := `
struct S {
	var field = seed(0)
}
`
	tree := buildTree(t, src)
	var c Collector
	// A lookup from a field initializer escapes to file level unresolved
	// and becomes cascading there.
	cascade := Resolve(tree, "seed", offsetOf(t, src, "seed"), &c)
	if cascade != CascadeYes {
		t.Fatalf("type-body lookup must cascade, got %v", cascade)
	}
}
