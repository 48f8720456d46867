package source

import "testing"

func TestSpanContains(t *testing.T) {
	s := Span{File: 1, Start: 10, End: 20}

	if !s.Contains(10) {
		t.Fatalf("start offset must be inside")
	}
	if s.Contains(20) {
		t.Fatalf("end offset must be outside")
	}
	if s.Contains(9) || s.Contains(21) {
		t.Fatalf("offsets outside the range must not be contained")
	}
}

func TestSpanContainsSpan(t *testing.T) {
	outer := Span{File: 1, Start: 0, End: 100}
	inner := Span{File: 1, Start: 0, End: 100}
	if !outer.ContainsSpan(inner) {
		t.Fatalf("span must contain itself")
	}
	inner = Span{File: 1, Start: 5, End: 95}
	if !outer.ContainsSpan(inner) {
		t.Fatalf("expected containment")
	}
	if outer.ContainsSpan(Span{File: 2, Start: 5, End: 95}) {
		t.Fatalf("different files must not compare")
	}
	if outer.ContainsSpan(Span{File: 1, Start: 5, End: 101}) {
		t.Fatalf("escaping end must not be contained")
	}
}

func TestSpanCoverAndBefore(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 15, End: 40}

	got := a.Cover(b)
	want := Span{File: 1, Start: 10, End: 40}
	if got != want {
		t.Fatalf("cover: got %v want %v", got, want)
	}

	if !(Span{File: 1, Start: 0, End: 10}).Before(a) {
		t.Fatalf("touching spans are ordered")
	}
	if b.Before(a) {
		t.Fatalf("overlapping spans are not ordered")
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.sta", []byte("let a\nlet bb\n"))

	start, end := fs.Resolve(Span{File: id, Start: 6, End: 12})
	if start.Line != 2 || start.Col != 1 {
		t.Fatalf("start: got %+v", start)
	}
	if end.Line != 2 || end.Col != 7 {
		t.Fatalf("end: got %+v", end)
	}
}

func TestFileSetLoadNormalization(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("crlf.sta", []byte("a\nb"))
	if got := fs.Snippet(Span{File: id, Start: 2, End: 3}); got != "b" {
		t.Fatalf("snippet: got %q", got)
	}
	if got := fs.Span(id); got.End != 3 {
		t.Fatalf("file span: got %v", got)
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	a := in.Intern("x")
	b := in.Intern("y")
	if a == b {
		t.Fatalf("distinct strings must get distinct ids")
	}
	if in.Intern("x") != a {
		t.Fatalf("interning must be stable")
	}
	if got := in.MustLookup(b); got != "y" {
		t.Fatalf("lookup: got %q", got)
	}
	if in.MustLookup(NoStringID) != "" {
		t.Fatalf("sentinel must map to empty string")
	}
}
