package ast

import (
	"strata/internal/source"
)

// PatternKind discriminates pattern nodes.
type PatternKind uint8

const (
	PatternInvalid PatternKind = iota
	PatternName
	PatternWildcard
	PatternTuple
)

func (k PatternKind) String() string {
	switch k {
	case PatternName:
		return "name"
	case PatternWildcard:
		return "wildcard"
	case PatternTuple:
		return "tuple"
	default:
		return "invalid"
	}
}

// Pattern is the header shared by all patterns. Name patterns store the
// bound identifier inline; tuples reference element patterns.
type Pattern struct {
	Kind  PatternKind
	Span  source.Span
	Name  source.StringID // PatternName only
	Elems []PatternID     // PatternTuple only
}

// BoundName is one identifier introduced by a pattern.
type BoundName struct {
	Name source.StringID
	Span source.Span
	Pat  PatternID
}

// BoundNames appends every name bound by the pattern, in source order.
func (b *Builder) BoundNames(id PatternID, out []BoundName) []BoundName {
	pat := b.Patterns.Get(uint32(id))
	if pat == nil {
		return out
	}
	switch pat.Kind {
	case PatternName:
		out = append(out, BoundName{Name: pat.Name, Span: pat.Span, Pat: id})
	case PatternTuple:
		for _, elem := range pat.Elems {
			out = b.BoundNames(elem, out)
		}
	case PatternWildcard, PatternInvalid:
	}
	return out
}
