package scopes

// Portion selects which region of a nominal type or extension declaration
// a scope stands for. The whole-declaration scope covers the header, the
// where portion covers the trailing constraint clause, and the body portion
// covers the braces. Lookup into the implicit self type is answered once
// per declaration no matter which portion the walk enters through.
type Portion uint8

const (
	PortionWhole Portion = iota
	PortionWhere
	PortionBody
)

func (p Portion) String() string {
	switch p {
	case PortionWhere:
		return "where"
	case PortionBody:
		return "body"
	default:
		return "whole"
	}
}
