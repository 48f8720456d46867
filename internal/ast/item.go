package ast

import (
	"strata/internal/source"
)

// ItemKind discriminates declaration nodes.
type ItemKind uint8

const (
	ItemInvalid ItemKind = iota
	ItemStruct
	ItemClass
	ItemProtocol
	ItemExtension
	ItemFunc
	ItemInit
	ItemDeinit
	ItemSubscript
	ItemBinding // var / let declaration with one or more pattern entries
)

func (k ItemKind) String() string {
	switch k {
	case ItemStruct:
		return "struct"
	case ItemClass:
		return "class"
	case ItemProtocol:
		return "protocol"
	case ItemExtension:
		return "extension"
	case ItemFunc:
		return "func"
	case ItemInit:
		return "init"
	case ItemDeinit:
		return "deinit"
	case ItemSubscript:
		return "subscript"
	case ItemBinding:
		return "binding"
	default:
		return "invalid"
	}
}

// IsNominal reports whether the item introduces a nominal type scope
// (struct/class/protocol) or extends one (extension).
func (k ItemKind) IsNominal() bool {
	switch k {
	case ItemStruct, ItemClass, ItemProtocol, ItemExtension:
		return true
	default:
		return false
	}
}

// IsFunctionLike reports whether the item carries a parameter list and body.
func (k ItemKind) IsFunctionLike() bool {
	switch k {
	case ItemFunc, ItemInit, ItemDeinit:
		return true
	default:
		return false
	}
}

// Item is the header shared by all declarations; the payload lives in the
// per-kind arena selected by Kind.
type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

// NominalItem is the payload for struct/class/protocol/extension.
// For extensions Name refers to the extended type, not a new one.
type NominalItem struct {
	Name          source.StringID
	NameSpan      source.Span
	GenericParams []GenericParamID
	WhereSpan     source.Span // zero when there is no where clause
	Members       []ItemID
	BodySpan      source.Span // braces, inclusive
}

// FuncItem is the payload for func/init/deinit.
type FuncItem struct {
	Name          source.StringID // NoStringID for init/deinit
	NameSpan      source.Span
	Attrs         []AttrID
	GenericParams []GenericParamID
	Params        []ParamID
	ParamsSpan    source.Span // parens, inclusive; zero for deinit
	WhereSpan     source.Span
	Body          StmtID // brace statement; NoStmtID for protocol requirements
}

// SubscriptItem is the payload for subscript declarations.
type SubscriptItem struct {
	Params     []ParamID
	ParamsSpan source.Span
	GetBody    StmtID // brace
	SetBody    StmtID // brace; NoStmtID for get-only subscripts
	BodySpan   source.Span
}

// BindingItem is the payload for var/let declarations.
type BindingItem struct {
	IsVar   bool
	Attrs   []AttrID // attached property wrappers
	Entries []PatternEntryID
	KwSpan  source.Span // the var/let keyword itself
}

// PatternEntry is one `pattern = initializer` element of a binding list,
// optionally carrying accessor bodies (computed storage).
type PatternEntry struct {
	Pat     PatternID
	Init    ExprID // NoExprID when uninitialized
	GetBody StmtID // brace; computed vars only
	SetBody StmtID
	Span    source.Span
}

// GenericParam declares a single generic parameter with an optional bound.
// The constraint of parameter N may reference parameters 0..N-1.
type GenericParam struct {
	Name      source.StringID
	NameSpan  source.Span
	Bound     source.StringID // NoStringID when unconstrained
	BoundSpan source.Span
	Span      source.Span
}

// Param is a function/subscript/closure parameter.
type Param struct {
	Name     source.StringID
	NameSpan source.Span
	TypeName source.StringID // NoStringID when inferred (closures)
	TypeSpan source.Span
	Default  ExprID // NoExprID when absent
	Span     source.Span
}

// AttrKind discriminates attribute nodes.
type AttrKind uint8

const (
	AttrInvalid AttrKind = iota
	// AttrCustom names a wrapper type attached to a var declaration.
	AttrCustom
	// AttrSpecialize is the @specialize(...) function attribute.
	AttrSpecialize
)

// Attr is an @attribute occurrence.
type Attr struct {
	Kind     AttrKind
	Name     source.StringID
	NameSpan source.Span
	Args     []ExprID
	ArgsSpan source.Span // parens, zero when absent
	Span     source.Span
}
