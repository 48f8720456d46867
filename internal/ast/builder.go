package ast

import (
	"strata/internal/source"
)

// Hints suggests arena capacities for the main node families.
type Hints struct{ Files, Items, Stmts, Exprs uint }

// Builder owns every AST arena for a compilation unit. Nodes are allocated
// append-only and freed all at once when the builder is dropped.
type Builder struct {
	FilesArena *Arena[File]
	ItemsArena *Arena[Item]
	StmtsArena *Arena[Stmt]
	ExprsArena *Arena[Expr]

	Nominals   *Arena[NominalItem]
	Funcs      *Arena[FuncItem]
	Subscripts *Arena[SubscriptItem]
	Bindings   *Arena[BindingItem]
	Entries    *Arena[PatternEntry]
	Generics   *Arena[GenericParam]
	Params     *Arena[Param]
	Attrs      *Arena[Attr]
	Patterns   *Arena[Pattern]
	Conds      *Arena[Condition]
	Catches    *Arena[CatchClause]
	Cases      *Arena[SwitchCase]
	Captures   *Arena[Capture]

	Braces    *Arena[BraceStmt]
	ExprStmts *Arena[ExprStmt]
	Returns   *Arena[ReturnStmt]
	ItemStmts *Arena[ItemStmt]
	Ifs       *Arena[IfStmt]
	Whiles    *Arena[WhileStmt]
	Guards    *Arena[GuardStmt]
	Repeats   *Arena[RepeatStmt]
	Fors      *Arena[ForStmt]
	Dos       *Arena[DoStmt]
	Switches  *Arena[SwitchStmt]

	Idents   *Arena[IdentExpr]
	Members  *Arena[MemberExpr]
	Calls    *Arena[CallExpr]
	Binaries *Arena[BinaryExpr]
	Parens   *Arena[ParenExpr]
	Closures *Arena[ClosureExpr]

	Strings *source.Interner
}

// NewBuilder allocates all arenas. If strings is nil a fresh interner is
// created.
func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Items == 0 {
		hints.Items = 1 << 6
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Builder{
		FilesArena: NewArena[File](hints.Files),
		ItemsArena: NewArena[Item](hints.Items),
		StmtsArena: NewArena[Stmt](hints.Stmts),
		ExprsArena: NewArena[Expr](hints.Exprs),
		Nominals:   NewArena[NominalItem](hints.Items),
		Funcs:      NewArena[FuncItem](hints.Items),
		Subscripts: NewArena[SubscriptItem](1 << 3),
		Bindings:   NewArena[BindingItem](hints.Items),
		Entries:    NewArena[PatternEntry](hints.Items),
		Generics:   NewArena[GenericParam](1 << 4),
		Params:     NewArena[Param](1 << 5),
		Attrs:      NewArena[Attr](1 << 3),
		Patterns:   NewArena[Pattern](1 << 6),
		Conds:      NewArena[Condition](1 << 4),
		Catches:    NewArena[CatchClause](1 << 3),
		Cases:      NewArena[SwitchCase](1 << 4),
		Captures:   NewArena[Capture](1 << 3),
		Braces:     NewArena[BraceStmt](1 << 6),
		ExprStmts:  NewArena[ExprStmt](1 << 6),
		Returns:    NewArena[ReturnStmt](1 << 4),
		ItemStmts:  NewArena[ItemStmt](1 << 5),
		Ifs:        NewArena[IfStmt](1 << 4),
		Whiles:     NewArena[WhileStmt](1 << 3),
		Guards:     NewArena[GuardStmt](1 << 3),
		Repeats:    NewArena[RepeatStmt](1 << 2),
		Fors:       NewArena[ForStmt](1 << 3),
		Dos:        NewArena[DoStmt](1 << 2),
		Switches:   NewArena[SwitchStmt](1 << 2),
		Idents:     NewArena[IdentExpr](hints.Exprs),
		Members:    NewArena[MemberExpr](1 << 6),
		Calls:      NewArena[CallExpr](1 << 6),
		Binaries:   NewArena[BinaryExpr](1 << 6),
		Parens:     NewArena[ParenExpr](1 << 4),
		Closures:   NewArena[ClosureExpr](1 << 4),
		Strings:    strings,
	}
}

// --- files ---

func (b *Builder) NewFile(span source.Span) FileID {
	return FileID(b.FilesArena.Allocate(File{Span: span}))
}

func (b *Builder) File(id FileID) *File {
	return b.FilesArena.Get(uint32(id))
}

func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.File(file)
	f.Entries = append(f.Entries, FileEntry{Item: item})
}

func (b *Builder) PushStmt(file FileID, stmt StmtID) {
	f := b.File(file)
	f.Entries = append(f.Entries, FileEntry{Stmt: stmt})
}

// --- items ---

func (b *Builder) Item(id ItemID) *Item {
	return b.ItemsArena.Get(uint32(id))
}

func (b *Builder) newItem(kind ItemKind, span source.Span, payload PayloadID) ItemID {
	return ItemID(b.ItemsArena.Allocate(Item{Kind: kind, Span: span, Payload: payload}))
}

// NewNominal allocates a struct/class/protocol/extension item.
func (b *Builder) NewNominal(kind ItemKind, span source.Span, data NominalItem) ItemID {
	payload := PayloadID(b.Nominals.Allocate(data))
	return b.newItem(kind, span, payload)
}

// Nominal returns the payload for a nominal item.
func (b *Builder) Nominal(id ItemID) (*NominalItem, bool) {
	item := b.Item(id)
	if item == nil || !item.Kind.IsNominal() {
		return nil, false
	}
	return b.Nominals.Get(uint32(item.Payload)), true
}

// NewFunc allocates a func/init/deinit item.
func (b *Builder) NewFunc(kind ItemKind, span source.Span, data FuncItem) ItemID {
	payload := PayloadID(b.Funcs.Allocate(data))
	return b.newItem(kind, span, payload)
}

// Func returns the payload for a function-like item.
func (b *Builder) Func(id ItemID) (*FuncItem, bool) {
	item := b.Item(id)
	if item == nil || !item.Kind.IsFunctionLike() {
		return nil, false
	}
	return b.Funcs.Get(uint32(item.Payload)), true
}

// NewSubscript allocates a subscript item.
func (b *Builder) NewSubscript(span source.Span, data SubscriptItem) ItemID {
	payload := PayloadID(b.Subscripts.Allocate(data))
	return b.newItem(ItemSubscript, span, payload)
}

// Subscript returns the payload for a subscript item.
func (b *Builder) Subscript(id ItemID) (*SubscriptItem, bool) {
	item := b.Item(id)
	if item == nil || item.Kind != ItemSubscript {
		return nil, false
	}
	return b.Subscripts.Get(uint32(item.Payload)), true
}

// NewBinding allocates a var/let item.
func (b *Builder) NewBinding(span source.Span, data BindingItem) ItemID {
	payload := PayloadID(b.Bindings.Allocate(data))
	return b.newItem(ItemBinding, span, payload)
}

// Binding returns the payload for a var/let item.
func (b *Builder) Binding(id ItemID) (*BindingItem, bool) {
	item := b.Item(id)
	if item == nil || item.Kind != ItemBinding {
		return nil, false
	}
	return b.Bindings.Get(uint32(item.Payload)), true
}

func (b *Builder) NewPatternEntry(data PatternEntry) PatternEntryID {
	return PatternEntryID(b.Entries.Allocate(data))
}

func (b *Builder) PatternEntry(id PatternEntryID) *PatternEntry {
	return b.Entries.Get(uint32(id))
}

func (b *Builder) NewGenericParam(data GenericParam) GenericParamID {
	return GenericParamID(b.Generics.Allocate(data))
}

func (b *Builder) GenericParam(id GenericParamID) *GenericParam {
	return b.Generics.Get(uint32(id))
}

func (b *Builder) NewParam(data Param) ParamID {
	return ParamID(b.Params.Allocate(data))
}

func (b *Builder) Param(id ParamID) *Param {
	return b.Params.Get(uint32(id))
}

func (b *Builder) NewAttr(data Attr) AttrID {
	return AttrID(b.Attrs.Allocate(data))
}

func (b *Builder) Attr(id AttrID) *Attr {
	return b.Attrs.Get(uint32(id))
}

// --- statements ---

func (b *Builder) Stmt(id StmtID) *Stmt {
	return b.StmtsArena.Get(uint32(id))
}

func (b *Builder) newStmt(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(b.StmtsArena.Allocate(Stmt{Kind: kind, Span: span, Payload: payload}))
}

