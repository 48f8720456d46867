package scopes

import (
	"strata/internal/ast"
)

// ScopeKind discriminates scope nodes. Each kind corresponds to one region
// of syntax with its own visibility rules; the payload fields a kind uses
// are documented on Scope.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota

	// ScopeFile is the root. It covers the whole source text and answers
	// lookups with every top-level declared name, unordered.
	ScopeFile
	// ScopeTopLevelCode wraps one executable statement at file level.
	ScopeTopLevelCode

	// Nominal declarations, split into portions (see Portion).
	ScopeStructDecl
	ScopeClassDecl
	ScopeProtocolDecl
	ScopeExtensionDecl

	// ScopeGenericParams introduces a single generic parameter. Parameters
	// of one declaration form a nested chain so that the constraint of
	// parameter N sees parameters 0..N-1.
	ScopeGenericParams

	// Function-like declarations.
	ScopeFunctionDecl
	ScopeParameterList
	ScopeFunctionBody
	ScopeMethodBody
	// ScopeDefaultArgument isolates a default parameter value: it resolves
	// as if written at the call site, outside the function.
	ScopeDefaultArgument
	// ScopeSpecializeAttr hosts a @specialize attribute whose arguments
	// reference the function's generic parameters even though the attribute
	// text precedes them.
	ScopeSpecializeAttr

	ScopeSubscriptDecl
	ScopeAccessorBody

	// Pattern bindings. A var/let entry splits into the declaration region,
	// the initializer, and (at statement scope) a use region that covers
	// everything after the entry and carries the bound names.
	ScopePatternEntryDecl
	ScopePatternEntryInit
	ScopePatternEntryUse
	// ScopeAttachedWrapper hosts a custom attribute on a var declaration;
	// its text precedes the var keyword.
	ScopeAttachedWrapper

	ScopeBrace
	ScopeIfStmt
	ScopeWhileStmt
	ScopeGuardStmt
	// ScopeConditionClause covers one element of a condition list; clauses
	// chain so each initializer sees bindings from all prior clauses.
	ScopeConditionClause
	// ScopeConditionPatternUse carries the names bound by one binding
	// clause, covering the rest of the condition list.
	ScopeConditionPatternUse
	// ScopeConditionBodyUse hosts the then/loop body; its lookup parent is
	// the deepest condition scope rather than the statement itself.
	ScopeConditionBodyUse
	// ScopeGuardUse covers the statements following a guard; its lookup
	// parent jumps into the guard's condition chain.
	ScopeGuardUse
	ScopeRepeatStmt
	ScopeForStmt
	ScopeForPattern
	ScopeDoStmt
	ScopeCatchClause
	ScopeSwitchStmt
	ScopeCaseClause

	ScopeClosure
	ScopeClosureParams
	ScopeClosureBody
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeFile:
		return "file"
	case ScopeTopLevelCode:
		return "top-level-code"
	case ScopeStructDecl:
		return "struct"
	case ScopeClassDecl:
		return "class"
	case ScopeProtocolDecl:
		return "protocol"
	case ScopeExtensionDecl:
		return "extension"
	case ScopeGenericParams:
		return "generic-param"
	case ScopeFunctionDecl:
		return "function"
	case ScopeParameterList:
		return "params"
	case ScopeFunctionBody:
		return "function-body"
	case ScopeMethodBody:
		return "method-body"
	case ScopeDefaultArgument:
		return "default-argument"
	case ScopeSpecializeAttr:
		return "specialize-attr"
	case ScopeSubscriptDecl:
		return "subscript"
	case ScopeAccessorBody:
		return "accessor-body"
	case ScopePatternEntryDecl:
		return "pattern-entry"
	case ScopePatternEntryInit:
		return "pattern-init"
	case ScopePatternEntryUse:
		return "pattern-use"
	case ScopeAttachedWrapper:
		return "attached-wrapper"
	case ScopeBrace:
		return "brace"
	case ScopeIfStmt:
		return "if"
	case ScopeWhileStmt:
		return "while"
	case ScopeGuardStmt:
		return "guard"
	case ScopeConditionClause:
		return "condition-clause"
	case ScopeConditionPatternUse:
		return "condition-pattern-use"
	case ScopeConditionBodyUse:
		return "condition-body-use"
	case ScopeGuardUse:
		return "guard-use"
	case ScopeRepeatStmt:
		return "repeat"
	case ScopeForStmt:
		return "for"
	case ScopeForPattern:
		return "for-pattern"
	case ScopeDoStmt:
		return "do"
	case ScopeCatchClause:
		return "catch"
	case ScopeSwitchStmt:
		return "switch"
	case ScopeCaseClause:
		return "case"
	case ScopeClosure:
		return "closure"
	case ScopeClosureParams:
		return "closure-params"
	case ScopeClosureBody:
		return "closure-body"
	default:
		return "invalid"
	}
}

// IsNominalFamily reports whether the kind belongs to a nominal type or
// extension declaration. Walking through any portion of such a scope may
// trigger a member search on the declared type.
func (k ScopeKind) IsNominalFamily() bool {
	switch k {
	case ScopeStructDecl, ScopeClassDecl, ScopeProtocolDecl, ScopeExtensionDecl:
		return true
	default:
		return false
	}
}

func scopeKindForItem(kind ast.ItemKind) ScopeKind {
	switch kind {
	case ast.ItemStruct:
		return ScopeStructDecl
	case ast.ItemClass:
		return ScopeClassDecl
	case ast.ItemProtocol:
		return ScopeProtocolDecl
	case ast.ItemExtension:
		return ScopeExtensionDecl
	default:
		return ScopeInvalid
	}
}
