package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal.
	IntLit
	// StringLit represents a string literal.
	StringLit

	KwStruct    // struct
	KwClass     // class
	KwProtocol  // protocol
	KwExtension // extension
	KwFunc      // func
	KwInit      // init
	KwDeinit    // deinit
	KwSubscript // subscript
	KwVar       // var
	KwLet       // let
	KwGet       // get
	KwSet       // set
	KwIf        // if
	KwElse      // else
	KwWhile     // while
	KwGuard     // guard
	KwRepeat    // repeat
	KwFor       // for
	KwIn        // in
	KwDo        // do
	KwCatch     // catch
	KwSwitch    // switch
	KwCase      // case
	KwDefault   // default
	KwReturn    // return
	KwWhere     // where
	KwTrue      // true
	KwFalse     // false

	LParen     // (
	RParen     // )
	LBrace     // {
	RBrace     // }
	LBracket   // [
	RBracket   // ]
	Lt         // <
	Gt         // >
	Comma      // ,
	Colon      // :
	Semicolon  // ;
	Dot        // .
	Assign     // =
	EqEq       // ==
	BangEq     // !=
	Plus       // +
	Minus      // -
	Star       // *
	Slash      // /
	Arrow      // ->
	At         // @
	Underscore // _
)

var kindNames = [...]string{
	Invalid:     "invalid",
	EOF:         "eof",
	Ident:       "ident",
	IntLit:      "int",
	StringLit:   "string",
	KwStruct:    "struct",
	KwClass:     "class",
	KwProtocol:  "protocol",
	KwExtension: "extension",
	KwFunc:      "func",
	KwInit:      "init",
	KwDeinit:    "deinit",
	KwSubscript: "subscript",
	KwVar:       "var",
	KwLet:       "let",
	KwGet:       "get",
	KwSet:       "set",
	KwIf:        "if",
	KwElse:      "else",
	KwWhile:     "while",
	KwGuard:     "guard",
	KwRepeat:    "repeat",
	KwFor:       "for",
	KwIn:        "in",
	KwDo:        "do",
	KwCatch:     "catch",
	KwSwitch:    "switch",
	KwCase:      "case",
	KwDefault:   "default",
	KwReturn:    "return",
	KwWhere:     "where",
	KwTrue:      "true",
	KwFalse:     "false",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
	Lt:          "<",
	Gt:          ">",
	Comma:       ",",
	Colon:       ":",
	Semicolon:   ";",
	Dot:         ".",
	Assign:      "=",
	EqEq:        "==",
	BangEq:      "!=",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Slash:       "/",
	Arrow:       "->",
	At:          "@",
	Underscore:  "_",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}
