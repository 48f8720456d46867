package token

var keywords = map[string]Kind{
	"struct":    KwStruct,
	"class":     KwClass,
	"protocol":  KwProtocol,
	"extension": KwExtension,
	"func":      KwFunc,
	"init":      KwInit,
	"deinit":    KwDeinit,
	"subscript": KwSubscript,
	"var":       KwVar,
	"let":       KwLet,
	"get":       KwGet,
	"set":       KwSet,
	"if":        KwIf,
	"else":      KwElse,
	"while":     KwWhile,
	"guard":     KwGuard,
	"repeat":    KwRepeat,
	"for":       KwFor,
	"in":        KwIn,
	"do":        KwDo,
	"catch":     KwCatch,
	"switch":    KwSwitch,
	"case":      KwCase,
	"default":   KwDefault,
	"return":    KwReturn,
	"where":     KwWhere,
	"true":      KwTrue,
	"false":     KwFalse,
}

// LookupKeyword maps an identifier spelling to its keyword kind, if any.
func LookupKeyword(ident string) (Kind, bool) {
	kind, ok := keywords[ident]
	return kind, ok
}
