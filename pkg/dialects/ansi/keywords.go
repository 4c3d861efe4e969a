package ansi

// reservedKeywords may never be used as naked identifiers. Derived
// dialects extend or demote individual entries rather than redefining the
// set.
var reservedKeywords = []string{
	"all",
	"and",
	"as",
	"asc",
	"between",
	"by",
	"case",
	"cast",
	"check",
	"constraint",
	"create",
	"cross",
	"default",
	"delete",
	"desc",
	"distinct",
	"drop",
	"else",
	"end",
	"except",
	"exists",
	"false",
	"foreign",
	"from",
	"full",
	"group",
	"having",
	"if",
	"in",
	"inner",
	"insert",
	"intersect",
	"into",
	"is",
	"join",
	"key",
	"left",
	"like",
	"limit",
	"not",
	"null",
	"offset",
	"on",
	"or",
	"order",
	"outer",
	"primary",
	"references",
	"right",
	"select",
	"set",
	"table",
	"then",
	"true",
	"union",
	"unique",
	"update",
	"using",
	"values",
	"view",
	"when",
	"where",
	"with",
}

// unreservedKeywords get leaf matchers during expansion but remain valid
// identifiers, so "SELECT first FROM t" still parses with first as a
// column name.
var unreservedKeywords = []string{
	"cascade",
	"current",
	"first",
	"following",
	"last",
	"nulls",
	"over",
	"partition",
	"preceding",
	"range",
	"recursive",
	"replace",
	"restrict",
	"row",
	"rows",
	"temporary",
	"unbounded",
}
