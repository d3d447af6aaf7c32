package cpp

import (
	"fmt"
)

// The list of tokens.
const (

	// Single char tokens are themselves.
	ADD       = '+'
	SUB       = '-'
	MUL       = '*'
	QUO       = '/'
	REM       = '%'
	AND       = '&'
	OR        = '|'
	XOR       = '^'
	QUESTION  = '?'
	HASH      = '#'
	LSS       = '<'
	GTR       = '>'
	ASSIGN    = '='
	NOT       = '!'
	BNOT      = '~'
	LPAREN    = '('
	LBRACK    = '['
	LBRACE    = '{'
	COMMA     = ','
	PERIOD    = '.'
	RPAREN    = ')'
	RBRACK    = ']'
	RBRACE    = '}'
	SEMICOLON = ';'
	COLON     = ':'
	AT        = '@'

	ERROR = 10000 + iota
	EOF
	// Directive structure, the lexer never expands anything.
	DIRECTIVE     // #include #  define etc, Val is the full spelling.
	END_DIRECTIVE // New line at the end of a directive.
	HEADER        // <stdio.h>
	PP_ARG        // Raw text after #define NAME or an unknown directive.
	// Annotation comment delimiters.
	ANNOT_START // //@ or /*@
	ANNOT_END   // New line or */
	// Identifiers and basic type literals
	// (these tokens stand for classes of literals)
	IDENT          // main
	INT_CONSTANT   // 12345
	FLOAT_CONSTANT // 123.45
	CHAR_CONSTANT  // 'a'
	STRING         // "abc"

	SHL        // <<
	SHR        // >>
	ADD_ASSIGN // +=
	SUB_ASSIGN // -=
	MUL_ASSIGN // *=
	QUO_ASSIGN // /=
	REM_ASSIGN // %=
	AND_ASSIGN // &=
	OR_ASSIGN  // |=
	XOR_ASSIGN // ^=
	SHL_ASSIGN // <<=
	SHR_ASSIGN // >>=
	LAND       // &&
	LOR        // ||
	ARROW      // ->
	INC        // ++
	DEC        // --
	EQL        // ==
	NEQ        // !=
	LEQ        // <=
	GEQ        // >=
	ELLIPSIS   // ...
	COLONCOLON // ::

	// Annotation only punctuation.
	IMPLIES       // =>
	IFF           // <=>
	DEFINE_ASSIGN // :=
	MARK          // @mark

	// Keywords
	EXTERN
	STATIC
	STORAGE // auto register inline thread_local and friends
	QUALIFIER
	EXTENSION
	ALIGNAS
	TYPEDEF
	STRUCT
	UNION
	ENUM
	PRIMITIVE
	SIGNED
	UNSIGNED
	LONG
	SHORT
	BREAK
	CASE
	CONTINUE
	DEFAULT
	DO
	ELSE
	FOR
	GOTO
	IF
	RETURN
	SWITCH
	WHILE
	SEH_TRY
	SEH_EXCEPT
	SEH_FINALLY
	SEH_LEAVE
	SIZEOF
	ALIGNOF
	OFFSETOF
	GENERIC
	ASM
	TRUE
	FALSE
	NULL
	ATTRIBUTE
	DECLSPEC
	BASED
	CALL_MODIFIER
	PTR_MODIFIER

	// Words that are only keywords inside annotations, Val tells them apart.
	ANNOT_KEYWORD
)

var tokenKindToStr = [...]string{
	HASH:           "'#'",
	AT:             "'@'",
	ERROR:          "error",
	EOF:            "EOF",
	DIRECTIVE:      "cppdirective",
	END_DIRECTIVE:  "enddirective",
	HEADER:         "header",
	PP_ARG:         "pparg",
	ANNOT_START:    "annotstart",
	ANNOT_END:      "annotend",
	CHAR_CONSTANT:  "charconst",
	INT_CONSTANT:   "intconst",
	FLOAT_CONSTANT: "floatconst",
	IDENT:          "ident",
	STRING:         "string",
	ADD:            "'+'",
	SUB:            "'-'",
	MUL:            "'*'",
	QUO:            "'/'",
	REM:            "'%'",
	AND:            "'&'",
	OR:             "'|'",
	XOR:            "'^'",
	SHL:            "'<<'",
	SHR:            "'>>'",
	ADD_ASSIGN:     "'+='",
	SUB_ASSIGN:     "'-='",
	MUL_ASSIGN:     "'*='",
	QUO_ASSIGN:     "'/='",
	REM_ASSIGN:     "'%='",
	AND_ASSIGN:     "'&='",
	OR_ASSIGN:      "'|='",
	XOR_ASSIGN:     "'^='",
	SHL_ASSIGN:     "'<<='",
	SHR_ASSIGN:     "'>>='",
	LAND:           "'&&'",
	LOR:            "'||'",
	ARROW:          "'->'",
	INC:            "'++'",
	DEC:            "'--'",
	EQL:            "'=='",
	LSS:            "'<'",
	GTR:            "'>'",
	ASSIGN:         "'='",
	NOT:            "'!'",
	BNOT:           "'~'",
	NEQ:            "'!='",
	LEQ:            "'<='",
	GEQ:            "'>='",
	ELLIPSIS:       "'...'",
	COLONCOLON:     "'::'",
	IMPLIES:        "'=>'",
	IFF:            "'<=>'",
	DEFINE_ASSIGN:  "':='",
	MARK:           "'@mark'",
	LPAREN:         "'('",
	LBRACK:         "'['",
	LBRACE:         "'{'",
	COMMA:          "','",
	PERIOD:         "'.'",
	RPAREN:         "')'",
	RBRACK:         "']'",
	RBRACE:         "'}'",
	SEMICOLON:      "';'",
	COLON:          "':'",
	QUESTION:       "'?'",
	EXTERN:         "extern",
	STATIC:         "static",
	STORAGE:        "storageclass",
	QUALIFIER:      "qualifier",
	EXTENSION:      "__extension__",
	ALIGNAS:        "alignas",
	TYPEDEF:        "typedef",
	STRUCT:         "struct",
	UNION:          "union",
	ENUM:           "enum",
	PRIMITIVE:      "primitive",
	SIGNED:         "signed",
	UNSIGNED:       "unsigned",
	LONG:           "long",
	SHORT:          "short",
	BREAK:          "break",
	CASE:           "case",
	CONTINUE:       "continue",
	DEFAULT:        "default",
	DO:             "do",
	ELSE:           "else",
	FOR:            "for",
	GOTO:           "goto",
	IF:             "if",
	RETURN:         "return",
	SWITCH:         "switch",
	WHILE:          "while",
	SEH_TRY:        "__try",
	SEH_EXCEPT:     "__except",
	SEH_FINALLY:    "__finally",
	SEH_LEAVE:      "__leave",
	SIZEOF:         "sizeof",
	ALIGNOF:        "alignof",
	OFFSETOF:       "offsetof",
	GENERIC:        "_Generic",
	ASM:            "asm",
	TRUE:           "true",
	FALSE:          "false",
	NULL:           "null",
	ATTRIBUTE:      "__attribute__",
	DECLSPEC:       "__declspec",
	BASED:          "__based",
	CALL_MODIFIER:  "callmodifier",
	PTR_MODIFIER:   "ptrmodifier",
	ANNOT_KEYWORD:  "annotkeyword",
}

var keywordLUT = map[string]TokenKind{
	"extern":        EXTERN,
	"static":        STATIC,
	"auto":          STORAGE,
	"register":      STORAGE,
	"inline":        STORAGE,
	"__inline":      STORAGE,
	"__inline__":    STORAGE,
	"__forceinline": STORAGE,
	"thread_local":  STORAGE,
	"__thread":      STORAGE,
	"const":         QUALIFIER,
	"constexpr":     QUALIFIER,
	"volatile":      QUALIFIER,
	"restrict":      QUALIFIER,
	"__restrict__":  QUALIFIER,
	"_Atomic":       QUALIFIER,
	"_Noreturn":     QUALIFIER,
	"noreturn":      QUALIFIER,
	"_Nonnull":      QUALIFIER,
	"__extension__": EXTENSION,
	"alignas":       ALIGNAS,
	"_Alignas":      ALIGNAS,
	"typedef":       TYPEDEF,
	"struct":        STRUCT,
	"union":         UNION,
	"enum":          ENUM,
	"signed":        SIGNED,
	"unsigned":      UNSIGNED,
	"long":          LONG,
	"short":         SHORT,
	"break":         BREAK,
	"case":          CASE,
	"continue":      CONTINUE,
	"default":       DEFAULT,
	"do":            DO,
	"else":          ELSE,
	"for":           FOR,
	"goto":          GOTO,
	"if":            IF,
	"return":        RETURN,
	"switch":        SWITCH,
	"while":         WHILE,
	"__try":         SEH_TRY,
	"__except":      SEH_EXCEPT,
	"__finally":     SEH_FINALLY,
	"__leave":       SEH_LEAVE,
	"sizeof":        SIZEOF,
	"__alignof__":   ALIGNOF,
	"__alignof":     ALIGNOF,
	"_alignof":      ALIGNOF,
	"alignof":       ALIGNOF,
	"_Alignof":      ALIGNOF,
	"offsetof":      OFFSETOF,
	"_Generic":      GENERIC,
	"asm":           ASM,
	"__asm__":       ASM,
	"__asm":         ASM,
	"true":          TRUE,
	"TRUE":          TRUE,
	"false":         FALSE,
	"FALSE":         FALSE,
	"NULL":          NULL,
	"nullptr":       NULL,
	"__attribute__": ATTRIBUTE,
	"__attribute":   ATTRIBUTE,
	"__declspec":    DECLSPEC,
	"__based":       BASED,
	"__cdecl":       CALL_MODIFIER,
	"__clrcall":     CALL_MODIFIER,
	"__stdcall":     CALL_MODIFIER,
	"__fastcall":    CALL_MODIFIER,
	"__thiscall":    CALL_MODIFIER,
	"__vectorcall":  CALL_MODIFIER,
	"__restrict":    PTR_MODIFIER,
	"__uptr":        PTR_MODIFIER,
	"__sptr":        PTR_MODIFIER,
	"_unaligned":    PTR_MODIFIER,
	"__unaligned":   PTR_MODIFIER,
}

// Reserved inside //@ and /*@ spans in addition to the C keywords.
var annotKeywordLUT = map[string]bool{
	"Require":       true,
	"Ensure":        true,
	"With":          true,
	"forall":        true,
	"exists":        true,
	"emp":           true,
	"data_at":       true,
	"undef_data_at": true,
	"field_address": true,
	"__return":      true,
	"INT_MAX":       true,
	"INT_MIN":       true,
	"Given":         true,
	"Assert":        true,
	"Inv":           true,
	"by":            true,
	"which":         true,
	"implies":       true,
	"Extern":        true,
	"Coq":           true,
	"Import":        true,
	"include":       true,
	"strategies":    true,
	"Field":         true,
	"Record":        true,
	"where":         true,
	"Z":             true,
	"nat":           true,
	"list":          true,
	"prod":          true,
	"Prop":          true,
	"Assertion":     true,
}

func init() {
	for _, n := range []string{
		"bool", "char", "int", "float", "double", "void",
		"size_t", "ssize_t", "ptrdiff_t", "intptr_t", "uintptr_t",
		"charptr_t", "nullptr_t", "max_align_t",
		"int8_t", "int16_t", "int32_t", "int64_t",
		"uint8_t", "uint16_t", "uint32_t", "uint64_t",
		"char8_t", "char16_t", "char32_t", "char64_t",
	} {
		keywordLUT[n] = PRIMITIVE
	}
}

type TokenKind uint32

func (tk TokenKind) String() string {
	if uint32(tk) >= uint32(len(tokenKindToStr)) {
		return "Unknown"
	}
	ret := tokenKindToStr[tk]
	if ret == "" {
		return "Unknown"
	}
	return ret
}

// IsAnnotationKeyword reports whether s is reserved inside annotations.
func IsAnnotationKeyword(s string) bool {
	return annotKeywordLUT[s]
}

type FilePos struct {
	File   string
	Line   int
	Col    int
	Offset int
}

func (pos FilePos) String() string {
	return fmt.Sprintf("%s:%d:%d", pos.File, pos.Line, pos.Col)
}

// Token represents a grouping of characters
// that provide semantic meaning in a C program.
//
// Val is always the exact source text of the token and Trivia the
// whitespace and comments between the previous token and this one,
// so concatenating Trivia+Val over a whole stream gives back the input.
type Token struct {
	Kind   TokenKind
	Val    string
	Pos    FilePos
	End    FilePos
	Trivia string
}

func (t Token) String() string {
	return fmt.Sprintf("%s at %s", t.Val, t.Pos)
}

// Is reports whether t is the annotation keyword kw.
func (t *Token) Is(kw string) bool {
	return t.Kind == ANNOT_KEYWORD && t.Val == kw
}
