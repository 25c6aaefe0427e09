// Package token defines the token tags and the Token value the Weald
// lexer emits.
//
// Every token carries a Loc rather than a Line/Col pair, so a token's
// position is a plain byte-offset span; resolving it to a human line and
// column is a separate, on-demand step (see the source package).
package token

import "github.com/weald-lang/weald/source"

// Tag identifies the category of a token. The zero value is Invalid,
// which is also a legitimate tag (an Invalid token is a real, located
// token in the stream, never a sentinel for "no token").
type Tag int

const (
	// ── Special ──────────────────────────────────────────────────────────
	Invalid Tag = iota // unrecognised input; Text carries a human-readable message
	End                // end of input; exactly one per token stream, always last
	Newline            // at most one between successive non-newline tokens

	// ── Literals ─────────────────────────────────────────────────────────
	Name    // identifier; Text is the NFC-normalized name
	Integer // Text is the full literal text, incl. sign/prefix/underscores
	Float   // Text is the full literal text, incl. sign/underscores/exponent
	String  // Text is the full literal text, incl. delimiters

	// ── Keywords ─────────────────────────────────────────────────────────
	KwDiscard // "_"
	KwElse
	KwFalse
	KwIf
	KwLet
	KwTrue

	// ── Punctuation ──────────────────────────────────────────────────────
	PParenOpen    // (
	PParenClose   // )
	PBracketOpen  // [
	PBracketClose // ]
	PBraceOpen    // {
	PBraceClose   // }
	PStar         // *
	PBackslash    // \
	PAnd          // &        (a lone '&' always lexes as Invalid; this tag exists for completeness)
	PAndAnd       // &&
	PPercent      // %
	PCaret        // ^
	POr           // |
	POrOr         // ||
	PPlus         // +
	PMinus        // -
	PComma        // ,
	PColon        // :
	PQuestion     // ?
	PDot          // .
	PSlash        // /
	PLess         // <
	PLessEqual    // <=
	PEqual        // =
	PEqualEqual   // ==
	PBang         // !
	PBangEqual    // !=
	PGreaterEqual // >=
	PGreater      // >
)

// tagNames is used only for diagnostics/debugging (Tag.String()); it is
// never consulted by the lexer or parser for classification.
var tagNames = map[Tag]string{
	Invalid: "Invalid", End: "End", Newline: "Newline",
	Name: "Name", Integer: "Integer", Float: "Float", String: "String",
	KwDiscard: "_", KwElse: "else", KwFalse: "false", KwIf: "if", KwLet: "let", KwTrue: "true",
	PParenOpen: "(", PParenClose: ")", PBracketOpen: "[", PBracketClose: "]",
	PBraceOpen: "{", PBraceClose: "}", PStar: "*", PBackslash: "\\",
	PAnd: "&", PAndAnd: "&&", PPercent: "%", PCaret: "^", POr: "|", POrOr: "||",
	PPlus: "+", PMinus: "-", PComma: ",", PColon: ":", PQuestion: "?", PDot: ".",
	PSlash: "/", PLess: "<", PLessEqual: "<=", PEqual: "=", PEqualEqual: "==",
	PBang: "!", PBangEqual: "!=", PGreaterEqual: ">=", PGreater: ">",
}

func (t Tag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return "Tag(?)"
}

// keywords maps reserved literal text to its keyword Tag. Consulted by
// the lexer once a name has been fully scanned and NFC-normalized.
var keywords = map[string]Tag{
	"_":     KwDiscard,
	"else":  KwElse,
	"false": KwFalse,
	"if":    KwIf,
	"let":   KwLet,
	"true":  KwTrue,
}

// LookupKeyword reports whether name is a reserved word and, if so, its
// Tag. A non-keyword name returns (0, false); the caller should emit a
// plain Name token in that case.
func LookupKeyword(name string) (Tag, bool) {
	tag, ok := keywords[name]
	return tag, ok
}

// Token is a single lexical unit produced by the Weald lexer.
//
// Text is populated only where a tag needs it: for
// Invalid (the diagnostic message), Name (the normalized identifier),
// Integer/Float/String (the literal source text). All other tags carry
// an empty Text — their identity is fully determined by Tag.
type Token struct {
	Tag  Tag
	Text string
	Loc  source.Loc
}

// IsPunctuation reports whether t is one of the punctuation tags (as
// opposed to a keyword, literal, or special tag).
func (t Token) IsPunctuation() bool {
	return t.Tag >= PParenOpen && t.Tag <= PGreater
}

// IsKeyword reports whether t is one of the reserved-word tags.
func (t Token) IsKeyword() bool {
	return t.Tag >= KwDiscard && t.Tag <= KwTrue
}
