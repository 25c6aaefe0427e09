// Package lexer implements the Weald lexer (tokeniser).
//
// Call [New] with a [source.Source] and then [Lexer.Tokenize] once to
// get the complete token stream plus any problems reported along the
// way. The lexer walks runes through a cursor (cursor.go) since Weald's
// grammar is Unicode-aware: names, whitespace, and the forbidden-
// character set are all defined in terms of Unicode categories, not
// ASCII ranges.
//
// Single pass, no global state, multi-character operators resolved via
// one rune of lookahead, identifiers scanned first and classified
// against a keyword table afterward. Line comments are introduced by
// "--"; a lone "/" is a real division operator. The lexer never returns
// early on bad input: every malformed span still produces a located
// token, with the reason recorded both on the token (for Invalid) and in
// the problems buffer.
package lexer

import (
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/weald-lang/weald/problem"
	"github.com/weald-lang/weald/runeclass"
	"github.com/weald-lang/weald/source"
	"github.com/weald-lang/weald/token"
)

// Lexer tokenises a single [source.Source]. Create one with [New] and
// call [Lexer.Tokenize] exactly once.
type Lexer struct {
	src      *source.Source
	cur      *cursor
	problems problem.Problems
}

// New creates a Lexer over src.
func New(src *source.Source) *Lexer {
	return &Lexer{src: src, cur: newCursor(src)}
}

// Tokenize scans the whole source and returns its token stream
// (terminated by exactly one End) together with the problems
// encountered. The lexer never aborts: every rune outside whitespace,
// newlines, comments, a leading BOM and a shebang line ends up inside
// some token, even if that token is Invalid.
func (lx *Lexer) Tokenize() ([]token.Token, *problem.Problems) {
	lx.consumeBOMAndShebang()

	var tokens []token.Token
	for {
		nlLoc, sawNewline := lx.consumeIgnorableRun()
		if sawNewline && len(tokens) > 0 {
			tokens = append(tokens, token.Token{Tag: token.Newline, Loc: nlLoc})
		}
		if lx.cur.isEmpty() {
			break
		}
		tokens = append(tokens, lx.scanOne())
	}
	tokens = append(tokens, token.Token{Tag: token.End, Loc: lx.cur.here()})
	return tokens, &lx.problems
}

func (lx *Lexer) consumeBOMAndShebang() {
	lx.cur.matchRune('\uFEFF')
	if lx.cur.checkString("#!") {
		for !lx.cur.isEmpty() && !lx.cur.check(runeclass.IsNewline) {
			lx.cur.next()
		}
	}
}

// consumeIgnorableRun greedily consumes whitespace, line comments, and
// newlines. It reports whether any newline was part of the run, and the
// Loc spanning the whole run (used for the single collapsed Newline
// token the caller emits).
func (lx *Lexer) consumeIgnorableRun() (source.Loc, bool) {
	start := lx.cur.mark()
	sawNewline := false
	for {
		switch {
		case lx.cur.check(runeclass.IsWhitespace):
			lx.cur.next()
		case lx.cur.check(runeclass.IsNewline):
			sawNewline = true
			r := lx.cur.next()
			if r == '\r' {
				lx.cur.matchRune('\n')
			}
		case lx.cur.checkString("--"):
			lx.cur.next()
			lx.cur.next()
			lx.consumeCommentBody()
		default:
			return lx.cur.locSince(start), sawNewline
		}
	}
}

func (lx *Lexer) consumeCommentBody() {
	for !lx.cur.isEmpty() && !lx.cur.check(runeclass.IsNewline) {
		r := lx.cur.peek()
		if runeclass.IsForbidden(r) {
			loc := lx.cur.here()
			lx.cur.next()
			lx.problems.Add("syntax/invalid-token", loc, forbiddenMessage(r))
			continue
		}
		lx.cur.next()
	}
}

// scanOne dispatches on the current rune to produce exactly one token.
func (lx *Lexer) scanOne() token.Token {
	r := lx.cur.peek()
	switch {
	case runeclass.IsDecimalDigit(r), runeclass.IsSign(r) && runeclass.IsDecimalDigit(lx.cur.peekAhead(1)):
		return lx.scanNumber()
	case runeclass.IsNameStart(r):
		return lx.scanName()
	case r == '"':
		if lx.cur.checkString(`"""`) {
			return lx.scanStringBlock(false)
		}
		return lx.scanStringLine(false)
	case r == '`':
		if lx.cur.checkString("```") {
			return lx.scanStringBlock(true)
		}
		return lx.scanStringLine(true)
	case runeclass.IsPunctuation(r):
		return lx.scanPunctuation()
	default:
		return lx.scanInvalidRune()
	}
}

// ── Numbers ──────────────────────────────────────────────────────────────

func (lx *Lexer) scanNumber() token.Token {
	start := lx.cur.mark()
	if lx.cur.check(runeclass.IsSign) {
		lx.cur.next()
	}

	isFloat := false
	switch {
	case lx.cur.checkString("0x"):
		lx.cur.next()
		lx.cur.next()
		lx.scanDigitGroup(runeclass.IsHexDigit)
	case lx.cur.checkString("0b"):
		lx.cur.next()
		lx.cur.next()
		lx.scanDigitGroup(runeclass.IsBinaryDigit)
	default:
		lx.scanDigitGroup(runeclass.IsDecimalDigit)
		if lx.cur.checkRune('.') && runeclass.IsDecimalDigit(lx.cur.peekAhead(1)) {
			isFloat = true
			lx.cur.next()
			lx.scanDigitGroup(runeclass.IsDecimalDigit)
		}
		if lx.cur.checkRune('e') {
			save := lx.cur.pos
			lx.cur.next()
			if lx.cur.check(runeclass.IsSign) {
				lx.cur.next()
			}
			if lx.cur.check(runeclass.IsDecimalDigit) {
				isFloat = true
				lx.scanDigitGroup(runeclass.IsDecimalDigit)
			} else {
				lx.cur.pos = save
			}
		}
	}

	if lx.cur.check(runeclass.IsNameChar) {
		hint := trailingNumberHint(lx.cur.peek())
		lx.cur.nextWhile(runeclass.IsNameChar)
		loc := lx.cur.locSince(start)
		lx.problems.Add("syntax/invalid-token", loc, hint)
		return token.Token{Tag: token.Invalid, Text: hint, Loc: loc}
	}

	loc := lx.cur.locSince(start)
	text := lx.cur.textSince(start)
	if isFloat {
		return token.Token{Tag: token.Float, Text: text, Loc: loc}
	}
	return token.Token{Tag: token.Integer, Text: text, Loc: loc}
}

// scanDigitGroup consumes a run of digits (per isDigit) and underscore
// separators, reporting syntax/invalid-token ("invalid underscore
// placement") for any underscore not immediately followed by another
// digit.
func (lx *Lexer) scanDigitGroup(isDigit func(rune) bool) {
	for {
		switch {
		case lx.cur.check(isDigit):
			lx.cur.next()
		case lx.cur.checkRune('_'):
			loc := lx.cur.here()
			lx.cur.next()
			if !lx.cur.check(isDigit) {
				lx.problems.Add("syntax/invalid-token", loc, "invalid underscore placement")
				return
			}
		default:
			return
		}
	}
}

func trailingNumberHint(r rune) string {
	switch r {
	case 'X':
		return "use '0x' (lowercase) for a hex literal"
	case 'B':
		return "use '0b' (lowercase) for a binary literal"
	case '-':
		return "insert a space before '-'"
	case 'e':
		return "missing exponent digits after 'e'"
	case 'E':
		return "use a lowercase 'e' for the exponent"
	default:
		return "unexpected character after number literal"
	}
}

// ── Names and keywords ──────────────────────────────────────────────────

func (lx *Lexer) scanName() token.Token {
	start := lx.cur.mark()
	lx.cur.next()
	lx.cur.nextWhile(runeclass.IsNameContinue)

	for lx.cur.check(runeclass.IsNameMedial) {
		medialLoc := lx.cur.here()
		lx.cur.next()
		if lx.cur.nextWhile(runeclass.IsNameContinue) == 0 {
			lx.problems.Add("syntax/invalid-token", medialLoc, "invalid hyphen placement")
			break
		}
	}

	if lx.cur.check(runeclass.IsNameFinal) {
		lx.cur.next()
	}

	if lx.cur.check(runeclass.IsNameChar) {
		trailingStart := lx.cur.mark()
		lx.cur.nextWhile(runeclass.IsNameChar)
		lx.problems.Add("syntax/invalid-token", lx.cur.locSince(trailingStart), "trailing characters after name final")
	}

	if lx.cur.check(runeclass.IsBidiMark) {
		bidiStart := lx.cur.mark()
		lx.cur.next()
		lx.problems.Add("syntax/invalid-token", lx.cur.locSince(bidiStart), "embedded bidirectional mark in name")
	}

	loc := lx.cur.locSince(start)
	normalized := norm.NFC.String(lx.cur.textSince(start))
	if tag, ok := token.LookupKeyword(normalized); ok {
		return token.Token{Tag: tag, Loc: loc}
	}
	return token.Token{Tag: token.Name, Text: normalized, Loc: loc}
}

// ── Strings ──────────────────────────────────────────────────────────────

// scanStringLine scans a single-line string: standard ("…") when raw is
// false, backtick-delimited (`…`) when raw is true.
func (lx *Lexer) scanStringLine(raw bool) token.Token {
	start := lx.cur.mark()
	lx.cur.next() // opening delimiter
	closer := '"'
	if raw {
		closer = '`'
	}

	for {
		if lx.cur.isEmpty() {
			return lx.unclosedString(start)
		}
		if lx.cur.checkRune(closer) {
			break
		}
		if lx.cur.checkRune('\n') {
			return lx.newlineInString(start)
		}
		if !raw && lx.cur.checkRune('\\') {
			lx.scanEscape()
			continue
		}
		r := lx.cur.peek()
		if runeclass.IsForbidden(r) {
			loc := lx.cur.here()
			lx.cur.next()
			lx.problems.Add("syntax/invalid-token", loc, forbiddenMessage(r))
			continue
		}
		lx.cur.next()
	}
	lx.cur.next() // closing delimiter
	loc := lx.cur.locSince(start)
	return token.Token{Tag: token.String, Text: lx.cur.textSince(start), Loc: loc}
}

// scanStringBlock scans a triple-delimited string: standard ("""…""")
// when raw is false, raw (```…```) when raw is true. Newlines are
// permitted freely in both.
func (lx *Lexer) scanStringBlock(raw bool) token.Token {
	start := lx.cur.mark()
	closer := `"""`
	if raw {
		closer = "```"
	}
	lx.cur.pos += 3

	for {
		if lx.cur.isEmpty() {
			return lx.unclosedString(start)
		}
		if lx.cur.checkString(closer) {
			break
		}
		if !raw && lx.cur.checkRune('\\') {
			lx.scanEscape()
			continue
		}
		r := lx.cur.peek()
		if runeclass.IsForbidden(r) && !runeclass.IsNewline(r) {
			loc := lx.cur.here()
			lx.cur.next()
			lx.problems.Add("syntax/invalid-token", loc, forbiddenMessage(r))
			continue
		}
		lx.cur.next()
	}
	lx.cur.matchString(closer)
	loc := lx.cur.locSince(start)
	return token.Token{Tag: token.String, Text: lx.cur.textSince(start), Loc: loc}
}

func (lx *Lexer) unclosedString(start uint32) token.Token {
	loc := lx.cur.locSince(start)
	lx.problems.Add("syntax/invalid-token", loc, "unclosed string literal")
	return token.Token{Tag: token.Invalid, Text: "unclosed string literal", Loc: loc}
}

func (lx *Lexer) newlineInString(start uint32) token.Token {
	loc := lx.cur.locSince(start)
	lx.problems.Add("syntax/invalid-token", loc, "newline in string literal")
	return token.Token{Tag: token.Invalid, Text: "newline in string literal", Loc: loc}
}

// scanEscape consumes one backslash escape sequence inside a standard
// string, validating its shape and reporting syntax/invalid-escape for
// anything malformed. It never builds the unescaped value — that is the
// parser's job once the whole literal has been tokenised.
func (lx *Lexer) scanEscape() {
	start := lx.cur.mark()
	lx.cur.next() // backslash
	if lx.cur.isEmpty() {
		// Input ends right after the backslash: the caller reports the
		// whole literal as an unclosed string, so nothing is added here.
		return
	}

	switch {
	case lx.cur.checkRune('"'), lx.cur.checkRune('\\'), lx.cur.checkRune('e'),
		lx.cur.checkRune('n'), lx.cur.checkRune('r'), lx.cur.checkRune('t'):
		lx.cur.next()

	case lx.cur.checkRune('x'):
		lx.cur.next()
		n := 0
		for n < 2 && lx.cur.check(runeclass.IsHexDigit) {
			lx.cur.next()
			n++
		}
		if n != 2 {
			lx.problems.Add("syntax/invalid-escape", lx.cur.locSince(start), "\\x escape requires exactly two hex digits")
		}

	case lx.cur.checkRune('u'):
		lx.cur.next()
		if lx.cur.matchRune('{') {
			n := 0
			for n < 6 && lx.cur.check(runeclass.IsHexDigit) {
				lx.cur.next()
				n++
			}
			if n == 0 || !lx.cur.matchRune('}') {
				lx.problems.Add("syntax/invalid-escape", lx.cur.locSince(start), "\\u{...} escape requires 1 to 6 hex digits followed by '}'")
			}
		} else {
			n := 0
			for n < 4 && lx.cur.check(runeclass.IsHexDigit) {
				lx.cur.next()
				n++
			}
			if n != 4 {
				lx.problems.Add("syntax/invalid-escape", lx.cur.locSince(start), "\\u escape requires exactly four hex digits")
			}
		}

	case lx.cur.checkRune('\n'):
		lx.cur.next()
		lx.cur.nextWhile(runeclass.IsIgnorable)

	default:
		bad := lx.cur.peek()
		lx.cur.next()
		lx.problems.Add("syntax/invalid-escape", lx.cur.locSince(start), "unknown escape sequence '\\%c'", bad)
	}
}

// ── Punctuation ──────────────────────────────────────────────────────────

func (lx *Lexer) scanPunctuation() token.Token {
	start := lx.cur.mark()
	r := lx.cur.next()

	single := func(tag token.Tag) token.Token {
		return token.Token{Tag: tag, Loc: lx.cur.locSince(start)}
	}
	invalid := func(msg string) token.Token {
		loc := lx.cur.locSince(start)
		lx.problems.Add("syntax/invalid-token", loc, msg)
		return token.Token{Tag: token.Invalid, Text: msg, Loc: loc}
	}

	switch r {
	case '(':
		return single(token.PParenOpen)
	case ')':
		return single(token.PParenClose)
	case '[':
		return single(token.PBracketOpen)
	case ']':
		return single(token.PBracketClose)
	case '{':
		return single(token.PBraceOpen)
	case '}':
		return single(token.PBraceClose)
	case '*':
		return single(token.PStar)
	case '\\':
		return single(token.PBackslash)
	case '&':
		if lx.cur.matchRune('&') {
			return single(token.PAndAnd)
		}
		return invalid("standalone '&' is not a valid token")
	case '%':
		return single(token.PPercent)
	case '^':
		return single(token.PCaret)
	case '|':
		if lx.cur.matchRune('|') {
			return single(token.POrOr)
		}
		return single(token.POr)
	case '+':
		return single(token.PPlus)
	case '-':
		return single(token.PMinus)
	case ',':
		return single(token.PComma)
	case ':':
		return single(token.PColon)
	case '?':
		return single(token.PQuestion)
	case '.':
		return single(token.PDot)
	case '/':
		return single(token.PSlash)
	case '<':
		if lx.cur.matchRune('=') {
			return single(token.PLessEqual)
		}
		return single(token.PLess)
	case '=':
		if lx.cur.matchRune('=') {
			return single(token.PEqualEqual)
		}
		return single(token.PEqual)
	case '!':
		if lx.cur.matchRune('=') {
			return single(token.PBangEqual)
		}
		return single(token.PBang)
	case '>':
		if lx.cur.matchRune('=') {
			return single(token.PGreaterEqual)
		}
		return single(token.PGreater)
	default:
		return invalid(fmt.Sprintf("unexpected character %q", r))
	}
}

// ── Invalid runes ────────────────────────────────────────────────────────

func (lx *Lexer) scanInvalidRune() token.Token {
	start := lx.cur.mark()
	r := lx.cur.next()
	msg := forbiddenMessage(r)
	loc := lx.cur.locSince(start)
	lx.problems.Add("syntax/invalid-token", loc, msg)
	return token.Token{Tag: token.Invalid, Text: msg, Loc: loc}
}

// forbiddenMessage classifies r by Unicode category to produce a pointed
// diagnostic for line separators, control characters, and surrogates.
func forbiddenMessage(r rune) string {
	switch {
	case r == 0x85 || r == 0x2028 || r == 0x2029:
		return fmt.Sprintf("line separator U+%04X is not allowed in source text", r)
	case r == '\f' || r == '\v' || unicode.Is(unicode.Zs, r):
		return fmt.Sprintf("separator character U+%04X is not allowed here", r)
	case r >= 0xD800 && r <= 0xDFFF:
		return fmt.Sprintf("unpaired surrogate U+%04X is not allowed in source text", r)
	case r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f):
		return fmt.Sprintf("control character U+%04X is not allowed in source text", r)
	default:
		return fmt.Sprintf("unexpected character U+%04X", r)
	}
}
