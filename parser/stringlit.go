package parser

import (
	"strconv"
	"strings"

	"github.com/weald-lang/weald/source"
)

// stringFlavor classifies a String token's delimiters. The lexer
// validates escape shape but defers building the interpreted value to
// the parser; this file is that second pass.
type stringFlavor int

const (
	flavorStdLine stringFlavor = iota
	flavorStdBlock
	flavorRawLine
	flavorRawBlock
)

func detectFlavor(text string) (flavor stringFlavor, delimWidth int) {
	switch {
	case strings.HasPrefix(text, `"""`):
		return flavorStdBlock, 3
	case strings.HasPrefix(text, "```"):
		return flavorRawBlock, 3
	case strings.HasPrefix(text, `"`):
		return flavorStdLine, 1
	default:
		return flavorRawLine, 1
	}
}

// interpretString splits a String token's raw text (as produced by the
// lexer, delimiters included) into its Opening/Content/Closing spans and
// computes its fully interpreted value: escapes unescaped for standard
// strings, left verbatim for raw strings, and — for block strings, raw
// or standard — the common leading whitespace stripped first.
func interpretString(text string, startOffset uint32) (opening, content, closing source.Loc, interpreted string) {
	flavor, width := detectFlavor(text)
	n := len(text)

	opening = source.FromRange(startOffset, startOffset+uint32(width))
	closing = source.FromRange(startOffset+uint32(n-width), startOffset+uint32(n))
	content = source.FromRange(startOffset+uint32(width), startOffset+uint32(n-width))
	body := text[width : n-width]

	switch flavor {
	case flavorRawLine:
		interpreted = body
	case flavorRawBlock:
		interpreted = dedentBlock(body)
	case flavorStdLine:
		interpreted = unescape(body)
	case flavorStdBlock:
		interpreted = unescape(dedentBlock(body))
	}
	return opening, content, closing, interpreted
}

// dedentBlock strips a block string's common leading whitespace, the way
// a heredoc does: the text right after the opening delimiter up to its
// first newline, and the whitespace-only line holding the closing
// delimiter, both contribute no text and are excluded from the common-
// prefix computation.
func dedentBlock(body string) string {
	lines := strings.Split(body, "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}
	if len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}

	prefix := ""
	havePrefix := false
	for _, ln := range lines {
		if isBlank(ln) {
			continue
		}
		lead := leadingWhitespace(ln)
		if !havePrefix {
			prefix, havePrefix = lead, true
			continue
		}
		prefix = commonPrefix(prefix, lead)
	}

	out := make([]string, len(lines))
	for i, ln := range lines {
		out[i] = strings.TrimPrefix(ln, prefix)
	}
	return strings.Join(out, "\n")
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

func leadingWhitespace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[:i]
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

// unescape interprets a standard string's body. The lexer has already
// validated every escape's shape (syntax/invalid-escape), so a malformed
// escape here is passed through literally rather than re-diagnosed —
// this pass never adds a second problem for the same span.
func unescape(body string) string {
	var b strings.Builder
	i := 0
	for i < len(body) {
		if body[i] != '\\' || i+1 >= len(body) {
			b.WriteByte(body[i])
			i++
			continue
		}
		esc := body[i+1]
		switch esc {
		case '"', '\\':
			b.WriteByte(esc)
			i += 2
		case 'e':
			b.WriteByte(0x1b)
			i += 2
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case 't':
			b.WriteByte('\t')
			i += 2
		case 'x':
			if i+4 <= len(body) {
				if v, err := strconv.ParseUint(body[i+2:i+4], 16, 8); err == nil {
					b.WriteByte(byte(v))
					i += 4
					continue
				}
			}
			b.WriteByte('\\')
			b.WriteByte(esc)
			i += 2
		case 'u':
			if consumed, r, ok := parseUnicodeEscape(body[i+2:]); ok {
				b.WriteRune(r)
				i += 2 + consumed
				continue
			}
			b.WriteByte('\\')
			b.WriteByte(esc)
			i += 2
		case '\n':
			i += 2
			for i < len(body) && (body[i] == ' ' || body[i] == '\t' || body[i] == '\n' || body[i] == '\r') {
				i++
			}
		default:
			b.WriteByte('\\')
			b.WriteByte(esc)
			i += 2
		}
	}
	return b.String()
}

// parseUnicodeEscape parses the content after "\u" — either "{hex...}"
// or exactly four hex digits — returning how many bytes of rest it
// consumed and the decoded rune.
func parseUnicodeEscape(rest string) (consumed int, r rune, ok bool) {
	if strings.HasPrefix(rest, "{") {
		end := strings.IndexByte(rest, '}')
		if end <= 1 {
			return 0, 0, false
		}
		v, err := strconv.ParseUint(rest[1:end], 16, 32)
		if err != nil {
			return 0, 0, false
		}
		return end + 1, rune(v), true
	}
	if len(rest) < 4 {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(rest[:4], 16, 32)
	if err != nil {
		return 0, 0, false
	}
	return 4, rune(v), true
}
