// Package parser implements the Weald recursive-descent, Pratt-style
// expression parser.
//
// Parse consumes the token stream a [lexer.Lexer] produces (terminated
// by exactly one End) and returns a complete [ast.Script] together with
// any problems found. Precedence is encoded in a small table rather than
// a tangle of grammar rules, and prefix/infix behavior is dispatched
// through per-token-tag functions. This parser never returns nil for a
// missing piece — every required-but-absent expression becomes an
// *ast.Missing so the resulting tree is always total, and a breakpoint
// stack (rather than ad hoc "skip to next statement" recovery) tells
// every statement and expression loop where its enclosing closer lives.
package parser

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/weald-lang/weald/ast"
	"github.com/weald-lang/weald/problem"
	"github.com/weald-lang/weald/source"
	"github.com/weald-lang/weald/token"
)

// Precedence levels, low to high, per the front end's expression ladder.
// Two of these (precLogic, precCmp) are ambiguity-sensitive: chaining
// two operators from the same sensitive level without parentheses is
// accepted but reported.
const (
	precLowest = iota
	precLogic  // && ||            (left-assoc, ambiguity-sensitive across && / ||)
	precCmp    // == != < <= > >= (left-assoc, ambiguity-sensitive for any pair)
	precAdd    // + -              (left-assoc)
	precMul    // * / %            (left-assoc)
	precPow    // ^                (right-assoc)
	precUnary  // ! + - prefix     (binds tighter than ^)
)

var binaryLevel = map[token.Tag]int{
	token.PAndAnd:       precLogic,
	token.POrOr:         precLogic,
	token.PEqualEqual:   precCmp,
	token.PBangEqual:    precCmp,
	token.PLess:         precCmp,
	token.PLessEqual:    precCmp,
	token.PGreater:      precCmp,
	token.PGreaterEqual: precCmp,
	token.PPlus:         precAdd,
	token.PMinus:        precAdd,
	token.PStar:         precMul,
	token.PSlash:        precMul,
	token.PPercent:      precMul,
	token.PCaret:        precPow,
}

// exprContext names the diagnostic a parseExpr call reports when the
// current token has no prefix meaning at all — this is the "fallback
// diagnostic" every call site supplies for its own grammar position
// (e.g. after '(', after 'let =', as a bare statement).
type exprContext struct {
	id  string
	msg string
}

var defaultExprContext = exprContext{"syntax/expected-expr", "expected an expression"}

// Parser holds all state needed to parse one Weald token stream. Create
// one with [Parse]; there is no reusable constructor since a Parser's
// lifetime is exactly one parse.
type Parser struct {
	toks          []token.Token // Newline tokens excluded
	newlineBefore []bool        // parallel to toks: was a Newline skipped just before it?
	pos           int
	problems      problem.Problems
	breakpoints   []token.Tag
}

// Parse builds a complete [ast.Script] from toks, whose last token must
// be End — an empty stream, or one whose last token is not End, is a
// programmer error and panics. Only the last token is checked.
func Parse(toks []token.Token) (*ast.Script, *problem.Problems) {
	if len(toks) == 0 || toks[len(toks)-1].Tag != token.End {
		panic("parser.Parse: token stream must end with exactly one End token")
	}
	p := newParser(toks)

	p.pushBreakpoint(token.End)
	start := p.cur().Loc.Start
	stmts := p.parseStmts()
	p.popBreakpoint()

	if p.cur().Tag != token.End && p.problems.Len() == 0 {
		p.problems.Add("syntax/expected-end", p.cur().Loc, "expected end of input")
	}

	loc := source.FromRange(start, p.cur().Loc.End())
	return &ast.Script{NodeLoc: loc, Stmts: stmts}, &p.problems
}

func newParser(toks []token.Token) *Parser {
	sig := make([]token.Token, 0, len(toks))
	nl := make([]bool, 0, len(toks))
	pendingNewline := false
	for _, t := range toks {
		if t.Tag == token.Newline {
			pendingNewline = true
			continue
		}
		sig = append(sig, t)
		nl = append(nl, pendingNewline)
		pendingNewline = false
	}
	return &Parser{toks: sig, newlineBefore: nl}
}

// ── Token stream view ────────────────────────────────────────────────────

func (p *Parser) cur() token.Token       { return p.toks[p.pos] }
func (p *Parser) curNewlineBefore() bool { return p.newlineBefore[p.pos] }

func (p *Parser) advance() {
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
}

// hereLoc anchors a Missing-style diagnostic at the start of the current
// token, the way an absent piece of syntax is always blamed on whatever
// comes right after it.
func (p *Parser) hereLoc() source.Loc { return source.Here(p.cur().Loc.Start) }

func (p *Parser) pushBreakpoint(tag token.Tag) { p.breakpoints = append(p.breakpoints, tag) }
func (p *Parser) popBreakpoint()               { p.breakpoints = p.breakpoints[:len(p.breakpoints)-1] }

// atBreakpoint reports whether the current token matches the top of the
// breakpoint stack or is End (which stops every level), short-circuiting
// statement/expression loops so they never consume a closer that
// belongs to an enclosing construct.
func (p *Parser) atBreakpoint() bool {
	if len(p.breakpoints) == 0 {
		return p.cur().Tag == token.End
	}
	return p.cur().Tag == p.breakpoints[len(p.breakpoints)-1] || p.cur().Tag == token.End
}

// ── Statement lists ──────────────────────────────────────────────────────

func (p *Parser) parseStmts() *ast.Stmts {
	start := p.cur().Loc.Start
	var items []ast.Statement
	for !p.atBreakpoint() {
		items = append(items, p.parseStatement())
		if p.atBreakpoint() {
			break
		}
		if !p.curNewlineBefore() {
			break
		}
	}
	return &ast.Stmts{NodeLoc: source.FromRange(start, p.cur().Loc.Start), Items: items}
}

func (p *Parser) parseStatement() ast.Statement {
	start := p.cur().Loc.Start
	if p.cur().Tag == token.KwLet {
		return p.parseLet(start)
	}
	expr := p.parseExpr(precLowest, exprContext{"syntax/expected-stmt", "expected a statement"})
	return &ast.StmtExpr{NodeLoc: source.FromRange(start, expr.Location().End()), Expr: expr}
}

func (p *Parser) parseLet(start uint32) ast.Statement {
	kwLet := p.cur().Loc
	p.advance()

	var name string
	var nameLoc source.Loc
	if p.cur().Tag == token.Name {
		name = p.cur().Text
		nameLoc = p.cur().Loc
		p.advance()
	} else {
		nameLoc = p.hereLoc()
		p.problems.Add("syntax/expected-let-name", nameLoc, "expected a name after 'let'")
	}

	var eqLoc source.Loc
	if p.cur().Tag == token.PEqual {
		eqLoc = p.cur().Loc
		p.advance()
	} else {
		eqLoc = p.hereLoc()
		p.problems.Add("syntax/expected-let-eq", eqLoc, "expected '=' in let declaration")
	}

	value := p.parseExpr(precLowest, exprContext{"syntax/expected-let-expr", "expected an expression after '='"})
	loc := source.FromRange(start, value.Location().End())
	return &ast.VariableDecl{NodeLoc: loc, KwLet: kwLet, Name: name, NameLoc: nameLoc, Eq: eqLoc, Value: value}
}

// ── Expressions (Pratt) ──────────────────────────────────────────────────

func (p *Parser) parseExpr(minPrec int, ctx exprContext) ast.Expression {
	left := p.parsePrefix(ctx)

	var prevOpTag token.Tag
	var prevOpLoc source.Loc
	var prevOpLevel int
	havePrevOp := false

	for {
		tag := p.cur().Tag
		level, ok := binaryLevel[tag]
		if !ok || level < minPrec {
			return left
		}
		opTok := p.cur()
		p.advance()

		rhsMinPrec := level + 1
		if tag == token.PCaret {
			rhsMinPrec = level // right-associative
		}
		right := p.parseExpr(rhsMinPrec, defaultExprContext)

		// Only operators chained at the same precedence tier can be
		// ambiguous with each other — a higher-tier operator like '+'
		// earlier in this same loop frame (e.g. "1 + 2 == 3") is already
		// disambiguated by precedence and must not be compared against
		// a later, lower-tier operator like '=='.
		if havePrevOp && prevOpLevel == level && isAmbiguousPair(level, prevOpTag, tag) {
			span := source.FromRange(prevOpLoc.Start, opTok.Loc.End())
			p.problems.Add("syntax/ambiguous-expr", span, "ambiguous operator chain; add parentheses to clarify")
		}

		left = p.makeBinary(left, opTok, right)
		prevOpTag, prevOpLoc, prevOpLevel, havePrevOp = tag, opTok.Loc, level, true
	}
}

// isAmbiguousPair reports whether chaining prev then next at the given
// level is the front end's definition of an ambiguous operator chain:
// any two Cmp operators in a row, or && adjacent to || in either order.
// Two identical Logic operators in a row (a && b && c) are NOT
// ambiguous — boolean and/or are associative, so there is only one
// possible reading.
func isAmbiguousPair(level int, prev, next token.Tag) bool {
	switch level {
	case precCmp:
		return true
	case precLogic:
		return prev != next
	default:
		return false
	}
}

func (p *Parser) makeBinary(left ast.Expression, opTok token.Token, right ast.Expression) ast.Expression {
	loc := source.FromRange(left.Location().Start, right.Location().End())
	switch opTok.Tag {
	case token.PAndAnd:
		return &ast.And{NodeLoc: loc, Left: left, Op: opTok.Loc, Right: right}
	case token.POrOr:
		return &ast.Or{NodeLoc: loc, Left: left, Op: opTok.Loc, Right: right}
	default:
		args := &ast.Arguments{NodeLoc: right.Location(), Items: []ast.Expression{right}}
		return &ast.Call{
			NodeLoc:   loc,
			Receiver:  left,
			Function:  &ast.Name{NodeLoc: opTok.Loc, Text: binarySymbol(opTok.Tag)},
			Arguments: args,
		}
	}
}

func binarySymbol(tag token.Tag) string {
	switch tag {
	case token.PEqualEqual:
		return "=="
	case token.PBangEqual:
		return "!="
	case token.PLess:
		return "<"
	case token.PLessEqual:
		return "<="
	case token.PGreater:
		return ">"
	case token.PGreaterEqual:
		return ">="
	case token.PPlus:
		return "+"
	case token.PMinus:
		return "-"
	case token.PStar:
		return "*"
	case token.PSlash:
		return "/"
	case token.PPercent:
		return "%"
	case token.PCaret:
		return "^"
	default:
		return "?"
	}
}

// ── Prefix positions ─────────────────────────────────────────────────────

func (p *Parser) parsePrefix(ctx exprContext) ast.Expression {
	t := p.cur()
	switch t.Tag {
	case token.PParenOpen:
		return p.parseGroup()
	case token.PBraceOpen:
		return p.parseBlock()
	case token.KwIf:
		return p.parseIf()
	case token.Name:
		p.advance()
		return &ast.VariableRead{NodeLoc: t.Loc, Name: t.Text}
	case token.KwTrue:
		p.advance()
		return &ast.True{NodeLoc: t.Loc}
	case token.KwFalse:
		p.advance()
		return &ast.False{NodeLoc: t.Loc}
	case token.Integer:
		return p.parseIntLiteral()
	case token.Float:
		return p.parseFloatLiteral()
	case token.String:
		return p.parseStringLiteral()
	case token.PBang, token.PPlus, token.PMinus:
		return p.parseUnary()
	case token.Invalid:
		// The Invalid token is recorded once in the parser's own problem
		// list as syntax/invalid-token with the lexer's message; the
		// Missing that replaces it adds no further diagnostic.
		p.problems.Add("syntax/invalid-token", t.Loc, "%s", t.Text)
		p.advance()
		return &ast.Missing{NodeLoc: source.Here(t.Loc.Start)}
	default:
		loc := p.hereLoc()
		p.problems.Add(ctx.id, loc, "%s", ctx.msg)
		// Consume the offending token so callers that loop on "no
		// progress" (parseStmts re-entering parseStatement across a
		// newline) always advance instead of reporting the same
		// diagnostic forever. A token at the current breakpoint (the
		// enclosing construct's closer, or End) is left in place for
		// that construct; the statement loop stops there anyway.
		if !p.atBreakpoint() {
			p.advance()
		}
		return &ast.Missing{NodeLoc: loc}
	}
}

func (p *Parser) parseUnary() ast.Expression {
	opTok := p.cur()
	p.advance()
	operand := p.parseExpr(precUnary, defaultExprContext)
	loc := source.FromRange(opTok.Loc.Start, operand.Location().End())
	return &ast.Call{
		NodeLoc:  loc,
		Receiver: operand,
		Function: &ast.Name{NodeLoc: opTok.Loc, Text: unaryOpName(opTok.Tag)},
	}
}

func unaryOpName(tag token.Tag) string {
	switch tag {
	case token.PBang:
		return "unary !"
	case token.PMinus:
		return "unary -"
	case token.PPlus:
		return "unary +"
	default:
		return "unary ?"
	}
}

func (p *Parser) parseGroup() ast.Expression {
	openTok := p.cur()
	p.advance()

	p.pushBreakpoint(token.PParenClose)
	body := p.parseExpr(precLowest, exprContext{"syntax/expected-expr-in-group", "expected an expression after '('"})
	p.popBreakpoint()

	var closeLoc source.Loc
	if p.cur().Tag == token.PParenClose {
		closeLoc = p.cur().Loc
		p.advance()
	} else {
		closeLoc = p.hereLoc()
		p.problems.Add("syntax/unclosed-group", closeLoc, "unclosed group")
	}

	loc := source.FromRange(openTok.Loc.Start, closeLoc.End())
	return &ast.Group{NodeLoc: loc, Opening: openTok.Loc, Body: body, Closing: closeLoc}
}

func (p *Parser) parseBlock() *ast.Block {
	openTok := p.cur()
	p.advance()

	p.pushBreakpoint(token.PBraceClose)
	stmts := p.parseStmts()
	p.popBreakpoint()

	var closeLoc source.Loc
	if p.cur().Tag == token.PBraceClose {
		closeLoc = p.cur().Loc
		p.advance()
	} else {
		closeLoc = p.hereLoc()
		p.problems.Add("syntax/unclosed-block", closeLoc, "unclosed block")
	}

	loc := source.FromRange(openTok.Loc.Start, closeLoc.End())
	return &ast.Block{NodeLoc: loc, Opening: openTok.Loc, Stmts: stmts, Closing: closeLoc}
}

// ── If / ternary ─────────────────────────────────────────────────────────

func (p *Parser) parseIf() ast.Expression {
	kwIf := p.cur().Loc
	start := kwIf.Start
	p.advance()

	predicate := p.parseExpr(precLowest, exprContext{"syntax/expected-predicate", "expected a predicate expression after 'if'"})

	if p.cur().Tag == token.PQuestion {
		return p.parseIfTernary(start, kwIf, predicate)
	}
	return p.parseIfBlockForm(start, kwIf, predicate)
}

func (p *Parser) parseIfTernary(start uint32, kwIf source.Loc, predicate ast.Expression) ast.Expression {
	p.advance() // consume '?'
	thenExpr := p.parseExpr(precLowest, exprContext{"syntax/expected-expr-in-ternary-then", "expected an expression after '?'"})
	p.reportBlockInTernary(thenExpr)

	var elseExpr ast.Expression
	if p.cur().Tag == token.PColon {
		p.advance()
		elseExpr = p.parseExpr(precLowest, exprContext{"syntax/expected-expr-in-ternary-else", "expected an expression after ':'"})
		p.reportBlockInTernary(elseExpr)
	} else {
		loc := p.hereLoc()
		p.problems.Add("syntax/expected-ternary-else", loc, "expected ':' in ternary expression")
		elseExpr = &ast.Missing{NodeLoc: loc}
	}

	loc := source.FromRange(start, elseExpr.Location().End())
	return &ast.If{NodeLoc: loc, KwIf: kwIf, Predicate: predicate, TernaryThen: thenExpr, Else: elseExpr}
}

func (p *Parser) reportBlockInTernary(e ast.Expression) {
	if containsBlockOrIf(e) {
		p.problems.Add("syntax/block-in-ternary", e.Location(), "a block or if expression is not allowed in a ternary branch")
	}
}

// containsBlockOrIf reports whether e contains a block or if expression
// anywhere within it, not just at its own position — a ternary branch
// must reject one hiding behind any prefix expression, including the
// Call/And/Or nodes that binary and unary operators desugar to
// (makeBinary, parseUnary).
func containsBlockOrIf(e ast.Expression) bool {
	switch n := e.(type) {
	case *ast.Block, *ast.If:
		return true
	case *ast.Group:
		return containsBlockOrIf(n.Body)
	case *ast.Call:
		if containsBlockOrIf(n.Receiver) {
			return true
		}
		if n.Arguments != nil {
			for _, arg := range n.Arguments.Items {
				if containsBlockOrIf(arg) {
					return true
				}
			}
		}
		return false
	case *ast.And:
		return containsBlockOrIf(n.Left) || containsBlockOrIf(n.Right)
	case *ast.Or:
		return containsBlockOrIf(n.Left) || containsBlockOrIf(n.Right)
	default:
		return false
	}
}

func (p *Parser) parseIfBlockForm(start uint32, kwIf source.Loc, predicate ast.Expression) ast.Expression {
	var thenExpr ast.Expression
	if p.cur().Tag == token.PBraceOpen {
		thenExpr = p.parseBlock()
	} else {
		loc := p.hereLoc()
		p.problems.Add("syntax/expected-if-body", loc, "expected '{' to begin the if body")
		thenExpr = &ast.Missing{NodeLoc: loc}
	}

	var elseNode ast.Expression
	if p.cur().Tag == token.KwElse {
		kwElse := p.cur().Loc
		p.advance()

		var body ast.Expression
		switch p.cur().Tag {
		case token.PBraceOpen:
			body = p.parseBlock()
		case token.KwIf:
			body = p.parseIf()
		default:
			loc := p.hereLoc()
			p.problems.Add("syntax/expected-else-body", loc, "expected '{' or 'if' after 'else'")
			body = &ast.Missing{NodeLoc: loc}
		}
		elseNode = &ast.Else{NodeLoc: source.FromRange(kwElse.Start, body.Location().End()), KwElse: kwElse, Body: body}
	}

	end := thenExpr.Location()
	if elseNode != nil {
		end = elseNode.Location()
	}
	loc := source.FromRange(start, end.End())
	return &ast.If{NodeLoc: loc, KwIf: kwIf, Predicate: predicate, Then: thenExpr, Else: elseNode}
}

// ── Literals ─────────────────────────────────────────────────────────────

func (p *Parser) parseIntLiteral() ast.Expression {
	t := p.cur()
	p.advance()
	value, ok := parseInt128(t.Text)
	if !ok {
		p.problems.Add("syntax/invalid-int", t.Loc, "integer literal out of range for a 128-bit integer")
		return &ast.Int{NodeLoc: t.Loc, Value: nil}
	}
	return &ast.Int{NodeLoc: t.Loc, Value: value}
}

func parseInt128(text string) (*ast.Int128, bool) {
	i := 0
	neg := false
	if i < len(text) && (text[i] == '+' || text[i] == '-') {
		neg = text[i] == '-'
		i++
	}
	rest := text[i:]
	base := 10
	switch {
	case strings.HasPrefix(rest, "0x"):
		base, rest = 16, rest[2:]
	case strings.HasPrefix(rest, "0b"):
		base, rest = 2, rest[2:]
	}
	digits := strings.ReplaceAll(rest, "_", "")
	magnitude, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, false
	}
	if neg {
		magnitude.Neg(magnitude)
	}
	return ast.NewInt128(magnitude)
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	t := p.cur()
	p.advance()
	digits := strings.ReplaceAll(t.Text, "_", "")
	value, err := strconv.ParseFloat(digits, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		p.problems.Add("syntax/invalid-float", t.Loc, "invalid floating-point literal")
		return &ast.Float{NodeLoc: t.Loc, Value: 0}
	}
	return &ast.Float{NodeLoc: t.Loc, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	t := p.cur()
	p.advance()
	opening, content, closing, interpreted := interpretString(t.Text, t.Loc.Start)
	return &ast.String{NodeLoc: t.Loc, Opening: opening, Content: content, Closing: closing, Interpreted: interpreted}
}
