// Package ast defines the Abstract Syntax Tree node types for Weald.
//
// Every node carries its own Loc rather than a leading Token, so a node
// stores its span directly (see Node.Location) instead of indirecting
// through a token it no longer keeps around.
//
// The family is sealed and small: Expression covers Missing, True,
// False, Int, Float, String, VariableRead, Group, Block, If, Else, And,
// Or, and Call; Statement covers StmtExpr and VariableDecl. Missing is
// itself an ordinary expression, not a nil escape hatch — whenever
// something required couldn't be parsed, a Missing node is inserted in
// its place so every parent's children stay total.
//
// Each variant is one struct implementing Node (plus Expression or
// Statement), with a short doc comment and a compact String() for
// debugging output.
package ast

import (
	"fmt"
	"strings"

	"github.com/weald-lang/weald/source"
)

// ── Interfaces ──────────────────────────────────────────────────────────────

// Node is the root interface of every AST element.
type Node interface {
	// Location returns the source span this node covers.
	Location() source.Loc
	// String returns a compact representation for debugging and test
	// output; it is not a pretty-printer.
	String() string
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a Node that appears in a statement list.
type Statement interface {
	Node
	statementNode()
}

// ── Containers ──────────────────────────────────────────────────────────────

// Stmts is a statement list: a Script's top level, or a Block's body.
type Stmts struct {
	NodeLoc source.Loc
	Items   []Statement
}

func (n *Stmts) Location() source.Loc { return n.NodeLoc }
func (n *Stmts) String() string {
	parts := make([]string, len(n.Items))
	for i, s := range n.Items {
		parts[i] = s.String()
	}
	return strings.Join(parts, "; ")
}

// Arguments is a call's parenthesised argument list. A Call with no
// argument list at all — the desugared form for a unary operator — has
// a nil *Arguments, distinct from an empty-but-present "()".
type Arguments struct {
	NodeLoc source.Loc
	Items   []Expression
}

func (n *Arguments) Location() source.Loc { return n.NodeLoc }
func (n *Arguments) String() string {
	parts := make([]string, len(n.Items))
	for i, a := range n.Items {
		parts[i] = a.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Script is the parser's root node: a whole source file's statement
// list.
type Script struct {
	NodeLoc source.Loc
	Stmts   *Stmts
}

func (n *Script) Location() source.Loc { return n.NodeLoc }
func (n *Script) String() string       { return n.Stmts.String() }

// ── Expressions ─────────────────────────────────────────────────────────────

// Missing stands in wherever an expression was syntactically required
// but absent. Its Loc is zero-length, anchored at the point parsing
// gave up, so callers can still report a useful position.
type Missing struct {
	NodeLoc source.Loc
}

func (n *Missing) Location() source.Loc { return n.NodeLoc }
func (*Missing) expressionNode()        {}
func (*Missing) String() string         { return "<missing>" }

// True is the boolean literal `true`.
type True struct {
	NodeLoc source.Loc
}

func (n *True) Location() source.Loc { return n.NodeLoc }
func (*True) expressionNode()        {}
func (*True) String() string         { return "true" }

// False is the boolean literal `false`.
type False struct {
	NodeLoc source.Loc
}

func (n *False) Location() source.Loc { return n.NodeLoc }
func (*False) expressionNode()        {}
func (*False) String() string         { return "false" }

// Int is a signed 128-bit integer literal. Value is nil when the
// literal overflowed i128 and a syntax/invalid-int problem was
// reported instead — callers must check Value != nil before reading
// it, the same way any Missing node must be checked for.
type Int struct {
	NodeLoc source.Loc
	Value   *Int128
}

func (n *Int) Location() source.Loc { return n.NodeLoc }
func (*Int) expressionNode()        {}
func (n *Int) String() string {
	if n.Value == nil {
		return "<invalid int>"
	}
	return n.Value.String()
}

// Float is an IEEE-754 double-precision literal.
type Float struct {
	NodeLoc source.Loc
	Value   float64
}

func (n *Float) Location() source.Loc { return n.NodeLoc }
func (*Float) expressionNode()        {}
func (n *Float) String() string       { return fmt.Sprintf("%g", n.Value) }

// String is a string literal in any of the four flavors (line/block,
// escaped/raw). Opening/Content/Closing are the sub-spans of the
// delimiters and raw body text; Interpreted is the fully unescaped and,
// for block strings, dedented value.
type String struct {
	NodeLoc     source.Loc
	Opening     source.Loc
	Content     source.Loc
	Closing     source.Loc
	Interpreted string
}

func (n *String) Location() source.Loc { return n.NodeLoc }
func (*String) expressionNode()        {}
func (n *String) String() string       { return fmt.Sprintf("%q", n.Interpreted) }

// VariableRead reads a binding by name.
type VariableRead struct {
	NodeLoc source.Loc
	Name    string
}

func (n *VariableRead) Location() source.Loc { return n.NodeLoc }
func (*VariableRead) expressionNode()        {}
func (n *VariableRead) String() string       { return n.Name }

// Group is a parenthesised expression: `(body)`.
type Group struct {
	NodeLoc source.Loc
	Opening source.Loc
	Body    Expression
	Closing source.Loc
}

func (n *Group) Location() source.Loc { return n.NodeLoc }
func (*Group) expressionNode()        {}
func (n *Group) String() string       { return "(" + n.Body.String() + ")" }

// Block is a brace-delimited statement list used in expression
// position: `{ stmts }`.
type Block struct {
	NodeLoc source.Loc
	Opening source.Loc
	Stmts   *Stmts
	Closing source.Loc
}

func (n *Block) Location() source.Loc { return n.NodeLoc }
func (*Block) expressionNode()        {}
func (n *Block) String() string       { return "{ " + n.Stmts.String() + " }" }

// Else is the else-clause of a block-form If: either a Block or a
// nested If (an else-if chain).
type Else struct {
	NodeLoc source.Loc
	KwElse  source.Loc
	Body    Expression
}

func (n *Else) Location() source.Loc { return n.NodeLoc }
func (*Else) expressionNode()        {}
func (n *Else) String() string       { return "else " + n.Body.String() }

// If covers both the block-conditional (`if cond { then } else ...`)
// and the ternary-conditional (`if cond ? then : else`) forms.
//
// Block form: TernaryThen is nil; Then holds the *Block; Else holds an
// *Else, or nil when there is no else clause.
//
// Ternary form: TernaryThen holds the then-branch expression; Then is
// nil; Else holds the plain else-branch expression. Once a ternary has
// begun, an else-branch is required — a missing ':' still yields a
// Missing node here, never a nil Else.
type If struct {
	NodeLoc     source.Loc
	KwIf        source.Loc
	Predicate   Expression
	TernaryThen Expression
	Then        Expression
	Else        Expression
}

func (n *If) Location() source.Loc { return n.NodeLoc }
func (*If) expressionNode()        {}
func (n *If) String() string {
	if n.TernaryThen != nil {
		return fmt.Sprintf("if %s ? %s : %s", n.Predicate, n.TernaryThen, n.Else)
	}
	out := fmt.Sprintf("if %s %s", n.Predicate, n.Then)
	if n.Else != nil {
		out += " " + n.Else.String()
	}
	return out
}

// And is the short-circuiting logical-and expression `left && right`.
type And struct {
	NodeLoc source.Loc
	Left    Expression
	Op      source.Loc
	Right   Expression
}

func (n *And) Location() source.Loc { return n.NodeLoc }
func (*And) expressionNode()        {}
func (n *And) String() string       { return fmt.Sprintf("(%s && %s)", n.Left, n.Right) }

// Or is the short-circuiting logical-or expression `left || right`.
type Or struct {
	NodeLoc source.Loc
	Left    Expression
	Op      source.Loc
	Right   Expression
}

func (n *Or) Location() source.Loc { return n.NodeLoc }
func (*Or) expressionNode()        {}
func (n *Or) String() string       { return fmt.Sprintf("(%s || %s)", n.Left, n.Right) }

// Name is a bare identifier used as a call's function position — either
// a real source Name token, or a synthetic name the parser manufactures
// when it desugars an operator (e.g. "+" or "unary -").
type Name struct {
	NodeLoc source.Loc
	Text    string
}

func (n *Name) Location() source.Loc { return n.NodeLoc }
func (n *Name) String() string       { return n.Text }

// Call is both an explicit call (`f(args)`, a receiver-qualified call)
// and the desugared form of every binary and unary operator expression.
// Arguments is nil for a desugared unary operator, non-nil (possibly
// empty) otherwise.
type Call struct {
	NodeLoc   source.Loc
	Receiver  Expression
	Function  *Name
	Arguments *Arguments
}

func (n *Call) Location() source.Loc { return n.NodeLoc }
func (*Call) expressionNode()        {}
func (n *Call) String() string {
	if n.Arguments == nil {
		return fmt.Sprintf("%s(%s)", n.Function, n.Receiver)
	}
	if n.Receiver == nil {
		return n.Function.String() + n.Arguments.String()
	}
	return fmt.Sprintf("%s.%s%s", n.Receiver, n.Function, n.Arguments)
}

// ── Statements ──────────────────────────────────────────────────────────────

// StmtExpr wraps an expression appearing in statement position.
type StmtExpr struct {
	NodeLoc source.Loc
	Expr    Expression
}

func (n *StmtExpr) Location() source.Loc { return n.NodeLoc }
func (*StmtExpr) statementNode()         {}
func (n *StmtExpr) String() string       { return n.Expr.String() }

// VariableDecl declares an immutable binding: `let name = value`.
type VariableDecl struct {
	NodeLoc source.Loc
	KwLet   source.Loc
	Name    string
	NameLoc source.Loc
	Eq      source.Loc
	Value   Expression
}

func (n *VariableDecl) Location() source.Loc { return n.NodeLoc }
func (*VariableDecl) statementNode()         {}
func (n *VariableDecl) String() string       { return fmt.Sprintf("let %s = %s", n.Name, n.Value) }
