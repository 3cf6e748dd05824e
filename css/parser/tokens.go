package parser

import (
	"fmt"

	"github.com/benoitkugler/webgrid/utils"
)

// Pos is the (line, column) of a token, both starting at 1.
type Pos struct {
	Line, Column int
}

func newPosition(line, column int) Pos { return Pos{Line: line, Column: column} }

// Token is a CSS component value.
type Token interface {
	Position() Pos
	// Kind is a short description used in error messages.
	Kind() string
}

// LowerableString is a keyword-like value, compared case-insensitively.
type LowerableString string

func (s LowerableString) Lower() string { return utils.AsciiLower(string(s)) }

type WhitespaceToken struct {
	Pos   Pos
	Value string
}

type Comment struct {
	Pos   Pos
	Value string
}

type LiteralToken struct {
	Pos   Pos
	Value string
}

type IdentToken struct {
	Pos   Pos
	Value LowerableString
}

type StringToken struct {
	Pos     Pos
	Value   string
	isError bool
}

type NumericToken struct {
	Pos            Pos
	Representation string
	IsInteger      bool
	Value          utils.Fl
}

// IntValue returns the value as integer, which is
// only meaningful when IsInteger is true.
func (n NumericToken) IntValue() int { return int(n.Value) }

type (
	NumberToken     NumericToken
	PercentageToken NumericToken
)

type DimensionToken struct {
	NumericToken
	Unit LowerableString
}

type ParenthesesBlock struct {
	Pos     Pos
	Content *[]Token
}

type SquareBracketsBlock struct {
	Pos     Pos
	Content *[]Token
}

type FunctionBlock struct {
	Pos       Pos
	Name      LowerableString
	Arguments *[]Token
}

type ParseError struct {
	Pos     Pos
	Kind_   string
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d %s: %s", e.Pos.Line, e.Pos.Column, e.Kind_, e.Message)
}

func (t WhitespaceToken) Position() Pos     { return t.Pos }
func (t Comment) Position() Pos             { return t.Pos }
func (t LiteralToken) Position() Pos        { return t.Pos }
func (t IdentToken) Position() Pos          { return t.Pos }
func (t StringToken) Position() Pos         { return t.Pos }
func (t NumberToken) Position() Pos         { return t.Pos }
func (t PercentageToken) Position() Pos     { return t.Pos }
func (t DimensionToken) Position() Pos      { return t.Pos }
func (t ParenthesesBlock) Position() Pos    { return t.Pos }
func (t SquareBracketsBlock) Position() Pos { return t.Pos }
func (t FunctionBlock) Position() Pos       { return t.Pos }
func (t ParseError) Position() Pos          { return t.Pos }

func (WhitespaceToken) Kind() string     { return "whitespace" }
func (Comment) Kind() string             { return "comment" }
func (LiteralToken) Kind() string        { return "literal" }
func (IdentToken) Kind() string          { return "ident" }
func (StringToken) Kind() string         { return "string" }
func (NumberToken) Kind() string         { return "number" }
func (PercentageToken) Kind() string     { return "percentage" }
func (DimensionToken) Kind() string      { return "dimension" }
func (ParenthesesBlock) Kind() string    { return "() block" }
func (SquareBracketsBlock) Kind() string { return "[] block" }
func (FunctionBlock) Kind() string       { return "function" }
func (ParseError) Kind() string          { return "error" }
