package parser

import (
	"fmt"
	"strings"
)

// Declaration is a `name: value` pair, as found in
// a `style` attribute.
type Declaration struct {
	Pos       Pos
	Name      LowerableString
	Value     []Token
	Important bool
}

// ParseDeclarationList parses the content of a `style` attribute.
// Invalid declarations are returned as errors, next to the valid ones,
// so that the caller may report them and go on.
func ParseDeclarationList(css string) ([]Declaration, []ParseError) {
	var (
		out     []Declaration
		errs    []ParseError
		current []Token
	)
	flush := func() {
		if len(RemoveWhitespace(current)) == 0 {
			current = nil
			return
		}
		decl, err := parseDeclaration(current)
		if err != nil {
			errs = append(errs, *err)
		} else {
			out = append(out, decl)
		}
		current = nil
	}
	for _, token := range TokenizeString(css, true) {
		if lit, ok := token.(LiteralToken); ok && lit.Value == ";" {
			flush()
			continue
		}
		current = append(current, token)
	}
	flush()
	return out, errs
}

func parseDeclaration(tokens []Token) (Declaration, *ParseError) {
	iter := NewIter(tokens)
	first := iter.NextSignificant()
	name, ok := first.(IdentToken)
	if !ok {
		return Declaration{}, &ParseError{
			Pos: first.Position(), Kind_: "invalid",
			Message: fmt.Sprintf("Expected <ident> for declaration name, got %s.", first.Kind()),
		}
	}
	colon := iter.NextSignificant()
	if lit, ok := colon.(LiteralToken); !ok || lit.Value != ":" {
		return Declaration{}, &ParseError{
			Pos: name.Pos, Kind_: "invalid",
			Message: "Expected ':' after declaration name",
		}
	}
	value := iter.Rest()

	// Detect a trailing `!important`.
	important := false
	sig := RemoveWhitespace(value)
	if L := len(sig); L >= 2 {
		bang, isLit := sig[L-2].(LiteralToken)
		ident, isIdent := sig[L-1].(IdentToken)
		if isLit && bang.Value == "!" && isIdent && ident.Value.Lower() == "important" {
			important = true
			cut := 0
			for i, t := range value {
				if t == sig[L-2] {
					cut = i
				}
			}
			value = value[:cut]
		}
	}
	return Declaration{
		Pos:       name.Pos,
		Name:      LowerableString(name.Value.Lower()),
		Value:     value,
		Important: important,
	}, nil
}

// TokensIter iterates over a list of tokens.
type TokensIter struct {
	tokens []Token
	index  int
}

func NewIter(tokens []Token) *TokensIter {
	return &TokensIter{tokens: tokens}
}

func (it TokensIter) HasNext() bool { return it.index < len(it.tokens) }

// Next returns the next token or nil at the end
func (it *TokensIter) Next() Token {
	if !it.HasNext() {
		return nil
	}
	t := it.tokens[it.index]
	it.index++
	return t
}

// NextSignificant returns the next significant (neither whitespace or comment) token, or nil
func (it *TokensIter) NextSignificant() Token {
	for it.HasNext() {
		token := it.Next()
		switch token.(type) {
		case WhitespaceToken, Comment:
			continue
		default:
			return token
		}
	}
	return nil
}

// Rest returns the remaining tokens.
func (it *TokensIter) Rest() []Token {
	out := it.tokens[it.index:]
	it.index = len(it.tokens)
	return out
}

// RemoveWhitespace drops whitespace and comments, without recursing
// into blocks.
func RemoveWhitespace(tokens []Token) []Token {
	var out []Token
	for _, token := range tokens {
		switch token.(type) {
		case WhitespaceToken, Comment:
		default:
			out = append(out, token)
		}
	}
	return out
}

// SplitOnComma splits tokens on top-level comma literals.
func SplitOnComma(tokens []Token) [][]Token {
	var parts [][]Token
	var current []Token
	for _, token := range tokens {
		if lit, ok := token.(LiteralToken); ok && lit.Value == "," {
			parts = append(parts, current)
			current = nil
			continue
		}
		current = append(current, token)
	}
	return append(parts, current)
}

// SplitOnSlash splits tokens on top-level slash literals.
func SplitOnSlash(tokens []Token) [][]Token {
	var parts [][]Token
	var current []Token
	for _, token := range tokens {
		if lit, ok := token.(LiteralToken); ok && lit.Value == "/" {
			parts = append(parts, current)
			current = nil
			continue
		}
		current = append(current, token)
	}
	return append(parts, current)
}

// Serialize returns a CSS-like representation of tokens, used in
// warning messages.
func Serialize(tokens []Token) string {
	var b strings.Builder
	for _, token := range tokens {
		switch t := token.(type) {
		case WhitespaceToken:
			b.WriteString(" ")
		case LiteralToken:
			b.WriteString(t.Value)
		case IdentToken:
			b.WriteString(string(t.Value))
		case StringToken:
			b.WriteString(fmt.Sprintf("%q", t.Value))
		case NumberToken:
			b.WriteString(t.Representation)
		case PercentageToken:
			b.WriteString(t.Representation + "%")
		case DimensionToken:
			b.WriteString(t.Representation + string(t.Unit))
		case ParenthesesBlock:
			b.WriteString("(" + Serialize(*t.Content) + ")")
		case SquareBracketsBlock:
			b.WriteString("[" + Serialize(*t.Content) + "]")
		case FunctionBlock:
			b.WriteString(string(t.Name) + "(" + Serialize(*t.Arguments) + ")")
		}
	}
	return b.String()
}
