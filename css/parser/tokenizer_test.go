package parser

import (
	"testing"

	tu "github.com/benoitkugler/webgrid/utils/testutils"
)

func TestTokenizeGridValue(t *testing.T) {
	tokens := RemoveWhitespace(TokenizeString("[a] 1fr repeat(2, minmax(10px, 20%)) 'x y'", true))
	if len(tokens) != 4 {
		t.Fatalf("expected 4 tokens, got %d: %v", len(tokens), tokens)
	}
	names := tokens[0].(SquareBracketsBlock)
	tu.AssertEqual(t, (*names.Content)[0].(IdentToken).Value, LowerableString("a"))

	fr := tokens[1].(DimensionToken)
	tu.AssertEqual(t, fr.Value, 1.)
	tu.AssertEqual(t, fr.Unit, LowerableString("fr"))
	tu.AssertEqual(t, fr.IsInteger, true)

	repeat := tokens[2].(FunctionBlock)
	tu.AssertEqual(t, repeat.Name.Lower(), "repeat")
	args := SplitOnComma(*repeat.Arguments)
	tu.AssertEqual(t, len(args), 2)
	minmax := RemoveWhitespace(args[1])[0].(FunctionBlock)
	percent := RemoveWhitespace(SplitOnComma(*minmax.Arguments)[1])[0].(PercentageToken)
	tu.AssertEqual(t, percent.Value, 20.)

	tu.AssertEqual(t, tokens[3].(StringToken).Value, "x y")
}

func TestTokenizeNumbers(t *testing.T) {
	for _, test := range []struct {
		css   string
		value float64
		isInt bool
	}{
		{"-2", -2, true},
		{"+3", 3, true},
		{"0.5", 0.5, false},
		{"-0", 0, true},
		{"1e3", 1000, false},
	} {
		tokens := TokenizeString(test.css, true)
		n := tokens[0].(NumberToken)
		tu.AssertEqual(t, n.Value, test.value)
		tu.AssertEqual(t, n.IsInteger, test.isInt)
	}
}

func TestTokenizeErrors(t *testing.T) {
	tokens := TokenizeString("a ) 'b", true)
	var errs []ParseError
	for _, token := range tokens {
		if err, ok := token.(ParseError); ok {
			errs = append(errs, err)
		}
	}
	tu.AssertEqual(t, len(errs), 2)
	tu.AssertEqual(t, errs[0].Kind_, ")")
	tu.AssertEqual(t, errs[1].Kind_, "eof-in-string")
}

func TestTokenizeTrailingDash(t *testing.T) {
	tokens := TokenizeString("-", true)
	tu.AssertEqual(t, tokens[0].(LiteralToken).Value, "-")
}

func TestTokenizeLiterals(t *testing.T) {
	tokens := TokenizeString("#a{b}@c", true)
	var values []string
	for _, token := range tokens {
		switch token := token.(type) {
		case LiteralToken:
			values = append(values, token.Value)
		case IdentToken:
			values = append(values, string(token.Value))
		}
	}
	tu.AssertEqual(t, values, []string{"#", "a", "{", "b", "}", "@", "c"})
}

func TestTokenizeEscapesAndComments(t *testing.T) {
	tokens := TokenizeString(`a\:b /* c */ "d\"e"`, false)
	tu.AssertEqual(t, tokens[0].(IdentToken).Value, LowerableString("a:b"))
	tu.AssertEqual(t, tokens[2].(Comment).Value, " c ")
	tu.AssertEqual(t, tokens[4].(StringToken).Value, `d"e`)

	tokens = TokenizeString("'a\nb'", true)
	tu.AssertEqual(t, tokens[0].(ParseError).Kind_, "bad-string")
	tu.AssertEqual(t, tokens[1].(WhitespaceToken).Value, "\n")
}

func TestTokenizePositions(t *testing.T) {
	tokens := TokenizeString("a\n  10px", true)
	tu.AssertEqual(t, tokens[0].Position(), Pos{Line: 1, Column: 1})
	tu.AssertEqual(t, tokens[2].Position(), Pos{Line: 2, Column: 3})
}
