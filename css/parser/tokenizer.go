package parser

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/benoitkugler/webgrid/utils"
)

var numberRe = regexp.MustCompile(`^[-+]?([0-9]*\.)?[0-9]+([eE][+-]?[0-9]+)?`)

// TokenizeString is a convenience wrapper for [Tokenize].
func TokenizeString(css string, skipComments bool) []Token {
	return Tokenize([]byte(css), skipComments)
}

// Tokenize parses a list of component values.
// If `skipComments` is true, ignore CSS comments :
// the return values (and recursively its blocks and functions)
// will not contain any `Comment` object.
//
// Only the tokens used by inline styles are recognized : identifiers,
// functions, numbers, dimensions, percentages, strings, and () or [] blocks.
// Any other character is returned as a [LiteralToken].
func Tokenize(css []byte, skipComments bool) []Token {
	css = bytes.ReplaceAll(css, []byte("\u0000"), []byte("�"))
	css = bytes.ReplaceAll(css, []byte("\r\n"), []byte("\n"))
	css = bytes.ReplaceAll(css, []byte("\r"), []byte("\n"))
	css = bytes.ReplaceAll(css, []byte("\f"), []byte("\n"))

	tk := tokenizer{css: css, line: 1, column: 1, skipComments: skipComments}
	return tk.consumeList(0)
}

type tokenizer struct {
	css []byte
	pos int
	// line and column of pos, starting at 1
	line, column int

	skipComments bool
}

// advance moves forward by n bytes.
func (tk *tokenizer) advance(n int) {
	for _, c := range tk.css[tk.pos : tk.pos+n] {
		if c == '\n' {
			tk.line++
			tk.column = 1
		} else {
			tk.column++
		}
	}
	tk.pos += n
}

func (tk *tokenizer) position() Pos { return newPosition(tk.line, tk.column) }

// consumeList reads tokens until the end of the input, or until
// the closing endChar, which is skipped. The top-level endChar is 0.
func (tk *tokenizer) consumeList(endChar byte) []Token {
	var out []Token
	for tk.pos < len(tk.css) {
		if endChar != 0 && tk.css[tk.pos] == endChar {
			tk.advance(1)
			return out
		}
		out = tk.consumeToken(out)
	}
	return out
}

func isWhitespace(c byte) bool { return c == ' ' || c == '\n' || c == '\t' }

// consumeToken appends the next token(s) to out
func (tk *tokenizer) consumeToken(out []Token) []Token {
	pos, start := tk.position(), tk.pos
	c := tk.css[start]

	if isWhitespace(c) {
		end := start + 1
		for end < len(tk.css) && isWhitespace(tk.css[end]) {
			end++
		}
		tk.advance(end - start)
		return append(out, WhitespaceToken{Pos: pos, Value: string(tk.css[start:end])})
	}
	if isIdentStart(tk.css, start) {
		value := tk.consumeIdent()
		if tk.pos < len(tk.css) && tk.css[tk.pos] == '(' {
			tk.advance(1)
			args := tk.consumeList(')')
			return append(out, FunctionBlock{Pos: pos, Name: LowerableString(value), Arguments: &args})
		}
		return append(out, IdentToken{Pos: pos, Value: LowerableString(value)})
	}
	if match := numberRe.Find(tk.css[start:]); match != nil {
		return append(out, tk.consumeNumeric(pos, string(match)))
	}

	switch c {
	case '[':
		tk.advance(1)
		content := tk.consumeList(']')
		return append(out, SquareBracketsBlock{Pos: pos, Content: &content})
	case '(':
		tk.advance(1)
		content := tk.consumeList(')')
		return append(out, ParenthesesBlock{Pos: pos, Content: &content})
	case ']', ')':
		tk.advance(1)
		return append(out, ParseError{Pos: pos, Kind_: string(rune(c)), Message: "Unmatched " + string(rune(c))})
	case '\'', '"':
		return tk.consumeString(out, pos)
	case '/':
		if bytes.HasPrefix(tk.css[start:], []byte("/*")) {
			return tk.consumeComment(out, pos)
		}
	}
	_, w := utf8.DecodeRune(tk.css[start:])
	tk.advance(w)
	return append(out, LiteralToken{Pos: pos, Value: string(tk.css[start : start+w])})
}

func (tk *tokenizer) consumeNumeric(pos Pos, repr string) Token {
	tk.advance(len(repr))
	value, _ := strconv.ParseFloat(repr, 64)
	if value == 0 {
		value = 0 // -0
	}
	_, err := strconv.ParseInt(repr, 10, 0)
	n := NumericToken{Pos: pos, Representation: repr, IsInteger: err == nil, Value: utils.Fl(value)}
	switch {
	case tk.pos < len(tk.css) && isIdentStart(tk.css, tk.pos):
		return DimensionToken{NumericToken: n, Unit: LowerableString(tk.consumeIdent())}
	case tk.pos < len(tk.css) && tk.css[tk.pos] == '%':
		tk.advance(1)
		return PercentageToken(n)
	default:
		return NumberToken(n)
	}
}

func (tk *tokenizer) consumeComment(out []Token, pos Pos) []Token {
	start := tk.pos + 2
	end := bytes.Index(tk.css[start:], []byte("*/"))
	var value string
	if end == -1 { // unclosed : up to the end of the input
		value = string(tk.css[start:])
		tk.advance(len(tk.css) - tk.pos)
	} else {
		value = string(tk.css[start : start+end])
		tk.advance(start + end + 2 - tk.pos)
	}
	if tk.skipComments {
		return out
	}
	return append(out, Comment{Pos: pos, Value: value})
}

// consumeString reads a quoted string. An unescaped newline makes a bad
// string, which is dropped.
func (tk *tokenizer) consumeString(out []Token, pos Pos) []Token {
	quote := tk.css[tk.pos]
	tk.advance(1)
	var value strings.Builder
	for tk.pos < len(tk.css) {
		c := tk.css[tk.pos]
		switch c {
		case quote:
			tk.advance(1)
			return append(out, StringToken{Pos: pos, Value: value.String()})
		case '\n':
			return append(out, ParseError{Pos: pos, Kind_: "bad-string", Message: "bad string token"})
		case '\\':
			tk.advance(1)
			if tk.pos < len(tk.css) && tk.css[tk.pos] == '\n' {
				tk.advance(1)
				continue
			}
			value.WriteString(tk.consumeEscape())
		default:
			_, w := utf8.DecodeRune(tk.css[tk.pos:])
			value.Write(tk.css[tk.pos : tk.pos+w])
			tk.advance(w)
		}
	}
	return append(out,
		StringToken{Pos: pos, Value: value.String(), isError: true},
		ParseError{Pos: pos, Kind_: "eof-in-string", Message: "bad string token"})
}

// consumeEscape returns the escaped character, just after a '\'.
// Hexadecimal escapes are not supported.
func (tk *tokenizer) consumeEscape() string {
	if tk.pos >= len(tk.css) {
		return "�"
	}
	_, w := utf8.DecodeRune(tk.css[tk.pos:])
	s := string(tk.css[tk.pos : tk.pos+w])
	tk.advance(w)
	return s
}

func (tk *tokenizer) consumeIdent() string {
	var b strings.Builder
	for tk.pos < len(tk.css) {
		c, w := utf8.DecodeRune(tk.css[tk.pos:])
		switch {
		case isNameChar(c):
			b.Write(tk.css[tk.pos : tk.pos+w])
			tk.advance(w)
		case c == '\\' && !bytes.HasPrefix(tk.css[tk.pos:], []byte("\\\n")):
			tk.advance(1)
			b.WriteString(tk.consumeEscape())
		default:
			return b.String()
		}
	}
	return b.String()
}

// https://www.w3.org/TR/css-syntax-3/#name-start-code-point
func isNameStart(c rune) bool {
	return c > 0x7F || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isNameChar(c rune) bool {
	return isNameStart(c) || '0' <= c && c <= '9' || c == '-'
}

// isIdentStart returns true if the given position is the start of a CSS identifier.
// https://www.w3.org/TR/css-syntax-3/#would-start-an-identifier
func isIdentStart(css []byte, pos int) bool {
	c, _ := utf8.DecodeRune(css[pos:])
	switch {
	case isNameStart(c):
		return true
	case c == '-':
		if pos+1 >= len(css) {
			return false
		}
		next, _ := utf8.DecodeRune(css[pos+1:])
		return isNameStart(next) || next == '-' || next == '\\' && !bytes.HasPrefix(css[pos+1:], []byte("\\\n"))
	case c == '\\':
		return !bytes.HasPrefix(css[pos:], []byte("\\\n"))
	}
	return false
}
