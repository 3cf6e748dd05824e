package layout

import (
	"strings"
	"unicode/utf8"

	pr "github.com/benoitkugler/webgrid/css/properties"
	"golang.org/x/text/unicode/norm"
)

// Text is measured with a fixed advance : every (NFC normalized)
// rune is a square of side font-size, with an ascent of 0.8em.
const ascentRatio = 0.8

func textAdvance(s string, fontSize Fl) Fl {
	return Fl(utf8.RuneCountInString(norm.NFC.String(s))) * fontSize
}

// textLines is the result of breaking a text.
type textLines struct {
	lines    []string
	width    Fl // of the longest line
	height   Fl
	baseline Fl // of the first line
}

// lineHeight returns the height of one line box
func lineHeight(style pr.Style) Fl { return style.FontSize * style.LineHeight }

// firstBaseline returns the baseline of the first line, the half-leading
// being added above the glyphs.
func firstBaseline(style pr.Style) Fl {
	return (lineHeight(style)-style.FontSize)/2 + style.FontSize*ascentRatio
}

// breakText splits text at spaces so that lines fit in maxWidth,
// when possible. A single word is never broken.
func breakText(text string, style pr.Style, maxWidth Fl) textLines {
	words := strings.Fields(text)
	if len(words) == 0 {
		return textLines{}
	}
	var (
		out     textLines
		current string
		space   = textAdvance(" ", style.FontSize)
	)
	for _, word := range words {
		if current == "" {
			current = word
			continue
		}
		if textAdvance(current, style.FontSize)+space+textAdvance(word, style.FontSize) <= maxWidth {
			current += " " + word
			continue
		}
		out.lines = append(out.lines, current)
		current = word
	}
	out.lines = append(out.lines, current)
	for _, line := range out.lines {
		if w := textAdvance(line, style.FontSize); w > out.width {
			out.width = w
		}
	}
	out.height = Fl(len(out.lines)) * lineHeight(style)
	out.baseline = firstBaseline(style)
	return out
}

// textMinMax returns the width of the longest word and of the whole text.
func textMinMax(text string, style pr.Style) MinMaxSizes {
	var out MinMaxSizes
	words := strings.Fields(text)
	for _, word := range words {
		if w := textAdvance(word, style.FontSize); w > out.Min {
			out.Min = w
		}
	}
	out.Max = textAdvance(strings.Join(words, " "), style.FontSize)
	return out
}
