package parser

import (
	"testing"

	tu "github.com/benoitkugler/webgrid/utils/testutils"
)

func TestParseDeclarationList(t *testing.T) {
	decls, errs := ParseDeclarationList(`display: grid; GRID-template-columns: 1fr 2fr ;; width: 10px !important; 12: x; gap`)
	tu.AssertEqual(t, len(decls), 3)
	tu.AssertEqual(t, len(errs), 2)

	tu.AssertEqual(t, decls[0].Name, LowerableString("display"))
	tu.AssertEqual(t, Serialize(RemoveWhitespace(decls[0].Value)), "grid")
	tu.AssertEqual(t, decls[1].Name, LowerableString("grid-template-columns"))
	tu.AssertEqual(t, len(RemoveWhitespace(decls[1].Value)), 2)
	tu.AssertEqual(t, decls[2].Important, true)
	tu.AssertEqual(t, Serialize(RemoveWhitespace(decls[2].Value)), "10px")
}

func TestSplitOnSlash(t *testing.T) {
	parts := SplitOnSlash(RemoveWhitespace(TokenizeString("1 / span 2", true)))
	tu.AssertEqual(t, len(parts), 2)
	tu.AssertEqual(t, Serialize(parts[1]), "span2")
}
