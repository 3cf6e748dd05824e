package cli

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html><body>
<div id="g" style="display: grid; grid-template-columns: 1fr 3fr; column-gap: 20px; font-size: 10px; line-height: 1">
	<div id="a">a</div>
	<div id="b">b</div>
</div>
</body></html>`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes the root command, returning its standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out, errs bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errs)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLayoutText(t *testing.T) {
	input := writeFile(t, "page.html", page)
	out, err := run(t, "layout", input, "--width", "420", "--config", writeFile(t, "empty.toml", ""))
	require.NoError(t, err)
	assert.Contains(t, out, "body(block) at (0, 0) size 420x10")
	assert.Contains(t, out, "div(grid) at (0, 0) size 420x10")
	assert.Contains(t, out, "div(block) at (120, 0) size 300x10")
}

func TestLayoutJSON(t *testing.T) {
	input := writeFile(t, "page.html", page)
	config := writeFile(t, "webgrid.toml", "[viewport]\nwidth = 420\n")
	out, err := run(t, "layout", input, "--json", "--config", config)
	require.NoError(t, err)

	var body fragmentJSON
	require.NoError(t, jsoniter.Unmarshal([]byte(out), &body))
	require.Len(t, body.Children, 1)
	g := body.Children[0]
	assert.Equal(t, "g", g.ID)
	assert.Equal(t, []float64{0, 100, 120, 420}, g.Columns)
	assert.Equal(t, []float64{0, 10}, g.Rows)
	require.Len(t, g.Children, 2)
	assert.Equal(t, "b", g.Children[1].ID)
	assert.Equal(t, 120., g.Children[1].X)
	require.NotNil(t, g.Children[0].Baseline)
	assert.Equal(t, 8., *g.Children[0].Baseline)
}

func TestRender(t *testing.T) {
	input := writeFile(t, "page.html", page)
	config := writeFile(t, "webgrid.toml", `
[viewport]
width = 100
height = 40

[render]
scale = 2
background = "#000"
`)
	output := filepath.Join(t.TempDir(), "out.png")
	_, err := run(t, "render", input, "-o", output, "--tracks", "--config", config)
	require.NoError(t, err)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestConfig(t *testing.T) {
	l := newLogger(&bytes.Buffer{}, 0)

	// a missing default file is ignored
	cfg, err := loadConfig(filepath.Join(t.TempDir(), defaultConfigPath), false, l)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.toml"), true, l)
	assert.Error(t, err)

	var logs bytes.Buffer
	path := writeFile(t, "webgrid.toml", "[text]\nfont_size = 4\nunknown = 1\n")
	cfg, err = loadConfig(path, true, newLogger(&logs, 0))
	require.NoError(t, err)
	assert.Equal(t, 4., cfg.Text.FontSize)
	assert.Equal(t, 1.2, cfg.Text.LineHeight)
	assert.Contains(t, logs.String(), "text.unknown")

	_, err = loadConfig(writeFile(t, "bad.toml", "[viewport]\nwidth = -1\n"), true, l)
	assert.Error(t, err)
	_, err = loadConfig(writeFile(t, "bad.toml", "[viewport\n"), true, l)
	assert.Error(t, err)
}

func TestParseColor(t *testing.T) {
	for input, expected := range map[string]color.Color{
		"white":   color.RGBA{0xff, 0xff, 0xff, 0xff},
		" Red ":   color.RGBA{0xff, 0, 0, 0xff},
		"#102030": color.RGBA{0x10, 0x20, 0x30, 0xff},
		"#fa0":    color.RGBA{0xff, 0xaa, 0, 0xff},
	} {
		c, err := parseColor(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, c, input)
	}
	for _, input := range []string{"", "#12", "#gggggg", "blurple"} {
		_, err := parseColor(input)
		assert.Error(t, err, input)
	}
}

func TestInvalidInvocations(t *testing.T) {
	_, err := run(t, "layout")
	assert.Error(t, err)

	_, err = run(t, "layout", filepath.Join(t.TempDir(), "missing.html"), "--config", writeFile(t, "empty.toml", ""))
	assert.ErrorContains(t, err, "reading input")

	input := writeFile(t, "page.html", page)
	_, err = run(t, "layout", input, "--width", "-3", "--config", writeFile(t, "empty.toml", ""))
	assert.ErrorContains(t, err, "invalid flags")
}

func TestLoggerFromContext(t *testing.T) {
	l := newLogger(&bytes.Buffer{}, 0)
	assert.Same(t, l, loggerFromContext(withLogger(context.Background(), l)))
	assert.NotNil(t, loggerFromContext(context.Background()))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "webgrid 0.1.0\n", out)
}
