// Package draw paints a fragment tree on a raster image, to debug
// the layout : each box is filled with a color depending on its depth,
// and the grid lines of the grid containers may be outlined.
package draw

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/benoitkugler/webgrid/html/layout"
	"github.com/benoitkugler/webgrid/logger"
	"github.com/benoitkugler/webgrid/utils"
	"github.com/fogleman/gg"
)

type Fl = utils.Fl

// Canvas is the set of graphic primitives used to paint a fragment tree.
// It is implemented by [gg.Context].
type Canvas interface {
	SetColor(c color.Color)
	SetLineWidth(lineWidth float64)
	SetDash(dashes ...float64)
	DrawRectangle(x, y, w, h float64)
	DrawLine(x1, y1, x2, y2 float64)
	Fill()
	Stroke()
}

var _ Canvas = (*gg.Context)(nil)

// Options controls the rendering.
type Options struct {
	// Scale is the number of pixels per CSS pixel. Zero means 1.
	Scale Fl
	// Background defaults to white.
	Background color.Color
	// ShowTracks outlines the grid lines of the grid containers.
	ShowTracks bool
}

func (opts Options) scale() Fl {
	if opts.Scale <= 0 {
		return 1
	}
	return opts.Scale
}

// palette is used to fill boxes, cycling with the depth
var palette = [...]color.NRGBA{
	{0x4e, 0x79, 0xa7, 0x50},
	{0xf2, 0x8e, 0x2b, 0x60},
	{0x59, 0xa1, 0x4f, 0x70},
	{0xe1, 0x57, 0x59, 0x70},
	{0xb0, 0x7a, 0xa1, 0x70},
}

var (
	outlineColor = color.NRGBA{0x33, 0x33, 0x33, 0xff}
	trackColor   = color.NRGBA{0xd6, 0x27, 0x28, 0xc0}
)

// Paint draws the fragments of root on canvas, in tree order, so that
// children are painted over their parent. Coordinates are CSS pixels.
func Paint(canvas Canvas, root *layout.Fragment, opts Options) {
	for _, fr := range root.Flatten() {
		if fr.Width <= 0 && fr.Height <= 0 {
			continue
		}
		canvas.SetColor(palette[fr.Depth%len(palette)])
		canvas.DrawRectangle(fr.X, fr.Y, fr.Width, fr.Height)
		canvas.Fill()

		canvas.SetColor(outlineColor)
		canvas.SetLineWidth(1)
		canvas.SetDash()
		canvas.DrawRectangle(fr.X, fr.Y, fr.Width, fr.Height)
		canvas.Stroke()

		if opts.ShowTracks && fr.Grid != nil {
			paintGridLines(canvas, fr)
		}
	}
}

func paintGridLines(canvas Canvas, fr layout.AbsoluteFragment) {
	canvas.SetColor(trackColor)
	canvas.SetLineWidth(1)
	canvas.SetDash(4, 2)
	for _, x := range fr.Grid.Columns {
		canvas.DrawLine(fr.X+x, fr.Y, fr.X+x, fr.Y+fr.Height)
		canvas.Stroke()
	}
	for _, y := range fr.Grid.Rows {
		canvas.DrawLine(fr.X, fr.Y+y, fr.X+fr.Width, fr.Y+y)
		canvas.Stroke()
	}
}

// Draw returns an image of the fragment tree, whose size is the one
// of root, multiplied by the scale.
func Draw(root *layout.Fragment, opts Options) image.Image {
	logger.ProgressLogger.Debug("Step 4 - Drawing the fragments", "width", root.Width, "height", root.Height)
	scale := opts.scale()
	width := int(math.Max(1, math.Ceil(root.Width*scale)))
	height := int(math.Max(1, math.Ceil(root.Height*scale)))
	dc := gg.NewContext(width, height)
	if opts.Background != nil {
		dc.SetColor(opts.Background)
	} else {
		dc.SetColor(color.White)
	}
	dc.Clear()
	dc.Scale(scale, scale)
	Paint(dc, root, opts)
	return dc.Image()
}

// SavePNG draws the fragment tree and writes it as a PNG file.
func SavePNG(path string, root *layout.Fragment, opts Options) error {
	if err := gg.SavePNG(path, Draw(root, opts)); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
