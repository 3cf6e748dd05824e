package cli

import (
	"context"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	pr "github.com/benoitkugler/webgrid/css/properties"
	bo "github.com/benoitkugler/webgrid/html/boxes"
	"github.com/benoitkugler/webgrid/html/layout"
	"github.com/benoitkugler/webgrid/html/layout/grid"
	"github.com/benoitkugler/webgrid/html/tree"
	"github.com/benoitkugler/webgrid/utils"
)

func newLayoutCmd(s *settings) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "layout FILE",
		Short: "Lay out an HTML file and print the fragment tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := s.layoutFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(newFragmentJSON(page))
			}
			_, err = io.WriteString(out, page.Dump())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the fragments as JSON")
	return cmd
}

// layoutFile parses the HTML file at path and lays out its <body>
// in the configured viewport.
func (s *settings) layoutFile(ctx context.Context, path string) (*layout.Fragment, error) {
	l := loggerFromContext(ctx)
	p := newProgress(l)

	f, err := readFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := tree.NewHTML(f)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rootStyle := pr.InitialStyle()
	rootStyle.FontSize, rootStyle.LineHeight = s.config.Text.FontSize, s.config.Text.LineHeight
	root := bo.BuildTreeFrom(doc, &rootStyle)

	registry := layout.NewRegistry()
	grid.Register(registry)
	height := utils.MaybeFloat{}
	if h := s.config.Viewport.Height; h > 0 {
		height = utils.Some(h)
	}
	page, err := layout.Layout(registry, root, utils.Some(s.config.Viewport.Width), height)
	if err != nil {
		return nil, err
	}
	p.done("Laid out " + path)
	return page, nil
}

// fragmentJSON is the JSON output of the layout command. Positions are
// relative to the parent fragment.
type fragmentJSON struct {
	Box      string         `json:"box"`
	ID       string         `json:"id,omitempty"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	Width    float64        `json:"width"`
	Height   float64        `json:"height"`
	Baseline *float64       `json:"baseline,omitempty"`
	Columns  []float64      `json:"columns,omitempty"`
	Rows     []float64      `json:"rows,omitempty"`
	Children []fragmentJSON `json:"children,omitempty"`
}

func round(v float64) float64 { return utils.RoundPrec(v, 3) }

func roundAll(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = round(v)
	}
	return out
}

func newFragmentJSON(fr *layout.Fragment) fragmentJSON {
	out := fragmentJSON{
		X:      round(fr.X),
		Y:      round(fr.Y),
		Width:  round(fr.Width),
		Height: round(fr.Height),
	}
	if fr.Box != nil {
		out.Box, out.ID = fr.Box.String(), fr.Box.ID()
	}
	if fr.Baseline.Valid {
		b := round(fr.Baseline.V)
		out.Baseline = &b
	}
	if fr.Grid != nil {
		out.Columns, out.Rows = roundAll(fr.Grid.Columns), roundAll(fr.Grid.Rows)
	}
	for _, child := range fr.Children {
		out.Children = append(out.Children, newFragmentJSON(child))
	}
	return out
}
