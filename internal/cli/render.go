package cli

import (
	"github.com/spf13/cobra"

	"github.com/benoitkugler/webgrid/html/draw"
)

func newRenderCmd(s *settings) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Lay out an HTML file and draw the fragments to a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := s.layoutFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			opts, err := s.drawOptions(cmd)
			if err != nil {
				return err
			}
			p := newProgress(loggerFromContext(cmd.Context()))
			if err := draw.SavePNG(output, page, opts); err != nil {
				return err
			}
			p.done("Rendered " + output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "webgrid.png", "path of the PNG file")
	cmd.Flags().Bool("tracks", false, "outline the grid lines, overriding the configuration")
	cmd.Flags().Float64("scale", 0, "pixels per CSS pixel, overriding the configuration")
	return cmd
}

func (s *settings) drawOptions(cmd *cobra.Command) (draw.Options, error) {
	cfg := s.config.Render
	if cmd.Flags().Changed("tracks") {
		cfg.ShowTracks, _ = cmd.Flags().GetBool("tracks")
	}
	if cmd.Flags().Changed("scale") {
		cfg.Scale, _ = cmd.Flags().GetFloat64("scale")
	}
	if err := (Config{Viewport: s.config.Viewport, Render: cfg, Text: s.config.Text}).validate(); err != nil {
		return draw.Options{}, err
	}
	background, _ := parseColor(cfg.Background)
	return draw.Options{Scale: cfg.Scale, Background: background, ShowTracks: cfg.ShowTracks}, nil
}
