package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bubblemap/internal/bubblemap"
	"bubblemap/internal/geom"
	"bubblemap/internal/render"
	"bubblemap/internal/scale"
)

func (a *app) renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the map as an SVG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd, a.stderr); err != nil {
				return err
			}
			defer a.close()
			return a.render()
		},
	}
	f := cmd.Flags()
	f.Int("width", 960, "image width in pixels")
	f.Int("height", 600, "image height in pixels")
	f.Float64("padding", 10, "margin around the map in pixels")
	f.StringP("output", "o", "bubblemap.svg", "output file, - for stdout")
	return cmd
}

func (a *app) render() error {
	cfg := a.cfg
	if cfg.Outline == "" {
		return errors.New("render: no outline given (--outline or outline in the config file)")
	}
	outline, err := geom.LoadOutline(cfg.Outline)
	if err != nil {
		return err
	}
	var records []geom.Record
	if cfg.Data != "" {
		if records, err = geom.LoadRecords(cfg.Data); err != nil {
			return err
		}
	}

	proj := scale.New(scale.NewRegistry(),
		scale.WithLogger(a.log),
		scale.WithProjection(scale.Name(cfg.Projection)))
	if err := proj.SetGeometry(outline); err != nil {
		return fmt.Errorf("outline %s: %w", cfg.Outline, err)
	}
	opts := render.Options{
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		Padding:    cfg.Render.Padding,
		Background: cfg.Render.Background,
		Stroke:     cfg.Render.Stroke,
		Title:      cfg.Projection,
	}
	proj.OnLayout(opts.Rect())

	ctrl := bubblemap.New(proj, scale.NewSizeScale(cfg.SizeOptions()),
		bubblemap.WithRamp(cfg.Bubbles.LowColor, cfg.Bubbles.HighColor))
	elems := ctrl.Update(ctrl.Parse(records), bubblemap.ModeDefault)
	skipped := 0
	for _, e := range elems {
		if e.Skip {
			skipped++
		}
	}
	a.log.WithFields(logrus.Fields{
		"records": len(records),
		"skipped": skipped,
		"output":  cfg.Render.Output,
	}).Info("rendering map")

	if cfg.Render.Output == "-" {
		return render.SVG(a.stdout, opts, proj, outline, elems)
	}
	f, err := os.Create(cfg.Render.Output)
	if err != nil {
		return err
	}
	if err := render.SVG(f, opts, proj, outline, elems); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (a *app) projectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projections",
		Short: "List the projection names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listProjections(a.stdout, scale.NewRegistry())
		},
	}
}

func listProjections(w io.Writer, reg *scale.Registry) error {
	for _, name := range reg.Names() {
		mark := " "
		if name == scale.DefaultProjection {
			mark = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", mark, name); err != nil {
			return err
		}
	}
	return nil
}
