// Package cli is the bubblemap command tree.
package cli

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bubblemap/internal/config"
	"bubblemap/internal/logging"
	"bubblemap/internal/scale"
)

type app struct {
	stdout, stderr io.Writer

	configPath string
	cfg        config.Config
	log        *logrus.Logger
	closer     io.Closer
}

// NewRootCmd builds the command tree writing to the given streams.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	return (&app{stdout: stdout, stderr: stderr}).rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bubblemap",
		Short: "Place data points on a projected map outline as sized bubbles.",
		Long: `bubblemap fits a geographic outline into the available space with a
cartographic projection and draws data records on it as circles whose
radius encodes a value. Maps can be explored in the terminal or written
as SVG.`,
		SilenceUsage: true,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "configuration file location (TOML)")
	pf.String("projection", scale.DefaultProjection, "projection name, see `bubblemap projections`")
	pf.String("outline", "", "outline geometry: .geojson, .json, .shp, .wkt or .kml")
	pf.String("data", "", "bubble records: .csv, .geojson, .json, .kml or .shp")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-file", "", "append logs to this file")

	root.AddCommand(a.viewCmd(), a.renderCmd(), a.projectionsCmd())
	return root
}

// setup resolves the configuration for cmd and opens the logger. Logs go
// to fallback unless a log file is configured. Commands defer a.close
// once setup succeeds.
func (a *app) setup(cmd *cobra.Command, fallback io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, closer, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File, Fallback: fallback})
	if err != nil {
		return err
	}
	a.cfg, a.log, a.closer = cfg, log, closer
	a.log.WithFields(logrus.Fields{
		"command":    cmd.Name(),
		"projection": cfg.Projection,
		"outline":    cfg.Outline,
		"data":       cfg.Data,
	}).Debug("configuration loaded")
	return nil
}

// close releases the log file. It runs on every exit path of a command,
// including failed ones.
func (a *app) close() {
	if a.closer != nil {
		a.closer.Close()
		a.closer = nil
	}
}
