package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"radarview/internal/export"
	"radarview/internal/logging"
)

type exportOptions struct {
	output string
	format string
	width  int
	height int
}

// newExportCmd creates the export command.
func (a *App) newExportCmd() *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Render the chart to a PNG or SVG file",
		Long: `Render the chart to an image file. The format follows the output
extension unless --format is given.

Examples:
  radarview export screen.csv -o chart.svg --title "Screen time"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExport(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (.png or .svg)")
	cmd.Flags().StringVar(&opts.format, "format", "", "Output format (png, svg)")
	cmd.Flags().IntVar(&opts.width, "width", 600, "Image width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 500, "Image height in pixels")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func (a *App) runExport(cmd *cobra.Command, args []string, opts *exportOptions) (err error) {
	cfg, err := a.flags.resolve(cmd, args)
	if err != nil {
		return err
	}
	done, err := initLogging(cfg, false)
	if err != nil {
		return err
	}
	defer done()

	var format export.Format
	if opts.format != "" {
		format, err = export.ParseFormat(opts.format)
	} else {
		format, err = export.FormatFromPath(opts.output)
	}
	if err != nil {
		return err
	}
	_, series, err := loadSeries(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	theme, err := cfg.Theme.Resolve()
	if err != nil {
		return err
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err := export.Chart(f, format, series, export.ChartOptions{
		Width:    opts.width,
		Height:   opts.height,
		Theme:    theme,
		MaxValue: cfg.Chart.MaxValue,
		Diameter: cfg.Chart.Diameter,
		Title:    cfg.Chart.Title,
	}); err != nil {
		return err
	}
	logging.Info().Add(logging.Path(opts.output)).Add(logging.Format(format.String())).Add(logging.Entries(len(series))).Msg("chart exported")
	fmt.Fprintf(a.stdout, "wrote %s\n", opts.output)
	return nil
}
