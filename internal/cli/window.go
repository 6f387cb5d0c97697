package cli

import (
	"github.com/spf13/cobra"

	"radarview/internal/window"
)

type windowOptions struct {
	width  int
	height int
	page   string
}

// newWindowCmd creates the window command.
func (a *App) newWindowCmd() *cobra.Command {
	opts := &windowOptions{}

	cmd := &cobra.Command{
		Use:   "window [file]",
		Short: "Show the chart in a desktop window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWindow(cmd, args, opts)
		},
	}

	cmd.Flags().IntVar(&opts.width, "width", 900, "Window width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 600, "Window height in pixels")
	cmd.Flags().StringVar(&opts.page, "page-title", "radarview", "Heading above the chart")

	return cmd
}

func (a *App) runWindow(cmd *cobra.Command, args []string, opts *windowOptions) error {
	cfg, err := a.flags.resolve(cmd, args)
	if err != nil {
		return err
	}
	done, err := initLogging(cfg, false)
	if err != nil {
		return err
	}
	defer done()
	tbl, series, err := loadSeries(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	theme, err := cfg.Theme.Resolve()
	if err != nil {
		return err
	}
	return window.Run(window.Options{
		Width:     opts.width,
		Height:    opts.height,
		PageTitle: opts.page,
		Title:     cfg.Chart.Title,
		Series:    series,
		Table:     tbl,
		Query:     cfg.Query(),
		Filter:    cfg.FilterColumn(),
		MaxValue:  cfg.Chart.MaxValue,
		Diameter:  cfg.Chart.Diameter,
		Unit:      cfg.Data.Unit,
		Theme:     &theme,
	})
}
