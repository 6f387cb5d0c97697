package cli

import (
	"github.com/spf13/cobra"

	"radarview/internal/tui"
)

// newViewCmd creates the view command.
func (a *App) newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [file]",
		Short: "Browse and chart datasets in the terminal",
		Long: `Open the terminal viewer. The chart is drawn with braille dots and
reloads when the file changes.

Examples:
  # Chart the value column per label
  radarview view screen.csv --label Country --value Screen_Time_Hours

  # Filter rows and keep the six largest
  radarview view screen.csv --where Year=2020 --top 6`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runView,
	}
}

func (a *App) runView(cmd *cobra.Command, args []string) error {
	cfg, err := a.flags.resolve(cmd, args)
	if err != nil {
		return err
	}
	done, err := initLogging(cfg, true)
	if err != nil {
		return err
	}
	defer done()
	theme, err := cfg.Theme.Resolve()
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), tui.Options{
		Path:     cfg.Data.Path,
		Query:    cfg.Query(),
		Filter:   cfg.FilterColumn(),
		Diameter: cfg.Chart.Diameter,
		Load:     cfg.LoadOptions(),
		Title:    cfg.Chart.Title,
		Unit:     cfg.Data.Unit,
		MaxValue: cfg.Chart.MaxValue,
		Theme:    &theme,
	})
}
