package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"radarview/internal/config"
	"radarview/internal/dataset"
	"radarview/internal/logging"
	"radarview/internal/radar"
)

// ErrNoDataset is returned when neither an argument nor the config names a file.
var ErrNoDataset = errors.New("no dataset: pass a file or set data.path")

// dataFlags are shared by every chart command and override the config file.
type dataFlags struct {
	configPath string
	label      string
	value      string
	where      []string
	filter     string
	top        int
	title      string
	maxValue   float64
	unit       string
	sheet      string
	sql        string
	logLevel   string
	logFormat  string
	logFile    string
}

func (f *dataFlags) register(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.StringVarP(&f.configPath, "config", "c", "", "Path to a YAML configuration file")
	fs.StringVar(&f.label, "label", "", "Column holding the axis labels")
	fs.StringVar(&f.value, "value", "", "Column holding the values")
	fs.StringArrayVar(&f.where, "where", nil, "Keep rows where column=value (repeatable)")
	fs.StringVar(&f.filter, "filter", "", "Column cycled with [ and ] in the viewers")
	fs.IntVar(&f.top, "top", 0, "Keep the N largest values")
	fs.StringVar(&f.title, "title", "", "Chart title")
	fs.Float64Var(&f.maxValue, "max", 0, "Value drawn on the outer ring")
	fs.StringVar(&f.unit, "unit", "", "Unit appended to tooltip values")
	fs.StringVar(&f.sheet, "sheet", "", "XLSX sheet name")
	fs.StringVar(&f.sql, "sql", "", "Query for SQLite sources")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	fs.StringVar(&f.logFormat, "log-format", "", "Log format (console, json)")
	fs.StringVar(&f.logFile, "log-file", "", "Write logs to this file")
}

// resolve builds the effective config: defaults, then the config file,
// then flags that were set, then the positional file.
func (f *dataFlags) resolve(cmd *cobra.Command, args []string) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		c, err := config.Load(f.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = c
	}
	changed := cmd.Flags().Changed
	if changed("label") {
		cfg.Data.Label = f.label
	}
	if changed("value") {
		cfg.Data.Value = f.value
	}
	if changed("where") {
		w, err := dataset.ParseWhere(f.where)
		if err != nil {
			return cfg, err
		}
		if cfg.Data.Where == nil {
			cfg.Data.Where = map[string]string{}
		}
		for k, v := range w {
			cfg.Data.Where[k] = v
		}
	}
	if changed("filter") {
		cfg.Data.Filter = f.filter
	}
	if changed("top") {
		cfg.Data.Top = f.top
	}
	if changed("title") {
		cfg.Chart.Title = f.title
	}
	if changed("max") {
		cfg.Chart.MaxValue = f.maxValue
	}
	if changed("unit") {
		cfg.Data.Unit = f.unit
	}
	if changed("sheet") {
		cfg.Data.Sheet = f.sheet
	}
	if changed("sql") {
		cfg.Data.SQL = f.sql
	}
	if changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
	if changed("log-file") {
		cfg.Log.File = f.logFile
	}
	if len(args) > 0 {
		cfg.Data.Path = args[0]
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// initLogging points the global logger at the configured file. When
// stderr is taken by a full screen UI and no file is set, logs are dropped.
func initLogging(cfg config.Config, screen bool) (func(), error) {
	out := os.Stderr
	closeFn := func() {}
	if cfg.Log.File != "" || screen {
		f, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return nil, err
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}
	logging.Init(cfg.Logging(out))
	return closeFn, nil
}

// loadSeries reads and aggregates the configured dataset. The table is
// returned for viewers that re-query it.
func loadSeries(ctx context.Context, cfg config.Config) (*dataset.Table, radar.Series, error) {
	if cfg.Data.Path == "" {
		return nil, nil, ErrNoDataset
	}
	start := time.Now()
	t, err := dataset.Load(ctx, cfg.Data.Path, cfg.LoadOptions())
	if err != nil {
		return nil, nil, err
	}
	s, err := dataset.Aggregate(t, cfg.Query())
	if err != nil {
		return nil, nil, fmt.Errorf("aggregate %s: %w", cfg.Data.Path, err)
	}
	logging.Info().Add(logging.Path(cfg.Data.Path)).Add(logging.Rows(len(t.Rows))).
		Add(logging.Entries(len(s))).Add(logging.Duration(time.Since(start))).Msg("dataset loaded")
	return t, s, nil
}
