package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "radarview.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad(t *testing.T) {
	t.Parallel()

	p := writeConfig(t, `
chart:
  max_value: 12
  title: Top 6 Countries
data:
  path: screen.csv
  label: Country
  value: Screen_Time_Hours
  where: {Year: "2020"}
  top: 6
  unit: hrs
theme:
  polygon: "#cc3300"
log:
  level: debug
  format: json
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Chart.Diameter != 250 {
		t.Errorf("diameter = %v, want default 250", cfg.Chart.Diameter)
	}
	if cfg.Chart.MaxValue != 12 || cfg.Chart.Title != "Top 6 Countries" {
		t.Errorf("chart = %+v", cfg.Chart)
	}
	q := cfg.Query()
	if q.Label != "Country" || q.Top != 6 || q.Where["Year"] != "2020" {
		t.Errorf("query = %+v", q)
	}
	th, err := cfg.Theme.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if want := (color.NRGBA{R: 0xcc, G: 0x33, B: 0x00, A: 200}); th.Polygon.Stroke != want {
		t.Errorf("polygon stroke = %+v, want %+v", th.Polygon.Stroke, want)
	}
	if th.Polygon.Fill.A != 80 {
		t.Errorf("polygon fill alpha = %d, want 80", th.Polygon.Fill.A)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want error
	}{
		{"bad yaml", "chart: [", ErrInvalid},
		{"zero diameter", "chart: {diameter: 0}", ErrInvalid},
		{"negative max", "chart: {max_value: -1}", ErrInvalid},
		{"negative top", "data: {top: -2}", ErrInvalid},
		{"bad level", "log: {level: loud}", ErrInvalid},
		{"bad format", "log: {format: xml}", ErrInvalid},
		{"bad color", "theme: {ring: nope}", ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Load(writeConfig(t, tt.body)); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDefaultValidates(t *testing.T) {
	t.Parallel()

	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestFilterColumn(t *testing.T) {
	t.Parallel()

	p := writeConfig(t, "data:\n  where: {Year: \"2020\", Age_Group: \"18-24\"}\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.FilterColumn(); got != "Age_Group" {
		t.Errorf("FilterColumn = %q, want the first where key", got)
	}
	cfg.Data.Filter = "Country"
	if got := cfg.FilterColumn(); got != "Country" {
		t.Errorf("FilterColumn = %q, want the configured column", got)
	}
}
