package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"radarview/internal/dataset"
)

const screenCSV = `Country,Year,Screen_Time_Hours
India,2020,7.1
India,2021,7.5
Brazil,2020,9.3
Japan,2020,3.9
USA,2020,7.0
`

func writeCSV(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "screen.csv")
	if err := os.WriteFile(p, []byte(screenCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestApp_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)

	if err := app.ExecuteWithArgs(context.Background(), []string{"version"}); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "radarview version") {
		t.Errorf("version output = %q", stdout.String())
	}
}

func TestApp_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)

	if err := app.ExecuteWithArgs(context.Background(), []string{"--help"}); err != nil {
		t.Fatalf("help command failed: %v", err)
	}
	for _, want := range []string{"radar", "view", "window", "export", "--where"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestApp_ExportSVG(t *testing.T) {
	src := writeCSV(t)
	out := filepath.Join(t.TempDir(), "chart.svg")
	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)

	err := app.ExecuteWithArgs(context.Background(), []string{
		"export", src, "-o", out,
		"--label", "Country", "--value", "Screen_Time_Hours",
		"--where", "Year=2020", "--title", "Screen time 2020",
		"--log-file", filepath.Join(t.TempDir(), "radarview.log"),
	})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	svg := string(b)
	for _, want := range []string{"<svg", "Brazil", "Japan", "Screen time 2020"} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if !strings.Contains(stdout.String(), "wrote "+out) {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestApp_ExportUsesConfig(t *testing.T) {
	src := writeCSV(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "radarview.yaml")
	body := "data:\n  path: " + src + "\n  label: Country\n  value: Screen_Time_Hours\n  top: 2\nlog:\n  file: " + filepath.Join(dir, "log.json") + "\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "chart.png")
	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)

	if err := app.ExecuteWithArgs(context.Background(), []string{"export", "-c", cfgPath, "-o", out}); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestApp_ExportErrors(t *testing.T) {
	src := writeCSV(t)
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no dataset", []string{"export", "-o", filepath.Join(dir, "a.svg")}, ErrNoDataset},
		{"missing column", []string{"export", src, "-o", filepath.Join(dir, "b.svg"), "--label", "Nope"}, dataset.ErrColumnNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			app := New().WithOutput(&stdout, &stderr)
			err := app.ExecuteWithArgs(context.Background(), append(tt.args, "--log-file", filepath.Join(dir, tt.name+".log")))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestApp_ExportBadFormatAndWhere(t *testing.T) {
	src := writeCSV(t)
	dir := t.TempDir()
	for _, args := range [][]string{
		{"export", src, "-o", filepath.Join(dir, "c.gif")},
		{"export", src, "-o", filepath.Join(dir, "d.svg"), "--where", "novalue"},
	} {
		var stdout, stderr bytes.Buffer
		app := New().WithOutput(&stdout, &stderr)
		if err := app.ExecuteWithArgs(context.Background(), args); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}
