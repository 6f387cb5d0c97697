package dataset

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

const screenCSV = `Country, Year, Age_Group, Screen_Time_Hours
Brazil, 2020, 18-24, 9.5
Brazil, 2020, 25-34, 8.5
Japan, 2020, 18-24, 4.0
India, 2020, 18-24, 7.0
Japan, 2021, 18-24, 5.0
Chile, 2020, 18-24, n/a
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestLoadCSV(t *testing.T) {
	t.Parallel()

	p := writeFile(t, "screen.csv", screenCSV)
	tbl, err := Load(context.Background(), p, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tbl.Header) != 4 || tbl.Header[3] != "Screen_Time_Hours" {
		t.Errorf("header = %q", tbl.Header)
	}
	if len(tbl.Rows) != 6 {
		t.Errorf("rows = %d, want 6", len(tbl.Rows))
	}
}

func TestLoadUnsupported(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), "data.parquet", Options{})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
	var le *LoadError
	if !errors.As(err, &le) || le.Path != "data.parquet" {
		t.Errorf("err = %#v, want *LoadError for data.parquet", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), Options{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not exist", err)
	}
}

func TestLoadXLSX(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"
	f.SetCellValue(sheet, "A1", "Country")
	f.SetCellValue(sheet, "B1", "Hours")
	f.SetCellValue(sheet, "A2", "Peru")
	f.SetCellValue(sheet, "B2", 6.25)
	f.SetCellValue(sheet, "A3", "Chad")
	f.SetCellValue(sheet, "B3", 3)
	p := filepath.Join(t.TempDir(), "hours.xlsx")
	if err := f.SaveAs(p); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	tbl, err := Load(context.Background(), p, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s, err := Aggregate(tbl, Query{Label: "country", Value: "hours"})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(s) != 2 || s[0].Label != "Peru" || s[0].Value != 6.25 || s[1].Value != 3 {
		t.Errorf("series = %+v", s)
	}

	if _, err := Load(context.Background(), p, Options{Sheet: "Missing"}); err == nil {
		t.Error("missing sheet loaded")
	}
}

func TestLoadSQLite(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "screen.db")
	db, err := sql.Open("sqlite3", p)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	stmts := []string{
		`CREATE TABLE data (country TEXT, hours REAL)`,
		`INSERT INTO data VALUES ('Kenya', 5.5), ('Fiji', 2), ('Kenya', 6.5)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("exec %q: %v", s, err)
		}
	}
	db.Close()

	tbl, err := Load(context.Background(), p, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	s, err := Aggregate(tbl, Query{Label: "country", Value: "hours"})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(s) != 2 || s[0].Label != "Kenya" || s[0].Value != 6 {
		t.Errorf("series = %+v", s)
	}

	tbl, err = Load(context.Background(), p, Options{SQL: "SELECT country, hours FROM data WHERE hours < 3"})
	if err != nil {
		t.Fatalf("Load with SQL: %v", err)
	}
	if len(tbl.Rows) != 1 || tbl.Rows[0][0] != "Fiji" {
		t.Errorf("rows = %q", tbl.Rows)
	}
}

func TestWatcher(t *testing.T) {
	t.Parallel()

	p := writeFile(t, "live.csv", "a,b\n")
	w, err := Watch(p)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	// unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(filepath.Dir(p), "other.csv"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Changed():
	case <-time.After(5 * time.Second):
		t.Fatal("no change signal")
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
