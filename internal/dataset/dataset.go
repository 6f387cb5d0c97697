// Package dataset loads tabular data (CSV, XLSX, SQLite) and reduces it to
// radar chart series.
package dataset

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/xuri/excelize/v2"
)

// DefaultSQL is the query used for SQLite sources without Options.SQL.
const DefaultSQL = "SELECT * FROM data"

// Table is a header row plus data rows. Rows are padded or cut to the
// header width.
type Table struct {
	Header []string
	Rows   [][]string
}

// Options tune format specific loading.
type Options struct {
	// Sheet selects an xlsx sheet; empty means the first one.
	Sheet string
	// SQL is the query run against SQLite sources.
	SQL string
}

// Extensions lists the file extensions Load understands.
var Extensions = []string{".csv", ".xlsx", ".db", ".sqlite", ".sqlite3"}

// Supported reports whether path has a known extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads path with the loader matching its extension.
func Load(ctx context.Context, path string, opts Options) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var (
		t   *Table
		err error
	)
	switch ext {
	case ".csv":
		t, err = loadCSV(path)
	case ".xlsx":
		t, err = loadXLSX(path, opts.Sheet)
	case ".db", ".sqlite", ".sqlite3":
		t, err = loadSQLite(ctx, path, opts.SQL)
	default:
		return nil, &LoadError{Path: path, Format: ext, Err: ErrUnsupportedFormat}
	}
	if err != nil {
		return nil, &LoadError{Path: path, Format: strings.TrimPrefix(ext, "."), Err: err}
	}
	return t, nil
}

func newTable(recs [][]string) (*Table, error) {
	if len(recs) == 0 {
		return nil, ErrEmpty
	}
	header := make([]string, len(recs[0]))
	for i, h := range recs[0] {
		header[i] = strings.TrimSpace(h)
	}
	rows := make([][]string, 0, len(recs)-1)
	for _, row := range recs[1:] {
		vals := make([]string, len(header))
		copy(vals, row)
		rows = append(rows, vals)
	}
	return &Table{Header: header, Rows: rows}, nil
}

func loadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return newTable(recs)
}

func loadXLSX(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmpty
		}
		sheet = sheets[0]
	}
	recs, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	return newTable(recs)
}

func loadSQLite(ctx context.Context, path, query string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	if query == "" {
		query = DefaultSQL
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	recs := [][]string{cols}
	for rows.Next() {
		cells := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		rec := make([]string, len(cols))
		for i, c := range cells {
			rec[i] = c.String
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return newTable(recs)
}

// Column returns the index of name, ignoring case and surrounding space.
func (t *Table) Column(name string) (int, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, h := range t.Header {
		if strings.ToLower(h) == want {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// Distinct lists the distinct non-empty values of a column in first-seen order.
func (t *Table) Distinct(column string) ([]string, error) {
	idx, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var out []string
	for _, row := range t.Rows {
		v := strings.TrimSpace(row[idx])
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out, nil
}
