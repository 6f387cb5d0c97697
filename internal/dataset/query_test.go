package dataset

import (
	"errors"
	"testing"

	"radarview/internal/radar"
)

func screenTable() *Table {
	return &Table{
		Header: []string{"Country", "Year", "Age_Group", "Screen_Time_Hours"},
		Rows: [][]string{
			{"Brazil", "2020", "18-24", "9.5"},
			{"Brazil", "2020", "25-34", "8.5"},
			{"Japan", "2020", "18-24", "4.0"},
			{"India", "2020", "18-24", "7.0"},
			{"Japan", "2021", "18-24", "5.0"},
			{"Chile", "2020", "18-24", "n/a"},
			{"", "2020", "18-24", "1"},
		},
	}
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		q      Query
		labels []string
		values []float64
	}{
		{
			name:   "average by label in first-seen order",
			q:      Query{Label: "country", Value: "screen_time_hours"},
			labels: []string{"Brazil", "Japan", "India"},
			values: []float64{9, 4.5, 7},
		},
		{
			name:   "filtered by year",
			q:      Query{Label: "Country", Value: "Screen_Time_Hours", Where: map[string]string{"Year": "2021"}},
			labels: []string{"Japan"},
			values: []float64{5},
		},
		{
			name:   "two conditions",
			q:      Query{Label: "Country", Value: "Screen_Time_Hours", Where: map[string]string{"Year": "2020", "age_group": "18-24"}},
			labels: []string{"Brazil", "Japan", "India"},
			values: []float64{9.5, 4, 7},
		},
		{
			name:   "top two sorted descending",
			q:      Query{Label: "Country", Value: "Screen_Time_Hours", Top: 2},
			labels: []string{"Brazil", "India"},
			values: []float64{9, 7},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := Aggregate(screenTable(), tt.q)
			if err != nil {
				t.Fatalf("Aggregate: %v", err)
			}
			if len(s) != len(tt.labels) {
				t.Fatalf("series = %+v, want labels %v", s, tt.labels)
			}
			for i := range s {
				if s[i].Label != tt.labels[i] || s[i].Value != tt.values[i] {
					t.Errorf("entry %d = %+v, want %s=%v", i, s[i], tt.labels[i], tt.values[i])
				}
			}
		})
	}
}

func TestAggregateErrors(t *testing.T) {
	t.Parallel()

	if _, err := Aggregate(screenTable(), Query{Label: "Town", Value: "Screen_Time_Hours"}); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("missing label column: err = %v", err)
	}
	if _, err := Aggregate(screenTable(), Query{Label: "Country", Value: "Screen_Time_Hours", Where: map[string]string{"Region": "x"}}); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("missing where column: err = %v", err)
	}
	if _, err := Aggregate(screenTable(), Query{Label: "Country", Value: "Screen_Time_Hours", Where: map[string]string{"Year": "1999"}}); !errors.Is(err, ErrEmpty) {
		t.Errorf("no matching rows: err = %v", err)
	}
}

func TestAggregateSkipsNonFinite(t *testing.T) {
	t.Parallel()

	tbl := &Table{
		Header: []string{"label", "value"},
		Rows:   [][]string{{"a", "NaN"}, {"b", "Inf"}, {"c", "3"}, {"d", "-inf"}, {"e", "1e9"}},
	}
	s, err := Aggregate(tbl, Query{Label: "label", Value: "value"})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(s) != 2 || s[0] != (radar.Entry{Label: "c", Value: 3}) || s[1] != (radar.Entry{Label: "e", Value: 1e9}) {
		t.Errorf("series = %+v, want c=3 and e=1e9", s)
	}
}

func TestDistinct(t *testing.T) {
	t.Parallel()

	years, err := screenTable().Distinct("year")
	if err != nil {
		t.Fatal(err)
	}
	if len(years) != 2 || years[0] != "2020" || years[1] != "2021" {
		t.Errorf("years = %v", years)
	}
}

func TestFilterCyclesDistinctValues(t *testing.T) {
	t.Parallel()

	tbl := screenTable()
	q := Query{Label: "Country", Value: "Screen_Time_Hours", Where: map[string]string{"year": "2020", "Age_Group": "18-24"}}
	f, err := NewFilter(tbl, "Year", q.Where["year"])
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}
	if f.Value() != "2020" {
		t.Fatalf("start = %q, want 2020", f.Value())
	}
	if got := f.Step(1); got != "2021" {
		t.Errorf("Step(1) = %q, want 2021", got)
	}
	next := f.Apply(q)
	if len(next.Where) != 2 || next.Where["Year"] != "2021" || next.Where["Age_Group"] != "18-24" {
		t.Errorf("where = %v", next.Where)
	}
	if q.Where["year"] != "2020" {
		t.Error("Apply modified the input query")
	}
	s, err := Aggregate(tbl, next)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(s) != 1 || s[0] != (radar.Entry{Label: "Japan", Value: 5}) {
		t.Errorf("series = %+v", s)
	}
	if got := f.Step(1); got != "2020" {
		t.Errorf("wrap forward = %q, want 2020", got)
	}
	if got := f.Step(-1); got != "2021" {
		t.Errorf("wrap back = %q, want 2021", got)
	}

	if _, err := NewFilter(tbl, "Missing", ""); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("missing column err = %v", err)
	}
}

func TestFilterColumn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		column string
		where  map[string]string
		want   string
	}{
		{"", nil, ""},
		{"Country", nil, "Country"},
		{"", map[string]string{"Year": "2020", "Age_Group": "18-24"}, "Age_Group"},
		{" Year ", map[string]string{"Age_Group": "18-24"}, "Year"},
	}
	for _, tt := range tests {
		if got := FilterColumn(tt.column, tt.where); got != tt.want {
			t.Errorf("FilterColumn(%q, %v) = %q, want %q", tt.column, tt.where, got, tt.want)
		}
	}
}

func TestParseWhere(t *testing.T) {
	t.Parallel()

	w, err := ParseWhere([]string{"Year=2020", " Age_Group = 18-24 "})
	if err != nil {
		t.Fatal(err)
	}
	if w["Year"] != "2020" || w["Age_Group"] != "18-24" {
		t.Errorf("where = %v", w)
	}
	if _, err := ParseWhere([]string{"Year"}); err == nil {
		t.Error("missing '=' accepted")
	}
	if w, err := ParseWhere(nil); err != nil || w != nil {
		t.Errorf("nil pairs = %v, %v", w, err)
	}
}
