package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"radarview/internal/radar"
)

// Query selects a label and a value column, keeps rows matching every
// Where equality, averages repeated labels and optionally keeps the Top
// largest.
type Query struct {
	Label string
	Value string
	Where map[string]string
	Top   int
}

type condition struct {
	idx  int
	want string
}

// Aggregate reduces t to a series. Rows whose value is not a finite
// number are skipped. Labels keep their first-seen order unless Top is
// set, in which case the series is sorted by value, largest first.
func Aggregate(t *Table, q Query) (radar.Series, error) {
	li, err := t.Column(q.Label)
	if err != nil {
		return nil, err
	}
	vi, err := t.Column(q.Value)
	if err != nil {
		return nil, err
	}
	conds := make([]condition, 0, len(q.Where))
	for col, want := range q.Where {
		idx, err := t.Column(col)
		if err != nil {
			return nil, err
		}
		conds = append(conds, condition{idx: idx, want: strings.TrimSpace(want)})
	}

	type acc struct {
		sum   float64
		count int
	}
	var order []string
	sums := map[string]*acc{}
rows:
	for _, row := range t.Rows {
		for _, c := range conds {
			if !strings.EqualFold(strings.TrimSpace(row[c.idx]), c.want) {
				continue rows
			}
		}
		label := strings.TrimSpace(row[li])
		v, err := strconv.ParseFloat(strings.TrimSpace(row[vi]), 64)
		if label == "" || err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		a, ok := sums[label]
		if !ok {
			a = &acc{}
			sums[label] = a
			order = append(order, label)
		}
		a.sum += v
		a.count++
	}
	if len(order) == 0 {
		return nil, ErrEmpty
	}

	s := make(radar.Series, 0, len(order))
	for _, label := range order {
		a := sums[label]
		s = append(s, radar.Entry{Label: label, Value: a.sum / float64(a.count)})
	}
	if q.Top > 0 {
		sort.SliceStable(s, func(i, j int) bool { return s[i].Value > s[j].Value })
		if len(s) > q.Top {
			s = s[:q.Top]
		}
	}
	return s, nil
}

// Filter steps one Where column through the distinct values of a table.
type Filter struct {
	Column string
	Values []string
	pos    int
}

// NewFilter starts at current when it is one of the column's values,
// otherwise at the first one.
func NewFilter(t *Table, column, current string) (*Filter, error) {
	vals, err := t.Distinct(column)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("%w: column %q has no values", ErrEmpty, column)
	}
	f := &Filter{Column: column, Values: vals}
	for i, v := range vals {
		if strings.EqualFold(v, strings.TrimSpace(current)) {
			f.pos = i
			break
		}
	}
	return f, nil
}

// Value is the value currently selected.
func (f *Filter) Value() string { return f.Values[f.pos] }

// Step moves by delta values, wrapping at both ends, and returns the new value.
func (f *Filter) Step(delta int) string {
	n := len(f.Values)
	f.pos = ((f.pos+delta)%n + n) % n
	return f.Value()
}

// Apply returns q filtered on the current value. q.Where is not modified.
func (f *Filter) Apply(q Query) Query {
	where := make(map[string]string, len(q.Where)+1)
	for k, v := range q.Where {
		if !strings.EqualFold(strings.TrimSpace(k), f.Column) {
			where[k] = v
		}
	}
	where[f.Column] = f.Value()
	q.Where = where
	return q
}

// FilterColumn picks the column to cycle: column when set, otherwise the
// first Where key in sorted order. Empty means no filter.
func FilterColumn(column string, where map[string]string) string {
	if c := strings.TrimSpace(column); c != "" {
		return c
	}
	keys := make([]string, 0, len(where))
	for k := range where {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return keys[0]
}

// ParseWhere turns "column=value" pairs into a Where map.
func ParseWhere(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("where %q: want column=value", p)
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out, nil
}
