package radar

// Entry is one labelled value of a series.
type Entry struct {
	Label string
	Value float64
}

// Series is the ordered input of one render call.
type Series []Entry

func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, e := range s {
		out[i] = e.Value
	}
	return out
}

func (s Series) Labels() []string {
	out := make([]string, len(s))
	for i, e := range s {
		out[i] = e.Label
	}
	return out
}

// Scaled returns the values multiplied by progress.
func (s Series) Scaled(progress float64) []float64 {
	out := make([]float64, len(s))
	for i, e := range s {
		out[i] = e.Value * progress
	}
	return out
}

// Max returns the largest value, or 0 for an empty series.
func (s Series) Max() float64 {
	m := 0.0
	for i, e := range s {
		if i == 0 || e.Value > m {
			m = e.Value
		}
	}
	return m
}
