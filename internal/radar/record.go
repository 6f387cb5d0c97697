package radar

// OpKind identifies a recorded primitive.
type OpKind int

const (
	OpCircle OpKind = iota
	OpPolygon
	OpLine
	OpText
)

// Op is one recorded primitive call.
type Op struct {
	Kind      OpKind
	Points    []Point
	Radius    float64
	Text      string
	Style     Style
	TextStyle TextStyle
}

// Recorder is a Surface that keeps every call. Text is measured as
// CharWidth per rune by the text size in points.
type Recorder struct {
	Ops       []Op
	CharWidth float64
}

func (r *Recorder) Circle(center Point, radius float64, st Style) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, Points: []Point{center}, Radius: radius, Style: st})
}

func (r *Recorder) Polygon(pts []Point, st Style) {
	cp := append([]Point(nil), pts...)
	r.Ops = append(r.Ops, Op{Kind: OpPolygon, Points: cp, Style: st})
}

func (r *Recorder) Line(a, b Point, st Style) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Points: []Point{a, b}, Style: st})
}

func (r *Recorder) Text(s string, at Point, ts TextStyle) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Points: []Point{at}, Text: s, TextStyle: ts})
}

func (r *Recorder) MeasureText(s string, size float64) (float64, float64) {
	cw := r.CharWidth
	if cw == 0 {
		cw = 0.6
	}
	return float64(len([]rune(s))) * cw * size, size
}

// Filter returns the recorded ops of one kind.
func (r *Recorder) Filter(k OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}

// Reset drops all recorded ops.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }
