package radar

// DefaultStep is the progress added per frame.
const DefaultStep = 0.02

// Animation is a 0 to 1 ramp owned by the caller. Charts never read it;
// callers scale their series with Progress before rendering.
type Animation struct {
	Step     float64
	progress float64
}

// NewAnimation returns a ramp starting at 0.
func NewAnimation() *Animation { return &Animation{Step: DefaultStep} }

// Advance moves one frame forward and reports whether the ramp is still running.
func (a *Animation) Advance() bool {
	if a.progress >= 1 {
		return false
	}
	step := a.Step
	if step <= 0 {
		step = DefaultStep
	}
	a.progress += step
	if a.progress > 1 {
		a.progress = 1
	}
	return true
}

func (a *Animation) Reset()            { a.progress = 0 }
func (a *Animation) Finish()           { a.progress = 1 }
func (a *Animation) Done() bool        { return a.progress >= 1 }
func (a *Animation) Progress() float64 { return a.progress }
