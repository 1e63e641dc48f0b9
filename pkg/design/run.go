package design

// Run is one row of the experiment plan. ID is the 1-based position within
// the generated sequence; Assignments maps factor name to level label.
type Run struct {
	ID          int               `json:"id" yaml:"id"`
	Assignments map[string]string `json:"assignments" yaml:"assignments"`

	order []string
}

// NewRun builds a Run from parallel name/level slices. Inputs are copied.
func NewRun(id int, names, levels []string) Run {
	run := Run{
		ID:          id,
		Assignments: make(map[string]string, len(names)),
		order:       append([]string(nil), names...),
	}
	for i, name := range names {
		if i < len(levels) {
			run.Assignments[name] = levels[i]
		}
	}
	return run
}

// Value returns the level assigned to the named factor.
func (r Run) Value(factor string) (string, bool) {
	v, ok := r.Assignments[factor]
	return v, ok
}

// Factors returns factor names in declaration order.
func (r Run) Factors() []string {
	return append([]string(nil), r.order...)
}

// FactorCount reports how many factors the run assigns.
func (r Run) FactorCount() int {
	return len(r.order)
}

// FactorAt returns the i-th factor name, or false when out of range.
func (r Run) FactorAt(i int) (string, bool) {
	if i < 0 || i >= len(r.order) {
		return "", false
	}
	return r.order[i], true
}

// Levels returns the assigned levels in factor declaration order.
func (r Run) Levels() []string {
	out := make([]string, len(r.order))
	for i, name := range r.order {
		out[i] = r.Assignments[name]
	}
	return out
}
