package progress

// Reconcile returns exactly n completion flags: the overlapping prefix of
// stored, then false for every position stored does not cover. A nil stored
// slice yields n false values.
func Reconcile(stored []bool, n int) []bool {
	if n < 0 {
		n = 0
	}
	out := make([]bool, n)
	copy(out, stored)
	return out
}

// Ratio is the same-day completion of a project.
type Ratio struct {
	Done    int `json:"done"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// ComputeRatio counts completed entries and rounds the percentage half up.
// An empty slice gives the zero Ratio.
func ComputeRatio(completions []bool) Ratio {
	r := Ratio{Total: len(completions)}
	for _, done := range completions {
		if done {
			r.Done++
		}
	}
	if r.Total > 0 {
		r.Percent = (r.Done*200 + r.Total) / (r.Total * 2)
	}
	return r
}
