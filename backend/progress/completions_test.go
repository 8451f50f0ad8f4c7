package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcileDefaultsToFalse(t *testing.T) {
	for n := 0; n <= 5; n++ {
		got := Reconcile(nil, n)
		assert.Len(t, got, n)
		for i, done := range got {
			assert.False(t, done, "n=%d index=%d", n, i)
		}
	}
}

func TestReconcileLength(t *testing.T) {
	tests := []struct {
		name   string
		stored []bool
		n      int
		want   []bool
	}{
		{"tasks added after history", []bool{true, false}, 4, []bool{true, false, false, false}},
		{"tasks removed", []bool{true, false, true}, 2, []bool{true, false}},
		{"same length", []bool{false, true}, 2, []bool{false, true}},
		{"empty stored", []bool{}, 3, []bool{false, false, false}},
		{"no tasks", []bool{true}, 0, []bool{}},
		{"negative count", []bool{true}, -1, []bool{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reconcile(tt.stored, tt.n))
		})
	}
}

func TestReconcileDoesNotAlias(t *testing.T) {
	stored := []bool{true, true}
	got := Reconcile(stored, 2)
	got[0] = false
	assert.True(t, stored[0])
}

func TestComputeRatio(t *testing.T) {
	tests := []struct {
		name string
		in   []bool
		want Ratio
	}{
		{"half", []bool{true, false, true, false}, Ratio{Done: 2, Total: 4, Percent: 50}},
		{"no tasks", nil, Ratio{}},
		{"one third rounds down", []bool{true, false, false}, Ratio{Done: 1, Total: 3, Percent: 33}},
		{"two thirds rounds up", []bool{true, true, false}, Ratio{Done: 2, Total: 3, Percent: 67}},
		{"half point rounds up", append([]bool{true}, make([]bool, 7)...), Ratio{Done: 1, Total: 8, Percent: 13}},
		{"all done", []bool{true, true}, Ratio{Done: 2, Total: 2, Percent: 100}},
		{"none done", []bool{false, false}, Ratio{Done: 0, Total: 2, Percent: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeRatio(tt.in))
		})
	}
}
