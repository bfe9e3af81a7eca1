package formulation

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect[T any](seq []T, size int) [][]T {
	var out [][]T
	for w := range Windows(seq, size) {
		out = append(out, w)
	}
	return out
}

func TestWindows_SlidesByOne(t *testing.T) {
	got := collect([]int{1, 2, 3, 4, 5}, 3)
	assert.Equal(t, [][]int{{1, 2, 3}, {2, 3, 4}, {3, 4, 5}}, got)
	assert.Equal(t, 3, WindowCount(5, 3))
}

func TestWindows_EdgeSizes(t *testing.T) {
	assert.Empty(t, collect([]int{1, 2}, 3))
	assert.Empty(t, collect([]int{1, 2}, 0))
	assert.Equal(t, [][]int{{1, 2}}, collect([]int{1, 2}, 2))
	assert.Equal(t, 0, WindowCount(2, 3))
	assert.Equal(t, 0, WindowCount(2, 0))
	assert.Equal(t, 1, WindowCount(4, 4))
}

func TestWindows_Restartable(t *testing.T) {
	seq := Windows([]string{"a", "b", "c"}, 2)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
}

func TestWindows_StopsEarly(t *testing.T) {
	n := 0
	for range Windows([]int{1, 2, 3, 4, 5, 6}, 2) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestWindows_CapacityIsCapped(t *testing.T) {
	seq := []int{1, 2, 3, 4}
	for w := range Windows(seq, 2) {
		w = append(w, 99)
		_ = w
	}
	assert.Equal(t, []int{1, 2, 3, 4}, seq, "appending to a window must not clobber the source")
}
