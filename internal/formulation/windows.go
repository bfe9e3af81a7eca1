package formulation

import "iter"

// Windows yields every run of size consecutive elements of seq, sliding by
// one. Partial runs at the end are never produced. The returned sequence
// holds no state and can be ranged over repeatedly.
func Windows[T any](seq []T, size int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		if size <= 0 {
			return
		}
		for i := 0; i+size <= len(seq); i++ {
			if !yield(seq[i : i+size : i+size]) {
				return
			}
		}
	}
}

// WindowCount is the number of windows Windows yields for a sequence of
// length n.
func WindowCount(n, size int) int {
	if size <= 0 || size > n {
		return 0
	}
	return n - size + 1
}
