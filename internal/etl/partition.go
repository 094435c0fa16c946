package etl

// Split cuts rows into n contiguous chunks whose sizes differ by at most one.
// When len(rows) is not a multiple of n the trailing chunks get the extra
// row. Exactly n chunks are returned; some may be empty when len(rows) < n.
// The chunks share rows' backing array and must not be appended to.
func Split[T any](rows []T, n int) [][]T {
	if n < 1 {
		n = 1
	}
	base, rem := len(rows)/n, len(rows)%n
	chunks := make([][]T, n)
	start := 0
	for i := range n {
		size := base
		if i >= n-rem {
			size++
		}
		chunks[i] = rows[start : start+size : start+size]
		start += size
	}
	return chunks
}
