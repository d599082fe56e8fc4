package domain

import "math"

// Unreachable is the distance between vertices with no connecting path.
// It is small enough that adding two of them never overflows.
const Unreachable = math.MaxInt64 / 4

// Shortest-path costs between every pair of vertices in [1, n].
// Row and column 0 are unused so vertex ids index the matrix directly.
type DistanceMatrix struct {
	n    int
	data []int
}

// NewDistanceMatrix returns an n×n matrix with a zero diagonal and every other entry Unreachable.
func NewDistanceMatrix(n int) *DistanceMatrix {
	size := n + 1
	data := make([]int, size*size)
	for i := range data {
		data[i] = Unreachable
	}
	for i := 0; i < size; i++ {
		data[i*size+i] = 0
	}
	return &DistanceMatrix{n: n, data: data}
}

// Vertices returns n.
func (m *DistanceMatrix) Vertices() int { return m.n }

func (m *DistanceMatrix) At(i, j int) int { return m.data[i*(m.n+1)+j] }

func (m *DistanceMatrix) Set(i, j, v int) { m.data[i*(m.n+1)+j] = v }

// Row exposes the backing slice for row i. Callers must not modify it.
func (m *DistanceMatrix) Row(i int) []int {
	size := m.n + 1
	return m.data[i*size : (i+1)*size]
}

// Nearer returns the endpoint of e closest to p and that distance.
// Ties go to e.X.
func (m *DistanceMatrix) Nearer(p int, e Edge) (int, int) {
	dx, dy := m.At(p, e.X), m.At(p, e.Y)
	if dx > dy {
		return e.Y, dy
	}
	return e.X, dx
}

// Equal reports whether both matrices hold identical entries.
func (m *DistanceMatrix) Equal(o *DistanceMatrix) bool {
	if m.n != o.n {
		return false
	}
	for i := range m.data {
		if m.data[i] != o.data[i] {
			return false
		}
	}
	return true
}
