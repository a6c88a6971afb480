// Package mat provides the complex sparse matrices backing subspace
// restricted Hamiltonians, and a Krylov engine for their exponential action.
package mat

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Matrix is a complex sparse matrix filled element by element.
// Implementations are not safe for concurrent use.
type Matrix interface {
	Zeros(int, int)
	Rows() int
	Cols() int

	Set(int, int, complex64)
	At(int, int) complex64
	MulVec(dst, x []complex64)

	SetHermitian(bool)
	Hermitian() bool

	COO() *COO
}

type vRowCol struct {
	v   complex64
	row int
	col int
}

// COO is an in-memory sparse matrix in coordinate format.
type COO struct {
	rows int
	cols int
	herm bool
	Data []vRowCol

	sorted bool
	m      map[[2]int]complex64
}

// M builds a COO from a dense representation, dropping zero entries.
func M(dense [][]complex64) *COO {
	m := &COO{rows: len(dense), cols: len(dense[0]), Data: make([]vRowCol, 0), sorted: true, m: make(map[[2]int]complex64)}
	for i, row := range dense {
		for j, v := range row {
			if v == 0 {
				continue
			}
			m.Data = append(m.Data, vRowCol{v: v, row: i, col: j})
		}
	}
	return m
}

// COOZeros returns an empty rows x cols COO.
func COOZeros(rows, cols int) *COO {
	m := M([][]complex64{{0}})
	m.Zeros(rows, cols)
	return m
}

func (m *COO) Rows() int { return m.rows }
func (m *COO) Cols() int { return m.cols }

// Zeros resizes m and drops all entries, including stale Hermitian tagging.
func (m *COO) Zeros(rows, cols int) {
	m.rows, m.cols = rows, cols
	m.Data = m.Data[:0]
	m.herm = false
	m.sorted = true
}

// Set records the entry at (i, j). A position must be set at most once
// between Zeros calls.
func (m *COO) Set(i, j int, v complex64) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("%d %d %d %d", i, j, m.rows, m.cols))
	}
	m.Data = append(m.Data, vRowCol{v: v, row: i, col: j})
	m.sorted = false
}

// At returns the entry at (i, j).
func (m *COO) At(i, j int) complex64 {
	m.sort()
	k, ok := slices.BinarySearchFunc(m.Data, vRowCol{row: i, col: j}, rowMajor)
	if !ok {
		return 0
	}
	return m.Data[k].v
}

// MulVec computes dst = m*x. dst must not alias x.
func (m *COO) MulVec(dst, x []complex64) {
	if len(dst) != m.rows || len(x) != m.cols {
		panic(fmt.Sprintf("%d %d %d %d", len(dst), len(x), m.rows, m.cols))
	}
	for i := range dst {
		dst[i] = 0
	}
	for _, v := range m.Data {
		dst[v.row] += v.v * x[v.col]
	}
}

func (m *COO) SetHermitian(herm bool) { m.herm = herm }
func (m *COO) Hermitian() bool        { return m.herm }

func (m *COO) COO() *COO {
	m.sort()
	return m
}

func (a *COO) Equal(b *COO) bool {
	if a.rows != b.rows {
		return false
	}
	if a.cols != b.cols {
		return false
	}
	a.sort()
	b.sort()
	if len(a.Data) != len(b.Data) {
		return false
	}
	for i, av := range a.Data {
		bv := b.Data[i]
		if av != bv {
			return false
		}
	}
	return true
}

func (m *COO) Dense() [][]complex64 {
	dense := make([][]complex64, m.rows)
	for i := range dense {
		dense[i] = make([]complex64, m.cols)
	}

	for _, v := range m.Data {
		dense[v.row][v.col] = v.v
	}

	return dense
}

func (m *COO) String() string {
	if m.m == nil {
		m.m = make(map[[2]int]complex64)
	}
	clear(m.m)
	for _, v := range m.Data {
		m.m[[2]int{v.row, v.col}] = v.v
	}

	lines := []string{}
	for i := 0; i < m.rows; i++ {
		cs := []string{}
		for j := 0; j < m.cols; j++ {
			v := m.m[[2]int{i, j}]
			switch {
			case imag(v) == 0:
				cs = append(cs, format(real(v)))
			case real(v) == 0:
				cs = append(cs, format(imag(v))+"i")
			default:
				cs = append(cs, format(real(v))+"+"+format(imag(v))+"i")
			}
		}
		l := strings.Join(cs, "\t")
		lines = append(lines, l)
	}

	clear(m.m)
	return strings.Join(lines, "\n")
}

func (m *COO) sort() {
	if m.sorted {
		return
	}
	slices.SortFunc(m.Data, rowMajor)
	m.sorted = true
}

func rowMajor(a, b vRowCol) int {
	if c := cmp.Compare(a.row, b.row); c != 0 {
		return c
	}
	return cmp.Compare(a.col, b.col)
}

func format(v float32) string {
	// If v is 0 or -0, return "0" immediately to avoid returning "-0".
	if v == 0 {
		return " 0"
	}

	s := fmt.Sprintf("%v", v)

	// Add a space before non-negative numbers to align with other negative numbers in the same column.
	if v >= 0 {
		s = " " + s
	}

	return s
}
