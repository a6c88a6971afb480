package mat

import (
	"fmt"
	"testing"
)

func TestSetAt(t *testing.T) {
	t.Parallel()
	m := COOZeros(3, 3)
	m.Set(2, 0, -1i)
	m.Set(0, 1, 2)
	m.Set(1, 1, complex(3, 4))

	expected := M([][]complex64{
		{0, 2, 0},
		{0, complex(3, 4), 0},
		{-1i, 0, 0},
	})
	if !m.Equal(expected) {
		t.Fatalf("%s, expected %s", m, expected)
	}
	if v := m.At(2, 0); v != -1i {
		t.Fatalf("%v", v)
	}
	if v := m.At(2, 2); v != 0 {
		t.Fatalf("%v", v)
	}

	m.Zeros(2, 2)
	if len(m.Data) != 0 || m.Rows() != 2 || m.Cols() != 2 {
		t.Fatalf("%#v", m)
	}
}

func TestHermitianTag(t *testing.T) {
	t.Parallel()
	m := COOZeros(2, 2)
	m.SetHermitian(true)
	if !m.Hermitian() {
		t.Fatalf("not hermitian")
	}
	// Zeros drops the tag along with the entries.
	m.Zeros(2, 2)
	if m.Hermitian() {
		t.Fatalf("hermitian")
	}
}

func TestMulVec(t *testing.T) {
	t.Parallel()
	tests := []struct {
		m *COO
		x []complex64
		y []complex64
	}{
		{
			m: M([][]complex64{
				{0, 1},
				{1, 0},
			}),
			x: []complex64{1, 0},
			y: []complex64{0, 1},
		},
		{
			m: M([][]complex64{
				{1, 1i, 0},
				{-1i, 0, 2},
				{0, 2, -1},
			}),
			x: []complex64{1, 2, -1i},
			y: []complex64{complex(1, 2), complex(0, -3), complex(4, 1)},
		},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%s", test.m), func(t *testing.T) {
			t.Parallel()
			dst := make([]complex64, len(test.y))
			test.m.MulVec(dst, test.x)
			for i, v := range dst {
				if v != test.y[i] {
					t.Fatalf("%d %v, expected %v", i, dst, test.y)
				}
			}
		})
	}
}
