package rydberg

import (
	"math"
	"math/cmplx"

	"github.com/fumin/tensor"
	"github.com/pkg/errors"

	"rydberg/mat"
)

// GroundState returns the lowest eigenvalue and eigenvector of the
// Hamiltonian of h restricted to the subspace. The eigenvector is
// normalized with its first nonzero entry made real.
func GroundState(h Hamiltonian, n int, s Subspace) (float64, []complex64, error) {
	dim := len(s)
	m := mat.COOZeros(dim, dim)
	ToMatrix(m, h, n, s)

	a := tensor.Zeros(dim, dim)
	for i, row := range m.COO().Dense() {
		for j, v := range row {
			if v != 0 {
				a.SetAt([]int{i, j}, v)
			}
		}
	}

	eigvals, eigvecs := tensor.Zeros(1), tensor.Zeros(1)
	var bufs [7]*tensor.Dense
	for i := range bufs {
		bufs[i] = tensor.Zeros(1)
	}
	if err := tensor.Arnoldi(eigvals, eigvecs, a, 1, bufs); err != nil {
		return 0, nil, errors.Wrap(err, "")
	}

	vec := make([]complex64, dim)
	ground := eigvecs.Reshape(dim)
	for i := range vec {
		vec[i] = ground.At(i)
	}
	// Make the first nonzero entry real.
	var c complex64 = complex(1, 0)
	for _, v := range vec {
		if abs(v) > 1e-6 {
			c = v
			break
		}
	}
	for i := range vec {
		vec[i] /= c
	}
	// Normalize.
	var norm float64
	for _, v := range vec {
		norm += float64(real(v))*float64(real(v)) + float64(imag(v))*float64(imag(v))
	}
	nc := complex(float32(math.Sqrt(norm)), 0)
	for i := range vec {
		vec[i] /= nc
	}

	return float64(real(eigvals.At(0))), vec, nil
}

func abs(c complex64) float32 {
	return float32(cmplx.Abs(complex128(c)))
}
