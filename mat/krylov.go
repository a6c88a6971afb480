package mat

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"
	gmat "gonum.org/v1/gonum/mat"
)

const (
	// convergenceTol bounds the relative residual estimate of the
	// exponential action.
	convergenceTol = 1e-5
	// breakdownTol is the relative basis norm below which the Krylov
	// subspace is considered invariant and the action exact.
	breakdownTol = 1e-6
)

// Krylov approximates the action of a matrix exponential on a vector by a
// Lanczos basis of fixed maximum size. Allocations are sized once and
// reused across Expmv calls; the numerical content is rebuilt per call,
// so the same workspace serves a sequence of different matrices of equal
// dimension. Not safe for concurrent use.
type Krylov struct {
	dim int
	k   int

	basis [][]complex64
	w     []complex64
	alpha []float64
	beta  []float64
	td    []float64
	vals  []float64
	y     []complex128
}

// NewKrylov returns a workspace for dim-dimensional operators with a
// Krylov basis of at most k vectors.
func NewKrylov(dim, k int) *Krylov {
	if k > dim {
		k = dim
	}
	if k < 1 {
		k = 1
	}
	kr := &Krylov{dim: dim, k: k}
	kr.basis = make([][]complex64, k)
	for i := range kr.basis {
		kr.basis[i] = make([]complex64, dim)
	}
	kr.w = make([]complex64, dim)
	kr.alpha = make([]float64, k)
	kr.beta = make([]float64, k)
	kr.td = make([]float64, k*k)
	kr.vals = make([]float64, k)
	kr.y = make([]complex128, k)
	return kr
}

// Expmv overwrites state with exp(tau*m) applied to state.
// m must be tagged Hermitian. When the basis neither captures an
// invariant subspace nor drives the residual estimate below tolerance,
// an error is returned and state is left untouched; callers retry with a
// larger basis.
func (kr *Krylov) Expmv(state []complex64, m Matrix, tau complex128) error {
	if len(state) != kr.dim || m.Rows() != kr.dim || m.Cols() != kr.dim {
		return errors.Errorf("%d %d %d %d", len(state), m.Rows(), m.Cols(), kr.dim)
	}
	if !m.Hermitian() {
		return errors.Errorf("not hermitian")
	}

	norm0 := norm(state)
	if norm0 == 0 {
		return nil
	}
	scale(kr.basis[0], state, 1/norm0)

	// Lanczos recursion with a full reorthogonalization pass, since
	// complex64 entries lose orthogonality quickly.
	kEff := kr.k
	breakdown := false
	var hScale float64 = 1
	for j := 0; j < kr.k; j++ {
		m.MulVec(kr.w, kr.basis[j])
		if j > 0 {
			axpy(kr.w, kr.basis[j-1], complex(-kr.beta[j-1], 0))
		}
		kr.alpha[j] = real(dot(kr.basis[j], kr.w))
		axpy(kr.w, kr.basis[j], complex(-kr.alpha[j], 0))
		for i := 0; i <= j; i++ {
			c := dot(kr.basis[i], kr.w)
			axpy(kr.w, kr.basis[i], -c)
		}
		kr.beta[j] = norm(kr.w)

		hScale = max(hScale, math.Abs(kr.alpha[j])+kr.beta[j])
		kEff = j + 1
		if kr.beta[j] <= breakdownTol*hScale {
			breakdown = true
			break
		}
		if j+1 < kr.k {
			scale(kr.basis[j+1], kr.w, 1/kr.beta[j])
		}
	}

	// Diagonalize the real symmetric tridiagonal projection.
	td := kr.td[:kEff*kEff]
	for i := range td {
		td[i] = 0
	}
	for j := 0; j < kEff; j++ {
		td[j*kEff+j] = kr.alpha[j]
		if j+1 < kEff {
			td[j*kEff+j+1] = kr.beta[j]
			td[(j+1)*kEff+j] = kr.beta[j]
		}
	}
	var es gmat.EigenSym
	if !es.Factorize(gmat.NewSymDense(kEff, td), true) {
		return errors.Errorf("factorize %d", kEff)
	}
	es.Values(kr.vals[:kEff])
	var q gmat.Dense
	es.VectorsTo(&q)

	// y = Q exp(tau*diag) Q^T e1.
	y := kr.y[:kEff]
	for i := range y {
		y[i] = 0
	}
	for l := 0; l < kEff; l++ {
		f := cmplx.Exp(tau*complex(kr.vals[l], 0)) * complex(q.At(0, l), 0)
		for i := 0; i < kEff; i++ {
			y[i] += complex(q.At(i, l), 0) * f
		}
	}

	if !breakdown {
		if est := kr.beta[kEff-1] * cmplx.Abs(y[kEff-1]); est > convergenceTol {
			return errors.Errorf("%g", est)
		}
	}

	for i := range state {
		state[i] = 0
	}
	for i := 0; i < kEff; i++ {
		c := complex64(complex(norm0, 0) * y[i])
		vi := kr.basis[i]
		for idx := range state {
			state[idx] += c * vi[idx]
		}
	}
	return nil
}

// dot is the conjugated inner product, accumulated in double precision.
func dot(a, b []complex64) complex128 {
	var s complex128
	for i, av := range a {
		s += cmplx.Conj(complex128(av)) * complex128(b[i])
	}
	return s
}

func norm(x []complex64) float64 {
	var s float64
	for _, v := range x {
		s += float64(real(v))*float64(real(v)) + float64(imag(v))*float64(imag(v))
	}
	return math.Sqrt(s)
}

func scale(dst, src []complex64, s float64) {
	c := complex(float32(s), 0)
	for i, v := range src {
		dst[i] = v * c
	}
}

func axpy(y, x []complex64, c complex128) {
	c64 := complex64(c)
	for i, v := range x {
		y[i] += c64 * v
	}
}
