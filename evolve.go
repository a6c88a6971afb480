package rydberg

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph"

	"rydberg/mat"
)

// maxKrylovDim caps the Krylov basis size of one evolution step.
const maxKrylovDim = 30

// Timestep applies exp(-i*t*H) to state, where H is the full Hamiltonian
// of h restricted to the blockade subspace of g. state is updated in
// place and returned. This path builds its subspace, matrix and Krylov
// workspace from scratch and is meant for isolated single steps; use
// EvaluateQAOA for sequences.
func Timestep(state []complex64, h Hamiltonian, g graph.Undirected, t float64) ([]complex64, error) {
	s := BlockadeSubspace(g)
	if len(state) != len(s) {
		return nil, errors.Errorf("%d %d", len(state), len(s))
	}

	m := mat.COOZeros(len(s), len(s))
	ToMatrix(m, h, g.Nodes().Len(), s)
	kr := mat.NewKrylov(len(s), min(maxKrylovDim, len(s)))
	if err := kr.Expmv(state, m, complex(0, -t)); err != nil {
		return nil, errors.Wrap(err, "")
	}
	return state, nil
}

// EvaluateQAOA chains exp(-i*ts[j]*H_j) over the sequence of Hamiltonians
// in order, updating state in place. One matrix buffer and one Krylov
// workspace are allocated up front and reused for the whole run; the
// buffer is refilled with the drive term of each step and dropped to
// empty before the next, and the Krylov content is rebuilt per step.
// Only the drive term is applied on this path, matching the pure-drive
// variational ansatz; detuning sequences chain Timestep instead.
//
// On error the returned slice is nil, but the caller's state has already
// absorbed the steps before the failing one and must be reinitialized
// before another run.
func EvaluateQAOA(state []complex64, hs []Hamiltonian, n int, s Subspace, ts []float64) ([]complex64, error) {
	if len(hs) != len(ts) {
		return nil, errors.Errorf("%d %d", len(hs), len(ts))
	}
	if len(state) != len(s) {
		return nil, errors.Errorf("%d %d", len(state), len(s))
	}

	dim := len(s)
	buf := mat.COOZeros(dim, dim)
	kr := mat.NewKrylov(dim, min(maxKrylovDim, dim))
	for j, h := range hs {
		drive(buf, n, s, h.Omega(), h.Phi())
		buf.SetHermitian(true)
		if err := kr.Expmv(state, buf, complex(0, -ts[j])); err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("%d", j))
		}

		// Drop stale entries before the next fill.
		buf.Zeros(dim, dim)
	}
	return state, nil
}
