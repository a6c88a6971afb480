package rydberg

import (
	"math/cmplx"

	"rydberg/mat"
)

// Param is a real site parameter that is either one uniform scalar or one
// value per site.
type Param struct {
	scalar float64
	sites  []float64
}

// Uniform returns a parameter applying v to every site.
func Uniform(v float64) Param { return Param{scalar: v} }

// PerSite returns a parameter with one value per site.
func PerSite(vs ...float64) Param { return Param{sites: vs} }

// At returns the value at site k.
func (p Param) At(k int) float64 {
	if p.sites == nil {
		return p.scalar
	}
	return p.sites[k]
}

// Hamiltonian exposes the effective drive amplitude, drive phase and
// detuning of a parameterization, independent of its representation.
type Hamiltonian interface {
	Omega() Param
	Phi() Param
	Delta() Param
}

// DriveHamiltonian is the reduced pure-drive model: unit amplitude, no
// detuning, a single global phase.
type DriveHamiltonian struct {
	Phase float64
}

func (h DriveHamiltonian) Omega() Param { return Uniform(1) }
func (h DriveHamiltonian) Phi() Param   { return Uniform(h.Phase) }
func (h DriveHamiltonian) Delta() Param { return Uniform(0) }

// RydbergHamiltonian is the general model with independently scalar or
// per-site drive amplitude, drive phase and detuning.
type RydbergHamiltonian struct {
	// C is reserved for energy-scale normalization.
	C        float64
	Rabi     Param
	Phase    Param
	Detuning Param
}

func (h RydbergHamiltonian) Omega() Param { return h.Rabi }
func (h RydbergHamiltonian) Phi() Param   { return h.Phase }
func (h RydbergHamiltonian) Delta() Param { return h.Detuning }

// ToMatrix fills m with the Hamiltonian of h restricted to the subspace.
// The result is tagged Hermitian: the off-diagonal fill visits every
// coupled pair from both rows with conjugated phases, so no
// symmetrization pass is needed.
func ToMatrix(m mat.Matrix, h Hamiltonian, n int, s Subspace) {
	m.Zeros(len(s), len(s))
	detuning(m, n, s, h.Delta())
	drive(m, n, s, h.Omega(), h.Phi())
	m.SetHermitian(true)
}

// detuning accumulates the diagonal sigma-z term: +delta for every
// unoccupied site, -delta for every occupied one.
func detuning(m mat.Matrix, n int, s Subspace, delta Param) {
	for i, lhs := range s {
		var d float64
		for k := 0; k < n; k++ {
			switch {
			case lhs.Occupied(k):
				d -= delta.At(k)
			default:
				d += delta.At(k)
			}
		}
		if d != 0 {
			m.Set(i, i, complex(float32(d), 0))
		}
	}
}

// drive writes the off-diagonal coupling omega*exp(+-i*phi) between every
// pair of configurations differing by one bit flip that stays inside the
// subspace. Flips leaving the subspace are blockade forbidden and write
// nothing.
func drive(m mat.Matrix, n int, s Subspace, omega, phi Param) {
	for i, lhs := range s {
		for k := 0; k < n; k++ {
			w := omega.At(k)
			if w == 0 {
				continue
			}
			j, ok := s.Index(lhs.Flip(k))
			if !ok {
				continue
			}

			p := phi.At(k)
			if lhs.Occupied(k) {
				p = -p
			}
			m.Set(i, j, complex64(cmplx.Rect(w, p)))
		}
	}
}
