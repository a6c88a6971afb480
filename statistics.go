package rydberg

import (
	"math"

	"github.com/pkg/errors"
)

// Statistics are occupation observables of a state over a subspace.
type Statistics struct {
	// Density is the occupation probability per site.
	Density []float64
	// MeanSize is the expected number of occupied sites, the mean
	// independent-set size of the measured configurations.
	MeanSize float64
	// Best is the most probable configuration.
	Best     Config
	BestProb float64
}

// GetStatistics computes the occupation observables of a normalized
// state of dimension len(s).
func GetStatistics(n int, s Subspace, state []complex64) (Statistics, error) {
	if len(state) != len(s) {
		return Statistics{}, errors.Errorf("%d %d", len(state), len(s))
	}

	stats := Statistics{Density: make([]float64, n)}
	var totalProb float64
	for i, c := range s {
		amplitude := state[i]
		probability := float64(real(amplitude))*float64(real(amplitude)) + float64(imag(amplitude))*float64(imag(amplitude))
		totalProb += probability

		for k := 0; k < n; k++ {
			if c.Occupied(k) {
				stats.Density[k] += probability
			}
		}
		stats.MeanSize += probability * float64(c.Size())
		if probability > stats.BestProb {
			stats.Best, stats.BestProb = c, probability
		}
	}
	if math.Abs(totalProb-1) > 1e-3 {
		return Statistics{}, errors.Errorf("%f", totalProb)
	}
	return stats, nil
}
