// Package rydberg computes Rydberg-atom array Hamiltonians restricted to
// the blockade subspace, and evolves quantum states under sequences of
// such Hamiltonians.
//
// References:
//   - Quantum optimization for maximum independent set using Rydberg atom arrays, Pichler et al.
package rydberg

import (
	"fmt"
	"math/bits"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Config is an n-site occupation pattern. Bit k set means site k is in
// the Rydberg state. Configurations are ordered by their numeric value.
type Config uint64

// Occupied reports whether site k is occupied.
func (c Config) Occupied(k int) bool { return c&(1<<k) != 0 }

// Flip toggles the occupation of site k.
func (c Config) Flip(k int) Config { return c ^ (1 << k) }

// Size is the number of occupied sites.
func (c Config) Size() int { return bits.OnesCount64(uint64(c)) }

// Subspace is the ascending, duplicate-free list of configurations
// satisfying the blockade constraint. The position of a configuration is
// its Hamiltonian row and column index, so a Subspace must not be
// modified while matrices built against it are in use.
type Subspace []Config

// NewSubspace enumerates every configuration whose occupied sites lie
// within one of the given independent sets. The sets must be maximal, or
// valid configurations are missed.
func NewSubspace(n int, sets [][]int) Subspace {
	s := Subspace{0}
	for _, set := range sets {
		for _, site := range set {
			if site < 0 || site >= n {
				panic(fmt.Sprintf("%d %d", site, n))
			}
		}
		for b := 1; b < 1<<len(set); b++ {
			var c Config
			for i, site := range set {
				if b&(1<<i) != 0 {
					c |= 1 << site
				}
			}
			s = append(s, c)
		}
	}
	slices.Sort(s)
	return slices.Compact(s)
}

// MaximalIndependentSets returns the maximal independent sets of g, found
// as the maximal cliques of its complement graph. Node IDs must be the
// site indices 0..n-1.
func MaximalIndependentSets(g graph.Undirected) [][]int {
	n := g.Nodes().Len()
	complement := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		complement.AddNode(simple.Node(i))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !g.HasEdgeBetween(int64(i), int64(j)) {
				complement.SetEdge(complement.NewEdge(simple.Node(i), simple.Node(j)))
			}
		}
	}

	cliques := topo.BronKerbosch(complement)
	sets := make([][]int, 0, len(cliques))
	for _, clique := range cliques {
		set := make([]int, 0, len(clique))
		for _, node := range clique {
			set = append(set, int(node.ID()))
		}
		slices.Sort(set)
		sets = append(sets, set)
	}
	return sets
}

// BlockadeSubspace computes the blockade subspace of an interaction
// graph. Node IDs must be the site indices 0..n-1.
func BlockadeSubspace(g graph.Undirected) Subspace {
	return NewSubspace(g.Nodes().Len(), MaximalIndependentSets(g))
}

// Index locates c in the subspace.
func (s Subspace) Index(c Config) (int, bool) {
	return slices.BinarySearch(s, c)
}
