package rydberg

import (
	"math"

	"gonum.org/v1/gonum/graph/simple"
)

// Chain returns the interaction graph of n sites on a line with
// nearest-neighbor blockade.
func Chain(n int) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(i))
	}
	for i := 1; i < n; i++ {
		g.SetEdge(g.NewEdge(simple.Node(i-1), simple.Node(i)))
	}
	return g
}

// Ring closes a chain of n sites into a cycle.
func Ring(n int) *simple.UndirectedGraph {
	g := Chain(n)
	if n > 2 {
		g.SetEdge(g.NewEdge(simple.Node(n-1), simple.Node(0)))
	}
	return g
}

// Grid returns a rows x cols square lattice with nearest-neighbor
// blockade. Site indices are row major.
func Grid(rows, cols int) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := 0; i < rows*cols; i++ {
		g.AddNode(simple.Node(i))
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			i := y*cols + x
			if y > 0 {
				g.SetEdge(g.NewEdge(simple.Node(i-cols), simple.Node(i)))
			}
			if x > 0 {
				g.SetEdge(g.NewEdge(simple.Node(i-1), simple.Node(i)))
			}
		}
	}
	return g
}

// UnitDisk connects every pair of atom positions within the blockade
// radius.
func UnitDisk(positions [][2]float64, radius float64) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := range positions {
		g.AddNode(simple.Node(i))
	}
	for i := range positions {
		for j := i + 1; j < len(positions); j++ {
			dy := positions[i][0] - positions[j][0]
			dx := positions[i][1] - positions[j][1]
			if math.Hypot(dy, dx) <= radius {
				g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(j)))
			}
		}
	}
	return g
}
