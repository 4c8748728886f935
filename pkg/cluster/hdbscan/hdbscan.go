// Package hdbscan implements hierarchical density-based clustering
// (HDBSCAN*) over dense float64 vectors with euclidean distance.
//
// The algorithm builds a mutual-reachability graph from per-point core
// distances, extracts its minimum spanning tree, condenses the resulting
// single-linkage hierarchy, and selects flat clusters by excess of mass.
// Points outside every selected cluster are labeled -1 (noise).
//
// Cluster sizes, density strictness, and selection behavior are controlled
// by [Options]; callers that cluster batches of wildly varying size are
// expected to tune these per batch.
package hdbscan

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Noise is the reserved label for points that belong to no cluster.
const Noise = -1

// Options controls clustering behavior.
type Options struct {
	// MinClusterSize is the smallest point count that still counts as a
	// cluster. Must be at least 2. Default: 5.
	MinClusterSize int

	// MinSamples is the neighbor count used for core distances; larger
	// values make the density estimate more conservative.
	// Default: MinClusterSize.
	MinSamples int

	// SelectionEpsilon, when positive, merges selected clusters that were
	// born below this distance into their enclosing ancestor.
	SelectionEpsilon float64

	// Alpha divides raw distances before the mutual-reachability step.
	// Must be positive. Default: 1.
	Alpha float64
}

func (o *Options) defaults() {
	if o.MinClusterSize == 0 {
		o.MinClusterSize = 5
	}
	if o.MinSamples == 0 {
		o.MinSamples = o.MinClusterSize
	}
	if o.Alpha == 0 {
		o.Alpha = 1
	}
}

// Cluster labels every point with a cluster id, or [Noise]. Labels are
// dense integers starting at 0, assigned in order of each cluster's first
// member, so repeated runs over the same input yield identical labels.
func Cluster(points [][]float64, opts Options) ([]int, error) {
	opts.defaults()
	if opts.MinClusterSize < 2 {
		return nil, fmt.Errorf("hdbscan: MinClusterSize must be >= 2, got %d", opts.MinClusterSize)
	}
	if opts.MinSamples < 1 {
		return nil, fmt.Errorf("hdbscan: MinSamples must be >= 1, got %d", opts.MinSamples)
	}
	if opts.Alpha < 0 {
		return nil, errors.New("hdbscan: Alpha must be positive")
	}

	n := len(points)
	switch n {
	case 0:
		return nil, nil
	case 1:
		// A lone point cannot reach any cluster size.
		return []int{Noise}, nil
	}

	dist, err := distanceMatrix(points)
	if err != nil {
		return nil, err
	}
	core := coreDistances(dist, n, opts.MinSamples)
	mreach := mutualReachability(dist, core, n, opts.Alpha)

	edges := spanningTree(mreach, n)
	hierarchy := singleLinkage(edges, n)
	tree := condense(hierarchy, n, opts.MinClusterSize)

	selected := tree.selectClusters(opts.SelectionEpsilon)
	if len(selected) == 0 && n >= opts.MinClusterSize {
		// Degenerate hierarchy: every split peeled single points off, so
		// no subtree ever reached MinClusterSize on both sides. The batch
		// as a whole is still one dense group; labeling it all noise
		// would over-reject exactly the small batches that need lenient
		// treatment.
		labels := make([]int, n)
		return labels, nil
	}
	return tree.labels(selected), nil
}

// distanceMatrix computes the flat n*n euclidean distance matrix.
func distanceMatrix(points [][]float64) ([]float64, error) {
	n := len(points)
	dim := len(points[0])
	for i, p := range points {
		if len(p) != dim {
			return nil, fmt.Errorf("hdbscan: point %d has dimension %d, want %d", i, len(p), dim)
		}
	}

	dist := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var sum float64
			for d := 0; d < dim; d++ {
				diff := points[i][d] - points[j][d]
				sum += diff * diff
			}
			d := math.Sqrt(sum)
			dist[i*n+j] = d
			dist[j*n+i] = d
		}
	}
	return dist, nil
}

// coreDistances returns, for each point, the distance to its minSamples-th
// nearest neighbor. minSamples is clamped to [0, n-1]; zero yields all
// zeros.
func coreDistances(dist []float64, n, minSamples int) []float64 {
	minSamples = min(minSamples, n-1)
	minSamples = max(minSamples, 0)

	core := make([]float64, n)
	if minSamples == 0 {
		return core
	}

	neighbors := make([]float64, 0, n-1)
	for i := 0; i < n; i++ {
		neighbors = neighbors[:0]
		for j := 0; j < n; j++ {
			if j != i {
				neighbors = append(neighbors, dist[i*n+j])
			}
		}
		sort.Float64s(neighbors)
		core[i] = neighbors[minSamples-1]
	}
	return core
}

// mutualReachability builds the flat mutual-reachability matrix:
// mr(i,j) = max(d(i,j)/alpha, core(i), core(j)).
func mutualReachability(dist, core []float64, n int, alpha float64) []float64 {
	mr := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := dist[i*n+j] / alpha
			if core[i] > d {
				d = core[i]
			}
			if core[j] > d {
				d = core[j]
			}
			mr[i*n+j] = d
			mr[j*n+i] = d
		}
	}
	return mr
}

// mstEdge is one edge of the minimum spanning tree.
type mstEdge struct {
	a, b int
	w    float64
}

// spanningTree extracts the MST of the complete mutual-reachability graph
// with Prim's algorithm, returning its n-1 edges sorted by ascending
// weight (ties broken by endpoints, for determinism).
func spanningTree(mr []float64, n int) []mstEdge {
	inTree := make([]bool, n)
	best := make([]float64, n)
	from := make([]int, n)
	for i := range best {
		best[i] = math.Inf(1)
	}

	edges := make([]mstEdge, 0, n-1)
	cur := 0
	inTree[0] = true
	for len(edges) < n-1 {
		next := -1
		for v := 0; v < n; v++ {
			if inTree[v] {
				continue
			}
			if w := mr[cur*n+v]; w < best[v] {
				best[v] = w
				from[v] = cur
			}
			if next == -1 || best[v] < best[next] {
				next = v
			}
		}
		inTree[next] = true
		edges = append(edges, mstEdge{a: from[next], b: next, w: best[next]})
		cur = next
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].w != edges[j].w {
			return edges[i].w < edges[j].w
		}
		if edges[i].a != edges[j].a {
			return edges[i].a < edges[j].a
		}
		return edges[i].b < edges[j].b
	})
	return edges
}
