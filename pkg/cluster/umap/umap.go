// Package umap implements uniform manifold approximation and projection
// for laying out high-dimensional vectors in a low-dimensional plane.
//
// The implementation follows the standard construction: a k-nearest
// neighbor graph is converted into a fuzzy simplicial set, a low-
// dimensional layout is initialized (spectrally for larger inputs, random
// otherwise), and the layout is refined by stochastic gradient descent
// with negative sampling. All randomness flows from the configured seed,
// so a fixed input and seed always produce the same layout.
//
// The layout is for visualization: only relative proximity carries
// meaning, absolute coordinates do not.
package umap

import (
	"fmt"
	"math"
	"sort"
)

// Config holds the embedding hyperparameters.
type Config struct {
	// Neighbors is the local neighborhood size. Must be in [1, n-1] for
	// n input points. Default: min(15, n-1).
	Neighbors int

	// MinDist is the minimum spacing between points in the output layout.
	// Default: 0.1.
	MinDist float64

	// Components is the output dimensionality. Default: 2.
	Components int

	// Spread is the effective scale of the output layout. Default: 1.
	Spread float64

	// Epochs is the number of optimization passes. Default: 200.
	Epochs int

	// LearningRate is the initial SGD step size. Default: 1.
	LearningRate float64

	// NegativeSampleRate is the number of repulsive samples drawn per
	// attractive one. Default: 5.
	NegativeSampleRate int

	// Seed drives all randomness in initialization and optimization.
	Seed int64
}

func (c *Config) defaults(n int) {
	if c.Neighbors == 0 {
		c.Neighbors = min(15, n-1)
	}
	if c.MinDist == 0 {
		c.MinDist = 0.1
	}
	if c.Components == 0 {
		c.Components = 2
	}
	if c.Spread == 0 {
		c.Spread = 1
	}
	if c.Epochs == 0 {
		c.Epochs = 200
	}
	if c.LearningRate == 0 {
		c.LearningRate = 1
	}
	if c.NegativeSampleRate == 0 {
		c.NegativeSampleRate = 5
	}
}

// Embed projects the input points into cfg.Components dimensions, one
// output row per input row, in input order.
func Embed(points [][]float64, cfg Config) ([][]float64, error) {
	n := len(points)
	if n == 0 {
		return nil, nil
	}
	if n < 2 {
		return nil, fmt.Errorf("umap: need at least 2 points, got %d", n)
	}
	dim := len(points[0])
	for i, p := range points {
		if len(p) != dim {
			return nil, fmt.Errorf("umap: point %d has dimension %d, want %d", i, len(p), dim)
		}
	}
	cfg.defaults(n)
	if cfg.Neighbors < 1 || cfg.Neighbors >= n {
		return nil, fmt.Errorf("umap: Neighbors must be in [1, %d], got %d", n-1, cfg.Neighbors)
	}

	knn := nearestNeighbors(points, cfg.Neighbors)
	sigmas, rhos := smoothDistances(knn.dists, float64(cfg.Neighbors))
	graph := fuzzyGraph(knn, sigmas, rhos, n)

	a, b := fitCurve(cfg.Spread, cfg.MinDist)
	layout := initialLayout(graph, n, cfg.Components, cfg.Seed)
	optimizeLayout(layout, graph, a, b, cfg)

	return layout, nil
}

// knnGraph holds the k nearest neighbors of every point.
type knnGraph struct {
	indices [][]int
	dists   [][]float64
}

// nearestNeighbors computes exact k-NN by brute force. Batches here are
// hundreds to low thousands of points, where O(n^2) is fine.
func nearestNeighbors(points [][]float64, k int) knnGraph {
	n := len(points)
	g := knnGraph{
		indices: make([][]int, n),
		dists:   make([][]float64, n),
	}

	type neighbor struct {
		idx  int
		dist float64
	}
	candidates := make([]neighbor, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			candidates[j] = neighbor{idx: j, dist: euclidean(points[i], points[j])}
		}
		sort.Slice(candidates, func(a, b int) bool {
			if candidates[a].dist != candidates[b].dist {
				return candidates[a].dist < candidates[b].dist
			}
			return candidates[a].idx < candidates[b].idx
		})

		g.indices[i] = make([]int, 0, k)
		g.dists[i] = make([]float64, 0, k)
		for _, c := range candidates {
			if c.idx == i {
				continue
			}
			g.indices[i] = append(g.indices[i], c.idx)
			g.dists[i] = append(g.dists[i], c.dist)
			if len(g.indices[i]) == k {
				break
			}
		}
	}
	return g
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// smoothDistances finds, per point, the local connectivity distance rho
// (distance to the nearest neighbor) and the bandwidth sigma such that
// the fuzzy membership mass over the neighborhood equals log2(k).
func smoothDistances(dists [][]float64, k float64) (sigmas, rhos []float64) {
	const (
		iterations  = 64
		tolerance   = 1e-5
		minScale    = 1e-3
		bandwidthLo = 0.0
	)

	n := len(dists)
	sigmas = make([]float64, n)
	rhos = make([]float64, n)
	target := math.Log2(k)

	for i := 0; i < n; i++ {
		var nonZero []float64
		for _, d := range dists[i] {
			if d > 0 {
				nonZero = append(nonZero, d)
			}
		}
		if len(nonZero) > 0 {
			rhos[i] = nonZero[0]
		}

		lo, hi, mid := bandwidthLo, math.Inf(1), 1.0
		for iter := 0; iter < iterations; iter++ {
			var mass float64
			for _, d := range dists[i] {
				if excess := d - rhos[i]; excess > 0 {
					mass += math.Exp(-excess / mid)
				} else {
					mass++
				}
			}
			if math.Abs(mass-target) < tolerance {
				break
			}
			if mass > target {
				hi = mid
				mid = (lo + hi) / 2
			} else {
				lo = mid
				if math.IsInf(hi, 1) {
					mid *= 2
				} else {
					mid = (lo + hi) / 2
				}
			}
		}
		sigmas[i] = mid

		if floor := minScale * mean(dists[i]); sigmas[i] < floor {
			sigmas[i] = floor
		}
	}
	return sigmas, rhos
}

// sparseGraph is a sparse edge list (COO layout) over the input points.
type sparseGraph struct {
	rows, cols []int
	weights    []float64
}

// fuzzyGraph converts the k-NN graph into a symmetric fuzzy simplicial
// set via the probabilistic union w + w' - w*w'.
func fuzzyGraph(knn knnGraph, sigmas, rhos []float64, n int) sparseGraph {
	type key struct{ r, c int }
	directed := make(map[key]float64, n*len(knn.indices[0]))
	for i := range knn.indices {
		for j, nb := range knn.indices[i] {
			d := knn.dists[i][j]
			w := 1.0
			if excess := d - rhos[i]; excess > 0 && sigmas[i] > 0 {
				w = math.Exp(-excess / sigmas[i])
			}
			directed[key{i, nb}] = w
		}
	}

	union := make(map[key]float64, len(directed))
	for e, w := range directed {
		wt := directed[key{e.c, e.r}]
		if u := w + wt - w*wt; u > 0 {
			union[e] = u
			union[key{e.c, e.r}] = u
		}
	}

	keys := make([]key, 0, len(union))
	for e := range union {
		keys = append(keys, e)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].r != keys[j].r {
			return keys[i].r < keys[j].r
		}
		return keys[i].c < keys[j].c
	})

	g := sparseGraph{
		rows:    make([]int, len(keys)),
		cols:    make([]int, len(keys)),
		weights: make([]float64, len(keys)),
	}
	for i, e := range keys {
		g.rows[i] = e.r
		g.cols[i] = e.c
		g.weights[i] = union[e]
	}
	return g
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
