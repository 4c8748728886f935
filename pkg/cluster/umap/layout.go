package umap

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// spectralMinSamples is the input size below which spectral initialization
// is skipped; random placement converges just as well on small inputs and
// avoids an eigendecomposition.
const spectralMinSamples = 50

// fitCurve fits the output membership curve 1/(1 + a*d^(2b)) to the
// target falloff implied by spread and minDist, by coarse grid search.
func fitCurve(spread, minDist float64) (a, b float64) {
	const samples = 300
	xs := make([]float64, samples)
	ys := make([]float64, samples)
	for i := range xs {
		xs[i] = float64(i) / float64(samples-1) * spread * 3
		if xs[i] < minDist {
			ys[i] = 1
		} else {
			ys[i] = math.Exp(-(xs[i] - minDist) / spread)
		}
	}

	bestA, bestB := 1.0, 1.0
	bestErr := math.Inf(1)
	for ca := 0.1; ca <= 10.0; ca += 0.1 {
		for cb := 0.1; cb <= 2.0; cb += 0.05 {
			var sse float64
			for i := range xs {
				pred := 1 / (1 + ca*math.Pow(xs[i], 2*cb))
				diff := pred - ys[i]
				sse += diff * diff
			}
			if sse < bestErr {
				bestErr = sse
				bestA, bestB = ca, cb
			}
		}
	}
	return bestA, bestB
}

// initialLayout places the points for optimization: spectral layout from
// the graph Laplacian when the input is large enough, seeded random
// placement otherwise.
func initialLayout(graph sparseGraph, n, components int, seed int64) [][]float64 {
	rng := rand.New(rand.NewPCG(uint64(seed), 0))

	if layout := spectralLayout(graph, n, components); layout != nil {
		// Jitter breaks exact ties between identical rows.
		for i := range layout {
			for d := range layout[i] {
				layout[i][d] += (rng.Float64() - 0.5) * 1e-4
			}
		}
		return layout
	}

	layout := make([][]float64, n)
	for i := range layout {
		layout[i] = make([]float64, components)
		for d := range layout[i] {
			layout[i][d] = (rng.Float64() - 0.5) * 10
		}
	}
	return layout
}

// spectralLayout embeds via the eigenvectors of the symmetric normalized
// graph Laplacian belonging to the smallest non-trivial eigenvalues.
// Returns nil when the input is small or the decomposition fails.
func spectralLayout(graph sparseGraph, n, components int) [][]float64 {
	if n < spectralMinSamples {
		return nil
	}

	adj := mat.NewDense(n, n, nil)
	for i := range graph.rows {
		adj.Set(graph.rows[i], graph.cols[i], graph.weights[i])
	}

	degree := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			degree[i] += adj.At(i, j)
		}
	}

	laplacian := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		laplacian.Set(i, i, 1)
		for j := 0; j < n; j++ {
			if degree[i] > 0 && degree[j] > 0 {
				norm := adj.At(i, j) / math.Sqrt(degree[i]*degree[j])
				laplacian.Set(i, j, laplacian.At(i, j)-norm)
			}
		}
	}

	var eigen mat.Eigen
	if ok := eigen.Factorize(laplacian, mat.EigenRight); !ok {
		return nil
	}
	values := eigen.Values(nil)
	var vectors mat.CDense
	eigen.VectorsTo(&vectors)

	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return real(values[order[a]]) < real(values[order[b]])
	})

	layout := make([][]float64, n)
	for i := 0; i < n; i++ {
		layout[i] = make([]float64, components)
		for d := 0; d < components; d++ {
			// Skip the trivial constant eigenvector.
			if d+1 < len(order) {
				layout[i][d] = real(vectors.At(i, order[d+1]))
			}
		}
	}

	// Rescale each axis to a common range so SGD starts well-conditioned.
	for d := 0; d < components; d++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for i := 0; i < n; i++ {
			lo = math.Min(lo, layout[i][d])
			hi = math.Max(hi, layout[i][d])
		}
		if span := hi - lo; span > 0 {
			for i := 0; i < n; i++ {
				layout[i][d] = (layout[i][d] - lo) / span * 10
			}
		}
	}
	return layout
}

// optimizeLayout refines the layout in place with negative-sampling SGD.
// Edges are revisited at a rate proportional to their weight; the learning
// rate decays linearly across epochs.
func optimizeLayout(layout [][]float64, graph sparseGraph, a, b float64, cfg Config) {
	n := len(layout)
	nEdges := len(graph.rows)
	if nEdges == 0 || n < 2 {
		return
	}

	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), 1))

	maxWeight := 0.0
	for _, w := range graph.weights {
		maxWeight = math.Max(maxWeight, w)
	}
	if maxWeight == 0 {
		maxWeight = 1
	}

	epochsPerSample := make([]float64, nEdges)
	nextSample := make([]float64, nEdges)
	for i, w := range graph.weights {
		if w > 0 {
			epochsPerSample[i] = math.Max(1, maxWeight/w)
		} else {
			epochsPerSample[i] = float64(cfg.Epochs) + 1
		}
		nextSample[i] = epochsPerSample[i]
	}

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		alpha := cfg.LearningRate * (1 - float64(epoch)/float64(cfg.Epochs))
		if alpha < 1e-4 {
			alpha = 1e-4
		}

		for e := 0; e < nEdges; e++ {
			if nextSample[e] > float64(epoch) {
				continue
			}
			nextSample[e] += epochsPerSample[e]

			p := layout[graph.rows[e]]
			q := layout[graph.cols[e]]

			// Attraction along the edge.
			if distSq := squaredDistance(p, q); distSq > 0 {
				coeff := -2 * a * b * math.Pow(distSq, b-1)
				coeff /= a*math.Pow(distSq, b) + 1
				for d := range p {
					p[d] += clip(coeff*(p[d]-q[d])) * alpha
				}
			}

			// Repulsion from random non-neighbors.
			for s := 0; s < cfg.NegativeSampleRate; s++ {
				other := layout[rng.IntN(n)]
				if &other[0] == &p[0] {
					continue
				}
				distSq := squaredDistance(p, other)
				var coeff float64
				if distSq > 1e-3 {
					coeff = 2 * b / ((1e-3 + distSq) * (a*math.Pow(distSq, b) + 1))
				}
				if coeff > 0 {
					for d := range p {
						p[d] += clip(coeff*(p[d]-other[d])) * alpha
					}
				}
			}
		}
	}
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

// clip bounds a single gradient component to keep updates stable.
func clip(v float64) float64 {
	return math.Max(-4, math.Min(4, v))
}
