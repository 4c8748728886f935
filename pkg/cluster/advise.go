package cluster

// Adaptive parameter selection, keyed solely on the valid sample count.
// Small batches get permissive density thresholds so a 2-3 point group
// still registers as a cluster; strict criteria on sparse data would
// reject everything as noise.
//
// Both tables are ordered (upper bound, parameter set) rows evaluated top
// to bottom; a zero bound matches any count.

// embedSeed fixes the embedding layout across runs for a given input.
const embedSeed = 42

var clusterAdvice = []struct {
	maxN   int
	advise func(n int) ClusterParams
}{
	{maxN: 10, advise: func(n int) ClusterParams {
		return ClusterParams{MinClusterSize: max(2, n/3), MinSamples: 1, SelectionEpsilon: 0.3, Alpha: 0.5}
	}},
	{maxN: 19, advise: func(int) ClusterParams {
		return ClusterParams{MinClusterSize: 3, MinSamples: 2, SelectionEpsilon: 0.1, Alpha: 1.0}
	}},
	{maxN: 0, advise: func(int) ClusterParams {
		return ClusterParams{MinClusterSize: 3, MinSamples: 2, SelectionEpsilon: 0.1, Alpha: 1.0}
	}},
}

var embedAdvice = []struct {
	maxN   int
	advise func(n int) EmbedParams
}{
	{maxN: 4, advise: func(n int) EmbedParams {
		return EmbedParams{Neighbors: max(1, n-1), MinDist: 0.5}
	}},
	{maxN: 9, advise: func(n int) EmbedParams {
		return EmbedParams{Neighbors: min(5, n-1), MinDist: 0.3}
	}},
	{maxN: 0, advise: func(int) EmbedParams {
		return EmbedParams{Neighbors: 15, MinDist: 0.1}
	}},
}

// adviseClustering picks density-clustering parameters for n valid samples.
func adviseClustering(n int) ClusterParams {
	for _, row := range clusterAdvice {
		if row.maxN == 0 || n <= row.maxN {
			return row.advise(n)
		}
	}
	panic("cluster: advice table has no terminal row")
}

// adviseEmbedding picks embedding parameters for n valid samples. The
// neighbor count is clamped to [1, n-1] after the table lookup: the
// embedding requires strictly fewer neighbors than samples, so even the
// large-batch row must shrink when n is 16 or less. For n < 2 no valid
// neighbor count exists and the batch is rejected.
func adviseEmbedding(n int) (EmbedParams, error) {
	if n < 2 {
		return EmbedParams{}, ErrDegenerateInput
	}
	var p EmbedParams
	for _, row := range embedAdvice {
		if row.maxN == 0 || n <= row.maxN {
			p = row.advise(n)
			break
		}
	}
	p.Neighbors = min(p.Neighbors, n-1)
	p.Neighbors = max(p.Neighbors, 1)
	p.Components = 2
	p.Seed = embedSeed
	return p, nil
}
