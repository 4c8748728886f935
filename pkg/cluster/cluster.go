// Package cluster groups acoustically similar snippets from their
// pre-computed feature vectors.
//
// One invocation processes one finite in-memory batch: feature vectors are
// assembled and filtered down to the numerically valid subset, standardized
// per column, clustered with a density-based algorithm, and projected to a
// 2-D layout for human review. Parameters for both algorithms are chosen
// adaptively from the valid sample count, so the pipeline behaves sensibly
// from a handful of snippets up to thousands.
//
// The two algorithms are pluggable capabilities ([Clusterer], [Embedder])
// with built-in implementations from the hdbscan and umap subpackages.
// Per-snippet problems (malformed features, NaN/Inf values) are logged and
// skipped; per-batch problems abort with an error and no partial result.
package cluster

import "errors"

// Sentinel errors for batch-fatal conditions.
var (
	// ErrNoValidData means no snippet in the batch produced a usable
	// feature vector. No result is produced.
	ErrNoValidData = errors.New("cluster: no valid feature vectors in batch")

	// ErrDegenerateInput means the valid sample count is too small for the
	// embedding step to form a valid neighbor parameter (fewer than 2).
	ErrDegenerateInput = errors.New("cluster: too few valid samples to embed")

	// ErrEngine wraps internal failures from the clustering or embedding
	// engine. These are deterministic numeric failures and are not retried.
	ErrEngine = errors.New("cluster: engine failure")
)

// ClusterParams are the density-clustering parameters chosen by the adviser.
type ClusterParams struct {
	// MinClusterSize is the smallest group of points that still counts as
	// a cluster.
	MinClusterSize int

	// MinSamples controls how conservative the density estimate is; lower
	// values let sparser regions form clusters.
	MinSamples int

	// SelectionEpsilon merges clusters that split below this distance.
	SelectionEpsilon float64

	// Alpha scales raw distances in the density estimate; values below 1
	// relax outlier rejection.
	Alpha float64
}

// EmbedParams are the 2-D embedding parameters chosen by the adviser.
type EmbedParams struct {
	// Neighbors is the local neighborhood size. Always in [1, n-1].
	Neighbors int

	// MinDist is the minimum spacing between points in the output layout.
	MinDist float64

	// Components is the output dimensionality, fixed at 2.
	Components int

	// Seed makes the layout reproducible across runs.
	Seed int64
}

// Clusterer is a density-based clustering capability: matrix in, one label
// per row out. Label -1 is reserved for noise; other labels are small
// non-negative integers with no ordering semantics across runs.
type Clusterer interface {
	Cluster(matrix [][]float64, params ClusterParams) ([]int, error)
}

// Embedder is a 2-D layout capability: matrix in, one coordinate pair per
// row out, in row order.
type Embedder interface {
	Embed(matrix [][]float64, params EmbedParams) ([][]float64, error)
}

// Result is the sole artifact of one pipeline invocation. Labels,
// embeddings, and valid indices are parallel slices in valid-sample order;
// centers are ordered by ascending label.
type Result struct {
	// ClusterLabels holds one label per valid sample; -1 means noise.
	ClusterLabels []int `json:"cluster_labels" msgpack:"cluster_labels"`

	// Embeddings holds one [x, y] pair per valid sample.
	Embeddings [][]float64 `json:"umap_embeddings" msgpack:"umap_embeddings"`

	// ClusterCenters holds the per-label mean vector in normalized feature
	// space, one per non-noise label, ascending.
	ClusterCenters [][]float64 `json:"cluster_centers" msgpack:"cluster_centers"`

	// ValidIndices maps valid-sample positions back to original batch
	// positions. Strictly increasing.
	ValidIndices []int `json:"valid_indices" msgpack:"valid_indices"`

	// TotalClusters is the count of distinct non-noise labels.
	TotalClusters int `json:"total_clusters" msgpack:"total_clusters"`

	// NoisePoints is the count of samples labeled -1.
	NoisePoints int `json:"noise_points" msgpack:"noise_points"`
}
