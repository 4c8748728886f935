package cluster

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aviarylab/chirp/pkg/feature"
)

// noiseLabel is the reserved label for points outside every cluster.
const noiseLabel = -1

// Pipeline runs the full batch clustering flow. The zero configuration
// (via [New]) uses the built-in hdbscan and umap engines and the default
// slog logger. Pipelines are stateless across runs and safe to reuse.
type Pipeline struct {
	clusterer Clusterer
	embedder  Embedder
	log       *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClusterer substitutes the density clustering engine.
func WithClusterer(c Clusterer) Option {
	return func(p *Pipeline) { p.clusterer = c }
}

// WithEmbedder substitutes the 2-D embedding engine.
func WithEmbedder(e Embedder) Option {
	return func(p *Pipeline) { p.embedder = e }
}

// WithLogger sets the logger for per-snippet warnings and parameter traces.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// New creates a Pipeline with the built-in engines.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		clusterer: hdbscanEngine{},
		embedder:  umapEngine{},
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run clusters one batch of snippet records and returns the complete
// result, or an error with no partial result. The context is checked
// between stages; the numeric stages themselves are not interruptible.
func (p *Pipeline) Run(ctx context.Context, batch []feature.Record) (*Result, error) {
	vb, err := p.validate(batch)
	if err != nil {
		return nil, err
	}
	n := len(vb.vectors)

	// Advise embedding first: it is the binding constraint for tiny
	// batches (n < 2), and clustering must not run either in that case.
	ep, err := adviseEmbedding(n)
	if err != nil {
		return nil, err
	}
	cp := adviseClustering(n)
	p.log.Debug("advised batch parameters", "samples", n,
		"min_cluster_size", cp.MinClusterSize, "min_samples", cp.MinSamples,
		"selection_epsilon", cp.SelectionEpsilon, "alpha", cp.Alpha,
		"neighbors", ep.Neighbors, "min_dist", ep.MinDist)

	matrix := standardize(vb.vectors)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	labels, err := p.clusterer.Cluster(matrix, cp)
	if err != nil {
		return nil, fmt.Errorf("%w: clustering: %w", ErrEngine, err)
	}
	if len(labels) != n {
		return nil, fmt.Errorf("%w: clustering returned %d labels for %d samples", ErrEngine, len(labels), n)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	coords, err := p.embedder.Embed(matrix, ep)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding: %w", ErrEngine, err)
	}
	if len(coords) != n {
		return nil, fmt.Errorf("%w: embedding returned %d points for %d samples", ErrEngine, len(coords), n)
	}

	return assemble(labels, coords, matrix, vb.indices), nil
}

// assemble merges the stage outputs into the result contract. Pure data
// merge; slices are non-nil so the serialized form never contains nulls.
func assemble(labels []int, coords [][]float64, matrix [][]float64, indices []int) *Result {
	noise := 0
	for _, l := range labels {
		if l == noiseLabel {
			noise++
		}
	}
	ctrs := centers(matrix, labels)
	return &Result{
		ClusterLabels:  labels,
		Embeddings:     coords,
		ClusterCenters: ctrs,
		ValidIndices:   indices,
		TotalClusters:  len(ctrs),
		NoisePoints:    noise,
	}
}
