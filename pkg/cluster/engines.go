package cluster

import (
	"github.com/aviarylab/chirp/pkg/cluster/hdbscan"
	"github.com/aviarylab/chirp/pkg/cluster/umap"
)

// hdbscanEngine adapts the hdbscan subpackage to the Clusterer capability.
type hdbscanEngine struct{}

func (hdbscanEngine) Cluster(matrix [][]float64, params ClusterParams) ([]int, error) {
	return hdbscan.Cluster(matrix, hdbscan.Options{
		MinClusterSize:   params.MinClusterSize,
		MinSamples:       params.MinSamples,
		SelectionEpsilon: params.SelectionEpsilon,
		Alpha:            params.Alpha,
	})
}

// umapEngine adapts the umap subpackage to the Embedder capability.
type umapEngine struct{}

func (umapEngine) Embed(matrix [][]float64, params EmbedParams) ([][]float64, error) {
	return umap.Embed(matrix, umap.Config{
		Neighbors:  params.Neighbors,
		MinDist:    params.MinDist,
		Components: params.Components,
		Seed:       params.Seed,
	})
}
