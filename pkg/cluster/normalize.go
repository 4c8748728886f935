package cluster

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// minStdDev is the threshold below which a column is treated as constant
// and left centered but unscaled, avoiding division-by-zero artifacts.
const minStdDev = 1e-12

// standardize rescales each column to zero mean and unit variance using
// this batch's own statistics. The statistics are not retained; nothing
// persists across invocations.
func standardize(vectors [][]float64) [][]float64 {
	n := len(vectors)
	dim := len(vectors[0])

	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, dim)
	}

	col := make([]float64, n)
	for j := 0; j < dim; j++ {
		for i := 0; i < n; i++ {
			col[i] = vectors[i][j]
		}
		mean, sd := stat.MeanStdDev(col, nil)
		if math.IsNaN(sd) || sd < minStdDev {
			sd = 1
		}
		for i := 0; i < n; i++ {
			out[i][j] = (vectors[i][j] - mean) / sd
		}
	}
	return out
}
