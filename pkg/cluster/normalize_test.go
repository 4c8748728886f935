package cluster

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"
)

func TestStandardizeColumns(t *testing.T) {
	vectors := [][]float64{
		{1, 100, 7},
		{2, 200, 7},
		{3, 300, 7},
		{4, 400, 7},
	}
	out := standardize(vectors)

	col := make([]float64, len(out))
	for j := 0; j < 2; j++ {
		for i := range out {
			col[i] = out[i][j]
		}
		mean, sd := stat.MeanStdDev(col, nil)
		if math.Abs(mean) > 1e-9 {
			t.Errorf("column %d mean = %v, want 0", j, mean)
		}
		if math.Abs(sd-1) > 1e-9 {
			t.Errorf("column %d stddev = %v, want 1", j, sd)
		}
	}

	// The constant column centers to zero without rescaling.
	for i := range out {
		if out[i][2] != 0 {
			t.Errorf("constant column row %d = %v, want 0", i, out[i][2])
		}
	}
}

func TestStandardizeDoesNotMutateInput(t *testing.T) {
	vectors := [][]float64{{1, 2}, {3, 4}}
	standardize(vectors)
	if vectors[0][0] != 1 || vectors[1][1] != 4 {
		t.Errorf("input mutated: %v", vectors)
	}
}

func TestStandardizeSingleRow(t *testing.T) {
	out := standardize([][]float64{{5, -3}})
	for j, v := range out[0] {
		if v != 0 {
			t.Errorf("single-row column %d = %v, want 0", j, v)
		}
	}
}
