package cluster

import (
	"reflect"
	"testing"
)

func TestCenters(t *testing.T) {
	matrix := [][]float64{
		{0, 0},
		{2, 4},
		{10, 10},
		{-1, -1},
	}
	labels := []int{0, 0, 1, noiseLabel}

	got := centers(matrix, labels)
	want := [][]float64{
		{1, 2},
		{10, 10},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("centers = %v, want %v", got, want)
	}
}

func TestCentersAllNoise(t *testing.T) {
	matrix := [][]float64{{1, 1}, {2, 2}}
	labels := []int{noiseLabel, noiseLabel}

	got := centers(matrix, labels)
	if got == nil || len(got) != 0 {
		t.Errorf("centers with all-noise labels = %v, want empty non-nil slice", got)
	}
}
