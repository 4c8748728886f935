package cluster

import "sort"

// centers computes one representative center per distinct non-noise label:
// the arithmetic mean, in normalized feature space, of the rows carrying
// that label. Centers are returned in ascending label order; noise rows
// contribute to none of them.
func centers(matrix [][]float64, labels []int) [][]float64 {
	counts := make(map[int]int)
	for _, l := range labels {
		if l != noiseLabel {
			counts[l]++
		}
	}

	order := make([]int, 0, len(counts))
	for l := range counts {
		order = append(order, l)
	}
	sort.Ints(order)

	dim := 0
	if len(matrix) > 0 {
		dim = len(matrix[0])
	}

	out := make([][]float64, 0, len(order))
	for _, l := range order {
		c := make([]float64, dim)
		for i, row := range matrix {
			if labels[i] != l {
				continue
			}
			for j, v := range row {
				c[j] += v
			}
		}
		for j := range c {
			c[j] /= float64(counts[l])
		}
		out = append(out, c)
	}
	return out
}
