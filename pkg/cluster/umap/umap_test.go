package umap

import (
	"math"
	"math/rand/v2"
	"reflect"
	"testing"
)

func makeCloud(center []float64, count int, spread float64, rng *rand.Rand) [][]float64 {
	points := make([][]float64, count)
	for i := range points {
		p := make([]float64, len(center))
		for d, c := range center {
			p[d] = c + rng.NormFloat64()*spread
		}
		points[i] = p
	}
	return points
}

func TestEmbedShape(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 0))
	points := makeCloud([]float64{0, 0, 0, 0, 0}, 20, 1, rng)

	layout, err := Embed(points, Config{Neighbors: 5, Seed: 7})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(layout) != 20 {
		t.Fatalf("len(layout) = %d, want 20", len(layout))
	}
	for i, pt := range layout {
		if len(pt) != 2 {
			t.Fatalf("layout row %d has %d coordinates, want 2", i, len(pt))
		}
		for _, v := range pt {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("layout row %d contains non-finite value %v", i, v)
			}
		}
	}
}

func TestEmbedDeterministic(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 0))
	points := makeCloud([]float64{0, 0, 0}, 25, 2, rng)
	cfg := Config{Neighbors: 6, Seed: 42}

	first, err := Embed(points, cfg)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	second, err := Embed(points, cfg)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("same input and seed produced different layouts")
	}

	cfg.Seed = 43
	other, err := Embed(points, cfg)
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if reflect.DeepEqual(first, other) {
		t.Error("different seeds produced identical layouts")
	}
}

func TestEmbedPreservesGroupStructure(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 0))
	points := makeCloud([]float64{0, 0, 0, 0}, 12, 0.2, rng)
	points = append(points, makeCloud([]float64{25, 25, 25, 25}, 12, 0.2, rng)...)

	layout, err := Embed(points, Config{Neighbors: 5, Seed: 1})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	dist2 := func(a, b []float64) float64 {
		dx := a[0] - b[0]
		dy := a[1] - b[1]
		return dx*dx + dy*dy
	}
	var intra, inter float64
	var nIntra, nInter int
	for i := 0; i < len(layout); i++ {
		for j := i + 1; j < len(layout); j++ {
			if (i < 12) == (j < 12) {
				intra += dist2(layout[i], layout[j])
				nIntra++
			} else {
				inter += dist2(layout[i], layout[j])
				nInter++
			}
		}
	}
	intra /= float64(nIntra)
	inter /= float64(nInter)
	if inter <= intra {
		t.Errorf("mean inter-group distance %v not larger than intra-group %v", inter, intra)
	}
}

func TestEmbedTwoPoints(t *testing.T) {
	layout, err := Embed([][]float64{{0, 0}, {1, 1}}, Config{Seed: 5})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(layout) != 2 || len(layout[0]) != 2 {
		t.Errorf("layout = %v, want two 2-D rows", layout)
	}
}

func TestEmbedEmptyInput(t *testing.T) {
	layout, err := Embed(nil, Config{})
	if err != nil || layout != nil {
		t.Errorf("empty input: got (%v, %v), want (nil, nil)", layout, err)
	}
}

func TestEmbedBadInput(t *testing.T) {
	if _, err := Embed([][]float64{{1, 2}}, Config{}); err == nil {
		t.Error("single point accepted")
	}
	if _, err := Embed([][]float64{{1, 2}, {3}}, Config{}); err == nil {
		t.Error("mismatched dimensions accepted")
	}
	if _, err := Embed([][]float64{{1}, {2}, {3}}, Config{Neighbors: 3}); err == nil {
		t.Error("Neighbors >= n accepted")
	}
	if _, err := Embed([][]float64{{1}, {2}, {3}}, Config{Neighbors: -1}); err == nil {
		t.Error("negative Neighbors accepted")
	}
}
