package cluster

import (
	"fmt"
	"math"

	"github.com/aviarylab/chirp/pkg/feature"
)

// validBatch is the numerically valid subset of a batch: an
// order-preserving subsequence of the input with its original positions.
type validBatch struct {
	vectors [][]float64
	indices []int
}

// validate assembles and filters feature vectors. Snippets whose assembly
// fails or whose vector contains NaN/Inf values are skipped with a warning;
// an empty result or inconsistent vector lengths across the batch are
// batch-fatal.
func (p *Pipeline) validate(batch []feature.Record) (*validBatch, error) {
	vb := &validBatch{}
	for i, rec := range batch {
		vec, err := rec.Features.Vector()
		if err != nil {
			p.log.Warn("skipping snippet with malformed features", "id", rec.ID, "err", err)
			continue
		}
		if !allFinite(vec) {
			p.log.Warn("skipping snippet with non-finite feature values", "id", rec.ID)
			continue
		}
		if len(vb.vectors) > 0 && len(vec) != len(vb.vectors[0]) {
			// Feature-group presence must be batch-consistent; a ragged
			// matrix cannot be repaired here.
			return nil, fmt.Errorf("cluster: snippet %q has vector length %d, batch has %d: inconsistent feature presence",
				rec.ID, len(vec), len(vb.vectors[0]))
		}
		vb.vectors = append(vb.vectors, vec)
		vb.indices = append(vb.indices, i)
	}
	if len(vb.vectors) == 0 {
		return nil, ErrNoValidData
	}
	return vb, nil
}

func allFinite(vec []float64) bool {
	for _, v := range vec {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
