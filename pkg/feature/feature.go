// Package feature defines the per-snippet acoustic feature contract and
// the flattening of a feature set into a fixed-order numeric vector.
//
// Feature sets arrive pre-computed from the upstream extractor (MFCCs,
// spectral statistics, chroma, zero-crossing rate, energy, metadata).
// Every group is optional, but presence must be consistent across a batch:
// absent groups are omitted from the vector, not zero-filled, so mixing
// snippets with different groups present produces vectors of different
// lengths and the batch is rejected downstream. That guarantee belongs to
// the caller and is deliberately not repaired here.
package feature

import "errors"

// ErrMalformed is returned by [FeatureSet.Vector] when a feature set
// cannot be flattened (e.g. a mean sequence without its paired deviation
// sequence, or no recognized group at all).
var ErrMalformed = errors.New("feature: malformed feature set")

// Record is one snippet's worth of input: an opaque caller-defined ID and
// the extracted feature set. Records are read, never mutated.
type Record struct {
	// ID identifies the snippet in warnings and downstream tooling.
	ID string `json:"id"`

	// Features holds the pre-computed acoustic feature groups.
	Features FeatureSet `json:"features"`
}

// FeatureSet is the full set of recognized feature groups. Every field is
// optional; nil means the group was not produced upstream. The fields are
// enumerated here once, in vector order, so presence checking in Vector
// is total rather than scattered.
type FeatureSet struct {
	// Cepstral coefficients (typically 13 per sequence).
	MFCCMean []float64 `json:"mfcc_mean,omitempty"`
	MFCCStd  []float64 `json:"mfcc_std,omitempty"`

	// Spectral shape statistics.
	SpectralCentroidMean  *float64 `json:"spectral_centroid_mean,omitempty"`
	SpectralCentroidStd   *float64 `json:"spectral_centroid_std,omitempty"`
	SpectralBandwidthMean *float64 `json:"spectral_bandwidth_mean,omitempty"`
	SpectralBandwidthStd  *float64 `json:"spectral_bandwidth_std,omitempty"`
	SpectralRolloffMean   *float64 `json:"spectral_rolloff_mean,omitempty"`
	SpectralRolloffStd    *float64 `json:"spectral_rolloff_std,omitempty"`

	// Zero-crossing rate statistics.
	ZeroCrossingRateMean *float64 `json:"zero_crossing_rate_mean,omitempty"`
	ZeroCrossingRateStd  *float64 `json:"zero_crossing_rate_std,omitempty"`

	// Energy statistics.
	RMSMean *float64 `json:"rms_mean,omitempty"`
	RMSStd  *float64 `json:"rms_std,omitempty"`

	// Pitch-class profile (typically 12 per sequence).
	ChromaMean []float64 `json:"chroma_mean,omitempty"`
	ChromaStd  []float64 `json:"chroma_std,omitempty"`

	// Snippet metadata.
	Duration    *float64 `json:"duration,omitempty"`
	SampleRate  *int     `json:"sample_rate,omitempty"`
	AudioLength *int     `json:"audio_length,omitempty"`
}
