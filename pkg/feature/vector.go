package feature

import "fmt"

// Vector flattens the feature set into a fixed-order numeric vector.
//
// Assembly order:
//  1. mfcc_mean then mfcc_std (paired — one without the other is malformed)
//  2. the six spectral scalars, each independently optional
//  3. zero-crossing rate mean, std
//  4. rms mean, std
//  5. chroma_mean then chroma_std (paired)
//  6. duration, sample_rate, audio_length
//
// Absent groups are omitted, not zero-filled. A feature set with no
// recognized group at all flattens to nothing and is malformed.
func (f *FeatureSet) Vector() ([]float64, error) {
	var vec []float64

	var err error
	if vec, err = appendPair(vec, "mfcc", f.MFCCMean, f.MFCCStd); err != nil {
		return nil, err
	}

	for _, s := range []*float64{
		f.SpectralCentroidMean, f.SpectralCentroidStd,
		f.SpectralBandwidthMean, f.SpectralBandwidthStd,
		f.SpectralRolloffMean, f.SpectralRolloffStd,
		f.ZeroCrossingRateMean, f.ZeroCrossingRateStd,
		f.RMSMean, f.RMSStd,
	} {
		if s != nil {
			vec = append(vec, *s)
		}
	}

	if vec, err = appendPair(vec, "chroma", f.ChromaMean, f.ChromaStd); err != nil {
		return nil, err
	}

	if f.Duration != nil {
		vec = append(vec, *f.Duration)
	}
	if f.SampleRate != nil {
		vec = append(vec, float64(*f.SampleRate))
	}
	if f.AudioLength != nil {
		vec = append(vec, float64(*f.AudioLength))
	}

	if len(vec) == 0 {
		return nil, fmt.Errorf("%w: no recognized feature groups present", ErrMalformed)
	}
	return vec, nil
}

// appendPair appends a mean sequence followed by its deviation sequence.
// Both must be present together and have equal length.
func appendPair(vec []float64, name string, mean, std []float64) ([]float64, error) {
	if mean == nil && std == nil {
		return vec, nil
	}
	if mean == nil || std == nil {
		return nil, fmt.Errorf("%w: %s_mean and %s_std must be present together", ErrMalformed, name, name)
	}
	if len(mean) != len(std) {
		return nil, fmt.Errorf("%w: %s_mean has %d values but %s_std has %d", ErrMalformed, name, len(mean), name, len(std))
	}
	vec = append(vec, mean...)
	vec = append(vec, std...)
	return vec, nil
}
