package audio

import "math"

// PCMSource supplies interleaved int16 samples starting at a source-local
// time. Implementations fill the whole buffer, padding with silence past the
// end of their material.
type PCMSource interface {
	Samples(start float64, out []int16, sampleRate, channels int) error
	Close() error
}

// SilenceSource always produces zeros. Useful as a stand-in for missing
// media in tests.
type SilenceSource struct{}

func (SilenceSource) Samples(_ float64, out []int16, _, _ int) error {
	for i := range out {
		out[i] = 0
	}
	return nil
}

func (SilenceSource) Close() error { return nil }

// ToneSource generates a sine tone, identical on every channel. Being a pure
// function of time it gives tests deterministic material without media files.
type ToneSource struct {
	Freq      float64
	Amplitude float64 // 0..1 of full scale
}

func (t ToneSource) Samples(start float64, out []int16, sampleRate, channels int) error {
	amp := t.Amplitude * 32767
	frames := len(out) / channels
	for f := 0; f < frames; f++ {
		ts := start + float64(f)/float64(sampleRate)
		v := int16(amp * math.Sin(2*math.Pi*t.Freq*ts))
		for c := 0; c < channels; c++ {
			out[f*channels+c] = v
		}
	}
	return nil
}

func (ToneSource) Close() error { return nil }
