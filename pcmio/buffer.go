// Package pcmio is the WAV container boundary for the voice pipeline.
// WAV I/O lives outside the DSP/Opus core; this package is the external
// collaborator that produces the PCM buffers the core consumes and
// persists the PCM the core returns, sitting beside the DSP chain
// rather than inside it.
package pcmio

import "github.com/pttmesh/voicecore/verrors"

// Buffer is an ordered sequence of samples with an associated sample
// rate and channel count. Samples are interleaved when Channels == 2.
type Buffer struct {
	Samples    []float32
	SampleRate int
	Channels   int
}

// Frames returns the number of per-channel sample frames in the buffer.
func (b Buffer) Frames() int {
	if b.Channels == 0 {
		return 0
	}
	return len(b.Samples) / b.Channels
}

// Duration returns the buffer's length in seconds.
func (b Buffer) Duration() float64 {
	if b.SampleRate == 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}

// Clone returns a deep copy, so pipeline stages never alias the
// caller's buffer.
func (b Buffer) Clone() Buffer {
	out := Buffer{
		Samples:    make([]float32, len(b.Samples)),
		SampleRate: b.SampleRate,
		Channels:   b.Channels,
	}
	copy(out.Samples, b.Samples)
	return out
}

// Validate checks the format invariants a Buffer must satisfy before
// entering the core pipeline.
func (b Buffer) Validate() error {
	if b.SampleRate <= 0 {
		return verrors.New(verrors.InvalidFormat, "sample rate must be > 0, got %d", b.SampleRate)
	}
	if b.Channels != 1 && b.Channels != 2 {
		return verrors.New(verrors.InvalidFormat, "channels must be 1 or 2, got %d", b.Channels)
	}
	if b.Channels != 0 && len(b.Samples)%b.Channels != 0 {
		return verrors.New(verrors.InvalidFormat, "sample count %d is not a multiple of channel count %d", len(b.Samples), b.Channels)
	}
	return nil
}

// Channel extracts channel index ch (0-based) as a mono, non-interleaved
// slice of samples.
func (b Buffer) Channel(ch int) []float32 {
	if b.Channels <= 1 {
		if ch != 0 {
			return nil
		}
		out := make([]float32, len(b.Samples))
		copy(out, b.Samples)
		return out
	}
	frames := b.Frames()
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		out[i] = b.Samples[i*b.Channels+ch]
	}
	return out
}
