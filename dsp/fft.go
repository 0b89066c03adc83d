package dsp

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// hammingWindow returns a Hamming window of the given length, used
// for both analysis and synthesis.
func hammingWindow(size int) []float64 {
	w := make([]float64, size)
	if size == 1 {
		w[0] = 1
		return w
	}
	for j := 0; j < size; j++ {
		w[j] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(j)/float64(size-1))
	}
	return w
}

// windowedFFT wraps gonum's real-input FFT with a Hamming analysis
// window and its matching inverse. gonum's Coefficients is an
// unnormalized DFT, so magScale holds the factor (N/2 times the
// window's coherent gain) that brings a full-scale windowed tone's bin
// magnitude back to 1.0, i.e. 0 dBFS.
type windowedFFT struct {
	size     int
	window   []float64
	fft      *fourier.FFT
	magScale float64
}

func newWindowedFFT(size int) *windowedFFT {
	window := hammingWindow(size)
	var sum float64
	for _, w := range window {
		sum += w
	}
	return &windowedFFT{
		size:     size,
		window:   window,
		fft:      fourier.NewFFT(size),
		magScale: sum / 2,
	}
}

// analyze windows a block of length size and returns its N/2+1 complex
// FFT bins.
func (w *windowedFFT) analyze(block []float64) []complex128 {
	windowed := make([]float64, w.size)
	for i, x := range block {
		windowed[i] = x * w.window[i]
	}
	return w.fft.Coefficients(nil, windowed)
}

// synthesize inverts a set of complex bins back to a time-domain block.
// gonum's Sequence is unnormalized like Coefficients, so the result is
// divided by the block size to make analyze/synthesize a unity round
// trip. The caller applies the synthesis window separately so
// overlap-add scaling stays in one place.
func (w *windowedFFT) synthesize(bins []complex128) []float64 {
	seq := w.fft.Sequence(nil, bins)
	for i := range seq {
		seq[i] /= float64(w.size)
	}
	return seq
}

// magnitudeDB converts a complex FFT bin to dB relative to full scale,
// treating a full-scale windowed tone as 0 dB. The raw DFT coefficient
// is divided by magScale first, since gonum's Coefficients does not
// normalize for FFT size or window energy on its own.
func (w *windowedFFT) magnitudeDB(bin complex128) float64 {
	mag := cmplx.Abs(bin) / w.magScale
	if mag <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(mag)
}
