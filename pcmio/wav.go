package pcmio

import (
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/pttmesh/voicecore/verrors"
)

// WAVE fmt-chunk audio format codes (see the canonical WAVE/RIFF
// specification), as surfaced on wav.Decoder.WavAudioFormat.
const (
	wavFormatPCM       = 1
	wavFormatIEEEFloat = 3
)

// ReadWAV reads a RIFF/WAVE file containing integer PCM16 or PCM32 samples, mono
// or stereo, any sample rate >= 8000 Hz, and returns a Buffer of
// float32 samples in [-1.0, +1.0]. IEEE-float WAV data and other
// unsupported encodings fail with InvalidFormat rather than being
// silently misinterpreted as integer PCM.
func ReadWAV(path string) (Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return Buffer{}, verrors.Wrap(verrors.IoError, err, "opening %s", path)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return Buffer{}, verrors.New(verrors.InvalidFormat, "%s is not a valid WAV file", path)
	}

	intBuf, err := dec.FullPCMBuffer()
	if err != nil {
		return Buffer{}, verrors.Wrap(verrors.IoError, err, "decoding %s", path)
	}

	sampleRate := int(dec.SampleRate)
	channels := int(dec.NumChans)
	bitDepth := int(dec.BitDepth)
	audioFormat := int(dec.WavAudioFormat)

	if sampleRate < 8000 {
		return Buffer{}, verrors.New(verrors.InvalidFormat, "%s sample rate %d below 8000 Hz minimum", path, sampleRate)
	}
	if channels != 1 && channels != 2 {
		return Buffer{}, verrors.New(verrors.InvalidFormat, "%s has %d channels, only mono/stereo supported", path, channels)
	}
	if audioFormat == wavFormatIEEEFloat {
		return Buffer{}, verrors.New(verrors.InvalidFormat, "%s is IEEE-float PCM, only integer PCM is supported", path)
	}
	if audioFormat != wavFormatPCM {
		return Buffer{}, verrors.New(verrors.InvalidFormat, "%s audio format %d unsupported, only integer PCM is supported", path, audioFormat)
	}
	if bitDepth != 16 && bitDepth != 32 {
		return Buffer{}, verrors.New(verrors.InvalidFormat, "%s bit depth %d unsupported, only 16 and 32 supported", path, bitDepth)
	}

	samples := make([]float32, len(intBuf.Data))
	scale := float64(int64(1) << uint(bitDepth-1))
	for i, v := range intBuf.Data {
		samples[i] = float32(float64(v) / scale)
	}

	return Buffer{Samples: samples, SampleRate: sampleRate, Channels: channels}, nil
}

// WriteWAV persists buf as a 16-bit PCM RIFF/WAVE file, clipping any
// sample outside [-1,1] rather than wrapping.
func WriteWAV(path string, buf Buffer) error {
	if err := buf.Validate(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return verrors.Wrap(verrors.IoError, err, "creating %s", path)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, buf.SampleRate, 16, buf.Channels, 1)

	data := make([]int, len(buf.Samples))
	for i, v := range buf.Samples {
		c := float64(v)
		if c > 1 {
			c = 1
		} else if c < -1 {
			c = -1
		}
		data[i] = int(math.Round(c * 32767))
	}

	intBuf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: buf.Channels, SampleRate: buf.SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(intBuf); err != nil {
		return verrors.Wrap(verrors.IoError, err, "writing %s", path)
	}
	if err := enc.Close(); err != nil {
		return verrors.Wrap(verrors.IoError, err, "closing %s", path)
	}
	return nil
}
