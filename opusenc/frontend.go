// Package opusenc implements the Opus encoding front-end: fold to
// mono, resample to 48 kHz, frame into 20 ms blocks, encode each frame
// with a real Opus codec, and package the result as an Ogg Opus
// bitstream per RFC 7845.
package opusenc

import (
	"io"
	"os"

	"github.com/thesyncim/gopus/container/ogg"
	"github.com/thesyncim/gopus/encoder"
	"github.com/thesyncim/gopus/types"

	"github.com/pttmesh/voicecore/config"
	"github.com/pttmesh/voicecore/pcmio"
	"github.com/pttmesh/voicecore/verrors"
)

const (
	// opusSampleRate is the fixed internal rate Opus always operates at.
	opusSampleRate = 48000
	// frameSamples is 20 ms at 48 kHz.
	frameSamples = 960
)

// Encode runs the front-end over input and writes an Ogg Opus stream to
// w. input may be any sample rate >= 8000 Hz, mono or stereo; output is
// always mono Opus at cfg.BitrateBps, limited to wideband when
// cfg.Wideband is set.
func Encode(w io.Writer, input pcmio.Buffer, cfg config.OpusConfig) error {
	if err := input.Validate(); err != nil {
		return err
	}

	mono := foldToMono(input)
	at48k := resample(mono, input.SampleRate, opusSampleRate)
	frames := frame(at48k, frameSamples)

	enc := encoder.NewEncoder(opusSampleRate, 1)
	enc.SetFrameSize(frameSamples)
	enc.SetComplexity(cfg.Complexity)
	if cfg.Wideband {
		enc.SetBandwidth(types.BandwidthWideband)
	}
	if cfg.VBR {
		enc.SetBitrateMode(encoder.ModeVBR)
	} else {
		enc.SetBitrateMode(encoder.ModeCBR)
	}
	enc.SetBitrate(cfg.BitrateBps)

	oggWriter, err := ogg.NewWriter(w, opusSampleRate, 1)
	if err != nil {
		return verrors.Wrap(verrors.CodecError, err, "initializing ogg opus stream")
	}

	for _, f := range frames {
		packet, err := enc.Encode(f, frameSamples)
		if err != nil {
			return verrors.Wrap(verrors.CodecError, err, "encoding opus frame")
		}
		if err := oggWriter.WritePacket(packet, frameSamples); err != nil {
			return verrors.Wrap(verrors.CodecError, err, "writing ogg page")
		}
	}

	if err := oggWriter.Close(); err != nil {
		return verrors.Wrap(verrors.CodecError, err, "closing ogg opus stream")
	}
	return nil
}

// EncodeToFile opens outputPath and runs Encode against it. On any
// failure the partially written file is removed: partial output is
// never left behind.
func EncodeToFile(outputPath string, input pcmio.Buffer, cfg config.OpusConfig) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return verrors.Wrap(verrors.IoError, err, "creating %s", outputPath)
	}

	if err := Encode(f, input, cfg); err != nil {
		f.Close()
		os.Remove(outputPath)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(outputPath)
		return verrors.Wrap(verrors.IoError, err, "closing %s", outputPath)
	}
	return nil
}

// EncodeWAVToOpus is the encode_to_opus external interface: read a WAV
// file, fold/resample/frame/encode it, and write an Ogg Opus file.
func EncodeWAVToOpus(inputWAVPath, outputOpusPath string, bitrateBps int) error {
	buf, err := pcmio.ReadWAV(inputWAVPath)
	if err != nil {
		return err
	}

	cfg := config.DefaultOpus()
	cfg.BitrateBps = bitrateBps

	return EncodeToFile(outputOpusPath, buf, cfg)
}

// foldToMono takes channel 0 only when input is stereo, a documented
// lossy-but-intentional policy for voice.
func foldToMono(input pcmio.Buffer) []float64 {
	mono := input.Channel(0)
	out := make([]float64, len(mono))
	for i, v := range mono {
		out[i] = float64(v)
	}
	return out
}

// frame partitions samples into fixed-size blocks, zero-padding the
// final block if short.
func frame(samples []float64, size int) [][]float64 {
	if len(samples) == 0 {
		return nil
	}
	n := (len(samples) + size - 1) / size
	frames := make([][]float64, n)
	for i := 0; i < n; i++ {
		start := i * size
		end := start + size
		block := make([]float64, size)
		if end > len(samples) {
			end = len(samples)
		}
		copy(block, samples[start:end])
		frames[i] = block
	}
	return frames
}
