// Package dsp implements the voice cleaning pipeline: a fixed,
// single-threaded chain of RMS normalization, biquad filtering,
// a spectral noise gate, a lookahead amplitude gate, a static gain
// stage, a lookahead peak limiter and a fade-in. Process is a pure
// function: given the same input and Configuration it always produces
// the same output, and it never retains state across calls.
package dsp

import (
	"time"

	"github.com/pttmesh/voicecore/config"
	"github.com/pttmesh/voicecore/pcmio"
	"github.com/pttmesh/voicecore/verrors"
)

// StageReport records one pipeline stage's timing and loudness
// before/after, for diagnostics. It never influences the signal path;
// it exists so a caller (the CLI, or a test) can observe the pipeline
// without instrumenting the audio itself.
type StageReport struct {
	Name       string
	Enabled    bool
	Duration   time.Duration
	RMSBeforeDB float64
	RMSAfterDB  float64
}

// Report is the full diagnostic trace of one Process call.
type Report struct {
	Stages []StageReport
}

// Process runs the fixed pipeline over input using a snapshot of cfg
// taken at entry: Configuration is read by value, never re-observed
// mid-call. The output has the same length, sample rate and channel
// layout as input. Disabled stages pass the signal through untouched;
// fade-in always runs.
func Process(input pcmio.Buffer, cfg config.Configuration) (pcmio.Buffer, error) {
	report, out, err := process(input, cfg, true)
	_ = report
	return out, err
}

// ProcessWithReport behaves like Process but also returns a per-stage
// diagnostic Report.
func ProcessWithReport(input pcmio.Buffer, cfg config.Configuration) (pcmio.Buffer, Report, error) {
	report, out, err := process(input, cfg, true)
	return out, report, err
}

func process(input pcmio.Buffer, cfg config.Configuration, withReport bool) (Report, pcmio.Buffer, error) {
	if err := input.Validate(); err != nil {
		return Report{}, pcmio.Buffer{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Report{}, pcmio.Buffer{}, err
	}

	if len(input.Samples) == 0 {
		return Report{}, pcmio.Buffer{SampleRate: input.SampleRate, Channels: input.Channels}, nil
	}

	sampleRate := float64(input.SampleRate)
	channels := input.Channels

	samples := make([]float32, len(input.Samples))
	copy(samples, input.Samples)

	var report Report
	run := func(name string, enabled bool, fn func([]float32) []float32) {
		var before float64
		if withReport {
			before = linearToDBFS(rms(samples))
		}
		start := time.Now()
		if enabled {
			samples = fn(samples)
		}
		elapsed := time.Since(start)
		if withReport {
			report.Stages = append(report.Stages, StageReport{
				Name:        name,
				Enabled:     enabled,
				Duration:    elapsed,
				RMSBeforeDB: before,
				RMSAfterDB:  linearToDBFS(rms(samples)),
			})
		}
	}

	run("rms_normalize", cfg.RMSEnabled, func(s []float32) []float32 {
		return normalizeRMS(s, cfg.RMSTargetDB)
	})

	run("filters", cfg.FiltersEnabled, func(s []float32) []float32 {
		return applyFilters(s, channels, cfg.HighpassFreq, cfg.LowpassFreq, sampleRate)
	})

	run("spectral_gate", cfg.SpectralGateEnabled, func(s []float32) []float32 {
		return applySpectralGate(s, channels, cfg.SpectralThresholdDB)
	})

	run("amplitude_gate", cfg.AmplitudeGateEnabled, func(s []float32) []float32 {
		return applyAmpGate(s, channels, cfg.AmplitudeThresholdDB, cfg.AmplitudeAttackMs, cfg.AmplitudeReleaseMs, cfg.AmplitudeLookaheadMs, sampleRate)
	})

	run("gain_boost", cfg.GainBoostEnabled, func(s []float32) []float32 {
		return applyGain(s, cfg.GainDB)
	})

	run("limiter", cfg.LimiterEnabled, func(s []float32) []float32 {
		return applyLimiter(s, channels, cfg.LimiterThresholdDB, cfg.LimiterLookaheadMs, cfg.LimiterReleaseMs, sampleRate)
	})

	run("fade_in", true, func(s []float32) []float32 {
		return applyFadeIn(s, channels, cfg.FadeMs, sampleRate)
	})

	if len(samples) != len(input.Samples) {
		return Report{}, pcmio.Buffer{}, verrors.New(verrors.InternalError, "pipeline changed sample count from %d to %d", len(input.Samples), len(samples))
	}

	return report, pcmio.Buffer{Samples: samples, SampleRate: input.SampleRate, Channels: input.Channels}, nil
}
