// Package config holds the tunables for the voice cleaning pipeline and
// the Opus encoding front-end, their documented defaults and ranges,
// and YAML persistence so a caller can save and reload a tuned preset.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pttmesh/voicecore/verrors"
)

// Configuration is the full set of tunables read by value at the start
// of a single Process call. It must not be mutated while a call is in
// flight; see the doc comment on dsp.Process.
type Configuration struct {
	SampleRate int `yaml:"sample_rate"`

	RMSTargetDB float64 `yaml:"rms_target_db"`

	SpectralThresholdDB float64 `yaml:"threshold_db"`

	HighpassFreq float64 `yaml:"highpass_freq"`
	LowpassFreq  float64 `yaml:"lowpass_freq"`

	AmplitudeThresholdDB  float64 `yaml:"amplitude_threshold_db"`
	AmplitudeAttackMs     float64 `yaml:"amplitude_attack_ms"`
	AmplitudeReleaseMs    float64 `yaml:"amplitude_release_ms"`
	AmplitudeLookaheadMs  float64 `yaml:"amplitude_lookahead_ms"`

	GainDB float64 `yaml:"gain_db"`

	LimiterThresholdDB float64 `yaml:"limiter_threshold_db"`
	LimiterReleaseMs   float64 `yaml:"limiter_release_ms"`
	LimiterLookaheadMs float64 `yaml:"limiter_lookahead_ms"`

	FadeMs float64 `yaml:"fade_ms"`

	RMSEnabled          bool `yaml:"rms_enabled"`
	FiltersEnabled      bool `yaml:"filters_enabled"`
	SpectralGateEnabled bool `yaml:"spectral_gate_enabled"`
	AmplitudeGateEnabled bool `yaml:"amplitude_gate_enabled"`
	GainBoostEnabled    bool `yaml:"gain_boost_enabled"`
	LimiterEnabled      bool `yaml:"limiter_enabled"`

	Opus OpusConfig `yaml:"opus"`
}

// OpusConfig governs the Opus encoding front-end.
type OpusConfig struct {
	// Channels is fixed to 1 (mono) for the core preset; kept as a field
	// so a caller can see the commitment rather than assume it.
	Channels int `yaml:"channels"`

	BitrateBps int `yaml:"bitrate_bps"`

	FrameSizeMs int `yaml:"frame_size_ms"`

	Complexity int `yaml:"complexity"`

	VBR bool `yaml:"vbr"`

	Wideband bool `yaml:"wideband"`
}

// Default returns the documented default configuration.
func Default() Configuration {
	return Configuration{
		SampleRate: 48000,

		RMSTargetDB: -20,

		SpectralThresholdDB: 5,

		HighpassFreq: 75,
		LowpassFreq:  20000,

		AmplitudeThresholdDB: -20,
		AmplitudeAttackMs:    10,
		AmplitudeReleaseMs:   100,
		AmplitudeLookaheadMs: 5,

		GainDB: 6,

		LimiterThresholdDB: -1,
		LimiterReleaseMs:   50,
		LimiterLookaheadMs: 5,

		FadeMs: 5,

		RMSEnabled:           true,
		FiltersEnabled:       true,
		SpectralGateEnabled:  true,
		AmplitudeGateEnabled: true,
		GainBoostEnabled:     false,
		LimiterEnabled:       true,

		Opus: DefaultOpus(),
	}
}

// DefaultOpus returns the default Opus front-end configuration.
func DefaultOpus() OpusConfig {
	return OpusConfig{
		Channels:    1,
		BitrateBps:  12000,
		FrameSizeMs: 20,
		Complexity:  10,
		VBR:         true,
		Wideband:    true,
	}
}

// SetOpusBitrate sets the Opus front-end bitrate in bits per second.
func (c *Configuration) SetOpusBitrate(bps int) { c.Opus.BitrateBps = bps }

// GetOpusBitrate returns the Opus front-end bitrate in bits per second.
func (c *Configuration) GetOpusBitrate() int { return c.Opus.BitrateBps }

// Validate enforces every documented range and cross-field invariant.
// It returns the first violation found as a *verrors.Error of Kind
// InvalidConfig, naming the offending field.
func (c Configuration) Validate() error {
	if c.SampleRate <= 0 {
		return verrors.New(verrors.InvalidConfig, "sample_rate must be > 0, got %d", c.SampleRate)
	}
	if !inRange(c.RMSTargetDB, -60, 0) {
		return verrors.New(verrors.InvalidConfig, "rms_target_db %.2f out of range [-60,0]", c.RMSTargetDB)
	}
	if !inRange(c.SpectralThresholdDB, -50, 24) {
		return verrors.New(verrors.InvalidConfig, "threshold_db %.2f out of range [-50,24]", c.SpectralThresholdDB)
	}
	if !inRange(c.HighpassFreq, 20, 1000) {
		return verrors.New(verrors.InvalidConfig, "highpass_freq %.2f out of range [20,1000]", c.HighpassFreq)
	}
	if !inRange(c.LowpassFreq, 1000, 20000) {
		return verrors.New(verrors.InvalidConfig, "lowpass_freq %.2f out of range [1000,20000]", c.LowpassFreq)
	}
	if c.HighpassFreq >= c.LowpassFreq {
		return verrors.New(verrors.InvalidConfig, "highpass_freq %.2f must be < lowpass_freq %.2f", c.HighpassFreq, c.LowpassFreq)
	}
	if float64(c.LowpassFreq) >= float64(c.SampleRate)/2 {
		return verrors.New(verrors.InvalidConfig, "lowpass_freq %.2f must be < sample_rate/2 (%.2f)", c.LowpassFreq, float64(c.SampleRate)/2)
	}
	if !inRange(c.AmplitudeThresholdDB, -60, 0) {
		return verrors.New(verrors.InvalidConfig, "amplitude_threshold_db %.2f out of range [-60,0]", c.AmplitudeThresholdDB)
	}
	if !inRange(c.AmplitudeAttackMs, 0.1, 100) {
		return verrors.New(verrors.InvalidConfig, "amplitude_attack_ms %.2f out of range [0.1,100]", c.AmplitudeAttackMs)
	}
	if !inRange(c.AmplitudeReleaseMs, 1, 1000) {
		return verrors.New(verrors.InvalidConfig, "amplitude_release_ms %.2f out of range [1,1000]", c.AmplitudeReleaseMs)
	}
	if !inRange(c.AmplitudeLookaheadMs, 0, 20) {
		return verrors.New(verrors.InvalidConfig, "amplitude_lookahead_ms %.2f out of range [0,20]", c.AmplitudeLookaheadMs)
	}
	if !inRange(c.GainDB, 0, 24) {
		return verrors.New(verrors.InvalidConfig, "gain_db %.2f out of range [0,24]", c.GainDB)
	}
	if !inRange(c.LimiterThresholdDB, -12, 0) {
		return verrors.New(verrors.InvalidConfig, "limiter_threshold_db %.2f out of range [-12,0]", c.LimiterThresholdDB)
	}
	if !inRange(c.LimiterReleaseMs, 10, 500) {
		return verrors.New(verrors.InvalidConfig, "limiter_release_ms %.2f out of range [10,500]", c.LimiterReleaseMs)
	}
	if !inRange(c.LimiterLookaheadMs, 1, 20) {
		return verrors.New(verrors.InvalidConfig, "limiter_lookahead_ms %.2f out of range [1,20]", c.LimiterLookaheadMs)
	}
	if !inRange(c.FadeMs, 0, 50) {
		return verrors.New(verrors.InvalidConfig, "fade_ms %.2f out of range [0,50]", c.FadeMs)
	}
	if c.Opus.BitrateBps <= 0 {
		return verrors.New(verrors.InvalidConfig, "opus.bitrate_bps must be > 0, got %d", c.Opus.BitrateBps)
	}
	return nil
}

// Load reads a Configuration from a YAML file, starting from Default()
// so a partial document still produces the documented defaults for
// every field it omits.
func Load(path string) (Configuration, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, verrors.Wrap(verrors.IoError, err, "reading config %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Configuration{}, verrors.Wrap(verrors.InvalidConfig, err, "parsing config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return Configuration{}, err
	}

	return cfg, nil
}

// Save writes cfg to path as YAML, overwriting any existing file.
func Save(cfg Configuration, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return verrors.Wrap(verrors.InternalError, err, "marshalling config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return verrors.Wrap(verrors.IoError, err, "writing config %s", path)
	}
	return nil
}

// String renders a short human-readable summary, used by CLI logging.
func (c Configuration) String() string {
	return fmt.Sprintf(
		"sr=%dHz rms=%.1fdB gate=%.1fdB hp=%.0fHz lp=%.0fHz gain=%.1fdB limiter=%.1fdB opus=%dbps",
		c.SampleRate, c.RMSTargetDB, c.SpectralThresholdDB, c.HighpassFreq, c.LowpassFreq,
		c.GainDB, c.LimiterThresholdDB, c.Opus.BitrateBps,
	)
}
