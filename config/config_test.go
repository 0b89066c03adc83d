package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pttmesh/voicecore/verrors"
)

func TestDefaultConfigurationIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateRejectsOutOfRangeGain(t *testing.T) {
	cfg := Default()
	cfg.GainDB = 100

	err := cfg.Validate()
	require.Error(t, err)

	var ve *verrors.Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, verrors.InvalidConfig, ve.Kind)
}

func TestValidateRejectsHighpassAboveLowpass(t *testing.T) {
	cfg := Default()
	cfg.HighpassFreq = 5000
	cfg.LowpassFreq = 4000

	require.Error(t, cfg.Validate())
}

func TestValidateRejectsLowpassAboveNyquist(t *testing.T) {
	cfg := Default()
	cfg.SampleRate = 8000
	cfg.LowpassFreq = 20000

	require.Error(t, cfg.Validate())
}

func TestOpusBitrateAccessors(t *testing.T) {
	cfg := Default()
	cfg.SetOpusBitrate(24000)
	assert.Equal(t, 24000, cfg.GetOpusBitrate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.yaml")

	cfg := Default()
	cfg.RMSTargetDB = -18
	cfg.Opus.BitrateBps = 16000

	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadAppliesDefaultsToPartialDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rms_target_db: -15\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, -15.0, cfg.RMSTargetDB)
	assert.Equal(t, Default().GainDB, cfg.GainDB)
}
