// Command voiceclean exposes the core's two external interfaces over
// files on disk: cleaning a WAV recording through the DSP pipeline,
// and encoding a WAV recording to Ogg Opus.
package main

import (
	"fmt"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"

	"github.com/pttmesh/voicecore/config"
	"github.com/pttmesh/voicecore/dsp"
	"github.com/pttmesh/voicecore/opusenc"
	"github.com/pttmesh/voicecore/pcmio"
)

var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	Prefix: "voiceclean",
})

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "process":
		err = runProcess(args)
	case "encode":
		err = runEncode(args)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Error("command failed", "cmd", cmd, "err", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: voiceclean <process|encode> [flags]")
}

func runProcess(args []string) error {
	fs := pflag.NewFlagSet("process", pflag.ExitOnError)
	input := fs.StringP("input", "i", "", "input WAV path")
	output := fs.StringP("output", "o", "", "output WAV path (default: timestamped)")
	configPath := fs.String("config", "", "optional YAML configuration path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return fmt.Errorf("process: -input is required")
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if *output == "" {
		*output = defaultOutputName("voice-cleaned-%Y%m%d-%H%M%S.wav")
	}

	buf, err := pcmio.ReadWAV(*input)
	if err != nil {
		return err
	}
	logger.Info("read input", "path", *input, "frames", buf.Frames(), "rate", buf.SampleRate, "channels", buf.Channels)

	start := time.Now()
	out, report, err := dsp.ProcessWithReport(buf, cfg)
	if err != nil {
		return err
	}
	logger.Info("pipeline complete", "elapsed", time.Since(start), "cfg", cfg.String())
	for _, stage := range report.Stages {
		logger.Debug("stage", "name", stage.Name, "enabled", stage.Enabled, "elapsed", stage.Duration, "rms_before_db", stage.RMSBeforeDB, "rms_after_db", stage.RMSAfterDB)
	}

	if err := pcmio.WriteWAV(*output, out); err != nil {
		return err
	}
	logger.Info("wrote output", "path", *output)
	return nil
}

func runEncode(args []string) error {
	fs := pflag.NewFlagSet("encode", pflag.ExitOnError)
	input := fs.StringP("input", "i", "", "input WAV path")
	output := fs.StringP("output", "o", "", "output Opus path (default: timestamped)")
	bitrate := fs.Int("bitrate", 12000, "Opus bitrate in bits per second")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return fmt.Errorf("encode: -input is required")
	}
	if *output == "" {
		*output = defaultOutputName("voice-%Y%m%d-%H%M%S.opus")
	}

	start := time.Now()
	if err := opusenc.EncodeWAVToOpus(*input, *output, *bitrate); err != nil {
		return err
	}

	info, statErr := os.Stat(*output)
	var size int64
	if statErr == nil {
		size = info.Size()
	}
	logger.Info("encoded opus", "path", *output, "elapsed", time.Since(start), "bytes", size, "bitrate_bps", *bitrate)
	return nil
}

func defaultOutputName(pattern string) string {
	name, err := strftime.Format(pattern, time.Now())
	if err != nil {
		return "voice-output"
	}
	return name
}
