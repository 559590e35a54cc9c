// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ik5/soloud"
)

const (
	configFileName = "soloud"
	configFileType = "yaml"
	envPrefix      = "SOLOUD"

	cfgKeySampleRate   = "sample_rate"
	cfgKeyBufferSize   = "buffer_size"
	cfgKeyClipRoundoff = "clip_roundoff"
	cfgKeyLogLevel     = "log_level"
	cfgKeyVolume       = "volume"
)

// settings is the resolved engine configuration.
type settings struct {
	SampleRate   uint32
	BufferSize   uint32
	ClipRoundoff bool
	LogLevel     slog.Level
	Volume       float32
}

// newConfig returns a viper instance with defaults and env overrides. The
// config file is read later, once flags are parsed.
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetDefault(cfgKeySampleRate, 44100)
	v.SetDefault(cfgKeyBufferSize, 2048)
	v.SetDefault(cfgKeyClipRoundoff, true)
	v.SetDefault(cfgKeyLogLevel, "warn")
	v.SetDefault(cfgKeyVolume, 1.0)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// bindFlags registers the persistent engine flags on cmd and binds them to v.
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	flags := cmd.PersistentFlags()
	flags.Uint32("sample-rate", 44100, "engine sample rate in Hz")
	flags.Uint32("buffer-size", 2048, "frames mixed per step")
	flags.Bool("clip-roundoff", true, "soft clip the mix instead of hard clipping")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.Float32("volume", 1, "global volume")

	for _, key := range []string{cfgKeySampleRate, cfgKeyBufferSize, cfgKeyClipRoundoff, cfgKeyLogLevel, cfgKeyVolume} {
		_ = v.BindPFlag(key, flags.Lookup(strings.ReplaceAll(key, "_", "-")))
	}
}

// readConfig loads path, or soloud.yaml from the working directory when path
// is empty. A missing default file is not an error.
func readConfig(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func loadSettings(v *viper.Viper) (settings, error) {
	s := settings{
		SampleRate:   v.GetUint32(cfgKeySampleRate),
		BufferSize:   v.GetUint32(cfgKeyBufferSize),
		ClipRoundoff: v.GetBool(cfgKeyClipRoundoff),
		Volume:       float32(v.GetFloat64(cfgKeyVolume)),
	}
	if err := s.LogLevel.UnmarshalText([]byte(v.GetString(cfgKeyLogLevel))); err != nil {
		return settings{}, fmt.Errorf("%s: %w", cfgKeyLogLevel, err)
	}
	if s.Volume < 0 {
		return settings{}, fmt.Errorf("%s: %w", cfgKeyVolume, ErrNegativeVolume)
	}
	return s, nil
}

func (s settings) flags() soloud.Flags {
	if s.ClipRoundoff {
		return soloud.ClipRoundoff
	}
	return 0
}

// setLibraryLogger receives the CLI logger so engine debug output lands in
// the same stream.
var setLibraryLogger = soloud.SetLogger

// logger builds the stderr text logger and hands it to the library.
func (s settings) logger(w io.Writer) *slog.Logger {
	l := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: s.LogLevel}))
	setLibraryLogger(l)
	return l
}

// newEngine initializes an offline engine from s.
func (s settings) newEngine() (*soloud.Soloud, error) {
	engine, err := soloud.New()
	if err != nil {
		return nil, err
	}
	err = engine.Init(s.flags(),
		soloud.WithSampleRate(s.SampleRate),
		soloud.WithBufferSize(s.BufferSize),
	)
	if err != nil {
		_ = engine.Close()
		return nil, err
	}
	engine.SetGlobalVolume(s.Volume)
	return engine, nil
}
