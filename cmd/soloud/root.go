// SPDX-License-Identifier: EPL-2.0

package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries what every subcommand needs once the root has resolved its
// configuration.
type app struct {
	v          *viper.Viper
	configFile string
	settings   settings
	log        *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: newConfig()}

	root := &cobra.Command{
		Use:   "soloud",
		Short: "Inspect audio files and render engine sources offline",
		Long: `soloud drives the engine without an audio device. It reports the
length of audio files and renders noise, tones or files, optionally through
bass boost and echo filters, into 16-bit PCM WAV.

Engine settings come from flags, SOLOUD_* environment variables or
soloud.yaml in the working directory, in that order of precedence.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup(stderr),
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: ./soloud.yaml)")
	bindFlags(root, a.v)

	root.AddCommand(
		newInfoCmd(a),
		newRenderCmd(a),
		newParamsCmd(),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup(stderr io.Writer) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := readConfig(a.v, a.configFile); err != nil {
			return err
		}
		s, err := loadSettings(a.v)
		if err != nil {
			return err
		}
		a.settings = s
		a.log = s.logger(stderr)
		a.log.Debug("configuration loaded",
			"config", a.v.ConfigFileUsed(),
			"sample_rate", s.SampleRate,
			"buffer_size", s.BufferSize,
			"clip_roundoff", s.ClipRoundoff,
		)
		return nil
	}
}
