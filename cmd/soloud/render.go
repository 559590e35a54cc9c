// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/soloud"
	"github.com/ik5/soloud/internal/codec/wav"
	"github.com/ik5/soloud/internal/pcm"
)

const renderBufferSize = 4096

type renderOptions struct {
	source    string
	file      string
	noise     string
	waveform  string
	freq      float32
	bassboost float32
	echo      float32
	seconds   float64
	outRate   int
	output    string
}

func newRenderCmd(a *app) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a source to a mono 16-bit WAV file",
		Example: `  soloud render --source tone --waveform saw --freq 220 --seconds 1 -o saw.wav
  soloud render --source noise --noise pink --bassboost 4 -o rumble.wav
  soloud render --source file --file in.ogg --echo 0.25 --out-rate 8000 -o out.wav`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.render(opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", opts.output)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.source, "source", "tone", "source kind: noise, tone or file")
	flags.StringVar(&opts.file, "file", "", "audio file for the file source")
	flags.StringVar(&opts.noise, "noise", "white", "noise color: white, pink, brownish or blueish")
	flags.StringVar(&opts.waveform, "waveform", "sin", "tone waveform")
	flags.Float32Var(&opts.freq, "freq", 440, "tone frequency in Hz")
	flags.Float32Var(&opts.bassboost, "bassboost", 0, "bass boost amount in [0, 10], 0 disables")
	flags.Float32Var(&opts.echo, "echo", 0, "echo delay in seconds, 0 disables")
	flags.Float64Var(&opts.seconds, "seconds", 1, "duration to render")
	flags.IntVar(&opts.outRate, "out-rate", 0, "output sample rate, 0 keeps the engine rate")
	flags.StringVarP(&opts.output, "output", "o", "out.wav", "output WAV path")

	return cmd
}

func (a *app) render(opts renderOptions) error {
	if !(opts.seconds > 0) {
		return ErrBadDuration
	}

	src, err := openSource(opts)
	if err != nil {
		return err
	}
	defer src.Close()

	var filters []soloud.Filter
	defer func() {
		for _, f := range filters {
			_ = f.Close()
		}
	}()
	if opts.bassboost > 0 {
		f, err := soloud.NewBassboostFilter()
		if err != nil {
			return err
		}
		filters = append(filters, f)
		if err := f.SetParams(opts.bassboost); err != nil {
			return fmt.Errorf("bassboost: %w", err)
		}
	}
	if opts.echo > 0 {
		f, err := soloud.NewEchoFilter()
		if err != nil {
			return err
		}
		filters = append(filters, f)
		if err := f.SetParams(opts.echo, 0.5, 0); err != nil {
			return fmt.Errorf("echo: %w", err)
		}
	}
	for i, f := range filters {
		src.SetFilter(uint32(i), f)
	}

	engine, err := a.settings.newEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	if engine.Play(src) == 0 {
		return fmt.Errorf("play %s: %w", opts.source, soloud.InvalidParameter)
	}
	mix, err := engine.Render(opts.seconds)
	if err != nil {
		return err
	}

	rate := int(engine.SampleRate())
	outRate := opts.outRate
	if outRate <= 0 {
		outRate = rate
	}
	samples, err := pcm.ToMono16(pcm.NewSliceSource(mix, rate, int(engine.Channels())), outRate, renderBufferSize)
	if err != nil {
		return fmt.Errorf("downmix: %w", err)
	}

	out, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	if err := wav.WriteWAV16(out, outRate, samples); err != nil {
		_ = out.Close()
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	a.log.Info("rendered",
		"source", opts.source,
		"seconds", opts.seconds,
		"sample_rate", outRate,
		"samples", len(samples),
		"path", opts.output,
	)
	return out.Close()
}

func openSource(opts renderOptions) (soloud.AudioSource, error) {
	switch opts.source {
	case "noise":
		color, err := soloud.ParseNoiseType(opts.noise)
		if err != nil {
			return nil, err
		}
		n, err := soloud.NewNoise()
		if err != nil {
			return nil, err
		}
		n.SetType(color)
		return n, nil
	case "tone":
		shape, err := soloud.ParseWaveForm(opts.waveform)
		if err != nil {
			return nil, err
		}
		t, err := soloud.NewTone()
		if err != nil {
			return nil, err
		}
		t.SetWaveform(shape)
		if err := t.SetFrequency(opts.freq); err != nil {
			_ = t.Close()
			return nil, fmt.Errorf("tone: %w", err)
		}
		return t, nil
	case "file":
		if opts.file == "" {
			return nil, ErrMissingFile
		}
		w, err := soloud.NewWavStream()
		if err != nil {
			return nil, err
		}
		if err := w.Load(opts.file); err != nil {
			_ = w.Close()
			return nil, err
		}
		return w, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownSource, opts.source)
	}
}
