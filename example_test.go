// SPDX-License-Identifier: EPL-2.0

package soloud_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/ik5/soloud"
)

func ExampleFromCode() {
	fmt.Println(soloud.FromCode(2))
	fmt.Println(soloud.FromCode(99))
	// Output:
	// FileNotFound
	// UnknownError
}

func ExampleWavStream_Load() {
	w, err := soloud.NewWavStream()
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	err = w.Load("/does/not/exist.ogg")
	fmt.Println(err)
	fmt.Println(errors.Is(err, soloud.FileNotFound))

	err = w.Load("bad\x00name.wav")
	var e *soloud.Error
	if errors.As(err, &e) {
		fmt.Println(e.Class)
	}
	// Output:
	// An internal error occurred: FileNotFound
	// true
	// encoding
}

func ExampleParams() {
	echo, err := soloud.NewEchoFilter()
	if err != nil {
		log.Fatal(err)
	}
	defer echo.Close()

	for _, p := range soloud.Params(echo) {
		fmt.Printf("%d %s %s [%g, %g]\n", p.Index, p.Name, p.Type, p.Min, p.Max)
	}
	// Output:
	// 0 Wet float [0, 1]
	// 1 Delay float [0, 10]
	// 2 Decay float [0, 1]
	// 3 Filter float [0, 1]
}

func ExampleSoloud_Render() {
	engine, err := soloud.New()
	if err != nil {
		log.Fatal(err)
	}
	defer engine.Close()

	if err := engine.Init(soloud.ClipRoundoff, soloud.WithSampleRate(8000)); err != nil {
		log.Fatal(err)
	}

	noise, err := soloud.NewNoise()
	if err != nil {
		log.Fatal(err)
	}
	defer noise.Close()
	noise.SetType(soloud.Pink)
	noise.SetVolume(0.5)

	engine.Play(noise)
	buf, err := engine.Render(0.5)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(len(buf), engine.ActiveVoiceCount())
	// Output: 8000 1
}
