// SPDX-License-Identifier: EPL-2.0

// Package soloud is a typed object model over an audio engine that is only
// reachable through raw handles and integer status codes.
//
// Every concrete type owns exactly one engine object, created by its
// constructor and destroyed by Close:
//
//	noise, err := soloud.NewNoise()
//	if err != nil {
//		return err
//	}
//	defer noise.Close()
//
// Using a closed object panics: it is a lifetime bug, not an environmental
// failure.
//
// # Capabilities
//
// Behavior is grouped in three interfaces:
//   - AudioSource: volume, looping, 3D placement, filter slots and Stop.
//     Implemented by Noise, Tone, WavStream and Wav.
//   - LoadableSource: Load, LoadMem and LoadMemUnsafe. Implemented by
//     WavStream and Wav.
//   - Filter: parameter introspection. Implemented by BassboostFilter and
//     EchoFilter, which add a validated SetParams each.
//
// # Errors
//
// Fallible operations return *Error. Its Class says where the failure came
// from: ClassIO and ClassEncoding are local, ClassInternal carries the
// engine's ErrorKind and ClassUnknown a message. Kinds match with errors.Is:
//
//	if errors.Is(err, soloud.FileNotFound) {
//		// fix the path and retry
//	}
//
// # Mixing
//
// Soloud owns voices. It renders offline:
//
//	engine, _ := soloud.New()
//	defer engine.Close()
//	_ = engine.Init(soloud.ClipRoundoff, soloud.WithSampleRate(48000))
//	engine.Play(noise)
//	buf := make([]float32, 2*1024)
//	_ = engine.Mix(buf)
package soloud
