// SPDX-License-Identifier: EPL-2.0

// Package wav decodes RIFF/WAVE integer PCM through github.com/go-audio/wav
// and writes 16-bit PCM WAV files.
//
// Decoding supports 8, 16, 24 and 32-bit integer PCM with any channel count:
//
//	src, err := wav.Decoder{}.Decode(file)
//
// Writing produces a canonical 44-byte header followed by little-endian
// samples:
//
//	err := wav.WritePCM16(w, 44100, 2, interleaved)
package wav
