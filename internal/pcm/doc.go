// SPDX-License-Identifier: EPL-2.0

// Package pcm provides the sample-stream primitives the engine renders from.
//
// Everything here works on interleaved float32 samples in [-1.0, 1.0]:
//   - Source is a pull-based stream of samples at a fixed rate and channel count
//   - Registry maps sniffed file headers to a Decoder producing a Source
//   - Resampler converts a Source to another rate with cubic interpolation
//   - MonoMixer folds a multi-channel Source down to one channel
//
// # Reading
//
// Sources return io.EOF when no more data is available:
//
//	for {
//	    n, err := src.ReadSamples(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
//
// # Decoders
//
// Decoders register with a magic-byte matcher so the engine can pick one from
// the first bytes of a file or memory buffer:
//
//	reg := pcm.NewRegistry()
//	reg.Register("wav", wav.Match, wav.Decoder{})
//	name, dec, ok := reg.Detect(header)
package pcm
