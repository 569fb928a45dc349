// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample stream types that feed a recording.
//
// This package contains:
//   - Source interface for audio input
//   - MonoMixer for channel mixing
//   - ToneSource, a sine generator
//   - Format registry for decoder registration
//
// # Source Interface
//
// The Source interface is the foundation of a recording pipeline:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// Decoders in the formats subpackages and the processors here implement
// it, so they can be chained before the samples are quantised and written.
//
// # Channel Mixing
//
// The MonoMixer converts multi-channel audio to mono by averaging:
//
//	mono := audio.NewMonoMixer(source)
//	buf := make([]float32, 4096)
//	n, err := mono.ReadSamples(buf)
//
// # Tones
//
// NewToneSource produces a fixed number of frames of a sine wave, handy
// for test recordings:
//
//	tone, err := audio.NewToneSource(8000, 1, 440, 0.5, 8000) // one second
//
// # Format Registry
//
// The registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.Lookup("take1.WAV")
//
// # Sample Format
//
// Audio samples are represented as float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
//
// Multi-channel audio is interleaved: [L, R, L, R, ...] for stereo.
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // process n samples from buf first
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
