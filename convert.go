// SPDX-License-Identifier: EPL-2.0

package wavrec

import (
	"context"
	"fmt"
	"os"

	"github.com/ik5/wavrec/audio"
	"github.com/ik5/wavrec/formats/aiff"
	"github.com/ik5/wavrec/formats/mp3"
	"github.com/ik5/wavrec/formats/vorbis"
	"github.com/ik5/wavrec/formats/wav"
	"github.com/ik5/wavrec/recorder"
)

// NewRegistry returns a registry holding every bundled decoder, keyed by
// file extension.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})

	return r
}

// Converter decodes audio files and records them as WAV.
type Converter struct {
	// Registry picks the decoder by input extension. Nil means NewRegistry.
	Registry *audio.Registry
	// Writer is reused across conversions. Nil means a new Writer on the
	// operating system file system for every call.
	Writer *wav.Writer
}

// ConvertFile converts in to a new WAV file at out with a default
// Converter.
func ConvertFile(ctx context.Context, in, out string, opts recorder.Options) (recorder.Stats, error) {
	return (&Converter{}).ConvertFile(ctx, in, out, opts)
}

// ConvertFile decodes in and records it to out. out must not exist, and is
// removed again if the conversion fails.
func (c *Converter) ConvertFile(ctx context.Context, in, out string, opts recorder.Options) (recorder.Stats, error) {
	registry := c.Registry
	if registry == nil {
		registry = NewRegistry()
	}

	dec, err := registry.Lookup(in)
	if err != nil {
		return recorder.Stats{}, fmt.Errorf("%w", err)
	}

	f, err := os.Open(in)
	if err != nil {
		return recorder.Stats{}, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return recorder.Stats{}, fmt.Errorf("decoding %s: %w", in, err)
	}
	defer src.Close()

	w := c.Writer
	if w == nil {
		w = wav.NewWriter(wav.OSFS{}, opts.Logger)
	}

	stats, err := recorder.Record(ctx, src, w, out, opts)
	if err != nil {
		return recorder.Stats{}, fmt.Errorf("converting %s: %w", in, err)
	}

	return stats, nil
}
