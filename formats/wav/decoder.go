// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"
	"github.com/ik5/wavrec/audio"
	"github.com/ik5/wavrec/internal/pcmsource"
)

// Decoder reads PCM WAV files of 8, 16, 24 or 32 bits. Chunks other than
// fmt and data are skipped, so files carrying LIST or other metadata are
// accepted.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio needs to seek between chunks
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	if err := checkRIFFWave(rs); err != nil {
		return nil, err
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if dec.WavAudioFormat != AudioFormatPCM {
		return nil, ErrOnlyPCMSupported
	}
	if !pcmsource.SupportedBitDepth(int(dec.BitDepth)) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	return pcmsource.New(dec, int(dec.SampleRate), int(dec.NumChans), int(dec.BitDepth), true), nil
}

// checkRIFFWave peeks at the RIFF descriptor and rewinds. go-audio accepts
// any RIFF form type.
func checkRIFFWave(rs io.ReadSeeker) error {
	start, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("locating wav data: %w", err)
	}

	var id [12]byte
	if _, err := io.ReadFull(rs, id[:]); err != nil {
		return ErrNotWavFile
	}
	if string(id[0:4]) != tagRIFF || string(id[8:12]) != tagWAVE {
		return ErrNotWavFile
	}

	if _, err := rs.Seek(start, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding wav data: %w", err)
	}

	return nil
}
