// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	// HeaderSize is the size of the canonical RIFF/WAVE header.
	HeaderSize = 44

	// MinRIFFSize is the RIFF size of a file holding no sample data. The
	// RIFF tag and size field are not counted.
	MinRIFFSize = HeaderSize - 8

	AudioFormatPCM = 1

	fmtChunkSize = 16

	// OffsetRIFFSize and OffsetDataSize locate the two fields patched when
	// a file is finalized.
	OffsetRIFFSize = 4
	OffsetDataSize = 40
)

const (
	tagRIFF = "RIFF"
	tagWAVE = "WAVE"
	tagFmt  = "fmt "
	tagData = "data"
)

// Header holds the variable fields of the canonical 44-byte header. The
// four chunk tags, the fmt chunk size and the PCM audio format are constant
// and are not represented.
type Header struct {
	RIFFSize      uint32
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataSize      uint32
}

// BuildHeader derives the header for an empty file in format f. f is
// expected to be valid, see Format.Validate.
func BuildHeader(f Format) Header {
	return Header{
		RIFFSize:      MinRIFFSize,
		Channels:      f.Channels,
		SampleRate:    f.SampleRate,
		ByteRate:      f.ByteRate(),
		BlockAlign:    f.BlockAlign(),
		BitsPerSample: f.BitsPerSample,
		DataSize:      0,
	}
}

// Format returns the stream format described by h.
func (h Header) Format() Format {
	return Format{
		Channels:      h.Channels,
		SampleRate:    h.SampleRate,
		BitsPerSample: h.BitsPerSample,
	}
}

// FileSize is the total length of the file h describes.
func (h Header) FileSize() int64 { return int64(h.RIFFSize) + 8 }

// Bytes encodes h in the on-disk layout: tags as literal ASCII, all
// numbers little-endian.
func (h Header) Bytes() [HeaderSize]byte {
	var b [HeaderSize]byte

	// RIFF chunk descriptor
	copy(b[0:4], tagRIFF)
	binary.LittleEndian.PutUint32(b[OffsetRIFFSize:OffsetRIFFSize+4], h.RIFFSize)
	copy(b[8:12], tagWAVE)

	// fmt sub-chunk
	copy(b[12:16], tagFmt)
	binary.LittleEndian.PutUint32(b[16:20], fmtChunkSize)
	binary.LittleEndian.PutUint16(b[20:22], AudioFormatPCM)
	binary.LittleEndian.PutUint16(b[22:24], h.Channels)
	binary.LittleEndian.PutUint32(b[24:28], h.SampleRate)
	binary.LittleEndian.PutUint32(b[28:32], h.ByteRate)
	binary.LittleEndian.PutUint16(b[32:34], h.BlockAlign)
	binary.LittleEndian.PutUint16(b[34:36], h.BitsPerSample)

	// data sub-chunk
	copy(b[36:40], tagData)
	binary.LittleEndian.PutUint32(b[OffsetDataSize:OffsetDataSize+4], h.DataSize)

	return b
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (h Header) MarshalBinary() ([]byte, error) {
	b := h.Bytes()
	return b[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (h *Header) UnmarshalBinary(data []byte) error {
	parsed, err := ParseHeader(data)
	if err != nil {
		return err
	}
	*h = parsed

	return nil
}

// ParseHeader decodes a canonical PCM header from the first HeaderSize
// bytes of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header is %d bytes, want %d",
			ErrNotWavFile, len(data), HeaderSize)
	}
	if string(data[0:4]) != tagRIFF || string(data[8:12]) != tagWAVE {
		return Header{}, ErrNotWavFile
	}
	if string(data[12:16]) != tagFmt || string(data[36:40]) != tagData ||
		binary.LittleEndian.Uint32(data[16:20]) != fmtChunkSize {
		return Header{}, ErrUnsupportedWavLayout
	}
	if binary.LittleEndian.Uint16(data[20:22]) != AudioFormatPCM {
		return Header{}, ErrOnlyPCMSupported
	}

	return Header{
		RIFFSize:      binary.LittleEndian.Uint32(data[OffsetRIFFSize : OffsetRIFFSize+4]),
		Channels:      binary.LittleEndian.Uint16(data[22:24]),
		SampleRate:    binary.LittleEndian.Uint32(data[24:28]),
		ByteRate:      binary.LittleEndian.Uint32(data[28:32]),
		BlockAlign:    binary.LittleEndian.Uint16(data[32:34]),
		BitsPerSample: binary.LittleEndian.Uint16(data[34:36]),
		DataSize:      binary.LittleEndian.Uint32(data[OffsetDataSize : OffsetDataSize+4]),
	}, nil
}

// ReadHeader reads and decodes a canonical header from r.
func ReadHeader(r io.Reader) (Header, error) {
	var b [HeaderSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return Header{}, fmt.Errorf("reading header: %w", err)
	}

	return ParseHeader(b[:])
}

// fits reports whether n more data bytes keep the RIFF size within 32 bits.
func (h Header) fits(n uint64) bool {
	return uint64(h.RIFFSize)+n <= math.MaxUint32
}

// grow accounts for n appended data bytes. Both sizes move together so
// that RIFFSize == MinRIFFSize + DataSize holds in memory.
func (h *Header) grow(n uint32) {
	h.DataSize += n
	h.RIFFSize += n
}

// putSize overwrites the 32-bit size field at off.
func putSize(ws io.WriteSeeker, off int64, v uint32) error {
	if _, err := ws.Seek(off, io.SeekStart); err != nil {
		return fmt.Errorf("seek to %d: %w", off, err)
	}

	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	if _, err := writeFull(ws, b[:]); err != nil {
		return fmt.Errorf("write at %d: %w", off, err)
	}

	return nil
}

// writeFull writes p and turns a silent short write into io.ErrShortWrite.
func writeFull(w io.Writer, p []byte) (int, error) {
	n, err := w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}

	return n, err
}
