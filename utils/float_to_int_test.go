// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestQuantize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		bits  int
		want  int32
	}{
		{"zero", 0, 16, 0},
		{"full scale 16", 1, 16, 32767},
		{"negative full scale 16", -1, 16, -32767},
		{"half 16", 0.5, 16, 16383},
		{"clip high", 1.5, 16, 32767},
		{"clip low", -2, 16, -32767},
		{"full scale 8", 1, 8, 127},
		{"negative 8", -1, 8, -127},
		{"full scale 24", 1, 24, 8388607},
		{"full scale 32", 1, 32, math.MaxInt32},
		{"negative 32", -1, 32, -math.MaxInt32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Quantize(tt.input, tt.bits); got != tt.want {
				t.Errorf("Quantize(%v, %d) = %d, want %d", tt.input, tt.bits, got, tt.want)
			}
		})
	}
}

func TestQuantize_SymmetricAndMonotonic(t *testing.T) {
	t.Parallel()

	prev := Quantize(-1, 16)
	for f := -1.0; f <= 1.0; f += 0.001 {
		x := float32(f)
		curr := Quantize(x, 16)
		if curr < prev {
			t.Fatalf("Quantize(%v) = %d < previous %d", x, curr, prev)
		}
		prev = curr

		if pos, neg := Quantize(x, 16), Quantize(-x, 16); pos != -neg {
			t.Fatalf("Quantize(%v) = %d, Quantize(%v) = %d, want symmetric", x, pos, -x, neg)
		}
	}
}

func TestPutPCM(t *testing.T) {
	t.Parallel()

	src := []float32{0, 1, -1, 0.5}

	tests := []struct {
		bits int
		want []byte
	}{
		{8, []byte{128, 255, 1, 191}},
		{16, []byte{0, 0, 0xff, 0x7f, 0x01, 0x80, 0xff, 0x3f}},
		{24, []byte{0, 0, 0, 0xff, 0xff, 0x7f, 0x01, 0x00, 0x80, 0xff, 0xff, 0x3f}},
		{32, []byte{
			0, 0, 0, 0,
			0xff, 0xff, 0xff, 0x7f,
			0x01, 0x00, 0x00, 0x80,
			0xff, 0xff, 0xff, 0x3f,
		}},
	}

	for _, tt := range tests {
		dst := make([]byte, len(src)*tt.bits/8)
		n, err := PutPCM(dst, src, tt.bits)
		if err != nil {
			t.Errorf("PutPCM(%d bits) error = %v", tt.bits, err)
			continue
		}
		if n != len(tt.want) {
			t.Errorf("PutPCM(%d bits) n = %d, want %d", tt.bits, n, len(tt.want))
		}
		if !bytes.Equal(dst, tt.want) {
			t.Errorf("PutPCM(%d bits) = % x, want % x", tt.bits, dst, tt.want)
		}
	}
}

func TestPutPCM_Errors(t *testing.T) {
	t.Parallel()

	for _, bits := range []int{0, 12, 64} {
		if _, err := PutPCM(make([]byte, 64), []float32{0}, bits); !errors.Is(err, ErrUnsupportedBitDepth) {
			t.Errorf("PutPCM(%d bits) error = %v, want %v", bits, err, ErrUnsupportedBitDepth)
		}
	}

	if _, err := PutPCM(make([]byte, 3), []float32{0, 0}, 16); err == nil {
		t.Error("PutPCM() with short dst error = nil, want error")
	}
}

func TestPutPCM_ZeroAllocs(t *testing.T) {
	src := make([]float32, 1024)
	dst := make([]byte, 2048)

	allocs := testing.AllocsPerRun(100, func() {
		_, _ = PutPCM(dst, src, 16)
	})
	if allocs != 0 {
		t.Errorf("PutPCM() allocates %v times per run, want 0", allocs)
	}
}

func BenchmarkPutPCM16(b *testing.B) {
	src := make([]float32, 4096)
	for i := range src {
		src[i] = float32(math.Sin(float64(i) * 0.01))
	}
	dst := make([]byte, len(src)*2)

	for b.Loop() {
		_, _ = PutPCM(dst, src, 16)
	}
}
