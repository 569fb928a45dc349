// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/wavrec/internal/audiotest"
)

func TestMonoMixer_MonoPassthrough(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewConstantSource(8000, 1, 100, 0.5))

	if mixer.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", mixer.Channels())
	}

	buf := make([]float32, 10)
	n, err := mixer.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 10 {
		t.Errorf("ReadSamples() n = %d, want 10", n)
	}
	for i := range n {
		if buf[i] != 0.5 {
			t.Errorf("buf[%d] = %v, want 0.5", i, buf[i])
		}
	}
}

func TestMonoMixer_Average(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []float32
		want   float32
	}{
		{"stereo", []float32{0.4, 0.6}, 0.5},
		{"stereo opposite", []float32{1, -1}, 0},
		{"three channels", []float32{0.3, 0.6, 0.9}, 0.6},
		{"5.1", []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.5}, 1.0 / 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mixer := NewMonoMixer(audiotest.NewChannelSource(8000, 100, tt.values...))

			buf := make([]float32, 10)
			n, err := mixer.ReadSamples(buf)
			if err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if n != 10 {
				t.Fatalf("ReadSamples() n = %d, want 10", n)
			}
			for i := range n {
				if math.Abs(float64(buf[i]-tt.want)) > 1e-6 {
					t.Errorf("buf[%d] = %v, want %v", i, buf[i], tt.want)
				}
			}
		})
	}
}

func TestMonoMixer_EOF(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewSilentSource(8000, 2, 15))
	buf := make([]float32, 10)

	n, err := mixer.ReadSamples(buf)
	if n != 10 || err != nil {
		t.Fatalf("first ReadSamples() = (%d, %v), want (10, nil)", n, err)
	}

	n, err = mixer.ReadSamples(buf)
	if n != 5 || err != io.EOF {
		t.Errorf("second ReadSamples() = (%d, %v), want (5, EOF)", n, err)
	}

	n, err = mixer.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after end = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestMonoMixer_EmptyBuffer(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewSilentSource(8000, 2, 100))

	if n, err := mixer.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestMonoMixer_SourceError(t *testing.T) {
	t.Parallel()

	errBroken := errors.New("broken")
	src := audiotest.NewSilentSource(8000, 2, 100)
	src.Err, src.FailAt = errBroken, 0

	_, err := NewMonoMixer(src).ReadSamples(make([]float32, 4))
	if !errors.Is(err, errBroken) {
		t.Errorf("ReadSamples() error = %v, want %v", err, errBroken)
	}
}

func TestMonoMixer_PreservesRate(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewSilentSource(44100, 2, 100))
	if mixer.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", mixer.SampleRate())
	}
}

func TestMonoMixer_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 2, 100)
	if err := NewMonoMixer(src).Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if src.Closed != 1 {
		t.Errorf("source closed %d times, want 1", src.Closed)
	}
}

func TestMonoMixer_SmallReads(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewRampSource(8000, 2, 50, 1))
	buf := make([]float32, 3)

	var got []float32
	for {
		n, err := mixer.ReadSamples(buf)
		got = append(got, buf[:n]...)
		if err != nil {
			break
		}
	}

	if len(got) != 50 {
		t.Fatalf("read %d samples, want 50", len(got))
	}
	for i, v := range got {
		if v != float32(i) {
			t.Errorf("got[%d] = %v, want %d", i, v, i)
		}
	}
}

func TestMonoMixer_SplitFrames(t *testing.T) {
	t.Parallel()

	var data []float32
	for f := range 6 {
		data = append(data, float32(2*f), 0)
	}
	mixer := NewMonoMixer(&audiotest.SliceSource{Rate: 8000, Chans: 2, Data: data, PerRead: 3})

	var got []float32
	buf := make([]float32, 2)
	for range 100 {
		n, err := mixer.ReadSamples(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	want := []float32{0, 1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("read %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMonoMixer_TrailingPartialFrame(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(&audiotest.SliceSource{
		Rate: 8000, Chans: 2, Data: []float32{1, 1, 0.5, 0.5, 1}, PerRead: 5,
	})

	buf := make([]float32, 8)
	n, err := mixer.ReadSamples(buf)
	if n != 2 {
		t.Errorf("ReadSamples() n = %d, want 2", n)
	}
	if !errors.Is(err, ErrPartialFrame) {
		t.Errorf("ReadSamples() error = %v, want %v", err, ErrPartialFrame)
	}
}

func BenchmarkMonoMixer_StereoToMono(b *testing.B) {
	buf := make([]float32, 4096)
	for b.Loop() {
		mixer := NewMonoMixer(audiotest.NewSilentSource(44100, 2, 44100))
		for {
			if _, err := mixer.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
