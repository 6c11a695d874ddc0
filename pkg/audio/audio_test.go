package audio

import (
	"encoding/binary"
	"math"
	"testing"
	"time"
)

// sine returns one second of a full-scale-scaled sine wave at the given
// amplitude (0..1), mono 16-bit little-endian at the given rate.
func sine(rate int, amplitude float64) []byte {
	data := make([]byte, rate*2)
	for i := 0; i < rate; i++ {
		s := amplitude * 32767 * math.Sin(2*math.Pi*440*float64(i)/float64(rate))
		binary.LittleEndian.PutUint16(data[i*2:], uint16(int16(s)))
	}
	return data
}

func TestClipDuration(t *testing.T) {
	tests := []struct {
		name   string
		bytes  int
		format Format
		want   time.Duration
	}{
		{"one second mono 44100", 44100 * 2, Format{SampleRate: 44100}, time.Second},
		{"half second mono 16000", 16000, Format{SampleRate: 16000}, 500 * time.Millisecond},
		{"one second stereo 48000", 48000 * 4, Format{SampleRate: 48000, Stereo: true}, time.Second},
		{"empty clip", 0, Format{SampleRate: 44100}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clip, err := NewClip(make([]byte, tc.bytes), tc.format)
			if err != nil {
				t.Fatalf("NewClip error: %v", err)
			}
			if got := clip.Duration(); got != tc.want {
				t.Errorf("Duration() = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestNewClipTruncatesPartialFrame(t *testing.T) {
	clip, err := NewClip(make([]byte, 7), Format{SampleRate: 44100, Stereo: true})
	if err != nil {
		t.Fatalf("NewClip error: %v", err)
	}
	if len(clip.Data) != 4 {
		t.Errorf("len(Data) = %d; want 4", len(clip.Data))
	}
}

func TestNewClipRejectsInvalidRate(t *testing.T) {
	if _, err := NewClip(nil, Format{}); err == nil {
		t.Fatal("NewClip accepted zero sample rate")
	}
}

func TestDBFSSilence(t *testing.T) {
	clip, err := NewClip(make([]byte, 1000), Format{SampleRate: 44100})
	if err != nil {
		t.Fatalf("NewClip error: %v", err)
	}
	if got := clip.DBFS(); !math.IsInf(got, -1) {
		t.Errorf("DBFS() of silence = %v; want -Inf", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		amplitude float64
	}{
		{"quiet clip boosted", 0.01},
		{"loud clip attenuated", 0.9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clip, err := NewClip(sine(44100, tc.amplitude), Format{SampleRate: 44100})
			if err != nil {
				t.Fatalf("NewClip error: %v", err)
			}
			clip.Normalize(NormalizeTarget)
			got := clip.DBFS()
			if math.Abs(got-NormalizeTarget) > 0.5 {
				t.Errorf("DBFS() after Normalize = %.2f; want %.2f +-0.5",
					got, NormalizeTarget)
			}
		})
	}
}

func TestNormalizeSilenceUnchanged(t *testing.T) {
	data := make([]byte, 1000)
	clip, err := NewClip(data, Format{SampleRate: 44100})
	if err != nil {
		t.Fatalf("NewClip error: %v", err)
	}
	clip.Normalize(NormalizeTarget)
	for i, b := range clip.Data {
		if b != 0 {
			t.Fatalf("Data[%d] = %d after normalizing silence; want 0", i, b)
		}
	}
}

func TestApplyGainClamps(t *testing.T) {
	data := make([]byte, 2)
	binary.LittleEndian.PutUint16(data, uint16(int16(30000)))
	clip, err := NewClip(data, Format{SampleRate: 44100})
	if err != nil {
		t.Fatalf("NewClip error: %v", err)
	}
	clip.ApplyGain(20) // x10, far past full scale
	got := int16(binary.LittleEndian.Uint16(clip.Data))
	if got != 32767 {
		t.Errorf("sample after clipping gain = %d; want 32767", got)
	}
}
