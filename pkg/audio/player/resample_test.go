package player

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/offbeam/narrator/pkg/audio"
)

func TestDownmix(t *testing.T) {
	// One stereo frame: L=1000, R=3000 -> mono 2000.
	data := make([]byte, 4)
	binary.LittleEndian.PutUint16(data[0:], uint16(int16(1000)))
	binary.LittleEndian.PutUint16(data[2:], uint16(int16(3000)))

	out := downmix(data)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d; want 2", len(out))
	}
	if got := int16(binary.LittleEndian.Uint16(out)); got != 2000 {
		t.Errorf("downmixed sample = %d; want 2000", got)
	}
}

func TestToDeviceRatePassthrough(t *testing.T) {
	clip, err := audio.NewClip(make([]byte, deviceRate*2), audio.Format{SampleRate: deviceRate})
	if err != nil {
		t.Fatalf("NewClip error: %v", err)
	}
	out, err := toDeviceRate(clip, deviceRate)
	if err != nil {
		t.Fatalf("toDeviceRate error: %v", err)
	}
	if len(out) != len(clip.Data) {
		t.Errorf("len(out) = %d; want %d (no resampling needed)", len(out), len(clip.Data))
	}
}

func TestToDeviceRateResamples(t *testing.T) {
	// Half a second at 44100 should come out near half a second at 48000.
	src := make([]byte, 44100) // 22050 samples
	for i := 0; i < len(src)/2; i++ {
		s := 0.3 * 32767 * math.Sin(2*math.Pi*440*float64(i)/44100)
		binary.LittleEndian.PutUint16(src[i*2:], uint16(int16(s)))
	}
	clip, err := audio.NewClip(src, audio.Format{SampleRate: 44100})
	if err != nil {
		t.Fatalf("NewClip error: %v", err)
	}

	out, err := toDeviceRate(clip, deviceRate)
	if err != nil {
		t.Fatalf("toDeviceRate error: %v", err)
	}

	wantSamples := 24000
	gotSamples := len(out) / 2
	if math.Abs(float64(gotSamples-wantSamples)) > float64(wantSamples)/100 {
		t.Errorf("resampled to %d samples; want about %d", gotSamples, wantSamples)
	}
}
