package player

import (
	"encoding/binary"

	resampling "github.com/tphakala/go-audio-resampling"

	"github.com/offbeam/narrator/pkg/audio"
)

// toDeviceRate converts a clip to mono PCM16 at the given rate. Stereo
// input is downmixed by averaging channels before resampling.
func toDeviceRate(clip *audio.Clip, rate int) ([]byte, error) {
	data := clip.Data
	if clip.Format.Stereo {
		data = downmix(data)
	}
	if clip.Format.SampleRate == rate {
		return data, nil
	}

	rs, err := resampling.New(&resampling.Config{
		InputRate:  float64(clip.Format.SampleRate),
		OutputRate: float64(rate),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, err
	}

	samples := make([]float64, len(data)/2)
	for i := range samples {
		samples[i] = float64(int16(binary.LittleEndian.Uint16(data[i*2:]))) / 32768.0
	}

	out, err := rs.Process(samples)
	if err != nil {
		return nil, err
	}

	result := make([]byte, len(out)*2)
	for i, s := range out {
		switch {
		case s > 1.0:
			s = 1.0
		case s < -1.0:
			s = -1.0
		}
		binary.LittleEndian.PutUint16(result[i*2:], uint16(int16(s*32767.0)))
	}
	return result, nil
}

// downmix averages interleaved stereo PCM16 into mono.
func downmix(data []byte) []byte {
	frames := len(data) / 4
	out := make([]byte, frames*2)
	for i := 0; i < frames; i++ {
		l := int16(binary.LittleEndian.Uint16(data[i*4:]))
		r := int16(binary.LittleEndian.Uint16(data[i*4+2:]))
		m := int16((int32(l) + int32(r)) / 2)
		binary.LittleEndian.PutUint16(out[i*2:], uint16(m))
	}
	return out
}
