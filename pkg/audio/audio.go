// Package audio provides PCM clip handling for synthesized speech: duration
// arithmetic, loudness measurement, and normalization to a target level.
//
// Clips are 16-bit signed little-endian samples, the format requested from
// the speech synthesizer.
package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// NormalizeTarget is the loudness level speech clips are normalized to
// before playback.
const NormalizeTarget = -20.0 // dBFS

// Format describes the sample layout of a clip. Samples are always 16-bit
// signed little-endian integers.
type Format struct {
	// SampleRate is the sample rate in Hz (e.g. 44100).
	SampleRate int

	// Stereo indicates stereo (2 channels) if true, mono (1 channel) if false.
	Stereo bool
}

// Channels returns the number of audio channels.
func (f Format) Channels() int {
	if f.Stereo {
		return 2
	}
	return 1
}

// BytesPerFrame returns the number of bytes per sample frame.
func (f Format) BytesPerFrame() int {
	return 2 * f.Channels()
}

// Clip is a fully buffered PCM16 audio clip.
type Clip struct {
	// Data holds interleaved 16-bit little-endian samples.
	Data []byte

	// Format describes the sample layout of Data.
	Format Format
}

// NewClip builds a clip, truncating trailing bytes that do not fill a whole
// sample frame.
func NewClip(data []byte, format Format) (*Clip, error) {
	if format.SampleRate <= 0 {
		return nil, fmt.Errorf("audio: invalid sample rate %d", format.SampleRate)
	}
	fb := format.BytesPerFrame()
	return &Clip{Data: data[:len(data)/fb*fb], Format: format}, nil
}

// Duration returns the playback duration of the clip.
func (c *Clip) Duration() time.Duration {
	frames := len(c.Data) / c.Format.BytesPerFrame()
	return time.Duration(frames) * time.Second / time.Duration(c.Format.SampleRate)
}

// DBFS returns the RMS loudness of the clip in dB relative to full scale.
// A silent clip returns negative infinity.
func (c *Clip) DBFS() float64 {
	n := len(c.Data) / 2
	if n == 0 {
		return math.Inf(-1)
	}
	var sum float64
	for i := 0; i < n; i++ {
		s := float64(int16(binary.LittleEndian.Uint16(c.Data[i*2:])))
		sum += s * s
	}
	rms := math.Sqrt(sum / float64(n))
	if rms == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(rms/32768.0)
}

// ApplyGain scales every sample by the given gain in dB, clamping at full
// scale, and returns the receiver.
func (c *Clip) ApplyGain(db float64) *Clip {
	scale := math.Pow(10, db/20)
	n := len(c.Data) / 2
	for i := 0; i < n; i++ {
		s := float64(int16(binary.LittleEndian.Uint16(c.Data[i*2:]))) * scale
		switch {
		case s > 32767:
			s = 32767
		case s < -32768:
			s = -32768
		}
		binary.LittleEndian.PutUint16(c.Data[i*2:], uint16(int16(s)))
	}
	return c
}

// Normalize adjusts the clip gain so its RMS loudness matches targetDBFS.
// Silent clips are left untouched.
func (c *Clip) Normalize(targetDBFS float64) *Clip {
	current := c.DBFS()
	if math.IsInf(current, -1) {
		return c
	}
	return c.ApplyGain(targetDBFS - current)
}
