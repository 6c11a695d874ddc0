// Package player plays PCM16 clips on the default audio output device via
// PortAudio.
//
// Requires portaudio installed via pkg-config (brew install portaudio on
// macOS, libportaudio-dev on Debian).
//
// The player holds at most one loaded clip. Play hands the clip to a writer
// goroutine and returns; callers track completion through the clip duration,
// not through a playback-finished signal.
package player

/*
#cgo pkg-config: portaudio-2.0

#include <portaudio.h>

// Wrapper functions using void* to avoid CGO type issues with PaStream
static PaError pa_open_default_output(void **stream, int channels,
                                      double sampleRate, unsigned long framesPerBuffer) {
    return Pa_OpenDefaultStream((PaStream**)stream, 0, channels, paInt16,
                                sampleRate, framesPerBuffer, NULL, NULL);
}

static PaError pa_start_stream(void *stream) {
    return Pa_StartStream((PaStream*)stream);
}

static PaError pa_stop_stream(void *stream) {
    return Pa_StopStream((PaStream*)stream);
}

static PaError pa_close_stream(void *stream) {
    return Pa_CloseStream((PaStream*)stream);
}

static PaError pa_write_stream(void *stream, const void *buffer, unsigned long frames) {
    return Pa_WriteStream((PaStream*)stream, buffer, frames);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	"github.com/offbeam/narrator/pkg/audio"
)

const (
	// deviceRate is the fixed output stream sample rate. Clips at other
	// rates are resampled on Load.
	deviceRate = 48000

	// framesPerBuffer is the PortAudio write granularity.
	framesPerBuffer = 1024
)

var (
	initOnce sync.Once
	initErr  error
)

// paError converts a PortAudio error code to a Go error.
func paError(code C.PaError) error {
	if code == C.paNoError {
		return nil
	}
	return errors.New(C.GoString(C.Pa_GetErrorText(code)))
}

// initialize initializes the PortAudio library once.
func initialize() error {
	initOnce.Do(func() {
		initErr = paError(C.Pa_Initialize())
	})
	return initErr
}

// Player plays one clip at a time on the default output device.
type Player struct {
	mu     sync.Mutex
	stream unsafe.Pointer
	loaded []byte // mono PCM16 at deviceRate, pending playback
	closed bool
}

// New opens the default output device.
func New() (*Player, error) {
	if err := initialize(); err != nil {
		return nil, fmt.Errorf("player: portaudio init: %w", err)
	}

	p := &Player{}
	code := C.pa_open_default_output(&p.stream, 1, C.double(deviceRate), C.ulong(framesPerBuffer))
	if err := paError(code); err != nil {
		return nil, fmt.Errorf("player: open output stream: %w", err)
	}
	if err := paError(C.pa_start_stream(p.stream)); err != nil {
		C.pa_close_stream(p.stream)
		return nil, fmt.Errorf("player: start output stream: %w", err)
	}
	return p, nil
}

// Load prepares a clip for the next Play call, resampling it to the device
// rate if necessary. Loading replaces any previously loaded clip.
func (p *Player) Load(clip *audio.Clip) error {
	data, err := toDeviceRate(clip, deviceRate)
	if err != nil {
		return fmt.Errorf("player: resample clip: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errors.New("player: closed")
	}
	p.loaded = data
	return nil
}

// Play starts playback of the loaded clip and returns. Returning does not
// mean playback has finished; the caller waits out the clip duration.
func (p *Player) Play() {
	p.mu.Lock()
	data := p.loaded
	p.loaded = nil
	p.mu.Unlock()

	if len(data) == 0 {
		return
	}
	go p.write(data)
}

// write feeds the clip to the output stream in buffer-sized chunks. The
// mutex is held per chunk so Close cannot tear the stream down mid-write.
func (p *Player) write(data []byte) {
	const chunkBytes = framesPerBuffer * 2
	for off := 0; off < len(data); off += chunkBytes {
		end := min(off+chunkBytes, len(data))
		chunk := data[off:end]

		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			return
		}
		code := C.pa_write_stream(p.stream, unsafe.Pointer(&chunk[0]), C.ulong(len(chunk)/2))
		p.mu.Unlock()

		// Output underflow is routine when the pipeline pauses between
		// turns; anything else ends this clip.
		if code != C.paNoError && code != C.paOutputUnderflowed {
			slog.Warn("player: write failed", "error", paError(code))
			return
		}
	}
}

// Close stops and closes the output stream.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	var errs []error
	if err := paError(C.pa_stop_stream(p.stream)); err != nil {
		errs = append(errs, err)
	}
	if err := paError(C.pa_close_stream(p.stream)); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
