// Package capture produces the perception snapshots the commentary reacts
// to: a webcam frame and a screen grab, as encoded image blobs.
package capture

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Image is an encoded image blob with a verified image MIME type.
type Image struct {
	Data []byte
	MIME string
}

// NewImage validates that data is a recognizable encoded image and returns
// it as an Image.
func NewImage(data []byte) (Image, error) {
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return Image{}, fmt.Errorf("capture: data is not a recognized image (%s)", mime)
	}
	return Image{Data: data, MIME: mime.String()}, nil
}

// DataURL returns the image as a base64 data URL for vision model requests.
func (img Image) DataURL() string {
	return "data:" + img.MIME + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// Snapshot is one perception sample: the webcam frame and the screen grab
// taken for a single turn.
type Snapshot struct {
	Camera Image
	Screen Image
}

// Source captures perception snapshots on demand.
type Source interface {
	// Snapshot captures a fresh camera frame and screen grab. A camera
	// that cannot produce a frame is fatal to the run; implementations
	// return an error rather than degrading.
	Snapshot(ctx context.Context) (Snapshot, error)
}

// DefaultSource captures the local screen and the default camera device.
type DefaultSource struct {
	Screen ScreenGrabber
	Camera CameraGrabber
}

// NewDefaultSource builds a Source using the local display and the default
// camera device.
func NewDefaultSource() *DefaultSource {
	return &DefaultSource{
		Screen: &DisplayGrabber{},
		Camera: NewFFmpegCamera(""),
	}
}

// Snapshot implements Source.
func (s *DefaultSource) Snapshot(ctx context.Context) (Snapshot, error) {
	screen, err := s.Screen.GrabScreen(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("capture screen: %w", err)
	}
	camera, err := s.Camera.GrabFrame(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("capture camera: %w", err)
	}
	return Snapshot{Camera: camera, Screen: screen}, nil
}

// ScreenGrabber captures the current screen contents.
type ScreenGrabber interface {
	GrabScreen(ctx context.Context) (Image, error)
}

// CameraGrabber captures a frame from a camera device.
type CameraGrabber interface {
	GrabFrame(ctx context.Context) (Image, error)
}
