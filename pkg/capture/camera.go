package capture

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"
)

// warmupFrames is the number of camera frames discarded before the capture
// frame. Cheap webcams deliver dark or washed-out frames until exposure
// settles.
const warmupFrames = 3

// FFmpegCamera grabs single webcam frames by running ffmpeg against the
// platform capture device.
type FFmpegCamera struct {
	// Device is the capture device. Empty selects the platform default
	// ("/dev/video0" on Linux, "0" on macOS).
	Device string

	// Path is the ffmpeg binary. Empty means "ffmpeg" on PATH.
	Path string

	// Timeout bounds a single grab, warm-up included.
	Timeout time.Duration
}

// NewFFmpegCamera creates a camera grabber for the given device.
func NewFFmpegCamera(device string) *FFmpegCamera {
	return &FFmpegCamera{Device: device, Timeout: 10 * time.Second}
}

// inputArgs returns the ffmpeg input flags for the current platform.
func (c *FFmpegCamera) inputArgs() ([]string, error) {
	device := c.Device
	switch runtime.GOOS {
	case "linux":
		if device == "" {
			device = "/dev/video0"
		}
		return []string{"-f", "v4l2", "-i", device}, nil
	case "darwin":
		if device == "" {
			device = "0"
		}
		return []string{"-f", "avfoundation", "-framerate", "30", "-i", device}, nil
	case "windows":
		if device == "" {
			return nil, fmt.Errorf("capture: camera device name required on windows")
		}
		return []string{"-f", "dshow", "-i", "video=" + device}, nil
	default:
		return nil, fmt.Errorf("capture: no camera support on %s", runtime.GOOS)
	}
}

// GrabFrame implements CameraGrabber. It discards the warm-up frames and
// returns the next frame as JPEG. Failure is returned to the caller; the
// pipeline cannot proceed without a camera image.
func (c *FFmpegCamera) GrabFrame(ctx context.Context) (Image, error) {
	input, err := c.inputArgs()
	if err != nil {
		return Image{}, err
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	path := c.Path
	if path == "" {
		path = "ffmpeg"
	}

	args := append([]string{"-hide_banner", "-loglevel", "error"}, input...)
	args = append(args,
		"-vf", fmt.Sprintf("select='gte(n\\,%d)'", warmupFrames),
		"-frames:v", "1",
		"-f", "image2", "-vcodec", "mjpeg",
		"pipe:1",
	)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Image{}, fmt.Errorf("capture: camera grab failed: %w (%s)",
			err, bytes.TrimSpace(stderr.Bytes()))
	}
	if stdout.Len() == 0 {
		return Image{}, fmt.Errorf("capture: camera produced no frame")
	}
	return NewImage(stdout.Bytes())
}
