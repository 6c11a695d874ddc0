package capture

import (
	"bytes"
	"context"
	"fmt"
	"image/png"

	"github.com/kbinani/screenshot"
)

// DisplayGrabber captures the primary display as a PNG image.
type DisplayGrabber struct {
	// Display is the display index to capture. The primary display is 0.
	Display int
}

// GrabScreen implements ScreenGrabber.
func (g *DisplayGrabber) GrabScreen(ctx context.Context) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	if screenshot.NumActiveDisplays() <= g.Display {
		return Image{}, fmt.Errorf("capture: display %d not available", g.Display)
	}

	img, err := screenshot.CaptureDisplay(g.Display)
	if err != nil {
		return Image{}, fmt.Errorf("capture: grab display %d: %w", g.Display, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Image{}, fmt.Errorf("capture: encode screen png: %w", err)
	}
	return NewImage(buf.Bytes())
}
