package capture

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestNewImage(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		wantMIME string
		wantErr  bool
	}{
		{"png", nil, "image/png", false}, // data filled in below
		{"jpeg magic", []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, "image/jpeg", false},
		{"plain text", []byte("not an image at all"), "", true},
		{"empty", nil, "", true},
	}
	tests[0].data = pngBytes(t)
	tests[3].data = []byte{}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			img, err := NewImage(tc.data)
			if (err != nil) != tc.wantErr {
				t.Fatalf("NewImage error = %v; wantErr %v", err, tc.wantErr)
			}
			if err == nil && img.MIME != tc.wantMIME {
				t.Errorf("MIME = %q; want %q", img.MIME, tc.wantMIME)
			}
		})
	}
}

func TestImageDataURL(t *testing.T) {
	img, err := NewImage(pngBytes(t))
	if err != nil {
		t.Fatalf("NewImage error: %v", err)
	}
	url := img.DataURL()
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Errorf("DataURL() = %.40q...; want data:image/png;base64, prefix", url)
	}
}

type fakeGrabber struct {
	img Image
	err error
}

func (f fakeGrabber) GrabScreen(ctx context.Context) (Image, error) { return f.img, f.err }
func (f fakeGrabber) GrabFrame(ctx context.Context) (Image, error)  { return f.img, f.err }

func TestDefaultSourceSnapshot(t *testing.T) {
	img, err := NewImage(pngBytes(t))
	if err != nil {
		t.Fatalf("NewImage error: %v", err)
	}

	src := &DefaultSource{
		Screen: fakeGrabber{img: img},
		Camera: fakeGrabber{img: img},
	}
	snap, err := src.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	if snap.Camera.MIME != "image/png" || snap.Screen.MIME != "image/png" {
		t.Errorf("Snapshot MIME = %q/%q; want image/png", snap.Camera.MIME, snap.Screen.MIME)
	}
}

func TestDefaultSourceCameraFailureIsFatal(t *testing.T) {
	img, err := NewImage(pngBytes(t))
	if err != nil {
		t.Fatalf("NewImage error: %v", err)
	}

	src := &DefaultSource{
		Screen: fakeGrabber{img: img},
		Camera: fakeGrabber{err: context.DeadlineExceeded},
	}
	if _, err := src.Snapshot(context.Background()); err == nil {
		t.Fatal("Snapshot succeeded with failing camera; want error")
	}
}
