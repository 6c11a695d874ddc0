// Package caption displays the current utterance as an on-screen caption.
//
// Sinks are fire-and-forget: the turn pipeline never waits for a caption to
// be acknowledged, and must not assume any particular windowing toolkit. Two
// sinks are provided: a styled terminal line and a browser overlay fed over
// a websocket.
package caption

// Style holds the presentation parameters for caption text. Zero values
// mean "sink default".
type Style struct {
	TextColor        string  `json:"text_color,omitempty"`
	Font             string  `json:"font,omitempty"`
	FontSize         int     `json:"font_size,omitempty"`
	FontAlpha        float64 `json:"font_alpha,omitempty"`
	ShadowColor      string  `json:"shadow_color,omitempty"`
	ShadowOffsetX    float64 `json:"shadow_offset_x,omitempty"`
	ShadowOffsetY    float64 `json:"shadow_offset_y,omitempty"`
	ShadowBlurRadius int     `json:"shadow_blur_radius,omitempty"`
	ShadowAlpha      float64 `json:"shadow_alpha,omitempty"`
}

// DefaultStyle mirrors the overlay's built-in appearance.
var DefaultStyle = Style{
	TextColor:        "white",
	Font:             "Helvetica",
	FontSize:         28,
	FontAlpha:        1.0,
	ShadowColor:      "black",
	ShadowOffsetX:    2,
	ShadowOffsetY:    2,
	ShadowBlurRadius: 4,
	ShadowAlpha:      0.8,
}

// merged returns s with zero-valued fields filled from DefaultStyle.
func (s Style) merged() Style {
	d := DefaultStyle
	if s.TextColor == "" {
		s.TextColor = d.TextColor
	}
	if s.Font == "" {
		s.Font = d.Font
	}
	if s.FontSize == 0 {
		s.FontSize = d.FontSize
	}
	if s.FontAlpha == 0 {
		s.FontAlpha = d.FontAlpha
	}
	if s.ShadowColor == "" {
		s.ShadowColor = d.ShadowColor
	}
	if s.ShadowOffsetX == 0 {
		s.ShadowOffsetX = d.ShadowOffsetX
	}
	if s.ShadowOffsetY == 0 {
		s.ShadowOffsetY = d.ShadowOffsetY
	}
	if s.ShadowBlurRadius == 0 {
		s.ShadowBlurRadius = d.ShadowBlurRadius
	}
	if s.ShadowAlpha == 0 {
		s.ShadowAlpha = d.ShadowAlpha
	}
	return s
}

// Sink displays and clears captions.
type Sink interface {
	// Set replaces the visible caption.
	Set(text string, style Style)

	// Clear removes the visible caption.
	Clear()
}

// Nop is a Sink that discards everything, used when captions are disabled.
type Nop struct{}

// Set implements Sink.
func (Nop) Set(string, Style) {}

// Clear implements Sink.
func (Nop) Clear() {}
