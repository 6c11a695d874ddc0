package eleven

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/offbeam/narrator/pkg/audio"
)

// pcmRate is the PCM output sample rate requested from the API. Raw PCM
// keeps duration and loudness math exact, with no container to decode.
const pcmRate = 44100

// SpeechService provides speech synthesis operations.
type SpeechService struct {
	client *Client
}

// newSpeechService creates a new speech service.
func newSpeechService(client *Client) *SpeechService {
	return &SpeechService{client: client}
}

// VoiceSettings controls delivery characteristics of the synthesized voice.
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

// DefaultVoiceSettings are the delivery settings tuned for the commentary
// personas.
var DefaultVoiceSettings = VoiceSettings{
	Stability:       0.4,
	SimilarityBoost: 0.4,
	Style:           0.7,
	UseSpeakerBoost: true,
}

// SpeechRequest is a speech synthesis request.
type SpeechRequest struct {
	// VoiceID selects the voice. Required.
	VoiceID string `json:"-"`

	// Text is the utterance to synthesize. Required.
	Text string `json:"text"`

	// ModelID selects the synthesis model. Defaults to
	// ModelMultilingualV2 when empty.
	ModelID string `json:"model_id"`

	// VoiceSettings override DefaultVoiceSettings when non-nil.
	VoiceSettings *VoiceSettings `json:"voice_settings"`
}

// Synthesize performs speech synthesis and returns the audio as a mono
// PCM16 clip, loudness-normalized to the fixed playback target.
func (s *SpeechService) Synthesize(ctx context.Context, req *SpeechRequest) (*audio.Clip, error) {
	if req.VoiceID == "" {
		return nil, fmt.Errorf("eleven: voice ID is required")
	}
	if req.Text == "" {
		return nil, fmt.Errorf("eleven: text is required")
	}
	if req.ModelID == "" {
		req.ModelID = ModelMultilingualV2
	}
	if req.VoiceSettings == nil {
		settings := DefaultVoiceSettings
		req.VoiceSettings = &settings
	}

	path := "/v1/text-to-speech/" + url.PathEscape(req.VoiceID) +
		"?output_format=pcm_" + fmt.Sprint(pcmRate)

	data, err := s.client.http.requestBinary(ctx, "POST", path, req)
	if err != nil {
		return nil, err
	}

	clip, err := audio.NewClip(data, audio.Format{SampleRate: pcmRate})
	if err != nil {
		return nil, fmt.Errorf("eleven: build clip: %w", err)
	}

	slog.Debug("eleven: synthesized speech",
		"voice", req.VoiceID, "model", req.ModelID,
		"text_len", len(req.Text), "duration", clip.Duration())

	return clip.Normalize(audio.NormalizeTarget), nil
}
