package eleven

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// pcmSecond returns one second of quiet mono PCM16 at the API output rate.
func pcmSecond() []byte {
	data := make([]byte, pcmRate*2)
	for i := 0; i < pcmRate; i++ {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(int16(1000)))
	}
	return data
}

func TestSynthesize(t *testing.T) {
	var gotPath string
	var gotBody SpeechRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		if r.Header.Get("xi-api-key") != "test-key" {
			t.Errorf("xi-api-key = %q; want test-key", r.Header.Get("xi-api-key"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Write(pcmSecond())
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	clip, err := client.Speech.Synthesize(context.Background(), &SpeechRequest{
		VoiceID: "voice-1",
		Text:    "A remark of no consequence.",
	})
	if err != nil {
		t.Fatalf("Synthesize error: %v", err)
	}

	if want := "/v1/text-to-speech/voice-1?output_format=pcm_44100"; gotPath != want {
		t.Errorf("request path = %q; want %q", gotPath, want)
	}
	if gotBody.ModelID != ModelMultilingualV2 {
		t.Errorf("model_id = %q; want default %q", gotBody.ModelID, ModelMultilingualV2)
	}
	if gotBody.VoiceSettings == nil || gotBody.VoiceSettings.Style != 0.7 {
		t.Errorf("voice_settings = %+v; want defaults", gotBody.VoiceSettings)
	}
	if clip.Duration() != time.Second {
		t.Errorf("Duration() = %v; want 1s", clip.Duration())
	}
}

func TestSynthesizeValidation(t *testing.T) {
	client := NewClient("test-key")

	tests := []struct {
		name string
		req  *SpeechRequest
	}{
		{"missing voice", &SpeechRequest{Text: "hello"}},
		{"missing text", &SpeechRequest{VoiceID: "voice-1"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := client.Speech.Synthesize(context.Background(), tc.req); err == nil {
				t.Error("Synthesize accepted invalid request")
			}
		})
	}
}

func TestSynthesizeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":{"status":"invalid_api_key","message":"bad key"}}`))
	}))
	defer srv.Close()

	client := NewClient("bad-key", WithBaseURL(srv.URL))
	_, err := client.Speech.Synthesize(context.Background(), &SpeechRequest{
		VoiceID: "voice-1",
		Text:    "hello",
	})
	if err == nil {
		t.Fatal("Synthesize succeeded; want error")
	}

	apiErr, ok := AsError(err)
	if !ok {
		t.Fatalf("error %v is not *Error", err)
	}
	if !apiErr.IsInvalidAPIKey() {
		t.Errorf("IsInvalidAPIKey() = false for %v", apiErr)
	}
	if apiErr.Retryable() {
		t.Errorf("Retryable() = true for auth error")
	}
	if !strings.Contains(apiErr.Error(), "bad key") {
		t.Errorf("Error() = %q; want message included", apiErr.Error())
	}
}

func TestSynthesizeRetriesServerError(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write(pcmSecond())
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL), WithRetry(1))
	clip, err := client.Speech.Synthesize(context.Background(), &SpeechRequest{
		VoiceID: "voice-1",
		Text:    "hello",
	})
	if err != nil {
		t.Fatalf("Synthesize error after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d; want 2", calls)
	}
	if clip.Duration() != time.Second {
		t.Errorf("Duration() = %v; want 1s", clip.Duration())
	}
}
