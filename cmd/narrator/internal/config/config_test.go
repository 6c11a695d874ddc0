package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFile(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ELEVENLABS_API_KEY", "")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.OpenAIAPIKey != "" || cfg.Backend != "" {
		t.Errorf("missing file should yield zero config, got %+v", cfg)
	}
}

func TestLoadFromParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `openai_api_key: sk-test
backend: gemini
tts_model_id: eleven_turbo_v2
voices:
  Werner Herzog: voice-abc
subtitles:
  sink: overlay
  overlay_port: 9000
  text_color: yellow
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.OpenAIAPIKey != "sk-test" {
		t.Errorf("OpenAIAPIKey = %q, want sk-test", cfg.OpenAIAPIKey)
	}
	if cfg.Backend != "gemini" {
		t.Errorf("Backend = %q, want gemini", cfg.Backend)
	}
	if cfg.TTSModelID != "eleven_turbo_v2" {
		t.Errorf("TTSModelID = %q", cfg.TTSModelID)
	}
	if got := cfg.Voices["Werner Herzog"]; got != "voice-abc" {
		t.Errorf("Voices[Werner Herzog] = %q, want voice-abc", got)
	}
	if cfg.Subtitles.Sink != "overlay" || cfg.Subtitles.OverlayPort != 9000 {
		t.Errorf("Subtitles = %+v", cfg.Subtitles)
	}
	if cfg.Subtitles.TextColor != "yellow" {
		t.Errorf("Subtitles.TextColor = %q, want yellow", cfg.Subtitles.TextColor)
	}
}

func TestLoadFromBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backend: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() with malformed YAML should fail")
	}
}

func TestEnvFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-openai")
	t.Setenv("GEMINI_API_KEY", "env-gemini")
	t.Setenv("ELEVENLABS_API_KEY", "env-eleven")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.OpenAIAPIKey != "env-openai" {
		t.Errorf("OpenAIAPIKey = %q, want env-openai", cfg.OpenAIAPIKey)
	}
	if cfg.GeminiAPIKey != "env-gemini" {
		t.Errorf("GeminiAPIKey = %q, want env-gemini", cfg.GeminiAPIKey)
	}
	if cfg.ElevenLabsAPIKey != "env-eleven" {
		t.Errorf("ElevenLabsAPIKey = %q, want env-eleven", cfg.ElevenLabsAPIKey)
	}
}

func TestFileBeatsEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-openai")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("openai_api_key: file-openai\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.OpenAIAPIKey != "file-openai" {
		t.Errorf("OpenAIAPIKey = %q, want file-openai", cfg.OpenAIAPIKey)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ELEVENLABS_API_KEY", "")

	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	want := &Config{
		Backend:    "openai",
		TTSModelID: "eleven_multilingual_v2",
		Voices:     map[string]string{"Slavoj Žižek": "voice-z"},
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if got.Backend != want.Backend || got.TTSModelID != want.TTSModelID {
		t.Errorf("round trip: got %+v, want %+v", got, want)
	}
	if got.Voices["Slavoj Žižek"] != "voice-z" {
		t.Errorf("Voices round trip: %+v", got.Voices)
	}
}
