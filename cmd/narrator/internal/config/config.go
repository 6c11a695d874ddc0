// Package config provides the narrator configuration file.
//
// Configuration is stored under os.UserConfigDir()/narrator/config.yaml:
//
//	~/Library/Application Support/narrator/config.yaml   (macOS)
//	~/.config/narrator/config.yaml                       (Linux)
//	%AppData%/narrator/config.yaml                       (Windows)
//
// A missing file is not an error; every field has a flag or environment
// fallback. Flags override the file, the file overrides the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const (
	// appDir is the directory name under os.UserConfigDir().
	appDir = "narrator"

	// fileName is the configuration file name inside appDir.
	fileName = "config.yaml"
)

// Subtitles holds caption presentation settings.
type Subtitles struct {
	// Sink selects where captions go: "terminal" or "overlay".
	Sink string `yaml:"sink"`

	// OverlayPort is the local port for the browser overlay server.
	OverlayPort int `yaml:"overlay_port"`

	TextColor        string  `yaml:"text_color"`
	Font             string  `yaml:"font"`
	FontSize         int     `yaml:"font_size"`
	FontAlpha        float64 `yaml:"font_alpha"`
	ShadowColor      string  `yaml:"shadow_color"`
	ShadowOffsetX    float64 `yaml:"shadow_offset_x"`
	ShadowOffsetY    float64 `yaml:"shadow_offset_y"`
	ShadowBlurRadius int     `yaml:"shadow_blur_radius"`
	ShadowAlpha      float64 `yaml:"shadow_alpha"`
}

// Config is the narrator configuration.
type Config struct {
	// OpenAIAPIKey authenticates reaction generation on the openai backend.
	OpenAIAPIKey string `yaml:"openai_api_key"`

	// GeminiAPIKey authenticates reaction generation on the gemini backend.
	GeminiAPIKey string `yaml:"gemini_api_key"`

	// ElevenLabsAPIKey authenticates speech synthesis.
	ElevenLabsAPIKey string `yaml:"elevenlabs_api_key"`

	// Backend selects the reaction generator: "openai" (default) or
	// "gemini".
	Backend string `yaml:"backend"`

	// VisionModel overrides the backend's default vision model ID.
	VisionModel string `yaml:"vision_model"`

	// TTSModelID selects the ElevenLabs synthesis model.
	TTSModelID string `yaml:"tts_model_id"`

	// Voices maps persona names to synthesizer voice IDs, overriding the
	// built-in defaults.
	Voices map[string]string `yaml:"voices"`

	// CameraDevice overrides the platform default capture device.
	CameraDevice string `yaml:"camera_device"`

	Subtitles Subtitles `yaml:"subtitles"`
}

// Path returns the default configuration file path.
func Path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, fileName), nil
}

// Load reads the configuration from the default location, then fills
// missing API keys from the environment.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from a specific file. A missing file
// yields a config populated from the environment only.
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file; environment and flags carry everything.
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return &cfg, nil
}

// applyEnv fills unset keys from the conventional environment variables.
func (c *Config) applyEnv() {
	if c.OpenAIAPIKey == "" {
		c.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.ElevenLabsAPIKey == "" {
		c.ElevenLabsAPIKey = os.Getenv("ELEVENLABS_API_KEY")
	}
}

// Save writes the configuration to the given file, creating the directory
// if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
