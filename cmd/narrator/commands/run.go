package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/offbeam/narrator/cmd/narrator/internal/config"
	"github.com/offbeam/narrator/pkg/audio"
	"github.com/offbeam/narrator/pkg/audio/player"
	"github.com/offbeam/narrator/pkg/capture"
	"github.com/offbeam/narrator/pkg/caption"
	"github.com/offbeam/narrator/pkg/eleven"
	"github.com/offbeam/narrator/pkg/narrate"
	"github.com/offbeam/narrator/pkg/persona"
	"github.com/offbeam/narrator/pkg/vision"
)

var runFlags struct {
	backend     string
	visionModel string

	openaiAPIKey     string
	geminiAPIKey     string
	elevenLabsAPIKey string

	ttsModelID string

	disableHerzog bool
	disableAdorno bool
	disableZizek  bool

	herzogVoiceID string
	adornoVoiceID string
	zizekVoiceID  string

	disableOverride bool

	disableSubtitles bool
	subtitleSink     string
	overlayPort      int

	textColor        string
	font             string
	fontSize         int
	fontAlpha        float64
	shadowColor      string
	shadowOffsetX    float64
	shadowOffsetY    float64
	shadowBlurRadius int
	shadowAlpha      float64

	cameraDevice string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the perpetual commentary loop",
	Long: `Run the commentary loop until interrupted.

Every turn captures a webcam frame and a screen grab, asks the current
persona's vision model for a reaction, speaks it through ElevenLabs, and
captions it. The next turn is prepared while the current one plays.`,
	RunE: runNarration,
}

func init() {
	f := runCmd.Flags()

	f.StringVar(&runFlags.backend, "backend", "", "reaction backend: openai or gemini")
	f.StringVar(&runFlags.visionModel, "vision-model", "", "vision model ID (backend default if empty)")

	f.StringVar(&runFlags.openaiAPIKey, "openai-api-key", "", "OpenAI API key")
	f.StringVar(&runFlags.geminiAPIKey, "gemini-api-key", "", "Gemini API key")
	f.StringVar(&runFlags.elevenLabsAPIKey, "elevenlabs-api-key", "", "ElevenLabs API key")

	f.StringVar(&runFlags.ttsModelID, "tts-model-id", "", "ElevenLabs model ID")

	f.BoolVar(&runFlags.disableHerzog, "disable-herzog", false, "remove Werner Herzog from the roster")
	f.BoolVar(&runFlags.disableAdorno, "disable-adorno", false, "remove Theodor W. Adorno from the roster")
	f.BoolVar(&runFlags.disableZizek, "disable-zizek", false, "remove Slavoj Žižek from the roster")

	f.StringVar(&runFlags.herzogVoiceID, "herzog-voice-id", "", "voice ID for Werner Herzog")
	f.StringVar(&runFlags.adornoVoiceID, "adorno-voice-id", "", "voice ID for Theodor W. Adorno")
	f.StringVar(&runFlags.zizekVoiceID, "zizek-voice-id", "", "voice ID for Slavoj Žižek")

	f.BoolVar(&runFlags.disableOverride, "disable-override-next-speaker", false,
		"disable the mention-based next-speaker override")

	f.BoolVar(&runFlags.disableSubtitles, "disable-subtitles", false, "disable captions")
	f.StringVar(&runFlags.subtitleSink, "subtitle-sink", "", "caption sink: terminal or overlay")
	f.IntVar(&runFlags.overlayPort, "overlay-port", 0, "overlay server port (default 8787)")

	f.StringVar(&runFlags.textColor, "subtitle-text-color", "", "caption text color")
	f.StringVar(&runFlags.font, "subtitle-font", "", "caption font")
	f.IntVar(&runFlags.fontSize, "subtitle-font-size", 0, "caption font size")
	f.Float64Var(&runFlags.fontAlpha, "subtitle-font-alpha", 0, "caption text opacity")
	f.StringVar(&runFlags.shadowColor, "subtitle-shadow-color", "", "caption shadow color")
	f.Float64Var(&runFlags.shadowOffsetX, "subtitle-shadow-offset-x", 0, "caption shadow x offset")
	f.Float64Var(&runFlags.shadowOffsetY, "subtitle-shadow-offset-y", 0, "caption shadow y offset")
	f.IntVar(&runFlags.shadowBlurRadius, "subtitle-shadow-blur-radius", 0, "caption shadow blur radius")
	f.Float64Var(&runFlags.shadowAlpha, "subtitle-shadow-alpha", 0, "caption shadow opacity")

	f.StringVar(&runFlags.cameraDevice, "camera-device", "", "camera capture device")

	rootCmd.AddCommand(runCmd)
}

func runNarration(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	roster, err := buildRoster(cfg)
	if err != nil {
		return err
	}

	reactor, err := buildReactor(ctx, cfg)
	if err != nil {
		return err
	}

	synth, err := buildSynthesizer(cfg)
	if err != nil {
		return err
	}

	sink, err := buildCaptionSink(cfg)
	if err != nil {
		return err
	}

	source := capture.NewDefaultSource()
	if device := firstOf(runFlags.cameraDevice, cfg.CameraDevice); device != "" {
		source.Camera = capture.NewFFmpegCamera(device)
	}

	p, err := player.New()
	if err != nil {
		return err
	}
	defer p.Close()

	sched, err := narrate.New(narrate.Config{
		Roster:       roster,
		Reactor:      reactor,
		Synthesizer:  synth,
		Source:       source,
		Player:       p,
		Captions:     sink,
		CaptionStyle: captionStyle(cfg),
		Override:     !runFlags.disableOverride,
	})
	if err != nil {
		return err
	}

	err = sched.Run(ctx)
	if errors.Is(err, context.Canceled) {
		// Interrupted by the user; a clean way for a perpetual loop to end.
		return nil
	}
	return err
}

// buildRoster assembles the active personas in rotation order, applying
// voice ID overrides from the config file and flags.
func buildRoster(cfg *config.Config) (*persona.Roster, error) {
	defaults := persona.Defaults()

	voiceFor := func(name, flagValue string) string {
		return firstOf(flagValue, cfg.Voices[name])
	}

	var members []persona.Persona
	add := func(name, voiceFlag string, disabled bool) {
		if disabled {
			return
		}
		p := defaults[name]
		if v := voiceFor(name, voiceFlag); v != "" {
			p.VoiceID = v
		}
		members = append(members, p)
	}

	add(persona.Herzog, runFlags.herzogVoiceID, runFlags.disableHerzog)
	add(persona.Adorno, runFlags.adornoVoiceID, runFlags.disableAdorno)
	add(persona.Zizek, runFlags.zizekVoiceID, runFlags.disableZizek)

	if len(members) == 0 {
		return nil, fmt.Errorf("all personas disabled; at least one is required")
	}
	return persona.NewRoster(members...)
}

// buildReactor selects and constructs the vision backend.
func buildReactor(ctx context.Context, cfg *config.Config) (narrate.Reactor, error) {
	backend := firstOf(runFlags.backend, cfg.Backend, "openai")
	model := firstOf(runFlags.visionModel, cfg.VisionModel)

	switch backend {
	case "openai":
		key := firstOf(runFlags.openaiAPIKey, cfg.OpenAIAPIKey)
		if key == "" {
			return nil, fmt.Errorf("OpenAI API key required (--openai-api-key or OPENAI_API_KEY)")
		}
		return vision.NewOpenAIReactor(key, model), nil
	case "gemini":
		key := firstOf(runFlags.geminiAPIKey, cfg.GeminiAPIKey)
		if key == "" {
			return nil, fmt.Errorf("Gemini API key required (--gemini-api-key or GEMINI_API_KEY)")
		}
		return vision.NewGeminiReactor(ctx, key, model)
	default:
		return nil, fmt.Errorf("unknown backend %q (want openai or gemini)", backend)
	}
}

// elevenSynthesizer adapts the ElevenLabs client to the scheduler, mapping
// each persona to its configured voice.
type elevenSynthesizer struct {
	client  *eleven.Client
	modelID string
}

func (s *elevenSynthesizer) Synthesize(ctx context.Context, speaker persona.Persona, text string) (*audio.Clip, error) {
	return s.client.Speech.Synthesize(ctx, &eleven.SpeechRequest{
		VoiceID: speaker.VoiceID,
		Text:    text,
		ModelID: s.modelID,
	})
}

func buildSynthesizer(cfg *config.Config) (narrate.Synthesizer, error) {
	key := firstOf(runFlags.elevenLabsAPIKey, cfg.ElevenLabsAPIKey)
	if key == "" {
		return nil, fmt.Errorf("ElevenLabs API key required (--elevenlabs-api-key or ELEVENLABS_API_KEY)")
	}

	modelID := firstOf(runFlags.ttsModelID, cfg.TTSModelID)
	if modelID != "" && !slices.Contains(eleven.Models, modelID) {
		return nil, fmt.Errorf("unknown TTS model %q (want one of %v)", modelID, eleven.Models)
	}

	return &elevenSynthesizer{
		client:  eleven.NewClient(key),
		modelID: modelID,
	}, nil
}

// defaultOverlayPort is where the browser overlay listens unless configured.
const defaultOverlayPort = 8787

func buildCaptionSink(cfg *config.Config) (caption.Sink, error) {
	if runFlags.disableSubtitles {
		return caption.Nop{}, nil
	}

	switch sink := firstOf(runFlags.subtitleSink, cfg.Subtitles.Sink, "terminal"); sink {
	case "terminal":
		return caption.NewTermSink(), nil
	case "overlay":
		port := runFlags.overlayPort
		if port == 0 {
			port = cfg.Subtitles.OverlayPort
		}
		if port == 0 {
			port = defaultOverlayPort
		}
		overlay := caption.NewOverlaySink(port)
		overlay.Start()
		return overlay, nil
	default:
		return nil, fmt.Errorf("unknown subtitle sink %q (want terminal or overlay)", sink)
	}
}

// captionStyle merges flag and config style settings; zero values fall
// through to the sink defaults.
func captionStyle(cfg *config.Config) caption.Style {
	sub := cfg.Subtitles
	return caption.Style{
		TextColor:        firstOf(runFlags.textColor, sub.TextColor),
		Font:             firstOf(runFlags.font, sub.Font),
		FontSize:         firstNonZero(runFlags.fontSize, sub.FontSize),
		FontAlpha:        firstNonZeroF(runFlags.fontAlpha, sub.FontAlpha),
		ShadowColor:      firstOf(runFlags.shadowColor, sub.ShadowColor),
		ShadowOffsetX:    firstNonZeroF(runFlags.shadowOffsetX, sub.ShadowOffsetX),
		ShadowOffsetY:    firstNonZeroF(runFlags.shadowOffsetY, sub.ShadowOffsetY),
		ShadowBlurRadius: firstNonZero(runFlags.shadowBlurRadius, sub.ShadowBlurRadius),
		ShadowAlpha:      firstNonZeroF(runFlags.shadowAlpha, sub.ShadowAlpha),
	}
}

// firstOf returns the first non-empty string.
func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func firstNonZeroF(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
