// Package vision generates in-character reactions to perception snapshots
// using a vision-language model.
//
// Two backends are provided: OpenAI chat completions and Google Gemini.
// Both honor the same contract: exactly one short, non-empty utterance
// attributed implicitly to the requested persona, never a refusal.
package vision

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/offbeam/narrator/pkg/capture"
	"github.com/offbeam/narrator/pkg/persona"
)

// maxAttempts bounds the refusal-retry loop. The model occasionally refuses
// to describe a camera frame; retrying with the same prompt usually clears
// it, but the loop must not spin forever.
const maxAttempts = 5

// FallbackUtterance is spoken when every attempt produced a refusal or an
// empty reaction. Keeping the turn alive matters more than its content.
const FallbackUtterance = "[no comment]"

// Reactor produces one persona utterance for a perception snapshot.
type Reactor interface {
	// React returns the utterance for speaker given the snapshot, the
	// conversation history so far, and the active roster. The returned
	// text is final and displayable: non-empty, no speaker-name prefix,
	// no refusal.
	React(ctx context.Context, speaker persona.Persona, snap capture.Snapshot,
		history []string, roster *persona.Roster) (string, error)
}

var bracketed = regexp.MustCompile(`\[.*?\]`)

// refusalMarkers are substrings that identify a model refusal rather than a
// usable reaction.
var refusalMarkers = []string{
	"I'm sorry, I cannot provide that information.",
	"I'm sorry, I can't assist",
	"I cannot assist with",
}

// sanitize strips bracketed annotations and surrounding whitespace from a
// raw model reply.
func sanitize(raw string) string {
	return strings.TrimSpace(bracketed.ReplaceAllString(raw, ""))
}

// refused reports whether the reply is a refusal.
func refused(text string) bool {
	for _, marker := range refusalMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// generateFunc performs one raw model call.
type generateFunc func(ctx context.Context) (string, error)

// reactWithRetry runs gen until it yields a clean reaction, up to
// maxAttempts, then falls back to FallbackUtterance.
func reactWithRetry(ctx context.Context, speaker persona.Persona, gen generateFunc) (string, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		raw, err := gen(ctx)
		if err != nil {
			return "", fmt.Errorf("vision: react for %s: %w", speaker.Name, err)
		}
		text := sanitize(raw)
		if text != "" && !refused(text) {
			return text, nil
		}
		slog.Warn("vision: unusable reaction, retrying",
			"speaker", speaker.Name, "attempt", attempt, "refused", refused(text))
	}
	slog.Warn("vision: all attempts refused, using fallback", "speaker", speaker.Name)
	return FallbackUtterance, nil
}
