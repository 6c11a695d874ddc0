// Package narrate drives the perpetual commentary loop: capture a
// perception snapshot, generate an in-character reaction, synthesize it,
// and play it back with captions, pipelined so the next turn's reaction and
// speech are produced while the current turn's audio plays.
package narrate

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/offbeam/narrator/pkg/audio"
	"github.com/offbeam/narrator/pkg/capture"
	"github.com/offbeam/narrator/pkg/persona"
)

// Reactor produces one persona utterance for a perception snapshot. The
// returned text is final and displayable: non-empty, no speaker-name
// prefix, no refusal.
type Reactor interface {
	React(ctx context.Context, speaker persona.Persona, snap capture.Snapshot,
		history []string, roster *persona.Roster) (string, error)
}

// Synthesizer converts an utterance into a playable clip.
type Synthesizer interface {
	Synthesize(ctx context.Context, speaker persona.Persona, text string) (*audio.Clip, error)
}

// Player plays one clip at a time. Play returns once playback is underway;
// the scheduler tracks completion through the clip duration.
type Player interface {
	Load(clip *audio.Clip) error
	Play()
}

// Turn is the unit of scheduling work: one speaker reacting to one
// perception snapshot.
type Turn struct {
	// ID correlates the turn across log lines.
	ID uuid.UUID

	// Seq is the turn sequence number, starting at 1.
	Seq int

	// Speaker is the persona this turn belongs to.
	Speaker persona.Persona

	// Text is the completed utterance.
	Text string
}

// Line returns the turn as the "speaker: text" caption line.
func (t Turn) Line() string {
	return t.Speaker.Name + ": " + t.Text
}

// Timeouts bound the external collaborator calls so a hung request cannot
// stall the pipeline forever.
type Timeouts struct {
	Generate   time.Duration
	Synthesize time.Duration
}

// DefaultTimeouts are generous: generation regularly takes several seconds.
var DefaultTimeouts = Timeouts{
	Generate:   60 * time.Second,
	Synthesize: 30 * time.Second,
}
