package narrate

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/offbeam/narrator/pkg/audio"
	"github.com/offbeam/narrator/pkg/capture"
	"github.com/offbeam/narrator/pkg/caption"
	"github.com/offbeam/narrator/pkg/persona"
	"github.com/offbeam/narrator/pkg/vision"
)

// Config assembles a Scheduler.
type Config struct {
	Roster      *persona.Roster
	Reactor     Reactor
	Synthesizer Synthesizer
	Source      capture.Source
	Player      Player

	// Captions receives set/clear commands. Nil disables captions.
	Captions     caption.Sink
	CaptionStyle caption.Style

	// Override enables the mention-based next-speaker rule.
	Override bool

	// Timeouts bound collaborator calls. Zero fields take DefaultTimeouts.
	Timeouts Timeouts

	// Now and Sleep inject the clock, for tests. Nil means real time.
	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error

	// Rand picks the opening speaker index. Nil means math/rand.
	Rand func(n int) int
}

// Scheduler owns the conversation history, the speaker rotation, and the
// playback slot, and runs the pipelined turn loop.
type Scheduler struct {
	cfg     Config
	history *History

	// playbackEnd is the single playback slot: the instant the currently
	// scheduled clip will have finished. The next clip never starts
	// before it.
	playbackEnd time.Time

	seq int
}

// New validates the configuration and creates a Scheduler.
func New(cfg Config) (*Scheduler, error) {
	if cfg.Roster == nil || cfg.Roster.Len() == 0 {
		return nil, fmt.Errorf("narrate: roster is required")
	}
	if cfg.Reactor == nil {
		return nil, fmt.Errorf("narrate: reactor is required")
	}
	if cfg.Synthesizer == nil {
		return nil, fmt.Errorf("narrate: synthesizer is required")
	}
	if cfg.Source == nil {
		return nil, fmt.Errorf("narrate: perception source is required")
	}
	if cfg.Player == nil {
		return nil, fmt.Errorf("narrate: player is required")
	}
	if cfg.Captions == nil {
		cfg.Captions = caption.Nop{}
	}
	if cfg.Timeouts.Generate == 0 {
		cfg.Timeouts.Generate = DefaultTimeouts.Generate
	}
	if cfg.Timeouts.Synthesize == 0 {
		cfg.Timeouts.Synthesize = DefaultTimeouts.Synthesize
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Sleep == nil {
		cfg.Sleep = func(ctx context.Context, d time.Duration) error {
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
				return nil
			}
		}
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.Intn
	}
	return &Scheduler{cfg: cfg, history: &History{}}, nil
}

// History exposes the conversation log, e.g. for transcript output.
func (s *Scheduler) History() *History {
	return s.history
}

// reaction is a completed generation task.
type reaction struct {
	turn Turn
	err  error
}

// synthesis is a completed synthesis task.
type synthesis struct {
	clip *audio.Clip
	err  error
}

// Run executes the turn loop until the context is canceled or a fatal
// collaborator failure occurs (a camera that produces no frame aborts the
// run; there is no narration without perception).
//
// Pipelining: while turn N's audio plays, turn N+1's reaction and speech
// are being produced. At most one generation task and one synthesis task
// are in flight at any time.
func (s *Scheduler) Run(ctx context.Context) error {
	// Opening turn: random speaker, empty history, no override possible.
	opener := s.cfg.Roster.At(s.cfg.Rand(s.cfg.Roster.Len()))
	slog.Info("narration starting", "speaker", opener.Name, "roster", s.cfg.Roster.Len())

	snap, err := s.cfg.Source.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("narrate: initial snapshot: %w", err)
	}
	pending := s.startReaction(ctx, opener, snap)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Step 1-2: the pending generation completes and becomes the
		// active turn; history is appended before anything else reads it.
		res := <-pending
		turn := res.turn
		if res.err != nil {
			// Degraded turn: keep the rotation alive with the fallback
			// utterance rather than stalling the loop.
			slog.Error("reaction generation failed, speaking fallback",
				"turn", turn.ID, "speaker", turn.Speaker.Name, "error", res.err)
			turn.Text = vision.FallbackUtterance
		}
		s.history.Append(turn.Speaker.Name, turn.Text)
		slog.Info("turn generated", "turn", turn.ID, "seq", turn.Seq,
			"speaker", turn.Speaker.Name, "text", turn.Text)

		// Step 3: synthesis for the active turn proceeds in the
		// background while the next turn is set up.
		synth := s.startSynthesis(ctx, turn)

		// Step 4: rotation advances off the just-completed text.
		next := s.cfg.Roster.Next(turn.Speaker, turn.Text, s.cfg.Override)

		// Step 5: captions come down before the next snapshot so the
		// overlay does not photograph itself; then the next generation
		// starts against the history as appended above.
		s.cfg.Captions.Clear()
		snap, err = s.cfg.Source.Snapshot(ctx)
		if err != nil {
			return fmt.Errorf("narrate: snapshot: %w", err)
		}
		pending = s.startReaction(ctx, next, snap)

		// Step 6: the playback gate. The previous clip gets its full
		// declared duration even if this turn's speech is ready early.
		if wait := s.playbackEnd.Sub(s.cfg.Now()); wait > 0 {
			if err := s.cfg.Sleep(ctx, wait); err != nil {
				return err
			}
		}

		// Steps 7-9: load, caption, play, and claim the playback slot.
		sres := <-synth
		if sres.err != nil {
			slog.Warn("synthesis failed, turn plays silently",
				"turn", turn.ID, "speaker", turn.Speaker.Name, "error", sres.err)
			continue
		}
		if err := s.cfg.Player.Load(sres.clip); err != nil {
			slog.Warn("audio load failed, turn plays silently",
				"turn", turn.ID, "error", err)
			continue
		}
		s.cfg.Captions.Set(turn.Line(), s.cfg.CaptionStyle)
		s.cfg.Player.Play()
		s.playbackEnd = s.cfg.Now().Add(sres.clip.Duration())
	}
}

// startReaction launches the single pending generation task for the given
// speaker and snapshot. The history slice is copied now: the reaction must
// see the log exactly as it stood when the task was issued.
func (s *Scheduler) startReaction(ctx context.Context, speaker persona.Persona, snap capture.Snapshot) <-chan reaction {
	s.seq++
	turn := Turn{ID: uuid.New(), Seq: s.seq, Speaker: speaker}
	lines := s.history.Lines()

	ch := make(chan reaction, 1)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeouts.Generate)
		defer cancel()
		text, err := s.cfg.Reactor.React(ctx, speaker, snap, lines, s.cfg.Roster)
		turn.Text = text
		ch <- reaction{turn: turn, err: err}
	}()
	return ch
}

// startSynthesis launches speech synthesis for a completed turn.
func (s *Scheduler) startSynthesis(ctx context.Context, turn Turn) <-chan synthesis {
	ch := make(chan synthesis, 1)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeouts.Synthesize)
		defer cancel()
		clip, err := s.cfg.Synthesizer.Synthesize(ctx, turn.Speaker, turn.Text)
		ch <- synthesis{clip: clip, err: err}
	}()
	return ch
}
