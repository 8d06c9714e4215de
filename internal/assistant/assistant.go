package assistant

import (
	"log/slog"
	"strings"

	"github.com/lumina-hms/lumina/internal/intent"
)

// Assistant ties classification and synthesis into the single round trip the
// chat surface calls.
type Assistant struct {
	synth *Synthesizer
}

// New creates an Assistant around the given Synthesizer.
func New(synth *Synthesizer) *Assistant {
	return &Assistant{synth: synth}
}

// Respond classifies the utterance and synthesizes the reply from the
// supplied snapshot and history. It returns the resolved tag alongside the
// reply so callers can log or persist it.
func (a *Assistant) Respond(utterance string, user UserContext, snap Snapshot, history []Message) (intent.Tag, string) {
	tag := intent.Classify(utterance)

	// Follow-up detection is computed and surfaced in debug logs but does
	// not alter routing; the historical behavior keeps this flag inert.
	if HasFollowUpCue(history, utterance) {
		slog.Debug("follow-up cue detected", "student", user.ID, "intent", tag.String())
	}

	reply := a.synth.Synthesize(tag, utterance, user, snap, history)
	return tag, reply
}

var followUpCues = []string{"yes", "no", "how", "what", "more"}

// HasFollowUpCue reports whether the utterance looks like a continuation of
// the previous exchange: the history must be non-empty and the normalized
// utterance must contain one of the cue words.
func HasFollowUpCue(history []Message, utterance string) bool {
	if len(history) == 0 {
		return false
	}
	q := intent.Normalize(utterance)
	for _, cue := range followUpCues {
		if strings.Contains(q, cue) {
			return true
		}
	}
	return false
}
