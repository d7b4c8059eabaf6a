package scoring

import (
	"math/rand/v2"

	"github.com/abhisek/quizdeck/internal/bank"
)

// Suggestions is the fixed improvement list shown with negative written feedback.
var Suggestions = []string{
	"Cover more of the key concepts from the reference answer.",
	"Support your points with concrete examples.",
	"Organise the answer into clear, complete sentences.",
	"Weigh alternatives and explain the consequences of each.",
	"Expand the answer; aim for a fuller discussion of the question.",
}

var correctMessages = []string{
	"Nailed it!",
	"Lucky guess, or did you study?",
	"You're on fire!",
	"Textbook answer.",
	"Keep that streak going!",
}

var incorrectMessages = []string{
	"Not quite. Shake it off.",
	"Close, but no. Try the next one!",
	"That one's worth a re-read.",
	"Missed it. Onwards!",
	"Mark it for review and keep going.",
}

// Feedback is the classification shown after a submission.
type Feedback struct {
	Positive    bool
	Headline    string
	Suggestions []string
}

// Messages picks motivational headlines. A nil source falls back to the
// global generator.
type Messages struct {
	rng *rand.Rand
}

// NewMessages returns a picker drawing from rng.
func NewMessages(rng *rand.Rand) *Messages {
	return &Messages{rng: rng}
}

func (m *Messages) pick(list []string) string {
	if m == nil || m.rng == nil {
		return list[rand.IntN(len(list))]
	}
	return list[m.rng.IntN(len(list))]
}

// Classify turns a scored result into feedback. Choice answers are positive
// when correct; written answers are positive at or above the pass threshold
// and otherwise carry the fixed suggestion list.
func (m *Messages) Classify(kind bank.Kind, res Result) Feedback {
	if res.Passed {
		return Feedback{Positive: true, Headline: m.pick(correctMessages)}
	}
	fb := Feedback{Headline: m.pick(incorrectMessages)}
	if kind == bank.KindWritten {
		fb.Suggestions = append([]string(nil), Suggestions...)
	}
	return fb
}

// Standing describes a running score. Choice sessions use the sign of the
// +1/-1 sum; written sessions compare the average score to the threshold.
func Standing(kind bank.Kind, running, answered, threshold int) string {
	switch kind {
	case bank.KindChoice:
		switch {
		case running > 0:
			return "Ahead. Keep it up!"
		case running < 0:
			return "Behind. Time to hit the notes."
		}
		return ""
	case bank.KindWritten:
		if answered == 0 {
			return ""
		}
		if threshold <= 0 {
			threshold = DefaultPassThreshold
		}
		if running/answered >= threshold {
			return "On track to pass."
		}
		return "Below the pass mark so far."
	}
	return ""
}
