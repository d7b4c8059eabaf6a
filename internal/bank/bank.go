package bank

import (
	"errors"
	"fmt"
)

// Kind identifies which answer format (and scoring policy) a topic uses.
type Kind string

const (
	KindChoice  Kind = "choice"  // multiple choice, +1/-1 scoring
	KindWritten Kind = "written" // free-text answers, 0-100 heuristic scoring
)

// SupportedMajor is the bank format major version this build reads.
const SupportedMajor = "v1"

var (
	// ErrTopicNotFound is returned when a topic ID is not in the bank.
	ErrTopicNotFound = errors.New("topic not found")

	// ErrUnsupportedVersion is returned for banks with an unknown format version.
	ErrUnsupportedVersion = errors.New("unsupported bank version")
)

// Question is a single read-only question record.
type Question struct {
	ID     string
	Prompt string
	Kind   Kind

	// Choice questions.
	Options     []string
	Correct     int // index into Options
	Explanation string

	// Written questions.
	Answer   string // reference answer shown on reveal and in feedback
	Keywords []string
	Marks    int

	Hint string // optional for either kind
}

// CorrectOption returns the text of the designated correct option, or ""
// when the question has no valid correct index.
func (q Question) CorrectOption() string {
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return ""
	}
	return q.Options[q.Correct]
}

// HintText returns the hint to display. Written questions without an explicit
// hint fall back to their first keyword.
func (q Question) HintText() string {
	if q.Hint != "" {
		return q.Hint
	}
	if len(q.Keywords) > 0 {
		return fmt.Sprintf("Think about %q.", q.Keywords[0])
	}
	return ""
}

// Topic is a named, ordered bundle of questions.
type Topic struct {
	ID          string
	Title       string
	Description string
	Kind        Kind

	// Marathon topics run on the shorter marathon timer. A marathon topic
	// with no questions of its own combines every other choice topic.
	Marathon bool

	Questions []Question
}

// Dropped describes a question record rejected at load time.
type Dropped struct {
	TopicID string
	Index   int
	Reason  string
}

func (d Dropped) String() string {
	return fmt.Sprintf("%s[%d]: %s", d.TopicID, d.Index, d.Reason)
}

// Bank is a loaded question dataset.
type Bank struct {
	Version string
	Topics  []Topic
	Dropped []Dropped
}

// Topic returns the topic with the given ID.
func (b *Bank) Topic(id string) (Topic, error) {
	for _, t := range b.Topics {
		if t.ID == id {
			return t, nil
		}
	}
	return Topic{}, fmt.Errorf("%w: %q", ErrTopicNotFound, id)
}

// ByKind returns the topics of the given kind, in bank order.
func (b *Bank) ByKind(kind Kind) []Topic {
	var out []Topic
	for _, t := range b.Topics {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// QuestionCount returns the total number of questions across all topics.
func (b *Bank) QuestionCount() int {
	n := 0
	for _, t := range b.Topics {
		n += len(t.Questions)
	}
	return n
}

// FindQuestion looks a question up by ID. IDs are unique across the bank,
// so a marathon copy and its source topic hold the same record.
func (b *Bank) FindQuestion(id string) (Question, bool) {
	for _, t := range b.Topics {
		for _, q := range t.Questions {
			if q.ID == id {
				return q, true
			}
		}
	}
	return Question{}, false
}

// combineMarathons fills empty marathon topics with the questions of every
// non-marathon choice topic. Parse has already dropped any record whose ID
// was taken, so each source question appears exactly once.
func (b *Bank) combineMarathons() {
	for i := range b.Topics {
		t := &b.Topics[i]
		if !t.Marathon || t.Kind != KindChoice || len(t.Questions) > 0 {
			continue
		}
		for _, src := range b.Topics {
			if src.Marathon || src.Kind != KindChoice {
				continue
			}
			t.Questions = append(t.Questions, src.Questions...)
		}
	}
}
