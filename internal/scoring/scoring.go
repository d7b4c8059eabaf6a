package scoring

import (
	"github.com/abhisek/quizdeck/internal/bank"
)

// DefaultPassThreshold is the written score at or above which feedback is positive.
const DefaultPassThreshold = 70

// Submission is a learner's answer to one question.
type Submission struct {
	// Text is the chosen option text (choice) or the free-text answer (written).
	Text string

	// UsedReveal is set when the reference answer was revealed before submitting.
	UsedReveal bool
}

// Result is the outcome of scoring one submission.
type Result struct {
	// Score is +1 or -1 for choice questions, 0-100 for written questions.
	Score int

	// Passed drives the feedback classification.
	Passed bool

	// Breakdown holds the written sub-scores (nil for choice questions).
	Breakdown *Breakdown
}

// Scorer scores a submission against a question.
type Scorer interface {
	Score(q bank.Question, sub Submission) Result
}

// Policy scores one kind of question.
type Policy interface {
	Score(q bank.Question, sub Submission) Result
}

// Config holds the tunable scoring constants.
type Config struct {
	PassThreshold int
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{PassThreshold: DefaultPassThreshold}
}

// Engine routes submissions to the policy for the question's kind.
type Engine struct {
	policies map[bank.Kind]Policy
}

var _ Scorer = (*Engine)(nil)

// NewEngine installs the built-in choice and written policies.
func NewEngine(cfg Config) *Engine {
	if cfg.PassThreshold <= 0 {
		cfg.PassThreshold = DefaultPassThreshold
	}
	return &Engine{
		policies: map[bank.Kind]Policy{
			bank.KindChoice:  ChoicePolicy{},
			bank.KindWritten: WrittenPolicy{PassThreshold: cfg.PassThreshold},
		},
	}
}

// Score implements Scorer. Questions of an unknown kind score zero and fail.
func (e *Engine) Score(q bank.Question, sub Submission) Result {
	p, ok := e.policies[q.Kind]
	if !ok {
		return Result{}
	}
	return p.Score(q, sub)
}
