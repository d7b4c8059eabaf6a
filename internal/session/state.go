package session

import (
	"time"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/scoring"
)

// Screen is the state machine's current screen.
type Screen int

const (
	ScreenHome        Screen = iota // Landing screen, no session
	ScreenTopicSelect               // Choosing a topic, no session
	ScreenModeSelect                // Written topic chosen, choosing practice or exam
	ScreenActive                    // Answering the current question, timer running
	ScreenFeedback                  // Showing the result for the current question
	ScreenResults                   // Session finished
)

var screenNames = [...]string{"home", "topicSelect", "modeSelect", "active", "feedback", "results"}

func (s Screen) String() string {
	if int(s) < 0 || int(s) >= len(screenNames) {
		return "unknown"
	}
	return screenNames[s]
}

// AnswerRecord is the outcome of one question. It is never mutated once
// committed to the session's answer log.
type AnswerRecord struct {
	QuestionID       string
	SubmittedText    string
	TimeSpentSeconds int
	Score            int
	UsedReveal       bool
	UsedHint         bool
	TimedOut         bool
	Passed           bool
}

// Session is the mutable aggregate for one run through a topic. Which fields
// are meaningful depends on the screen:
//
//   - active: Cursor < len(Questions); Pending is nil; Remaining counts down.
//   - feedback: Pending holds the current question's record and Feedback
//     its classification; the timer is stopped.
//   - results: Cursor == len(Questions) == len(Answers).
//
// In active and feedback len(Answers) == Cursor.
type Session struct {
	ID        string
	Topic     bank.Topic
	Mode      Mode
	StartedAt time.Time

	// Questions is the ordered question set, choice options already shuffled.
	Questions []bank.Question
	Cursor    int

	Duration  int // seconds allowed per question
	Remaining int

	RunningScore int
	Answers      []AnswerRecord
	HintsUsed    int

	// Per-question flags, cleared on advance.
	Revealed  bool
	HintShown bool
	Selected  int // chosen option index, -1 when none
	Draft     string

	Pending  *AnswerRecord
	Result   *scoring.Result
	Feedback *scoring.Feedback
}

// Current returns the question under the cursor, or false past the end.
func (s *Session) Current() (bank.Question, bool) {
	if s == nil || s.Cursor < 0 || s.Cursor >= len(s.Questions) {
		return bank.Question{}, false
	}
	return s.Questions[s.Cursor], true
}

// IsLast reports whether the cursor is on the final question.
func (s *Session) IsLast() bool {
	return s.Cursor >= len(s.Questions)-1
}

// Elapsed is the number of seconds spent on the current question.
func (s *Session) Elapsed() int {
	return s.Duration - s.Remaining
}

func (s *Session) resetQuestion() {
	s.Remaining = s.Duration
	s.Revealed = false
	s.HintShown = false
	s.Selected = -1
	s.Draft = ""
	s.Pending = nil
	s.Result = nil
	s.Feedback = nil
}

func (s *Session) clone() *Session {
	c := *s
	c.Answers = append([]AnswerRecord(nil), s.Answers...)
	if s.Pending != nil {
		p := *s.Pending
		c.Pending = &p
	}
	if s.Result != nil {
		r := *s.Result
		c.Result = &r
	}
	if s.Feedback != nil {
		f := *s.Feedback
		c.Feedback = &f
	}
	return &c
}

// Snapshot is a read-only copy of the machine state for rendering.
type Snapshot struct {
	Screen     Screen
	Session    *Session // nil on home and topic select
	Summary    *Summary // set on results
	HintLimit  int
	HintsLeft  int
	TimerToken int // non-zero while a tick is expected
	Standing   string
}
