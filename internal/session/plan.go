package session

import "github.com/abhisek/quizdeck/internal/bank"

// Mode is how a topic is run. Choice topics pick their mode automatically;
// written topics ask the learner for practice or exam.
type Mode string

const (
	ModeQuiz     Mode = "quiz"     // choice topic
	ModeMarathon Mode = "marathon" // choice marathon topic, shorter timer
	ModePractice Mode = "practice" // written topic, long timer
	ModeExam     Mode = "exam"     // written topic, short timer
)

// Per-question timer defaults, in seconds.
const (
	DefaultChoiceSeconds   = 60
	DefaultMarathonSeconds = 30
	DefaultPracticeSeconds = 600
	DefaultExamSeconds     = 300

	// DefaultHintLimit is the number of hints allowed per session.
	DefaultHintLimit = 4
)

// Durations holds the per-question timer length for each mode.
type Durations struct {
	Choice   int
	Marathon int
	Practice int
	Exam     int
}

// DefaultDurations returns the production timer lengths.
func DefaultDurations() Durations {
	return Durations{
		Choice:   DefaultChoiceSeconds,
		Marathon: DefaultMarathonSeconds,
		Practice: DefaultPracticeSeconds,
		Exam:     DefaultExamSeconds,
	}
}

// For returns the duration for a mode, or zero for an unknown one.
func (d Durations) For(m Mode) int {
	switch m {
	case ModeQuiz:
		return d.Choice
	case ModeMarathon:
		return d.Marathon
	case ModePractice:
		return d.Practice
	case ModeExam:
		return d.Exam
	}
	return 0
}

func (d Durations) withDefaults() Durations {
	def := DefaultDurations()
	if d.Choice <= 0 {
		d.Choice = def.Choice
	}
	if d.Marathon <= 0 {
		d.Marathon = def.Marathon
	}
	if d.Practice <= 0 {
		d.Practice = def.Practice
	}
	if d.Exam <= 0 {
		d.Exam = def.Exam
	}
	return d
}

// autoMode is the mode a topic starts in without a mode-select step.
// Written topics return false.
func autoMode(t bank.Topic) (Mode, bool) {
	if t.Kind != bank.KindChoice {
		return "", false
	}
	if t.Marathon {
		return ModeMarathon, true
	}
	return ModeQuiz, true
}

// WrittenModes lists the modes offered on the mode-select screen.
var WrittenModes = []Mode{ModePractice, ModeExam}
