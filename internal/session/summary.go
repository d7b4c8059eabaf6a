package session

import (
	"time"

	"github.com/abhisek/quizdeck/internal/bank"
)

// Summary holds the data displayed on the results screen and recorded in
// the ledger.
type Summary struct {
	SessionID  string
	TopicID    string
	TopicTitle string
	Kind       bank.Kind
	Mode       Mode

	TotalQuestions int
	Passed         int
	TimedOut       int
	Revealed       int
	HintsUsed      int
	RunningScore   int

	// PointsEarned and PointsPossible are in marks: one per choice question,
	// the question's marks scaled by the 0-100 score for written ones.
	PointsEarned   float64
	PointsPossible int

	Answers     []AnswerRecord
	Duration    time.Duration
	CompletedAt time.Time
}

// Percent returns earned over possible points as a percentage.
func (s *Summary) Percent() float64 {
	if s.PointsPossible == 0 {
		return 0
	}
	return s.PointsEarned / float64(s.PointsPossible) * 100
}

// AverageScore is the mean per-question score (0-100 for written topics).
func (s *Summary) AverageScore() float64 {
	if len(s.Answers) == 0 {
		return 0
	}
	return float64(s.RunningScore) / float64(len(s.Answers))
}

// BuildSummary creates a Summary from a finished session.
func BuildSummary(s *Session, now time.Time) *Summary {
	sum := &Summary{
		SessionID:      s.ID,
		TopicID:        s.Topic.ID,
		TopicTitle:     s.Topic.Title,
		Kind:           s.Topic.Kind,
		Mode:           s.Mode,
		TotalQuestions: len(s.Questions),
		HintsUsed:      s.HintsUsed,
		RunningScore:   s.RunningScore,
		Answers:        append([]AnswerRecord(nil), s.Answers...),
		Duration:       now.Sub(s.StartedAt),
		CompletedAt:    now,
	}

	marks := make(map[string]int, len(s.Questions))
	for _, q := range s.Questions {
		marks[q.ID] = questionMarks(q)
		sum.PointsPossible += marks[q.ID]
	}

	for _, a := range s.Answers {
		if a.Passed {
			sum.Passed++
		}
		if a.TimedOut {
			sum.TimedOut++
		}
		if a.UsedReveal {
			sum.Revealed++
		}
		switch s.Topic.Kind {
		case bank.KindWritten:
			sum.PointsEarned += float64(a.Score) / 100 * float64(marks[a.QuestionID])
		default:
			if a.Passed {
				sum.PointsEarned += float64(marks[a.QuestionID])
			}
		}
	}
	return sum
}

func questionMarks(q bank.Question) int {
	if q.Kind == bank.KindWritten {
		return q.Marks
	}
	return 1
}
