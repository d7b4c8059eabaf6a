package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/bank"
)

const strategyAnswer = "However, this demonstrates strategic alignment. For example, cost leadership shows clear examples. Furthermore, differentiation matters."

var testDurations = Durations{Choice: 3, Marathon: 2, Practice: 5, Exam: 4}

type fakeRecorder struct {
	summaries []*Summary
	err       error
}

func (r *fakeRecorder) Record(_ context.Context, sum *Summary) error {
	r.summaries = append(r.summaries, sum)
	return r.err
}

func choiceTopic(n int) bank.Topic {
	t := bank.Topic{ID: "choice", Title: "Choice", Kind: bank.KindChoice}
	for i := 0; i < n; i++ {
		t.Questions = append(t.Questions, bank.Question{
			ID:      fmt.Sprintf("c%d", i),
			Prompt:  "pick a",
			Kind:    bank.KindChoice,
			Options: []string{"a", "b", "c"},
			Correct: 0,
			Marks:   1,
		})
	}
	return t
}

func writtenTopic(n int) bank.Topic {
	t := bank.Topic{ID: "essay", Title: "Essay", Kind: bank.KindWritten}
	for i := 0; i < n; i++ {
		t.Questions = append(t.Questions, bank.Question{
			ID:       fmt.Sprintf("w%d", i),
			Prompt:   "discuss strategy",
			Kind:     bank.KindWritten,
			Answer:   "reference",
			Keywords: []string{"strategic alignment", "cost leadership", "differentiation"},
			Marks:    10,
			Hint:     "think about Porter",
		})
	}
	return t
}

func newTestMachine(rec Recorder) *Machine {
	ids := 0
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return NewMachine(Options{
		Orderer:   IdentityOrderer{},
		Durations: testDurations,
		Recorder:  rec,
		Logger:    zerolog.Nop(),
		Clock: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
		NewID: func() string {
			ids++
			return fmt.Sprintf("session-%d", ids)
		},
	})
}

func startTopic(t *testing.T, m *Machine, topic bank.Topic) {
	t.Helper()
	require.True(t, m.OpenTopics())
	require.True(t, m.SelectTopic(topic))
}

func TestChoiceSessionFlow(t *testing.T) {
	rec := &fakeRecorder{}
	m := newTestMachine(rec)
	assert.Equal(t, ScreenHome, m.Screen())

	startTopic(t, m, choiceTopic(2))
	snap := m.Snapshot()
	require.Equal(t, ScreenActive, snap.Screen, "choice topics skip mode select")
	assert.Equal(t, ModeQuiz, snap.Session.Mode)
	assert.Equal(t, testDurations.Choice, snap.Session.Remaining)
	assert.NotZero(t, snap.TimerToken)

	require.True(t, m.ChooseOption(0))
	require.True(t, m.SubmitAnswer(""))
	snap = m.Snapshot()
	assert.Equal(t, ScreenFeedback, snap.Screen)
	assert.Zero(t, snap.TimerToken)
	assert.Equal(t, 1, snap.Session.RunningScore)
	assert.Len(t, snap.Session.Answers, snap.Session.Cursor)
	require.NotNil(t, snap.Session.Pending)
	assert.True(t, snap.Session.Pending.Passed)
	assert.True(t, snap.Session.Feedback.Positive)

	require.True(t, m.Advance())
	snap = m.Snapshot()
	assert.Equal(t, ScreenActive, snap.Screen)
	assert.Equal(t, 1, snap.Session.Cursor)
	assert.Len(t, snap.Session.Answers, 1)
	assert.Equal(t, -1, snap.Session.Selected)

	require.True(t, m.SubmitAnswer("b"))
	assert.Equal(t, 0, m.Snapshot().Session.RunningScore)

	require.True(t, m.Advance())
	snap = m.Snapshot()
	require.Equal(t, ScreenResults, snap.Screen, "advancing past the last question ends the session")
	require.NotNil(t, snap.Summary)
	assert.Equal(t, 2, snap.Summary.TotalQuestions)
	assert.Equal(t, 1, snap.Summary.Passed)
	assert.Equal(t, 0, snap.Summary.RunningScore)
	assert.InDelta(t, 50.0, snap.Summary.Percent(), 1e-9)
	assert.Len(t, snap.Session.Answers, 2)
	assert.Empty(t, rec.summaries, "choice sessions are not recorded")
}

func TestMarathonTopicUsesMarathonTimer(t *testing.T) {
	m := newTestMachine(nil)
	topic := choiceTopic(1)
	topic.Marathon = true
	startTopic(t, m, topic)

	snap := m.Snapshot()
	assert.Equal(t, ModeMarathon, snap.Session.Mode)
	assert.Equal(t, testDurations.Marathon, snap.Session.Remaining)
}

func TestWrittenSessionFlow(t *testing.T) {
	rec := &fakeRecorder{}
	m := newTestMachine(rec)

	startTopic(t, m, writtenTopic(1))
	require.Equal(t, ScreenModeSelect, m.Screen())
	assert.Zero(t, m.TimerToken())

	assert.False(t, m.SelectMode(ModeQuiz))
	require.True(t, m.SelectMode(ModeExam))
	snap := m.Snapshot()
	assert.Equal(t, ScreenActive, snap.Screen)
	assert.Equal(t, testDurations.Exam, snap.Session.Remaining)

	assert.False(t, m.SubmitAnswer("   "), "blank written answers are ignored")
	assert.Equal(t, ScreenActive, m.Screen())

	require.True(t, m.SubmitAnswer(strategyAnswer))
	snap = m.Snapshot()
	assert.Equal(t, 75, snap.Session.Pending.Score)
	assert.True(t, snap.Session.Feedback.Positive)
	assert.Empty(t, snap.Session.Feedback.Suggestions)

	require.True(t, m.Advance())
	require.Equal(t, ScreenResults, m.Screen())
	require.Len(t, rec.summaries, 1)
	assert.Equal(t, "essay", rec.summaries[0].TopicID)
	assert.InDelta(t, 7.5, rec.summaries[0].PointsEarned, 1e-9)
	assert.Equal(t, 10, rec.summaries[0].PointsPossible)
}

func TestRecorderErrorDoesNotBlockResults(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	m := newTestMachine(rec)
	startTopic(t, m, writtenTopic(1))
	require.True(t, m.SelectMode(ModePractice))
	require.True(t, m.SubmitAnswer("an answer"))
	require.True(t, m.Advance())

	assert.Equal(t, ScreenResults, m.Screen())
	assert.Len(t, rec.summaries, 1)
}

func TestInvalidTransitionsAreIgnored(t *testing.T) {
	m := newTestMachine(nil)

	assert.False(t, m.SubmitAnswer("a"))
	assert.False(t, m.Advance())
	assert.False(t, m.RevealAnswer())
	assert.False(t, m.UseHint())
	assert.False(t, m.SelectTopic(choiceTopic(1)), "topic select requires the topic screen")
	assert.False(t, m.SelectMode(ModeExam))
	assert.False(t, m.Restart())
	assert.False(t, m.BackToTopics())
	assert.False(t, m.ReturnHome(), "already home")
	assert.Equal(t, ScreenHome, m.Screen())

	startTopic(t, m, choiceTopic(1))
	assert.False(t, m.Advance(), "advance requires feedback")
	assert.False(t, m.SubmitAnswer(""), "no option chosen")
	assert.False(t, m.ChooseOption(7))
	assert.False(t, m.OpenTopics())
	assert.Equal(t, ScreenActive, m.Screen())
}

func TestTimeoutWithoutAnswerScoresZero(t *testing.T) {
	m := newTestMachine(nil)
	startTopic(t, m, writtenTopic(2))
	require.True(t, m.SelectMode(ModeExam))

	token := m.TimerToken()
	prev := m.Snapshot().Session.Remaining
	for i := 0; i < testDurations.Exam-1; i++ {
		require.True(t, m.Tick(token))
		rem := m.Snapshot().Session.Remaining
		assert.Less(t, rem, prev)
		prev = rem
		assert.Equal(t, ScreenActive, m.Screen())
	}
	require.True(t, m.Tick(token))

	snap := m.Snapshot()
	require.Equal(t, ScreenFeedback, snap.Screen)
	assert.Equal(t, 0, snap.Session.Pending.Score)
	assert.True(t, snap.Session.Pending.TimedOut)
	assert.Equal(t, testDurations.Exam, snap.Session.Pending.TimeSpentSeconds)
	assert.False(t, snap.Session.Feedback.Positive)
	assert.NotEmpty(t, snap.Session.Feedback.Suggestions)
	assert.False(t, m.Tick(token), "timer is cancelled in feedback")
}

func TestTimeoutSubmitsDraft(t *testing.T) {
	m := newTestMachine(nil)
	startTopic(t, m, writtenTopic(1))
	require.True(t, m.SelectMode(ModeExam))
	require.True(t, m.UpdateDraft(strategyAnswer))

	token := m.TimerToken()
	for i := 0; i < testDurations.Exam; i++ {
		m.Tick(token)
	}
	snap := m.Snapshot()
	require.Equal(t, ScreenFeedback, snap.Screen)
	assert.Equal(t, 75, snap.Session.Pending.Score)
	assert.True(t, snap.Session.Pending.TimedOut)
}

func TestChoiceTimeoutCountsAsWrong(t *testing.T) {
	m := newTestMachine(nil)
	startTopic(t, m, choiceTopic(1))

	token := m.TimerToken()
	for i := 0; i < testDurations.Choice; i++ {
		m.Tick(token)
	}
	snap := m.Snapshot()
	require.Equal(t, ScreenFeedback, snap.Screen)
	assert.Equal(t, -1, snap.Session.RunningScore)
}

func TestStaleTicksAreIgnored(t *testing.T) {
	m := newTestMachine(nil)
	startTopic(t, m, choiceTopic(2))

	first := m.TimerToken()
	require.True(t, m.Tick(first))
	require.True(t, m.SubmitAnswer("a"))
	require.True(t, m.Advance())

	second := m.TimerToken()
	require.NotZero(t, second)
	assert.NotEqual(t, first, second)

	assert.False(t, m.Tick(first))
	assert.Equal(t, testDurations.Choice, m.Snapshot().Session.Remaining, "timer resets on every question")
	assert.False(t, m.Tick(0))

	require.True(t, m.ReturnHome())
	assert.Zero(t, m.TimerToken())
	assert.False(t, m.Tick(second))
}

func TestRevealPenalty(t *testing.T) {
	m := newTestMachine(nil)
	startTopic(t, m, writtenTopic(1))
	require.True(t, m.SelectMode(ModePractice))

	require.True(t, m.RevealAnswer())
	assert.False(t, m.RevealAnswer(), "reveal is one-shot")
	require.True(t, m.SubmitAnswer(strategyAnswer))

	snap := m.Snapshot()
	assert.Equal(t, 74, snap.Session.Pending.Score)
	assert.True(t, snap.Session.Pending.UsedReveal)
	assert.False(t, m.RevealAnswer(), "reveal is only valid before submission")
}

func TestHintLimitIsSessionWide(t *testing.T) {
	m := newTestMachine(nil)
	startTopic(t, m, writtenTopic(6))
	require.True(t, m.SelectMode(ModePractice))

	for i := 0; i < 6; i++ {
		used := m.Snapshot().Session.HintsUsed
		if used < DefaultHintLimit {
			require.True(t, m.UseHint(), "question %d", i)
			assert.False(t, m.UseHint(), "second hint on the same question")
		} else {
			assert.False(t, m.UseHint(), "hints exhausted")
		}
		require.True(t, m.SubmitAnswer("answer"))
		require.True(t, m.Advance())
	}

	snap := m.Snapshot()
	assert.Equal(t, ScreenResults, snap.Screen)
	assert.Equal(t, DefaultHintLimit, snap.Summary.HintsUsed)
}

func TestHintsExhaustedIsNoop(t *testing.T) {
	m := NewMachine(Options{Orderer: IdentityOrderer{}, HintLimit: 4, Logger: zerolog.Nop()})
	require.True(t, m.OpenTopics())
	require.True(t, m.SelectTopic(writtenTopic(5)))
	require.True(t, m.SelectMode(ModeExam))

	for i := 0; i < 4; i++ {
		require.True(t, m.UseHint())
		require.True(t, m.SubmitAnswer("x"))
		require.True(t, m.Advance())
	}
	assert.False(t, m.UseHint())
	snap := m.Snapshot()
	assert.Equal(t, 4, snap.Session.HintsUsed)
	assert.Equal(t, 0, snap.HintsLeft)
	assert.False(t, snap.Session.HintShown)
}

func TestChoiceQuestionWithoutHint(t *testing.T) {
	m := newTestMachine(nil)
	startTopic(t, m, choiceTopic(1))
	assert.False(t, m.UseHint())
	assert.Equal(t, 0, m.Snapshot().Session.HintsUsed)
}

func TestEmptyTopicGoesStraightToResults(t *testing.T) {
	rec := &fakeRecorder{}

	m := newTestMachine(rec)
	startTopic(t, m, choiceTopic(0))
	snap := m.Snapshot()
	require.Equal(t, ScreenResults, snap.Screen)
	assert.Equal(t, 0, snap.Summary.TotalQuestions)
	assert.Zero(t, snap.TimerToken)

	m = newTestMachine(rec)
	startTopic(t, m, writtenTopic(0))
	require.True(t, m.SelectMode(ModeExam))
	snap = m.Snapshot()
	require.Equal(t, ScreenResults, snap.Screen)
	assert.Equal(t, 0, snap.Summary.TotalQuestions)
	assert.Empty(t, rec.summaries)
}

func TestRestartKeepsTopicAndMode(t *testing.T) {
	m := newTestMachine(nil)
	startTopic(t, m, writtenTopic(1))
	require.True(t, m.SelectMode(ModeExam))
	require.True(t, m.SubmitAnswer("answer"))
	require.True(t, m.Advance())

	before := m.Snapshot()
	require.True(t, m.Restart())
	after := m.Snapshot()

	assert.Equal(t, ScreenActive, after.Screen)
	assert.Equal(t, ModeExam, after.Session.Mode)
	assert.Equal(t, "essay", after.Session.Topic.ID)
	assert.NotEqual(t, before.Session.ID, after.Session.ID)
	assert.Equal(t, 0, after.Session.Cursor)
	assert.Empty(t, after.Session.Answers)
	assert.Equal(t, 0, after.Session.RunningScore)
	assert.Nil(t, after.Summary)
}

func TestBackToTopicsAndHome(t *testing.T) {
	m := newTestMachine(nil)
	startTopic(t, m, writtenTopic(1))
	require.True(t, m.BackToTopics())
	assert.Equal(t, ScreenTopicSelect, m.Screen())
	assert.Nil(t, m.Snapshot().Session)

	require.True(t, m.SelectTopic(choiceTopic(1)))
	assert.False(t, m.BackToTopics(), "not from an active question")
	require.True(t, m.ReturnHome())
	snap := m.Snapshot()
	assert.Equal(t, ScreenHome, snap.Screen)
	assert.Nil(t, snap.Session)
}

func TestSnapshotIsACopy(t *testing.T) {
	m := newTestMachine(nil)
	startTopic(t, m, choiceTopic(2))
	require.True(t, m.SubmitAnswer("a"))
	require.True(t, m.Advance())

	snap := m.Snapshot()
	snap.Session.Answers[0].Score = 99
	snap.Session.RunningScore = 99
	assert.Equal(t, 1, m.Snapshot().Session.Answers[0].Score)
	assert.Equal(t, 1, m.Snapshot().Session.RunningScore)
}

// TestAnswerLogMatchesCursor drives the machine with random operations and
// checks the session invariants after each one.
func TestAnswerLogMatchesCursor(t *testing.T) {
	topics := []bank.Topic{choiceTopic(3), writtenTopic(2), choiceTopic(0), writtenTopic(0)}
	texts := []string{"", "  ", "a", "b", strategyAnswer}
	modes := []Mode{ModeQuiz, ModePractice, ModeExam, "bogus"}

	rng := rand.New(rand.NewPCG(42, 99))
	m := newTestMachine(&fakeRecorder{})

	var lastToken, lastRemaining int
	for step := 0; step < 5000; step++ {
		switch rng.IntN(13) {
		case 0:
			m.OpenTopics()
		case 1:
			m.SelectTopic(topics[rng.IntN(len(topics))])
		case 2:
			m.SelectMode(modes[rng.IntN(len(modes))])
		case 3, 4, 5:
			if rng.IntN(4) == 0 {
				m.Tick(rng.IntN(m.gen + 2))
			} else {
				m.Tick(m.TimerToken())
			}
		case 6:
			m.SubmitAnswer(texts[rng.IntN(len(texts))])
		case 7:
			m.ChooseOption(rng.IntN(4))
		case 8:
			m.RevealAnswer()
		case 9:
			m.UseHint()
		case 10:
			m.Advance()
		case 11:
			m.UpdateDraft(texts[rng.IntN(len(texts))])
		case 12:
			switch rng.IntN(3) {
			case 0:
				m.Restart()
			case 1:
				m.ReturnHome()
			default:
				m.BackToTopics()
			}
		}

		snap := m.Snapshot()
		s := snap.Session
		switch snap.Screen {
		case ScreenActive:
			require.NotNil(t, s)
			require.Less(t, s.Cursor, len(s.Questions), "step %d", step)
			require.Equal(t, s.Cursor, len(s.Answers), "step %d", step)
			require.Nil(t, s.Pending)
			require.NotZero(t, snap.TimerToken)
			if snap.TimerToken == lastToken {
				require.LessOrEqual(t, s.Remaining, lastRemaining, "step %d", step)
			}
			lastToken, lastRemaining = snap.TimerToken, s.Remaining
		case ScreenFeedback:
			require.NotNil(t, s)
			require.Less(t, s.Cursor, len(s.Questions))
			require.Equal(t, s.Cursor, len(s.Answers), "step %d", step)
			require.NotNil(t, s.Pending)
			require.Zero(t, snap.TimerToken)
		case ScreenResults:
			require.NotNil(t, s)
			require.Equal(t, len(s.Questions), s.Cursor)
			require.Equal(t, len(s.Questions), len(s.Answers))
			require.NotNil(t, snap.Summary)
		case ScreenHome, ScreenTopicSelect:
			require.Nil(t, s)
			require.Zero(t, snap.TimerToken)
		}
	}
}
