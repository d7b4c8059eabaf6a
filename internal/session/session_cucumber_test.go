//go:build cucumber

package session

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"
)

type sessionState struct {
	machine *Machine
	hintOK  bool
}

func TestSessionFeature(t *testing.T) {
	featurePath := filepath.Join("..", "..", "features", "session.feature")
	suite := godog.TestSuite{
		Name:                "session",
		ScenarioInitializer: initializeSessionScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{featurePath},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

func initializeSessionScenario(ctx *godog.ScenarioContext) {
	state := &sessionState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*state = sessionState{}
		return ctx, nil
	})

	ctx.Step(`^a written topic with (\d+) questions$`, state.aWrittenTopic)
	ctx.Step(`^the timer runs out$`, state.theTimerRunsOut)
	ctx.Step(`^I used a hint on each of the first (\d+) questions$`, state.iUsedHints)
	ctx.Step(`^I ask for a hint$`, state.iAskForAHint)
	ctx.Step(`^I answer every question with "([^"]*)"$`, state.iAnswerEveryQuestion)
	ctx.Step(`^the session is on the (\w+) screen$`, state.theSessionIsOn)
	ctx.Step(`^the answer scored (\d+)$`, state.theAnswerScored)
	ctx.Step(`^the feedback is negative$`, state.theFeedbackIsNegative)
	ctx.Step(`^the hint is refused$`, state.theHintIsRefused)
	ctx.Step(`^the hint counter is (\d+)$`, state.theHintCounterIs)
	ctx.Step(`^(\d+) answers are recorded$`, state.answersAreRecorded)
}

// aWrittenTopic starts a practice session over n written questions.
func (s *sessionState) aWrittenTopic(n int) error {
	s.machine = newTestMachine(nil)
	if !s.machine.OpenTopics() || !s.machine.SelectTopic(writtenTopic(n)) {
		return fmt.Errorf("could not select the topic")
	}
	if !s.machine.SelectMode(ModePractice) {
		return fmt.Errorf("could not select practice mode")
	}
	return nil
}

// theTimerRunsOut ticks the current token until the question times out.
func (s *sessionState) theTimerRunsOut() error {
	for i := 0; i <= testDurations.Practice; i++ {
		if s.machine.Screen() != ScreenActive {
			return nil
		}
		if !s.machine.Tick(s.machine.TimerToken()) {
			return fmt.Errorf("tick %d was ignored", i)
		}
	}
	if s.machine.Screen() != ScreenFeedback {
		return fmt.Errorf("still on %s after the countdown", s.machine.Screen())
	}
	return nil
}

func (s *sessionState) iUsedHints(n int) error {
	for i := 0; i < n; i++ {
		if !s.machine.UseHint() {
			return fmt.Errorf("hint %d refused", i+1)
		}
		if !s.machine.SubmitAnswer("An answer.") || !s.machine.Advance() {
			return fmt.Errorf("could not move past question %d", i+1)
		}
	}
	return nil
}

func (s *sessionState) iAskForAHint() error {
	s.hintOK = s.machine.UseHint()
	return nil
}

func (s *sessionState) iAnswerEveryQuestion(text string) error {
	for s.machine.Screen() == ScreenActive {
		if !s.machine.SubmitAnswer(text) {
			return fmt.Errorf("submit refused")
		}
		if !s.machine.Advance() {
			return fmt.Errorf("advance refused")
		}
	}
	return nil
}

func (s *sessionState) theSessionIsOn(name string) error {
	if got := s.machine.Screen().String(); got != name {
		return fmt.Errorf("screen %q, want %q", got, name)
	}
	return nil
}

func (s *sessionState) theAnswerScored(want int) error {
	rec := s.machine.Snapshot().Session.Pending
	if rec == nil {
		return fmt.Errorf("no pending answer")
	}
	if rec.Score != want {
		return fmt.Errorf("score %d, want %d", rec.Score, want)
	}
	if !rec.TimedOut {
		return fmt.Errorf("answer was not marked as timed out")
	}
	return nil
}

func (s *sessionState) theFeedbackIsNegative() error {
	fb := s.machine.Snapshot().Session.Feedback
	if fb == nil {
		return fmt.Errorf("no feedback")
	}
	if fb.Positive {
		return fmt.Errorf("feedback %q is positive", fb.Headline)
	}
	return nil
}

func (s *sessionState) theHintIsRefused() error {
	if s.hintOK {
		return fmt.Errorf("hint was granted")
	}
	return nil
}

func (s *sessionState) theHintCounterIs(want int) error {
	if got := s.machine.Snapshot().Session.HintsUsed; got != want {
		return fmt.Errorf("hints used %d, want %d", got, want)
	}
	return nil
}

func (s *sessionState) answersAreRecorded(want int) error {
	if got := len(s.machine.Snapshot().Session.Answers); got != want {
		return fmt.Errorf("%d answers, want %d", got, want)
	}
	return nil
}
