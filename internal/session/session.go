package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/scoring"
)

// Recorder persists finished sessions.
type Recorder interface {
	Record(ctx context.Context, sum *Summary) error
}

// Options configures a Machine. Zero values fall back to defaults.
type Options struct {
	Scorer        scoring.Scorer
	Messages      *scoring.Messages
	Orderer       Orderer
	Durations     Durations
	HintLimit     int
	PassThreshold int

	// Recorder receives the summary of every finished written session.
	Recorder Recorder

	Logger zerolog.Logger
	Clock  func() time.Time
	NewID  func() string
}

// Machine sequences screens, questions, the per-question timer, hints and
// scoring. It is not safe for concurrent use; the UI drives it from a single
// goroutine.
//
// Operations return true when applied and false when the call is not valid
// in the current state, in which case nothing changes.
type Machine struct {
	scorer        scoring.Scorer
	messages      *scoring.Messages
	orderer       Orderer
	durations     Durations
	hintLimit     int
	passThreshold int
	recorder      Recorder
	log           zerolog.Logger
	now           func() time.Time
	newID         func() string

	screen  Screen
	session *Session
	summary *Summary

	// timer is the token of the armed tick, zero when none. gen only grows,
	// so a cancelled token can never match a later one.
	timer int
	gen   int
}

// NewMachine creates a Machine on the home screen.
func NewMachine(opts Options) *Machine {
	m := &Machine{
		scorer:        opts.Scorer,
		messages:      opts.Messages,
		orderer:       opts.Orderer,
		durations:     opts.Durations.withDefaults(),
		hintLimit:     opts.HintLimit,
		passThreshold: opts.PassThreshold,
		recorder:      opts.Recorder,
		log:           opts.Logger.With().Str("component", "session").Logger(),
		now:           opts.Clock,
		newID:         opts.NewID,
	}
	if m.scorer == nil {
		m.scorer = scoring.NewEngine(scoring.Config{PassThreshold: opts.PassThreshold})
	}
	if m.orderer == nil {
		m.orderer = NewShuffleOrderer(0)
	}
	if m.hintLimit <= 0 {
		m.hintLimit = DefaultHintLimit
	}
	if m.passThreshold <= 0 {
		m.passThreshold = scoring.DefaultPassThreshold
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.newID == nil {
		m.newID = func() string { return uuid.New().String() }
	}
	return m
}

// Screen returns the current screen.
func (m *Machine) Screen() Screen { return m.screen }

// TimerToken returns the token the next tick must carry, or zero when no
// timer is armed.
func (m *Machine) TimerToken() int { return m.timer }

// Snapshot returns a copy of the current state for rendering.
func (m *Machine) Snapshot() Snapshot {
	snap := Snapshot{
		Screen:     m.screen,
		HintLimit:  m.hintLimit,
		HintsLeft:  m.hintLimit,
		TimerToken: m.timer,
	}
	if m.session != nil {
		snap.Session = m.session.clone()
		snap.HintsLeft = max(m.hintLimit-m.session.HintsUsed, 0)
		answered := len(m.session.Answers)
		if m.session.Pending != nil {
			answered++
		}
		snap.Standing = scoring.Standing(m.session.Topic.Kind, m.session.RunningScore, answered, m.passThreshold)
	}
	if m.summary != nil {
		s := *m.summary
		snap.Summary = &s
	}
	return snap
}

// OpenTopics moves from home to topic selection.
func (m *Machine) OpenTopics() bool {
	if m.screen != ScreenHome {
		return m.reject("open topics")
	}
	m.setScreen(ScreenTopicSelect)
	return true
}

// SelectTopic starts a session for topic. Choice topics go straight to the
// first question; written topics wait for a mode.
func (m *Machine) SelectTopic(topic bank.Topic) bool {
	if m.screen != ScreenTopicSelect {
		return m.reject("select topic")
	}

	mode, auto := autoMode(topic)
	m.session = m.newSession(topic, mode)
	m.summary = nil
	m.log.Debug().
		Str("session_id", m.session.ID).
		Str("topic", topic.ID).
		Int("questions", len(m.session.Questions)).
		Msg("session created")

	if !auto {
		m.setScreen(ScreenModeSelect)
		return true
	}
	m.start(mode)
	return true
}

// SelectMode picks practice or exam for a written topic and starts the timer.
func (m *Machine) SelectMode(mode Mode) bool {
	if m.screen != ScreenModeSelect || m.session == nil {
		return m.reject("select mode")
	}
	if mode != ModePractice && mode != ModeExam {
		return m.reject("select mode " + string(mode))
	}
	m.start(mode)
	return true
}

// Tick handles one elapsed second of the question timer. Ticks carrying a
// stale token are ignored. When the countdown reaches zero the current draft
// or chosen option is submitted, even when blank.
func (m *Machine) Tick(token int) bool {
	if m.screen != ScreenActive || token == 0 || token != m.timer {
		return false
	}
	s := m.session
	if s.Remaining > 0 {
		s.Remaining--
	}
	if s.Remaining > 0 {
		return true
	}

	q, _ := s.Current()
	m.log.Debug().Str("session_id", s.ID).Str("question", q.ID).Msg("question timed out")
	m.submit(q, m.pendingText(q), true)
	return true
}

// UpdateDraft stores the in-progress written answer so a timeout can
// submit it.
func (m *Machine) UpdateDraft(text string) bool {
	if m.screen != ScreenActive {
		return false
	}
	m.session.Draft = text
	return true
}

// ChooseOption selects an option of the current choice question.
func (m *Machine) ChooseOption(index int) bool {
	if m.screen != ScreenActive {
		return m.reject("choose option")
	}
	q, ok := m.session.Current()
	if !ok || q.Kind != bank.KindChoice || index < 0 || index >= len(q.Options) {
		return m.reject("choose option")
	}
	m.session.Selected = index
	return true
}

// SubmitAnswer scores the current question. For choice questions an empty
// text submits the chosen option; blank written answers and choice
// submissions with nothing chosen are ignored.
func (m *Machine) SubmitAnswer(text string) bool {
	if m.screen != ScreenActive {
		return m.reject("submit")
	}
	q, ok := m.session.Current()
	if !ok {
		return m.reject("submit")
	}

	switch q.Kind {
	case bank.KindChoice:
		if text == "" {
			text = m.pendingText(q)
		}
		if text == "" {
			return m.reject("submit without option")
		}
	default:
		if strings.TrimSpace(text) == "" {
			return m.reject("submit blank answer")
		}
		m.session.Draft = text
	}

	m.submit(q, text, false)
	return true
}

// RevealAnswer exposes the reference answer for the current question. The
// flag is one-shot per question and penalises the written score.
func (m *Machine) RevealAnswer() bool {
	if m.screen != ScreenActive || m.session.Revealed {
		return m.reject("reveal")
	}
	m.session.Revealed = true
	return true
}

// UseHint shows the current question's hint, at most HintLimit times per
// session. Showing it again for the same question is a no-op.
func (m *Machine) UseHint() bool {
	if m.screen != ScreenActive {
		return m.reject("hint")
	}
	s := m.session
	q, _ := s.Current()
	if s.HintShown || s.HintsUsed >= m.hintLimit || q.HintText() == "" {
		return m.reject("hint")
	}
	s.HintsUsed++
	s.HintShown = true
	return true
}

// Advance commits the current answer and moves to the next question, or to
// results after the last one.
func (m *Machine) Advance() bool {
	if m.screen != ScreenFeedback {
		return m.reject("advance")
	}
	s := m.session
	if s.Pending != nil {
		s.Answers = append(s.Answers, *s.Pending)
	}
	s.Cursor++
	if s.Cursor >= len(s.Questions) {
		m.finish()
		return true
	}
	s.resetQuestion()
	m.enterActive()
	return true
}

// Restart starts a fresh session for the same topic and mode.
func (m *Machine) Restart() bool {
	if m.screen != ScreenResults || m.session == nil {
		return m.reject("restart")
	}
	topic, mode := m.session.Topic, m.session.Mode
	m.session = m.newSession(topic, mode)
	m.summary = nil
	m.start(mode)
	return true
}

// ReturnHome tears down any session and goes to the home screen.
func (m *Machine) ReturnHome() bool {
	if m.screen == ScreenHome && m.session == nil {
		return false
	}
	m.teardown()
	m.setScreen(ScreenHome)
	return true
}

// BackToTopics tears down the session and returns to topic selection.
func (m *Machine) BackToTopics() bool {
	if m.screen != ScreenModeSelect && m.screen != ScreenResults {
		return m.reject("back to topics")
	}
	m.teardown()
	m.setScreen(ScreenTopicSelect)
	return true
}

func (m *Machine) newSession(topic bank.Topic, mode Mode) *Session {
	s := &Session{
		ID:        m.newID(),
		Topic:     topic,
		Mode:      mode,
		StartedAt: m.now(),
		Questions: orderQuestions(m.orderer, topic.Questions),
	}
	s.resetQuestion()
	return s
}

// start fixes the mode and its duration and enters the first question.
func (m *Machine) start(mode Mode) {
	s := m.session
	s.Mode = mode
	s.Duration = m.durations.For(mode)
	s.resetQuestion()
	m.enterActive()
}

// enterActive arms a fresh timer for the question under the cursor. A
// session with no question there goes straight to results.
func (m *Machine) enterActive() {
	if _, ok := m.session.Current(); !ok {
		m.finish()
		return
	}
	m.gen++
	m.timer = m.gen
	m.setScreen(ScreenActive)
}

func (m *Machine) submit(q bank.Question, text string, timedOut bool) {
	s := m.session
	m.timer = 0

	res := m.scorer.Score(q, scoring.Submission{Text: text, UsedReveal: s.Revealed})
	fb := m.messages.Classify(q.Kind, res)

	s.Pending = &AnswerRecord{
		QuestionID:       q.ID,
		SubmittedText:    text,
		TimeSpentSeconds: s.Elapsed(),
		Score:            res.Score,
		UsedReveal:       s.Revealed,
		UsedHint:         s.HintShown,
		TimedOut:         timedOut,
		Passed:           res.Passed,
	}
	s.RunningScore += res.Score
	s.Result = &res
	s.Feedback = &fb

	m.log.Debug().
		Str("session_id", s.ID).
		Str("question", q.ID).
		Int("score", res.Score).
		Bool("timed_out", timedOut).
		Msg("answer scored")
	m.setScreen(ScreenFeedback)
}

// pendingText is what a timeout submits: the chosen option or the draft.
func (m *Machine) pendingText(q bank.Question) string {
	s := m.session
	if q.Kind == bank.KindChoice {
		if s.Selected >= 0 && s.Selected < len(q.Options) {
			return q.Options[s.Selected]
		}
		return ""
	}
	return s.Draft
}

func (m *Machine) finish() {
	m.timer = 0
	s := m.session
	s.Pending = nil
	m.summary = BuildSummary(s, m.now())
	m.setScreen(ScreenResults)

	m.log.Info().
		Str("session_id", s.ID).
		Str("topic", s.Topic.ID).
		Int("questions", m.summary.TotalQuestions).
		Int("score", s.RunningScore).
		Msg("session finished")

	if m.recorder == nil || s.Topic.Kind != bank.KindWritten || len(s.Questions) == 0 {
		return
	}
	if err := m.recorder.Record(context.Background(), m.summary); err != nil {
		m.log.Error().Err(err).Str("session_id", s.ID).Msg("failed to record session")
	}
}

func (m *Machine) teardown() {
	m.timer = 0
	m.session = nil
	m.summary = nil
}

func (m *Machine) setScreen(s Screen) {
	if m.screen != s {
		m.log.Debug().Stringer("from", m.screen).Stringer("to", s).Msg("transition")
	}
	m.screen = s
}

func (m *Machine) reject(op string) bool {
	m.log.Debug().Str("op", op).Stringer("screen", m.screen).Msg("transition ignored")
	return false
}
