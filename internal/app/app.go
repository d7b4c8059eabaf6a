package app

import (
	"fmt"
	"math/rand/v2"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/config"
	"github.com/abhisek/quizdeck/internal/ledger"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/home"
	"github.com/abhisek/quizdeck/internal/scoring"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/layout"
)

// Options holds the dependencies for the TUI.
type Options struct {
	Config *config.Config
	Bank   *bank.Bank

	// Book records written sessions. Nil disables the ledger.
	Book *ledger.Book

	Logger zerolog.Logger

	// Topic, when set, starts a session for that topic immediately.
	Topic string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	start  tea.Cmd
	width  int
	height int
}

// NewMachine builds the session state machine from the configuration.
func NewMachine(cfg *config.Config, book *ledger.Book, log zerolog.Logger) *session.Machine {
	var messages *scoring.Messages
	if cfg.Seed != 0 {
		messages = scoring.NewMessages(rand.New(rand.NewPCG(cfg.Seed, cfg.Seed>>1|1)))
	}
	opts := session.Options{
		Scorer:        scoring.NewEngine(scoring.Config{PassThreshold: cfg.PassThreshold}),
		Messages:      messages,
		Orderer:       session.NewShuffleOrderer(cfg.Seed),
		Durations:     cfg.Durations(),
		HintLimit:     cfg.HintLimit,
		PassThreshold: cfg.PassThreshold,
		Logger:        log,
	}
	if book != nil {
		opts.Recorder = book
	}
	return session.NewMachine(opts)
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) (AppModel, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	m := NewMachine(opts.Config, opts.Book, opts.Logger)
	homeScreen := home.New(m, opts.Bank, opts.Config.Durations(), opts.Book)

	model := AppModel{router: router.New(homeScreen)}
	if opts.Topic != "" {
		cmd, err := homeScreen.OpenTopic(opts.Topic)
		if err != nil {
			return AppModel{}, err
		}
		model.start = cmd
	}
	return model, nil
}

func (m AppModel) Init() tea.Cmd {
	return m.start
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok {
				return m, bh.Back()
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render composes header, active screen and footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	model, err := newAppModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
