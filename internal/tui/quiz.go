// Package tui renders an interactive quiz in the terminal.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/w0uf/rangetrainer/internal/quiz"
	"github.com/w0uf/rangetrainer/internal/ranges"
)

// Model is the Bubble Tea model for a quiz run over a fixed set of
// situations.
type Model struct {
	builder    *quiz.Builder
	session    *quiz.Session
	situations []*ranges.Situation
	logger     *log.Logger

	progress progress.Model

	question *quiz.Question
	level    int
	cursor   int
	answered bool
	lastGood bool

	total    int
	finished bool
	quitting bool
	loadErr  string
}

// New creates a quiz model asking total questions drawn from the given
// situations.
func New(builder *quiz.Builder, session *quiz.Session, situations []*ranges.Situation, total int, logger *log.Logger) *Model {
	return &Model{
		builder:    builder,
		session:    session,
		situations: situations,
		logger:     logger.WithPrefix("tui"),
		progress:   progress.New(progress.WithDefaultGradient()),
		total:      total,
	}
}

// nextQuestionMsg carries a freshly built question into the model.
type nextQuestionMsg struct {
	question *quiz.Question
	err      error
}

// Init builds the first question.
func (m *Model) Init() tea.Cmd {
	return m.nextQuestion()
}

// nextQuestion tries situations until one yields a question. Both
// question kinds are attempted so drill-downs appear when the data
// supports them.
func (m *Model) nextQuestion() tea.Cmd {
	return func() tea.Msg {
		const maxAttempts = 20
		for attempt := 0; attempt < maxAttempts; attempt++ {
			s := m.situations[m.builder.Rand().IntN(len(m.situations))]
			var q *quiz.Question
			var err error
			if m.builder.Rand().Float64() < 0.25 {
				q, err = m.builder.DrillDown(s, m.session)
			} else {
				q, err = m.builder.Simple(s, m.session)
			}
			if errors.Is(err, quiz.ErrNoQuestion) || errors.Is(err, ranges.ErrMalformedSituation) {
				continue
			}
			if err != nil {
				return nextQuestionMsg{err: err}
			}
			m.session.MarkUsed(q.Hand)
			return nextQuestionMsg{question: q}
		}
		return nextQuestionMsg{err: quiz.ErrNoQuestion}
	}
}

// Update handles key presses and question delivery.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = min(msg.Width-4, 60)
		return m, nil

	case nextQuestionMsg:
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			m.finished = true
			return m, nil
		}
		m.question = msg.question
		m.level = 0
		m.cursor = 0
		m.answered = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit
	}

	if m.finished || m.question == nil {
		return m, nil
	}

	options := m.currentOptions()
	switch msg.String() {
	case "up", "k":
		if !m.answered && m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if !m.answered && m.cursor < len(options)-1 {
			m.cursor++
		}
	case "1", "2", "3":
		if !m.answered {
			idx := int(msg.String()[0] - '1')
			if idx < len(options) {
				m.cursor = idx
				return m.submit()
			}
		}
	case "enter", " ":
		if m.answered {
			return m.advance()
		}
		return m.submit()
	}
	return m, nil
}

// submit grades the highlighted option against the current level.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	options := m.currentOptions()
	correct := m.currentCorrect()
	m.lastGood = options[m.cursor] == correct
	m.answered = true
	m.session.Record(m.lastGood)
	m.logger.Debug("answered", "hand", m.question.Hand, "given", options[m.cursor], "correct", correct)
	return m, nil
}

// advance moves to the next level of a drill-down, or to the next
// question.
func (m *Model) advance() (tea.Model, tea.Cmd) {
	if m.lastGood && m.level < len(m.question.Levels)-1 {
		m.level++
		m.cursor = 0
		m.answered = false
		return m, nil
	}
	if m.session.Total >= m.total {
		m.finished = true
		return m, nil
	}
	return m, m.nextQuestion()
}

func (m *Model) currentOptions() []ranges.Action {
	if len(m.question.Levels) > 0 {
		return m.question.Levels[m.level].Options
	}
	return m.question.Options
}

func (m *Model) currentCorrect() ranges.Action {
	if len(m.question.Levels) > 0 {
		return m.question.Levels[m.level].CorrectAnswer
	}
	return m.question.CorrectAnswer
}

func (m *Model) currentText() string {
	if len(m.question.Levels) > 0 {
		return m.question.Levels[m.level].Text
	}
	return m.question.Text
}

// View renders the quiz screen.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Range Trainer"))
	b.WriteString("\n\n")

	if m.finished {
		if m.loadErr != "" {
			b.WriteString(WrongStyle.Render("stopped: " + m.loadErr))
			b.WriteString("\n")
		}
		b.WriteString(ScoreStyle.Render(fmt.Sprintf("Done. %d/%d correct (%.0f%%)",
			m.session.Correct, m.session.Total, m.session.Score())))
		b.WriteString("\n\n")
		b.WriteString(HelpStyle.Render("q to quit"))
		return b.String()
	}
	if m.question == nil {
		return b.String() + "loading..."
	}

	b.WriteString(m.progress.ViewAs(float64(m.session.Total) / float64(m.total)))
	b.WriteString("\n\n")
	b.WriteString(QuestionStyle.Render(m.currentText()))
	b.WriteString("\n")
	b.WriteString(HandStyle.Render("Hand: " + string(m.question.Hand)))
	b.WriteString("\n\n")

	for i, opt := range m.currentOptions() {
		line := fmt.Sprintf("%d. %s", i+1, opt)
		if i == m.cursor {
			b.WriteString(SelectedOptionStyle.Render("> " + line))
		} else {
			b.WriteString(OptionStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.answered {
		if m.lastGood {
			b.WriteString(CorrectStyle.Render("Correct!"))
		} else {
			b.WriteString(WrongStyle.Render("Wrong, answer was " + string(m.currentCorrect())))
		}
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("enter to continue"))
	} else {
		b.WriteString(HelpStyle.Render("up/down or 1-3 to choose, enter to answer, q to quit"))
	}
	b.WriteString("\n")
	b.WriteString(ScoreStyle.Render(fmt.Sprintf("Score: %d/%d", m.session.Correct, m.session.Total)))
	return b.String()
}

// Run starts the quiz program and blocks until it exits.
func Run(m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
