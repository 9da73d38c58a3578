package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"reviewrag/internal/domain"
	"reviewrag/internal/service"
)

// QAPort is the TUI-facing subset of the QA service.
type QAPort interface {
	Ask(ctx context.Context, question string) (service.Answer, error)
}

// Model is the Bubble Tea model for the question loop.
type Model struct {
	service  QAPort
	input    textinput.Model
	viewport viewport.Model
	answer   service.Answer
	asked    bool
	status   string
	ready    bool
}

// New creates a new TUI model instance.
func New(svc QAPort, indexed int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask your question (q to quit)"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	status := "Index ready. Ask about the restaurant reviews."
	if indexed > 0 {
		status = fmt.Sprintf("Indexed %d reviews. Ask about them.", indexed)
	}
	return Model{service: svc, input: ti, viewport: vp, status: status}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := answerBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, query box, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderAnswer())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				m.status = "Type a question, or q to quit."
				return m, nil
			}
			if IsExitCommand(q) {
				return m, tea.Quit
			}
			// Blocking call: single user, single in-flight question.
			ans, err := m.service.Ask(context.Background(), q)
			if err != nil {
				m.status = statusForError(err)
				m.asked = false
			} else {
				m.status = fmt.Sprintf("Answer for %q", q)
				m.answer = ans
				m.asked = true
				m.input.SetValue("")
			}
			m.viewport.SetContent(m.renderAnswer())
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and current answer.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Restaurant Review QA")
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	answer := answerBoxStyle.Render(m.viewport.View())
	return header + "\n" + answer + "\n" + input + "\n" + status
}

func (m Model) renderAnswer() string {
	if !m.asked {
		return "No answer yet."
	}
	var b strings.Builder
	b.WriteString(strings.TrimSpace(m.answer.Text))
	if len(m.answer.Sources) > 0 {
		b.WriteString("\n\n")
		b.WriteString(sourceHeaderStyle.Render(fmt.Sprintf("Based on %d reviews:", len(m.answer.Sources))))
		for i, r := range m.answer.Sources {
			b.WriteString(fmt.Sprintf("\n  %d. score=%.3f rating=%d/5 %s",
				i+1, r.Score, r.Document.Metadata.Rating, firstWords(r.Document.Text, 10)))
		}
	}
	return b.String()
}

// IsExitCommand reports whether the input is the exit sentinel.
// Accepts q, quit and exit, case-insensitive.
func IsExitCommand(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "q", "quit", "exit":
		return true
	}
	return false
}

func statusForError(err error) string {
	switch {
	case errors.Is(err, domain.ErrService):
		return "Service unavailable: " + err.Error() + ". Is Ollama running?"
	case errors.Is(err, domain.ErrBadInput):
		return "Bad input: " + err.Error()
	case errors.Is(err, domain.ErrStore):
		return "Store error: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}

func firstWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) <= n {
		return strings.Join(fields, " ")
	}
	return strings.Join(fields[:n], " ") + "…"
}

var (
	answerBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	sourceHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
