package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewrag/internal/service"
)

type fakeQA struct {
	calls  int
	answer service.Answer
}

func (f *fakeQA) Ask(_ context.Context, _ string) (service.Answer, error) {
	f.calls++
	return f.answer, nil
}

func TestIsExitCommand(t *testing.T) {
	for _, in := range []string{"q", "Q", "quit", "QUIT", "exit", " exit "} {
		assert.True(t, IsExitCommand(in), "input %q", in)
	}
	for _, in := range []string{"", "quite", "How is the pizza?", "qq"} {
		assert.False(t, IsExitCommand(in), "input %q", in)
	}
}

func pressEnter(m Model) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestSentinelQuitsWithoutAsking(t *testing.T) {
	qa := &fakeQA{}
	m := New(qa, 0)
	m.input.SetValue("q")

	_, cmd := pressEnter(m)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, 0, qa.calls, "sentinel must not reach the service")
}

func TestEmptyInputDoesNotAsk(t *testing.T) {
	qa := &fakeQA{}
	m := New(qa, 0)

	updated, cmd := pressEnter(m)
	assert.Nil(t, cmd)
	assert.Equal(t, 0, qa.calls)
	assert.Contains(t, updated.(Model).status, "Type a question")
}

func TestQuestionInvokesService(t *testing.T) {
	qa := &fakeQA{answer: service.Answer{Text: "Loved for the crust."}}
	m := New(qa, 1)
	m.input.SetValue("How is the pizza?")

	updated, _ := pressEnter(m)
	um := updated.(Model)

	assert.Equal(t, 1, qa.calls)
	assert.True(t, um.asked)
	assert.Equal(t, "Loved for the crust.", um.answer.Text)
	assert.Contains(t, um.status, "How is the pizza?")
	assert.Empty(t, um.input.Value(), "input resets after a question")
}

func TestCtrlCQuits(t *testing.T) {
	m := New(&fakeQA{}, 0)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
