package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manhnguyen1206/deckflow/internal/logger"
)

type implInteractiveReviewer struct {
	logger logger.Logger
}

// NewInteractiveReviewer creates a reviewer that walks the operator
// through each candidate in a terminal UI.
func NewInteractiveReviewer(log logger.Logger) Reviewer {
	return &implInteractiveReviewer{logger: log}
}

func (r *implInteractiveReviewer) Review(ctx context.Context, batch []Candidate) ([]Decision, error) {
	m := newReviewModel(batch)
	p := tea.NewProgram(m, tea.WithContext(ctx))

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("review ui: %w", err)
	}

	fm, ok := final.(reviewModel)
	if !ok {
		return nil, fmt.Errorf("review ui: unexpected final model %T", final)
	}
	if fm.aborted {
		return nil, fmt.Errorf("review aborted by operator")
	}
	return fm.decisions, nil
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	metaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	descStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(72)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	verdictStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

type reviewModel struct {
	batch     []Candidate
	decisions []Decision
	cursor    int

	editing bool
	input   textinput.Model

	aborted bool
}

func newReviewModel(batch []Candidate) reviewModel {
	ti := textinput.New()
	ti.Placeholder = "Replacement description"
	ti.CharLimit = 500
	ti.Width = 70

	return reviewModel{
		batch:     batch,
		decisions: make([]Decision, 0, len(batch)),
		input:     ti,
	}
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.editing {
		return m.updateEditing(keyMsg)
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		m.aborted = true
		return m, tea.Quit

	case "a", "enter":
		return m.decide(Decision{Action: ActionApprove})

	case "r":
		return m.decide(Decision{Action: ActionRegenerate})

	case "d":
		return m.decide(Decision{Action: ActionDelete})

	case "e":
		m.editing = true
		m.input.SetValue(m.batch[m.cursor].Item.Content)
		m.input.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

func (m reviewModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.aborted = true
		return m, tea.Quit

	case "esc":
		m.editing = false
		m.input.Blur()
		return m, nil

	case "enter":
		m.editing = false
		m.input.Blur()
		return m.decide(Decision{Action: ActionEdit, Text: m.input.Value()})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m reviewModel) decide(d Decision) (tea.Model, tea.Cmd) {
	m.decisions = append(m.decisions, d)
	m.cursor++
	if m.cursor >= len(m.batch) {
		return m, tea.Quit
	}
	return m, nil
}

func (m reviewModel) View() string {
	if m.cursor >= len(m.batch) {
		return ""
	}
	c := m.batch[m.cursor]

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Reviewing image %d of %d", m.cursor+1, len(m.batch))))
	b.WriteString("\n")
	b.WriteString(metaStyle.Render(fmt.Sprintf("Slide %d · image %d · .%s · %d bytes",
		c.Item.SlideNumber, c.ImageNumber, c.Item.Extension, len(c.Item.ImageBytes))))
	b.WriteString("\n\n")
	b.WriteString(descStyle.Render(c.Item.Content))
	b.WriteString("\n\n")

	if m.editing {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter: save · esc: cancel"))
	} else {
		b.WriteString(verdictStyle.Render("a"))
		b.WriteString(helpStyle.Render("pprove · "))
		b.WriteString(verdictStyle.Render("e"))
		b.WriteString(helpStyle.Render("dit · "))
		b.WriteString(verdictStyle.Render("r"))
		b.WriteString(helpStyle.Render("egenerate · "))
		b.WriteString(verdictStyle.Render("d"))
		b.WriteString(helpStyle.Render("elete · "))
		b.WriteString(verdictStyle.Render("q"))
		b.WriteString(helpStyle.Render("uit"))
	}
	b.WriteString("\n")
	return b.String()
}
