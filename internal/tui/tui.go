// Package tui provides the interactive chat interface for the assistant.
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Responder runs one user turn through the pipeline and returns a
// self-contained reply.
type Responder interface {
	Respond(ctx context.Context, userMessage string) (string, error)
}

// errorReply is the only failure the user sees: a generation error converted
// into an apology at the top of the turn.
const errorReply = "Произошла ошибка при обработке запроса. Попробуйте ещё раз."

const welcomeText = `Привет! Я музыкальный эксперт-бот.

Спроси меня о музыкальных новостях, релизах, артистах — я найду актуальную информацию и отвечу со ссылками на источники.

Примеры:
  • "Новые альбомы этой недели"
  • "Что нового в электронной музыке?"

Нажми Esc или Ctrl+C для выхода.`

type chatMessage struct {
	role    string // "user" or "assistant"
	content string
}

// responseMsg carries a completed turn back into the update loop.
type responseMsg struct {
	text string
	err  error
}

type model struct {
	responder Responder
	messages  []chatMessage
	input     string
	waiting   bool
	width     int
	quitting  bool
}

// initialModel returns the starting chat state.
func initialModel(responder Responder) model {
	return model{
		responder: responder,
		messages: []chatMessage{
			{role: "assistant", content: welcomeText},
		},
	}
}

// Init is the first command that will be run. We don't need any for now.
func (m model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model accordingly.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case responseMsg:
		m.waiting = false
		reply := msg.text
		if msg.err != nil {
			reply = errorReply
		}
		m.messages = append(m.messages, chatMessage{role: "assistant", content: reply})

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.waiting || strings.TrimSpace(m.input) == "" {
				return m, nil
			}
			userText := strings.TrimSpace(m.input)
			m.messages = append(m.messages, chatMessage{role: "user", content: userText})
			m.input = ""
			m.waiting = true
			return m, m.ask(userText)
		case tea.KeyBackspace:
			if len(m.input) > 0 {
				runes := []rune(m.input)
				m.input = string(runes[:len(runes)-1])
			}
		case tea.KeySpace:
			m.input += " "
		case tea.KeyRunes:
			m.input += string(msg.Runes)
		}
	}

	return m, nil
}

// ask runs one pipeline turn off the update loop.
func (m model) ask(userText string) tea.Cmd {
	responder := m.responder
	return func() tea.Msg {
		reply, err := responder.Respond(context.Background(), userText)
		return responseMsg{text: reply, err: err}
	}
}

// View renders the chat transcript and the input line.
func (m model) View() string {
	if m.quitting {
		return "До встречи!\n"
	}

	userStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)

	var b strings.Builder
	for _, msg := range m.messages {
		if msg.role == "user" {
			b.WriteString(userStyle.Render("Вы:"))
		} else {
			b.WriteString(assistantStyle.Render("Бот:"))
		}
		b.WriteString(" ")
		b.WriteString(msg.content)
		b.WriteString("\n\n")
	}

	if m.waiting {
		b.WriteString(statusStyle.Render("🧠 Думаю..."))
		b.WriteString("\n\n")
	}

	b.WriteString("> ")
	b.WriteString(m.input)
	b.WriteString("\n")

	return b.String()
}

// Run starts the interactive chat session and blocks until the user quits.
func Run(responder Responder) error {
	p := tea.NewProgram(initialModel(responder))
	_, err := p.Run()
	return err
}
