package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/folio-labs/folio-cli/internal/core/domain"
	"github.com/folio-labs/folio-cli/internal/core/ports/driving"
)

// AssistantPort is the TUI-facing subset of the assistant service.
type AssistantPort interface {
	Answer(ctx context.Context, question string) (*driving.AssistantAnswer, error)
	State() domain.IndexState
	LLMModelName() string
}

// message is one entry in the chat transcript.
type message struct {
	role string
	text string
}

// answerMsg carries the assistant's reply back into the update loop.
type answerMsg struct {
	answer *driving.AssistantAnswer
	err    error
}

// Model is the Bubble Tea model for the chat session.
type Model struct {
	assistant AssistantPort
	input     textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	messages  []message
	thinking  bool
	ready     bool
	status    string
}

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	contextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	chatBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// New creates the chat model.
func New(assistant AssistantPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the portfolio and press Enter"
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		assistant: assistant,
		input:     ti,
		viewport:  viewport.New(0, 0),
		spinner:   sp,
		status:    statusLine(assistant),
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := chatBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + ih + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved - ch
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width-4)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.String() == "esc" {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.thinking {
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				break
			}
			m.messages = append(m.messages, message{role: "you", text: q})
			m.input.SetValue("")
			m.thinking = true
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			return m, tea.Batch(m.spinner.Tick, askCmd(m.assistant, q))
		}

	case answerMsg:
		m.thinking = false
		m.messages = append(m.messages, renderAnswer(msg))
		m.status = statusLine(m.assistant)
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if m.thinking {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Portfolio Chat")
	transcript := chatBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := m.status
	if m.thinking {
		status = m.spinner.View() + " thinking..."
	}
	return header + "\n" + transcript + "\n" + input + "\n" + contextStyle.Render(status)
}

func (m Model) renderTranscript() string {
	if len(m.messages) == 0 {
		return welcomeText(m.assistant.State())
	}
	var b strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			b.WriteString("\n")
		}
		switch msg.role {
		case "you":
			b.WriteString(userStyle.Render("you") + "  " + msg.text + "\n")
		case "error":
			b.WriteString(errorStyle.Render(msg.text) + "\n")
		default:
			b.WriteString(assistantStyle.Render("folio") + " " + msg.text + "\n")
		}
	}
	return b.String()
}

func askCmd(assistant AssistantPort, question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := assistant.Answer(context.Background(), question)
		return answerMsg{answer: answer, err: err}
	}
}

func renderAnswer(msg answerMsg) message {
	if msg.err != nil {
		if msg.answer != nil && len(msg.answer.Context) > 0 {
			// No chat model: fall back to showing the retrieved context.
			var b strings.Builder
			b.WriteString("No chat model is configured; here is what the portfolio says:\n")
			for _, r := range msg.answer.Context {
				fmt.Fprintf(&b, "  [%s] %s\n", r.Chunk.Source, r.Chunk.Text)
			}
			return message{role: "folio", text: b.String()}
		}
		return message{role: "error", text: "Error: " + msg.err.Error()}
	}
	if msg.answer.Text == "" {
		return message{role: "folio", text: "I could not find anything relevant in the portfolio."}
	}
	return message{role: "folio", text: msg.answer.Text}
}

func welcomeText(state domain.IndexState) string {
	switch state {
	case domain.StateReady:
		return "The portfolio index is ready. Ask me anything about it."
	case domain.StateInitializing:
		return "The embedding model is still warming up; answers may be delayed."
	case domain.StateFailed:
		return errorStyle.Render("The embedding model failed to load. Answers will not be grounded in the portfolio.")
	default:
		return "Ask a question to get started. The index initialises on first use."
	}
}

func statusLine(assistant AssistantPort) string {
	model := assistant.LLMModelName()
	if model == "" {
		model = "no chat model"
	}
	return fmt.Sprintf("%s | index: %s | esc to quit", model, assistant.State())
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
