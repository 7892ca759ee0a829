package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/planforge/internal/app"
	"github.com/alexanderramin/planforge/internal/cli/formatter"
	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/intelligence"
)

type chatReplyMsg struct {
	reply string
	err   error
}

// pullProgressMsg carries local model download progress into the TUI.
type pullProgressMsg struct {
	pct    float64
	status string
}

// chatModel is the full-screen assistant conversation.
type chatModel struct {
	ctx        context.Context
	conv       *intelligence.Conversation
	loadCanvas func(ctx context.Context) domain.Canvas
	style      string

	transcript []string
	viewport   viewport.Model
	input      textinput.Model
	spinner    spinner.Model
	waiting    bool
	status     string
	width      int
	ready      bool
}

func newChatModel(ctx context.Context, conv *intelligence.Conversation, loadCanvas func(context.Context) domain.Canvas, style string) *chatModel {
	in := textinput.New()
	in.Placeholder = "Describe your business idea..."
	in.Prompt = "› "
	in.CharLimit = 2000
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	m := &chatModel{
		ctx:        ctx,
		conv:       conv,
		loadCanvas: loadCanvas,
		style:      style,
		input:      in,
		spinner:    sp,
		width:      80,
		viewport:   viewport.New(80, 20),
	}
	m.appendTurn(formatter.ChatAssistant(formatter.RenderMarkdown(intelligence.WelcomeMessage, m.width-4, style)))
	return m
}

func (m *chatModel) appendTurn(s string) {
	m.transcript = append(m.transcript, s)
	m.viewport.SetContent(strings.Join(m.transcript, "\n\n"))
	m.viewport.GotoBottom()
}

func (m *chatModel) send(text string) tea.Cmd {
	return func() tea.Msg {
		canvas := m.loadCanvas(m.ctx)
		reply, err := m.conv.Send(m.ctx, text, &canvas)
		return chatReplyMsg{reply: reply, err: err}
	}
}

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-6, 3)
		m.input.Width = max(msg.Width-4, 10)
		m.viewport.SetContent(strings.Join(m.transcript, "\n\n"))
		m.viewport.GotoBottom()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.waiting {
				return m, nil
			}
			m.input.Reset()
			m.appendTurn(formatter.ChatUser(text))
			m.waiting = true
			m.status = "Thinking..."
			return m, tea.Batch(m.spinner.Tick, m.send(text))
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case chatReplyMsg:
		m.waiting = false
		m.status = ""
		if msg.err != nil {
			m.appendTurn(formatter.ChatError(msg.reply))
		} else {
			m.appendTurn(formatter.ChatAssistant(formatter.RenderMarkdown(msg.reply, m.width-4, m.style)))
		}
		return m, nil

	case pullProgressMsg:
		m.status = fmt.Sprintf("Preparing local model: %s %3.0f%%", msg.status, msg.pct)
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render(app.Brand+" Assistant") + "  " + formatter.Dim("enter send · pgup/pgdn scroll · esc quit") + "\n")
	b.WriteString(m.viewport.View() + "\n")
	if m.waiting {
		b.WriteString(m.spinner.View() + " " + formatter.Dim(m.status))
	}
	b.WriteString("\n" + m.input.View())
	return b.String()
}
