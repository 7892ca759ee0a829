package cli

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/intelligence"
	"github.com/alexanderramin/planforge/internal/llm"
	"github.com/alexanderramin/planforge/internal/teatest"
)

func TestCanvasEditor_TypeAndSave(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	ed := newCanvasEditor(ctx, app, domain.Canvas{})
	d := teatest.New(t, ed, teatest.WithSize(100, 40))
	d.DrainInit()

	assert.Contains(t, plain(d.View()), "› Value Propositions")

	d.PressTab()
	d.PressTab()
	assert.Contains(t, plain(d.View()), "› Channels")

	d.Type("Market stall")
	assert.Contains(t, plain(d.View()), "● editing")

	d.PressType(tea.KeyCtrlS)
	assert.Contains(t, plain(d.View()), "✔ saved")

	c, err := app.services().Canvas.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Market stall", c.Channels)

	d.PressShiftTab()
	d.Type("Commuters")
	require.NoError(t, ed.close())

	c, err = app.services().Canvas.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Commuters", c.CustomerSegments)
	assert.Equal(t, "Market stall", c.Channels)
}

func TestCanvasEditor_EscQuits(t *testing.T) {
	ed := newCanvasEditor(context.Background(), testApp(t), domain.Canvas{})
	d := teatest.New(t, ed)
	d.PressEsc()
	assert.True(t, d.Quitting)
	require.NoError(t, ed.close())
}

func newTestChat(t *testing.T, factory intelligence.ClientFactory) *teatest.Driver {
	t.Helper()
	conv := intelligence.NewConversation(domain.ProviderGroq, factory)
	load := func(context.Context) domain.Canvas {
		return domain.Canvas{ValuePropositions: "Fresh bread"}
	}
	m := newChatModel(context.Background(), conv, load, "notty")
	d := teatest.New(t, m,
		teatest.WithSize(100, 30),
		teatest.WithCmdTimeout(50*time.Millisecond),
		teatest.WithSkip("spinner.TickMsg"),
	)
	d.DrainInit()
	return d
}

func TestChatModel_ShowsReply(t *testing.T) {
	d := newTestChat(t, func() (llm.Client, error) {
		return stubClient{reply: "Think about your customer segments next."}, nil
	})

	d.Type("what next?")
	d.PressEnter()

	view := plain(d.View())
	assert.Contains(t, view, "what next?")
	assert.Contains(t, view, "customer segments next")
	assert.False(t, d.Model.(*chatModel).waiting)
}

func TestChatModel_ExplainsError(t *testing.T) {
	d := newTestChat(t, func() (llm.Client, error) {
		return nil, llm.ErrMissingAPIKey
	})

	d.Type("hello")
	d.PressEnter()

	assert.Contains(t, plain(d.View()), "API key for groq")
}

func TestChatModel_IgnoresEmptyInput(t *testing.T) {
	d := newTestChat(t, func() (llm.Client, error) {
		t.Fatal("no request expected")
		return nil, nil
	})

	d.PressEnter()
	d.Type("   ")
	d.PressEnter()
	assert.False(t, d.Model.(*chatModel).waiting)
}

func TestChatModel_PullProgress(t *testing.T) {
	d := newTestChat(t, func() (llm.Client, error) { return stubClient{}, nil })
	m := d.Model.(*chatModel)
	m.waiting = true

	d.Send(pullProgressMsg{pct: 42, status: "pulling"})
	assert.Contains(t, plain(d.View()), "Preparing local model: pulling  42%")
}

func TestChatModel_CtrlCQuits(t *testing.T) {
	d := newTestChat(t, func() (llm.Client, error) { return stubClient{}, nil })
	d.PressKey('x')
	d.PressCtrlC()
	assert.True(t, d.Quitting)
}
