package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/planforge/internal/cli/formatter"
	"github.com/alexanderramin/planforge/internal/domain"
	"github.com/alexanderramin/planforge/internal/service"
)

type statusTickMsg struct{}

func statusTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg { return statusTickMsg{} })
}

// canvasEditor edits one block at a time and auto-saves the whole canvas
// after a quiet period.
type canvasEditor struct {
	ctx      context.Context
	canvas   domain.Canvas
	focus    int
	input    textarea.Model
	autosave *service.Debouncer[domain.Canvas]
	width    int

	// timer-driven saves report from their own goroutine
	mu      sync.Mutex
	lastErr error
}

func newCanvasEditor(ctx context.Context, app *App, c domain.Canvas) *canvasEditor {
	ed := &canvasEditor{ctx: ctx, canvas: c, width: 80}
	delay := service.DefaultAutosaveDelay
	if app.Config != nil {
		delay = app.Config.AutosaveDelay()
	}
	ed.autosave = service.NewDebouncer(delay,
		func(ctx context.Context, v domain.Canvas) error {
			return app.services().Canvas.Save(ctx, v)
		},
		ed.setErr,
	)

	ed.input = textarea.New()
	ed.input.ShowLineNumbers = false
	ed.input.CharLimit = 0
	ed.input.SetHeight(6)
	ed.load()
	return ed
}

func (e *canvasEditor) setErr(err error) {
	e.mu.Lock()
	e.lastErr = err
	e.mu.Unlock()
}

func (e *canvasEditor) err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

func (e *canvasEditor) block() domain.CanvasBlock {
	return domain.CanvasBlocks[e.focus]
}

// load puts the focused block into the text area.
func (e *canvasEditor) load() {
	b := e.block()
	v, _ := e.canvas.Get(b.Key)
	e.input.SetValue(v)
	e.input.Placeholder = b.Hint
	e.input.Focus()
}

func (e *canvasEditor) move(delta int) {
	n := len(domain.CanvasBlocks)
	e.focus = ((e.focus+delta)%n + n) % n
	e.load()
}

// close flushes any pending save and stops the autosave timer.
func (e *canvasEditor) close() error {
	return e.autosave.Close(e.ctx)
}

func (e *canvasEditor) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, statusTick())
}

func (e *canvasEditor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.width = msg.Width
		e.input.SetWidth(max(msg.Width-4, 20))
		return e, nil

	case statusTickMsg:
		return e, statusTick()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return e, tea.Quit
		case tea.KeyTab:
			e.move(1)
			return e, nil
		case tea.KeyShiftTab:
			e.move(-1)
			return e, nil
		case tea.KeyCtrlS:
			e.setErr(e.autosave.Flush(e.ctx))
			return e, nil
		}
	}

	before := e.input.Value()
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	if after := e.input.Value(); after != before {
		_ = e.canvas.Set(e.block().Key, after)
		e.setErr(nil)
		e.autosave.Schedule(e.canvas)
	}
	return e, cmd
}

func (e *canvasEditor) status() string {
	err := e.err()
	switch {
	case err != nil:
		return formatter.Warning("not saved: " + err.Error())
	case e.autosave.Pending():
		return formatter.StyleYellow.Render("● editing")
	default:
		return formatter.StyleGreen.Render("✔ saved")
	}
}

func (e *canvasEditor) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Business Model Canvas") + "\n\n")

	for i, blk := range domain.CanvasBlocks {
		v, _ := e.canvas.Get(blk.Key)
		mark := formatter.Dim("○")
		if strings.TrimSpace(v) != "" {
			mark = formatter.StyleGreen.Render("●")
		}
		label := blk.Label
		if i == e.focus {
			label = formatter.StyleHeader.Render("› " + label)
		} else {
			label = "  " + label
		}
		b.WriteString(fmt.Sprintf("%s %s\n", mark, label))
	}

	blk := e.block()
	b.WriteString("\n" + formatter.Bold(blk.Label) + "  " + formatter.Dim(blk.Hint) + "\n")
	b.WriteString(e.input.View() + "\n\n")
	b.WriteString(e.status() + "  " + formatter.Dim("tab next · shift+tab previous · ctrl+s save · esc quit"))
	return b.String()
}
