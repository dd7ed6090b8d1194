// Package chat provides the assistant conversation view for the TUI.
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/counterline-labs/shoptalk/internal/adapters/driving/tui/messages"
	"github.com/counterline-labs/shoptalk/internal/adapters/driving/tui/styles"
	"github.com/counterline-labs/shoptalk/internal/core/ports/driving"
)

// ErrNoAssistant is shown when no LLM provider is configured.
var ErrNoAssistant = errors.New("no assistant configured, run 'shoptalk settings wizard' first")

// line is one rendered conversation line.
type line struct {
	speaker string
	text    string
}

// View represents the chat view with a scrolling transcript and an input line.
type View struct {
	styles   *styles.Styles
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	assistant driving.AssistantService
	ctx       context.Context

	transcript []line
	waiting    bool
	err        error

	width  int
	height int
	ready  bool
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, assistant driving.AssistantService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Ask about the catalog..."
	ti.CharLimit = 500
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(s.Theme().Primary)

	vp := viewport.New(80, 16)

	return &View{
		styles:    s,
		input:     ti,
		viewport:  vp,
		spinner:   sp,
		assistant: assistant,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the chat view.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		if msg.Type == tea.KeyEnter && !v.waiting {
			question := strings.TrimSpace(v.input.Value())
			if question == "" {
				return v, nil
			}
			v.input.SetValue("")
			v.transcript = append(v.transcript, line{speaker: "you", text: question})
			v.refreshViewport()
			v.waiting = true
			v.err = nil
			return v, tea.Batch(v.spinner.Tick, v.ask(question))
		}

		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd

	case messages.AssistantReplied:
		v.waiting = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.transcript = append(v.transcript, line{speaker: "assistant", text: msg.Reply})
		v.refreshViewport()
		return v, nil

	case spinner.TickMsg:
		if !v.waiting {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.ErrorOccurred:
		v.waiting = false
		v.err = msg.Err
		return v, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	v.viewport, cmd = v.viewport.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return v, tea.Batch(cmds...)
}

// ask runs one assistant turn as a command.
func (v *View) ask(question string) tea.Cmd {
	return func() tea.Msg {
		if v.assistant == nil {
			return messages.AssistantReplied{Question: question, Err: ErrNoAssistant}
		}
		reply, err := v.assistant.Ask(v.ctx, question)
		return messages.AssistantReplied{Question: question, Reply: reply, Err: err}
	}
}

// refreshViewport re-renders the transcript and scrolls to the bottom.
func (v *View) refreshViewport() {
	lines := make([]string, 0, len(v.transcript)*2)
	for _, l := range v.transcript {
		var prefix string
		if l.speaker == "you" {
			prefix = v.styles.User.Render("you> ")
		} else {
			prefix = v.styles.Assistant.Render("assistant> ")
		}
		lines = append(lines, prefix+l.text, "")
	}
	v.viewport.SetContent(strings.Join(lines, "\n"))
	v.viewport.GotoBottom()
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	header := v.styles.Title.Render("Shoptalk Chat")
	if v.assistant != nil {
		header += v.styles.Muted.Render("  (" + v.assistant.ModelName() + ")")
	}
	sections = append(sections, header, "")

	sections = append(sections, v.viewport.View())

	if v.waiting {
		sections = append(sections, v.spinner.View()+v.styles.Muted.Render(" thinking..."))
	}

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))
	}

	sections = append(sections, v.styles.InputField.Render(v.input.View()))
	sections = append(sections, v.styles.Help.Render("[Enter] Send  [Esc] Menu"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.Width = width - 6
	// Reserve space for header, spinner line, input, and help
	v.viewport.Width = width
	v.viewport.Height = height - 8
	if v.viewport.Height < 3 {
		v.viewport.Height = 3
	}
}

// Reset clears the transcript and input.
func (v *View) Reset() {
	v.transcript = nil
	v.waiting = false
	v.err = nil
	v.input.SetValue("")
	v.input.Focus()
	v.viewport.SetContent("")
}

// Waiting reports whether an assistant turn is in flight.
func (v *View) Waiting() bool {
	return v.waiting
}

// TranscriptLen returns the number of transcript lines.
func (v *View) TranscriptLen() int {
	return len(v.transcript)
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
