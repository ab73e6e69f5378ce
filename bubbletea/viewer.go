package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

var _ tea.Model = Viewer{}

// Viewer displays a stream of lines as they arrive. It consumes the
// ValueMsg[string], ErrMsg, and DoneMsg messages produced by Forward and
// stays open for scrolling until the user quits with q, esc, or ctrl+c.
type Viewer struct {
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model

	title  string
	styles Styles
	lines  []string
	err    error
	done   bool
	ret    any
	ready  bool
}

// NewViewer creates a Viewer with the given title and default styles.
func NewViewer(title string) Viewer {
	return Viewer{title: title, styles: DefaultStyles()}
}

// Init implements tea.Model.
func (v Viewer) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Reserve one line for the title and one for the status bar.
		height := max(msg.Height-2, 1)
		if !v.ready {
			v.Viewport = viewport.New(msg.Width, height)
			v.ready = true
		} else {
			v.Viewport.Width = msg.Width
			v.Viewport.Height = height
		}
		v.refresh()
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return v, tea.Quit
		}
		var cmd tea.Cmd
		v.Viewport, cmd = v.Viewport.Update(msg)
		return v, cmd

	case ValueMsg[string]:
		v.lines = append(v.lines, msg.Value)
		v.refresh()
		v.Viewport.GotoBottom()
		return v, nil

	case ErrMsg:
		v.err = msg.Err
		v.done = true
		return v, nil

	case DoneMsg:
		v.done = true
		v.ret = msg.Value
		return v, nil
	}

	var cmd tea.Cmd
	v.Viewport, cmd = v.Viewport.Update(msg)
	return v, cmd
}

// View implements tea.Model.
func (v Viewer) View() string {
	if !v.ready {
		return ""
	}
	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.title))
	b.WriteByte('\n')
	b.WriteString(v.Viewport.View())
	b.WriteByte('\n')
	b.WriteString(v.statusLine())
	return b.String()
}

// Err returns the producer failure that terminated the stream, if any.
func (v Viewer) Err() error {
	return v.err
}

func (v *Viewer) refresh() {
	styled := make([]string, len(v.lines))
	for i, line := range v.lines {
		styled[i] = v.styles.Line.Render(line)
	}
	v.Viewport.SetContent(strings.Join(styled, "\n"))
}

func (v Viewer) statusLine() string {
	switch {
	case v.err != nil:
		return v.styles.Error.Render(fmt.Sprintf("error: %v", v.err))
	case v.done && v.ret != nil:
		return v.styles.Success.Render(fmt.Sprintf("done (%d values, returned %v) - q to quit", len(v.lines), v.ret))
	case v.done:
		return v.styles.Success.Render(fmt.Sprintf("done (%d values) - q to quit", len(v.lines)))
	default:
		return v.styles.Muted.Render(fmt.Sprintf("streaming... (%d values)", len(v.lines)))
	}
}
