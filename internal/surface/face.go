// Package surface holds the presentation collaborators of the session
// controller: a terminal watch face and a headless logger.
package surface

import (
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ystepanoff/pitchcall/session"
	"github.com/ystepanoff/pitchcall/signal"
)

const (
	faceWidth  = 24
	innerWidth = faceWidth - 2 // minus horizontal padding
	barWidth   = innerWidth
	waitText   = "Waiting for signal..."
	linkPoll   = time.Second
)

type (
	waitingMsg   struct{}
	signalMsg    struct{ view session.View }
	countdownMsg float64
	pulseMsg     time.Duration
	pulseEndMsg  struct{}
	linkMsg      struct{}
)

type keyMap struct {
	Dismiss key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Dismiss: key.NewBinding(key.WithKeys(" ", "enter", "b"), key.WithHelp("space/b", "dismiss")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Face is a terminal rendition of the wearable screen. It implements
// session.Display and session.Haptics by forwarding to a bubbletea program,
// so it is safe to call from the controller goroutine.
type Face struct {
	model model

	mu   sync.Mutex
	send func(tea.Msg)
}

// NewFace builds a face showing shortID in its corner. Tap and button keys
// call dismiss; linked is polled for the link indicator and may be nil.
func NewFace(shortID string, dismiss func(), linked func() bool) *Face {
	return &Face{model: newModel(shortID, dismiss, linked)}
}

// Program returns the bubbletea program that renders the face. Display
// calls made before it exists are dropped.
func (f *Face) Program(opts ...tea.ProgramOption) *tea.Program {
	p := tea.NewProgram(f.model, opts...)
	f.mu.Lock()
	f.send = p.Send
	f.mu.Unlock()
	return p
}

func (f *Face) post(msg tea.Msg) {
	f.mu.Lock()
	send := f.send
	f.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

func (f *Face) ShowWaiting()                    { f.post(waitingMsg{}) }
func (f *Face) ShowSignal(v session.View)       { f.post(signalMsg{view: v}) }
func (f *Face) ShowCountdown(remaining float64) { f.post(countdownMsg(remaining)) }
func (f *Face) Pulse(d time.Duration)           { f.post(pulseMsg(d)) }

type model struct {
	keys    keyMap
	shortID string
	dismiss func()
	linked  func() bool

	active    bool
	view      session.View
	remaining float64
	buzzing   bool
	link      bool
}

func newModel(shortID string, dismiss func(), linked func() bool) model {
	if dismiss == nil {
		dismiss = func() {}
	}
	return model{keys: newKeyMap(), shortID: shortID, dismiss: dismiss, linked: linked}
}

func pollLink() tea.Cmd {
	return tea.Tick(linkPoll, func(time.Time) tea.Msg { return linkMsg{} })
}

func (m model) Init() tea.Cmd { return pollLink() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Dismiss):
			m.dismiss()
		}
	case waitingMsg:
		m.active = false
		m.view = session.View{}
		m.remaining = 0
	case signalMsg:
		m.active = true
		m.view = msg.view
		m.remaining = msg.view.Remaining
	case countdownMsg:
		if m.active {
			m.remaining = float64(msg)
		}
	case pulseMsg:
		m.buzzing = true
		return m, tea.Tick(time.Duration(msg), func(time.Time) tea.Msg { return pulseEndMsg{} })
	case pulseEndMsg:
		m.buzzing = false
	case linkMsg:
		if m.linked != nil {
			m.link = m.linked()
		}
		return m, pollLink()
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	if !m.active {
		b.WriteString(mutedStyle.Render(waitText))
	} else {
		b.WriteString(m.body())
	}

	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("space dismiss  q quit"))

	style := faceStyle
	if m.buzzing {
		style = buzzStyle
	}
	return style.Width(faceWidth).Render(b.String())
}

func (m model) header() string {
	dot := mutedStyle.Render("○")
	if m.link {
		dot = lipgloss.NewStyle().Foreground(colorGreen).Render("●")
	}
	id := mutedStyle.Render(m.shortID)
	gap := innerWidth - lipgloss.Width(dot) - lipgloss.Width(id)
	if gap < 1 {
		gap = 1
	}
	return dot + strings.Repeat(" ", gap) + id
}

func (m model) body() string {
	tint := hue(m.view.Color)
	lines := []string{lipgloss.NewStyle().Bold(true).Foreground(tint).Render(m.view.Text)}

	if m.view.ShowGrid {
		lines = append(lines, "", renderGrid(m.view.Cell, tint))
	} else if m.view.SubText != "" {
		lines = append(lines, subTextStyle.Render(m.view.SubText))
	}

	lines = append(lines, "", renderBar(m.remaining, tint))
	return strings.Join(lines, "\n")
}

// renderGrid draws the 3x3 strike zone with the target cell filled.
func renderGrid(target signal.Cell, tint lipgloss.Color) string {
	hit := lipgloss.NewStyle().Foreground(tint).Background(colorBase)
	rows := make([]string, 0, signal.GridSize)
	for r := 0; r < signal.GridSize; r++ {
		cells := make([]string, 0, signal.GridSize)
		for c := 0; c < signal.GridSize; c++ {
			if (signal.Cell{Row: r, Col: c}) == target {
				cells = append(cells, hit.Render("██"))
			} else {
				cells = append(cells, emptyCell.Render("░░"))
			}
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return strings.Join(rows, "\n")
}

func renderBar(remaining float64, tint lipgloss.Color) string {
	filled := int(remaining*float64(barWidth) + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return lipgloss.NewStyle().Foreground(tint).Render(strings.Repeat("━", filled)) +
		emptyCell.Render(strings.Repeat("━", barWidth-filled))
}
