package sim

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"symptom-sim/internal/timeline"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// logMsg carries a log line for the viewport.
type logMsg struct{ line string }

// startMsg carries the run description.
type startMsg struct{ timeline.RunInfo }

// eventMsg carries an emitted event and its rendered line.
type eventMsg struct {
	line  string
	event timeline.Event
}

// nightMsg carries a night skip notice.
type nightMsg struct {
	line string
	skip timeline.NightSkip
}

// summaryMsg carries the completion summary.
type summaryMsg struct{ timeline.Summary }

var (
	tuiTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	tuiLabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tuiPrimaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	tuiMemberStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	tuiNightStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
)

// TUIWriter renders a live real-time rehearsal using a bubbletea TUI.
type TUIWriter struct {
	program    teaProgram
	done       chan struct{}
	sendSignal atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter. Quitting
// the TUI interrupts the process so the run can stop.
func NewTUIWriter() *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	w.sendSignal.Store(true)
	p := tea.NewProgram(newTUIModel(), tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

// WriteRunStart implements RunWriter.
func (w *TUIWriter) WriteRunStart(info timeline.RunInfo) error {
	w.program.Send(startMsg{info})
	w.program.Send(logMsg{line: tuiLabelStyle.Render(startedLine(info))})
	return nil
}

// WriteEvent implements EventWriter.
func (w *TUIWriter) WriteEvent(e timeline.Event) error {
	style := tuiPrimaryStyle
	if e.Kind == timeline.KindClusterMember {
		style = tuiMemberStyle
	}
	w.program.Send(eventMsg{line: style.Render(eventLine(e)), event: e})
	return nil
}

// WriteNightSkip implements NightSkipWriter.
func (w *TUIWriter) WriteNightSkip(n timeline.NightSkip) error {
	w.program.Send(nightMsg{line: tuiNightStyle.Render(nightSkipLine(n)), skip: n})
	return nil
}

// WriteSummary implements RunWriter.
func (w *TUIWriter) WriteSummary(s timeline.Summary) error {
	w.program.Send(summaryMsg{s})
	return nil
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

type tuiModel struct {
	info       timeline.RunInfo
	started    bool
	summary    *timeline.Summary
	triggered  int
	clusters   int
	nightSkips int
	last       *timeline.Event
	bar        progress.Model
	vp         viewport.Model
	logs       []string
	wrap       bool
	autoscroll bool
	width      int
	height     int
}

func newTUIModel() tuiModel {
	return tuiModel{
		bar:        progress.New(progress.WithDefaultGradient()),
		vp:         viewport.New(0, 0),
		autoscroll: true,
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.bar.Width = msg.Width - 4
		if m.bar.Width < 10 {
			m.bar.Width = 10
		}
		m.updateViewportHeight()
		m.refreshViewport()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "w":
			m.wrap = !m.wrap
			m.refreshViewport()
		case "s":
			m.autoscroll = !m.autoscroll
			if m.autoscroll {
				m.vp.GotoBottom()
			}
		default:
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
	case startMsg:
		m.info = msg.RunInfo
		m.started = true
		m.updateViewportHeight()
	case logMsg:
		m.appendLog(msg.line)
	case eventMsg:
		e := msg.event
		m.last = &e
		m.triggered++
		if e.Kind == timeline.KindClusterMember && e.Cluster > m.clusters {
			m.clusters = e.Cluster
		}
		m.appendLog(msg.line)
	case nightMsg:
		m.nightSkips++
		m.appendLog(msg.line)
	case summaryMsg:
		s := msg.Summary
		m.summary = &s
		m.clusters = s.Clusters
		for _, l := range summaryLines(s) {
			m.appendLog(l)
		}
	}
	return m, nil
}

func (m *tuiModel) appendLog(line string) {
	m.logs = append(m.logs, line)
	m.refreshViewport()
}

func (m *tuiModel) updateViewportHeight() {
	h := m.height - lipgloss.Height(m.renderHeader()) - lipgloss.Height(m.renderBottom()) - 2
	if h < 0 {
		h = 0
	}
	m.vp.Height = h
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m *tuiModel) refreshViewport() {
	var lines []string
	for _, l := range m.logs {
		if m.wrap && m.vp.Width > 0 {
			lines = append(lines, wordwrap.String(l, m.vp.Width))
		} else {
			lines = append(lines, l)
		}
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

// fraction returns delivered events over target, in [0,1].
func (m tuiModel) fraction() float64 {
	if m.info.TargetEvents <= 0 {
		return 0
	}
	f := float64(m.triggered) / float64(m.info.TargetEvents)
	if f > 1 {
		f = 1
	}
	return f
}

func (m tuiModel) renderHeader() string {
	if !m.started {
		return tuiTitleStyle.Render("Waiting for simulation...")
	}
	lines := startLines(m.info)
	status := fmt.Sprintf("%s %d/%d  %s %d  %s %d",
		tuiLabelStyle.Render("events"), m.triggered, m.info.TargetEvents,
		tuiLabelStyle.Render("clusters"), m.clusters,
		tuiLabelStyle.Render("night skips"), m.nightSkips)
	if m.last != nil {
		status += fmt.Sprintf("  %s %s", tuiLabelStyle.Render("last"), clockLabel(m.last.Timestamp))
	}
	return strings.Join([]string{
		tuiTitleStyle.Render(lines[0]),
		lines[1],
		status,
		m.bar.ViewAs(m.fraction()),
	}, "\n")
}

func (m tuiModel) renderBottom() string {
	state := "running"
	if m.summary != nil {
		state = "complete"
	}
	wrap, scroll := "off", "off"
	if m.wrap {
		wrap = "on"
	}
	if m.autoscroll {
		scroll = "on"
	}
	return tuiLabelStyle.Render(fmt.Sprintf("%s | w: wrap %s | s: autoscroll %s | q: quit", state, wrap, scroll))
}

func (m tuiModel) View() string {
	divider := strings.Repeat("─", m.vp.Width)
	return strings.Join([]string{
		m.renderHeader(),
		divider,
		m.vp.View(),
		divider,
		m.renderBottom(),
	}, "\n")
}
