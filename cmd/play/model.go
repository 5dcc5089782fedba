package play

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gigurra/tunes/cmd/jukebox"
	"github.com/gigurra/tunes/cmd/library"
)

type tickMsg time.Time

type libraryChangedMsg struct{}

type model struct {
	ctx      context.Context
	session  *jukebox.Session
	loop     *jukebox.Loop
	keys     *jukebox.QueueSource
	watcher  *library.Watcher
	interval time.Duration

	width  int
	height int
	status string
	err    error
}

func newModel(ctx context.Context, session *jukebox.Session, interval time.Duration, watcher *library.Watcher) model {
	keys := jukebox.NewQueueSource(64)
	return model{
		ctx:     ctx,
		session: session,
		loop: &jukebox.Loop{
			Session: session,
			Clock:   jukebox.NewClock(nil),
			Source:  keys,
		},
		keys:     keys,
		watcher:  watcher,
		interval: interval,
	}
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tickCmd()}
	if m.watcher != nil {
		cmds = append(cmds, waitForChange(m.ctx, m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForChange(ctx context.Context, w *library.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-w.Changes():
			return libraryChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.session.Quit()
			return m, tea.Quit
		}
		for _, k := range translateKey(msg) {
			if !m.keys.Push(k) {
				slog.Debug("input queue full, dropping key", "key", msg.String())
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case libraryChangedMsg:
		m = m.apply(jukebox.Action{Intent: jukebox.IntentRescan})
		return m, waitForChange(m.ctx, m.watcher)

	case tickMsg:
		action, err := m.loop.Step(m.ctx)
		if action.Intent != jukebox.IntentNone {
			m.err = nil
		}
		m = m.report(err)
		if action.Intent != jukebox.IntentNone {
			m = m.afterAction(action)
		}
		if m.session.Quitting() {
			return m, tea.Quit
		}
		return m, m.tickCmd()
	}

	return m, nil
}

// apply runs an action that did not come from the key queue.
func (m model) apply(action jukebox.Action) model {
	m.err = nil
	m = m.report(m.session.Apply(m.ctx, action))
	return m.afterAction(action)
}

// afterAction handles the parts of an action that belong to the terminal.
func (m model) afterAction(action jukebox.Action) model {
	switch action.Intent {
	case jukebox.IntentCopyPath:
		path := m.copyTarget()
		if path == "" {
			return m
		}
		if err := clipboardWriteAll(path); err != nil {
			return m.report(fmt.Errorf("failed to copy path: %w", err))
		}
		m.status = "copied " + path
	case jukebox.IntentRescan:
		if m.err == nil {
			m.status = fmt.Sprintf("rescanned: %d tracks", m.session.Library().Len())
		}
	case jukebox.IntentToggleShuffle:
		m.status = m.session.PlaybackMode().String()
	}
	return m
}

// copyTarget is the playing track's path, or the selected one.
func (m model) copyTarget() string {
	if t := m.session.ActiveTrack(); t != nil {
		return t.Path
	}
	if e, ok := m.session.Selected(); ok {
		return e.Track.Path
	}
	return ""
}

// report keeps err on screen until the next action.
func (m model) report(err error) model {
	if err != nil {
		m.err = err
		slog.Error("player error", "error", err)
	}
	return m
}
