// Package tui renders the playlist and player bar as a Bubble Tea program.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/relaxbox/internal/app/notification"
	"github.com/osa030/relaxbox/internal/app/playback"
	"github.com/osa030/relaxbox/internal/domain/playlist"
)

// Controller is the playback surface the TUI drives.
type Controller interface {
	Playlist() *playlist.Playlist
	Snapshot() playback.Snapshot
	SelectIndex(ctx context.Context, i int) error
	TogglePlayPause(ctx context.Context) error
	ToggleMute(ctx context.Context) error
	Seek(ctx context.Context, targetSeconds float64) error
	SeekBy(ctx context.Context, deltaSeconds float64) error
	Subscribe() (string, <-chan notification.Notification[playback.Snapshot])
	Unsubscribe(id string)
}

// Options configures the model.
type Options struct {
	Title    string
	SeekStep time.Duration
}

// Messages

type snapshotMsg playback.Snapshot

type closedMsg struct{}

type actionDoneMsg struct {
	action string
	err    error
}

// Model is the Bubble Tea model of the player screen.
type Model struct {
	ctx      context.Context
	ctrl     Controller
	title    string
	seekStep float64

	subID   string
	updates <-chan notification.Notification[playback.Snapshot]

	snapshot playback.Snapshot
	cursor   int
	bar      progress.Model
	help     help.Model
	keys     keyMap
	back     bool
	width    int
}

// New creates a model subscribed to ctrl. Call Close when the program ends.
func New(ctx context.Context, ctrl Controller, opts Options) Model {
	if opts.Title == "" {
		opts.Title = "Relaxing Music"
	}
	if opts.SeekStep <= 0 {
		opts.SeekStep = 10 * time.Second
	}

	id, ch := ctrl.Subscribe()
	s := ctrl.Snapshot()
	cursor, _ := ctrl.Playlist().IndexOf(s.Current.Key())

	return Model{
		ctx:      ctx,
		ctrl:     ctrl,
		title:    opts.Title,
		seekStep: opts.SeekStep.Seconds(),
		subID:    id,
		updates:  ch,
		snapshot: s,
		cursor:   cursor,
		bar:      newSeekBar(defaultBarWidth),
		help:     help.New(),
		keys:     defaultKeyMap(),
	}
}

// waitForSnapshot blocks until the controller publishes a new snapshot.
func waitForSnapshot(ch <-chan notification.Notification[playback.Snapshot]) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return snapshotMsg(n.Payload)
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.updates)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.bar.Width = min(max(msg.Width-40, 20), 80)
		return m, nil

	case snapshotMsg:
		m.snapshot = playback.Snapshot(msg)
		return m, waitForSnapshot(m.updates)

	case closedMsg:
		return m, tea.Quit

	case actionDoneMsg:
		if msg.err != nil {
			zlog.Warn().Msgf("%s failed: %v", msg.action, msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.back = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.ctrl.Playlist().Len()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		i := m.cursor
		return m, m.run("select track", func(ctx context.Context) error {
			return m.ctrl.SelectIndex(ctx, i)
		})

	case key.Matches(msg, m.keys.PlayPause):
		return m, m.run("toggle playback", m.ctrl.TogglePlayPause)

	case key.Matches(msg, m.keys.Mute):
		return m, m.run("toggle mute", m.ctrl.ToggleMute)

	case key.Matches(msg, m.keys.Forward):
		step := m.seekStep
		return m, m.run("seek", func(ctx context.Context) error {
			return m.ctrl.SeekBy(ctx, step)
		})

	case key.Matches(msg, m.keys.Backward):
		step := -m.seekStep
		return m, m.run("seek", func(ctx context.Context) error {
			return m.ctrl.SeekBy(ctx, step)
		})

	case key.Matches(msg, m.keys.Restart):
		return m, m.run("seek", func(ctx context.Context) error {
			return m.ctrl.Seek(ctx, 0)
		})
	}

	return m, nil
}

// run executes a controller operation off the update loop.
func (m Model) run(action string, op func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return actionDoneMsg{action: action, err: op(ctx)}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	header := titleStyle.Render(iconMusic + " " + m.title)
	b.WriteString(dimStyle.Render(iconBack+" back") + "  " + header)
	b.WriteString("\n\n")

	b.WriteString(RenderPlaylist(m.ctrl.Playlist().Tracks(), m.snapshot.Current.Key(), m.cursor))
	b.WriteString("\n")

	b.WriteString(renderControls(m.snapshot, m.bar))
	b.WriteString("\n\n")

	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

// Back reports whether the user left through the back action.
func (m Model) Back() bool {
	return m.back
}

// Close releases the snapshot subscription.
func (m Model) Close() {
	m.ctrl.Unsubscribe(m.subID)
}
