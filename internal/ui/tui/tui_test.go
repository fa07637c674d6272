package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/relaxbox/internal/app/playback"
	"github.com/osa030/relaxbox/internal/domain/playlist"
	"github.com/osa030/relaxbox/internal/domain/track"
)

// fakeWidget records player commands.
type fakeWidget struct {
	mu    sync.Mutex
	calls []string
}

func (w *fakeWidget) record(call string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls = append(w.calls, call)
	return nil
}

func (w *fakeWidget) Load(ctx context.Context, url string) error { return w.record("load " + url) }
func (w *fakeWidget) SetPlaying(ctx context.Context, playing bool) error {
	if playing {
		return w.record("play")
	}
	return w.record("pause")
}
func (w *fakeWidget) SetMuted(ctx context.Context, muted bool) error {
	if muted {
		return w.record("mute")
	}
	return w.record("unmute")
}
func (w *fakeWidget) SeekTo(ctx context.Context, seconds float64) error {
	return w.record("seek " + playback.FormatTime(seconds))
}

func (w *fakeWidget) Calls() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.calls...)
}

func newTestModel(t *testing.T) (Model, *playback.Controller, *fakeWidget) {
	t.Helper()
	w := &fakeWidget{}
	ctrl := playback.NewController(playlist.Default(), w)
	t.Cleanup(ctrl.Close)

	m := New(context.Background(), ctrl, Options{SeekStep: 10 * time.Second})
	t.Cleanup(m.Close)
	return m, ctrl, w
}

// press sends a key and runs the resulting command, if any.
func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	var out tea.Msg
	if cmd != nil {
		out = cmd()
		if done, ok := out.(actionDoneMsg); ok {
			require.NoError(t, done.err)
		}
	}
	return next.(Model), out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPlaylistRows(t *testing.T) {
	tracks := playlist.Default().Tracks()

	tests := []struct {
		name       string
		currentKey string
		cursor     int
	}{
		{"first current", tracks[0].Key(), 0},
		{"last current", tracks[len(tracks)-1].Key(), 2},
		{"middle current", tracks[2].Key(), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := playlistRows(tracks, tt.currentKey, tt.cursor)
			require.Len(t, rows, len(tracks))

			current := 0
			for i, r := range rows {
				assert.Equal(t, tracks[i].Title, r.Title, "catalog order")
				assert.Equal(t, tracks[i].Duration, r.Duration)
				assert.Equal(t, i == tt.cursor, r.Cursor)
				if r.Current {
					current++
					assert.Equal(t, tt.currentKey, r.Title)
				}
			}
			assert.Equal(t, 1, current, "exactly one row is current")
		})
	}
}

func TestRenderPlaylist(t *testing.T) {
	tracks := playlist.Default().Tracks()
	out := RenderPlaylist(tracks, tracks[1].Key(), 0)

	last := -1
	for _, tr := range tracks {
		idx := strings.Index(out, tr.Title)
		require.GreaterOrEqual(t, idx, 0, "missing %q", tr.Title)
		assert.Greater(t, idx, last, "%q out of order", tr.Title)
		last = idx
		assert.Contains(t, out, tr.Artist)
	}
	assert.Equal(t, 1, strings.Count(out, iconCurrent))
	assert.Empty(t, RenderPlaylist(nil, "", 0))
}

func TestRenderControls(t *testing.T) {
	s := playback.Snapshot{
		Current:         track.Track{Title: "Ocean Waves", Artist: "Nature"},
		Playing:         true,
		PlayedSeconds:   65,
		DurationSeconds: 3661,
	}

	out := RenderControls(s)
	assert.Contains(t, out, "1:05 / 1:01:01")
	assert.Contains(t, out, iconPause)
	assert.Contains(t, out, iconVolume)
	assert.Contains(t, out, "Ocean Waves")

	s.Playing = false
	s.Muted = true
	out = RenderControls(s)
	assert.Contains(t, out, iconPlay)
	assert.Contains(t, out, iconMuted)

	assert.Contains(t, RenderControls(playback.Snapshot{}), "0:00 / 0:00")
}

func TestModel_Keys(t *testing.T) {
	m, ctrl, w := newTestModel(t)
	tracks := ctrl.Playlist().Tracks()
	require.Equal(t, 0, m.cursor)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor, "cursor stays at the top")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, runes("j"))
	assert.Equal(t, 2, m.cursor)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	s := ctrl.Snapshot()
	assert.Equal(t, tracks[2].Title, s.Current.Title)
	assert.True(t, s.Playing)
	assert.Equal(t, []string{"load " + tracks[2].URL, "play"}, w.Calls())

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, ctrl.Snapshot().Playing)

	m, _ = press(t, m, runes("m"))
	assert.True(t, ctrl.Snapshot().Muted)

	ctrl.OnDuration(600)
	ctrl.OnProgress(100)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyHome})

	assert.Equal(t, []string{
		"load " + tracks[2].URL,
		"play",
		"pause",
		"mute",
		"seek 1:50",
		"seek 1:30",
		"seek 0:00",
	}, w.Calls())

	m, _ = press(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
}

func TestModel_Snapshots(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	cmd := m.Init()
	require.NotNil(t, cmd)

	require.NoError(t, ctrl.TogglePlayPause(context.Background()))
	msg := cmd()
	require.IsType(t, snapshotMsg{}, msg)

	next, cmd := m.Update(msg)
	m = next.(Model)
	assert.True(t, m.snapshot.Playing)
	assert.NotNil(t, cmd, "keeps listening")
	assert.Contains(t, m.View(), iconPause)
}

func TestModel_Quit(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		back bool
	}{
		{"q", runes("q"), false},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, true},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := newTestModel(t)
			m, msg := press(t, m, tt.key)
			assert.Equal(t, tea.QuitMsg{}, msg)
			assert.Equal(t, tt.back, m.Back())
		})
	}
}

func TestModel_View(t *testing.T) {
	m, ctrl, _ := newTestModel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)
	assert.Equal(t, 60, m.bar.Width)

	view := m.View()
	assert.Contains(t, view, "Relaxing Music")
	for _, tr := range ctrl.Playlist().Tracks() {
		assert.Contains(t, view, tr.Title)
	}
	assert.Contains(t, view, "0:00 / 0:00")
}
