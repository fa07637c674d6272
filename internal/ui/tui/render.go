package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/osa030/relaxbox/internal/app/playback"
	"github.com/osa030/relaxbox/internal/domain/track"
)

const defaultBarWidth = 40

// row is a playlist row ready to be rendered.
type row struct {
	Title    string
	Artist   string
	Duration string
	Category string
	Current  bool
	Cursor   bool
}

// playlistRows maps tracks to rows in catalog order.
func playlistRows(tracks []track.Track, currentKey string, cursor int) []row {
	rows := make([]row, 0, len(tracks))
	for i, t := range tracks {
		rows = append(rows, row{
			Title:    t.Title,
			Artist:   t.Artist,
			Duration: t.Duration,
			Category: t.Category,
			Current:  t.Key() == currentKey,
			Cursor:   i == cursor,
		})
	}
	return rows
}

// RenderPlaylist renders one line per track. The row whose key equals
// currentKey is highlighted and the row at cursor carries the cursor mark.
func RenderPlaylist(tracks []track.Track, currentKey string, cursor int) string {
	var b strings.Builder
	for _, r := range playlistRows(tracks, currentKey, cursor) {
		b.WriteString(renderRow(r))
		b.WriteString("\n")
	}
	return b.String()
}

func renderRow(r row) string {
	marker := " "
	if r.Cursor {
		marker = iconCursor
	}
	playing := " "
	if r.Current {
		playing = iconCurrent
	}

	text := fmt.Sprintf("%s %s %-28s %s", marker, playing, r.Title, artistStyle.Render(r.Artist))
	meta := dimStyle.Render(fmt.Sprintf("%8s  %s", r.Duration, r.Category))

	style := rowStyle
	switch {
	case r.Current:
		style = currentRowStyle
	case r.Cursor:
		style = cursorRowStyle
	}
	return style.Render(text + "  " + meta)
}

// RenderControls renders the player bar for s with a default seek bar.
func RenderControls(s playback.Snapshot) string {
	return renderControls(s, newSeekBar(defaultBarWidth))
}

func renderControls(s playback.Snapshot, bar progress.Model) string {
	toggle := iconPlay
	if s.Playing {
		toggle = iconPause
	}
	volume := iconVolume
	if s.Muted {
		volume = iconMuted
	}

	line := lipgloss.JoinHorizontal(lipgloss.Center,
		buttonStyle.Render(toggle),
		" ",
		bar.ViewAs(s.Progress()),
		" ",
		dimStyle.Render(s.TimeLabel()),
		" ",
		buttonStyle.Render(volume),
	)

	title := titleStyle.Render(s.Current.Title)
	if s.Current.Artist != "" {
		title += " " + dimStyle.Render("· "+s.Current.Artist)
	}
	return boxStyle.Render(title + "\n" + line)
}

func newSeekBar(width int) progress.Model {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithoutPercentage(),
	)
	bar.Width = width
	return bar
}
