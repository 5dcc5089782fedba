package play

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gigurra/tunes/cmd/jukebox"
	"github.com/gigurra/tunes/cmd/library"
	"github.com/gigurra/tunes/cmd/table"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62"))
	playingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	searchStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	infoBox      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1)
	labelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250")).Width(9)
)

const (
	defaultWidth  = 90
	defaultHeight = 24
	barWidth      = 30

	// Lines around the track list: title, search, blank, table header and
	// rule, blank, now playing, progress, status, help.
	chromeLines = 10
)

var trackColumns = []table.Column{
	{Header: "#", Width: 3, Align: table.AlignRight},
	{Header: "Title", Weight: 3, MinWidth: 10},
	{Header: "Artist", Weight: 2, MinWidth: 8},
	{Header: "Album", Weight: 2, MinWidth: 8},
	{Header: "Length", Width: 6, Align: table.AlignRight},
}

func (m model) View() string {
	width, height := m.width, m.height
	if width < 20 {
		width = defaultWidth
	}
	if height < chromeLines+1 {
		height = defaultHeight
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(" tunes "))
	b.WriteString(helpStyle.Render(" " + m.session.Library().Root()))
	b.WriteString("\n")
	b.WriteString(m.renderSearch())
	b.WriteString("\n\n")

	if info, ok := m.session.Mode().(jukebox.InfoPopup); ok {
		b.WriteString(renderInfo(info.Track))
	} else {
		b.WriteString(m.renderTracks(width, height-chromeLines))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderNowPlaying())
	b.WriteString("\n")
	b.WriteString(m.renderProgress())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help()))

	return b.String()
}

func (m model) renderSearch() string {
	text, filtering := m.session.SearchText()
	shown := len(m.session.Displayed())
	total := m.session.Library().Len()

	var line string
	switch {
	case isSearching(m.session.Mode()):
		line = searchStyle.Render("Search: [" + text + "_]")
	case filtering:
		line = searchStyle.Render("Search: [" + text + "]")
	default:
		line = helpStyle.Render("/ to search")
	}

	if shown != total {
		return line + helpStyle.Render(fmt.Sprintf("  [showing %d of %d]", shown, total))
	}
	return line + helpStyle.Render(fmt.Sprintf("  [%d tracks]", total))
}

func isSearching(mode jukebox.Mode) bool {
	_, ok := mode.(jukebox.SearchPopup)
	return ok
}

func (m model) renderTracks(width, rows int) string {
	entries := m.session.Displayed()
	if len(entries) == 0 {
		if m.session.Library().Len() == 0 {
			return "  No tracks. Press s to rescan."
		}
		text, _ := m.session.SearchText()
		return "  No matches for \"" + text + "\""
	}

	tbl := table.New(trackColumns...)
	tbl.Width = width
	tbl.Height = max(rows, 1)
	tbl.HeaderStyle = headerStyle
	tbl.CursorStyle = cursorStyle
	tbl.MarkedStyle = playingStyle

	playing := m.session.PlayingIndex()
	for i, e := range entries {
		tbl.Rows = append(tbl.Rows, []string{
			e.Track.DisplayNumber(),
			e.Track.DisplayTitle(),
			e.Track.DisplayArtist(),
			e.Track.DisplayAlbum(),
			library.FormatDuration(e.Track.Duration),
		})
		if e.Index == playing {
			tbl.Marked = i
		}
	}
	tbl.Cursor = m.session.Selection()
	tbl.Follow()

	return tbl.Render()
}

func renderInfo(t library.Track) string {
	number := t.DisplayNumber()
	if t.Number.Total > 0 {
		number = fmt.Sprintf("%s of %02d", number, t.Number.Total)
	}

	lines := []string{
		labelStyle.Render("Title") + t.DisplayTitle(),
		labelStyle.Render("Artist") + t.DisplayArtist(),
		labelStyle.Render("Album") + t.DisplayAlbum(),
		labelStyle.Render("Track") + number,
		labelStyle.Render("Length") + library.FormatDuration(t.Duration),
		labelStyle.Render("File") + t.Path,
	}
	return infoBox.Render(strings.Join(lines, "\n"))
}

func (m model) renderNowPlaying() string {
	t := m.session.ActiveTrack()
	if t == nil {
		return helpStyle.Render("  Nothing playing")
	}

	marker := playingStyle.Render("▶")
	if m.session.IsPaused() {
		marker = pausedStyle.Render("⏸")
	}
	return fmt.Sprintf("  %s %s - %s (%s)", marker, t.DisplayTitle(), t.DisplayArtist(), t.DisplayAlbum())
}

func (m model) renderProgress() string {
	elapsed, duration := m.session.Elapsed(), m.session.Duration()

	line := fmt.Sprintf("  %s %s / %s   vol %3d%%",
		progressBar(elapsed, duration, barWidth),
		library.FormatDuration(min(elapsed, duration)),
		library.FormatDuration(duration),
		int(m.session.Volume()*100+0.5),
	)
	if m.session.PlaybackMode() == jukebox.Shuffle {
		line += "   " + searchStyle.Render("shuffle")
	}
	return line
}

func progressBar(elapsed, duration time.Duration, width int) string {
	filled := 0
	if duration > 0 {
		filled = int(float64(width) * float64(min(max(elapsed, 0), duration)) / float64(duration))
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

func (m model) renderStatus() string {
	if m.err != nil {
		return errorStyle.Render("  " + m.err.Error())
	}
	return helpStyle.Render("  " + m.status)
}

func (m model) help() string {
	switch m.session.Mode().(type) {
	case jukebox.SearchPopup:
		return "  type to filter • backspace delete • enter/esc done"
	case jukebox.InfoPopup:
		return "  i/esc/enter close"
	}
	return "  enter play • space pause • ←/→ seek • n next • +/- volume • z shuffle • / search • i info • y copy • s rescan • q quit"
}
