package jukebox

import "github.com/gigurra/tunes/cmd/library"

// Mode is the UI mode of a session. Each variant carries only the state that
// is meaningful while it is active.
type Mode interface {
	String() string
	isMode()
}

// FileList is the default mode: navigate and control playback.
type FileList struct{}

// SearchPopup edits the search text.
type SearchPopup struct{}

// InfoPopup shows the details of one track.
type InfoPopup struct {
	Track library.Track
}

func (FileList) String() string    { return "file-list" }
func (SearchPopup) String() string { return "search" }
func (InfoPopup) String() string   { return "info" }

func (FileList) isMode()    {}
func (SearchPopup) isMode() {}
func (InfoPopup) isMode()   {}

// PlaybackMode selects how the next track is picked at end of track.
type PlaybackMode int

const (
	Sequential PlaybackMode = iota
	Shuffle
)

func (m PlaybackMode) String() string {
	if m == Shuffle {
		return "shuffle"
	}
	return "sequential"
}
