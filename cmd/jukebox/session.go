package jukebox

import (
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gigurra/tunes/cmd/library"
	"github.com/samber/lo"
)

const (
	DefaultSeekForward  = 10 * time.Second
	DefaultSeekBackward = 5 * time.Second
	VolumeStep          = 0.05
)

// Options configures a Session. Zero values select the defaults.
type Options struct {
	SeekForward   time.Duration
	SeekBackward  time.Duration
	Shuffle       bool
	Rand          *rand.Rand
	OnTrackChange func(library.Track)
}

// Entry is one row of the displayed list.
type Entry struct {
	Index int // index into the unfiltered library
	Track library.Track
}

// Session is the playback state machine. It is the only component that
// talks to the Engine and it is owned by a single control loop, so it does
// no locking.
type Session struct {
	lib    *library.Library
	engine Engine
	opts   Options
	rng    *rand.Rand

	// Navigation
	selected  int
	search    string
	filtering bool
	mode      Mode

	// Playback state
	playing  int
	active   *library.Track
	elapsed  time.Duration
	playback PlaybackMode

	quitting bool
}

// NewSession creates a session over lib that drives engine.
func NewSession(lib *library.Library, engine Engine, opts Options) *Session {
	if opts.SeekForward <= 0 {
		opts.SeekForward = DefaultSeekForward
	}
	if opts.SeekBackward <= 0 {
		opts.SeekBackward = DefaultSeekBackward
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x7475_6e65))
	}

	s := &Session{
		lib:     lib,
		engine:  engine,
		opts:    opts,
		rng:     rng,
		mode:    FileList{},
		playing: -1,
	}
	if opts.Shuffle {
		s.playback = Shuffle
	}
	return s
}

// Library returns the library the session navigates.
func (s *Session) Library() *library.Library { return s.lib }

// Mode returns the current UI mode.
func (s *Session) Mode() Mode { return s.mode }

// Selection returns the index into the displayed list.
func (s *Session) Selection() int { return s.selected }

// ActiveTrack returns the loaded track, or nil.
func (s *Session) ActiveTrack() *library.Track {
	if s.active == nil {
		return nil
	}
	t := *s.active
	return &t
}

// PlayingIndex returns the library index of the active track, or -1.
func (s *Session) PlayingIndex() int {
	if s.active == nil {
		return -1
	}
	return s.playing
}

func (s *Session) Elapsed() time.Duration { return s.elapsed }

// Duration returns the active track's duration, or zero.
func (s *Session) Duration() time.Duration {
	if s.active == nil {
		return 0
	}
	return s.active.Duration
}

func (s *Session) IsPaused() bool             { return s.engine.IsPaused() }
func (s *Session) Volume() float64            { return s.engine.Volume() }
func (s *Session) PlaybackMode() PlaybackMode { return s.playback }
func (s *Session) Quitting() bool             { return s.quitting }
func (s *Session) Quit()                      { s.quitting = true }
func (s *Session) SearchText() (string, bool) { return s.search, s.filtering }

// Displayed returns the library filtered by the search text, in library
// order. It is recomputed on every call.
func (s *Session) Displayed() []Entry {
	query := strings.ToLower(s.search)
	return lo.FilterMap(s.lib.Files(), func(t library.Track, i int) (Entry, bool) {
		return Entry{Index: i, Track: t}, !s.filtering || matches(t, query)
	})
}

func matches(t library.Track, query string) bool {
	return strings.Contains(strings.ToLower(t.Title), query) ||
		strings.Contains(strings.ToLower(t.Artist), query) ||
		strings.Contains(strings.ToLower(t.Album), query)
}

// Selected returns the entry under the cursor.
func (s *Session) Selected() (Entry, bool) {
	displayed := s.Displayed()
	if len(displayed) == 0 {
		return Entry{}, false
	}
	return displayed[min(s.selected, len(displayed)-1)], true
}

// SelectNext moves the cursor down, stopping at the last entry.
func (s *Session) SelectNext() {
	n := len(s.Displayed())
	if n == 0 {
		s.selected = 0
		return
	}
	s.selected = min(s.selected+1, n-1)
}

// SelectPrevious moves the cursor up, stopping at the first entry.
func (s *Session) SelectPrevious() {
	n := len(s.Displayed())
	if n == 0 {
		s.selected = 0
		return
	}
	s.selected = min(max(s.selected-1, 0), n-1)
}

// clampSelection keeps the cursor inside the displayed list.
func (s *Session) clampSelection() {
	n := len(s.Displayed())
	if n == 0 {
		s.selected = 0
		return
	}
	s.selected = min(max(s.selected, 0), n-1)
}

// EnterSearch switches from the file list to the search popup.
func (s *Session) EnterSearch() {
	if _, ok := s.mode.(FileList); ok {
		s.mode = SearchPopup{}
	}
}

// ConfirmSearch returns to the file list keeping the search text.
func (s *Session) ConfirmSearch() {
	if _, ok := s.mode.(SearchPopup); ok {
		s.mode = FileList{}
	}
}

// AppendSearch adds r to the search text, enabling the filter.
func (s *Session) AppendSearch(r rune) {
	s.search += string(r)
	s.filtering = true
	s.clampSelection()
}

// BackspaceSearch removes the last character. Removing the last one turns
// the filter off rather than leaving an empty query.
func (s *Session) BackspaceSearch() {
	if !s.filtering {
		return
	}
	_, size := utf8.DecodeLastRuneInString(s.search)
	s.search = s.search[:len(s.search)-size]
	if s.search == "" {
		s.filtering = false
	}
	s.clampSelection()
}

// OpenInfo shows the details of the selected track.
func (s *Session) OpenInfo() {
	if _, ok := s.mode.(FileList); !ok {
		return
	}
	if e, ok := s.Selected(); ok {
		s.mode = InfoPopup{Track: e.Track}
	}
}

// CloseInfo returns from the detail view to the file list.
func (s *Session) CloseInfo() {
	if _, ok := s.mode.(InfoPopup); ok {
		s.mode = FileList{}
	}
}
