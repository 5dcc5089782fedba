package jukebox

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gigurra/tunes/cmd/library"
)

type fakeSource struct {
	path     string
	duration time.Duration
	closed   bool
}

func (s *fakeSource) Duration() (time.Duration, bool) { return s.duration, s.duration > 0 }
func (s *fakeSource) Close() error                    { s.closed = true; return nil }

// fakeEngine records what the session asks of it.
type fakeEngine struct {
	failOpen  map[string]bool
	failSeek  bool
	durations map[string]time.Duration

	current *fakeSource
	paused  bool
	volume  float64
	seeks   []time.Duration
	opened  []string
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		failOpen:  map[string]bool{},
		durations: map[string]time.Duration{},
		paused:    true,
		volume:    1,
	}
}

func (e *fakeEngine) Open(path string) (Source, error) {
	if e.failOpen[filepath.Base(path)] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	e.opened = append(e.opened, filepath.Base(path))
	return &fakeSource{path: path, duration: e.durations[filepath.Base(path)]}, nil
}

func (e *fakeEngine) Append(src Source) error {
	e.current = src.(*fakeSource)
	e.paused = true
	return nil
}

func (e *fakeEngine) Clear() {
	if e.current != nil {
		_ = e.current.Close()
	}
	e.current = nil
	e.paused = true
}

func (e *fakeEngine) Play() {
	if e.current != nil {
		e.paused = false
	}
}

func (e *fakeEngine) Pause()         { e.paused = true }
func (e *fakeEngine) IsPaused() bool { return e.current == nil || e.paused }

func (e *fakeEngine) Seek(d time.Duration) error {
	if e.current == nil {
		return ErrNoSource
	}
	if e.failSeek {
		return errors.New("seek failed")
	}
	e.seeks = append(e.seeks, d)
	return nil
}

func (e *fakeEngine) SetVolume(v float64) { e.volume = v }
func (e *fakeEngine) Volume() float64     { return e.volume }

func (e *fakeEngine) LoadedDuration() (time.Duration, bool) {
	if e.current == nil {
		return 0, false
	}
	return e.current.Duration()
}

func (e *fakeEngine) Close() error { e.Clear(); return nil }

func (e *fakeEngine) currentName() string {
	if e.current == nil {
		return ""
	}
	return filepath.Base(e.current.path)
}

// mapReader serves tracks keyed by file base name.
type mapReader map[string]library.Track

func (r mapReader) Read(path string) (library.Track, error) {
	t, ok := r[filepath.Base(path)]
	if !ok {
		return library.Track{}, library.ErrNoTags
	}
	return t, nil
}

// testTrack describes one file of a test library. Files are sorted by
// artist, so artists are chosen to keep the listed order.
type testTrack struct {
	name     string
	title    string
	artist   string
	album    string
	duration time.Duration
}

func newTestLibrary(t *testing.T, tracks ...testTrack) *library.Library {
	t.Helper()
	root := t.TempDir()
	reader := mapReader{}
	for _, tt := range tracks {
		if err := os.WriteFile(filepath.Join(root, tt.name), []byte("data"), 0644); err != nil {
			t.Fatalf("Failed to create %s: %v", tt.name, err)
		}
		reader[tt.name] = library.Track{Title: tt.title, Artist: tt.artist, Album: tt.album, Duration: tt.duration}
	}
	lib := library.New(root, reader)
	if _, err := lib.Scan(context.Background()); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	return lib
}

// threeTracks is a library of 1.mp3, 2.mp3 and 3.mp3 in that order.
func threeTracks(t *testing.T) *library.Library {
	return newTestLibrary(t,
		testTrack{name: "1.mp3", title: "One", artist: "A1", album: "First", duration: 5 * time.Second},
		testTrack{name: "2.mp3", title: "Two", artist: "A2", album: "Second", duration: 7 * time.Second},
		testTrack{name: "3.mp3", title: "Three", artist: "A3", album: "Third", duration: 9 * time.Second},
	)
}

func newTestSession(t *testing.T, lib *library.Library) (*Session, *fakeEngine) {
	t.Helper()
	engine := newFakeEngine()
	s := NewSession(lib, engine, Options{Rand: rand.New(rand.NewPCG(1, 2))})
	return s, engine
}

func activeName(s *Session) string {
	if t := s.ActiveTrack(); t != nil {
		return filepath.Base(t.Path)
	}
	return ""
}
