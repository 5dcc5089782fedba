package play

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gigurra/tunes/cmd/jukebox"
	"github.com/gigurra/tunes/cmd/library"
)

type stubSource struct{}

func (stubSource) Duration() (time.Duration, bool) { return 0, false }
func (stubSource) Close() error                    { return nil }

// stubEngine accepts every file and tracks only pause and volume.
type stubEngine struct {
	loaded bool
	paused bool
	volume float64
}

func (e *stubEngine) Open(string) (jukebox.Source, error) { return stubSource{}, nil }
func (e *stubEngine) Append(jukebox.Source) error         { e.loaded, e.paused = true, true; return nil }
func (e *stubEngine) Clear()                              { e.loaded = false }
func (e *stubEngine) Play()                               { e.paused = false }
func (e *stubEngine) Pause()                              { e.paused = true }
func (e *stubEngine) IsPaused() bool                      { return !e.loaded || e.paused }
func (e *stubEngine) Seek(time.Duration) error            { return nil }
func (e *stubEngine) SetVolume(v float64)                 { e.volume = v }
func (e *stubEngine) Volume() float64                     { return e.volume }
func (e *stubEngine) Close() error                        { return nil }

func (e *stubEngine) LoadedDuration() (time.Duration, bool) { return 0, false }

type stubReader map[string]library.Track

func (r stubReader) Read(path string) (library.Track, error) {
	t, ok := r[filepath.Base(path)]
	if !ok {
		return library.Track{}, library.ErrNoTags
	}
	return t, nil
}

func newTestModel(t *testing.T) model {
	t.Helper()
	root := t.TempDir()
	reader := stubReader{
		"a.mp3": {Title: "Morning", Artist: "Alice", Album: "Days", Number: library.TrackNumber{Number: 1, Total: 2}, Duration: 3 * time.Minute},
		"b.mp3": {Title: "Night", Artist: "Bob", Album: "Days", Number: library.TrackNumber{Number: 2}, Duration: 4 * time.Minute},
	}
	for name := range reader {
		if err := os.WriteFile(filepath.Join(root, name), []byte("data"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	lib := library.New(root, reader)
	session := jukebox.NewSession(lib, &stubEngine{volume: 0.8}, jukebox.Options{})
	if _, err := session.Rescan(context.Background()); err != nil {
		t.Fatalf("Rescan failed: %v", err)
	}
	return newModel(context.Background(), session, time.Millisecond, nil)
}

// press feeds keys through Update followed by one tick per key.
func press(t *testing.T, m model, msgs ...tea.KeyMsg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
		for range translateKey(msg) {
			next, _ = m.Update(tickMsg(time.Now()))
			m = next.(model)
		}
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_PlayFromList(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

	active := m.session.ActiveTrack()
	if active == nil || active.Title != "Night" {
		t.Fatalf("active = %v, want Night", active)
	}
	view := m.View()
	if !strings.Contains(view, "Night - Bob (Days)") {
		t.Errorf("view missing now playing line:\n%s", view)
	}
	if !strings.Contains(view, "04:00") {
		t.Errorf("view missing duration:\n%s", view)
	}
}

func TestModel_Search(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("/"), runes("ali"))
	view := m.View()
	if !strings.Contains(view, "Search: [ali_]") {
		t.Errorf("view missing search box:\n%s", view)
	}
	if !strings.Contains(view, "showing 1 of 2") || strings.Contains(view, "Night") {
		t.Errorf("view not filtered:\n%s", view)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := m.session.Mode().(jukebox.FileList); !ok {
		t.Errorf("Mode = %v, want file-list", m.session.Mode())
	}
}

func TestModel_InfoPopup(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("i"))
	view := m.View()
	if !strings.Contains(view, "01 of 02") || !strings.Contains(view, "a.mp3") {
		t.Errorf("view missing track details:\n%s", view)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := m.session.Mode().(jukebox.FileList); !ok {
		t.Errorf("Mode = %v, want file-list", m.session.Mode())
	}
}

func TestModel_CopyPath(t *testing.T) {
	var copied string
	orig := clipboardWriteAll
	clipboardWriteAll = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { clipboardWriteAll = orig })

	m := newTestModel(t)
	m = press(t, m, runes("y"))
	if filepath.Base(copied) != "a.mp3" {
		t.Errorf("copied = %q, want selected a.mp3", copied)
	}

	clipboardWriteAll = func(string) error { return errors.New("no clipboard") }
	m = press(t, m, runes("y"))
	if m.err == nil || !strings.Contains(m.View(), "no clipboard") {
		t.Error("expected clipboard error on screen")
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(runes("q"))
	m = next.(model)
	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModel_VolumeAndShuffle(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("-"), runes("z"))
	view := m.View()
	if !strings.Contains(view, "vol  75%") {
		t.Errorf("view missing volume:\n%s", view)
	}
	if !strings.Contains(view, "shuffle") {
		t.Errorf("view missing shuffle marker:\n%s", view)
	}
}

func TestModel_LibraryChangedRescans(t *testing.T) {
	m := newTestModel(t)
	root := m.session.Library().Root()
	if err := os.Remove(filepath.Join(root, "b.mp3")); err != nil {
		t.Fatal(err)
	}

	m = m.apply(jukebox.Action{Intent: jukebox.IntentRescan})
	if m.session.Library().Len() != 1 {
		t.Errorf("Len = %d, want 1", m.session.Library().Len())
	}
	if m.status != "rescanned: 1 tracks" {
		t.Errorf("status = %q", m.status)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		elapsed, duration time.Duration
		want              string
	}{
		{0, 0, "[----]"},
		{time.Second, 4 * time.Second, "[=---]"},
		{8 * time.Second, 4 * time.Second, "[====]"},
		{-time.Second, 4 * time.Second, "[----]"},
	}

	for _, tt := range tests {
		if got := progressBar(tt.elapsed, tt.duration, 4); got != tt.want {
			t.Errorf("progressBar(%v, %v) = %q, want %q", tt.elapsed, tt.duration, got, tt.want)
		}
	}
}

func TestScanStatus(t *testing.T) {
	tests := []struct {
		seen, loaded int
		want         string
	}{
		{0, 0, "no mp3 or flac files found"},
		{3, 0, "3 files found, none with readable tags"},
		{3, 2, "2 tracks loaded, 1 files skipped"},
		{2, 2, "2 tracks loaded"},
	}

	for _, tt := range tests {
		if got := scanStatus(tt.seen, tt.loaded); got != tt.want {
			t.Errorf("scanStatus(%d, %d) = %q, want %q", tt.seen, tt.loaded, got, tt.want)
		}
	}
}

func TestNotification(t *testing.T) {
	title, body := notification(library.Track{Title: "Night", Artist: "Bob"})
	if title != "Now playing" || body != "Night\nBob - Unknown" {
		t.Errorf("notification = %q / %q", title, body)
	}
}

func TestResolveConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunes.yaml")
	content := "music_dir: /music\nvolume: 0.3\nfps: 30\nshuffle: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	set := map[string]bool{"volume": true, "shuffle": true}
	params := &Params{Dir: "/other", Config: path, Volume: 0.9, Shuffle: false, FPS: 10}
	cfg, err := resolveConfig(params, func(name string) bool { return set[name] })
	if err != nil {
		t.Fatalf("resolveConfig failed: %v", err)
	}

	if cfg.MusicDir != "/other" {
		t.Errorf("MusicDir = %q, want /other", cfg.MusicDir)
	}
	if cfg.Volume != 0.9 || cfg.Shuffle {
		t.Errorf("flags not applied: volume=%v shuffle=%v", cfg.Volume, cfg.Shuffle)
	}
	if cfg.FPS != 30 {
		t.Errorf("FPS = %d, want 30 from file", cfg.FPS)
	}
}

func TestResolveConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunes.yaml")
	if err := os.WriteFile(path, []byte("fps: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveConfig(&Params{Config: path}, func(string) bool { return false }); err == nil {
		t.Error("expected validation error")
	}
}
