package jukebox

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/samber/lo"
)

// Advance moves the playback clock forward by dt while the engine is
// playing. Reaching the track duration triggers exactly one end-of-track
// transition per call. A paused session never changes elapsed time.
func (s *Session) Advance(dt time.Duration) error {
	if s.active == nil || s.engine.IsPaused() {
		return nil
	}

	s.elapsed += max(dt, 0)
	if s.elapsed < s.active.Duration {
		return nil
	}
	return s.onTrackFinished()
}

// onTrackFinished loads the following track, or pauses at the end of the
// library. A failed load also pauses and is reported to the caller.
func (s *Session) onTrackFinished() error {
	next, ok := s.nextIndex()
	if !ok {
		s.engine.Pause()
		return nil
	}

	if err := s.load(next); err != nil {
		s.engine.Pause()
		return err
	}
	return nil
}

// nextIndex picks the library index to continue with. Shuffle picks
// uniformly among all tracks except the current one.
func (s *Session) nextIndex() (int, bool) {
	n := s.lib.Len()
	if s.playing < 0 || s.playing >= n {
		return 0, false
	}

	if s.playback == Shuffle && n > 1 {
		i := s.rng.IntN(n - 1)
		if i >= s.playing {
			i++
		}
		return i, true
	}

	if s.playing < n-1 {
		return s.playing + 1, true
	}
	return 0, false
}

// ActivateSelection starts playing the selected track. The new source is
// opened before anything is cleared, so a failure keeps the previous track
// playing.
func (s *Session) ActivateSelection() error {
	e, ok := s.Selected()
	if !ok {
		return nil
	}
	return s.load(e.Index)
}

// load swaps the engine to the library track at index and starts it.
func (s *Session) load(index int) error {
	track := s.lib.Files()[index]

	src, err := s.engine.Open(track.Path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", track.Path, err)
	}
	if track.Duration <= 0 {
		if d, ok := src.Duration(); ok {
			track.Duration = d
		}
	}

	s.engine.Clear()
	if err := s.engine.Append(src); err != nil {
		_ = src.Close()
		s.active = nil
		s.playing = -1
		s.elapsed = 0
		return fmt.Errorf("failed to queue %s: %w", track.Path, err)
	}

	s.active = &track
	s.playing = index
	s.elapsed = 0
	s.engine.Play()

	slog.Info("now playing", "path", track.Path, "title", track.Title, "artist", track.Artist)
	if s.opts.OnTrackChange != nil {
		s.opts.OnTrackChange(track)
	}
	return nil
}

// TogglePlayback flips between playing and paused. No-op without a track.
func (s *Session) TogglePlayback() {
	if s.active == nil {
		return
	}
	if s.engine.IsPaused() {
		s.engine.Play()
	} else {
		s.engine.Pause()
	}
}

// SeekForward skips ahead by the forward step.
func (s *Session) SeekForward() {
	s.seekTo(s.elapsed + s.opts.SeekForward)
}

// SeekBackward rewinds by the backward step, stopping at zero.
func (s *Session) SeekBackward() {
	s.seekTo(max(s.elapsed-s.opts.SeekBackward, 0))
}

// seekTo commits target only if the engine accepts it.
func (s *Session) seekTo(target time.Duration) {
	if s.active == nil {
		return
	}
	if err := s.engine.Seek(target); err != nil {
		slog.Debug("seek rejected", "target", target, "error", err)
		return
	}
	s.elapsed = target
}

// SkipToEnd jumps the clock to the end of the active track. The next
// Advance performs the end-of-track transition. Calling it without an
// active track is a programming error.
func (s *Session) SkipToEnd() {
	if s.active == nil {
		panic("jukebox: SkipToEnd called without an active track")
	}
	s.elapsed = s.active.Duration
}

// AdjustVolume changes the volume by delta, clamped to [0, 1].
func (s *Session) AdjustVolume(delta float64) {
	if math.IsNaN(delta) {
		return
	}
	s.engine.SetVolume(lo.Clamp(s.engine.Volume()+delta, 0, 1))
}

// ToggleShuffle switches between sequential and shuffle playback.
func (s *Session) ToggleShuffle() PlaybackMode {
	if s.playback == Shuffle {
		s.playback = Sequential
	} else {
		s.playback = Shuffle
	}
	return s.playback
}

// Rescan reloads the library. The active track keeps playing and is
// relocated by path; if it disappeared it has no playing index and playback
// pauses when it ends.
func (s *Session) Rescan(ctx context.Context) (int, error) {
	seen, err := s.lib.Scan(ctx)

	s.playing = -1
	if s.active != nil {
		s.playing = s.lib.IndexOf(s.active.Path)
	}
	s.clampSelection()

	if err != nil {
		return seen, fmt.Errorf("scan of %s failed: %w", s.lib.Root(), err)
	}
	return seen, nil
}
