//go:build !((linux && cgo) || windows || darwin)

package jukebox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// AudioAvailable indicates whether audio playback is supported in this build.
// Audio requires CGO for native sound libraries.
const AudioAvailable = false

// player is a silent engine for builds without cgo. It keeps the same
// state transitions as the real one so the player stays usable.
type player struct {
	current *silentSource
	paused  bool
	volume  float64
}

type silentSource struct {
	path string
}

func (s *silentSource) Duration() (time.Duration, bool) { return 0, false }
func (s *silentSource) Close() error                    { return nil }

// NewEngine returns a silent Engine.
func NewEngine() (Engine, error) {
	return &player{paused: true, volume: 1}, nil
}

func (p *player) Open(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".flac":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return &silentSource{path: path}, nil
}

func (p *player) Append(src Source) error {
	s, ok := src.(*silentSource)
	if !ok {
		return ErrNoSource
	}
	p.current = s
	p.paused = true
	return nil
}

func (p *player) Clear() {
	p.current = nil
	p.paused = true
}

func (p *player) Play() {
	if p.current != nil {
		p.paused = false
	}
}

func (p *player) Pause() { p.paused = true }

func (p *player) IsPaused() bool { return p.paused }

func (p *player) Seek(pos time.Duration) error {
	if p.current == nil {
		return ErrNoSource
	}
	if pos < 0 {
		return ErrSeekOutOfRange
	}
	return nil
}

func (p *player) SetVolume(v float64) {
	p.volume = max(0, min(1, v))
}

func (p *player) Volume() float64 { return p.volume }

func (p *player) LoadedDuration() (time.Duration, bool) { return 0, false }

func (p *player) Close() error {
	p.Clear()
	return nil
}
