//go:build (linux && cgo) || windows || darwin

package jukebox

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
)

// AudioAvailable indicates whether audio playback is supported in this build.
const AudioAvailable = true

// player handles the actual audio output using beep.
type player struct {
	mu sync.Mutex

	sampleRate beep.SampleRate
	current    *decoded
	ctrl       *beep.Ctrl
	gain       *effects.Volume
	volume     float64
}

type decoded struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
}

func (d *decoded) Duration() (time.Duration, bool) {
	n := d.streamer.Len()
	if n <= 0 {
		return 0, false
	}
	return d.format.SampleRate.D(n), true
}

func (d *decoded) Close() error { return d.streamer.Close() }

// NewEngine initializes the speaker and returns a beep backed Engine.
func NewEngine() (Engine, error) {
	sampleRate := beep.SampleRate(44100)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to initialize audio output: %w", err)
	}
	return &player{sampleRate: sampleRate, volume: 1}, nil
}

// Open decodes an mp3 or flac file without touching current playback.
func (p *player) Open(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}

	return &decoded{streamer: streamer, format: format}, nil
}

// Append replaces the sink contents with src. Playback starts paused.
func (p *player) Append(src Source) error {
	d, ok := src.(*decoded)
	if !ok {
		return ErrNoSource
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	// Resample if needed to match speaker sample rate
	resampled := beep.Resample(4, d.format.SampleRate, p.sampleRate, d.streamer)
	p.ctrl = &beep.Ctrl{Streamer: resampled, Paused: true}
	p.gain = &effects.Volume{Streamer: p.ctrl, Base: 2}
	p.applyVolumeLocked()
	p.current = d

	speaker.Play(p.gain)
	return nil
}

// Clear stops playback and releases the loaded source.
func (p *player) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// stopLocked stops playback (must be called with lock held).
func (p *player) stopLocked() {
	speaker.Clear()
	if p.current != nil {
		p.current.Close()
		p.current = nil
	}
	p.ctrl = nil
	p.gain = nil
}

func (p *player) Play()  { p.setPaused(false) }
func (p *player) Pause() { p.setPaused(true) }

func (p *player) setPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl != nil {
		speaker.Lock()
		p.ctrl.Paused = paused
		speaker.Unlock()
	}
}

// IsPaused reports true when nothing is loaded.
func (p *player) IsPaused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctrl == nil {
		return true
	}

	speaker.Lock()
	paused := p.ctrl.Paused
	speaker.Unlock()
	return paused
}

// Seek moves the loaded source to pos.
func (p *player) Seek(pos time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return ErrNoSource
	}

	samples := p.current.format.SampleRate.N(pos)
	if samples < 0 || samples > p.current.streamer.Len() {
		return ErrSeekOutOfRange
	}

	speaker.Lock()
	defer speaker.Unlock()
	return p.current.streamer.Seek(samples)
}

// SetVolume sets a linear gain in [0, 1]. beep volume is exponential with
// base 2, so the linear gain is converted with log2.
func (p *player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.volume = math.Max(0, math.Min(1, v))
	p.applyVolumeLocked()
}

func (p *player) applyVolumeLocked() {
	if p.gain == nil {
		return
	}
	speaker.Lock()
	p.gain.Silent = p.volume <= 0
	if p.volume > 0 {
		p.gain.Volume = math.Log2(p.volume)
	}
	speaker.Unlock()
}

func (p *player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

func (p *player) LoadedDuration() (time.Duration, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return 0, false
	}
	return p.current.Duration()
}

// Close releases the loaded source and the audio device.
func (p *player) Close() error {
	p.Clear()
	speaker.Close()
	return nil
}
