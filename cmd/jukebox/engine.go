package jukebox

import (
	"errors"
	"time"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrSeekOutOfRange    = errors.New("seek position out of range")
	ErrNoSource          = errors.New("no source loaded")
)

// Source is a decoded audio stream ready to be handed to an Engine.
type Source interface {
	// Duration reports the total length if the decoder knows it upfront.
	Duration() (time.Duration, bool)
	Close() error
}

// Engine is the audio output sink. All methods return immediately; audio I/O
// happens outside the caller's control flow.
//
// Open must not disturb what is currently playing, so a failed open leaves
// the previous track untouched.
type Engine interface {
	Open(path string) (Source, error)
	Append(src Source) error
	Clear()
	Play()
	Pause()
	IsPaused() bool
	Seek(pos time.Duration) error
	SetVolume(v float64)
	Volume() float64
	LoadedDuration() (time.Duration, bool)
	Close() error
}
