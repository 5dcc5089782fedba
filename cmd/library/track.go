package library

import (
	"fmt"
	"time"
)

// Unknown is the placeholder shown for missing tag fields.
const Unknown = "Unknown"

// TrackNumber is the position of a track on its release. Zero means absent.
type TrackNumber struct {
	Number uint32
	Total  uint32
}

// Track is one scanned audio file with its extracted metadata.
// Empty text fields mean the tag was absent.
type Track struct {
	Title    string
	Album    string
	Artist   string
	Number   TrackNumber
	Duration time.Duration
	Path     string
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}

// DisplayTitle returns the title or the Unknown placeholder.
func (t Track) DisplayTitle() string { return orUnknown(t.Title) }

// DisplayAlbum returns the album or the Unknown placeholder.
func (t Track) DisplayAlbum() string { return orUnknown(t.Album) }

// DisplayArtist returns the artist or the Unknown placeholder.
func (t Track) DisplayArtist() string { return orUnknown(t.Artist) }

// DisplayNumber formats the track number as two digits, "00" when absent.
func (t Track) DisplayNumber() string {
	return fmt.Sprintf("%02d", t.Number.Number)
}

// FormatDuration renders a duration as mm:ss.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
