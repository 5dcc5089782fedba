package library

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"
)

var ErrNoTags = errors.New("no readable tags")

// DurationProbe reports the playing time of an audio file.
type DurationProbe func(path string) (time.Duration, error)

// TagReader reads tags with dhowden/tag and the duration with taglib.
type TagReader struct {
	Probe DurationProbe
}

// NewTagReader returns a TagReader using taglib for durations.
func NewTagReader() *TagReader {
	return &TagReader{Probe: taglibDuration}
}

func taglibDuration(path string) (time.Duration, error) {
	props, err := taglib.ReadProperties(path)
	if err != nil {
		return 0, err
	}
	return props.Length, nil
}

// Read implements MetadataReader. A file without parseable tags is an error;
// a missing duration is not and falls back to zero.
func (r *TagReader) Read(path string) (Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return Track{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Track{}, fmt.Errorf("%w: %s: %v", ErrNoTags, path, err)
	}

	number, total := m.Track()
	track := Track{
		Title:  strings.TrimSpace(m.Title()),
		Album:  strings.TrimSpace(m.Album()),
		Artist: strings.TrimSpace(m.Artist()),
		Number: TrackNumber{Number: nonNegative(number), Total: nonNegative(total)},
		Path:   path,
	}

	if r.Probe != nil {
		if d, err := r.Probe(path); err == nil && d > 0 {
			track.Duration = d
		}
	}

	return track, nil
}

func nonNegative(n int) uint32 {
	if n < 0 {
		return 0
	}
	return uint32(n)
}
