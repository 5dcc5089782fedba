package library

import (
	"cmp"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DefaultExtensions are the file extensions picked up by a scan.
// Matching is case-sensitive.
var DefaultExtensions = []string{"mp3", "flac"}

// DirLister lists the entries of one directory.
type DirLister func(dir string) ([]fs.DirEntry, error)

// MetadataReader extracts a Track from an audio file.
type MetadataReader interface {
	Read(path string) (Track, error)
}

// Library owns the sorted collection of tracks found under a root directory.
type Library struct {
	root       string
	reader     MetadataReader
	listDir    DirLister
	extensions map[string]bool
	tracks     []Track
}

type Option func(*Library)

// WithDirLister replaces os.ReadDir as the directory listing primitive.
func WithDirLister(lister DirLister) Option {
	return func(l *Library) { l.listDir = lister }
}

// WithExtensions replaces the supported extension set (without dots).
func WithExtensions(exts ...string) Option {
	return func(l *Library) {
		l.extensions = make(map[string]bool, len(exts))
		for _, e := range exts {
			l.extensions[strings.TrimPrefix(e, ".")] = true
		}
	}
}

// New creates an empty library rooted at root.
func New(root string, reader MetadataReader, opts ...Option) *Library {
	l := &Library{
		root:    root,
		reader:  reader,
		listDir: os.ReadDir,
	}
	WithExtensions(DefaultExtensions...)(l)
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Root returns the scanned directory.
func (l *Library) Root() string { return l.root }

// Files returns the tracks of the most recent scan. Callers must not modify it.
func (l *Library) Files() []Track { return l.tracks }

// Len returns the number of loaded tracks.
func (l *Library) Len() int { return len(l.tracks) }

// IndexOf returns the index of the track with the given path, or -1.
func (l *Library) IndexOf(path string) int {
	return slices.IndexFunc(l.tracks, func(t Track) bool { return t.Path == path })
}

// Scan clears the library and walks the root directory depth-first using an
// explicit stack. It returns the number of supported files seen, including
// files whose metadata could not be read. A directory listing failure aborts
// the scan and leaves the library empty.
func (l *Library) Scan(ctx context.Context) (int, error) {
	l.tracks = nil

	root, err := filepath.Abs(l.root)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve %s: %w", l.root, err)
	}

	var (
		seen   int
		tracks []Track
		stack  = []string{root}
	)

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return seen, err
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := l.listDir(dir)
		if err != nil {
			return seen, fmt.Errorf("failed to read directory %s: %w", dir, err)
		}

		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				stack = append(stack, path)
				continue
			}
			if !entry.Type().IsRegular() || !l.supported(entry.Name()) {
				continue
			}

			seen++
			track, err := l.reader.Read(path)
			if err != nil {
				slog.Debug("skipping file with unreadable metadata", "path", path, "error", err)
				continue
			}
			track.Path = path
			if track.Duration < 0 {
				track.Duration = 0
			}
			tracks = append(tracks, track)
		}
	}

	sortTracks(tracks)
	l.tracks = tracks
	slog.Info("library scanned", "root", root, "seen", seen, "loaded", len(tracks))
	return seen, nil
}

func (l *Library) supported(name string) bool {
	ext := filepath.Ext(name)
	if ext == "" {
		return false
	}
	return l.extensions[ext[1:]]
}

// sortTracks orders by artist, album and track number. Missing text sorts
// as Unknown and a missing number as 0.
func sortTracks(tracks []Track) {
	slices.SortStableFunc(tracks, func(a, b Track) int {
		return cmp.Or(
			cmp.Compare(a.DisplayArtist(), b.DisplayArtist()),
			cmp.Compare(a.DisplayAlbum(), b.DisplayAlbum()),
			cmp.Compare(a.Number.Number, b.Number.Number),
		)
	})
}
