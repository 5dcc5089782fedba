package play

import (
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/gen2brain/beeep"
	"github.com/gigurra/tunes/cmd/library"
)

var (
	clipboardWriteAll = clipboard.WriteAll
	desktopNotify     = beeep.Notify
)

func notification(t library.Track) (title, body string) {
	return "Now playing", fmt.Sprintf("%s\n%s - %s", t.DisplayTitle(), t.DisplayArtist(), t.DisplayAlbum())
}

// notifyTrackChange sends the desktop notification off the UI goroutine.
func notifyTrackChange(t library.Track) {
	title, body := notification(t)
	go func() {
		if err := desktopNotify(title, body, ""); err != nil {
			slog.Debug("notification failed", "error", err)
		}
	}()
}
