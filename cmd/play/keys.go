package play

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gigurra/tunes/cmd/jukebox"
)

// translateKey converts a terminal key event into player keys. Pasted text
// arrives as several runes and yields one key per rune. Keys the player
// does not use yield nothing.
func translateKey(msg tea.KeyMsg) []jukebox.Key {
	if msg.Alt {
		return nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		return []jukebox.Key{{Code: jukebox.KeyEnter}}
	case tea.KeyBackspace:
		return []jukebox.Key{{Code: jukebox.KeyBackspace}}
	case tea.KeyEsc:
		return []jukebox.Key{{Code: jukebox.KeyEsc}}
	case tea.KeyUp:
		return []jukebox.Key{{Code: jukebox.KeyUp}}
	case tea.KeyDown:
		return []jukebox.Key{{Code: jukebox.KeyDown}}
	case tea.KeyLeft:
		return []jukebox.Key{{Code: jukebox.KeyLeft}}
	case tea.KeyRight:
		return []jukebox.Key{{Code: jukebox.KeyRight}}
	case tea.KeySpace:
		return []jukebox.Key{jukebox.RuneKey(' ')}
	case tea.KeyRunes:
		keys := make([]jukebox.Key, len(msg.Runes))
		for i, r := range msg.Runes {
			keys[i] = jukebox.RuneKey(r)
		}
		return keys
	}
	return nil
}
