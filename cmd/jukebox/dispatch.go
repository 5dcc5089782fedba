package jukebox

import (
	"context"
	"unicode"
)

// KeyCode identifies a non-character key.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyBackspace
	KeyEsc
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// Key is one discrete input event. Rune is set for KeyRune.
type Key struct {
	Code KeyCode
	Rune rune
}

// RuneKey returns the key event for a printable character.
func RuneKey(r rune) Key { return Key{Code: KeyRune, Rune: r} }

// Intent is what the user asked for, independent of the key that did it.
type Intent int

const (
	IntentNone Intent = iota
	IntentQuit
	IntentTogglePlayback
	IntentSelectNext
	IntentSelectPrevious
	IntentActivate
	IntentSeekForward
	IntentSeekBackward
	IntentSkipToEnd
	IntentVolumeUp
	IntentVolumeDown
	IntentToggleShuffle
	IntentRescan
	IntentEnterSearch
	IntentConfirmSearch
	IntentSearchAppend
	IntentSearchBackspace
	IntentOpenInfo
	IntentCloseInfo
	IntentCopyPath
)

// Action is a dispatched intent. Rune carries the character for
// IntentSearchAppend.
type Action struct {
	Intent Intent
	Rune   rune
}

var ActionNone = Action{}

// Dispatch maps a key to an action for the given mode. Keys that have no
// meaning in the mode map to ActionNone. It performs no I/O.
func Dispatch(mode Mode, key Key) Action {
	switch mode.(type) {
	case FileList:
		return fileListAction(key)
	case SearchPopup:
		return searchAction(key)
	case InfoPopup:
		return infoAction(key)
	}
	return ActionNone
}

func fileListAction(key Key) Action {
	switch key.Code {
	case KeyEnter:
		return Action{Intent: IntentActivate}
	case KeyUp:
		return Action{Intent: IntentSelectPrevious}
	case KeyDown:
		return Action{Intent: IntentSelectNext}
	case KeyLeft:
		return Action{Intent: IntentSeekBackward}
	case KeyRight:
		return Action{Intent: IntentSeekForward}
	case KeyRune:
	default:
		return ActionNone
	}

	switch key.Rune {
	case 'q':
		return Action{Intent: IntentQuit}
	case ' ', 'p':
		return Action{Intent: IntentTogglePlayback}
	case 'j':
		return Action{Intent: IntentSelectNext}
	case 'k':
		return Action{Intent: IntentSelectPrevious}
	case 'l':
		return Action{Intent: IntentSeekForward}
	case 'h':
		return Action{Intent: IntentSeekBackward}
	case 'n':
		return Action{Intent: IntentSkipToEnd}
	case '+', '=':
		return Action{Intent: IntentVolumeUp}
	case '-':
		return Action{Intent: IntentVolumeDown}
	case 'z':
		return Action{Intent: IntentToggleShuffle}
	case 's':
		return Action{Intent: IntentRescan}
	case '/':
		return Action{Intent: IntentEnterSearch}
	case 'i':
		return Action{Intent: IntentOpenInfo}
	case 'y':
		return Action{Intent: IntentCopyPath}
	}
	return ActionNone
}

func searchAction(key Key) Action {
	switch key.Code {
	case KeyEnter, KeyEsc:
		return Action{Intent: IntentConfirmSearch}
	case KeyBackspace:
		return Action{Intent: IntentSearchBackspace}
	case KeyRune:
		if unicode.IsPrint(key.Rune) {
			return Action{Intent: IntentSearchAppend, Rune: key.Rune}
		}
	}
	return ActionNone
}

func infoAction(key Key) Action {
	switch key.Code {
	case KeyEnter, KeyEsc:
		return Action{Intent: IntentCloseInfo}
	case KeyRune:
		if key.Rune == 'i' || key.Rune == 'q' {
			return Action{Intent: IntentCloseInfo}
		}
	}
	return ActionNone
}

// Apply performs a dispatched action on the session. Errors are the ones the
// user has to see: failed loads and failed rescans. IntentCopyPath is left
// to the front-end.
func (s *Session) Apply(ctx context.Context, a Action) error {
	switch a.Intent {
	case IntentQuit:
		s.Quit()
	case IntentTogglePlayback:
		s.TogglePlayback()
	case IntentSelectNext:
		s.SelectNext()
	case IntentSelectPrevious:
		s.SelectPrevious()
	case IntentActivate:
		return s.ActivateSelection()
	case IntentSeekForward:
		s.SeekForward()
	case IntentSeekBackward:
		s.SeekBackward()
	case IntentSkipToEnd:
		if s.active != nil {
			s.SkipToEnd()
		}
	case IntentVolumeUp:
		s.AdjustVolume(VolumeStep)
	case IntentVolumeDown:
		s.AdjustVolume(-VolumeStep)
	case IntentToggleShuffle:
		s.ToggleShuffle()
	case IntentRescan:
		_, err := s.Rescan(ctx)
		return err
	case IntentEnterSearch:
		s.EnterSearch()
	case IntentConfirmSearch:
		s.ConfirmSearch()
	case IntentSearchAppend:
		s.AppendSearch(a.Rune)
	case IntentSearchBackspace:
		s.BackspaceSearch()
	case IntentOpenInfo:
		s.OpenInfo()
	case IntentCloseInfo:
		s.CloseInfo()
	}
	return nil
}
