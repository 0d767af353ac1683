package popup

import (
	"github.com/edward-r/prompt-maker/internal/keys"
	"github.com/edward-r/prompt-maker/internal/listwindow"
)

// FilesState lists the attached files.
type FilesState struct {
	Paths    []string
	Selected int
}

// HandleFilesKey reduces a key intent for the attachments popup. Delete and
// Backspace detach the selected file.
func HandleFilesKey(s FilesState, in keys.Intent) (FilesState, Effect) {
	count := len(s.Paths)
	switch in.Kind {
	case keys.Up:
		s.Selected = listwindow.ClampSelectionIndex(count, s.Selected-1)
	case keys.Down:
		s.Selected = listwindow.ClampSelectionIndex(count, s.Selected+1)
	case keys.Home:
		s.Selected = 0
	case keys.End:
		s.Selected = listwindow.ClampSelectionIndex(count, count-1)
	case keys.Delete, keys.Backspace:
		if count == 0 {
			return s, noEffect
		}
		index := listwindow.ClampSelectionIndex(count, s.Selected)
		removed := s.Paths[index]
		paths := make([]string, 0, count-1)
		paths = append(paths, s.Paths[:index]...)
		paths = append(paths, s.Paths[index+1:]...)
		s.Paths = paths
		s.Selected = listwindow.ClampSelectionIndex(len(paths), index)
		return s, Effect{Kind: EffectRemove, Value: removed, Index: index}
	case keys.Cancel, keys.Submit:
		return s, closeEffect()
	}
	return s, noEffect
}

// Window picks the visible slice of the attachments list.
func (s FilesState) Window(maxRows int) listwindow.Windowed {
	return listwindow.ResolveWindowedList(len(s.Paths), s.Selected, maxRows)
}
