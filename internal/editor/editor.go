// Package editor implements the annotation editing workflow: the tag set
// editor, the save orchestrator, and the keyboard shortcut handler, plus
// the HTTP handler that serves the editor page itself.
package editor

import "github.com/rs/zerolog"

var editorLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	editorLogger = l
}
