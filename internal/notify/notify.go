// Package notify delivers user-facing notifications raised by background
// work, such as a failed save. Sinks decide where a notification surfaces:
// the browser via SSE, the server log, or both.
package notify

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/sidenotehq/sidenote/internal/model"
	"github.com/sidenotehq/sidenote/internal/sse"
)

var notifyLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	notifyLogger = l
}

// Sink receives user-facing error notifications for an annotation.
type Sink interface {
	Error(id model.AnnotationID, message string)
}

type toastPayload struct {
	Type    string `json:"type"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// SSESink shows notifications as toasts in every editor session watching
// the annotation.
type SSESink struct {
	clients *sse.SSEClients
}

func NewSSESink(clients *sse.SSEClients) *SSESink {
	return &SSESink{
		clients: clients,
	}
}

func (s *SSESink) Error(id model.AnnotationID, message string) {
	payload, err := json.Marshal(toastPayload{
		Type:    "toast",
		Level:   "error",
		Message: message,
	})
	if err != nil {
		notifyLogger.Error().Err(err).Msg("Error encoding toast payload")
		return
	}
	s.clients.Broadcast(id, string(payload))
}

// LogSink writes notifications to the server log.
type LogSink struct{}

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) Error(id model.AnnotationID, message string) {
	notifyLogger.Error().
		Str("annotation_id", string(id)).
		Msg(message)
}

// Multi fans a notification out to several sinks.
type Multi []Sink

func NewMulti(sinks ...Sink) Multi {
	return Multi(sinks)
}

func (m Multi) Error(id model.AnnotationID, message string) {
	for _, sink := range m {
		sink.Error(id, message)
	}
}
