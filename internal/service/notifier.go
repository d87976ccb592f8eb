package service

import "github.com/rs/zerolog"

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notifier is the one-shot user notification sink (the UI toast). Calls are
// fire-and-forget; nothing in the engine depends on their outcome.
type Notifier interface {
	Notify(title, message string, severity Severity)
}

type logNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier returns a Notifier that writes notifications to the log.
// The embedding UI replaces it with its own toast sink.
func NewLogNotifier(log zerolog.Logger) Notifier {
	return &logNotifier{log: log}
}

func (n *logNotifier) Notify(title, message string, severity Severity) {
	event := n.log.Info()
	if severity == SeverityError {
		event = n.log.Error()
	}
	event.Str("title", title).Msg(message)
}
