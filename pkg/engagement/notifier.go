package engagement

import "log"

// Notifier shows the outcome of a user action.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier writes notices to the standard logger.
type LogNotifier struct{}

func (LogNotifier) Success(msg string) { log.Printf("[engagement] %s", msg) }
func (LogNotifier) Error(msg string)   { log.Printf("[engagement] error: %s", msg) }
