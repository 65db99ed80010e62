// Package notify is the transient-message surface of the app. Controllers
// report outcomes here and never learn how the message is shown; the
// console binds a renderer, tests bind a spy, and deployments that relay
// toasts to devices bind the AMQP publisher.
package notify

import "go.uber.org/zap"

// Severity is the closed set of message levels. Keeping it an enum (rather
// than the free-form strings the backend once accepted) makes exhaustive
// handling checkable.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notifier displays one transient message. Fire and forget: callers never
// consume a return value, so implementations must swallow their own failures.
type Notifier interface {
	Notify(message string, severity Severity)
}

// Func adapts a plain function to the Notifier interface.
type Func func(message string, severity Severity)

func (f Func) Notify(message string, severity Severity) {
	f(message, severity)
}

// Logger is the default Notifier: it writes the message to the zap log at
// the matching level.
type Logger struct {
	Log *zap.Logger
}

func NewLogger(log *zap.Logger) *Logger {
	return &Logger{Log: log}
}

func (l *Logger) Notify(message string, severity Severity) {
	switch severity {
	case SeverityError:
		l.Log.Error(message, zap.String("severity", string(severity)))
	case SeverityWarning:
		l.Log.Warn(message, zap.String("severity", string(severity)))
	default:
		l.Log.Info(message, zap.String("severity", string(severity)))
	}
}

// Notification is one recorded message.
type Notification struct {
	Message  string
	Severity Severity
}

// Spy records notifications for assertions in tests.
type Spy struct {
	Notifications []Notification
}

func (s *Spy) Notify(message string, severity Severity) {
	s.Notifications = append(s.Notifications, Notification{Message: message, Severity: severity})
}

// Last returns the most recent notification, if any.
func (s *Spy) Last() (Notification, bool) {
	if len(s.Notifications) == 0 {
		return Notification{}, false
	}
	return s.Notifications[len(s.Notifications)-1], true
}

func (s *Spy) Reset() {
	s.Notifications = nil
}
