package logger

import (
	"log/slog"
	"time"
)

// Error records err under the key "error". Returns an empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Tenant records the tenant key under the key "tenant".
func Tenant(key string) slog.Attr {
	return slog.String("tenant", key)
}

// Username records the username under the key "username".
func Username(name string) slog.Attr {
	return slog.String("username", name)
}

// SessionID records the controller session identifier under the key "session_id".
func SessionID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("session_id", id)
}

// Branch records the lifecycle branch under the key "branch".
func Branch(name string) slog.Attr {
	return slog.String("branch", name)
}

// Interval records a polling interval under the key "interval".
func Interval(d time.Duration) slog.Attr {
	return slog.Duration("interval", d)
}

// Trigger records a UI trigger name under the key "trigger".
func Trigger(name string) slog.Attr {
	return slog.String("trigger", name)
}

// Outcome records an operation outcome under the key "outcome".
func Outcome(name string) slog.Attr {
	return slog.String("outcome", name)
}

// StatusCode records an HTTP status under the key "status_code".
func StatusCode(code int) slog.Attr {
	return slog.Int("status_code", code)
}
