package logger

import "log/slog"

// Attribute keys shared across the codebase. Free-form keys drift quickly;
// these helpers keep log queries stable.
const (
	KeyError     = "error"
	KeyComponent = "component"
	KeyRequestID = "request_id"
	KeyUserID    = "user_id"
	KeyEvent     = "event"
)

// Error returns a standard error attribute. Nil errors render as "<nil>"
// rather than being dropped so mistakes show up in logs.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "<nil>")
	}
	return slog.String(KeyError, err.Error())
}

// Component tags a record with the emitting subsystem.
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// RequestID tags a record with the request correlation ID.
func RequestID(id string) slog.Attr {
	return slog.String(KeyRequestID, id)
}

// UserID tags a record with the acting user's ID.
func UserID(id string) slog.Attr {
	return slog.String(KeyUserID, id)
}

// Event tags a record with a machine-readable event name.
func Event(name string) slog.Attr {
	return slog.String(KeyEvent, name)
}
