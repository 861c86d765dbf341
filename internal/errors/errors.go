package errors

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/leitstand/internal/logger"
)

var (
	// ErrNotFound is returned when a record does not exist or is soft-deleted
	ErrNotFound = errors.New("record not found")
	// ErrUnknownCollection is returned for collection names outside the fixed set
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrPermissionDenied is returned when a role lacks view or edit rights on an area
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNotInitialized is returned when the store has not been created yet
	ErrNotInitialized = errors.New("storage not initialized, run 'leitstand init' first")
)

// hints follow a fatal error on its own line
var hints = []struct {
	target error
	hint   string
}{
	{ErrNotFound, "List existing IDs with 'leitstand record list <collection> --archived'."},
	{ErrUnknownCollection, "Known collections: absences, roadworks, charterTrips, appointments, medicalAppointments, todos, trainings, notices, serviceMessages."},
	{ErrPermissionDenied, "Ask an admin to extend your role with 'leitstand user add' or the permissions field."},
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return Format(fmt.Errorf(format, args...))
}

// Hint suggests a next step for the sentinel in err's chain, or ""
func Hint(err error) string {
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

func report(w io.Writer, err error) {
	fmt.Fprintln(w, Format(err))
	if hint := Hint(err); hint != "" {
		fmt.Fprintln(w, hint)
	}
}

// Fatal logs err, prints it with its hint to stderr and exits with code 1
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	report(os.Stderr, err)
	os.Exit(1)
}
