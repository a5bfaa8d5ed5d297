package core

// errors.go defines the error taxonomy for the application and maps raw
// errors to user-facing messages.
//
// Error codes are grouped by category:
//
//	REC001 - Record not found: the identifier does not exist
//	VAL001 - Missing field: a required form field was left empty
//	CAT001 - Unknown category: the URL names a record type that does not exist
//	DB001  - Storage failure: the database rejected or could not complete the
//	         operation
//
// Codes are shown alongside messages so operators can quote them when
// reporting a problem.

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when a record identifier does not exist.
var ErrNotFound = errors.New("record not found")

// ErrUnknownCategory is returned when a URL category segment is not one of
// the known record types.
var ErrUnknownCategory = errors.New("unknown category")

// ValidationError reports required form fields that were missing or empty.
// Fields maps the form field name to a message suitable for display next to
// the input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "missing required fields: " + strings.Join(names, ", ")
}

// UserMessage is a user-friendly rendering of an error.
type UserMessage struct {
	Code    string
	Message string
	Action  string
}

// String formats the message for a flash banner.
func (m UserMessage) String() string {
	return fmt.Sprintf("%s (%s)", m.Message, m.Code)
}

// MapError converts an internal error into a UserMessage. The raw error is
// for the logs; the mapped message is what the operator sees.
func MapError(err error) UserMessage {
	var verr *ValidationError

	switch {
	case errors.Is(err, ErrNotFound):
		return UserMessage{
			Code:    "REC001",
			Message: "That entry no longer exists.",
			Action:  "Refresh the admin page and try again.",
		}
	case errors.Is(err, ErrUnknownCategory):
		return UserMessage{
			Code:    "CAT001",
			Message: "Unknown record category.",
			Action:  "Use the links on the admin page instead of editing the URL.",
		}
	case errors.As(err, &verr):
		return UserMessage{
			Code:    "VAL001",
			Message: "Some required fields are empty.",
			Action:  "Fill in the highlighted fields and submit again.",
		}
	default:
		return UserMessage{
			Code:    "DB001",
			Message: "Could not save your changes.",
			Action:  "Please try again in a few moments.",
		}
	}
}
