package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type AlreadyExistsError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// AmbiguousCellError reports more than one event time for the same
// event code and time kind on a flight.
type AmbiguousCellError struct {
	ErrorMessage
	Code     string
	TimeKind string
	Matches  int
}

// FormatError is returned alongside a fallback value when a timestamp
// cannot be rendered.
type FormatError struct {
	ErrorMessage
	Err error
}

func (e *FormatError) Unwrap() error { return e.Err }

// ParseError is returned when user input is neither relative shorthand
// nor a recognised absolute date/time.
type ParseError struct {
	ErrorMessage
	Input string
	Err   error
}

func (e *ParseError) Unwrap() error { return e.Err }

type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewAlreadyExistsError(message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewAmbiguousCellError(code, timeKind string, matches int) *AmbiguousCellError {
	return &AmbiguousCellError{
		ErrorMessage: ErrorMessage{Message: "Multiple records found for the same event code and time kind"},
		Code:         code,
		TimeKind:     timeKind,
		Matches:      matches,
	}
}

func NewFormatError(message string, err error) *FormatError {
	return &FormatError{
		ErrorMessage: ErrorMessage{Message: message},
		Err:          err,
	}
}

func NewParseError(input string, err error) *ParseError {
	return &ParseError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("invalid date/time %q", input)},
		Input:        input,
		Err:          err,
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Err:          err,
	}
}
