package domain

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

const ErrorSource = "MangaDex"

const (
	StatusNoResponse = -1

	DetailsTransport = "unknown transport error"
	DetailsUnknown   = "Unknown Error"
)

type ErrorKind int

const (
	KindTransport ErrorKind = iota
	KindAPI
	KindAuthRequired
	KindInvalidCredentials
	KindServersUnreachable
	KindOutOfRange
)

// Sentinels for errors.Is; an *Error matches the sentinel of its Kind.
var (
	ErrTransport          = errors.New("no response from server")
	ErrAPI                = errors.New("api error")
	ErrAuthRequired       = errors.New("login required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrServersUnreachable = errors.New("unable to contact authentication servers")
	ErrOutOfRange         = errors.New("out of range")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindTransport:
		return ErrTransport
	case KindAPI:
		return ErrAPI
	case KindAuthRequired:
		return ErrAuthRequired
	case KindInvalidCredentials:
		return ErrInvalidCredentials
	case KindServersUnreachable:
		return ErrServersUnreachable
	case KindOutOfRange:
		return ErrOutOfRange
	}
	return nil
}

func (k ErrorKind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the single error type returned by the client core.
type Error struct {
	Kind    ErrorKind
	Status  int
	Details string
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s (status code: %d)", e.Kind, e.Details, e.Status)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// OutOfRange builds a KindOutOfRange error.
func OutOfRange(format string, args ...any) error {
	return &Error{
		Kind:    KindOutOfRange,
		Status:  StatusNoResponse,
		Details: fmt.Sprintf(format, args...),
	}
}

// StatusOf returns the upstream status carried by err, or StatusNoResponse.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return StatusNoResponse
}

// IsAuthStatus reports whether status is 401 or 403.
func IsAuthStatus(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

// ErrorReport is the payload of the error event surfaced to the UI layer.
type ErrorReport struct {
	Source  string `json:"source"`
	Status  int    `json:"status"`
	Details string `json:"details"`
}

// Report converts any error into the event payload for the UI layer.
func Report(err error) ErrorReport {
	var e *Error
	if errors.As(err, &e) {
		return ErrorReport{Source: ErrorSource, Status: e.Status, Details: e.Details}
	}
	return ErrorReport{Source: ErrorSource, Status: StatusNoResponse, Details: DetailsUnknown}
}
