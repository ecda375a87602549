package errs

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation      Kind = "validation"
	KindMediaConstraint Kind = "media_constraint"
	KindServerRejection Kind = "server_rejection"
	KindTransport       Kind = "transport"
	KindLoadFailure     Kind = "load_failure"
)

// Error is a console error whose Message is safe to show in the dashboard banner.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func MediaConstraint(msg string) *Error {
	return &Error{Kind: KindMediaConstraint, Message: msg}
}

func ServerRejection(msg string) *Error {
	return &Error{Kind: KindServerRejection, Message: msg}
}

func Transport(msg string, err error) *Error {
	return &Error{Kind: KindTransport, Message: msg, Err: err}
}

func LoadFailure(err error) *Error {
	return &Error{Kind: KindLoadFailure, Message: "Failed to load dashboard data", Err: err}
}

// IsKind reports whether err carries a console Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusUnauthorized   = http.StatusUnauthorized
	ErrStatusNoPermission   = http.StatusForbidden
	ErrStatusNotFound       = http.StatusNotFound
	ErrStatusConflict       = http.StatusConflict
	ErrStatusUnprocessable  = http.StatusUnprocessableEntity
	ErrStatusBadGateway     = http.StatusBadGateway
	ErrStatusUnavailable    = http.StatusServiceUnavailable
)

var (
	ErrInternalServer  = errors.New("Internal server error")
	ErrClient          = errors.New("Bad request")
	ErrNotFound        = errors.New("Resource not found")
	ErrSessionClosed   = errors.New("Session has been closed")
	ErrSessionExpired  = errors.New("Session token has expired")
	ErrNotAdmin        = errors.New("Admin access required")
	ErrMissingToken    = errors.New("Session token is missing")
	ErrNoDraft         = errors.New("No product is being authored")
	ErrDraftInProgress = errors.New("A product is already being authored")
	ErrSubmitting      = errors.New("The product is being submitted")
	ErrNotLoaded       = errors.New("Dashboard data has not been loaded")
)

var errorMap = map[error]int{
	ErrInternalServer:  ErrStatusInternalServer,
	ErrClient:          ErrStatusClient,
	ErrNotFound:        ErrStatusNotFound,
	ErrSessionClosed:   ErrStatusUnauthorized,
	ErrSessionExpired:  ErrStatusUnauthorized,
	ErrNotAdmin:        ErrStatusNoPermission,
	ErrMissingToken:    ErrStatusUnauthorized,
	ErrNoDraft:         ErrStatusNotFound,
	ErrDraftInProgress: ErrStatusConflict,
	ErrSubmitting:      ErrStatusConflict,
	ErrNotLoaded:       ErrStatusUnavailable,
}

var kindMap = map[Kind]int{
	KindValidation:      ErrStatusClient,
	KindMediaConstraint: ErrStatusUnprocessable,
	KindServerRejection: ErrStatusConflict,
	KindTransport:       ErrStatusBadGateway,
	KindLoadFailure:     ErrStatusBadGateway,
}

func GetErrorStatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		if code, ok := kindMap[e.Kind]; ok {
			return code
		}
	}
	for sentinel, code := range errorMap {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return errorMap[ErrInternalServer]
}

// PublicMessage returns the single banner message for err.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	for sentinel := range errorMap {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return ErrInternalServer.Error()
}

// KindOf returns the Kind carried by err, or "" for sentinel and foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
