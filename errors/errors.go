package errors

import (
	goerrors "errors"
	"fmt"
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Kind classifies an Error independently of its HTTP status.
type Kind string

const (
	KindUnauthorized    Kind = "unauthorized"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindValidation      Kind = "validation"
	KindDuplicateKey    Kind = "duplicate_key"
	KindInvalidArgument Kind = "invalid_argument"
	KindInternal        Kind = "internal"
	KindTooManyRequests Kind = "too_many_requests"
)

type Error struct {
	Message string `json:"error"`
	Status  int    `json:"-"`
	Kind    Kind   `json:"-"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(message string, status int) *Error {
	return &Error{Message: message, Status: status, Kind: kindForStatus(status)}
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindDuplicateKey
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusTooManyRequests:
		return KindTooManyRequests
	default:
		return KindInternal
	}
}

var (
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrForbidden           = New("forbidden", http.StatusForbidden)
	ErrNotFound            = New("not found", http.StatusNotFound)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrInvalidPassword     = New("invalid email or password", http.StatusUnauthorized)
	ErrInactiveUser        = New("user is inactive", http.StatusUnauthorized)
)

func NotFound(entity string) *Error {
	return New(fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func Validation(message string) *Error {
	return New(message, http.StatusBadRequest)
}

// DuplicateKey is a validation failure caused by a uniqueness violation.
func DuplicateKey(message string) *Error {
	return &Error{Message: message, Status: http.StatusConflict, Kind: KindDuplicateKey}
}

func InvalidArgument(message string) *Error {
	return &Error{Message: message, Status: http.StatusBadRequest, Kind: KindInvalidArgument}
}

func Internal(message string) *Error {
	return New(message, http.StatusInternalServerError)
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if goerrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}

// FromStore maps a repository error onto the taxonomy. entity names the
// missing or conflicting resource in the message.
func FromStore(err error, entity string) *Error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		return e
	}
	switch {
	case goerrors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(entity)
	case goerrors.Is(err, gorm.ErrDuplicatedKey):
		return DuplicateKey(fmt.Sprintf("%s already exists", entity))
	default:
		return ErrInternalServerError
	}
}

func GetUniqueContraintError(err error) *Error {
	if e, ok := As(err); ok {
		return e
	}
	return DuplicateKey(err.Error())
}

func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"error": "too many requests, try again in " + time.Until(info.ResetTime).Round(time.Second).String(),
	})
}
