package workouts

import (
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/danmlarsen/workout-tracker-backend/pkg"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrBadRequest = errors.New("bad request")
	ErrInternal   = errors.New("internal error")
)

func kindError(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

func isKind(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrBadRequest) ||
		errors.Is(err, ErrInternal)
}

// Classify maps err onto one of the error kinds. Unknown failures are logged
// with the operation and its identifiers, and replaced by an opaque ErrInternal.
func Classify(op string, fields log.Fields, err error) error {
	if err == nil || isKind(err) {
		return err
	}

	switch {
	case pkg.IsUniqueViolationError(err):
		return kindError(ErrConflict, "%s: constraint violated", op)
	case pkg.IsForeignKeyViolationError(err):
		return kindError(ErrNotFound, "%s: referenced entity missing", op)
	case pkg.IsCheckViolationError(err):
		return kindError(ErrBadRequest, "%s: invalid value", op)
	}

	log.WithFields(fields).WithField("op", op).Errorf("%s failed: %s", op, err)
	return ErrInternal
}

// HTTPStatus maps an error kind onto a response status.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage is the client facing message. Internal details never leave.
func ErrorMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
