package errs

import (
	"errors"
	"net/http"
)

var (
	ErrNotImplemented         = errors.New("E0000: not implemented")
	ErrEmailRequired          = errors.New("E0001: email is required")
	ErrPasswordRequired       = errors.New("E0002: password is required")
	ErrInvalidEmailOrPassword = errors.New("E0003: invalid email or password")
	ErrDatabase               = errors.New("E0004: database error")
	ErrCryptographic          = errors.New("E0005: cryptographic failure")
	ErrJWT                    = errors.New("E0006: JWT failure")
	ErrNameRequired           = errors.New("E0007: name is required")
	ErrEmailAddressFormat     = errors.New("E0008: email address format incorrect")
	ErrAlreadyExists          = errors.New("E0009: already exists")
	ErrTokenExpired           = errors.New("E0010: token expired")
	ErrUnauthorized           = errors.New("E0011: unauthorized")
	ErrNotFound               = errors.New("E0012: not found")
	ErrInvalidID              = errors.New("E0013: invalid ID")
	ErrNotAdmin               = errors.New("E0014: not admin")
	ErrMail                   = errors.New("E0015: error sending email")
	ErrQueue                  = errors.New("E0016: queue error")
	ErrTitleRequired          = errors.New("E0017: title is required")
	ErrTeamIDRequired         = errors.New("E0018: team ID is required")
	ErrProjectIDRequired      = errors.New("E0019: project ID is required")
	ErrBoardIDRequired        = errors.New("E0020: board ID is required")
	ErrInvalidPriority        = errors.New("E0021: invalid priority")
	ErrInvalidStatus          = errors.New("E0022: invalid status")
	ErrDuplicateColumn        = errors.New("E0023: duplicate column ID")
	ErrUnknownField           = errors.New("E0024: unknown field in update")
	ErrInviteResolved         = errors.New("E0025: invite already resolved")
	ErrMalformedJSON          = errors.New("E0026: malformed JSON body")
)

// Status maps a backend error to the HTTP status code the REST surface
// answers with. Unknown errors are treated as internal failures.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrEmailRequired),
		errors.Is(err, ErrPasswordRequired),
		errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrEmailAddressFormat),
		errors.Is(err, ErrTitleRequired),
		errors.Is(err, ErrTeamIDRequired),
		errors.Is(err, ErrProjectIDRequired),
		errors.Is(err, ErrBoardIDRequired),
		errors.Is(err, ErrInvalidPriority),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrDuplicateColumn),
		errors.Is(err, ErrUnknownField),
		errors.Is(err, ErrMalformedJSON),
		errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidEmailOrPassword),
		errors.Is(err, ErrJWT),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotAdmin):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrInviteResolved):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
