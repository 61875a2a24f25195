package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Messages shown to API clients.
const (
	MsgNotAuthorized       = "Not authorized."
	MsgSomethingWentWrong  = "Something went wrong."
	MsgCheckDates          = "Check dates."
	MsgMissingDates        = "The field `startDate` or `finishDate` was absent."
	MsgSigningSecretAbsent = "Server is missing its signing secret."
)

var (
	// ErrNotAuthorized is returned when a request carries no usable identity.
	ErrNotAuthorized = errors.New(MsgNotAuthorized)
	// ErrSomethingWentWrong is the catch-all client error (bad credentials, duplicate signup, bad query).
	ErrSomethingWentWrong = errors.New(MsgSomethingWentWrong)
	// ErrInvalidRange is returned when startDate is not strictly before finishDate.
	ErrInvalidRange = errors.New(MsgCheckDates)
	// ErrMissingDates is returned when startDate or finishDate is absent.
	ErrMissingDates = errors.New(MsgMissingDates)
	// ErrSigningSecretMissing is returned when no token signing secret is configured.
	ErrSigningSecretMissing = errors.New("signing secret is not configured")
)

// Reason describes why a single input field was rejected.
type Reason string

const (
	ReasonEmpty    Reason = "empty"
	ReasonInvalid  Reason = "invalid"
	ReasonNotADate Reason = "not_a_date"
)

// FieldError reports a malformed or missing request field.
type FieldError struct {
	Field  string
	Reason Reason
}

// EmptyField builds a FieldError for an absent field.
func EmptyField(field string) *FieldError {
	return &FieldError{Field: field, Reason: ReasonEmpty}
}

// InvalidFormat builds a FieldError for a field with the wrong shape.
func InvalidFormat(field string) *FieldError {
	return &FieldError{Field: field, Reason: ReasonInvalid}
}

// NotADate builds a FieldError for a field that does not parse as a date.
func NotADate(field string) *FieldError {
	return &FieldError{Field: field, Reason: ReasonNotADate}
}

// displayNames maps request keys to the names shown in empty and invalid messages.
var displayNames = map[string]string{
	"email": "Email",
	"name":  "Name",
}

func displayName(field string) string {
	if name, ok := displayNames[field]; ok {
		return name
	}
	return field
}

func (e *FieldError) Error() string {
	switch e.Reason {
	case ReasonEmpty:
		return fmt.Sprintf("`%s` field provided was empty.", displayName(e.Field))
	case ReasonNotADate:
		return fmt.Sprintf("The field `%s` was not a date.", e.Field)
	default:
		return fmt.Sprintf("`%s` field provided was invalid.", displayName(e.Field))
	}
}

// NotFoundError is returned when a resource looked up by id does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s id %s not found.", e.Resource, e.ID)
}

// OwnershipError is returned when an authenticated user tries to change a
// resource owned by someone else.
type OwnershipError struct {
	Resource string
	ID       string
	Action   string
}

func (e *OwnershipError) Error() string {
	return fmt.Sprintf("%s id %s could not be %s.", e.Resource, e.ID, e.Action)
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var (
		fieldErr     *FieldError
		notFoundErr  *NotFoundError
		ownershipErr *OwnershipError
	)

	switch {
	case errors.As(err, &fieldErr):
		return NewHTTPError(http.StatusBadRequest, fieldErr.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrMissingDates):
		return NewHTTPError(http.StatusBadRequest, MsgMissingDates, "VALIDATION_ERROR")
	case errors.Is(err, ErrInvalidRange):
		return NewHTTPError(http.StatusBadRequest, MsgCheckDates, "INVALID_RANGE")
	case errors.Is(err, ErrSomethingWentWrong):
		return NewHTTPError(http.StatusBadRequest, MsgSomethingWentWrong, "BAD_REQUEST")
	case errors.Is(err, ErrSigningSecretMissing):
		return NewHTTPError(http.StatusBadRequest, MsgSigningSecretAbsent, "CONFIGURATION_ERROR")
	case errors.Is(err, ErrNotAuthorized):
		return NewHTTPError(http.StatusUnauthorized, MsgNotAuthorized, "NOT_AUTHORIZED")
	case errors.As(err, &ownershipErr):
		return NewHTTPError(http.StatusUnauthorized, ownershipErr.Error(), "FORBIDDEN_OWNER")
	case errors.As(err, &notFoundErr):
		return NewHTTPError(http.StatusNotFound, notFoundErr.Error(), "NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, MsgSomethingWentWrong, "INTERNAL_ERROR")
	}
}
