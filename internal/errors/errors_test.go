package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
		wantCode   string
	}{
		{"empty field", EmptyField("email"), http.StatusBadRequest, "`Email` field provided was empty.", "VALIDATION_ERROR"},
		{"invalid email", InvalidFormat("email"), http.StatusBadRequest, "`Email` field provided was invalid.", "VALIDATION_ERROR"},
		{"empty password keeps key", EmptyField("plaintextPassword"), http.StatusBadRequest, "`plaintextPassword` field provided was empty.", "VALIDATION_ERROR"},
		{"not a date", fmt.Errorf("create: %w", NotADate("startDate")), http.StatusBadRequest, "The field `startDate` was not a date.", "VALIDATION_ERROR"},
		{"missing dates", ErrMissingDates, http.StatusBadRequest, MsgMissingDates, "VALIDATION_ERROR"},
		{"bad range keeps client message", fmt.Errorf("update: %w", ErrInvalidRange), http.StatusBadRequest, "Check dates.", "INVALID_RANGE"},
		{"generic client error", fmt.Errorf("%w: duplicate email", ErrSomethingWentWrong), http.StatusBadRequest, "Something went wrong.", "BAD_REQUEST"},
		{"no signing secret", ErrSigningSecretMissing, http.StatusBadRequest, MsgSigningSecretAbsent, "CONFIGURATION_ERROR"},
		{"not authorized", fmt.Errorf("%w: expired", ErrNotAuthorized), http.StatusUnauthorized, "Not authorized.", "NOT_AUTHORIZED"},
		{"not owner", &OwnershipError{Resource: "Event", ID: "abc", Action: "deleted"}, http.StatusUnauthorized, "Event id abc could not be deleted.", "FORBIDDEN_OWNER"},
		{"not found", &NotFoundError{Resource: "Event", ID: "abc"}, http.StatusNotFound, "Event id abc not found.", "NOT_FOUND"},
		{"unexpected", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "Something went wrong.", "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
			assert.Equal(t, tt.wantMsg, got.Message)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, ErrorResponse{Message: tt.wantMsg, Code: tt.wantCode}, got.ToErrorResponse())
		})
	}
}
