package errors

import (
	"net/http"
	"testing"

	"identity/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestBaseError_IsMatchesDetailedCopy(t *testing.T) {
	detailed := ErrRoleNotFound.WithDetails("role 42")

	assert.True(t, errors.Is(detailed, ErrRoleNotFound))
	assert.False(t, errors.Is(detailed, ErrUserNotFound))
	assert.Equal(t, "Role not found: role 42", detailed.Error())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "plain", err: ErrTokenRevoked, want: KindTokenRevoked},
		{name: "wrapped", err: errors.Wrap(ErrPermissionInUse, "delete permission"), want: KindPolicyViolation},
		{name: "wrapped message", err: ErrUserAlreadyExists.WrapMessage("register"), want: KindAlreadyExists},
		{name: "database", err: NewDatabaseExecuteError(errors.New("boom"), "insert"), want: KindInternal},
		{name: "foreign", err: errors.New("unclassified"), want: KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestHTTPCodes(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ErrUserNotFound.HTTPCode())
	assert.Equal(t, http.StatusConflict, ErrUserAlreadyExists.HTTPCode())
	assert.Equal(t, http.StatusConflict, ErrProtectedRole.HTTPCode())
	assert.Equal(t, http.StatusUnauthorized, ErrTokenExpired.HTTPCode())
	assert.Equal(t, http.StatusInternalServerError, ErrDefaultRoleMissing.HTTPCode())
}

func TestDatabaseExecuteError_Unwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "select")

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", err.ErrorCode())
}
