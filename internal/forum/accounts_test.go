package forum

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/discuss/backend/internal/apperr"
)

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	f := newTestForum(t)
	ctx := context.Background()

	resp, err := f.accounts.Register(ctx, "avery", "Avery@Example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "avery", resp.User.Username)
	assert.Equal(t, "avery@example.com", resp.User.Email)
	assert.NotEqual(t, "password123", resp.User.PasswordHash)

	id, err := f.accounts.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, id.UserID)
	assert.Equal(t, "avery", id.Username)
}

func TestRegisterDuplicateUsernameConflicts(t *testing.T) {
	f := newTestForum(t)
	ctx := context.Background()
	f.user(t, "avery")

	_, err := f.accounts.Register(ctx, "avery", "other@example.com", "password123")
	require.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, "username_taken", apperr.From(err).Code)
	assert.Equal(t, "1", f.store.Health()["users"])

	_, err = f.accounts.Register(ctx, "other", "avery@example.com", "password123")
	require.ErrorIs(t, err, apperr.ErrConflict)
	assert.Equal(t, "email_taken", apperr.From(err).Code)
}

func TestRegisterValidation(t *testing.T) {
	f := newTestForum(t)
	ctx := context.Background()

	tests := []struct {
		name, username, email, password, code string
	}{
		{"missing username", "", "a@example.com", "password123", "username_required"},
		{"short username", "ab", "a@example.com", "password123", "invalid_username"},
		{"bad username chars", "a b c", "a@example.com", "password123", "invalid_username"},
		{"bad email", "avery", "not-an-email", "password123", "invalid_email"},
		{"short password", "avery", "a@example.com", "12345", "invalid_password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.accounts.Register(ctx, tt.username, tt.email, tt.password)
			require.ErrorIs(t, err, apperr.ErrValidation)
			assert.Equal(t, tt.code, apperr.From(err).Code)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	f := newTestForum(t)
	ctx := context.Background()
	f.user(t, "avery")

	resp, err := f.accounts.Authenticate(ctx, "avery", "password123")
	require.NoError(t, err)
	assert.Equal(t, "avery", resp.User.Username)
	assert.NotEmpty(t, resp.Token)

	_, err = f.accounts.Authenticate(ctx, "nobody", "password123")
	require.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, http.StatusBadRequest, apperr.From(err).Status)

	_, err = f.accounts.Authenticate(ctx, "avery", "wrong-password")
	require.ErrorIs(t, err, apperr.ErrInvalidCredential)
}

func TestVerifyTokenClassifiesFailures(t *testing.T) {
	f := newTestForum(t)

	_, err := f.accounts.VerifyToken("")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = f.accounts.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestMe(t *testing.T) {
	f := newTestForum(t)
	id := f.user(t, "avery")

	user, err := f.accounts.Me(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "avery@example.com", user.Email)
}
