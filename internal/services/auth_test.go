package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_RegisterAndLogin(t *testing.T) {
	ts := NewTestSetup(t)

	user, err := ts.AuthService.Register(ts.ctx, " alice@example.com ", "s3cret", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	loggedIn, err := ts.AuthService.Login(ts.ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestAuth_LoginFailsUniformly(t *testing.T) {
	ts := NewTestSetup(t)
	ts.createUser("alice")

	_, wrongPassword := ts.AuthService.Login(ts.ctx, "alice@example.com", "nope")
	_, unknownUser := ts.AuthService.Login(ts.ctx, "bob@example.com", "nope")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAuth_LoginIsCaseSensitive(t *testing.T) {
	ts := NewTestSetup(t)
	ts.createUser("alice")

	_, err := ts.AuthService.Login(ts.ctx, "ALICE@example.com", "password-alice")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuth_RegisterDuplicateEmail(t *testing.T) {
	ts := NewTestSetup(t)
	ts.createUser("alice")

	_, err := ts.AuthService.Register(ts.ctx, "alice@example.com", "other", "Other Alice")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	count, err := ts.UserRepo.Count(ts.ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAuth_RegisterValidation(t *testing.T) {
	ts := NewTestSetup(t)

	_, err := ts.AuthService.Register(ts.ctx, "not-an-email", "", "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "password")
	assert.Contains(t, verr.Fields, "name")

	count, err := ts.UserRepo.Count(ts.ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAuth_Guest(t *testing.T) {
	ts := NewTestSetup(t)

	_, err := ts.AuthService.LoginAsGuest(ts.ctx)
	assert.ErrorIs(t, err, ErrGuestNotProvisioned)

	admin := ts.createUser("admin")
	guest := ts.createGuest()

	loggedIn, err := ts.AuthService.LoginAsGuest(ts.ctx)
	require.NoError(t, err)
	assert.Equal(t, guest.ID, loggedIn.ID)
	assert.True(t, ts.AuthService.IsGuest(loggedIn))
	assert.False(t, ts.AuthService.IsGuest(admin))
	assert.False(t, ts.AuthService.IsGuest(nil))
}

func TestAuth_CurrentUser(t *testing.T) {
	ts := NewTestSetup(t)
	user := ts.createUser("alice")

	found, err := ts.AuthService.CurrentUser(ts.ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	_, err = ts.AuthService.CurrentUser(ts.ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
