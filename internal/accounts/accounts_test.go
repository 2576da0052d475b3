package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardianhealth/medmaintain/internal/store"
)

func TestLogin_DefaultAdmin(t *testing.T) {
	svc := NewService(store.New())

	session, err := svc.Login("admin", "123")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "admin", session.User.Username)
	// the session must never echo the password back
	assert.Empty(t, session.User.Password)

	got, ok := svc.Validate(session.Token)
	require.True(t, ok)
	assert.Equal(t, session.Token, got.Token)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := NewService(store.New())

	_, err := svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("ghost", "123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_ThenLogin(t *testing.T) {
	svc := NewService(store.New())

	require.NoError(t, svc.Register("Amanda Costa", "amanda", "s3cret"))

	session, err := svc.Login("amanda", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "Amanda Costa", session.User.Name)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := NewService(store.New())

	err := svc.Register("Someone", "admin", "pw")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLogoutAndRevoke(t *testing.T) {
	svc := NewService(store.New())

	session, err := svc.Login("admin", "123")
	require.NoError(t, err)

	svc.Logout(session.Token)
	_, ok := svc.Validate(session.Token)
	assert.False(t, ok)

	// unknown token logout is a no-op
	svc.Logout("nope")

	s1, _ := svc.Login("admin", "123")
	s2, _ := svc.Login("admin", "123")
	svc.Revoke()
	_, ok = svc.Validate(s1.Token)
	assert.False(t, ok)
	_, ok = svc.Validate(s2.Token)
	assert.False(t, ok)
}
