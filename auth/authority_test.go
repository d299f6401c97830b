package auth_test

import (
	"testing"
	"time"

	"github.com/codequest-dev/codequest-server/auth"
	"github.com/stretchr/testify/require"
)

const (
	secretStr     = "test-signing-secret"
	testUserID    = "user_1"
	testUserEmail = "a@b.com"
)

func newTestAuthority(t *testing.T, options ...auth.AuthorityOption) *auth.Authority {
	t.Helper()

	authority, err := auth.NewAuthority(auth.NewHMACSigner(secretStr), options...)
	require.NoError(t, err)
	return authority
}

func TestNewAuthorityRequiresSigner(t *testing.T) {
	_, err := auth.NewAuthority(nil)
	require.Error(t, err)
}

func TestCreateAndVerifyToken(t *testing.T) {
	authority := newTestAuthority(t)

	token, err := authority.CreateToken(testUserID, testUserEmail)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := authority.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, testUserID, identity.UserID)
	require.Equal(t, testUserEmail, identity.Email)
}

func TestCreateTokenEmptySubject(t *testing.T) {
	authority := newTestAuthority(t)

	_, err := authority.CreateToken("", testUserEmail)
	require.Error(t, err)
}

func TestVerifyTokenExpired(t *testing.T) {
	eightDaysAgo := time.Now().Add(-8 * 24 * time.Hour)
	issuing := newTestAuthority(t, auth.WithNowTime(func() time.Time { return eightDaysAgo }))

	token, err := issuing.CreateToken(testUserID, testUserEmail)
	require.NoError(t, err)

	verifying := newTestAuthority(t)
	_, err = verifying.VerifyToken(token)
	require.ErrorIs(t, err, auth.InvalidTokenErr)
}

func TestVerifyTokenExpiryCheckedAgainstAuthorityClock(t *testing.T) {
	issuing := newTestAuthority(t)
	token, err := issuing.CreateToken(testUserID, testUserEmail)
	require.NoError(t, err)

	// The signature and library-level checks pass, but the authority's own
	// clock says the token is past its seven day lifetime.
	eightDaysOut := time.Now().Add(8 * 24 * time.Hour)
	verifying := newTestAuthority(t, auth.WithNowTime(func() time.Time { return eightDaysOut }))

	_, err = verifying.VerifyToken(token)
	require.ErrorIs(t, err, auth.InvalidTokenErr)
}

func TestVerifyTokenTampered(t *testing.T) {
	authority := newTestAuthority(t)

	token, err := authority.CreateToken(testUserID, testUserEmail)
	require.NoError(t, err)

	// Flip the final character of the signature segment.
	last := token[len(token)-1]
	replacement := byte('A')
	if last == replacement {
		replacement = 'B'
	}
	tampered := token[:len(token)-1] + string(replacement)

	_, err = authority.VerifyToken(tampered)
	require.ErrorIs(t, err, auth.InvalidTokenErr)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	authority := newTestAuthority(t)

	token, err := authority.CreateToken(testUserID, testUserEmail)
	require.NoError(t, err)

	other, err := auth.NewAuthority(auth.NewHMACSigner("a-different-secret"))
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	require.ErrorIs(t, err, auth.InvalidTokenErr)
}

func TestVerifyTokenMissing(t *testing.T) {
	authority := newTestAuthority(t)

	for _, raw := range []string{"", "   "} {
		_, err := authority.VerifyToken(raw)
		require.ErrorIs(t, err, auth.MissingTokenErr)
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	authority := newTestAuthority(t)

	for _, raw := range []string{"not-a-jwt", "a.b.c", "eyJhbGciOiJIUzI1NiJ9..sig"} {
		_, err := authority.VerifyToken(raw)
		require.ErrorIs(t, err, auth.InvalidTokenErr)
	}
}
