package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fakeaccountrepo "github.com/codequest-dev/codequest-server/accounts/repofake"
	"github.com/codequest-dev/codequest-server/auth"
	"github.com/codequest-dev/codequest-server/internal/config"
	"github.com/codequest-dev/codequest-server/playground"
	"github.com/codequest-dev/codequest-server/server"
	fakeuserrepo "github.com/codequest-dev/codequest-server/users/repofake"
)

const (
	secretStr     = "test-signing-secret"
	testUserID    = "user_1"
	testUserEmail = "a@b.com"
)

type testFixture struct {
	server    *server.Server
	authority *auth.Authority
	repos     server.Repos
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	authority, err := auth.NewAuthority(auth.NewHMACSigner(secretStr))
	require.NoError(t, err)

	repos := server.Repos{
		Accounts: fakeaccountrepo.NewFakeAccountRepo(),
		Users:    fakeuserrepo.NewFakeUserRepo(),
	}

	srv, err := server.New(config.New(), authority, repos, playground.NewRunner(2*time.Second))
	require.NoError(t, err)

	return &testFixture{server: srv, authority: authority, repos: repos}
}

// gateProbe records whether the downstream handler ran and what identity it saw.
type gateProbe struct {
	invoked  bool
	identity *auth.Identity
}

func (f *testFixture) gate(t *testing.T, r *http.Request) (*httptest.ResponseRecorder, *gateProbe) {
	t.Helper()

	probe := &gateProbe{}
	handler := f.server.RequireAuth()(func(w http.ResponseWriter, r *http.Request) {
		probe.invoked = true
		probe.identity = server.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	handler(recorder, r)
	return recorder, probe
}

func TestRequireAuthMissingCredential(t *testing.T) {
	fixture := setupTestFixture(t)

	request := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	recorder, probe := fixture.gate(t, request)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	require.False(t, probe.invoked, "downstream handler must not run without a credential")
	require.JSONEq(t, `{"error":"Missing authorization token"}`, recorder.Body.String())
}

func TestRequireAuthBearerHeader(t *testing.T) {
	fixture := setupTestFixture(t)

	token, err := fixture.authority.CreateToken(testUserID, testUserEmail)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder, probe := fixture.gate(t, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.True(t, probe.invoked)
	require.Equal(t, testUserID, probe.identity.UserID)
	require.Equal(t, testUserEmail, probe.identity.Email)
}

func TestRequireAuthQueryParamFallback(t *testing.T) {
	fixture := setupTestFixture(t)

	token, err := fixture.authority.CreateToken(testUserID, testUserEmail)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "/auth/me?token="+token, nil)
	recorder, probe := fixture.gate(t, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.True(t, probe.invoked)
	require.Equal(t, testUserID, probe.identity.UserID)
}

func TestRequireAuthHeaderTakesPrecedenceOverQuery(t *testing.T) {
	fixture := setupTestFixture(t)

	headerToken, err := fixture.authority.CreateToken("header-user", testUserEmail)
	require.NoError(t, err)
	queryToken, err := fixture.authority.CreateToken("query-user", testUserEmail)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "/auth/me?token="+queryToken, nil)
	request.Header.Set("Authorization", "Bearer "+headerToken)
	recorder, probe := fixture.gate(t, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "header-user", probe.identity.UserID)
}

func TestRequireAuthTamperedToken(t *testing.T) {
	fixture := setupTestFixture(t)

	token, err := fixture.authority.CreateToken(testUserID, testUserEmail)
	require.NoError(t, err)

	last := token[len(token)-1]
	replacement := byte('A')
	if last == replacement {
		replacement = 'B'
	}
	tampered := token[:len(token)-1] + string(replacement)

	request := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	request.Header.Set("Authorization", "Bearer "+tampered)
	recorder, probe := fixture.gate(t, request)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	require.False(t, probe.invoked)
	require.JSONEq(t, `{"error":"Invalid or expired token"}`, recorder.Body.String())
}

func TestRequireAuthExpiredToken(t *testing.T) {
	fixture := setupTestFixture(t)

	eightDaysAgo := time.Now().Add(-8 * 24 * time.Hour)
	issuing, err := auth.NewAuthority(auth.NewHMACSigner(secretStr),
		auth.WithNowTime(func() time.Time { return eightDaysAgo }))
	require.NoError(t, err)

	token, err := issuing.CreateToken(testUserID, testUserEmail)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	recorder, probe := fixture.gate(t, request)

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	require.False(t, probe.invoked)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	fixture := setupTestFixture(t)

	for _, header := range []string{"Bearer", "Basic abc123", "justonetoken"} {
		request := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		request.Header.Set("Authorization", header)
		recorder, probe := fixture.gate(t, request)

		require.Equal(t, http.StatusUnauthorized, recorder.Code, "header %q should be rejected", header)
		require.False(t, probe.invoked)
	}
}
