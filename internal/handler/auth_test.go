package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie set", SessionCookie)
	return nil
}

func TestSignupAndLogin(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	w := ts.postForm("/signup", url.Values{
		"firstName": {"Ada"},
		"lastName":  {"Lovelace"},
		"email":     {"ada@example.com"},
		"password":  {"correct horse"},
		"redirect":  {"/jobs/3"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/jobs/3", w.Header().Get("Location"))

	cookie := sessionCookie(t, w.Result())
	assert.True(t, cookie.HttpOnly)
	claims, err := ts.h.TokenMaker.VerifyToken(cookie.Value)
	require.NoError(t, err)
	sess, err := ts.h.Sessions.Get(ctx, claims.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", sess.Email())
	assert.Equal(t, "Ada", sess.User.DisplayName())

	user, err := ts.h.Repo.User.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	w = ts.postForm("/signup", url.Values{
		"firstName": {"Ada"},
		"email":     {"ADA@example.com"},
		"password":  {"another pass"},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email already exists", document(t, w).Find(".form-error").Text())

	w = ts.postForm("/login", url.Values{"email": {"ada@example.com"}, "password": {"wrong password"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password.", document(t, w).Find(".form-error").Text())

	w = ts.postForm("/login", url.Values{
		"email":    {"ada@example.com"},
		"password": {"correct horse"},
		"redirect": {"//evil.example/"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	sessionCookie(t, w.Result())
}
