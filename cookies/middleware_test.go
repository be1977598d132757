package cookies_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/go-auth-policy/cookies"
	autherrors "github.com/jrsteele09/go-auth-policy/internal/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	t.Run("writes queued cookies before the body", func(t *testing.T) {
		h := cookies.Middleware(func(w http.ResponseWriter, r *http.Request) {
			jar, err := cookies.FromRequest(r)
			require.NoError(t, err)
			jar.Add(cookies.Build(cookies.AuthTokenName, "tok", time.Minute, false))
			_, _ = w.Write([]byte("ok"))
		})

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		res := rec.Result()
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Len(t, res.Cookies(), 1)
		c := res.Cookies()[0]
		require.Equal(t, cookies.AuthTokenName, c.Name)
		require.Equal(t, "tok", c.Value)
		require.True(t, c.HttpOnly)
		require.True(t, c.Secure)
		require.Equal(t, http.SameSiteStrictMode, c.SameSite)
	})

	t.Run("writes cookies on redirect", func(t *testing.T) {
		h := cookies.Middleware(func(w http.ResponseWriter, r *http.Request) {
			jar, _ := cookies.FromRequest(r)
			cookies.RemoveAll(jar)
			http.Redirect(w, r, "/", http.StatusSeeOther)
		})

		req := httptest.NewRequest(http.MethodGet, "/logout", nil)
		req.AddCookie(&http.Cookie{Name: cookies.OAuthStateName, Value: "s"})
		rec := httptest.NewRecorder()
		h(rec, req)

		res := rec.Result()
		require.Equal(t, http.StatusSeeOther, res.StatusCode)
		require.Len(t, res.Cookies(), 1)
		require.Equal(t, cookies.OAuthStateName, res.Cookies()[0].Name)
		require.Equal(t, 1, res.Cookies()[0].MaxAge)
	})

	t.Run("writes cookies when handler writes nothing", func(t *testing.T) {
		h := cookies.Middleware(func(w http.ResponseWriter, r *http.Request) {
			jar, _ := cookies.FromRequest(r)
			jar.Add(cookies.Build("k", "v", time.Minute, true))
		})

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Len(t, rec.Result().Cookies(), 1)
	})
}

func TestMiddleware_AddAfterWrite(t *testing.T) {
	var logs bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&logs)
	t.Cleanup(func() { log.Logger = prev })

	var added, removed bool
	h := cookies.Middleware(func(w http.ResponseWriter, r *http.Request) {
		jar, err := cookies.FromRequest(r)
		require.NoError(t, err)
		_, _ = w.Write([]byte("body"))
		added = jar.Add(cookies.Build(cookies.AuthTokenName, "late", time.Minute, false))
		removed = cookies.RemoveAll(jar)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookies.RefreshTokenName, Value: "r"})
	rec := httptest.NewRecorder()
	h(rec, req)

	require.False(t, added)
	require.False(t, removed)
	require.Empty(t, rec.Result().Cookies())
	require.Contains(t, logs.String(), `"level":"error"`)
	require.Contains(t, logs.String(), `"cookie":"auth_token"`)
	require.Contains(t, logs.String(), `"cookie":"refresh_token"`)
}

func TestFromRequest_MissingJar(t *testing.T) {
	_, err := cookies.FromRequest(httptest.NewRequest(http.MethodGet, "/", nil))
	require.ErrorIs(t, err, autherrors.ErrInternal)
	require.Equal(t, "internal error: cookie error", err.Error())
}
