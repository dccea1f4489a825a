package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandlers() (*Handlers, *memUserStore) {
	store := newMemUserStore()
	return NewHandlers(NewAuthService(store), testSessions(time.Hour)), store
}

// postForm submits urlencoded form values to a handler.
func postForm(h http.HandlerFunc, path string, values url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h(w, r)
	return w
}

func flashValue(w *httptest.ResponseRecorder) bool {
	for _, c := range w.Result().Cookies() {
		if c.Name == "blog_flash" && c.Value != "" {
			return true
		}
	}
	return false
}

func hasSessionCookie(w *httptest.ResponseRecorder) bool {
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName && c.Value != "" {
			return true
		}
	}
	return false
}

func TestHandleRegisterSuccess(t *testing.T) {
	h, store := newTestHandlers()

	w := postForm(h.HandleRegister(), "/register", url.Values{
		"name":     {"Alice"},
		"email":    {"alice@example.com"},
		"password": {"hunter22"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	// Registration signs the new account in immediately.
	assert.True(t, hasSessionCookie(w))
	assert.Len(t, store.users, 1)
}

func TestHandleRegisterInvalidInputRerenders(t *testing.T) {
	h, store := newTestHandlers()

	w := postForm(h.HandleRegister(), "/register", url.Values{
		"name":     {"Alice"},
		"email":    {"not-an-email"},
		"password": {"hunter22"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	// The form comes back inline with the typed values, minus the password.
	assert.Contains(t, body, `value="Alice"`)
	assert.Contains(t, body, `value="not-an-email"`)
	assert.NotContains(t, body, "hunter22")
	assert.Empty(t, store.users)
}

func TestHandleRegisterDuplicateEmailRedirectsToLogin(t *testing.T) {
	h, _ := newTestHandlers()

	first := postForm(h.HandleRegister(), "/register", url.Values{
		"name": {"Alice"}, "email": {"alice@example.com"}, "password": {"hunter22"},
	})
	require.Equal(t, http.StatusSeeOther, first.Code)

	second := postForm(h.HandleRegister(), "/register", url.Values{
		"name": {"Impostor"}, "email": {"alice@example.com"}, "password": {"other-pass"},
	})

	assert.Equal(t, http.StatusSeeOther, second.Code)
	assert.Equal(t, "/login", second.Header().Get("Location"))
	assert.True(t, flashValue(second))
	assert.False(t, hasSessionCookie(second))
}

func TestHandleLoginSuccess(t *testing.T) {
	h, _ := newTestHandlers()
	postForm(h.HandleRegister(), "/register", url.Values{
		"name": {"Alice"}, "email": {"alice@example.com"}, "password": {"hunter22"},
	})

	w := postForm(h.HandleLogin(), "/login", url.Values{
		"email": {"alice@example.com"}, "password": {"hunter22"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.True(t, hasSessionCookie(w))
}

func TestHandleLoginUnknownAccountRedirectsToRegister(t *testing.T) {
	h, _ := newTestHandlers()

	w := postForm(h.HandleLogin(), "/login", url.Values{
		"email": {"nobody@example.com"}, "password": {"whatever"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/register", w.Header().Get("Location"))
	assert.True(t, flashValue(w))
}

func TestHandleLoginWrongPasswordRedirectsToLogin(t *testing.T) {
	h, _ := newTestHandlers()
	postForm(h.HandleRegister(), "/register", url.Values{
		"name": {"Alice"}, "email": {"alice@example.com"}, "password": {"hunter22"},
	})

	w := postForm(h.HandleLogin(), "/login", url.Values{
		"email": {"alice@example.com"}, "password": {"wrong"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.True(t, flashValue(w))
	assert.False(t, hasSessionCookie(w))
}

func TestHandleLogout(t *testing.T) {
	h, _ := newTestHandlers()

	r := httptest.NewRequest(http.MethodGet, "/logout", nil)
	w := httptest.NewRecorder()
	h.HandleLogout()(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookieName && c.MaxAge == -1 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
