package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLayoutForAnonymous(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/about", nil)
	w := httptest.NewRecorder()

	Render(w, r, http.StatusOK, "about", &PageData{Title: "About"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Contains(t, body, "<title>About</title>")
	// Anonymous callers see the sign-in links, not the signed-in ones.
	assert.Contains(t, body, `href="/login"`)
	assert.Contains(t, body, `href="/register"`)
	assert.NotContains(t, body, `href="/logout"`)
	assert.NotContains(t, body, `href="/new-post"`)
}

func TestRenderLayoutForAdministrator(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	Render(w, r, http.StatusOK, "about", &PageData{
		Title: "About",
		User:  &Viewer{ID: 1, Name: "Alice", Admin: true},
	})

	body := w.Body.String()
	assert.Contains(t, body, `href="/logout"`)
	assert.Contains(t, body, `href="/new-post"`)
	assert.NotContains(t, body, `href="/login"`)
}

func TestRenderConsumesPendingFlash(t *testing.T) {
	first := httptest.NewRecorder()
	SetFlash(first, "Incorrect password, please try again.")

	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	carryCookies(t, first, r)

	w := httptest.NewRecorder()
	Render(w, r, http.StatusOK, "login", &PageData{Title: "Log In"})

	assert.Contains(t, w.Body.String(), "Incorrect password, please try again.")

	// The same request rendered again has no flash; it was consumed.
	again := httptest.NewRecorder()
	clean := httptest.NewRequest(http.MethodGet, "/login", nil)
	Render(again, clean, http.StatusOK, "login", &PageData{Title: "Log In"})
	assert.NotContains(t, again.Body.String(), "Incorrect password")
}

func TestRenderFormErrorAndValues(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/register", nil)
	w := httptest.NewRecorder()

	Render(w, r, http.StatusBadRequest, "register", &PageData{
		Title:     "Register",
		FormError: "please provide a name",
		Form:      map[string]string{"name": "Bob", "email": "bob@example.com"},
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "please provide a name")
	assert.Contains(t, body, `value="Bob"`)
	assert.Contains(t, body, `value="bob@example.com"`)
}

func TestRenderUnknownPage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	Render(w, r, http.StatusOK, "no-such-page", &PageData{})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestErrorPage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/post/999", nil)
	w := httptest.NewRecorder()

	ErrorPage(w, r, http.StatusNotFound, "That post doesn't exist.", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Not Found")
	assert.Contains(t, body, "That post doesn&#39;t exist.")
}
