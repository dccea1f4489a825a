package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// carryCookies copies the cookies set on a response onto a fresh request, the
// way a browser would between two page loads.
func carryCookies(t *testing.T, from *httptest.ResponseRecorder, to *http.Request) {
	t.Helper()
	for _, c := range from.Result().Cookies() {
		if c.MaxAge >= 0 {
			to.AddCookie(c)
		}
	}
}

func TestFlashRoundTrip(t *testing.T) {
	first := httptest.NewRecorder()
	SetFlash(first, "Please sign in to view content.")

	next := httptest.NewRequest(http.MethodGet, "/login", nil)
	carryCookies(t, first, next)

	second := httptest.NewRecorder()
	assert.Equal(t, "Please sign in to view content.", TakeFlash(second, next))

	// Taking the flash expires its cookie so the notice shows exactly once.
	cookies := second.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, flashCookieName, cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestTakeFlashWithoutCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	assert.Empty(t, TakeFlash(w, r))
	assert.Empty(t, w.Result().Cookies())
}

func TestTakeFlashMangledCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: flashCookieName, Value: "%%%not-base64%%%"})
	w := httptest.NewRecorder()

	assert.Empty(t, TakeFlash(w, r))

	// The mangled cookie is still expired.
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestFlashSurvivesArbitraryText(t *testing.T) {
	message := "Account not found; please register = now?"

	w := httptest.NewRecorder()
	SetFlash(w, message)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	carryCookies(t, w, r)

	assert.Equal(t, message, TakeFlash(httptest.NewRecorder(), r))
}
