// Package web contains the thin rendering glue shared by all handlers: page
// templates, the render helper, and the one-shot flash notice. It deliberately
// knows nothing about the rest of the application; handlers hand it plain
// view data.
package web

import (
	"encoding/base64"
	"net/http"
)

// flashCookieName is the cookie carrying the one-shot notice. The session
// token itself is stateless, so the flash lives in its own short-lived cookie:
// set on one response, read and discarded on the next render.
const flashCookieName = "blog_flash"

// SetFlash stores a one-shot notice to be shown on the next rendered page.
// The message is base64-encoded so arbitrary text survives the cookie value
// character restrictions.
func SetFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.URLEncoding.EncodeToString([]byte(message)),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// TakeFlash returns the pending flash notice, if any, and expires its cookie
// so the notice is shown exactly once. A cookie that fails to decode is
// treated as absent.
func TakeFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return ""
	}

	// Expire the cookie regardless of whether the value decodes; a mangled
	// flash should not stick around either.
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(decoded)
}
