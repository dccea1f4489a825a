package auth

// This file defines the identity middleware and the two access-policy guards.
// Identity runs on every route and resolves the session cookie to a user;
// the guards sit in front of the routes that need them and either pass the
// request through or reject it. RequireSignedIn is the friendly rejection
// (flash plus redirect to the login flow); RequireAdministrator is the hard
// one (403, whether the caller is anonymous or merely not the administrator).

import (
	"log"
	"net/http"

	"github.com/user/chickenblog-go/apperror"
	"github.com/user/chickenblog-go/web"
)

// Identity returns middleware that resolves the session cookie into a *User
// in the request context. Resolution failures of any kind leave the request
// anonymous rather than failing it; pages that tolerate anonymous callers
// keep working with a broken or expired cookie.
//
// The user is re-fetched from the store on every request. The token only
// names an identifier; the account state always comes from storage.
func Identity(sessions *Sessions, store UserStore) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := sessions.UserID(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := store.GetUserByID(r.Context(), userID)
			if err != nil {
				// A validly signed token for a missing row should not happen
				// (users are never deleted), but if it does the caller is
				// anonymous, not broken.
				if !apperror.IsNotFound(err) {
					log.Printf("auth: resolving session user %d: %v", userID, err)
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContextWithUser(r.Context(), user)))
		})
	}
}

// RequireSignedIn is a guard for routes that need any signed-in user. An
// anonymous caller is flashed "please sign in" and redirected to the login
// flow; the request never reaches the handler.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			web.SetFlash(w, "Please sign in to view content.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdministrator is a guard for the post-authoring routes. Anyone who
// is not the administrator receives a bare 403: no redirect, no notice, and
// deliberately no distinction between "not signed in" and "signed in but not
// admin".
func RequireAdministrator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())
		if !IsAdministrator(user) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ViewerOf converts a resolved user into the view-model identity the
// templates consume. Returns nil for an anonymous caller.
func ViewerOf(u *User) *web.Viewer {
	if u == nil {
		return nil
	}
	return &web.Viewer{ID: u.ID, Name: u.Name, Admin: IsAdministrator(u)}
}

// ViewerFromContext is ViewerOf applied to the request context.
func ViewerFromContext(r *http.Request) *web.Viewer {
	user, _ := UserFromContext(r.Context())
	return ViewerOf(user)
}
