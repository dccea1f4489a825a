package web

import (
	"bytes"
	"log"
	"net/http"
	"time"
)

// Viewer is the signed-in identity as the templates see it. Handlers build it
// from the resolved user; the zero value of the pointer (nil) means anonymous.
type Viewer struct {
	ID    int
	Name  string
	Admin bool
}

// PageData is the view model every template renders against. Page-specific
// payloads (post lists, a single post with its comments, form headings) ride
// in Data; the surrounding fields feed the shared layout.
type PageData struct {
	Title     string
	Year      int
	User      *Viewer
	Flash     string
	FormError string
	Form      map[string]string
	Data      any
}

// Render writes the named page with the given data and status code. The page
// is executed into a buffer first so a template failure can still produce a
// clean 500 instead of a half-written response. Any pending flash notice is
// consumed here unless the handler already supplied one.
func Render(w http.ResponseWriter, r *http.Request, status int, page string, data *PageData) {
	if data == nil {
		data = &PageData{}
	}
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	if data.Flash == "" {
		data.Flash = TakeFlash(w, r)
	}
	if data.Form == nil {
		data.Form = map[string]string{}
	}

	t, ok := pages[page]
	if !ok {
		log.Printf("render: unknown page %q", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	buf := new(bytes.Buffer)
	if err := t.ExecuteTemplate(buf, "layout", data); err != nil {
		log.Printf("render: executing page %q: %v", page, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// ErrorPage renders a minimal error page through the shared layout. Used for
// request-scoped failures that have no better home, like an unknown post id.
func ErrorPage(w http.ResponseWriter, r *http.Request, status int, detail string, user *Viewer) {
	Render(w, r, status, "error", &PageData{
		Title: http.StatusText(status),
		User:  user,
		Data: struct {
			Heading string
			Detail  string
		}{http.StatusText(status), detail},
	})
}
