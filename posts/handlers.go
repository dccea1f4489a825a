package posts

// HTTP handlers for the content pages. Access control happens before these
// run: the post page group carries the signed-in guard and the authoring
// routes carry the administrator guard, so handlers here can assume the
// identity the route requires is present in the context.

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/chickenblog-go/apperror"
	"github.com/user/chickenblog-go/auth"
	"github.com/user/chickenblog-go/web"
)

// Handlers wraps the PostService to provide HTTP handlers.
type Handlers struct {
	service *PostService
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *PostService) *Handlers {
	return &Handlers{service: service}
}

// postView is the template-facing shape of a post. Body is marked safe HTML
// because post bodies are rich text authored only by the administrator.
type postView struct {
	ID       int
	Title    string
	Subtitle string
	Date     string
	Body     template.HTML
	ImageURL string
	CanEdit  bool
}

// postPageData is the payload of the post page template.
type postPageData struct {
	Post     postView
	Comments []Comment
}

// HandleHome renders the front page: every post, in creation order.
func (h *Handlers) HandleHome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := h.service.ListPosts(r.Context())
		if err != nil {
			web.ErrorPage(w, r, statusOf(err), "Could not load posts.", auth.ViewerFromContext(r))
			return
		}
		web.Render(w, r, http.StatusOK, "home", &web.PageData{
			Title: "Chicken Blog",
			User:  auth.ViewerFromContext(r),
			Data:  struct{ Posts []Post }{all},
		})
	}
}

// HandleShowPost renders a single post with its comments and the comment
// form. Unknown identifiers produce a 404 page.
func (h *Handlers) HandleShowPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderPost(w, r, http.StatusOK, "", "")
	}
}

// HandleAddComment processes a comment submission on a post's page. The
// route is guarded, so a signed-in user is guaranteed; an empty comment
// re-renders the page with an inline message and no state change.
func (h *Handlers) HandleAddComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			// The guard should make this unreachable; reject hard if not.
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		id, err := postID(r)
		if err != nil {
			web.ErrorPage(w, r, http.StatusNotFound, "That post doesn't exist.", auth.ViewerOf(user))
			return
		}

		form := CommentForm{Text: r.FormValue("text")}
		if err := form.Validate(); err != nil {
			appErr, _ := apperror.FromError(err)
			h.renderPost(w, r, appErr.StatusCode(), appErr.Message, form.Text)
			return
		}

		if _, err := h.service.AddComment(r.Context(), id, user, form); err != nil {
			if apperror.IsNotFound(err) {
				web.ErrorPage(w, r, http.StatusNotFound, "That post doesn't exist.", auth.ViewerOf(user))
				return
			}
			web.ErrorPage(w, r, statusOf(err), "Could not save your comment.", auth.ViewerOf(user))
			return
		}

		http.Redirect(w, r, "/post/"+strconv.Itoa(id), http.StatusSeeOther)
	}
}

// HandleNewPostForm renders the empty authoring form.
func (h *Handlers) HandleNewPostForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		web.Render(w, r, http.StatusOK, "makepost", &web.PageData{
			Title: "New Post",
			User:  auth.ViewerFromContext(r),
			Data:  makePostData("New Post", "/new-post"),
		})
	}
}

// HandleCreatePost processes the new-post form. Invalid input and duplicate
// titles both re-render the form inline with the submitted values preserved.
func (h *Handlers) HandleCreatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := auth.UserFromContext(r.Context())
		form := readPostForm(r)

		if err := form.Validate(); err != nil {
			h.renderMakePost(w, r, "New Post", "/new-post", form, err)
			return
		}

		if _, err := h.service.CreatePost(r.Context(), user, form); err != nil {
			if errors.Is(err, ErrDuplicateTitle) {
				h.renderMakePost(w, r, "New Post", "/new-post", form, err)
				return
			}
			web.ErrorPage(w, r, statusOf(err), "Could not create the post.", auth.ViewerOf(user))
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// HandleEditPostForm renders the authoring form pre-filled with the post's
// current fields.
func (h *Handlers) HandleEditPostForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := postID(r)
		if err != nil {
			web.ErrorPage(w, r, http.StatusNotFound, "That post doesn't exist.", auth.ViewerFromContext(r))
			return
		}

		post, err := h.service.GetPost(r.Context(), id)
		if err != nil {
			if apperror.IsNotFound(err) {
				web.ErrorPage(w, r, http.StatusNotFound, "That post doesn't exist.", auth.ViewerFromContext(r))
				return
			}
			web.ErrorPage(w, r, statusOf(err), "Could not load the post.", auth.ViewerFromContext(r))
			return
		}

		web.Render(w, r, http.StatusOK, "makepost", &web.PageData{
			Title: "Edit Post",
			User:  auth.ViewerFromContext(r),
			Form: map[string]string{
				"title":    post.Title,
				"subtitle": post.Subtitle,
				"body":     post.Body,
				"img_url":  post.ImageURL,
			},
			Data: makePostData("Edit Post", "/edit-post/"+strconv.Itoa(id)),
		})
	}
}

// HandleUpdatePost processes the edit-post form. Author and date stay as
// they were created; only title, subtitle, body, and image change.
func (h *Handlers) HandleUpdatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := postID(r)
		if err != nil {
			web.ErrorPage(w, r, http.StatusNotFound, "That post doesn't exist.", auth.ViewerFromContext(r))
			return
		}

		form := readPostForm(r)
		action := "/edit-post/" + strconv.Itoa(id)

		if err := form.Validate(); err != nil {
			h.renderMakePost(w, r, "Edit Post", action, form, err)
			return
		}

		if _, err := h.service.UpdatePost(r.Context(), id, form); err != nil {
			switch {
			case apperror.IsNotFound(err):
				web.ErrorPage(w, r, http.StatusNotFound, "That post doesn't exist.", auth.ViewerFromContext(r))
			case errors.Is(err, ErrDuplicateTitle):
				h.renderMakePost(w, r, "Edit Post", action, form, err)
			default:
				web.ErrorPage(w, r, statusOf(err), "Could not update the post.", auth.ViewerFromContext(r))
			}
			return
		}

		http.Redirect(w, r, "/post/"+strconv.Itoa(id), http.StatusSeeOther)
	}
}

// HandleDeletePost removes a post and its comments, then returns home.
func (h *Handlers) HandleDeletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := postID(r)
		if err != nil {
			web.ErrorPage(w, r, http.StatusNotFound, "That post doesn't exist.", auth.ViewerFromContext(r))
			return
		}

		if err := h.service.DeletePost(r.Context(), id); err != nil {
			if apperror.IsNotFound(err) {
				web.ErrorPage(w, r, http.StatusNotFound, "That post doesn't exist.", auth.ViewerFromContext(r))
				return
			}
			web.ErrorPage(w, r, statusOf(err), "Could not delete the post.", auth.ViewerFromContext(r))
			return
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// renderPost loads a post with its comments and renders the post page,
// optionally carrying an inline form error and the preserved comment text.
func (h *Handlers) renderPost(w http.ResponseWriter, r *http.Request, status int, formError, commentText string) {
	viewer := auth.ViewerFromContext(r)

	id, err := postID(r)
	if err != nil {
		web.ErrorPage(w, r, http.StatusNotFound, "That post doesn't exist.", viewer)
		return
	}

	post, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		if apperror.IsNotFound(err) {
			web.ErrorPage(w, r, http.StatusNotFound, "That post doesn't exist.", viewer)
			return
		}
		web.ErrorPage(w, r, statusOf(err), "Could not load the post.", viewer)
		return
	}

	comments, err := h.service.ListCommentsForPost(r.Context(), id)
	if err != nil {
		web.ErrorPage(w, r, statusOf(err), "Could not load comments.", viewer)
		return
	}

	web.Render(w, r, status, "post", &web.PageData{
		Title:     post.Title,
		User:      viewer,
		FormError: formError,
		Form:      map[string]string{"text": commentText},
		Data: postPageData{
			Post: postView{
				ID:       post.ID,
				Title:    post.Title,
				Subtitle: post.Subtitle,
				Date:     post.Date,
				Body:     template.HTML(post.Body),
				ImageURL: post.ImageURL,
				CanEdit:  viewer != nil && viewer.Admin,
			},
			Comments: comments,
		},
	})
}

// renderMakePost re-renders the authoring form after a failure with the
// submitted values preserved.
func (h *Handlers) renderMakePost(w http.ResponseWriter, r *http.Request, title, action string, form PostForm, err error) {
	message := "Could not save the post."
	status := http.StatusBadRequest
	if appErr, ok := apperror.FromError(err); ok {
		message = appErr.Message
		status = appErr.StatusCode()
	}
	web.Render(w, r, status, "makepost", &web.PageData{
		Title:     title,
		User:      auth.ViewerFromContext(r),
		FormError: message,
		Form: map[string]string{
			"title":    form.Title,
			"subtitle": form.Subtitle,
			"body":     form.Body,
			"img_url":  form.ImageURL,
		},
		Data: makePostData(title, action),
	})
}

// makePostData builds the payload of the authoring form template.
func makePostData(heading, action string) any {
	return struct {
		Heading string
		Action  string
	}{heading, action}
}

// readPostForm collects the authoring form fields from the request.
func readPostForm(r *http.Request) PostForm {
	return PostForm{
		Title:    r.FormValue("title"),
		Subtitle: r.FormValue("subtitle"),
		Body:     r.FormValue("body"),
		ImageURL: r.FormValue("img_url"),
	}
}

// postID extracts and parses the {id} route parameter.
func postID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

// statusOf maps any error to an HTTP status, defaulting to 500.
func statusOf(err error) int {
	if appErr, ok := apperror.FromError(err); ok {
		return appErr.StatusCode()
	}
	return http.StatusInternalServerError
}
