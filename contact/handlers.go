package contact

// HTTP handlers for the contact page. A delivery failure re-renders the form
// with an error notice; the "sent" confirmation appears only when the mail
// collaborator actually accepted the message.

import (
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/user/chickenblog-go/apperror"
	"github.com/user/chickenblog-go/auth"
	"github.com/user/chickenblog-go/web"
)

var validate = validator.New()

// ContactForm carries the fields of the contact form.
type ContactForm struct {
	Name  string `validate:"required,max=100"`
	Email string `validate:"required,email,max=100"`
	Text  string `validate:"required"`
}

// Validate checks the contact form.
func (f ContactForm) Validate() error {
	if err := validate.Struct(f); err != nil {
		return apperror.NewValidationError("please provide your name, a valid email, and a message", err)
	}
	return nil
}

// Handlers wraps the Mailer to provide HTTP handlers.
type Handlers struct {
	mailer Mailer
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(mailer Mailer) *Handlers {
	return &Handlers{mailer: mailer}
}

// contactData is the payload of the contact page template.
type contactData struct {
	Sent bool
}

// HandleContactForm renders the contact form.
func (h *Handlers) HandleContactForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		web.Render(w, r, http.StatusOK, "contact", &web.PageData{
			Title: "Contact",
			User:  auth.ViewerFromContext(r),
			Data:  contactData{},
		})
	}
}

// HandleContactSubmit validates the form and hands the message to the mail
// collaborator. Validation failures and transport failures both re-render
// the form with the submitted values preserved; only an accepted delivery
// renders the confirmation.
func (h *Handlers) HandleContactSubmit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := ContactForm{
			Name:  r.FormValue("name"),
			Email: r.FormValue("email"),
			Text:  r.FormValue("text"),
		}

		if err := form.Validate(); err != nil {
			h.renderForm(w, r, form, err)
			return
		}

		if err := h.mailer.Send(form.Name, form.Email, form.Text); err != nil {
			log.Printf("contact: mail delivery failed: %v", err)
			h.renderForm(w, r, form, apperror.NewExternalServiceError("your message could not be sent, please try again later", err))
			return
		}

		web.Render(w, r, http.StatusOK, "contact", &web.PageData{
			Title: "Contact",
			User:  auth.ViewerFromContext(r),
			Data:  contactData{Sent: true},
		})
	}
}

// renderForm re-renders the contact form after a failure.
func (h *Handlers) renderForm(w http.ResponseWriter, r *http.Request, form ContactForm, err error) {
	message := "Something went wrong, please try again."
	status := http.StatusBadRequest
	if appErr, ok := apperror.FromError(err); ok {
		message = appErr.Message
		status = appErr.StatusCode()
	}
	web.Render(w, r, status, "contact", &web.PageData{
		Title:     "Contact",
		User:      auth.ViewerFromContext(r),
		FormError: message,
		Form: map[string]string{
			"name":  form.Name,
			"email": form.Email,
			"text":  form.Text,
		},
		Data: contactData{},
	})
}
