package posts

// Form payloads for post authoring and commenting, validated with
// go-playground/validator struct tags.

import (
	"github.com/go-playground/validator/v10"

	"github.com/user/chickenblog-go/apperror"
)

var validate = validator.New()

// PostForm carries the fields of the new-post and edit-post forms. The same
// form serves both; author and date are not part of it because they are
// immutable after creation.
type PostForm struct {
	Title    string `validate:"required,max=250"`
	Subtitle string `validate:"required,max=250"`
	Body     string `validate:"required"`
	ImageURL string `validate:"required,url,max=250"`
}

// Validate checks the post form, returning a ValidationError with a
// user-presentable message on failure.
func (f PostForm) Validate() error {
	if err := validate.Struct(f); err != nil {
		return apperror.NewValidationError("please provide a title, subtitle, body, and a valid image URL", err)
	}
	return nil
}

// CommentForm carries the single field of the comment form.
type CommentForm struct {
	Text string `validate:"required,max=250"`
}

// Validate checks the comment form.
func (f CommentForm) Validate() error {
	if err := validate.Struct(f); err != nil {
		return apperror.NewValidationError("please write a comment of at most 250 characters", err)
	}
	return nil
}
