package posts

// The content service sits between the handlers and the store. It is thin:
// the store carries the integrity rules, so what remains here is the shape of
// a new post (its author binding and its fixed display date) and of a new
// comment.

import (
	"context"
	"time"

	"github.com/user/chickenblog-go/auth"
)

// PostService provides the content store operations over a Store.
type PostService struct {
	store Store
}

// NewPostService creates a new PostService on the given store.
func NewPostService(store Store) *PostService {
	return &PostService{store: store}
}

// ListPosts returns all posts in creation order.
func (s *PostService) ListPosts(ctx context.Context) ([]Post, error) {
	return s.store.ListPosts(ctx)
}

// GetPost returns one post by identifier.
func (s *PostService) GetPost(ctx context.Context, id int) (*Post, error) {
	return s.store.GetPost(ctx, id)
}

// CreatePost creates a post authored by the given user. The display date is
// fixed here at creation ("January 02, 2006" form) and never changes
// afterwards; neither does the author.
func (s *PostService) CreatePost(ctx context.Context, author *auth.User, form PostForm) (*Post, error) {
	post := &Post{
		AuthorID: author.ID,
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Date:     time.Now().Format("January 02, 2006"),
		Body:     form.Body,
		ImageURL: form.ImageURL,
	}
	return s.store.CreatePost(ctx, post)
}

// UpdatePost rewrites the mutable fields of a post.
func (s *PostService) UpdatePost(ctx context.Context, id int, form PostForm) (*Post, error) {
	return s.store.UpdatePost(ctx, id, form)
}

// DeletePost removes a post together with its comments.
func (s *PostService) DeletePost(ctx context.Context, id int) error {
	return s.store.DeletePost(ctx, id)
}

// AddComment creates a comment by the given user on the given post.
func (s *PostService) AddComment(ctx context.Context, postID int, author *auth.User, form CommentForm) (*Comment, error) {
	comment := &Comment{
		PostID:     postID,
		AuthorID:   author.ID,
		Text:       form.Text,
		AuthorName: author.Name,
	}
	return s.store.AddComment(ctx, comment)
}

// ListCommentsForPost returns one post's comments, oldest first.
func (s *PostService) ListCommentsForPost(ctx context.Context, postID int) ([]Comment, error) {
	return s.store.ListCommentsForPost(ctx, postID)
}
