// Package posts contains the content store and its HTTP handlers: posts,
// their comments, and the pages that list, show, create, edit, and delete
// them. Authorship relations reference the auth package's users; the
// administrator-only gating lives in the auth guards, not here.
package posts

// Post represents a blog post. Date is a display string fixed at creation
// time; ordering of the front page comes from the allocated identifiers, not
// from parsing this string. Author and date are immutable after creation.
type Post struct {
	ID       int
	AuthorID int
	Title    string
	Subtitle string
	Date     string
	Body     string
	ImageURL string
}

// Comment represents a comment on a post. AuthorName is denormalized at read
// time (joined from the users table) for display; it is not stored.
type Comment struct {
	ID         int
	PostID     int
	AuthorID   int
	Text       string
	AuthorName string
}
