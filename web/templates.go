package web

import "html/template"

// The page templates are compiled into the binary. Styling and markup are
// peripheral here; each page is the minimal HTML needed to carry the form
// fields and content the handlers operate on. Every page body is parsed into
// its own template set together with the shared layout.

const layoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<nav>
<a href="/">Home</a>
<a href="/about">About</a>
<a href="/contact">Contact</a>
{{if .User}}
<a href="/logout">Log Out</a>
{{if .User.Admin}}<a href="/new-post">New Post</a>{{end}}
{{else}}
<a href="/login">Log In</a>
<a href="/register">Register</a>
{{end}}
</nav>
{{with .Flash}}<p class="flash">{{.}}</p>{{end}}
{{with .FormError}}<p class="form-error">{{.}}</p>{{end}}
{{template "content" .}}
<footer>&copy; {{.Year}}</footer>
</body>
</html>`

// pageBodies maps a page name to its content template. Each body renders
// inside the shared layout above and sees the full *PageData, with the
// page-specific payload under .Data.
var pageBodies = map[string]string{
	"home": `{{define "content"}}
<h1>Chicken Blog</h1>
{{range .Data.Posts}}
<article>
<h2><a href="/post/{{.ID}}">{{.Title}}</a></h2>
<h3>{{.Subtitle}}</h3>
<p>Posted on {{.Date}}</p>
</article>
{{else}}
<p>No posts yet.</p>
{{end}}
{{end}}`,

	"register": `{{define "content"}}
<h1>Register</h1>
<form method="post" action="/register">
<label>Name <input type="text" name="name" value="{{index .Form "name"}}"></label>
<label>Email <input type="text" name="email" value="{{index .Form "email"}}"></label>
<label>Password <input type="password" name="password"></label>
<button type="submit">Sign Me Up</button>
</form>
{{end}}`,

	"login": `{{define "content"}}
<h1>Log In</h1>
<form method="post" action="/login">
<label>Email <input type="text" name="email" value="{{index .Form "email"}}"></label>
<label>Password <input type="password" name="password"></label>
<button type="submit">Let Me In</button>
</form>
{{end}}`,

	"post": `{{define "content"}}
<article>
<h1>{{.Data.Post.Title}}</h1>
<h2>{{.Data.Post.Subtitle}}</h2>
<p>Posted on {{.Data.Post.Date}}</p>
<img src="{{.Data.Post.ImageURL}}" alt="">
<div>{{.Data.Post.Body}}</div>
</article>
{{if .Data.Post.CanEdit}}
<p><a href="/edit-post/{{.Data.Post.ID}}">Edit Post</a> <a href="/delete/{{.Data.Post.ID}}">Delete Post</a></p>
{{end}}
<section>
<h3>Comments</h3>
{{range .Data.Comments}}
<div class="comment"><strong>{{.AuthorName}}</strong><p>{{.Text}}</p></div>
{{else}}
<p>No comments yet.</p>
{{end}}
<form method="post" action="/post/{{.Data.Post.ID}}">
<label>Comment <textarea name="text">{{index .Form "text"}}</textarea></label>
<button type="submit">Submit Comment</button>
</form>
</section>
{{end}}`,

	"makepost": `{{define "content"}}
<h1>{{.Data.Heading}}</h1>
<form method="post" action="{{.Data.Action}}">
<label>Title <input type="text" name="title" value="{{index .Form "title"}}"></label>
<label>Subtitle <input type="text" name="subtitle" value="{{index .Form "subtitle"}}"></label>
<label>Image URL <input type="text" name="img_url" value="{{index .Form "img_url"}}"></label>
<label>Body <textarea name="body">{{index .Form "body"}}</textarea></label>
<button type="submit">Submit Post</button>
</form>
{{end}}`,

	"about": `{{define "content"}}
<h1>About</h1>
<p>A little blog about life with chickens, run by one keeper and open to
comments from anyone who signs up.</p>
{{end}}`,

	"contact": `{{define "content"}}
<h1>Contact</h1>
{{if .Data.Sent}}
<p>Your message has been sent.</p>
{{else}}
<form method="post" action="/contact">
<label>Name <input type="text" name="name" value="{{index .Form "name"}}"></label>
<label>Email <input type="text" name="email" value="{{index .Form "email"}}"></label>
<label>Message <textarea name="text">{{index .Form "text"}}</textarea></label>
<button type="submit">Send</button>
</form>
{{end}}
{{end}}`,

	"error": `{{define "content"}}
<h1>{{.Data.Heading}}</h1>
<p>{{.Data.Detail}}</p>
{{end}}`,
}

// pages holds the compiled template set for each page, built once at package
// load. A missing or malformed template is a programmer error, so Must is
// appropriate here.
var pages = buildPages()

func buildPages() map[string]*template.Template {
	built := make(map[string]*template.Template, len(pageBodies))
	for name, body := range pageBodies {
		t := template.Must(template.New("layout").Parse(layoutTemplate))
		template.Must(t.New(name).Parse(body))
		built[name] = t
	}
	return built
}
