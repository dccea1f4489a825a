// Command chickenblog runs the server-rendered blog: public post listing,
// email/password accounts, comments from signed-in readers, and authoring
// restricted to the first-registered account. Everything is constructed here
// at startup and injected explicitly; there is no ambient global state.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/user/chickenblog-go/auth"
	"github.com/user/chickenblog-go/config"
	"github.com/user/chickenblog-go/contact"
	"github.com/user/chickenblog-go/db"
	"github.com/user/chickenblog-go/posts"
	"github.com/user/chickenblog-go/web"
)

func main() {
	// Load .env if present; in production the variables are set directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	// The schema is created idempotently on every startup.
	if err := db.EnsureSchema(pool); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Wire the stores, services, and handlers. Dependencies flow one way:
	// handlers hold services, services hold stores, stores hold the pool.
	userStore := auth.NewPostgresUserStore(pool)
	sessions := auth.NewSessions(cfg.Session)
	authService := auth.NewAuthService(userStore)
	authHandlers := auth.NewHandlers(authService, sessions)

	postStore := posts.NewPostgresStore(pool)
	postService := posts.NewPostService(postStore)
	postHandlers := posts.NewHandlers(postService)

	mailer := contact.NewSMTPMailer(cfg.Mail)
	contactHandlers := contact.NewHandlers(mailer)

	r := chi.NewRouter()

	// Global middleware; chi requires these before any routes.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// Identity runs on every route: it resolves the session cookie to a user
	// in the context (re-reading the user row each time) and leaves the
	// request anonymous when there is no valid session.
	r.Use(auth.Identity(sessions, userStore))

	// Public pages.
	r.Get("/", postHandlers.HandleHome())
	r.Get("/about", aboutHandler())
	r.Get("/contact", contactHandlers.HandleContactForm())
	r.Post("/contact", contactHandlers.HandleContactSubmit())

	// Account pages.
	r.Get("/register", authHandlers.HandleRegisterForm())
	r.Post("/register", authHandlers.HandleRegister())
	r.Get("/login", authHandlers.HandleLoginForm())
	r.Post("/login", authHandlers.HandleLogin())
	r.Get("/logout", authHandlers.HandleLogout())

	// Reading and commenting require a signed-in user; anonymous callers are
	// flashed and redirected to the login flow.
	r.Route("/post", func(r chi.Router) {
		r.Use(auth.RequireSignedIn)
		r.Get("/{id}", postHandlers.HandleShowPost())
		r.Post("/{id}", postHandlers.HandleAddComment())
	})

	// Authoring is administrator-only: anyone else gets a hard 403.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdministrator)
		r.Get("/new-post", postHandlers.HandleNewPostForm())
		r.Post("/new-post", postHandlers.HandleCreatePost())
		r.Get("/edit-post/{id}", postHandlers.HandleEditPostForm())
		r.Post("/edit-post/{id}", postHandlers.HandleUpdatePost())
		r.Get("/delete/{id}", postHandlers.HandleDeletePost())
	})

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine so the main goroutine can wait for the
	// shutdown signal.
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// aboutHandler renders the static about page.
func aboutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		web.Render(w, r, http.StatusOK, "about", &web.PageData{
			Title: "About",
			User:  auth.ViewerFromContext(r),
			Data:  struct{}{},
		})
	}
}
