package auth

// This file implements the credential store operations: registration with
// salted one-way hashing, and authentication that distinguishes an unknown
// account from a wrong password.

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/user/chickenblog-go/apperror"
)

// Sentinel errors for the credential store. Handlers branch on these to pick
// the right flash notice and redirect target, so they are fixed values rather
// than per-call messages.
var (
	// ErrEmailTaken reports a registration against an email that already has
	// an account.
	ErrEmailTaken = apperror.NewConflictError("this email is already registered", nil)
	// ErrNoSuchAccount reports a login for an email with no account.
	ErrNoSuchAccount = apperror.NewAuthError("account not found", nil)
	// ErrBadPassword reports a login with the wrong password.
	ErrBadPassword = apperror.NewAuthError("incorrect password", nil)
)

// AuthService provides registration and authentication over a UserStore.
// The hashing algorithm and cost are fixed here, not caller-chosen.
type AuthService struct {
	store UserStore
}

// NewAuthService creates a new AuthService on the given store.
func NewAuthService(store UserStore) *AuthService {
	return &AuthService{store: store}
}

// Register creates a new user from a validated registration form. The
// password is hashed with bcrypt (salted, one-way) before anything is
// persisted; the plaintext never leaves this function. Returns ErrEmailTaken
// if the email already has an account.
func (s *AuthService) Register(ctx context.Context, form RegisterForm) (*User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	user := &User{
		Name: form.Name,
		// The email is stored exactly as typed. Uniqueness and login lookups
		// are case-sensitive; a case-variant address is a distinct account.
		Email:          form.Email,
		HashedPassword: string(hashedPassword),
	}

	return s.store.CreateUser(ctx, user)
}

// Authenticate verifies an email/password pair. It reports ErrNoSuchAccount
// when the email is unknown and ErrBadPassword on a hash mismatch; the two
// cases are distinct because the login flow redirects them differently.
// bcrypt.CompareHashAndPassword performs the comparison in constant time.
func (s *AuthService) Authenticate(ctx context.Context, form LoginForm) (*User, error) {
	user, err := s.store.GetUserByEmail(ctx, form.Email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, ErrNoSuchAccount
		}
		log.Printf("auth: database error looking up %q: %v", form.Email, err)
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(form.Password)); err != nil {
		return nil, ErrBadPassword
	}

	return user, nil
}

// GetUserByID resolves an identifier back to a user. The session layer calls
// this on every request so identity always reflects the latest stored state.
func (s *AuthService) GetUserByID(ctx context.Context, id int) (*User, error) {
	return s.store.GetUserByID(ctx, id)
}
