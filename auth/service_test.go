package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/chickenblog-go/apperror"
)

// memUserStore is an in-memory UserStore for tests. Identifiers are issued
// sequentially starting at 1, matching the serial column, so the first
// registered user is the administrator here too.
type memUserStore struct {
	nextID int
	users  map[int]*User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{nextID: 1, users: make(map[int]*User)}
}

func (s *memUserStore) CreateUser(_ context.Context, user *User) (*User, error) {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return nil, ErrEmailTaken
		}
	}
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	s.nextID++
	s.users[user.ID] = user
	return user, nil
}

func (s *memUserStore) GetUserByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperror.NewNotFoundError(fmt.Sprintf("user with email '%s' not found", email), nil)
}

func (s *memUserStore) GetUserByID(_ context.Context, id int) (*User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("user with ID %d not found", id), nil)
	}
	return u, nil
}

func TestRegisterHashesPassword(t *testing.T) {
	store := newMemUserStore()
	service := NewAuthService(store)

	user, err := service.Register(context.Background(), RegisterForm{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, user.ID)
	// The email is stored exactly as typed.
	assert.Equal(t, "Alice@Example.com", user.Email)
	// The plaintext is never stored; the digest verifies against it.
	assert.NotEqual(t, "hunter22", user.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("hunter22")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newMemUserStore()
	service := NewAuthService(store)

	_, err := service.Register(context.Background(), RegisterForm{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), RegisterForm{
		Name: "Impostor", Email: "alice@example.com", Password: "different",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
	assert.True(t, apperror.IsConflict(err))

	// The failed attempt created nothing.
	assert.Len(t, store.users, 1)
}

func TestRegisterCaseVariantEmailIsDistinct(t *testing.T) {
	store := newMemUserStore()
	service := NewAuthService(store)

	_, err := service.Register(context.Background(), RegisterForm{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	// Email uniqueness is case-sensitive: a case-variant address is its own
	// account, not a duplicate.
	other, err := service.Register(context.Background(), RegisterForm{
		Name: "Other Alice", Email: "Alice@Example.com", Password: "different",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice@Example.com", other.Email)
	assert.Len(t, store.users, 2)
}

func TestAuthenticate(t *testing.T) {
	store := newMemUserStore()
	service := NewAuthService(store)

	registered, err := service.Register(context.Background(), RegisterForm{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	user, err := service.Authenticate(context.Background(), LoginForm{
		Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	// The login lookup is exact-match; a case-variant of a registered email
	// names no account.
	_, err = service.Authenticate(context.Background(), LoginForm{
		Email: "Alice@Example.COM", Password: "hunter22",
	})
	assert.ErrorIs(t, err, ErrNoSuchAccount)
}

func TestAuthenticateUnknownAccount(t *testing.T) {
	service := NewAuthService(newMemUserStore())

	_, err := service.Authenticate(context.Background(), LoginForm{
		Email: "nobody@example.com", Password: "whatever",
	})
	// An unknown account is distinct from a wrong password; the login flow
	// redirects the two cases to different pages.
	require.ErrorIs(t, err, ErrNoSuchAccount)
	assert.NotErrorIs(t, err, ErrBadPassword)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	store := newMemUserStore()
	service := NewAuthService(store)

	_, err := service.Register(context.Background(), RegisterForm{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = service.Authenticate(context.Background(), LoginForm{
		Email: "alice@example.com", Password: "hunter23",
	})
	require.ErrorIs(t, err, ErrBadPassword)
	assert.NotErrorIs(t, err, ErrNoSuchAccount)
}

func TestFirstUserIsAdministrator(t *testing.T) {
	store := newMemUserStore()
	service := NewAuthService(store)

	alice, err := service.Register(context.Background(), RegisterForm{
		Name: "Alice", Email: "alice@example.com", Password: "hunter22",
	})
	require.NoError(t, err)
	bob, err := service.Register(context.Background(), RegisterForm{
		Name: "Bob", Email: "bob@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	assert.True(t, IsAdministrator(alice))
	assert.False(t, IsAdministrator(bob))
	assert.False(t, IsAdministrator(nil))
}

func TestRegisterFormValidation(t *testing.T) {
	cases := []struct {
		name string
		form RegisterForm
		ok   bool
	}{
		{"valid", RegisterForm{Name: "Alice", Email: "alice@example.com", Password: "hunter22"}, true},
		{"missing name", RegisterForm{Email: "alice@example.com", Password: "hunter22"}, false},
		{"bad email", RegisterForm{Name: "Alice", Email: "not-an-email", Password: "hunter22"}, false},
		{"short password", RegisterForm{Name: "Alice", Email: "alice@example.com", Password: "abc"}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.form.Validate()
			if c.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperror.IsValidationError(err))
			}
		})
	}
}
