// Package auth holds who is logged in. It is a session stub, not a security
// boundary: with the AcceptAll verifier any non-empty credentials succeed.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rustyeddy/fxjournal/internal/validation"
	"github.com/rustyeddy/fxjournal/pkg/id"
	"github.com/rustyeddy/fxjournal/storage"
	"go.uber.org/zap"
)

var (
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrTermsNotAccepted    = errors.New("you must agree to the terms and conditions")
	ErrEmailTaken          = errors.New("email already registered")
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

type RegisterForm struct {
	Name            string `form:"name" validate:"required"`
	Email           string `form:"email" validate:"required,email"`
	Password        string `form:"password" validate:"required"`
	ConfirmPassword string `form:"confirmPassword" validate:"required"`
	AgreeTerms      bool   `form:"agreeTerms"`
}

// Session is the current-user state, restored from and saved to
// storage.KeyUser.
type Session struct {
	mu       sync.Mutex
	st       storage.Storage
	verifier Verifier
	log      *zap.Logger
	user     *User
}

type Option func(*Session)

func WithVerifier(v Verifier) Option {
	return func(s *Session) { s.verifier = v }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

func NewSession(st storage.Storage, opts ...Option) (*Session, error) {
	s := &Session{st: st, verifier: AcceptAll{}, log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}

	var u User
	ok, err := storage.LoadJSON(st, storage.KeyUser, &u)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if ok && u.Email != "" {
		s.user = &u
	}
	return s, nil
}

func roleFor(email string) Role {
	if strings.Contains(strings.ToLower(email), "admin") {
		return RoleAdmin
	}
	return RoleUser
}

// Login authenticates when both fields are non-empty and the verifier
// accepts them. On failure the state is left as it was.
func (s *Session) Login(email, password string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return User{}, ErrCredentialsRequired
	}

	name, err := s.verifier.Verify(email, password)
	if err != nil {
		s.log.Info("login rejected", zap.String("email", email))
		return User{}, err
	}

	u := User{ID: id.New(), Email: email, Name: name, Role: roleFor(email)}
	if err := s.set(&u); err != nil {
		return User{}, err
	}
	s.log.Info("logged in", zap.String("email", email), zap.String("role", string(u.Role)))
	return u, nil
}

// Register validates the form, enrolls the account with the verifier and
// logs the new user in.
func (s *Session) Register(f RegisterForm) (User, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	if err := validation.Check(f); err != nil {
		return User{}, err
	}
	if f.Password != f.ConfirmPassword {
		return User{}, ErrPasswordMismatch
	}
	if !f.AgreeTerms {
		return User{}, ErrTermsNotAccepted
	}

	if err := s.verifier.Enroll(f.Name, f.Email, f.Password); err != nil {
		return User{}, fmt.Errorf("registration failed: %w", err)
	}

	u := User{ID: id.New(), Email: f.Email, Name: f.Name, Role: RoleUser}
	if err := s.set(&u); err != nil {
		return User{}, err
	}
	s.log.Info("registered", zap.String("email", u.Email), zap.String("id", u.ID))
	return u, nil
}

// Logout returns to the anonymous state.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.st.Delete(storage.KeyUser); err != nil {
		return fmt.Errorf("clear user: %w", err)
	}
	s.user = nil
	s.log.Info("logged out")
	return nil
}

func (s *Session) set(u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := storage.SaveJSON(s.st, storage.KeyUser, u); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	s.user = u
	return nil
}

func (s *Session) Current() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

func (s *Session) State() State {
	if _, ok := s.Current(); ok {
		return Authenticated
	}
	return Anonymous
}

func (s *Session) IsAuthenticated() bool {
	return s.State() == Authenticated
}

func (s *Session) IsAdmin() bool {
	u, ok := s.Current()
	return ok && u.Role == RoleAdmin
}
