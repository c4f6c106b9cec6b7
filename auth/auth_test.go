package auth

import (
	"errors"
	"testing"

	"github.com/rustyeddy/fxjournal/internal/validation"
	"github.com/rustyeddy/fxjournal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestSession(t *testing.T, opts ...Option) (*Session, storage.Storage) {
	t.Helper()

	st := storage.NewMemory()
	s, err := NewSession(st, opts...)
	require.NoError(t, err)
	return s, st
}

func validForm() RegisterForm {
	return RegisterForm{
		Name:            "Ada Trader",
		Email:           "ada@example.com",
		Password:        "pa55word",
		ConfirmPassword: "pa55word",
		AgreeTerms:      true,
	}
}

func TestLoginRequiresBothFields(t *testing.T) {
	t.Parallel()

	s, st := newTestSession(t)

	for _, c := range [][2]string{{"", "x"}, {"a@b.co", ""}, {"   ", "x"}} {
		_, err := s.Login(c[0], c[1])
		assert.ErrorIs(t, err, ErrCredentialsRequired)
		assert.Equal(t, Anonymous, s.State())
	}

	_, err := st.Get(storage.KeyUser)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLoginStub(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t)

	u, err := s.Login("trader@example.com", "anything")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "trader@example.com", u.Email)
	assert.Equal(t, "Demo User", u.Name)
	assert.Equal(t, RoleUser, u.Role)
	assert.Equal(t, Authenticated, s.State())
	assert.False(t, s.IsAdmin())

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, u, cur)
}

func TestLoginAdminRole(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t)
	u, err := s.Login("Admin@desk.io", "x")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, u.Role)
	assert.True(t, s.IsAdmin())
}

func TestSessionRestoresAndLogsOut(t *testing.T) {
	t.Parallel()

	s, st := newTestSession(t)
	u, err := s.Login("trader@example.com", "x")
	require.NoError(t, err)

	s2, err := NewSession(st)
	require.NoError(t, err)
	cur, ok := s2.Current()
	require.True(t, ok)
	assert.Equal(t, u, cur)

	require.NoError(t, s2.Logout())
	assert.Equal(t, Anonymous, s2.State())
	assert.Equal(t, "anonymous", s2.State().String())

	s3, err := NewSession(st)
	require.NoError(t, err)
	assert.False(t, s3.IsAuthenticated())
}

func TestRegister(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession(t)

	u, err := s.Register(validForm())
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Ada Trader", u.Name)
	assert.Equal(t, RoleUser, u.Role)
	assert.True(t, s.IsAuthenticated())

	// register always mints a fresh id
	s2, _ := newTestSession(t)
	u2, err := s2.Register(validForm())
	require.NoError(t, err)
	assert.NotEqual(t, u.ID, u2.ID)
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*RegisterForm)
		check  func(t *testing.T, err error)
	}{
		{
			name:   "missing name",
			mutate: func(f *RegisterForm) { f.Name = " " },
			check: func(t *testing.T, err error) {
				var verr *validation.Error
				require.ErrorAs(t, err, &verr)
				assert.True(t, verr.Has("name"))
			},
		},
		{
			name:   "bad email",
			mutate: func(f *RegisterForm) { f.Email = "not-an-email" },
			check: func(t *testing.T, err error) {
				var verr *validation.Error
				require.ErrorAs(t, err, &verr)
				assert.True(t, verr.Has("email"))
			},
		},
		{
			name:   "password mismatch",
			mutate: func(f *RegisterForm) { f.ConfirmPassword = "other" },
			check:  func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrPasswordMismatch) },
		},
		{
			name:   "terms",
			mutate: func(f *RegisterForm) { f.AgreeTerms = false },
			check:  func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrTermsNotAccepted) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t)
			f := validForm()
			tt.mutate(&f)
			_, err := s.Register(f)
			require.Error(t, err)
			tt.check(t, err)
			assert.Equal(t, Anonymous, s.State())
		})
	}
}

func TestBookVerifier(t *testing.T) {
	t.Parallel()

	st := storage.NewMemory()
	book, err := NewBook(st, bcrypt.MinCost)
	require.NoError(t, err)

	s, err := NewSession(st, WithVerifier(book))
	require.NoError(t, err)

	_, err = s.Login("ada@example.com", "pa55word")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Register(validForm())
	require.NoError(t, err)
	require.NoError(t, s.Logout())

	_, err = s.Login("ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, Anonymous, s.State())

	u, err := s.Login(" ADA@example.com ", "pa55word")
	require.NoError(t, err)
	assert.Equal(t, "Ada Trader", u.Name)

	_, err = s.Register(validForm())
	assert.True(t, errors.Is(err, ErrEmailTaken))

	// hashes survive a restart and never hold the plain password
	book2, err := NewBook(st, bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, 1, book2.Len())
	raw, err := st.Get(storage.KeyCredentials)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "pa55word")

	name, err := book2.Verify("ada@example.com", "pa55word")
	require.NoError(t, err)
	assert.Equal(t, "Ada Trader", name)
}
