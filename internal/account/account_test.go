package account

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/sprout/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	s, err := store.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewService(s, nil), s
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"ana@example.com", true},
		{" ana@example.com ", true},
		{"ana.b+tag@mail.example.org", true},
		{"", false},
		{"ana", false},
		{"ana@localhost", false},
		{"Ana <ana@example.com>", false},
		{"@example.com", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidEmail(tt.in), tt.in)
	}
}

func TestCheckLogin(t *testing.T) {
	u, errs := CheckLogin("priya.k@example.com", "secret1")
	require.True(t, errs.OK())
	assert.Equal(t, store.User{Name: "priya.k", Email: "priya.k@example.com"}, u)

	_, errs = CheckLogin("nope", "12345")
	assert.Contains(t, errs, FieldEmail)
	assert.Equal(t, "Password must be at least 6 characters", errs[FieldPassword])
}

func TestCheckSignup(t *testing.T) {
	u, errs := CheckSignup("Priya", "p@example.com", "secret1", "secret1")
	require.True(t, errs.OK())
	assert.Equal(t, "Priya", u.Name)

	_, errs = CheckSignup("", "p@example.com", "secret", "secrex")
	assert.Equal(t, "Name is required", errs[FieldName])
	assert.Equal(t, "Passwords do not match", errs[FieldConfirmPassword])
	assert.NotContains(t, errs, FieldPassword)
	assert.Equal(t, "name: Name is required; confirmPassword: Passwords do not match", errs.Error())
}

func TestLoginPersistsUser(t *testing.T) {
	svc, s := newTestService(t)

	u, err := svc.Login("sam@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "sam", u.Name)
	assert.False(t, u.LoggedInAt.IsZero())

	cur, err := s.CurrentUser()
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, "sam@example.com", cur.Email)

	raw, found, err := s.Load(store.KeyUser)
	require.NoError(t, err)
	require.True(t, found)
	assert.NotContains(t, string(raw), "hunter22")
}

func TestLoginRejected(t *testing.T) {
	svc, s := newTestService(t)

	_, err := svc.Login("sam@example.com", "short")
	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe, FieldPassword)

	cur, err := s.CurrentUser()
	require.NoError(t, err)
	assert.Nil(t, cur)
}

func TestLogoutClearsSession(t *testing.T) {
	svc, s := newTestService(t)
	_, err := svc.Signup("Sam", "sam@example.com", "secret1", "secret1")
	require.NoError(t, err)
	_, err = s.AppendHistory(store.HistoryEntry{PlantsFound: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Logout())

	cur, err := svc.Current()
	require.NoError(t, err)
	assert.Nil(t, cur)
	h, err := s.History()
	require.NoError(t, err)
	assert.Empty(t, h)
}
