// Package account implements the local sign-in flow. Any well-formed
// credential pair is accepted and no password is ever stored.
package account

import (
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/sadopc/sprout/internal/store"
)

// MinPasswordLength is the shortest password accepted.
const MinPasswordLength = 6

// Form field names used as FieldErrors keys.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// FieldErrors maps a form field to its message.
type FieldErrors map[string]string

func (e FieldErrors) OK() bool { return len(e) == 0 }

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range []string{FieldName, FieldEmail, FieldPassword, FieldConfirmPassword} {
		if msg, ok := e[f]; ok {
			parts = append(parts, f+": "+msg)
		}
	}
	return strings.Join(parts, "; ")
}

// ValidEmail reports whether s is a single bare address.
func ValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s[strings.LastIndex(s, "@")+1:], ".")
}

// CheckLogin validates a login form and returns the user it signs in.
func CheckLogin(email, password string) (store.User, FieldErrors) {
	email = strings.TrimSpace(email)
	errs := FieldErrors{}
	if !ValidEmail(email) {
		errs[FieldEmail] = "Please enter a valid email address"
	}
	if len(password) < MinPasswordLength {
		errs[FieldPassword] = fmt.Sprintf("Password must be at least %d characters", MinPasswordLength)
	}
	if !errs.OK() {
		return store.User{}, errs
	}
	return store.User{Name: email[:strings.Index(email, "@")], Email: email}, nil
}

// CheckSignup validates a signup form and returns the user it creates.
func CheckSignup(name, email, password, confirm string) (store.User, FieldErrors) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	errs := FieldErrors{}
	if name == "" {
		errs[FieldName] = "Name is required"
	}
	if !ValidEmail(email) {
		errs[FieldEmail] = "Please enter a valid email address"
	}
	if len(password) < MinPasswordLength {
		errs[FieldPassword] = fmt.Sprintf("Password must be at least %d characters", MinPasswordLength)
	}
	if password != confirm {
		errs[FieldConfirmPassword] = "Passwords do not match"
	}
	if !errs.OK() {
		return store.User{}, errs
	}
	return store.User{Name: name, Email: email}, nil
}

// Service persists the session user.
type Service struct {
	store  *store.Store
	logger *slog.Logger
}

func NewService(s *store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: s, logger: logger}
}

// Login signs in with an email and password. A non-nil error is either
// FieldErrors or a storage failure.
func (s *Service) Login(email, password string) (store.User, error) {
	u, errs := CheckLogin(email, password)
	if !errs.OK() {
		return store.User{}, errs
	}
	return s.signIn(u)
}

func (s *Service) Signup(name, email, password, confirm string) (store.User, error) {
	u, errs := CheckSignup(name, email, password, confirm)
	if !errs.OK() {
		return store.User{}, errs
	}
	return s.signIn(u)
}

func (s *Service) signIn(u store.User) (store.User, error) {
	if err := s.store.SaveUser(u); err != nil {
		return store.User{}, fmt.Errorf("save user: %w", err)
	}
	saved, err := s.store.CurrentUser()
	if err != nil || saved == nil {
		return u, err
	}
	s.logger.Info("signed in", "email", saved.Email)
	return *saved, nil
}

// Current returns the signed-in user, or nil.
func (s *Service) Current() (*store.User, error) {
	return s.store.CurrentUser()
}

// Logout drops every session document.
func (s *Service) Logout() error {
	if err := s.store.ClearAll(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.logger.Info("signed out")
	return nil
}
