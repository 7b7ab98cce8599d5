package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a wrong email/password combination
// without revealing which part failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service manages account lifecycle.
type Service struct {
	repo Repository
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RegisterInput captures data required to create an account.
type RegisterInput struct {
	Email    string
	FullName string
	Password string
	Role     string
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, input RegisterInput) (User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return User{}, errors.New("a valid email is required")
	}
	if len(input.Password) < 8 {
		return User{}, errors.New("password must be at least 8 characters")
	}
	role := input.Role
	switch role {
	case "":
		role = RolePatient
	case RolePatient, RoleDoctor:
	default:
		return User{}, errors.New("unknown role")
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return User{}, errors.New("user with this email already exists")
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     strings.TrimSpace(input.FullName),
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	return user, nil
}

// DoctorProfile is the public view of a doctor account. Password hashes and
// token bookkeeping never leave the package.
type DoctorProfile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

func profileOf(user User) DoctorProfile {
	return DoctorProfile{ID: user.ID, Email: user.Email, FullName: user.FullName}
}

// ListDoctors returns the public profiles of all doctor accounts.
func (s *Service) ListDoctors(ctx context.Context) ([]DoctorProfile, error) {
	doctors, err := s.repo.ListByRole(ctx, RoleDoctor)
	if err != nil {
		return nil, err
	}
	out := make([]DoctorProfile, 0, len(doctors))
	for _, doctor := range doctors {
		out = append(out, profileOf(doctor))
	}
	return out, nil
}

// GetDoctor returns a single doctor's public profile. A user that exists but
// is not a doctor is reported as ErrNotFound.
func (s *Service) GetDoctor(ctx context.Context, id string) (DoctorProfile, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DoctorProfile{}, err
	}
	if user.Role != RoleDoctor {
		return DoctorProfile{}, ErrNotFound
	}
	return profileOf(user), nil
}

// Authenticate verifies credentials and records the login time.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(creds.Email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(creds.Password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return User{}, err
	}
	user.LastLogin = now

	return user, nil
}
