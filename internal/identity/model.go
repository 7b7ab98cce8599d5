package identity

import "time"

const (
	// RolePatient is the default role for self-registered users.
	RolePatient = "patient"
	// RoleDoctor marks verified medical staff accounts.
	RoleDoctor = "doctor"
)

// User represents a registered platform account, patient or doctor.
type User struct {
	ID           string
	Email        string
	FullName     string
	Role         string
	PasswordHash []byte
	TokenVersion int
	CreatedAt    time.Time
	LastLogin    time.Time
}

// Credentials carry a login attempt.
type Credentials struct {
	Email    string
	Password string
}
