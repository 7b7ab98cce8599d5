package identity

import (
	"context"
	"errors"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)

	ctx := context.Background()
	user, err := svc.Register(ctx, RegisterInput{Email: "Amina@Example.com", FullName: "Amina U", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if user.Role != RolePatient {
		t.Fatalf("expected default role patient, got %s", user.Role)
	}
	if user.Email != "amina@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}

	authed, err := svc.Authenticate(ctx, Credentials{Email: "amina@example.com", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.LastLogin.IsZero() {
		t.Fatalf("expected last login to be recorded")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "s3cret-pass"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "other-pass-1"}); err == nil {
		t.Fatalf("expected duplicate email rejection")
	}
}

func TestListDoctorsFiltersByRole(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Email: "patient@example.com", FullName: "Pat Ient", Password: "s3cret-pass"}); err != nil {
		t.Fatalf("register patient: %v", err)
	}
	doctor, err := svc.Register(ctx, RegisterInput{Email: "doc@example.com", FullName: "Dr Aline", Password: "s3cret-pass", Role: RoleDoctor})
	if err != nil {
		t.Fatalf("register doctor: %v", err)
	}

	doctors, err := svc.ListDoctors(ctx)
	if err != nil {
		t.Fatalf("list doctors: %v", err)
	}
	if len(doctors) != 1 || doctors[0].ID != doctor.ID {
		t.Fatalf("expected only the doctor account, got %+v", doctors)
	}

	profile, err := svc.GetDoctor(ctx, doctor.ID)
	if err != nil {
		t.Fatalf("get doctor: %v", err)
	}
	if profile.FullName != "Dr Aline" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestGetDoctorRejectsNonDoctor(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	patient, err := svc.Register(ctx, RegisterInput{Email: "pat@example.com", FullName: "Pat Ient", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.GetDoctor(ctx, patient.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-doctor, got %v", err)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Email: "a@example.com", Password: "s3cret-pass"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Authenticate(ctx, Credentials{Email: "a@example.com", Password: "wrong-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, Credentials{Email: "missing@example.com", Password: "whatever1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}
}
