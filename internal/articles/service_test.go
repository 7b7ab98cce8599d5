package articles

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/gilberthappi/keya-health-be/internal/identity"
)

func TestCreateAndListNewestFirst(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	authorID := uuid.NewString()
	if _, err := svc.Create(ctx, CreateInput{
		AuthorID:    authorID,
		AuthorRole:  identity.RoleDoctor,
		Title:       "Managing hypertension",
		Description: "Daily habits that keep blood pressure in range.",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.Create(ctx, CreateInput{
		AuthorID:    authorID,
		AuthorRole:  identity.RoleDoctor,
		Title:       "Malaria season",
		Description: "When to seek care.",
		Image:       "https://cdn.example.com/malaria.jpg",
	})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(list))
	}
	if list[0].CreatedAt.Before(list[1].CreatedAt) {
		t.Fatalf("expected newest first")
	}

	got, err := svc.Get(ctx, second.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Image != "https://cdn.example.com/malaria.jpg" || got.AuthorID != authorID {
		t.Fatalf("unexpected article: %+v", got)
	}
}

func TestCreateRequiresDoctorRole(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	_, err := svc.Create(context.Background(), CreateInput{
		AuthorID:    uuid.NewString(),
		AuthorRole:  identity.RolePatient,
		Title:       "t",
		Description: "d",
	})
	if !errors.Is(err, ErrNotDoctor) {
		t.Fatalf("expected ErrNotDoctor, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	cases := []CreateInput{
		{AuthorID: uuid.NewString(), AuthorRole: identity.RoleDoctor, Description: "d"},
		{AuthorID: uuid.NewString(), AuthorRole: identity.RoleDoctor, Title: "t"},
		{AuthorID: "not-a-uuid", AuthorRole: identity.RoleDoctor, Title: "t", Description: "d"},
	}
	for i, input := range cases {
		if _, err := svc.Create(ctx, input); err == nil {
			t.Fatalf("case %d: expected rejection", i)
		}
	}
}

func TestGetAbsent(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	if _, err := svc.Get(context.Background(), uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
