package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCreateAndList(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	userID := uuid.NewString()
	doctorID := uuid.NewString()

	later := time.Now().Add(48 * time.Hour)
	a, err := svc.Create(ctx, CreateInput{UserID: userID, DoctorID: doctorID, Date: later})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Status != StatusPending {
		t.Fatalf("expected pending, got %s", a.Status)
	}

	sooner := time.Now().Add(24 * time.Hour)
	if _, err := svc.Create(ctx, CreateInput{UserID: userID, DoctorID: doctorID, Date: sooner}); err != nil {
		t.Fatalf("create second: %v", err)
	}

	list, err := svc.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(list))
	}
	if !list[0].Date.Before(list[1].Date) {
		t.Fatalf("expected appointments ordered by date")
	}
}

func TestOwnershipEnforced(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	owner := uuid.NewString()
	a, err := svc.Create(ctx, CreateInput{UserID: owner, DoctorID: uuid.NewString(), Date: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(ctx, uuid.NewString(), a.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := svc.Delete(ctx, uuid.NewString(), a.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner on delete, got %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	owner := uuid.NewString()
	a, err := svc.Create(ctx, CreateInput{UserID: owner, DoctorID: uuid.NewString(), Date: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, owner, a.ID, StatusConfirmed)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != StatusConfirmed {
		t.Fatalf("expected confirmed, got %s", updated.Status)
	}

	if _, err := svc.UpdateStatus(ctx, owner, a.ID, "rescheduled"); err == nil {
		t.Fatalf("expected unknown status rejection")
	}
}
