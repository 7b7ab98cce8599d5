package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotOwner indicates the caller does not own the appointment.
var ErrNotOwner = errors.New("not owner of appointment")

// Service exposes appointment booking operations.
type Service struct {
	repo Repository
}

// NewService builds an appointment service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures data required to book an appointment.
type CreateInput struct {
	UserID   string
	DoctorID string
	Date     time.Time
}

// Create books a pending appointment with a doctor.
func (s *Service) Create(ctx context.Context, input CreateInput) (Appointment, error) {
	if _, err := uuid.Parse(input.UserID); err != nil {
		return Appointment{}, fmt.Errorf("invalid user id")
	}
	if _, err := uuid.Parse(input.DoctorID); err != nil {
		return Appointment{}, fmt.Errorf("invalid doctor id")
	}
	if input.Date.IsZero() {
		return Appointment{}, fmt.Errorf("date is required")
	}

	a := Appointment{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		DoctorID:  input.DoctorID,
		Date:      input.Date.UTC(),
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

// ListByUser returns the caller's appointments.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Appointment, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get fetches a single appointment, enforcing ownership.
func (s *Service) Get(ctx context.Context, userID, id string) (Appointment, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	if a.UserID != userID {
		return Appointment{}, ErrNotOwner
	}
	return a, nil
}

// UpdateStatus transitions an appointment the caller owns.
func (s *Service) UpdateStatus(ctx context.Context, userID, id, status string) (Appointment, error) {
	switch status {
	case StatusPending, StatusConfirmed, StatusCancelled:
	default:
		return Appointment{}, fmt.Errorf("unknown status %q", status)
	}

	a, err := s.Get(ctx, userID, id)
	if err != nil {
		return Appointment{}, err
	}
	if err := s.repo.UpdateStatus(ctx, a.ID, status); err != nil {
		return Appointment{}, err
	}
	a.Status = status
	return a, nil
}

// Delete removes an appointment the caller owns.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
