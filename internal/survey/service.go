package survey

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotOwner indicates the caller does not own the survey.
var ErrNotOwner = errors.New("not owner of survey")

// Service exposes health survey operations.
type Service struct {
	repo Repository
}

// NewService builds a survey service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Input captures the reported fields of a survey.
type Input struct {
	Age             string
	Height          string
	Weight          string
	BloodType       string
	Systolic        string
	Diastolic       string
	CurrentSymptoms string
	Medications     string
}

// Create records a new survey submission for the user.
func (s *Service) Create(ctx context.Context, userID string, input Input) (Survey, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return Survey{}, fmt.Errorf("invalid user id")
	}

	record := Survey{
		ID:              uuid.New().String(),
		UserID:          userID,
		Age:             input.Age,
		Height:          input.Height,
		Weight:          input.Weight,
		BloodType:       input.BloodType,
		BloodPressure:   BloodPressure{Systolic: input.Systolic, Diastolic: input.Diastolic},
		CurrentSymptoms: input.CurrentSymptoms,
		Medications:     input.Medications,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return Survey{}, err
	}
	return record, nil
}

// ListByUser returns the user's submissions, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Survey, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get fetches a single survey, enforcing ownership.
func (s *Service) Get(ctx context.Context, userID, id string) (Survey, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return Survey{}, err
	}
	if record.UserID != userID {
		return Survey{}, ErrNotOwner
	}
	return record, nil
}

// Update overwrites the reported fields of a survey the caller owns.
func (s *Service) Update(ctx context.Context, userID, id string, input Input) (Survey, error) {
	record, err := s.Get(ctx, userID, id)
	if err != nil {
		return Survey{}, err
	}

	record.Age = input.Age
	record.Height = input.Height
	record.Weight = input.Weight
	record.BloodType = input.BloodType
	record.BloodPressure = BloodPressure{Systolic: input.Systolic, Diastolic: input.Diastolic}
	record.CurrentSymptoms = input.CurrentSymptoms
	record.Medications = input.Medications

	if err := s.repo.Update(ctx, record); err != nil {
		return Survey{}, err
	}
	return record, nil
}

// Delete removes a survey the caller owns.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
