package articles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gilberthappi/keya-health-be/internal/identity"
)

// ErrNotDoctor indicates the caller is not allowed to publish articles.
var ErrNotDoctor = errors.New("only doctors may publish articles")

// Service exposes article publishing operations.
type Service struct {
	repo Repository
}

// NewService builds an article service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures a new article submission.
type CreateInput struct {
	AuthorID    string
	AuthorRole  string
	Title       string
	Description string
	Image       string
}

// Create publishes a new article. Only doctor accounts may publish.
func (s *Service) Create(ctx context.Context, input CreateInput) (Article, error) {
	if input.AuthorRole != identity.RoleDoctor {
		return Article{}, ErrNotDoctor
	}
	if _, err := uuid.Parse(input.AuthorID); err != nil {
		return Article{}, fmt.Errorf("invalid author id")
	}
	if input.Title == "" {
		return Article{}, fmt.Errorf("title is required")
	}
	if input.Description == "" {
		return Article{}, fmt.Errorf("description is required")
	}

	a := Article{
		ID:          uuid.New().String(),
		AuthorID:    input.AuthorID,
		Title:       input.Title,
		Description: input.Description,
		Image:       input.Image,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Article{}, err
	}
	return a, nil
}

// List returns all published articles, newest first.
func (s *Service) List(ctx context.Context) ([]Article, error) {
	return s.repo.List(ctx)
}

// Get fetches a single article.
func (s *Service) Get(ctx context.Context, id string) (Article, error) {
	return s.repo.Get(ctx, id)
}
