package articles

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no article matches the identifier.
var ErrNotFound = errors.New("article not found")

// Repository persists articles.
type Repository interface {
	Create(ctx context.Context, article Article) error
	Get(ctx context.Context, id string) (Article, error)
	List(ctx context.Context) ([]Article, error)
}

// PostgresRepository stores articles in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an article record.
func (r *PostgresRepository) Create(ctx context.Context, a Article) error {
	id, err := uuid.Parse(a.ID)
	if err != nil {
		return err
	}
	authorID, err := uuid.Parse(a.AuthorID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO articles (id, author_id, title, description, image, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`, id, authorID, a.Title, a.Description, a.Image, a.CreatedAt.UTC())
	return err
}

// Get fetches an article by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Article, error) {
	articleID, err := uuid.Parse(id)
	if err != nil {
		return Article{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, author_id, title, description, image, created_at
        FROM articles WHERE id = $1`, articleID)
	return scanArticle(row)
}

// List returns all published articles, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]Article, error) {
	rows, err := r.db.Query(ctx, `SELECT id, author_id, title, description, image, created_at
        FROM articles ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanArticle(row pgx.Row) (Article, error) {
	var (
		id        uuid.UUID
		authorID  uuid.UUID
		a         Article
		createdAt time.Time
	)
	if err := row.Scan(&id, &authorID, &a.Title, &a.Description, &a.Image, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Article{}, ErrNotFound
		}
		return Article{}, err
	}
	a.ID = id.String()
	a.AuthorID = authorID.String()
	a.CreatedAt = createdAt.UTC()
	return a, nil
}
