package survey

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no survey matches the identifier.
var ErrNotFound = errors.New("survey not found")

// Repository persists surveys.
type Repository interface {
	Create(ctx context.Context, survey Survey) error
	Get(ctx context.Context, id string) (Survey, error)
	ListByUser(ctx context.Context, userID string) ([]Survey, error)
	Update(ctx context.Context, survey Survey) error
	Delete(ctx context.Context, id string) error
}

// PostgresRepository stores surveys in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const surveyColumns = `id, user_id, age, height, weight, blood_type, systolic, diastolic, current_symptoms, medications, created_at`

// Create inserts a survey record.
func (r *PostgresRepository) Create(ctx context.Context, s Survey) error {
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(s.UserID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO surveys (`+surveyColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		id, userID, s.Age, s.Height, s.Weight, s.BloodType,
		s.BloodPressure.Systolic, s.BloodPressure.Diastolic,
		s.CurrentSymptoms, s.Medications, s.CreatedAt.UTC())
	return err
}

// Get fetches a survey by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Survey, error) {
	surveyID, err := uuid.Parse(id)
	if err != nil {
		return Survey{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+surveyColumns+` FROM surveys WHERE id = $1`, surveyID)
	return scanSurvey(row)
}

// ListByUser returns the user's surveys, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Survey, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `SELECT `+surveyColumns+` FROM surveys
        WHERE user_id = $1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Survey
	for rows.Next() {
		s, err := scanSurvey(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update overwrites the survey's reported fields.
func (r *PostgresRepository) Update(ctx context.Context, s Survey) error {
	surveyID, err := uuid.Parse(s.ID)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE surveys SET age = $1, height = $2, weight = $3, blood_type = $4,
        systolic = $5, diastolic = $6, current_symptoms = $7, medications = $8 WHERE id = $9`,
		s.Age, s.Height, s.Weight, s.BloodType,
		s.BloodPressure.Systolic, s.BloodPressure.Diastolic,
		s.CurrentSymptoms, s.Medications, surveyID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a survey.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	surveyID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM surveys WHERE id = $1`, surveyID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSurvey(row pgx.Row) (Survey, error) {
	var (
		id        uuid.UUID
		userID    uuid.UUID
		s         Survey
		createdAt time.Time
	)
	if err := row.Scan(&id, &userID, &s.Age, &s.Height, &s.Weight, &s.BloodType,
		&s.BloodPressure.Systolic, &s.BloodPressure.Diastolic,
		&s.CurrentSymptoms, &s.Medications, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Survey{}, ErrNotFound
		}
		return Survey{}, err
	}
	s.ID = id.String()
	s.UserID = userID.String()
	s.CreatedAt = createdAt.UTC()
	return s, nil
}
