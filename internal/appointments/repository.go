package appointments

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no appointment matches the identifier.
var ErrNotFound = errors.New("appointment not found")

// Repository persists appointments.
type Repository interface {
	Create(ctx context.Context, appointment Appointment) error
	Get(ctx context.Context, id string) (Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

// PostgresRepository stores appointments in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an appointment record.
func (r *PostgresRepository) Create(ctx context.Context, a Appointment) error {
	id, err := uuid.Parse(a.ID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(a.UserID)
	if err != nil {
		return err
	}
	doctorID, err := uuid.Parse(a.DoctorID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO appointments (id, user_id, doctor_id, date, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`, id, userID, doctorID, a.Date.UTC(), a.Status, a.CreatedAt.UTC())
	return err
}

// Get fetches an appointment by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Appointment, error) {
	appointmentID, err := uuid.Parse(id)
	if err != nil {
		return Appointment{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, user_id, doctor_id, date, status, created_at
        FROM appointments WHERE id = $1`, appointmentID)
	return scanAppointment(row)
}

// ListByUser returns all appointments booked by a user, oldest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Appointment, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `SELECT id, user_id, doctor_id, date, status, created_at
        FROM appointments WHERE user_id = $1 ORDER BY date`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// UpdateStatus changes the appointment status.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) error {
	appointmentID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE appointments SET status = $1 WHERE id = $2`, status, appointmentID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an appointment.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	appointmentID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, appointmentID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAppointment(row pgx.Row) (Appointment, error) {
	var (
		id       uuid.UUID
		userID   uuid.UUID
		doctorID uuid.UUID
		a        Appointment
		date     time.Time
		created  time.Time
	)
	if err := row.Scan(&id, &userID, &doctorID, &date, &a.Status, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Appointment{}, ErrNotFound
		}
		return Appointment{}, err
	}
	a.ID = id.String()
	a.UserID = userID.String()
	a.DoctorID = doctorID.String()
	a.Date = date.UTC()
	a.CreatedAt = created.UTC()
	return a, nil
}
