package appointments

import "time"

const (
	// StatusPending is the initial state of a booked appointment.
	StatusPending = "pending"
	// StatusConfirmed means the doctor accepted the booking.
	StatusConfirmed = "confirmed"
	// StatusCancelled means either party cancelled.
	StatusCancelled = "cancelled"
)

// Appointment is a patient booking with a doctor.
type Appointment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	DoctorID  string    `json:"doctor"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
