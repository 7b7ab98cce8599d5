package articles

import "time"

// Article is a health article published for patients to read.
type Article struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"author"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
