package model

import "time"

// User represents a user in the system. Users are created lazily on
// their first generation request and carry no authentication secret.
type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
