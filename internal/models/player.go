package models

import "time"

// Player is a roster member who receives game invitations.
type Player struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// PlayerInput is one entry of a registration request.
type PlayerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RegisterResult counts the outcome of a batch registration.
type RegisterResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}
