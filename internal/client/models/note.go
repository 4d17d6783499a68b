// Package models holds the client-side representation of server objects.
package models

import "time"

// Note mirrors the JSON shape the server returns for a note.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
