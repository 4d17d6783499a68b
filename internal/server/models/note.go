package models

import "time"

// StatusPending is the initial status assigned to new notes. Status is stored
// as a free string; "pending" is the only value the server itself assigns.
const StatusPending = "pending"

type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteUpdate carries a partial update: nil fields keep their stored value.
type NoteUpdate struct {
	Title   *string
	Content *string
	Status  *string
}
