package model

import "time"

// Note is a free-form study note. Tags is a comma-separated convention
// and is matched by substring only.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tags      *string   `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteDetail is a note together with every task linked to it.
type NoteDetail struct {
	Note  Note   `json:"item"`
	Tasks []Task `json:"tasks"`
}
