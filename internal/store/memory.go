// Package store provides SQLite-backed persistence for memory records.
package store

import "time"

// Memory is a single stored memory record.
type Memory struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MemoryRef is the lightweight projection returned by List.
type MemoryRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Patch describes a partial update. Nil fields are left untouched.
type Patch struct {
	Title   *string
	Content *string
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Title == nil && p.Content == nil
}
