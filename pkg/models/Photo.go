package models

import (
	"time"
)

type Photo struct {
	ID          uint      `json:"id" db:"id"`
	AlbumID     uint      `json:"album_id" db:"album_id"`
	StoragePath string    `json:"path" db:"path"`
	Filename    string    `json:"filename" db:"filename"`
	SortOrder   int       `json:"sort_order" db:"sort_order"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
