package models

import (
	"time"
)

type Customer struct {
	ID           uint      `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

/*
CustomerSummary is one row of the admin customer listing: the customer joined
with a single album picked to represent them. Album fields are nil when the
customer has no albums.
*/
type CustomerSummary struct {
	ID         uint       `json:"id"`
	Username   string     `json:"username"`
	Name       string     `json:"name"`
	CreatedAt  time.Time  `json:"created_at"`
	AlbumID    *uint      `json:"album_id"`
	AlbumName  *string    `json:"album_name"`
	ApprovedAt *time.Time `json:"approved_at"`
}
