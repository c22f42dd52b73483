package models

import (
	"time"
)

type Album struct {
	ID               uint       `json:"id"`
	CustomerID       uint       `json:"customer_id"`
	Name             string     `json:"name"`
	EventDate        string     `json:"event_date"`
	SelectedPhotoIDs []uint     `json:"selected_photo_ids"`
	ApprovedAt       *time.Time `json:"approved_at"`
	CreatedAt        time.Time  `json:"created_at"`
}

// IsSelected reports whether photoID is part of the album's current selection.
func (a *Album) IsSelected(photoID uint) bool {
	for _, id := range a.SelectedPhotoIDs {
		if id == photoID {
			return true
		}
	}

	return false
}
