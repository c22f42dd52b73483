package viewmodels

import (
	"time"

	"github.com/lorenzwed/lorenzwed/pkg/models"
	"github.com/lorenzwed/lorenzwed/pkg/services"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CustomerInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type LoginResponse struct {
	OK       bool         `json:"ok"`
	Customer CustomerInfo `json:"customer"`
}

type SelectionRequest struct {
	PhotoIDs []any `json:"photoIds"`
}

type CustomerPhoto struct {
	ID           uint   `json:"id"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Filename     string `json:"filename"`
}

type AlbumInfo struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	EventDate string `json:"event_date"`
}

type CustomerAlbum struct {
	Album       *AlbumInfo      `json:"album"`
	Photos      []CustomerPhoto `json:"photos"`
	SelectedIDs []uint          `json:"selectedIds"`
	ApprovedAt  *time.Time      `json:"approvedAt"`
}

func NewCustomerInfo(customer *models.Customer) CustomerInfo {
	return CustomerInfo{
		ID:       customer.ID,
		Username: customer.Username,
		Name:     customer.Name,
	}
}

func NewCustomerAlbum(view services.CustomerAlbum) CustomerAlbum {
	result := CustomerAlbum{
		Photos:      make([]CustomerPhoto, 0, len(view.Photos)),
		SelectedIDs: view.SelectedIDs,
		ApprovedAt:  view.ApprovedAt,
	}

	if view.Album != nil {
		result.Album = &AlbumInfo{
			ID:        view.Album.ID,
			Name:      view.Album.Name,
			EventDate: view.Album.EventDate,
		}
	}

	if result.SelectedIDs == nil {
		result.SelectedIDs = []uint{}
	}

	for _, p := range view.Photos {
		result.Photos = append(result.Photos, CustomerPhoto{
			ID:           p.ID,
			URL:          PhotoURL(p.AlbumID, p.Filename),
			ThumbnailURL: ThumbnailURL(p.AlbumID, p.Filename),
			Filename:     p.Filename,
		})
	}

	return result
}
