package viewmodels

import (
	"time"

	"github.com/adampresley/adamgokit/slices"
	"github.com/lorenzwed/lorenzwed/pkg/models"
	"github.com/lorenzwed/lorenzwed/pkg/services"
)

type CreateCustomerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type CreateAlbumRequest struct {
	CustomerID any    `json:"customer_id"`
	Name       string `json:"name"`
	EventDate  string `json:"event_date"`
}

type AdminPhoto struct {
	ID           uint   `json:"id"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Filename     string `json:"filename"`
	SortOrder    int    `json:"sort_order"`
	Selected     bool   `json:"selected"`
}

type AdminAlbum struct {
	Album       *models.Album `json:"album"`
	Photos      []AdminPhoto  `json:"photos"`
	SelectedIDs []uint        `json:"selectedIds"`
	ApprovedAt  *time.Time    `json:"approvedAt"`
}

type UploadResponse struct {
	OK     bool         `json:"ok"`
	Count  int          `json:"count"`
	Photos []AdminPhoto `json:"photos"`
}

func NewAdminAlbum(review services.AlbumReview) AdminAlbum {
	result := AdminAlbum{
		Album: review.Album,
		Photos: slices.Map(review.Photos, func(p services.ReviewPhoto, index int) AdminPhoto {
			return newAdminPhoto(p.Photo, p.Selected)
		}),
		SelectedIDs: review.Album.SelectedPhotoIDs,
		ApprovedAt:  review.Album.ApprovedAt,
	}

	if result.Photos == nil {
		result.Photos = []AdminPhoto{}
	}

	if result.SelectedIDs == nil {
		result.SelectedIDs = []uint{}
	}

	return result
}

func NewUploadResponse(photos []*models.Photo) UploadResponse {
	return UploadResponse{
		OK:    true,
		Count: len(photos),
		Photos: slices.Map(photos, func(p *models.Photo, index int) AdminPhoto {
			return newAdminPhoto(p, false)
		}),
	}
}

func newAdminPhoto(p *models.Photo, selected bool) AdminPhoto {
	return AdminPhoto{
		ID:           p.ID,
		URL:          PhotoURL(p.AlbumID, p.Filename),
		ThumbnailURL: ThumbnailURL(p.AlbumID, p.Filename),
		Filename:     p.Filename,
		SortOrder:    p.SortOrder,
		Selected:     selected,
	}
}
