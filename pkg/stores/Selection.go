package stores

import (
	"encoding/json"

	"github.com/lorenzwed/lorenzwed/pkg/models"
)

func encodeSelection(photoIDs []uint) (string, error) {
	if photoIDs == nil {
		photoIDs = []uint{}
	}

	b, err := json.Marshal(photoIDs)
	return string(b), err
}

// decodeSelection treats a missing or unreadable selection as empty.
func decodeSelection(raw string) []uint {
	result := []uint{}

	if raw == "" {
		return result
	}

	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return []uint{}
	}

	return result
}

/*
summarizeCustomers joins each customer with one representative album. An
approved album beats an unapproved one, a later approval beats an earlier
one, and remaining ties go to the most recently created album.
*/
func summarizeCustomers(customers []*models.Customer, albums []*models.Album) []*models.CustomerSummary {
	picked := map[uint]*models.Album{}

	for _, album := range albums {
		current, ok := picked[album.CustomerID]

		if !ok || betterSummaryAlbum(album, current) {
			picked[album.CustomerID] = album
		}
	}

	result := make([]*models.CustomerSummary, 0, len(customers))

	for _, c := range customers {
		summary := &models.CustomerSummary{
			ID:        c.ID,
			Username:  c.Username,
			Name:      c.Name,
			CreatedAt: c.CreatedAt,
		}

		if album, ok := picked[c.ID]; ok {
			id := album.ID
			name := album.Name

			summary.AlbumID = &id
			summary.AlbumName = &name
			summary.ApprovedAt = album.ApprovedAt
		}

		result = append(result, summary)
	}

	return result
}

func betterSummaryAlbum(candidate, current *models.Album) bool {
	switch {
	case candidate.ApprovedAt != nil && current.ApprovedAt == nil:
		return true

	case candidate.ApprovedAt == nil && current.ApprovedAt != nil:
		return false

	case candidate.ApprovedAt != nil && !candidate.ApprovedAt.Equal(*current.ApprovedAt):
		return candidate.ApprovedAt.After(*current.ApprovedAt)
	}

	return newerAlbum(candidate, current)
}

func newerAlbum(a, b *models.Album) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}

	return a.ID > b.ID
}
