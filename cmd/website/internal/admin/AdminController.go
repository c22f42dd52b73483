package admin

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/lorenzwed/lorenzwed/cmd/website/internal/metrics"
	"github.com/lorenzwed/lorenzwed/cmd/website/internal/respond"
	"github.com/lorenzwed/lorenzwed/cmd/website/internal/viewmodels"
	"github.com/lorenzwed/lorenzwed/pkg/models"
	"github.com/lorenzwed/lorenzwed/pkg/services"
)

const (
	maxUploadMemory       = 32 << 20
	defaultMaxUploadBytes = 1 << 30
	maxDocumentSize       = 5 << 20
)

type AdminControllerConfig struct {
	ContentService      services.ContentServicer
	DirectoryService    services.AdminDirectoryServicer
	MaxUploadBytes      int64
	PhotoIngestService  services.PhotoIngestServicer
	SelectionZipService services.SelectionZipServicer
}

type AdminController struct {
	contentService      services.ContentServicer
	directoryService    services.AdminDirectoryServicer
	maxUploadBytes      int64
	photoIngestService  services.PhotoIngestServicer
	selectionZipService services.SelectionZipServicer
}

func NewAdminController(config AdminControllerConfig) AdminController {
	maxUploadBytes := config.MaxUploadBytes

	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}

	return AdminController{
		contentService:      config.ContentService,
		directoryService:    config.DirectoryService,
		maxUploadBytes:      maxUploadBytes,
		photoIngestService:  config.PhotoIngestService,
		selectionZipService: config.SelectionZipService,
	}
}

/*
GET /api/admin/customers
*/
func (c AdminController) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := c.directoryService.ListCustomers(r.Context())

	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, customers)
}

/*
POST /api/admin/customers
*/
func (c AdminController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var (
		err  error
		body viewmodels.CreateCustomerRequest
		id   uint
	)

	if err = httphelpers.ReadJSONBody(r, &body); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	if id, err = c.directoryService.CreateCustomer(r.Context(), body.Username, body.Password, body.Name); err != nil {
		respond.Error(w, r, err)
		return
	}

	slog.Info("customer created", "customerID", id)
	respond.OK(w, viewmodels.CreatedResponse{OK: true, ID: id})
}

/*
POST /api/admin/albums
*/
func (c AdminController) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	var (
		err  error
		body viewmodels.CreateAlbumRequest
		id   uint
	)

	if err = httphelpers.ReadJSONBody(r, &body); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}

	customerID, ok := services.ParseID(body.CustomerID)

	if !ok {
		respond.BadRequest(w, "customer_id is required")
		return
	}

	if id, err = c.directoryService.CreateAlbum(r.Context(), customerID, body.Name, body.EventDate); err != nil {
		respond.Error(w, r, err)
		return
	}

	slog.Info("album created", "albumID", id, "customerID", customerID)
	respond.OK(w, viewmodels.CreatedResponse{OK: true, ID: id})
}

/*
GET /api/admin/albums?customer_id=
*/
func (c AdminController) ListAlbums(w http.ResponseWriter, r *http.Request) {
	customerID := httphelpers.GetFromRequest[uint](r, "customer_id")
	albums, err := c.directoryService.ListAlbums(r.Context(), customerID)

	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, albums)
}

/*
GET /api/admin/albums/{id}
*/
func (c AdminController) GetAlbum(w http.ResponseWriter, r *http.Request) {
	albumID, ok := viewmodels.GetIDFromPath(r, "id")

	if !ok {
		respond.BadRequest(w, "invalid album id")
		return
	}

	review, err := c.directoryService.GetAlbumReview(r.Context(), albumID)

	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.OK(w, viewmodels.NewAdminAlbum(review))
}

/*
POST /api/admin/albums/{id}/photos
*/
func (c AdminController) UploadPhotos(w http.ResponseWriter, r *http.Request) {
	var (
		err    error
		photos []*models.Photo
	)

	var maxBytesErr *http.MaxBytesError

	r.Body = http.MaxBytesReader(w, r.Body, c.maxUploadBytes)
	albumID, ok := viewmodels.GetIDFromPath(r, "id")

	if !ok {
		respond.BadRequest(w, "invalid album id")
		return
	}

	if err = r.ParseMultipartForm(maxUploadMemory); err != nil {
		if errors.As(err, &maxBytesErr) {
			respond.JSON(w, http.StatusRequestEntityTooLarge, respond.ErrorResponse{
				Error: fmt.Sprintf("upload exceeds the %d MB limit", c.maxUploadBytes>>20),
			})
			return
		}

		respond.BadRequest(w, "expected a multipart upload with one or more 'photos' files")
		return
	}

	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	uploads := make([]services.PhotoUpload, 0, len(r.MultipartForm.File["photos"]))

	for _, fh := range r.MultipartForm.File["photos"] {
		uploads = append(uploads, services.PhotoUpload{
			OriginalName: fh.Filename,
			Open:         openerFor(fh),
		})
	}

	if photos, err = c.photoIngestService.Upload(r.Context(), albumID, uploads); err != nil {
		respond.Error(w, r, err)
		return
	}

	metrics.RecordUploadedPhotos(len(photos))
	respond.OK(w, viewmodels.NewUploadResponse(photos))
}

/*
GET /api/admin/albums/{id}/selection.zip
*/
func (c AdminController) DownloadSelection(w http.ResponseWriter, r *http.Request) {
	albumID, ok := viewmodels.GetIDFromPath(r, "id")

	if !ok {
		respond.BadRequest(w, "invalid album id")
		return
	}

	export, err := c.selectionZipService.PrepareSelection(r.Context(), albumID)

	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))

	if err = c.selectionZipService.WriteZip(r.Context(), export, w); err != nil {
		slog.Error("error streaming selection zip", "albumID", albumID, "error", err)
	}
}

/*
SaveDocument handles POST /api/save-{name} for one of the site JSON
documents.
*/
func (c AdminController) SaveDocument(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentSize))

		if err != nil {
			respond.BadRequest(w, "could not read request body")
			return
		}

		if err = c.contentService.Save(r.Context(), name, body); err != nil {
			respond.Error(w, r, err)
			return
		}

		slog.Info("site document saved", "document", name)
		respond.OK(w, viewmodels.OKResponse{OK: true})
	}
}

func openerFor(fh *multipart.FileHeader) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return fh.Open()
	}
}
