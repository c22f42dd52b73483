package content

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/lorenzwed/lorenzwed/cmd/website/internal/respond"
	"github.com/lorenzwed/lorenzwed/cmd/website/internal/viewmodels"
	"github.com/lorenzwed/lorenzwed/pkg/filestorage"
	"github.com/lorenzwed/lorenzwed/pkg/models"
	"github.com/lorenzwed/lorenzwed/pkg/services"
)

type ContentControllerConfig struct {
	ContentService services.ContentServicer
	Storage        filestorage.FileStorer
}

type ContentController struct {
	contentService services.ContentServicer
	storage        filestorage.FileStorer
}

func NewContentController(config ContentControllerConfig) ContentController {
	return ContentController{
		contentService: config.ContentService,
		storage:        config.Storage,
	}
}

/*
GET /api/data/{filename}
*/
func (c ContentController) GetDocument(w http.ResponseWriter, r *http.Request) {
	b, err := c.contentService.Get(r.Context(), r.PathValue("filename"))

	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(b)
}

/*
GET /uploads/albums/{albumId}/{filename}
*/
func (c ContentController) ServePhoto(w http.ResponseWriter, r *http.Request) {
	albumID, ok := viewmodels.GetIDFromPath(r, "albumId")

	if !ok {
		respond.Error(w, r, models.NewUserError(models.ErrNotFound, "file not found"))
		return
	}

	c.serve(w, r, filestorage.PhotoKey(albumID, filepath.Base(r.PathValue("filename"))))
}

/*
GET /uploads/albums/{albumId}/thumbnails/{filename}
*/
func (c ContentController) ServeThumbnail(w http.ResponseWriter, r *http.Request) {
	albumID, ok := viewmodels.GetIDFromPath(r, "albumId")

	if !ok {
		respond.Error(w, r, models.NewUserError(models.ErrNotFound, "file not found"))
		return
	}

	c.serve(w, r, filestorage.ThumbnailKey(albumID, filepath.Base(r.PathValue("filename"))))
}

func (c ContentController) serve(w http.ResponseWriter, r *http.Request, key string) {
	if filepath.Base(key) == "." || filepath.Base(key) == ".." {
		respond.Error(w, r, models.NewUserError(models.ErrNotFound, "file not found"))
		return
	}

	object, err := c.storage.Get(r.Context(), key)

	if err != nil {
		respond.Error(w, r, err)
		return
	}

	defer object.Body.Close()

	w.Header().Set("Content-Type", object.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")

	if object.Size > 0 {
		w.Header().Set("Content-Length", fmt.Sprintf("%d", object.Size))
	}

	_, _ = io.Copy(w, object.Body)
}
