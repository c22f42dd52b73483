package main

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/adampresley/adamgokit/mux"
	"github.com/lorenzwed/lorenzwed/cmd/website/internal/admin"
	"github.com/lorenzwed/lorenzwed/cmd/website/internal/content"
	"github.com/lorenzwed/lorenzwed/cmd/website/internal/customerportal"
	"github.com/lorenzwed/lorenzwed/cmd/website/internal/metrics"
	"github.com/lorenzwed/lorenzwed/pkg/filestorage"
	"github.com/lorenzwed/lorenzwed/pkg/identity"
	"github.com/lorenzwed/lorenzwed/pkg/services"
	"github.com/lorenzwed/lorenzwed/pkg/stores"
)

/*
dependencies are the boot-time choices every route is built from: the
store, the byte storage for photos and documents, and the session signer.
*/
type dependencies struct {
	AdminSecret       string
	AllowBearerTokens bool
	CookieSecure      bool
	Defaults          fs.FS
	DocumentPrefix    string
	DocumentStorage   filestorage.FileStorer
	MaxUploadBytes    int64
	MaxUploadWorkers  int
	Notifier          services.Notifier
	PhotoStorage      filestorage.FileStorer
	Signer            identity.Signer
	Store             stores.Storer
	ThumbnailSize     uint
}

func buildRoutes(deps dependencies) []mux.Route {
	/*
	 * Setup services
	 */
	authService := services.NewAuthService(services.AuthServiceConfig{
		Signer: deps.Signer,
		Store:  deps.Store,
	})

	workflowService := services.NewAlbumWorkflowService(services.AlbumWorkflowServiceConfig{
		Notifier: deps.Notifier,
		Store:    deps.Store,
	})

	directoryService := services.NewAdminDirectoryService(services.AdminDirectoryServiceConfig{
		Store: deps.Store,
	})

	contentService := services.NewContentService(services.ContentServiceConfig{
		Defaults: deps.Defaults,
		Prefix:   deps.DocumentPrefix,
		Storage:  deps.DocumentStorage,
	})

	photoIngestService := services.NewPhotoIngestService(services.PhotoIngestServiceConfig{
		MaxWorkers:    deps.MaxUploadWorkers,
		Storage:       deps.PhotoStorage,
		Store:         deps.Store,
		ThumbnailSize: deps.ThumbnailSize,
	})

	selectionZipService := services.NewSelectionZipService(services.SelectionZipServiceConfig{
		Storage: deps.PhotoStorage,
		Store:   deps.Store,
	})

	/*
	 * Setup controllers
	 */
	customerPortalController := customerportal.NewCustomerPortalController(customerportal.CustomerPortalControllerConfig{
		AuthService:     authService,
		CookieSecure:    deps.CookieSecure,
		WorkflowService: workflowService,
	})

	adminController := admin.NewAdminController(admin.AdminControllerConfig{
		ContentService:      contentService,
		DirectoryService:    directoryService,
		MaxUploadBytes:      deps.MaxUploadBytes,
		PhotoIngestService:  photoIngestService,
		SelectionZipService: selectionZipService,
	})

	contentController := content.NewContentController(content.ContentControllerConfig{
		ContentService: contentService,
		Storage:        deps.PhotoStorage,
	})

	customerSession := newCustomerSessionMiddleware(authService, deps.AllowBearerTokens)
	adminSecret := newAdminSecretMiddleware(deps.AdminSecret)

	routes := []mux.Route{
		route("GET /heartbeat", heartbeat),
		route("GET /metrics", metrics.Handler().ServeHTTP),

		route("GET /api/data/{filename}", contentController.GetDocument),
		route("GET /uploads/albums/{albumId}/{filename}", contentController.ServePhoto),
		route("GET /uploads/albums/{albumId}/thumbnails/{filename}", contentController.ServeThumbnail),

		route("POST /api/customer-login", customerPortalController.LoginAction),
		route("POST /api/customer-logout", customerPortalController.LogoutAction),
		route("GET /api/customer/me", customerPortalController.Me, customerSession),
		route("GET /api/customer/album", customerPortalController.Album, customerSession),
		route("PUT /api/customer/selection", customerPortalController.SaveSelection, customerSession),
		route("POST /api/customer/approve", customerPortalController.Approve, customerSession),

		route("GET /api/admin/customers", adminController.ListCustomers, adminSecret),
		route("POST /api/admin/customers", adminController.CreateCustomer, adminSecret),
		route("POST /api/admin/albums", adminController.CreateAlbum, adminSecret),
		route("GET /api/admin/albums", adminController.ListAlbums, adminSecret),
		route("GET /api/admin/albums/{id}", adminController.GetAlbum, adminSecret),
		route("POST /api/admin/albums/{id}/photos", adminController.UploadPhotos, adminSecret),
		route("GET /api/admin/albums/{id}/selection.zip", adminController.DownloadSelection, adminSecret),
	}

	for _, doc := range services.ContentDocuments {
		routes = append(routes, route(fmt.Sprintf("POST /api/save-%s", doc), adminController.SaveDocument(doc), adminSecret))
	}

	return routes
}

// route instruments a handler under its own pattern ahead of any other middleware.
func route(path string, handler http.HandlerFunc, middlewares ...mux.MiddlewareFunc) mux.Route {
	return mux.Route{
		Path:        path,
		HandlerFunc: handler,
		Middlewares: append([]mux.MiddlewareFunc{metrics.Instrument(path)}, middlewares...),
	}
}
