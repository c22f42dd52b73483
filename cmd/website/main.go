package main

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/adampresley/adamgokit/awsconfig"
	"github.com/adampresley/adamgokit/httphelpers"
	"github.com/adampresley/adamgokit/mux"
	"github.com/adampresley/adamgokit/retrier"
	"github.com/adampresley/adamgokit/s3"
	"github.com/joho/godotenv"
	"github.com/lorenzwed/lorenzwed/cmd/website/internal/configuration"
	"github.com/lorenzwed/lorenzwed/pkg/filestorage"
	"github.com/lorenzwed/lorenzwed/pkg/identity"
	"github.com/lorenzwed/lorenzwed/pkg/services"
	"github.com/lorenzwed/lorenzwed/pkg/stores"
)

var (
	Version string = "development"
	appName string = "lorenzwed"

	//go:embed defaults
	defaultsFS embed.FS

	config configuration.Config
)

func main() {
	var (
		err      error
		store    stores.Storer
		defaults fs.FS
	)

	_ = godotenv.Load()

	config = configuration.LoadConfig()
	setupLogger(&config, Version)

	backendConfig := stores.BackendConfig{
		DSN:         config.DSN,
		DatabaseURL: config.DatabaseURL,
	}

	slog.Info("configuration loaded",
		slog.String("app", appName),
		slog.String("version", Version),
		slog.String("loglevel", config.LogLevel),
		slog.String("host", config.Host),
		slog.String("backend", string(stores.SelectBackend(backendConfig))),
		slog.Bool("objectStorage", config.UseObjectStorage()),
		slog.Bool("readOnlyFS", config.ReadOnlyFS),
	)

	if config.AdminSecret == "" {
		slog.Warn("ADMIN_SECRET is not set. admin routes will reject every request")
	}

	if config.SessionSecret == "password" {
		slog.Warn("SESSION_SECRET is the default value. set it before deploying")
	}

	slog.Debug("setting up...")

	if !config.ReadOnlyFS {
		for _, dir := range []string{config.DataDir, config.UploadsDir} {
			if err = os.MkdirAll(dir, 0o755); err != nil {
				slog.Error("could not create directory", "dir", dir, "error", err)
			}
		}
	}

	/*
	 * Setup the store. The backend is fixed for the life of the process.
	 */
	retrier.Retry(func() error {
		if store, err = stores.NewStore(backendConfig); err != nil {
			slog.Error("failed to connect to the database. trying again", "error", err)
			return err
		}

		return nil
	})

	if err != nil {
		panic(err)
	}

	if defaults, err = fs.Sub(defaultsFS, "defaults"); err != nil {
		panic(err)
	}

	deps := dependencies{
		AdminSecret:       config.AdminSecret,
		AllowBearerTokens: config.AllowBearerTokens,
		CookieSecure:      config.CookieSecure,
		Defaults:          defaults,
		MaxUploadBytes:    int64(max(config.MaxUploadMB, 0)) << 20,
		MaxUploadWorkers:  config.MaxUploadWorkers,
		Notifier: services.NewNotifier(services.EmailNotifierConfig{
			ApiKey:      config.EmailApiKey,
			NotifyEmail: config.NotifyEmail,
			FromName:    config.FromName,
			FromEmail:   config.FromEmail,
		}),
		Signer:        newSigner(),
		Store:         store,
		ThumbnailSize: uint(max(config.ThumbnailSize, 0)),
	}

	setupFileStorage(&deps)

	/*
	 * Setup router and http server
	 */
	slog.Debug("setting up routes...")

	routerConfig := mux.RouterConfig{
		Address:          config.Host,
		Debug:            Version == "development",
		HttpWriteTimeout: 300,
	}

	m := mux.SetupRouter(routerConfig, buildRoutes(deps))
	httpServer, quit := mux.SetupServer(routerConfig, m)

	/*
	 * Wait for graceful shutdown
	 */
	slog.Info("server started")

	<-quit

	mux.Shutdown(httpServer)
	slog.Info("server stopped")
}

func heartbeat(w http.ResponseWriter, r *http.Request) {
	httphelpers.TextOK(w, "OK")
}

func newSigner() identity.Signer {
	if config.SessionSigner == "jwt" {
		return identity.NewJWTSigner(identity.JWTSignerConfig{
			Secret: config.SessionSecret,
			TTL:    identity.SessionTTL,
		})
	}

	return identity.NewSecureCookieSigner(identity.SecureCookieSignerConfig{
		Secret: config.SessionSecret,
		TTL:    identity.SessionTTL,
	})
}

/*
setupFileStorage puts photos and documents in S3 when the hosted backend has
a bucket, otherwise on the local filesystem.
*/
func setupFileStorage(deps *dependencies) {
	var (
		err      error
		s3Client s3.S3Client
	)

	if !config.UseObjectStorage() {
		deps.PhotoStorage = filestorage.NewLocalStorage(filestorage.LocalStorageConfig{
			Root:     config.UploadsDir,
			ReadOnly: config.ReadOnlyFS,
		})

		deps.DocumentStorage = filestorage.NewLocalStorage(filestorage.LocalStorageConfig{
			Root:     config.DataDir,
			ReadOnly: config.ReadOnlyFS,
		})

		return
	}

	awsConfig := &awsconfig.Config{
		Endpoint:        config.AwsEndpointUrl,
		Region:          config.AwsRegion,
		AccessKeyID:     config.AwsAccessKeyId,
		SecretAccessKey: config.AwsSecretAccessKey,
	}

	retrier.Retry(func() error {
		if err = awsConfig.Load(); err != nil {
			slog.Error("failed to load AWS config. trying again", "error", err)
			return err
		}

		return nil
	})

	if err != nil {
		panic(err)
	}

	if s3Client, err = s3.NewClient(awsConfig); err != nil {
		panic(err)
	}

	storage := filestorage.NewS3Storage(filestorage.S3StorageConfig{
		Bucket:   config.AwsBucket,
		S3Client: s3Client,
	})

	deps.PhotoStorage = storage
	deps.DocumentStorage = storage
	deps.DocumentPrefix = config.SiteDataPrefix
}
