package config

import (
	"pdf-library/internal/domain"
	"pdf-library/internal/repository"
	"pdf-library/internal/service"
	"pdf-library/pkg/logger"
)

// Container holds all application dependencies. The storage and
// metadata capabilities are injected through it rather than reached via
// a process-wide client, so services can be built against in-memory
// fakes in tests.
type Container struct {
	Config         domain.Config
	Logger         domain.Logger
	SupabaseClient domain.SupabaseClient
	FileRepository domain.FileRepository
	ObjectStore    domain.ObjectStore
	Renderer       domain.Renderer
	UploadService  *service.UploadService
	LibraryService *service.LibraryService
	ViewerService  *service.ViewerService
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	// Initialize Supabase client
	supabaseClient := repository.NewSupabaseClient(config, appLogger)
	if err := supabaseClient.Initialize(); err != nil {
		appLogger.Warn("Supabase client not initialized; storage and metadata calls will fail", "error", err)
	}

	// Initialize the injected capabilities
	fileRepo := repository.NewSupabaseFileRepository(supabaseClient, config.GetFilesTable(), appLogger)
	objectStore := repository.NewSupabaseObjectStore(supabaseClient, config.GetStorageBucket(), appLogger)
	renderer := service.NewFitzRenderer(appLogger)

	// Initialize services
	uploadService := service.NewUploadService(objectStore, fileRepo, appLogger, config.GetChunkSize(), config.GetMaxFileSize())
	libraryService := service.NewLibraryService(fileRepo, objectStore, appLogger)
	viewerService := service.NewViewerService(fileRepo, objectStore, renderer, appLogger, config.GetSignedURLTTL())

	return &Container{
		Config:         config,
		Logger:         appLogger,
		SupabaseClient: supabaseClient,
		FileRepository: fileRepo,
		ObjectStore:    objectStore,
		Renderer:       renderer,
		UploadService:  uploadService,
		LibraryService: libraryService,
		ViewerService:  viewerService,
	}
}
