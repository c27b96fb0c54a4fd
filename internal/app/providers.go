package app

import (
	"context"
	"time"

	"github.com/google/wire"
	"go.uber.org/zap"

	"scribe/internal/api/server"
	v1routes "scribe/internal/api/v1/routes"
	"scribe/internal/api/v1/services"
	"scribe/internal/app/api/provider"
	"scribe/internal/app/api/transcribe"
	"scribe/internal/app/form"
	"scribe/internal/app/metrics"
	"scribe/internal/app/repository"
	"scribe/internal/app/repository/pg"
	"scribe/internal/app/repository/sqlite"
	"scribe/internal/app/storage/archive"
	"scribe/internal/config"
)

// RepositorySet opens the configured history store
var RepositorySet = wire.NewSet(provideTranscriptionDAO)

// ServiceSet builds everything behind the HTTP handlers
var ServiceSet = wire.NewSet(
	RepositorySet,
	provideTranscriber,
	provideArchiver,
	metrics.New,
	provideTranscriptionService,
	provideExportService,
	provideServiceContainer,
	provideServerConfig,
	server.NewServer,
)

// FormSet builds the submitting side for one-shot CLI use; nothing would serve a metrics registry
// there, so no recorder is attached
var FormSet = wire.NewSet(
	provideTranscribeClient,
	wire.Bind(new(form.Transcriber), new(*transcribe.Client)),
	provideFormHandler,
)

// provideTranscriptionDAO uses Postgres when a database URL is configured and SQLite otherwise
func provideTranscriptionDAO(ctx context.Context, settings *config.Settings) (repository.TranscriptionDAO, func(), error) {
	var (
		dao repository.TranscriptionDAO
		err error
	)
	if settings.Database.URL != "" {
		dao, err = pg.NewPostgresDB(ctx, settings.Database.URL)
	} else {
		dao, err = sqlite.NewSQLiteDB(ctx, settings.Database.Path)
	}
	if err != nil {
		return nil, nil, err
	}
	return dao, func() { dao.Close() }, nil
}

func provideTranscriber(settings *config.Settings, logger *zap.Logger) (provider.Transcriber, error) {
	if err := settings.RequireProviderKey(); err != nil {
		return nil, err
	}
	return provider.New(settings.Provider, logger)
}

func provideArchiver(ctx context.Context, settings *config.Settings, logger *zap.Logger) (archive.Archiver, error) {
	if !settings.Archive.Enabled() {
		return archive.NopArchiver{}, nil
	}
	return archive.NewMinioArchiver(ctx, settings.Archive, logger)
}

func provideTranscriptionService(
	transcriber provider.Transcriber,
	dao repository.TranscriptionDAO,
	archiver archive.Archiver,
	m *metrics.Metrics,
	logger *zap.Logger,
) *services.TranscriptionServiceImpl {
	return services.NewTranscriptionService(transcriber, dao, logger,
		services.WithArchiver(archiver),
		services.WithRecorder(m),
	)
}

func provideExportService(dao repository.TranscriptionDAO, logger *zap.Logger) *services.ExportServiceImpl {
	return services.NewExportService(dao, logger)
}

func provideServiceContainer(
	settings *config.Settings,
	transcriptions *services.TranscriptionServiceImpl,
	exports *services.ExportServiceImpl,
) *v1routes.ServiceContainer {
	return &v1routes.ServiceContainer{
		TranscriptionService: transcriptions,
		ExportService:        exports,
		AuthTokens:           settings.Server.APITokens,
		MaxUploadBytes:       settings.Server.MaxUploadBytes(),
	}
}

func provideServerConfig(settings *config.Settings) server.Config {
	return server.Config{
		Address:     settings.Server.Address(),
		Environment: settings.Server.Environment,
		ReadTimeout: 5 * time.Minute,
		IdleTimeout: 2 * time.Minute,
	}
}

func provideTranscribeClient(settings *config.Settings) *transcribe.Client {
	return transcribe.NewClient(settings.Endpoint)
}

func provideFormHandler(client form.Transcriber, logger *zap.Logger) *form.Handler {
	return form.NewHandler(client, logger)
}
