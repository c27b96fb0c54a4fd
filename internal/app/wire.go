//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"scribe/internal/api/server"
	"scribe/internal/api/v1/services"
	"scribe/internal/app/form"
	"scribe/internal/app/repository"
	"scribe/internal/config"
)

func InitializeServer(ctx context.Context, settings *config.Settings, logger *zap.Logger) (*server.Server, func(), error) {
	wire.Build(ServiceSet)
	return nil, nil, nil
}

func InitializeTranscriptionDAO(ctx context.Context, settings *config.Settings) (repository.TranscriptionDAO, func(), error) {
	wire.Build(RepositorySet)
	return nil, nil, nil
}

func InitializeExportService(ctx context.Context, settings *config.Settings, logger *zap.Logger) (*services.ExportServiceImpl, func(), error) {
	wire.Build(RepositorySet, provideExportService)
	return nil, nil, nil
}

func InitializeFormHandler(settings *config.Settings, logger *zap.Logger) *form.Handler {
	wire.Build(FormSet)
	return &form.Handler{}
}
