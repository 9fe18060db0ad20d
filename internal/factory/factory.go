package factory

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	conf "github.com/nestjam/shortlink/internal/config"
	"github.com/nestjam/shortlink/internal/domain"
	"github.com/nestjam/shortlink/internal/domain/service"
	"github.com/nestjam/shortlink/internal/persistance/inmemory"
)

// NewStore создает хранилище сокращенных ссылок по конфигурации.
func NewStore(conf conf.Config, logger *zap.Logger) (domain.URLStore, func()) {
	logger.Info("Using in-memory storage", zap.Int("register_attempts", conf.RegisterAttempts))
	return inmemory.New(inmemory.WithMaxAttempts(conf.RegisterAttempts)), func() {}
}

// NewService создает сервис сокращения ссылок над хранилищем.
func NewService(store domain.URLStore, logger *zap.Logger) *service.ShortenerService {
	return service.New(store, service.WithLogger(logger))
}

// NewLogger создает логер с заданным уровнем логирования.
func NewLogger(level string) (*zap.Logger, func(), error) {
	const op = "new logger"

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, nil, errors.Wrap(err, op)
	}

	config := zap.NewProductionConfig()
	config.Level = lvl
	logger, err := config.Build()
	if err != nil {
		return nil, nil, errors.Wrap(err, op)
	}

	return logger, func() { _ = logger.Sync() }, nil
}
