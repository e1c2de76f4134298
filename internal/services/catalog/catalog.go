// Package services содержит бизнес-логику чтения каталога учебных пакетов
// и защиту каталога от удаления пакетов, на которые ссылаются подписки.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arinakim/lingvo-portal/internal/models"
)

// PackageRepository определяет методы для работы с каталогом в хранилище.
type PackageRepository interface {
	// GetPackage возвращает пакет по ID.
	GetPackage(ctx context.Context, id int) (*models.Package, error)
	// RemovePackage удаляет пакет, отклоняя удаление при живых ссылках из подписок.
	RemovePackage(ctx context.Context, id int) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// CatalogService реализует чтение каталога с кешированием.
// Записи каталога для этой подсистемы read-only, единственная запись —
// удаление пакета администратором.
type CatalogService struct {
	repo  PackageRepository
	cache Cache
	log   *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo PackageRepository, cache Cache, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// GetPackage возвращает пакет по ID, используя кеш или репозиторий.
func (s *CatalogService) GetPackage(ctx context.Context, id int) (*models.Package, error) {
	var result *models.Package
	cacheKey := fmt.Sprintf("package:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read package from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found && result != nil {
		return result, nil
	}
	result, err = s.repo.GetPackage(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache package", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// RemovePackage удаляет пакет из каталога и инвалидирует кеш.
// Пока на пакет ссылается хоть одна подписка, репозиторий вернет конфликт.
func (s *CatalogService) RemovePackage(ctx context.Context, id int) error {
	if err := s.repo.RemovePackage(ctx, id); err != nil {
		return err
	}
	cacheKey := fmt.Sprintf("package:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate package cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return nil
}
