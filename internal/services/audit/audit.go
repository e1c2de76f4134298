// Package services содержит бизнес-логику журнала административных
// действий. Журнал только пополняется, правок и удалений нет.
package services

import (
	"context"
	"log/slog"

	"github.com/arinakim/lingvo-portal/internal/models"
)

// AuditRepository определяет методы для работы с журналом в хранилище.
type AuditRepository interface {
	// ListAudit возвращает записи журнала с пагинацией, новые первыми.
	ListAudit(ctx context.Context, limit, offset int) ([]*models.AuditEntry, error)
}

// AuditService реализует чтение журнала административных действий.
type AuditService struct {
	repo AuditRepository
	log  *slog.Logger
}

// NewAuditService создает AuditService поверх хранилища.
func NewAuditService(repo AuditRepository, log *slog.Logger) *AuditService {
	return &AuditService{repo: repo, log: log}
}

// List возвращает страницу журнала административных действий.
func (s *AuditService) List(ctx context.Context, limit, offset int) ([]*models.AuditEntry, error) {
	return s.repo.ListAudit(ctx, limit, offset)
}
