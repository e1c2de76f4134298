package repository

import (
	"context"
	"fmt"

	"github.com/arinakim/lingvo-portal/internal/models"
)

// RecordAudit добавляет запись в журнал административных действий.
// Журнал только пополняется, методов изменения и удаления нет.
func (s *Storage) RecordAudit(ctx context.Context, action, actorUID, details string) (int, error) {
	const op = "storage.RecordAudit"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO audit_log (action, actor_uid, details)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query, action, actorUID, details).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListAudit возвращает записи журнала с пагинацией, новые первыми.
func (s *Storage) ListAudit(ctx context.Context, limit, offset int) ([]*models.AuditEntry, error) {
	const op = "storage.ListAudit"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, action, actor_uid, details, created_at
			  FROM audit_log
			  ORDER BY created_at DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		if err = rows.Scan(&e.ID, &e.Action, &e.ActorUID, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
