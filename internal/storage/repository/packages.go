package repository

import (
	"context"
	"fmt"

	"github.com/arinakim/lingvo-portal/internal/apperr"
	"github.com/arinakim/lingvo-portal/internal/models"
)

// GetPackage возвращает учебный пакет по его ID.
func (s *Storage) GetPackage(ctx context.Context, id int) (*models.Package, error) {
	const op = "storage.GetPackage"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title_en, title_ar, price, lessons_count, duration_days, is_active
			  FROM packages WHERE id = $1`
	p := &models.Package{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&p.ID, &p.TitleEn, &p.TitleAr, &p.Price,
		&p.LessonsCount, &p.DurationDays, &p.IsActive); err != nil {
		return nil, mapRowError(op, err)
	}
	return p, nil
}

// RemovePackage удаляет пакет из каталога. Пока на пакет ссылается хоть
// одна подписка, удаление отклоняется с apperr.ErrConflict: строки подписок
// должны переживать правки каталога ради истории и аудита. Проверка и
// удаление выполняются одним оператором, чтобы исключить гонку.
func (s *Storage) RemovePackage(ctx context.Context, id int) error {
	const op = "storage.RemovePackage"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM packages
			  WHERE id = $1
			    AND NOT EXISTS (SELECT 1 FROM subscriptions WHERE package_id = $1)`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected > 0 {
		return nil
	}

	var exists bool
	if err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM packages WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return fmt.Errorf("%s: package is referenced by subscriptions: %w", op, apperr.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
}
