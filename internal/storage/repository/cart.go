package repository

import (
	"context"
	"fmt"

	"github.com/arinakim/lingvo-portal/internal/apperr"
	"github.com/arinakim/lingvo-portal/internal/models"
)

// GetOrCreateCart возвращает корзину студента, лениво создавая её при
// первом обращении. Уникальный индекс по student_uid делает вызов
// идемпотентным: параллельные запросы не создадут две корзины.
func (s *Storage) GetOrCreateCart(ctx context.Context, studentUID string) (*models.Cart, error) {
	const op = "storage.GetOrCreateCart"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	insert := `INSERT INTO carts (student_uid) VALUES ($1)
			   ON CONFLICT (student_uid) DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, insert, studentUID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT id, student_uid, created_at FROM carts WHERE student_uid = $1`
	c := &models.Cart{}
	row := s.DB.QueryRowContext(ctx, query, studentUID)
	if err := row.Scan(&c.ID, &c.StudentUID, &c.CreatedAt); err != nil {
		return nil, mapRowError(op, err)
	}
	return c, nil
}

// GetCart возвращает корзину студента без ленивого создания.
func (s *Storage) GetCart(ctx context.Context, studentUID string) (*models.Cart, error) {
	const op = "storage.GetCart"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, student_uid, created_at FROM carts WHERE student_uid = $1`
	c := &models.Cart{}
	row := s.DB.QueryRowContext(ctx, query, studentUID)
	if err := row.Scan(&c.ID, &c.StudentUID, &c.CreatedAt); err != nil {
		return nil, mapRowError(op, err)
	}
	return c, nil
}

// ListCartItems возвращает позиции корзины вместе с данными пакетов.
func (s *Storage) ListCartItems(ctx context.Context, cartID int) ([]*models.CartItem, error) {
	const op = "storage.ListCartItems"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ci.id, ci.cart_id, ci.package_id, ci.added_at,
			      p.id, p.title_en, p.title_ar, p.price, p.lessons_count, p.duration_days, p.is_active
			  FROM cart_items ci
			  JOIN packages p ON p.id = ci.package_id
			  WHERE ci.cart_id = $1
			  ORDER BY ci.added_at`
	rows, err := s.DB.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.CartItem
	for rows.Next() {
		var item models.CartItem
		var pkg models.Package
		if err = rows.Scan(&item.ID, &item.CartID, &item.PackageID, &item.AddedAt,
			&pkg.ID, &pkg.TitleEn, &pkg.TitleAr, &pkg.Price,
			&pkg.LessonsCount, &pkg.DurationDays, &pkg.IsActive); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.Package = &pkg
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// AddCartItem вставляет позицию корзины. Дубликат пары (корзина, пакет)
// отклоняется уникальным ограничением и возвращается как apperr.ErrConflict.
func (s *Storage) AddCartItem(ctx context.Context, cartID, packageID int) (*models.CartItem, error) {
	const op = "storage.AddCartItem"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO cart_items (cart_id, package_id)
			  VALUES ($1, $2)
			  RETURNING id, cart_id, package_id, added_at`
	item := &models.CartItem{}
	row := s.DB.QueryRowContext(ctx, query, cartID, packageID)
	if err := row.Scan(&item.ID, &item.CartID, &item.PackageID, &item.AddedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrConflict)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// RemoveCartItem удаляет позицию корзины по паре (корзина, пакет)
// и возвращает количество удалённых строк.
func (s *Storage) RemoveCartItem(ctx context.Context, cartID, packageID int) (int, error) {
	const op = "storage.RemoveCartItem"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM cart_items WHERE cart_id = $1 AND package_id = $2`
	result, err := s.DB.ExecContext(ctx, query, cartID, packageID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveCartItemForStudent удаляет пакет из корзины студента, если он там
// лежит. Используется при оформлении подписки: отсутствие позиции не ошибка.
func (s *Storage) RemoveCartItemForStudent(ctx context.Context, studentUID string, packageID int) (int, error) {
	const op = "storage.RemoveCartItemForStudent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM cart_items ci
			  USING carts c
			  WHERE ci.cart_id = c.id AND c.student_uid = $1 AND ci.package_id = $2`
	result, err := s.DB.ExecContext(ctx, query, studentUID, packageID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
