package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arinakim/lingvo-portal/internal/apperr"
	"github.com/arinakim/lingvo-portal/internal/models"
)

const subscriptionColumns = `id, student_uid, package_id, status, payment_method,
			      wallet_provider, payment_reference, receipt_key, start_date, end_date,
			      created_at, updated_at`

func scanSubscription(row interface{ Scan(...any) error }, sub *models.Subscription) error {
	var walletProvider, paymentReference, receiptKey sql.NullString
	var startDate, endDate sql.NullTime
	if err := row.Scan(&sub.ID, &sub.StudentUID, &sub.PackageID, &sub.Status, &sub.PaymentMethod,
		&walletProvider, &paymentReference, &receiptKey, &startDate, &endDate,
		&sub.CreatedAt, &sub.UpdatedAt); err != nil {
		return err
	}
	if walletProvider.Valid {
		sub.WalletProvider = &walletProvider.String
	}
	if paymentReference.Valid {
		sub.PaymentReference = &paymentReference.String
	}
	if receiptKey.Valid {
		sub.ReceiptKey = &receiptKey.String
	}
	if startDate.Valid {
		sub.StartDate = &startDate.Time
	}
	if endDate.Valid {
		sub.EndDate = &endDate.Time
	}
	return nil
}

// CreateSubscription вставляет подписку в статусе pending и возвращает её ID.
// Частичный уникальный индекс по (student_uid, package_id) для живых статусов
// отклоняет повторную покупку: проигравший параллельный запрос получает
// apperr.ErrConflict, а не вторую подписку.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (int, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (student_uid, package_id, status, payment_method,
			      wallet_provider, payment_reference)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		sub.StudentUID, sub.PackageID, sub.Status, sub.PaymentMethod,
		sub.WalletProvider, sub.PaymentReference).Scan(&newID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, apperr.ErrConflict)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// HasLiveSubscription сообщает, держит ли студент живую подписку на пакет.
// Вспомогательная проверка для корзины; авторитетная защита — индекс
// uniq_live_subscription.
func (s *Storage) HasLiveSubscription(ctx context.Context, studentUID string, packageID int) (bool, error) {
	const op = "storage.HasLiveSubscription"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (
			      SELECT 1 FROM subscriptions
			      WHERE student_uid = $1 AND package_id = $2
			        AND status IN ('pending', 'under_review', 'approved'))`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, studentUID, packageID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// GetSubscription возвращает подписку по её ID.
func (s *Storage) GetSubscription(ctx context.Context, id int) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`
	sub := &models.Subscription{}
	if err := scanSubscription(s.DB.QueryRowContext(ctx, query, id), sub); err != nil {
		return nil, mapRowError(op, err)
	}
	return sub, nil
}

const detailQuery = `SELECT s.id, s.student_uid, s.package_id, s.status, s.payment_method,
			      s.wallet_provider, s.payment_reference, s.receipt_key, s.start_date, s.end_date,
			      s.created_at, s.updated_at,
			      u.username, u.email,
			      COALESCE(p.title_en, ''), COALESCE(p.title_ar, ''), COALESCE(p.price, 0)
			  FROM subscriptions s
			  JOIN users u ON u.uid = s.student_uid
			  LEFT JOIN packages p ON p.id = s.package_id`

func scanSubscriptionDetail(row interface{ Scan(...any) error }, d *models.SubscriptionDetail) error {
	var walletProvider, paymentReference, receiptKey sql.NullString
	var startDate, endDate sql.NullTime
	if err := row.Scan(&d.ID, &d.StudentUID, &d.PackageID, &d.Status, &d.PaymentMethod,
		&walletProvider, &paymentReference, &receiptKey, &startDate, &endDate,
		&d.CreatedAt, &d.UpdatedAt,
		&d.StudentUsername, &d.StudentEmail,
		&d.PackageTitleEn, &d.PackageTitleAr, &d.PackagePrice); err != nil {
		return err
	}
	if walletProvider.Valid {
		d.WalletProvider = &walletProvider.String
	}
	if paymentReference.Valid {
		d.PaymentReference = &paymentReference.String
	}
	if receiptKey.Valid {
		d.ReceiptKey = &receiptKey.String
	}
	if startDate.Valid {
		d.StartDate = &startDate.Time
	}
	if endDate.Valid {
		d.EndDate = &endDate.Time
	}
	return nil
}

// GetSubscriptionDetail возвращает подписку вместе с данными студента и пакета.
func (s *Storage) GetSubscriptionDetail(ctx context.Context, id int) (*models.SubscriptionDetail, error) {
	const op = "storage.GetSubscriptionDetail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	d := &models.SubscriptionDetail{}
	row := s.DB.QueryRowContext(ctx, detailQuery+` WHERE s.id = $1`, id)
	if err := scanSubscriptionDetail(row, d); err != nil {
		return nil, mapRowError(op, err)
	}
	return d, nil
}

// ListSubscriptionsByStudent возвращает подписки студента с данными пакетов.
func (s *Storage) ListSubscriptionsByStudent(ctx context.Context, studentUID string) ([]*models.SubscriptionDetail, error) {
	const op = "storage.ListSubscriptionsByStudent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, detailQuery+` WHERE s.student_uid = $1 ORDER BY s.created_at DESC`, studentUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SubscriptionDetail
	for rows.Next() {
		var d models.SubscriptionDetail
		if err = scanSubscriptionDetail(rows, &d); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListSubscriptions возвращает все подписки с пагинацией для административного списка.
func (s *Storage) ListSubscriptions(ctx context.Context, limit, offset int) ([]*models.SubscriptionDetail, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, detailQuery+` ORDER BY s.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SubscriptionDetail
	for rows.Next() {
		var d models.SubscriptionDetail
		if err = scanSubscriptionDetail(rows, &d); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateSubscriptionPayment обновляет платёжные метаданные подписки
// и возвращает количество изменённых строк.
func (s *Storage) UpdateSubscriptionPayment(ctx context.Context, id int, method string, walletProvider, paymentReference *string) (int, error) {
	const op = "storage.UpdateSubscriptionPayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET payment_method = $2, wallet_provider = $3, payment_reference = $4, updated_at = now()
			  WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id, method, walletProvider, paymentReference)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// AttachReceipt записывает ключ квитанции и переводит подписку из pending
// в under_review одним условным UPDATE. Ноль затронутых строк означает,
// что подписка либо отсутствует, либо уже не в pending — различает это
// вызывающая сторона повторным чтением.
func (s *Storage) AttachReceipt(ctx context.Context, id int, receiptKey string) (int, error) {
	const op = "storage.AttachReceipt"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET receipt_key = $2, status = 'under_review', updated_at = now()
			  WHERE id = $1 AND status = 'pending'`
	result, err := s.DB.ExecContext(ctx, query, id, receiptKey)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ApproveSubscription выполняет три записи одобрения одной транзакцией:
// подписка переходит в approved с окном доступа, студент активируется,
// в журнал добавляется запись о действии. Строка подписки блокируется
// FOR UPDATE, повторное одобрение откатывается с apperr.ErrConflict.
func (s *Storage) ApproveSubscription(ctx context.Context, id int, actorUID string, startDate, endDate time.Time, auditDetails string) (*models.SubscriptionDetail, error) {
	const op = "storage.ApproveSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var status, studentUID string
	row := tx.QueryRowContext(ctx,
		`SELECT status, student_uid FROM subscriptions WHERE id = $1 FOR UPDATE`, id)
	if err = row.Scan(&status, &studentUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if status == models.StatusApproved {
		return nil, fmt.Errorf("%s: already approved: %w", op, apperr.ErrConflict)
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE subscriptions
		 SET status = 'approved', start_date = $2, end_date = $3, updated_at = now()
		 WHERE id = $1`, id, startDate, endDate); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE users SET is_active = TRUE WHERE uid = $1`, studentUID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO audit_log (action, actor_uid, details) VALUES ($1, $2, $3)`,
		"subscription.approve", actorUID, auditDetails); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	d := &models.SubscriptionDetail{}
	if err = scanSubscriptionDetail(tx.QueryRowContext(ctx, detailQuery+` WHERE s.id = $1`, id), d); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}

// RemoveSubscription удаляет подписку по ID и возвращает количество удалённых строк.
// Это единственный выход для заявок, застрявших в pending или under_review.
func (s *Storage) RemoveSubscription(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
