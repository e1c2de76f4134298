// Package services содержит бизнес-логику жизненного цикла подписок:
// оформление заявки, приём квитанции, одобрение администратором,
// административные список/чтение/правка/удаление.
//
// Жизненный цикл: pending -> under_review -> approved. Перехода
// отклонения нет, застрявшие заявки удаляет администратор.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/arinakim/lingvo-portal/internal/apperr"
	"github.com/arinakim/lingvo-portal/internal/lib/rabbitmq"
	"github.com/arinakim/lingvo-portal/internal/lib/sl"
	"github.com/arinakim/lingvo-portal/internal/models"
)

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// CreateSubscription вставляет подписку в статусе pending,
	// дубликат живой подписки возвращается конфликтом.
	CreateSubscription(ctx context.Context, sub models.Subscription) (int, error)
	// GetSubscription возвращает подписку по ID.
	GetSubscription(ctx context.Context, id int) (*models.Subscription, error)
	// GetSubscriptionDetail возвращает подписку с данными студента и пакета.
	GetSubscriptionDetail(ctx context.Context, id int) (*models.SubscriptionDetail, error)
	// ListSubscriptionsByStudent возвращает подписки студента.
	ListSubscriptionsByStudent(ctx context.Context, studentUID string) ([]*models.SubscriptionDetail, error)
	// ListSubscriptions возвращает все подписки с пагинацией.
	ListSubscriptions(ctx context.Context, limit, offset int) ([]*models.SubscriptionDetail, error)
	// UpdateSubscriptionPayment обновляет платёжные метаданные.
	UpdateSubscriptionPayment(ctx context.Context, id int, method string, walletProvider, paymentReference *string) (int, error)
	// AttachReceipt переводит pending -> under_review вместе с записью ключа квитанции.
	AttachReceipt(ctx context.Context, id int, receiptKey string) (int, error)
	// ApproveSubscription выполняет три записи одобрения одной транзакцией.
	ApproveSubscription(ctx context.Context, id int, actorUID string, startDate, endDate time.Time, auditDetails string) (*models.SubscriptionDetail, error)
	// RemoveSubscription удаляет подписку и возвращает количество удалённых строк.
	RemoveSubscription(ctx context.Context, id int) (int, error)
	// RecordAudit добавляет запись в журнал административных действий.
	RecordAudit(ctx context.Context, action, actorUID, details string) (int, error)
}

// CartEmptier убирает купленный пакет из корзины студента.
type CartEmptier interface {
	RemoveCartItemForStudent(ctx context.Context, studentUID string, packageID int) (int, error)
}

// PackageProvider отдает данные пакета из каталога.
type PackageProvider interface {
	GetPackage(ctx context.Context, id int) (*models.Package, error)
}

// UserProvider отдает данные пользователя.
type UserProvider interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// ReceiptStore хранит файлы квитанций.
type ReceiptStore interface {
	Save(ctx context.Context, subscriptionID int, fileName string, r io.Reader) (string, error)
	Remove(ctx context.Context, key string) error
}

// EventPublisher публикует события портала в брокер уведомлений.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// SubscriptionService реализует бизнес-логику жизненного цикла подписки.
type SubscriptionService struct {
	repo      SubscriptionRepository
	cart      CartEmptier
	packages  PackageProvider
	users     UserProvider
	receipts  ReceiptStore
	publisher EventPublisher
	cache     Cache
	log       *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, cart CartEmptier, packages PackageProvider,
	users UserProvider, receipts ReceiptStore, publisher EventPublisher, cache Cache, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:      repo,
		cart:      cart,
		packages:  packages,
		users:     users,
		receipts:  receipts,
		publisher: publisher,
		cache:     cache,
		log:       log,
	}
}

func cacheKey(id int) string {
	return fmt.Sprintf("subscription:%d", id)
}

// Checkout оформляет заявку на пакет: создает подписку в статусе pending
// и убирает пакет из корзины, если он там лежал.
//
// Способ оплаты wallet требует провайдера кошелька. Повторная заявка на
// пакет с живой подпиской отклоняется конфликтом независимо от того,
// как далеко продвинулась предыдущая.
func (s *SubscriptionService) Checkout(ctx context.Context, studentUID string, req models.DummyCheckoutRequest) (*models.Subscription, error) {
	const op = "services.subscription.Checkout"

	if req.PaymentMethod == models.PaymentWallet && req.WalletProvider == "" {
		return nil, fmt.Errorf("%s: wallet provider is required for wallet payments: %w", op, apperr.ErrValidation)
	}

	if _, err := s.packages.GetPackage(ctx, req.PackageID); err != nil {
		return nil, err
	}

	sub := models.Subscription{
		StudentUID:    studentUID,
		PackageID:     req.PackageID,
		Status:        models.StatusPending,
		PaymentMethod: req.PaymentMethod,
	}
	if req.WalletProvider != "" {
		sub.WalletProvider = &req.WalletProvider
	}
	if req.PaymentReference != "" {
		sub.PaymentReference = &req.PaymentReference
	}

	id, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new subscription", slog.Int("id", id), slog.Int("package_id", req.PackageID))

	// Пустота корзины не условие оформления: отсутствие позиции не ошибка.
	if _, err := s.cart.RemoveCartItemForStudent(ctx, studentUID, req.PackageID); err != nil {
		s.log.Warn("failed to clear cart item after checkout", sl.Err(err))
	}

	created, err := s.repo.GetSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey(id), created, time.Hour); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	return created, nil
}

// SubmitReceipt принимает файл квитанции и переводит подписку из pending
// в under_review.
//
// Файл сначала записывается в долговременное хранилище и только после
// успешной записи обновляется строка подписки: при неудачной записи файла
// состояние подписки не меняется и висячих ссылок не остается.
func (s *SubscriptionService) SubmitReceipt(ctx context.Context, studentUID string, id int, fileName string, file io.Reader) (*models.Subscription, error) {
	const op = "services.subscription.SubmitReceipt"

	sub, err := s.repo.GetSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.StudentUID != studentUID {
		return nil, fmt.Errorf("%s: subscription %d belongs to another student: %w", op, id, apperr.ErrForbidden)
	}
	if sub.Status != models.StatusPending {
		return nil, fmt.Errorf("%s: receipt is accepted only in pending state, current %q: %w",
			op, sub.Status, apperr.ErrConflict)
	}

	key, err := s.receipts.Save(ctx, id, fileName, file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.repo.AttachReceipt(ctx, id, key)
	if err != nil {
		if removeErr := s.receipts.Remove(ctx, key); removeErr != nil {
			s.log.Warn("failed to remove orphan receipt file", slog.String("key", key), sl.Err(removeErr))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if updated == 0 {
		// Параллельный запрос успел перевести подписку из pending.
		if removeErr := s.receipts.Remove(ctx, key); removeErr != nil {
			s.log.Warn("failed to remove orphan receipt file", slog.String("key", key), sl.Err(removeErr))
		}
		return nil, fmt.Errorf("%s: subscription %d is no longer pending: %w", op, id, apperr.ErrConflict)
	}

	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate subscription cache", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	s.log.Info("receipt submitted", slog.Int("id", id), slog.String("receipt_key", key))
	return s.repo.GetSubscription(ctx, id)
}

// Approve одобряет подписку от имени администратора.
//
// Окно доступа считается календарными днями: start = время одобрения,
// end = start + duration_days пакета. Перевод подписки, активация студента
// и запись в журнал выполняются одной транзакцией репозитория; повторное
// одобрение возвращает конфликт и ничего не меняет.
func (s *SubscriptionService) Approve(ctx context.Context, actorUID string, id int) (*models.SubscriptionDetail, error) {
	const op = "services.subscription.Approve"

	sub, err := s.repo.GetSubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status == models.StatusApproved {
		return nil, fmt.Errorf("%s: subscription %d is already approved: %w", op, id, apperr.ErrConflict)
	}

	pkg, err := s.packages.GetPackage(ctx, sub.PackageID)
	if err != nil {
		return nil, err
	}
	student, err := s.users.GetUser(ctx, sub.StudentUID)
	if err != nil {
		return nil, err
	}

	startDate := time.Now().UTC()
	endDate := startDate.AddDate(0, 0, pkg.DurationDays)
	details := fmt.Sprintf("approved subscription %d: student %s, package %s, price %d",
		id, student.Username, pkg.TitleEn, pkg.Price)

	detail, err := s.repo.ApproveSubscription(ctx, id, actorUID, startDate, endDate, details)
	if err != nil {
		return nil, err
	}
	s.log.Info("subscription approved",
		slog.Int("id", id), slog.String("student", student.Username),
		slog.Time("end_date", endDate))

	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate subscription cache", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}

	event := models.ApprovalEvent{
		Email:          detail.StudentEmail,
		Username:       detail.StudentUsername,
		PackageTitleEn: pkg.TitleEn,
		EndDate:        endDate,
	}
	if err := s.publisher.Publish(rabbitmq.RoutingKeyApproved, event); err != nil {
		s.log.Warn("failed to publish approval event", sl.Err(err))
	}

	return detail, nil
}

// ListOwn возвращает подписки студента с данными пакетов.
func (s *SubscriptionService) ListOwn(ctx context.Context, studentUID string) ([]*models.SubscriptionDetail, error) {
	return s.repo.ListSubscriptionsByStudent(ctx, studentUID)
}

// List возвращает все подписки с пагинацией для администратора.
func (s *SubscriptionService) List(ctx context.Context, limit, offset int) ([]*models.SubscriptionDetail, error) {
	return s.repo.ListSubscriptions(ctx, limit, offset)
}

// Read возвращает подписку с данными студента и пакета.
func (s *SubscriptionService) Read(ctx context.Context, id int) (*models.SubscriptionDetail, error) {
	return s.repo.GetSubscriptionDetail(ctx, id)
}

// Update правит платёжные метаданные подписки от имени администратора.
func (s *SubscriptionService) Update(ctx context.Context, id int, req models.DummyUpdateSubscription) error {
	const op = "services.subscription.Update"

	if req.PaymentMethod == models.PaymentWallet && req.WalletProvider == "" {
		return fmt.Errorf("%s: wallet provider is required for wallet payments: %w", op, apperr.ErrValidation)
	}

	var walletProvider, paymentReference *string
	if req.WalletProvider != "" {
		walletProvider = &req.WalletProvider
	}
	if req.PaymentReference != "" {
		paymentReference = &req.PaymentReference
	}

	updated, err := s.repo.UpdateSubscriptionPayment(ctx, id, req.PaymentMethod, walletProvider, paymentReference)
	if err != nil {
		return err
	}
	if updated == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate subscription cache", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	return nil
}

// Remove удаляет подписку. Единственный выход для заявок, застрявших
// в pending или under_review: перехода отклонения в жизненном цикле нет.
// Действие попадает в журнал аудита; сбой записи журнала не откатывает
// удаление, а только логируется.
func (s *SubscriptionService) Remove(ctx context.Context, actorUID string, id int) error {
	const op = "services.subscription.Remove"

	removed, err := s.repo.RemoveSubscription(ctx, id)
	if err != nil {
		return err
	}
	if removed == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	details := fmt.Sprintf("subscription %d removed", id)
	if _, err := s.repo.RecordAudit(ctx, "subscription.remove", actorUID, details); err != nil {
		s.log.Warn("failed to record audit entry", slog.Int("subscription_id", id), slog.Any("err", err))
	}
	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate subscription cache", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	return nil
}
