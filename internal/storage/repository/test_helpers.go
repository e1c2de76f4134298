package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/arinakim/lingvo-portal/internal/migrations"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя
func (f *TestDataFactory) CreateUser(t *testing.T, userUID, username, email, passwordHash, role string, isActive bool) {
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, username, email, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		userUID, username, email, passwordHash, role, isActive)
	require.NoError(t, err)
}

// CreatePackage создает тестовый учебный пакет
func (f *TestDataFactory) CreatePackage(t *testing.T, titleEn, titleAr string, price, lessonsCount, durationDays int, isActive bool) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO packages
		(title_en, title_ar, price, lessons_count, duration_days, is_active)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		titleEn, titleAr, price, lessonsCount, durationDays, isActive).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateSubscription создает тестовую подписку в заданном статусе
func (f *TestDataFactory) CreateSubscription(t *testing.T, studentUID string, packageID int, status, paymentMethod string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO subscriptions
		(student_uid, package_id, status, payment_method)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		studentUID, packageID, status, paymentMethod).Scan(&id)
	require.NoError(t, err)
	return id
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifySubscriptionStatus проверяет статус подписки
func (v *TestVerification) VerifySubscriptionStatus(t *testing.T, subscriptionID int, expectedStatus string) {
	var status string
	err := v.storage.DB.QueryRow("SELECT status FROM subscriptions WHERE id = $1", subscriptionID).
		Scan(&status)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, status)
}

// VerifyUserActive проверяет флаг активности пользователя
func (v *TestVerification) VerifyUserActive(t *testing.T, userUID string, expectedActive bool) {
	var isActive bool
	err := v.storage.DB.QueryRow("SELECT is_active FROM users WHERE uid = $1", userUID).
		Scan(&isActive)
	require.NoError(t, err)
	require.Equal(t, expectedActive, isActive)
}

// VerifyAuditCount проверяет количество записей журнала для действия
func (v *TestVerification) VerifyAuditCount(t *testing.T, action string, expectedCount int) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM audit_log WHERE action = $1", action).
		Scan(&count)
	require.NoError(t, err)
	require.Equal(t, expectedCount, count)
}

// VerifyPackageExists проверяет существование пакета в каталоге
func (v *TestVerification) VerifyPackageExists(t *testing.T, packageID int, expectedExists bool) {
	var exists bool
	err := v.storage.DB.QueryRow("SELECT EXISTS (SELECT 1 FROM packages WHERE id = $1)", packageID).
		Scan(&exists)
	require.NoError(t, err)
	require.Equal(t, expectedExists, exists)
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
// и применяет к ней миграции проекта
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(3*time.Minute)),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			err = storage.DB.Ping()
			if err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "Failed to create storage after retries")

	// Накатываем боевые миграции, а не отдельную тестовую схему:
	// тест заодно проверяет, что миграции применяются с нуля
	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err, "Failed to resolve migrations path")
	err = migrations.Run(storage.DB, migrationsPath)
	require.NoError(t, err, "Failed to run migrations")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if postgresContainer != nil {
			_ = postgresContainer.Terminate(ctx)
		}
	}

	return storage, cleanup
}
