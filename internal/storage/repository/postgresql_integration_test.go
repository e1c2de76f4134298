package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arinakim/lingvo-portal/internal/apperr"
	"github.com/arinakim/lingvo-portal/internal/models"
)

func TestStorage_RegisterUser(t *testing.T) {
	type args struct {
		ctx  context.Context
		user models.User
	}

	tests := []struct {
		name    string
		args    args
		wantErr error
		setup   func(t *testing.T, factory *TestDataFactory)
	}{
		{
			name: "successful register new student",
			args: args{
				ctx: context.Background(),
				user: models.User{
					Email:        "amina@example.com",
					Username:     "amina",
					PasswordHash: "hashedpassword",
					Role:         "student",
					IsActive:     false,
				},
			},
			wantErr: nil,
			setup:   func(_ *testing.T, _ *TestDataFactory) {},
		},
		{
			name: "register with taken username",
			args: args{
				ctx: context.Background(),
				user: models.User{
					Email:        "other@example.com",
					Username:     "amina",
					PasswordHash: "hashedpassword",
					Role:         "student",
					IsActive:     false,
				},
			},
			wantErr: apperr.ErrConflict,
			setup: func(t *testing.T, factory *TestDataFactory) {
				factory.CreateUser(t, uuid.New().String(), "amina", "amina@example.com", "hashedpassword", "student", false)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			tt.setup(t, factory)

			gotUID, err := storage.RegisterUser(tt.args.ctx, tt.args.user)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, gotUID)

			got, err := storage.GetUser(tt.args.ctx, gotUID)
			require.NoError(t, err)
			assert.Equal(t, tt.args.user.Username, got.Username)
			assert.Equal(t, tt.args.user.Email, got.Email)
			assert.Equal(t, tt.args.user.Role, got.Role)
			assert.False(t, got.IsActive)
		})
	}
}

func TestStorage_GetOrCreateCart(t *testing.T) {
	t.Run("repeated calls return the same cart", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		studentUID := uuid.New().String()
		factory.CreateUser(t, studentUID, "amina", "amina@example.com", "hashedpassword", "student", false)

		first, err := storage.GetOrCreateCart(context.Background(), studentUID)
		require.NoError(t, err)
		second, err := storage.GetOrCreateCart(context.Background(), studentUID)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, studentUID, second.StudentUID)
	})

	t.Run("get cart without lazy create for unknown student", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		studentUID := uuid.New().String()
		factory.CreateUser(t, studentUID, "amina", "amina@example.com", "hashedpassword", "student", false)

		_, err := storage.GetCart(context.Background(), studentUID)
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestStorage_AddCartItem(t *testing.T) {
	tests := []struct {
		name    string
		wantErr error
		setup   func(t *testing.T, storage *Storage, factory *TestDataFactory) (int, int)
	}{
		{
			name:    "successful add package to cart",
			wantErr: nil,
			setup: func(t *testing.T, storage *Storage, factory *TestDataFactory) (int, int) {
				studentUID := uuid.New().String()
				factory.CreateUser(t, studentUID, "amina", "amina@example.com", "hashedpassword", "student", false)
				packageID := factory.CreatePackage(t, "Intensive Arabic", "عربي مكثف", 1500, 12, 30, true)
				cart, err := storage.GetOrCreateCart(context.Background(), studentUID)
				require.NoError(t, err)
				return cart.ID, packageID
			},
		},
		{
			name:    "duplicate package in the same cart",
			wantErr: apperr.ErrConflict,
			setup: func(t *testing.T, storage *Storage, factory *TestDataFactory) (int, int) {
				studentUID := uuid.New().String()
				factory.CreateUser(t, studentUID, "amina", "amina@example.com", "hashedpassword", "student", false)
				packageID := factory.CreatePackage(t, "Intensive Arabic", "عربي مكثف", 1500, 12, 30, true)
				cart, err := storage.GetOrCreateCart(context.Background(), studentUID)
				require.NoError(t, err)
				_, err = storage.AddCartItem(context.Background(), cart.ID, packageID)
				require.NoError(t, err)
				return cart.ID, packageID
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			cartID, packageID := tt.setup(t, storage, factory)

			got, err := storage.AddCartItem(context.Background(), cartID, packageID)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, cartID, got.CartID)
			assert.Equal(t, packageID, got.PackageID)

			items, err := storage.ListCartItems(context.Background(), cartID)
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, "Intensive Arabic", items[0].Package.TitleEn)
		})
	}
}

func TestStorage_RemoveCartItem(t *testing.T) {
	t.Run("successful remove existing item", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		studentUID := uuid.New().String()
		factory.CreateUser(t, studentUID, "amina", "amina@example.com", "hashedpassword", "student", false)
		packageID := factory.CreatePackage(t, "Intensive Arabic", "عربي مكثف", 1500, 12, 30, true)
		cart, err := storage.GetOrCreateCart(context.Background(), studentUID)
		require.NoError(t, err)
		_, err = storage.AddCartItem(context.Background(), cart.ID, packageID)
		require.NoError(t, err)

		removed, err := storage.RemoveCartItem(context.Background(), cart.ID, packageID)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		items, err := storage.ListCartItems(context.Background(), cart.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("remove missing item affects no rows", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		studentUID := uuid.New().String()
		factory.CreateUser(t, studentUID, "amina", "amina@example.com", "hashedpassword", "student", false)
		cart, err := storage.GetOrCreateCart(context.Background(), studentUID)
		require.NoError(t, err)

		removed, err := storage.RemoveCartItem(context.Background(), cart.ID, 9999)
		require.NoError(t, err)
		assert.Equal(t, 0, removed)
	})
}

func TestStorage_CreateSubscription(t *testing.T) {
	type args struct {
		ctx context.Context
		sub models.Subscription
	}

	tests := []struct {
		name    string
		args    args
		wantErr error
		setup   func(t *testing.T, factory *TestDataFactory) (string, int)
	}{
		{
			name: "successful create pending subscription",
			args: args{
				ctx: context.Background(),
				sub: models.Subscription{
					Status:        models.StatusPending,
					PaymentMethod: models.PaymentBankTransfer,
				},
			},
			wantErr: nil,
			setup: func(t *testing.T, factory *TestDataFactory) (string, int) {
				studentUID := uuid.New().String()
				factory.CreateUser(t, studentUID, "amina", "amina@example.com", "hashedpassword", "student", false)
				packageID := factory.CreatePackage(t, "Intensive Arabic", "عربي مكثف", 1500, 12, 30, true)
				return studentUID, packageID
			},
		},
		{
			name: "second live subscription for the same package",
			args: args{
				ctx: context.Background(),
				sub: models.Subscription{
					Status:        models.StatusPending,
					PaymentMethod: models.PaymentCash,
				},
			},
			wantErr: apperr.ErrConflict,
			setup: func(t *testing.T, factory *TestDataFactory) (string, int) {
				studentUID := uuid.New().String()
				factory.CreateUser(t, studentUID, "amina", "amina@example.com", "hashedpassword", "student", false)
				packageID := factory.CreatePackage(t, "Intensive Arabic", "عربي مكثف", 1500, 12, 30, true)
				factory.CreateSubscription(t, studentUID, packageID, models.StatusUnderReview, models.PaymentBankTransfer)
				return studentUID, packageID
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			studentUID, packageID := tt.setup(t, factory)
			tt.args.sub.StudentUID = studentUID
			tt.args.sub.PackageID = packageID

			gotID, err := storage.CreateSubscription(tt.args.ctx, tt.args.sub)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Positive(t, gotID)

			got, err := storage.GetSubscription(tt.args.ctx, gotID)
			require.NoError(t, err)
			assert.Equal(t, models.StatusPending, got.Status)
			assert.Equal(t, tt.args.sub.PaymentMethod, got.PaymentMethod)
			assert.Nil(t, got.StartDate)
			assert.Nil(t, got.EndDate)

			live, err := storage.HasLiveSubscription(tt.args.ctx, studentUID, packageID)
			require.NoError(t, err)
			assert.True(t, live)
		})
	}
}

func TestStorage_CreateSubscription_ConcurrentCheckout(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	studentUID := uuid.New().String()
	factory.CreateUser(t, studentUID, "amina", "amina@example.com", "hashedpassword", "student", false)
	packageID := factory.CreatePackage(t, "Intensive Arabic", "عربي مكثف", 1500, 12, 30, true)

	// Одновременные оформления одного пакета: частичный уникальный
	// индекс пропускает ровно одну живую подписку.
	const workers = 4
	errs := make([]error, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := range workers {
		go func() {
			defer wg.Done()
			_, errs[i] = storage.CreateSubscription(context.Background(), models.Subscription{
				StudentUID:    studentUID,
				PackageID:     packageID,
				Status:        models.StatusPending,
				PaymentMethod: models.PaymentBankTransfer,
			})
		}()
	}
	wg.Wait()

	var created, conflicts int
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		require.ErrorIs(t, err, apperr.ErrConflict)
		conflicts++
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, conflicts)

	var count int
	err := storage.DB.QueryRow(
		`SELECT COUNT(*) FROM subscriptions WHERE student_uid = $1 AND package_id = $2`,
		studentUID, packageID,
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStorage_AttachReceipt(t *testing.T) {
	tests := []struct {
		name             string
		initialStatus    string
		wantRowsAffected int
		wantStatus       string
	}{
		{
			name:             "successful attach moves pending to under_review",
			initialStatus:    models.StatusPending,
			wantRowsAffected: 1,
			wantStatus:       models.StatusUnderReview,
		},
		{
			name:             "repeated attach affects no rows",
			initialStatus:    models.StatusUnderReview,
			wantRowsAffected: 0,
			wantStatus:       models.StatusUnderReview,
		},
		{
			name:             "attach to approved subscription affects no rows",
			initialStatus:    models.StatusApproved,
			wantRowsAffected: 0,
			wantStatus:       models.StatusApproved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			studentUID := uuid.New().String()
			factory.CreateUser(t, studentUID, "amina", "amina@example.com", "hashedpassword", "student", false)
			packageID := factory.CreatePackage(t, "Intensive Arabic", "عربي مكثف", 1500, 12, 30, true)
			subscriptionID := factory.CreateSubscription(t, studentUID, packageID, tt.initialStatus, models.PaymentBankTransfer)

			gotRowsAffected, err := storage.AttachReceipt(context.Background(), subscriptionID, "42_receipt.pdf")
			require.NoError(t, err)
			assert.Equal(t, tt.wantRowsAffected, gotRowsAffected)

			verification := NewTestVerification(storage)
			verification.VerifySubscriptionStatus(t, subscriptionID, tt.wantStatus)
		})
	}
}

func TestStorage_ApproveSubscription(t *testing.T) {
	startDate := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, 0, 30)

	t.Run("successful approve writes subscription, user and audit atomically", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		actorUID := uuid.New().String()
		studentUID := uuid.New().String()
		factory.CreateUser(t, actorUID, "admin", "admin@example.com", "hashedpassword", "admin", true)
		factory.CreateUser(t, studentUID, "amina", "amina@example.com", "hashedpassword", "student", false)
		packageID := factory.CreatePackage(t, "Intensive Arabic", "عربي مكثف", 1500, 12, 30, true)
		subscriptionID := factory.CreateSubscription(t, studentUID, packageID, models.StatusUnderReview, models.PaymentBankTransfer)

		got, err := storage.ApproveSubscription(context.Background(), subscriptionID, actorUID, startDate, endDate, "subscription 1 approved")
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, models.StatusApproved, got.Status)
		require.NotNil(t, got.StartDate)
		require.NotNil(t, got.EndDate)
		assert.True(t, got.StartDate.Equal(startDate))
		assert.True(t, got.EndDate.Equal(endDate))
		assert.Equal(t, "amina", got.StudentUsername)
		assert.Equal(t, "Intensive Arabic", got.PackageTitleEn)

		verification := NewTestVerification(storage)
		verification.VerifyUserActive(t, studentUID, true)
		verification.VerifyAuditCount(t, "subscription.approve", 1)

		auditEntries, err := storage.ListAudit(context.Background(), 10, 0)
		require.NoError(t, err)
		require.Len(t, auditEntries, 1)
		assert.Equal(t, actorUID, auditEntries[0].ActorUID)
		assert.Equal(t, "subscription 1 approved", auditEntries[0].Details)
	})

	t.Run("already approved subscription is rejected without new writes", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		actorUID := uuid.New().String()
		studentUID := uuid.New().String()
		factory.CreateUser(t, actorUID, "admin", "admin@example.com", "hashedpassword", "admin", true)
		factory.CreateUser(t, studentUID, "amina", "amina@example.com", "hashedpassword", "student", false)
		packageID := factory.CreatePackage(t, "Intensive Arabic", "عربي مكثف", 1500, 12, 30, true)
		subscriptionID := factory.CreateSubscription(t, studentUID, packageID, models.StatusApproved, models.PaymentBankTransfer)

		_, err := storage.ApproveSubscription(context.Background(), subscriptionID, actorUID, startDate, endDate, "subscription 1 approved")
		require.ErrorIs(t, err, apperr.ErrConflict)

		verification := NewTestVerification(storage)
		verification.VerifyUserActive(t, studentUID, false)
		verification.VerifyAuditCount(t, "subscription.approve", 0)
	})

	t.Run("approve missing subscription", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		actorUID := uuid.New().String()
		factory.CreateUser(t, actorUID, "admin", "admin@example.com", "hashedpassword", "admin", true)

		_, err := storage.ApproveSubscription(context.Background(), 9999, actorUID, startDate, endDate, "subscription 9999 approved")
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestStorage_RemoveSubscription(t *testing.T) {
	t.Run("remove frees the live slot for a new checkout", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		studentUID := uuid.New().String()
		factory.CreateUser(t, studentUID, "amina", "amina@example.com", "hashedpassword", "student", false)
		packageID := factory.CreatePackage(t, "Intensive Arabic", "عربي مكثف", 1500, 12, 30, true)
		subscriptionID := factory.CreateSubscription(t, studentUID, packageID, models.StatusPending, models.PaymentBankTransfer)

		removed, err := storage.RemoveSubscription(context.Background(), subscriptionID)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		// После удаления частичный индекс снова пропускает подписку
		_, err = storage.CreateSubscription(context.Background(), models.Subscription{
			StudentUID:    studentUID,
			PackageID:     packageID,
			Status:        models.StatusPending,
			PaymentMethod: models.PaymentCash,
		})
		require.NoError(t, err)
	})

	t.Run("remove missing subscription affects no rows", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		removed, err := storage.RemoveSubscription(context.Background(), 9999)
		require.NoError(t, err)
		assert.Equal(t, 0, removed)
	})
}

func TestStorage_RemovePackage(t *testing.T) {
	tests := []struct {
		name    string
		wantErr error
		setup   func(t *testing.T, factory *TestDataFactory) int
	}{
		{
			name:    "successful remove unreferenced package",
			wantErr: nil,
			setup: func(t *testing.T, factory *TestDataFactory) int {
				return factory.CreatePackage(t, "Intensive Arabic", "عربي مكثف", 1500, 12, 30, true)
			},
		},
		{
			name:    "package referenced by subscription",
			wantErr: apperr.ErrConflict,
			setup: func(t *testing.T, factory *TestDataFactory) int {
				studentUID := uuid.New().String()
				factory.CreateUser(t, studentUID, "amina", "amina@example.com", "hashedpassword", "student", false)
				packageID := factory.CreatePackage(t, "Intensive Arabic", "عربي مكثف", 1500, 12, 30, true)
				factory.CreateSubscription(t, studentUID, packageID, models.StatusApproved, models.PaymentBankTransfer)
				return packageID
			},
		},
		{
			name:    "remove missing package",
			wantErr: apperr.ErrNotFound,
			setup:   func(_ *testing.T, _ *TestDataFactory) int { return 9999 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage, cleanup := setupTestDatabase(t)
			defer cleanup()

			factory := NewTestDataFactory(storage)
			packageID := tt.setup(t, factory)

			err := storage.RemovePackage(context.Background(), packageID)

			verification := NewTestVerification(storage)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			verification.VerifyPackageExists(t, packageID, false)
		})
	}
}

func TestStorage_ListSubscriptions(t *testing.T) {
	t.Run("list with pagination, newest first", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		studentUID := uuid.New().String()
		factory.CreateUser(t, studentUID, "amina", "amina@example.com", "hashedpassword", "student", false)
		first := factory.CreatePackage(t, "Intensive Arabic", "عربي مكثف", 1500, 12, 30, true)
		second := factory.CreatePackage(t, "Evening Arabic", "عربي مسائي", 900, 8, 60, true)
		factory.CreateSubscription(t, studentUID, first, models.StatusPending, models.PaymentBankTransfer)
		factory.CreateSubscription(t, studentUID, second, models.StatusUnderReview, models.PaymentCash)

		got, err := storage.ListSubscriptions(context.Background(), 1, 0)
		require.NoError(t, err)
		require.Len(t, got, 1)

		got, err = storage.ListSubscriptions(context.Background(), 10, 0)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("list by student joins package data", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		studentUID := uuid.New().String()
		otherUID := uuid.New().String()
		factory.CreateUser(t, studentUID, "amina", "amina@example.com", "hashedpassword", "student", false)
		factory.CreateUser(t, otherUID, "omar", "omar@example.com", "hashedpassword", "student", false)
		packageID := factory.CreatePackage(t, "Intensive Arabic", "عربي مكثف", 1500, 12, 30, true)
		factory.CreateSubscription(t, studentUID, packageID, models.StatusPending, models.PaymentBankTransfer)
		factory.CreateSubscription(t, otherUID, packageID, models.StatusPending, models.PaymentCash)

		got, err := storage.ListSubscriptionsByStudent(context.Background(), studentUID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "amina", got[0].StudentUsername)
		assert.Equal(t, "Intensive Arabic", got[0].PackageTitleEn)
		assert.Equal(t, 1500, got[0].PackagePrice)
	})
}

func TestStorage_CheckDatabaseReady(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	require.NoError(t, storage.CheckDatabaseReady(context.Background()))
}
