// Package services содержит бизнес-логику корзины студента.
//
// У студента одна корзина, создаваемая лениво; пакет лежит в корзине не
// более одного раза; пакет с живой подпиской добавить нельзя. Дубликаты
// отсекает уникальное ограничение базы, проверки здесь вспомогательные.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arinakim/lingvo-portal/internal/apperr"
	"github.com/arinakim/lingvo-portal/internal/models"
)

// CartRepository определяет методы для работы с корзинами в хранилище.
type CartRepository interface {
	// GetOrCreateCart возвращает корзину студента, лениво создавая её.
	GetOrCreateCart(ctx context.Context, studentUID string) (*models.Cart, error)
	// GetCart возвращает корзину студента без создания.
	GetCart(ctx context.Context, studentUID string) (*models.Cart, error)
	// ListCartItems возвращает позиции корзины с данными пакетов.
	ListCartItems(ctx context.Context, cartID int) ([]*models.CartItem, error)
	// AddCartItem вставляет позицию, дубликат пары возвращается конфликтом.
	AddCartItem(ctx context.Context, cartID, packageID int) (*models.CartItem, error)
	// RemoveCartItem удаляет позицию и возвращает количество удалённых строк.
	RemoveCartItem(ctx context.Context, cartID, packageID int) (int, error)
}

// SubscriptionChecker сообщает о живых подписках студента.
type SubscriptionChecker interface {
	HasLiveSubscription(ctx context.Context, studentUID string, packageID int) (bool, error)
}

// PackageProvider отдает данные пакета из каталога.
type PackageProvider interface {
	GetPackage(ctx context.Context, id int) (*models.Package, error)
}

// CartService реализует операции с корзиной студента.
type CartService struct {
	repo     CartRepository
	subs     SubscriptionChecker
	packages PackageProvider
	log      *slog.Logger
}

// NewCartService создает новый экземпляр CartService.
func NewCartService(repo CartRepository, subs SubscriptionChecker, packages PackageProvider, log *slog.Logger) *CartService {
	return &CartService{
		repo:     repo,
		subs:     subs,
		packages: packages,
		log:      log,
	}
}

// GetCart возвращает корзину студента с позициями, создавая пустую корзину
// при первом обращении.
func (s *CartService) GetCart(ctx context.Context, studentUID string) (*models.Cart, []*models.CartItem, error) {
	cart, err := s.repo.GetOrCreateCart(ctx, studentUID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.repo.ListCartItems(ctx, cart.ID)
	if err != nil {
		return nil, nil, err
	}
	return cart, items, nil
}

// AddItem добавляет пакет в корзину студента.
//
// Неактивный пакет отклоняется как ошибка валидации, отсутствующий — как
// not found. Живая подписка на пакет или уже лежащий в корзине пакет —
// конфликт; дубликат позиции окончательно отсекается уникальным индексом.
func (s *CartService) AddItem(ctx context.Context, studentUID string, packageID int) (*models.CartItem, error) {
	const op = "services.cart.AddItem"

	pkg, err := s.packages.GetPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if !pkg.IsActive {
		return nil, fmt.Errorf("%s: package %d is not active: %w", op, packageID, apperr.ErrValidation)
	}

	hasLive, err := s.subs.HasLiveSubscription(ctx, studentUID, packageID)
	if err != nil {
		return nil, err
	}
	if hasLive {
		return nil, fmt.Errorf("%s: student already holds a live subscription for package %d: %w",
			op, packageID, apperr.ErrConflict)
	}

	cart, err := s.repo.GetOrCreateCart(ctx, studentUID)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.AddCartItem(ctx, cart.ID, packageID)
	if err != nil {
		return nil, err
	}
	item.Package = pkg

	s.log.Info("added package to cart",
		slog.Int("cart_id", cart.ID), slog.Int("package_id", packageID))
	return item, nil
}

// RemoveItem удаляет пакет из корзины студента. Отсутствие корзины или
// позиции возвращается как not found, корзина при этом не меняется.
func (s *CartService) RemoveItem(ctx context.Context, studentUID string, packageID int) error {
	const op = "services.cart.RemoveItem"

	cart, err := s.repo.GetCart(ctx, studentUID)
	if err != nil {
		return err
	}
	removed, err := s.repo.RemoveCartItem(ctx, cart.ID, packageID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return fmt.Errorf("%s: package %d is not in the cart: %w", op, packageID, apperr.ErrNotFound)
	}
	return nil
}
