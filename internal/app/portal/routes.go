// Package portal предоставляет маршруты для основного приложения.
package portal

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	auditlist "github.com/arinakim/lingvo-portal/internal/http/handlers/audit/list"
	"github.com/arinakim/lingvo-portal/internal/http/handlers/auth/login"
	"github.com/arinakim/lingvo-portal/internal/http/handlers/auth/register"
	"github.com/arinakim/lingvo-portal/internal/http/handlers/cart/additem"
	"github.com/arinakim/lingvo-portal/internal/http/handlers/cart/get"
	"github.com/arinakim/lingvo-portal/internal/http/handlers/cart/removeitem"
	"github.com/arinakim/lingvo-portal/internal/http/handlers/catalog/packageremove"
	"github.com/arinakim/lingvo-portal/internal/http/handlers/health"
	"github.com/arinakim/lingvo-portal/internal/http/handlers/subscription/approve"
	"github.com/arinakim/lingvo-portal/internal/http/handlers/subscription/checkout"
	"github.com/arinakim/lingvo-portal/internal/http/handlers/subscription/list"
	"github.com/arinakim/lingvo-portal/internal/http/handlers/subscription/listown"
	"github.com/arinakim/lingvo-portal/internal/http/handlers/subscription/read"
	"github.com/arinakim/lingvo-portal/internal/http/handlers/subscription/receipt"
	"github.com/arinakim/lingvo-portal/internal/http/handlers/subscription/remove"
	"github.com/arinakim/lingvo-portal/internal/http/handlers/subscription/update"
	"github.com/arinakim/lingvo-portal/internal/http/middlewarectx"
	"github.com/arinakim/lingvo-portal/internal/lib/jwt"
	"github.com/arinakim/lingvo-portal/internal/models"
	auditservice "github.com/arinakim/lingvo-portal/internal/services/audit"
	authservice "github.com/arinakim/lingvo-portal/internal/services/auth"
	cartservice "github.com/arinakim/lingvo-portal/internal/services/cart"
	catalogservice "github.com/arinakim/lingvo-portal/internal/services/catalog"
	subservice "github.com/arinakim/lingvo-portal/internal/services/subscription"
	"github.com/arinakim/lingvo-portal/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, storage *repository.Storage,
	authService *authservice.AuthService, cartService *cartservice.CartService,
	subscriptionService *subservice.SubscriptionService, catalogService *catalogservice.CatalogService,
	auditService *auditservice.AuditService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа студента с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/cart", get.New(logger, cartService).ServeHTTP)
			r.Post("/cart/items", additem.New(logger, cartService).ServeHTTP)
			r.Delete("/cart/items/{packageID}", removeitem.New(logger, cartService).ServeHTTP)
			r.Post("/subscriptions", checkout.New(logger, subscriptionService).ServeHTTP)
			r.Post("/subscriptions/{id}/receipt", receipt.New(logger, subscriptionService).ServeHTTP)
			r.Get("/subscriptions/my", listown.New(logger, subscriptionService).ServeHTTP)
		})

		// Административная группа: доступна администратору и ассистенту
		r.Route("/admin", func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RequireRole(logger, models.RoleAdmin, models.RoleAssistant))
			r.Get("/subscriptions", list.New(logger, subscriptionService).ServeHTTP)
			r.Get("/subscriptions/{id}", read.New(logger, subscriptionService).ServeHTTP)
			r.Put("/subscriptions/{id}", update.New(logger, subscriptionService).ServeHTTP)
			r.Delete("/subscriptions/{id}", remove.New(logger, subscriptionService).ServeHTTP)
			r.Post("/subscriptions/{id}/approve", approve.New(logger, subscriptionService).ServeHTTP)
			r.Delete("/packages/{id}", packageremove.New(logger, catalogService).ServeHTTP)
			r.Get("/audit", auditlist.New(logger, auditService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, storage).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
