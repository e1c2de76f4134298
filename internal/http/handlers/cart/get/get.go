// Package get реализует HTTP-обработчик выдачи корзины студента.
//
// Корзина создается лениво: первый запрос возвращает пустую корзину,
// параллельные запросы не создают двух корзин для одного студента.
package get

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/arinakim/lingvo-portal/internal/http/middlewarectx"
	"github.com/arinakim/lingvo-portal/internal/http/response"
	"github.com/arinakim/lingvo-portal/internal/lib/sl"
	"github.com/arinakim/lingvo-portal/internal/models"
)

// Handler управляет HTTP-запросами на чтение корзины.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики корзины.
type Service interface {
	GetCart(ctx context.Context, studentUID string) (*models.Cart, []*models.CartItem, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить корзину
// @Description Возвращает корзину текущего студента с позициями, создавая пустую при первом обращении.
// @Tags Cart
// @Produce  json
// @Success 200 {object} response.Response "Корзина с позициями"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Security BearerAuth
// @Router /cart [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.get"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	studentUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || studentUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	cart, items, err := h.service.GetCart(r.Context(), studentUID)
	if err != nil {
		log.Error("failed to get cart", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error(response.MessageFromError(err)))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"cart":  cart,
		"items": items,
	}))
}
