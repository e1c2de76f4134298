// Package removeitem реализует HTTP-обработчик удаления пакета из корзины студента.
package removeitem

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/arinakim/lingvo-portal/internal/http/middlewarectx"
	"github.com/arinakim/lingvo-portal/internal/http/response"
	"github.com/arinakim/lingvo-portal/internal/lib/sl"
)

// Handler управляет HTTP-запросами на удаление позиции корзины.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики корзины.
type Service interface {
	RemoveItem(ctx context.Context, studentUID string, packageID int) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Убрать пакет из корзины
// @Description Удаляет позицию корзины текущего студента по идентификатору пакета.
// @Tags Cart
// @Produce  json
// @Param packageID path int true "Идентификатор пакета"
// @Success 200 {object} response.Response "Позиция удалена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Нет корзины или позиции"
// @Security BearerAuth
// @Router /cart/items/{packageID} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.removeitem"
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

	packageID, err := strconv.Atoi(chi.URLParam(r, "packageID"))
	if err != nil {
		log.Error("failed to decode package id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	if err := h.service.RemoveItem(r.Context(), studentUID, packageID); err != nil {
		log.Error("failed to remove cart item", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error(response.MessageFromError(err)))
		return
	}

	log.Info("cart item removed", slog.Int("package_id", packageID))
	render.JSON(w, r, response.OK())
}
