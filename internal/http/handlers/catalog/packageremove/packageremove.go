// Package packageremove реализует административный HTTP-обработчик удаления пакета из каталога.
package packageremove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/arinakim/lingvo-portal/internal/http/response"
	"github.com/arinakim/lingvo-portal/internal/lib/sl"
)

// Handler управляет HTTP-запросами на удаление пакета.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления пакета.
type Service interface {
	RemovePackage(ctx context.Context, packageID int) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удаление пакета
// @Description Удаляет пакет из каталога. Пакет, на который есть хотя бы одна подписка, удалить нельзя. Доступно администратору и ассистенту.
// @Tags Admin
// @Produce  json
// @Param id path int true "ID пакета"
// @Success 200 {object} response.Response "Пакет удалён"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Пакет не найден"
// @Failure 409 {object} response.ErrorResponse "На пакет ссылаются подписки"
// @Security BearerAuth
// @Router /admin/packages/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.packageremove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	packageID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || packageID <= 0 {
		log.Error("invalid package id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid package id"))
		return
	}

	if err := h.service.RemovePackage(r.Context(), packageID); err != nil {
		log.Error("failed to remove package", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error(response.MessageFromError(err)))
		return
	}

	log.Info("package removed", slog.Int("package_id", packageID))
	render.JSON(w, r, response.OK())
}
