// Package approve реализует административный HTTP-обработчик одобрения подписки.
package approve

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
	"github.com/arinakim/lingvo-portal/internal/models"
)

// Handler управляет HTTP-запросами на одобрение подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики одобрения подписки.
type Service interface {
	Approve(ctx context.Context, actorUID string, subscriptionID int) (*models.SubscriptionDetail, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Одобрение подписки
// @Description Переводит подписку в статус approved, активирует студента и пишет запись в журнал аудита одной транзакцией. Доступно администратору и ассистенту.
// @Tags Admin
// @Produce  json
// @Param id path int true "ID подписки"
// @Success 200 {object} response.Response "Одобренная подписка с окном доступа"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 409 {object} response.ErrorResponse "Подписка уже одобрена"
// @Security BearerAuth
// @Router /admin/subscriptions/{id}/approve [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.approve"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actorUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || actorUID == "" {
		log.Error("missing user uid in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	subscriptionID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || subscriptionID <= 0 {
		log.Error("invalid subscription id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid subscription id"))
		return
	}

	sub, err := h.service.Approve(r.Context(), actorUID, subscriptionID)
	if err != nil {
		log.Error("failed to approve subscription", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error(response.MessageFromError(err)))
		return
	}

	log.Info("subscription approved",
		slog.Int("subscription_id", subscriptionID),
		slog.String("actor_uid", actorUID))
	render.JSON(w, r, response.OKWithData(sub))
}
