// Package receipt реализует HTTP-обработчик приёма квитанции об оплате.
//
// Квитанция принимается ровно один раз, в статусе pending; файл
// записывается в хранилище до обновления строки подписки.
package receipt

import (
	"context"
	"io"
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

// maxReceiptSize ограничивает размер файла квитанции.
const maxReceiptSize = 10 << 20 // 10 MiB

// Handler управляет HTTP-запросами на приём квитанции.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики приёма квитанции.
type Service interface {
	SubmitReceipt(ctx context.Context, studentUID string, id int, fileName string, file io.Reader) (*models.Subscription, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Загрузить квитанцию об оплате
// @Description Принимает файл квитанции (multipart-поле receipt) и переводит подписку в статус under_review.
// @Tags Subscriptions
// @Accept  mpfd
// @Produce  json
// @Param id path int true "Идентификатор подписки"
// @Param receipt formData file true "Файл квитанции"
// @Success 200 {object} response.Response "Подписка в статусе under_review"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Подписка принадлежит другому студенту"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 409 {object} response.ErrorResponse "Подписка не в статусе pending"
// @Security BearerAuth
// @Router /subscriptions/{id}/receipt [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.receipt"
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

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	if err := r.ParseMultipartForm(maxReceiptSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}
	file, header, err := r.FormFile("receipt")
	if err != nil {
		log.Error("receipt file missing", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("receipt file is required"))
		return
	}
	defer func() {
		_ = file.Close()
	}()

	sub, err := h.service.SubmitReceipt(r.Context(), studentUID, id, header.Filename, file)
	if err != nil {
		log.Error("failed to submit receipt", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error(response.MessageFromError(err)))
		return
	}

	log.Info("receipt accepted", slog.Int("id", id), slog.String("file", header.Filename))
	render.JSON(w, r, response.OKWithData(sub))
}
