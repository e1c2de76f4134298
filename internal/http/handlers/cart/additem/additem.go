// Package additem реализует HTTP-обработчик добавления пакета в корзину студента.
//
// Неактивный пакет отклоняется со статусом 400, отсутствующий — 404,
// дубликат позиции или живая подписка на пакет — 409.
package additem

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/arinakim/lingvo-portal/internal/http/middlewarectx"
	"github.com/arinakim/lingvo-portal/internal/http/response"
	"github.com/arinakim/lingvo-portal/internal/lib/sl"
	"github.com/arinakim/lingvo-portal/internal/models"
)

// Handler управляет HTTP-запросами на добавление позиции корзины.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики корзины.
type Service interface {
	AddItem(ctx context.Context, studentUID string, packageID int) (*models.CartItem, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить пакет в корзину
// @Description Кладет учебный пакет в корзину текущего студента. Пакет может лежать в корзине не более одного раза.
// @Tags Cart
// @Accept  json
// @Produce  json
// @Param request body models.DummyAddCartItem true "Идентификатор пакета"
// @Success 201 {object} response.Response "Созданная позиция с данными пакета"
// @Failure 400 {object} response.ErrorResponse "Пакет неактивен"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пакет не найден"
// @Failure 409 {object} response.ErrorResponse "Пакет уже в корзине или есть живая подписка"
// @Security BearerAuth
// @Router /cart/items [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.additem"
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

	var req models.DummyAddCartItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	item, err := h.service.AddItem(r.Context(), studentUID, req.PackageID)
	if err != nil {
		log.Error("failed to add cart item", sl.Err(err))
		w.WriteHeader(response.StatusFromError(err))
		render.JSON(w, r, response.Error(response.MessageFromError(err)))
		return
	}

	log.Info("cart item added", slog.Int("package_id", req.PackageID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(item))
}
