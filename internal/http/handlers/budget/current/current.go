// Package current реализует HTTP-обработчик получения активного бюджета пользователя.
package current

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-aggregator/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-aggregator/internal/http/response"
	"github.com/magabrotheeeer/finance-aggregator/internal/lib/sl"
	"github.com/magabrotheeeer/finance-aggregator/internal/models"
)

// Handler обрабатывает запросы на получение активного бюджета.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики
}

// Service описывает интерфейс бизнес-логики активного бюджета.
type Service interface {
	Current(ctx context.Context, username string) (*models.Budget, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Активный бюджет
// @Description Возвращает активный бюджет текущего пользователя. Если активного бюджета
// нет, в ответе budget равен null.
// @Tags Budgets
// @Produce  json
// @Success 200 {object} map[string]any "Активный бюджет или null"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /budgets/current [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.budget.current"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	budget, err := h.service.Current(r.Context(), username)
	if err != nil {
		log.Error("failed to read current budget", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read current budget"))
		return
	}

	log.Info("success to read current budget", slog.Bool("has_budget", budget != nil))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"budget": budget,
	}))
}
