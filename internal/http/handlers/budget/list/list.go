// Package list реализует HTTP-обработчик получения списка бюджетов пользователя.
package list

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

// Handler обрабатывает запросы на получение списка бюджетов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики
}

// Service описывает интерфейс бизнес-логики списка бюджетов.
type Service interface {
	List(ctx context.Context, username string) ([]*models.Budget, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список бюджетов
// @Description Возвращает все бюджеты текущего пользователя, новые первыми.
// @Tags Budgets
// @Produce  json
// @Success 200 {object} map[string]any "Список бюджетов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /budgets/list [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.budget.list"

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

	budgets, err := h.service.List(r.Context(), username)
	if err != nil {
		log.Error("failed to list budgets", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list budgets"))
		return
	}

	log.Info("success to list budgets", slog.Int("count", len(budgets)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"budgets": budgets,
	}))
}
