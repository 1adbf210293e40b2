// Package dashboard реализует HTTP-обработчик сводки главного экрана:
// бюджет, расходы и стоимость подписок текущего месяца.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-aggregator/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-aggregator/internal/http/response"
	"github.com/magabrotheeeer/finance-aggregator/internal/lib/sl"
	report "github.com/magabrotheeeer/finance-aggregator/internal/services/report"
)

// Handler обрабатывает запросы на сводку главного экрана.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики
}

// Service описывает интерфейс бизнес-логики сводки главного экрана.
type Service interface {
	Dashboard(ctx context.Context, username string, month, year int) (*report.DashboardSummary, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка главного экрана
// @Description Возвращает расходы текущего месяца, месячную стоимость всех активных
// подписок, бюджет и остаток бюджета после обоих видов трат.
// @Tags Reports
// @Produce  json
// @Success 200 {object} map[string]any "Сводка главного экрана"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /dashboard/summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.dashboard"

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

	now := time.Now()
	summary, err := h.service.Dashboard(r.Context(), username, int(now.Month()), now.Year())
	if err != nil {
		log.Error("failed to build dashboard summary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build dashboard summary"))
		return
	}

	log.Info("success to build dashboard summary")
	render.JSON(w, r, response.OKWithData(summary))
}
