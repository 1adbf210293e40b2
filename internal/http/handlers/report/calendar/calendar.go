// Package calendar реализует HTTP-обработчик календарного отчёта: расходы и подписки
// выбранного месяца вместе с бюджетной сводкой.
package calendar

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-aggregator/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-aggregator/internal/http/response"
	"github.com/magabrotheeeer/finance-aggregator/internal/lib/sl"
	report "github.com/magabrotheeeer/finance-aggregator/internal/services/report"
)

// Handler обрабатывает запросы на календарный отчёт.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики
}

// Service описывает интерфейс бизнес-логики календарного отчёта.
type Service interface {
	Calendar(ctx context.Context, username string, month, year int) (*report.CalendarView, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Календарный отчёт
// @Description Возвращает расходы и подписки выбранного месяца вместе со сводкой:
// суммой расходов, стоимостью подписок, бюджетом и остатком. Месяц и год берутся
// из query-параметров, по умолчанию — текущие.
// @Tags Reports
// @Produce  json
// @Param month query int false "Месяц (1-12)"
// @Param year query int false "Год"
// @Success 200 {object} map[string]any "Календарный отчёт"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /calendar [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.calendar"

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
	month := queryInt(r, "month", int(now.Month()))
	year := queryInt(r, "year", now.Year())

	view, err := h.service.Calendar(r.Context(), username, month, year)
	if err != nil {
		log.Error("failed to build calendar view", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build calendar view"))
		return
	}

	log.Info("success to build calendar view", slog.Int("month", month), slog.Int("year", year))
	render.JSON(w, r, response.OKWithData(view))
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}
