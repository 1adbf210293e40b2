// Package summary реализует HTTP-обработчики сводок расходов пользователя
// за месяц, за год и за всё время.
package summary

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

// Виды сводок расходов.
const (
	KindMonthly = "monthly"
	KindYearly  = "yearly"
	KindAllTime = "alltime"
)

// Handler обрабатывает запросы на получение сводки расходов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики
	kind    string       // Вид сводки: monthly, yearly или alltime
}

// Service описывает интерфейс бизнес-логики сводок расходов.
type Service interface {
	MonthlyExpenses(ctx context.Context, username string, month, year int) (*report.MonthlyExpenseSummary, error)
	YearlyExpenses(ctx context.Context, username string, year int) (*report.YearlyExpenseSummary, error)
	AllTimeExpenses(ctx context.Context, username string) (*report.AllTimeExpenseSummary, error)
}

// New создает новый Handler для сводки указанного вида.
func New(log *slog.Logger, service Service, kind string) *Handler {
	return &Handler{
		log:     log,
		service: service,
		kind:    kind,
	}
}

// ServeHTTP godoc
// @Summary Сводка расходов
// @Description Возвращает сводку расходов за месяц, за год или за всё время.
// Месяц и год берутся из query-параметров, по умолчанию — текущие.
// @Tags Expenses
// @Produce  json
// @Param month query int false "Месяц (1-12)"
// @Param year query int false "Год"
// @Success 200 {object} map[string]any "Сводка расходов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /expenses/{period} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.summary"

	log := h.log.With(
		slog.String("op", op),
		slog.String("kind", h.kind),
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

	var (
		result any
		err    error
	)
	switch h.kind {
	case KindYearly:
		result, err = h.service.YearlyExpenses(r.Context(), username, year)
	case KindAllTime:
		result, err = h.service.AllTimeExpenses(r.Context(), username)
	default:
		result, err = h.service.MonthlyExpenses(r.Context(), username, month, year)
	}
	if err != nil {
		log.Error("failed to build expense summary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build expense summary"))
		return
	}

	log.Info("success to build expense summary")
	render.JSON(w, r, response.OKWithData(result))
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
