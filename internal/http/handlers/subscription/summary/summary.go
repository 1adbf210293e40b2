// Package summary реализует HTTP-обработчики сводок по подпискам пользователя
// за месяц и за год.
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

// Виды сводок по подпискам.
const (
	KindMonthly = "monthly"
	KindYearly  = "yearly"
)

// Handler обрабатывает запросы на получение сводки по подпискам.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики
	kind    string       // Вид сводки: monthly или yearly
}

// Service описывает интерфейс бизнес-логики сводок по подпискам.
type Service interface {
	MonthlySubscriptions(ctx context.Context, username string, month, year int) (*report.MonthlySubscriptionSummary, error)
	YearlySubscriptions(ctx context.Context, username string, year int) (*report.YearlySubscriptionSummary, error)
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
// @Summary Сводка по подпискам
// @Description Возвращает стоимость подписок за месяц или за год. В месячной сводке
// списком идут подписки со списанием в этом месяце, а итог считается по всем активным.
// @Tags Subscriptions
// @Produce  json
// @Param month query int false "Месяц (1-12)"
// @Param year query int false "Год"
// @Success 200 {object} map[string]any "Сводка по подпискам"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions/{period} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.summary"

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
	if h.kind == KindYearly {
		result, err = h.service.YearlySubscriptions(r.Context(), username, year)
	} else {
		result, err = h.service.MonthlySubscriptions(r.Context(), username, month, year)
	}
	if err != nil {
		log.Error("failed to build subscription summary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build subscription summary"))
		return
	}

	log.Info("success to build subscription summary")
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
