// Package usage реализует HTTP-обработчик получения недельной квоты сообщений ассистенту.
package usage

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/finance-aggregator/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-aggregator/internal/http/response"
	"github.com/magabrotheeeer/finance-aggregator/internal/lib/sl"
	chat "github.com/magabrotheeeer/finance-aggregator/internal/services/chat"
)

// Handler обрабатывает запросы на получение квоты сообщений.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики
}

// Service описывает интерфейс бизнес-логики квоты сообщений.
type Service interface {
	Usage(ctx context.Context, userUID string) (*chat.UsageInfo, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Квота сообщений ассистенту
// @Description Возвращает использование недельной квоты сообщений: начало недели,
// количество отправленных сообщений, остаток и лимит.
// @Tags Chat
// @Produce  json
// @Success 200 {object} map[string]any "Использование квоты"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /chat/usage [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.chat.usage"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	info, err := h.service.Usage(r.Context(), userUID)
	if err != nil {
		log.Error("failed to read chat usage", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read chat usage"))
		return
	}

	log.Info("success to read chat usage", slog.Int("message_count", info.MessageCount))
	render.JSON(w, r, response.OKWithData(info))
}
