// Package message реализует HTTP-обработчик отправки сообщения финансовому ассистенту.
package message

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/finance-aggregator/internal/http/middlewarectx"
	"github.com/magabrotheeeer/finance-aggregator/internal/http/response"
	"github.com/magabrotheeeer/finance-aggregator/internal/lib/sl"
	"github.com/magabrotheeeer/finance-aggregator/internal/models"
	chat "github.com/magabrotheeeer/finance-aggregator/internal/services/chat"
)

// Handler обрабатывает запросы на отправку сообщения ассистенту.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики чата с ассистентом.
type Service interface {
	SendMessage(ctx context.Context, userUID string, req models.DummyChatMessage) (*chat.MessageResult, error)
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
// @Summary Сообщение ассистенту
// @Description Отправляет сообщение финансовому ассистенту и возвращает его ответ.
// Недельная квота сообщений списывается до обращения к провайдеру; при исчерпании
// квоты возвращается 429.
// @Tags Chat
// @Accept  json
// @Produce  json
// @Param request body models.DummyChatMessage true "Сообщение, история и финансовый контекст"
// @Success 200 {object} map[string]any "Ответ ассистента и остаток квоты"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 429 {object} response.ErrorResponse "Недельный лимит сообщений исчерпан"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /chat/message [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.chat.message"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyChatMessage
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

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	result, err := h.service.SendMessage(r.Context(), userUID, req)
	if err != nil {
		if errors.Is(err, chat.ErrWeeklyLimitReached) {
			log.Info("weekly message limit reached")
			w.WriteHeader(http.StatusTooManyRequests)
			render.JSON(w, r, response.Error("weekly message limit reached"))
			return
		}
		log.Error("failed to send message to assistant", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not send message"))
		return
	}

	log.Info("success to send message to assistant", slog.Int("current_count", result.CurrentCount))
	render.JSON(w, r, response.OKWithData(result))
}
