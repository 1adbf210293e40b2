// Package update реализует HTTP-обработчик изменения учётной записи:
// смену имени пользователя и пароля после проверки текущего пароля.
package update

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
	auth "github.com/magabrotheeeer/finance-aggregator/internal/services/auth"
)

// Handler обрабатывает HTTP-запросы на изменение учётной записи.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис аутентификации
	validate *validator.Validate // Валидатор для проверки входных данных
}

// Service описывает интерфейс бизнес-логики изменения учётной записи.
type Service interface {
	UpdateAccount(ctx context.Context, userUID string, req models.DummyAccountUpdate) (*models.User, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменить учётную запись
// @Description Меняет имя пользователя и/или пароль после проверки текущего пароля.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.DummyAccountUpdate true "Данные изменения учётной записи"
// @Success 200 {object} map[string]any "Учётная запись обновлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или неверный текущий пароль"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /account [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.account.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyAccountUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
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

	user, err := h.service.UpdateAccount(r.Context(), userUID, req)
	if err != nil {
		log.Error("failed to update account", sl.Err(err))
		if errors.Is(err, auth.ErrInvalidCredentials) {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("current password is incorrect"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update account"))
		return
	}

	log.Info("account updated", slog.String("username", user.Username))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"username": user.Username,
	}))
}
