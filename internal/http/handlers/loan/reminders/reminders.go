// Package reminders реализует HTTP-обработчик просмотра напоминаний
// о предстоящих сроках погашения займов.
package reminders

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ledgerly/finance-ledger/internal/http/middlewarectx"
	"github.com/ledgerly/finance-ledger/internal/http/response"
	"github.com/ledgerly/finance-ledger/internal/lib/sl"
)

// Handler управляет HTTP-запросами на просмотр напоминаний.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Напоминания о займах
// @Description Возвращает активные займы текущего пользователя, срок которых еще не прошел.
// @Tags Loans
// @Produce  json
// @Success 200 {object} map[string]any "Список напоминаний"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /loans/reminders [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.loan.reminders"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || email == "" {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	result, err := h.service.RemindersForUser(r.Context(), email, time.Now())
	if err != nil {
		log.Error("failed to list reminders", sl.Err(err))
		status, body := response.FromError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"reminders": result,
		"count":     len(result),
	}))
}
