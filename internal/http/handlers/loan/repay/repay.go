// Package repay реализует HTTP-обработчик платежа по займу.
package repay

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ledgerly/finance-ledger/internal/http/middlewarectx"
	"github.com/ledgerly/finance-ledger/internal/http/response"
	"github.com/ledgerly/finance-ledger/internal/lib/sl"
)

// Handler управляет HTTP-запросами на погашение займов.
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
// @Summary Платеж по займу
// @Description Проводит один платеж по последнему активному займу текущего пользователя.
// @Tags Loans
// @Produce  json
// @Success 200 {object} map[string]any "Итог платежа"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Нет активного займа"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /loans/repay [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.loan.repay"
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

	result, err := h.service.Repay(r.Context(), email)
	if err != nil {
		log.Error("failed to repay loan", sl.Err(err))
		status, body := response.FromError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("loan repayment processed", slog.Int("loan_id", result.LoanID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"loan_id":     result.LoanID,
		"paid":        result.Paid,
		"outstanding": result.Outstanding,
		"status":      result.Status,
	}))
}
