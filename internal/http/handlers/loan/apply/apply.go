// Package apply реализует HTTP-обработчик выдачи займа.
//
// Handler принимает заявку с телом займа, ставкой и периодом, вызывает
// бизнес-логику выдачи и возвращает зафиксированные условия займа:
// сумму к возврату и ежемесячный платеж.
package apply

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/ledgerly/finance-ledger/internal/http/middlewarectx"
	"github.com/ledgerly/finance-ledger/internal/http/response"
	"github.com/ledgerly/finance-ledger/internal/lib/sl"
	"github.com/ledgerly/finance-ledger/internal/models"
)

// Handler управляет HTTP-запросами на выдачу займов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
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
// @Summary Оформить займ
// @Description Выдает займ текущему пользователю и зачисляет тело займа на баланс.
// @Tags Loans
// @Accept  json
// @Produce  json
// @Param request body models.DummyLoan true "Заявка на займ"
// @Success 200 {object} map[string]any "Условия выданного займа"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /loans [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.loan.apply"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyLoan
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	email, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || email == "" {
		log.Error("email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	loan, err := h.service.Apply(r.Context(), email, req)
	if err != nil {
		log.Error("failed to disburse loan", sl.Err(err))
		status, body := response.FromError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("loan disbursed", slog.Int("id", loan.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":                  loan.ID,
		"outstanding_balance": loan.OutstandingBalance,
		"monthly_repayment":   loan.MonthlyRepayment,
		"status":              loan.Status,
	}))
}
