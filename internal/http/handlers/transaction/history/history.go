// Package history реализует HTTP-обработчик выборки истории транзакций
// с фильтрацией по датам, виду и суммам и сортировкой.
package history

import (
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

// Handler управляет HTTP-запросами на выборку истории.
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
// @Summary История транзакций
// @Description Возвращает историю текущего пользователя. Фильтр передается query-параметрами.
// @Tags Transactions
// @Produce  json
// @Param date_from query string false "Нижняя граница даты (2006-01-02)"
// @Param date_to query string false "Верхняя граница даты (2006-01-02)"
// @Param kind query string false "Debit или Credit"
// @Param amount_min query string false "Нижняя граница суммы"
// @Param amount_max query string false "Верхняя граница суммы"
// @Param sort_field query string false "date или amount"
// @Param sort_order query string false "asc или desc"
// @Success 200 {object} map[string]any "Список транзакций"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации фильтра"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /transactions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.transaction.history"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	req := FilterFromQuery(r)
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

	txns, err := h.service.ListHistory(r.Context(), email, req)
	if err != nil {
		log.Error("failed to list history", sl.Err(err))
		status, body := response.FromError(err)
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("history listed", slog.Int("count", len(txns)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"transactions": txns,
		"count":        len(txns),
	}))
}

// FilterFromQuery собирает фильтр истории из query-параметров запроса.
func FilterFromQuery(r *http.Request) models.DummyFilter {
	q := r.URL.Query()
	return models.DummyFilter{
		DateFrom:  q.Get("date_from"),
		DateTo:    q.Get("date_to"),
		Kind:      q.Get("kind"),
		AmountMin: q.Get("amount_min"),
		AmountMax: q.Get("amount_max"),
		SortField: q.Get("sort_field"),
		SortOrder: q.Get("sort_order"),
	}
}
