// Package export реализует HTTP-обработчик выгрузки истории транзакций в CSV.
package export

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ledgerly/finance-ledger/internal/http/handlers/transaction/history"
	"github.com/ledgerly/finance-ledger/internal/http/middlewarectx"
	"github.com/ledgerly/finance-ledger/internal/http/response"
	"github.com/ledgerly/finance-ledger/internal/lib/sl"
)

// Handler управляет HTTP-запросами на выгрузку CSV.
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
// @Summary Выгрузка истории в CSV
// @Description Возвращает историю текущего пользователя файлом CSV. Принимает те же query-параметры фильтра, что и история.
// @Tags Transactions
// @Produce  text/csv
// @Success 200 {string} string "CSV-файл"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации фильтра"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /transactions/export [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.transaction.export"
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

	req := history.FilterFromQuery(r)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)

	if err := h.service.ExportCSV(r.Context(), email, req, w); err != nil {
		log.Error("failed to export csv", sl.Err(err))
		status, body := response.FromError(err)
		w.Header().Del("Content-Disposition")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		render.JSON(w, r, body)
		return
	}

	log.Info("history exported", slog.String("email", email))
}
