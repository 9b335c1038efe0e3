package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/core"
	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/importer"
	applog "github.com/FelipeFreitasGit/Controle-Financeiro/internal/log"
	"github.com/FelipeFreitasGit/Controle-Financeiro/internal/services"
)

// createTransactionRequest is the JSON body for POST /api/transactions.
// Amounts arrive as decimal strings in statement format ("1.234,56"); dates
// accept both ISO and day-first forms.
type createTransactionRequest struct {
	Kind        string `json:"kind"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Recurring   bool   `json:"recurring"`
	Installment string `json:"installment"`
}

type updateTransactionRequest struct {
	Date        *string `json:"date"`
	Description *string `json:"description"`
	Amount      *string `json:"amount"`
	Category    *string `json:"category"`
	Subcategory *string `json:"subcategory"`
	Recurring   *bool   `json:"recurring"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	date, err := core.ParseDate(strings.TrimSpace(req.Date))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "data inválida: "+req.Date)
		return
	}
	cents, err := core.ParseDecimalToCents(strings.TrimSpace(req.Amount))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "valor inválido: "+req.Amount)
		return
	}
	amount := core.Money{Cents: cents}
	description := strings.TrimSpace(req.Description)

	var created []core.Transaction
	switch core.Kind(req.Kind) {
	case core.Income:
		t, err := s.service.AddIncome(r.Context(), date, description, amount)
		if err != nil {
			writeValidationError(w, err)
			return
		}
		created = []core.Transaction{t}
	case core.Expense:
		created, err = s.service.AddExpense(r.Context(), date, description, amount, req.Category, req.Recurring, req.Installment)
		if err != nil {
			writeValidationError(w, err)
			return
		}
	default:
		writeError(w, http.StatusUnprocessableEntity, "tipo inválido: "+req.Kind)
		return
	}

	for _, t := range created {
		s.logging.LogTransactionRecorded(r.Context(), applog.OpCreate, t.ID, t.Description, t.Amount.Cents)
	}
	writeJSON(w, http.StatusCreated, map[string]any{"transactions": created})
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	var upd services.TransactionUpdate
	if req.Date != nil {
		date, err := core.ParseDate(strings.TrimSpace(*req.Date))
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "data inválida: "+*req.Date)
			return
		}
		upd.Date = &date
	}
	if req.Amount != nil {
		cents, err := core.ParseDecimalToCents(strings.TrimSpace(*req.Amount))
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "valor inválido: "+*req.Amount)
			return
		}
		upd.AmountCents = &cents
	}
	upd.Description = req.Description
	upd.Category = req.Category
	upd.Subcategory = req.Subcategory
	upd.Recurring = req.Recurring

	updated, err := s.service.UpdateTransaction(r.Context(), id, upd)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			writeError(w, http.StatusNotFound, "transação não encontrada: "+id)
			return
		}
		writeValidationError(w, err)
		return
	}

	s.logging.LogTransactionRecorded(r.Context(), applog.OpUpdate, updated.ID, updated.Description, updated.Amount.Cents)
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	s.service.DeleteTransaction(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": s.service.List(r.Context()),
	})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": s.service.Categories(),
	})
}

func (s *Server) handleYearView(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil || year < 1 {
		writeError(w, http.StatusUnprocessableEntity, "ano inválido: "+r.PathValue("year"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"year":         year,
		"transactions": s.service.YearView(r.Context(), year),
	})
}

func (s *Server) handleMonthSummary(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year := now.Year()
	month := int(now.Month())
	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "ano inválido: "+v)
			return
		}
		year = y
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			writeError(w, http.StatusUnprocessableEntity, "mês inválido: "+v)
			return
		}
		month = m
	}

	writeJSON(w, http.StatusOK, s.service.MonthSummary(r.Context(), year, month))
}

// handleImport accepts a multipart statement upload. Form fields: "file" (the
// CSV), "mode" (append|replace, default append), "categoria" (replace target,
// defaults to the credit-card category).
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "upload inválido")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "arquivo ausente: campo 'file'")
		return
	}
	defer file.Close()

	mode := services.ImportAppend
	switch strings.TrimSpace(r.FormValue("mode")) {
	case "", string(services.ImportAppend):
	case string(services.ImportReplace):
		mode = services.ImportReplace
	default:
		writeError(w, http.StatusUnprocessableEntity, "modo inválido: "+r.FormValue("mode"))
		return
	}
	category := strings.TrimSpace(r.FormValue("categoria"))

	result, err := s.service.ImportStatement(r.Context(), file, mode, category)
	if err != nil {
		var formatErr *importer.ImportFormatError
		if errors.As(err, &formatErr) {
			writeError(w, http.StatusUnprocessableEntity, formatErr.Error())
			return
		}
		s.logging.LogError(r.Context(), "Statement import failed", err,
			applog.ComponentImport, applog.OpImport, applog.NewFields())
		writeError(w, http.StatusInternalServerError, "falha ao importar extrato")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transacoes.csv"`)
	if err := s.service.Export(r.Context(), w); err != nil {
		s.logging.LogError(r.Context(), "Export failed", err,
			applog.ComponentHTTP, applog.OpExport, applog.NewFields())
	}
}
