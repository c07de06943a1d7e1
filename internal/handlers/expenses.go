package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"finance-tracker/internal/models"
)

type expenseRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

func (req *expenseRequest) validate() (time.Time, error) {
	if req.Amount <= 0 {
		return time.Time{}, fmt.Errorf("amount must be a positive number")
	}
	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		return time.Time{}, fmt.Errorf("description is required")
	}
	if req.Date == "" {
		return time.Time{}, nil
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be formatted as YYYY-MM-DD")
	}
	return date, nil
}

// parseDate accepts a plain date or the timestamp form clients send back
// when editing a record they previously fetched.
func parseDate(s string) (time.Time, error) {
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, s)
}

// ListExpenses returns all of the caller's expenses, newest first.
func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	expenses, err := h.db.ListExpenses(user.ID)
	if err != nil {
		log.Printf("ListExpenses error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

// CreateExpense records a new expense for the caller.
func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	date, err := req.validate()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	expense, err := h.db.CreateExpense(user.ID, req.Amount, req.Description, req.Category, date)
	if err != nil {
		log.Printf("CreateExpense error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

// GetExpense returns one expense owned by the caller.
func (h *Handlers) GetExpense(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid expense ID")
		return
	}

	expense, err := h.db.GetExpense(user.ID, id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Expense not found")
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// UpdateExpense edits an expense owned by the caller.
func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid expense ID")
		return
	}

	expense, err := h.db.GetExpense(user.ID, id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Expense not found")
		return
	}

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	date, err := req.validate()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if date.IsZero() {
		date = expense.Date
	}

	expense.Amount = req.Amount
	expense.Description = req.Description
	expense.Category = req.Category
	expense.Date = date
	if err := h.db.UpdateExpense(expense); err != nil {
		log.Printf("UpdateExpense error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// DeleteExpense removes an expense owned by the caller.
func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid expense ID")
		return
	}

	if _, err := h.db.GetExpense(user.ID, id); err != nil {
		writeError(w, http.StatusNotFound, "Expense not found")
		return
	}
	if err := h.db.DeleteExpense(user.ID, id); err != nil {
		log.Printf("DeleteExpense error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Expense deleted"})
}
