package handlers

import (
	"log"
	"math"
	"net/http"
	"time"
)

type budgetRequest struct {
	Category int64    `json:"category"`
	Limit    *float64 `json:"limit"`
}

// budgetStatus is a budget enriched with spending figures for the list view.
type budgetStatus struct {
	ID           int64   `json:"id"`
	Category     int64   `json:"category"`
	CategoryName string  `json:"category_name"`
	Limit        float64 `json:"limit"`
	Spent        float64 `json:"spent"`
	TotalSpent   float64 `json:"total_spent"`
	Percentage   float64 `json:"percentage"`
	Remaining    float64 `json:"remaining"`
}

// ListBudgets returns the caller's budgets with current-month spending,
// all-time spending, percentage used, and the remaining amount. Spending is
// matched on the budget's category name against the expense labels.
func (h *Handlers) ListBudgets(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	budgets, err := h.db.ListBudgets(user.ID)
	if err != nil {
		log.Printf("ListBudgets error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	statuses := make([]budgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent, err := h.db.SumCategorySince(user.ID, b.CategoryName, startOfMonth)
		if err != nil {
			log.Printf("ListBudgets spent error: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		totalSpent, err := h.db.SumCategory(user.ID, b.CategoryName)
		if err != nil {
			log.Printf("ListBudgets total error: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		// limit = 0 reports 0% used, never a division by zero
		percentage := 0.0
		if b.Limit > 0 {
			percentage = math.Round(spent/b.Limit*1000) / 10
		}

		statuses = append(statuses, budgetStatus{
			ID:           b.ID,
			Category:     b.CategoryID,
			CategoryName: b.CategoryName,
			Limit:        b.Limit,
			Spent:        spent,
			TotalSpent:   totalSpent,
			Percentage:   percentage,
			Remaining:    b.Limit - spent,
		})
	}
	writeJSON(w, http.StatusOK, statuses)
}

// CreateBudget creates a budget for a category, or updates the limit when
// one already exists for that category.
func (h *Handlers) CreateBudget(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Category == 0 || req.Limit == nil {
		writeError(w, http.StatusBadRequest, "Category and limit are required")
		return
	}
	if *req.Limit < 0 {
		writeError(w, http.StatusBadRequest, "Limit must be a positive number")
		return
	}

	if _, err := h.db.GetCategory(user.ID, req.Category); err != nil {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}

	budget, created, err := h.db.UpsertBudget(user.ID, req.Category, *req.Limit)
	if err != nil {
		log.Printf("CreateBudget error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, budget)
}

// UpdateBudget sets a new limit on an existing budget.
func (h *Handlers) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid budget ID")
		return
	}

	if _, err := h.db.GetBudget(user.ID, id); err != nil {
		writeError(w, http.StatusNotFound, "Budget not found")
		return
	}

	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Limit == nil || *req.Limit < 0 {
		writeError(w, http.StatusBadRequest, "Limit must be a positive number")
		return
	}

	if err := h.db.UpdateBudgetLimit(user.ID, id, *req.Limit); err != nil {
		log.Printf("UpdateBudget error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	budget, err := h.db.GetBudget(user.ID, id)
	if err != nil {
		log.Printf("UpdateBudget reload error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, budget)
}

// DeleteBudget removes a budget.
func (h *Handlers) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid budget ID")
		return
	}

	if _, err := h.db.GetBudget(user.ID, id); err != nil {
		writeError(w, http.StatusNotFound, "Budget not found")
		return
	}
	if err := h.db.DeleteBudget(user.ID, id); err != nil {
		log.Printf("DeleteBudget error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Budget deleted"})
}
