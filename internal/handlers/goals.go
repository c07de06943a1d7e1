package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"finance-tracker/internal/models"

	"github.com/shopspring/decimal"
)

type goalRequest struct {
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	Deadline      string  `json:"deadline"`
}

// ListGoals returns the caller's savings goals.
func (h *Handlers) ListGoals(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	goals, err := h.db.ListGoals(user.ID)
	if err != nil {
		log.Printf("ListGoals error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if goals == nil {
		goals = []models.FinancialGoal{}
	}
	writeJSON(w, http.StatusOK, goals)
}

// CreateGoal adds a savings goal.
func (h *Handlers) CreateGoal(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.TargetAmount <= 0 {
		writeError(w, http.StatusBadRequest, "Name and a positive target amount are required")
		return
	}
	if req.CurrentAmount < 0 {
		writeError(w, http.StatusBadRequest, "Current amount cannot be negative")
		return
	}
	deadline, err := parseDate(req.Deadline)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Deadline must be formatted as YYYY-MM-DD")
		return
	}

	goal, err := h.db.CreateGoal(user.ID, req.Name, req.TargetAmount, req.CurrentAmount, deadline)
	if err != nil {
		log.Printf("CreateGoal error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

// UpdateGoal edits a goal's name, target and deadline. The saved amount is
// only changed through contributions.
func (h *Handlers) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid goal ID")
		return
	}

	goal, err := h.db.GetGoal(user.ID, id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Goal not found")
		return
	}

	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.TargetAmount <= 0 {
		writeError(w, http.StatusBadRequest, "Name and a positive target amount are required")
		return
	}
	deadline, err := parseDate(req.Deadline)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Deadline must be formatted as YYYY-MM-DD")
		return
	}

	goal.Name = req.Name
	goal.TargetAmount = req.TargetAmount
	goal.Deadline = deadline
	if err := h.db.UpdateGoal(goal); err != nil {
		log.Printf("UpdateGoal error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

// DeleteGoal removes a goal.
func (h *Handlers) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid goal ID")
		return
	}

	if _, err := h.db.GetGoal(user.ID, id); err != nil {
		writeError(w, http.StatusNotFound, "Goal not found")
		return
	}
	if err := h.db.DeleteGoal(user.ID, id); err != nil {
		log.Printf("DeleteGoal error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Goal deleted"})
}

// Amount stays raw so malformed values ("abc", nested objects) get the
// descriptive validation error instead of a generic decode failure.
type contributionRequest struct {
	Amount json.RawMessage `json:"amount"`
}

// Contribute adds a positive amount to a goal's saved total. The amount is
// parsed as a decimal and rejected outright when it is malformed or not
// positive; the saved total never decreases.
func (h *Handlers) Contribute(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid goal ID")
		return
	}

	if _, err := h.db.GetGoal(user.ID, id); err != nil {
		writeError(w, http.StatusNotFound, "Goal not found")
		return
	}

	var req contributionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	raw := strings.Trim(strings.TrimSpace(string(req.Amount)), `"`)
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Amount must be a valid decimal number")
		return
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		writeError(w, http.StatusBadRequest, "Amount must be a positive number")
		return
	}

	goal, err := h.db.AddGoalContribution(user.ID, id, amount.InexactFloat64())
	if err != nil {
		log.Printf("Contribute error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, goal)
}
