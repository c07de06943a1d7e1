package handlers

import (
	"log"
	"net/http"
	"strings"

	"finance-tracker/internal/chat"
	"finance-tracker/internal/forecast"
)

type chatbotRequest struct {
	Query string `json:"query"`
}

// Chatbot answers a free-text question about the caller's finances. The
// reply is always a formatted string; queries the engine cannot place get a
// fixed guidance message rather than an error.
func (h *Handlers) Chatbot(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	var req chatbotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}

	expenses, err := h.db.ListExpenses(user.ID)
	if err != nil {
		log.Printf("Chatbot expenses error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	budgets, err := h.db.ListBudgets(user.ID)
	if err != nil {
		log.Printf("Chatbot budgets error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	goals, err := h.db.ListGoals(user.ID)
	if err != nil {
		log.Printf("Chatbot goals error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"response": chat.Respond(req.Query, expenses, budgets, goals),
	})
}

// Predictions returns the per-category three-month forecast. Categories
// without enough history are omitted; a user with no expenses gets an empty
// list.
func (h *Handlers) Predictions(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	expenses, err := h.db.ListExpenses(user.ID)
	if err != nil {
		log.Printf("Predictions error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, forecast.Forecast(expenses))
}
