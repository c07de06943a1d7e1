package handlers

import (
	"log"
	"net/http"
	"strings"

	"finance-tracker/internal/models"
)

type suggestRequest struct {
	Description string `json:"description"`
}

// SuggestCategory guesses a category for a new expense from its description:
// the most common category among expenses with the exact same description,
// failing that among word-level partial matches, failing that the most
// common category overall. With no history the suggestion is null.
func (h *Handlers) SuggestCategory(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	var req suggestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		writeError(w, http.StatusBadRequest, "Description is required")
		return
	}

	expenses, err := h.db.ListExpenses(user.ID)
	if err != nil {
		log.Printf("SuggestCategory error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var suggestion any
	if cat := suggestCategory(req.Description, expenses); cat != "" {
		suggestion = cat
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggested_category": suggestion})
}

func suggestCategory(description string, expenses []models.Expense) string {
	if len(expenses) == 0 {
		return ""
	}

	description = strings.ToLower(description)

	// Exact description matches first.
	var exact []models.Expense
	for _, e := range expenses {
		if strings.ToLower(e.Description) == description {
			exact = append(exact, e)
		}
	}
	if len(exact) > 0 {
		return mostCommonCategory(exact)
	}

	// Then word-level partial matches; short words are too noisy.
	for _, word := range strings.Fields(description) {
		if len(word) <= 3 {
			continue
		}
		var partial []models.Expense
		for _, e := range expenses {
			if strings.Contains(strings.ToLower(e.Description), word) {
				partial = append(partial, e)
			}
		}
		if len(partial) > 0 {
			return mostCommonCategory(partial)
		}
	}

	return mostCommonCategory(expenses)
}

func mostCommonCategory(expenses []models.Expense) string {
	counts := make(map[string]int)
	for _, e := range expenses {
		counts[e.Category]++
	}

	var best string
	bestCount := -1
	for cat, count := range counts {
		if count > bestCount || count == bestCount && cat < best {
			best = cat
			bestCount = count
		}
	}
	return best
}
