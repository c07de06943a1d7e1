package handlers

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
)

// ExportCSV streams the caller's expenses as a CSV attachment, newest first.
func (h *Handlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	expenses, err := h.db.ListExpenses(user.ID)
	if err != nil {
		log.Printf("ExportCSV error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Date", "Description", "Category", "Amount"})
	for _, e := range expenses {
		_ = cw.Write([]string{
			e.Date.Format("2006-01-02"),
			e.Description,
			e.Category,
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Printf("ExportCSV write error: %v", err)
	}
}

// Export dispatches on the {format} path segment. CSV and JSON are
// supported.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.PathValue("format"))
	switch format {
	case "csv":
		h.ExportCSV(w, r)
	case "json":
		h.exportJSON(w, r)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unsupported format: %s", format))
	}
}

func (h *Handlers) exportJSON(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	expenses, err := h.db.ListExpenses(user.ID)
	if err != nil {
		log.Printf("exportJSON error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="expenses.json"`)
	writeJSON(w, http.StatusOK, expenses)
}
