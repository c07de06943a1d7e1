package handlers

import (
	"log"
	"net/http"
	"strings"

	"finance-tracker/internal/models"
)

type categoryRequest struct {
	Name string `json:"name"`
}

// ListCategories returns the caller's category catalog.
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	categories, err := h.db.ListCategories(user.ID)
	if err != nil {
		log.Printf("ListCategories error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// CreateCategory adds a category to the caller's catalog.
func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	category, err := h.db.CreateCategory(user.ID, req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Category already exists")
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

// UpdateCategory renames a category. Existing expenses keep the label they
// were created with; only future expenses pick up the new name.
func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	category, err := h.db.GetCategory(user.ID, id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	category.Name = req.Name
	if err := h.db.UpdateCategory(category); err != nil {
		log.Printf("UpdateCategory error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// DeleteCategory removes a category from the catalog.
func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	if _, err := h.db.GetCategory(user.ID, id); err != nil {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}
	if err := h.db.DeleteCategory(user.ID, id); err != nil {
		log.Printf("DeleteCategory error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}
