package handlers

import (
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"finance-tracker/internal/auth"
)

var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// MinPasswordLength is enforced on registration and password reset.
const MinPasswordLength = 8

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account and returns a session token.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}
	if len(req.Password) < MinPasswordLength {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength))
		return
	}
	if req.Email != "" && !emailPattern.MatchString(req.Email) {
		writeError(w, http.StatusBadRequest, "Invalid email format")
		return
	}

	if existing, err := h.db.GetUserByUsername(req.Username); err == nil && existing != nil {
		writeError(w, http.StatusBadRequest, "Username is already taken")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user, err := h.db.CreateUser(req.Username, req.Email, hash)
	if err != nil {
		log.Printf("Failed to create user: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.startSession(user.ID)
	if err != nil {
		log.Printf("Failed to create session: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"token": token, "user": user})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates a user and returns a session token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.db.GetUserByUsername(strings.TrimSpace(req.Username))
	if err != nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.startSession(user.ID)
	if err != nil {
		log.Printf("Failed to create session: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

// Logout invalidates the caller's session token.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r); token != "" {
		if err := h.db.DeleteSession(token); err != nil {
			log.Printf("Failed to delete session: %v", err)
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Profile returns the authenticated user's account details.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, GetUserFromContext(r))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword verifies the current password, stores a new hash, and
// rotates the user's sessions.
func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "Both current and new password are required")
		return
	}
	if !auth.CheckPassword(req.CurrentPassword, user.PasswordHash) {
		writeError(w, http.StatusBadRequest, "Current password is incorrect")
		return
	}
	if len(req.NewPassword) < MinPasswordLength {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength))
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if err := h.db.UpdateUserPassword(user.ID, hash); err != nil {
		log.Printf("Failed to update password: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.rotateSessions(user.ID)
	if err != nil {
		log.Printf("Failed to rotate sessions: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully", "token": token})
}

type updateEmailRequest struct {
	NewEmail string `json:"new_email"`
}

// UpdateEmail changes the account email and rotates sessions.
func (h *Handlers) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	var req updateEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.NewEmail = strings.TrimSpace(req.NewEmail)
	if req.NewEmail == "" {
		writeError(w, http.StatusBadRequest, "New email is required")
		return
	}
	if !emailPattern.MatchString(req.NewEmail) {
		writeError(w, http.StatusBadRequest, "Invalid email format")
		return
	}
	if req.NewEmail == user.Email {
		writeError(w, http.StatusBadRequest, "New email is the same as the current email")
		return
	}

	if err := h.db.UpdateUserEmail(user.ID, req.NewEmail); err != nil {
		log.Printf("Failed to update email: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.rotateSessions(user.ID)
	if err != nil {
		log.Printf("Failed to rotate sessions: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Email updated successfully", "token": token})
}

func (h *Handlers) startSession(userID int64) (string, error) {
	token, err := auth.GenerateSessionToken()
	if err != nil {
		return "", err
	}
	if err := h.db.CreateSession(token, userID, time.Now().Add(SessionDuration)); err != nil {
		return "", err
	}
	return token, nil
}

// rotateSessions drops every session the user holds and issues a fresh one.
func (h *Handlers) rotateSessions(userID int64) (string, error) {
	if err := h.db.DeleteUserSessions(userID); err != nil {
		return "", err
	}
	return h.startSession(userID)
}
