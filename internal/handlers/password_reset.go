package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"finance-tracker/internal/auth"
)

type resetRequestBody struct {
	Email string `json:"email"`
}

// RequestPasswordReset emails a single-use reset link. The response is the
// same whether or not the email matches an account, to avoid revealing which
// addresses are registered.
func (h *Handlers) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequestBody
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	sent := map[string]string{"message": "Password reset email has been sent if the email is valid."}

	user, err := h.db.GetUserByEmail(req.Email)
	if err != nil {
		writeJSON(w, http.StatusOK, sent)
		return
	}

	token := auth.GenerateResetToken()
	if err := h.db.CreateResetToken(token, user.ID, time.Now().Add(ResetTokenDuration)); err != nil {
		log.Printf("Failed to store reset token: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resetLink := fmt.Sprintf("%s/reset-password/%s", h.baseURL, token)
	body := fmt.Sprintf("Hello %s,\n\n"+
		"You requested a password reset for your expense tracker account.\n\n"+
		"Please open the link below to reset your password:\n%s\n\n"+
		"If you didn't request this, please ignore this email.\n",
		user.Username, resetLink)

	if err := h.mailer.Send(user.Email, "Password reset for your expense tracker", body); err != nil {
		log.Printf("Failed to send reset email: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, sent)
}

type validateTokenBody struct {
	Token string `json:"token"`
}

// ValidateResetToken reports whether a reset token is still usable.
func (h *Handlers) ValidateResetToken(w http.ResponseWriter, r *http.Request) {
	var req validateTokenBody
	if err := decodeJSON(r, &req); err != nil || req.Token == "" {
		writeError(w, http.StatusBadRequest, "Token is required")
		return
	}

	if _, err := h.db.GetResetToken(req.Token); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"valid": false, "error": "Invalid or expired token"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"valid": true})
}

type resetPasswordBody struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ResetPassword consumes a valid token, stores the new password, and
// invalidates existing sessions.
func (h *Handlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordBody
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Token == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "Token and new password are required")
		return
	}
	if len(req.NewPassword) < MinPasswordLength {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength))
		return
	}

	userID, err := h.db.GetResetToken(req.Token)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or expired token")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if err := h.db.UpdateUserPassword(userID, hash); err != nil {
		log.Printf("Failed to update password: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if err := h.db.MarkResetTokenUsed(req.Token); err != nil {
		log.Printf("Failed to consume reset token: %v", err)
	}

	token, err := h.rotateSessions(userID)
	if err != nil {
		log.Printf("Failed to rotate sessions: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password has been reset successfully", "token": token})
}
