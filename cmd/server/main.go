package main

import (
	"log"
	"net/http"
	"os"

	"finance-tracker/internal/handlers"
	"finance-tracker/internal/mail"
	"finance-tracker/internal/storage"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	dbPath := envOr("DB_PATH", "finance.db")
	port := envOr("PORT", "8080")
	baseURL := envOr("BASE_URL", "http://localhost:"+port)

	db, err := storage.NewDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	h := handlers.NewHandlers(db, newMailer(), baseURL)
	mux := setupRouter(h)

	log.Printf("Listening on :%s (db: %s)", port, dbPath)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	protected := func(hf http.HandlerFunc) http.Handler {
		return h.AuthMiddleware(hf)
	}

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.Handle("GET /api/auth/profile", protected(h.Profile))
	mux.Handle("POST /api/auth/change-password", protected(h.ChangePassword))
	mux.Handle("POST /api/auth/update-email", protected(h.UpdateEmail))

	mux.HandleFunc("POST /api/password-reset/request", h.RequestPasswordReset)
	mux.HandleFunc("POST /api/password-reset/validate-token", h.ValidateResetToken)
	mux.HandleFunc("POST /api/password-reset/reset", h.ResetPassword)

	mux.Handle("GET /api/expenses", protected(h.ListExpenses))
	mux.Handle("POST /api/expenses", protected(h.CreateExpense))
	mux.Handle("GET /api/expenses/{id}", protected(h.GetExpense))
	mux.Handle("PUT /api/expenses/{id}", protected(h.UpdateExpense))
	mux.Handle("DELETE /api/expenses/{id}", protected(h.DeleteExpense))

	mux.Handle("GET /api/categories", protected(h.ListCategories))
	mux.Handle("POST /api/categories", protected(h.CreateCategory))
	mux.Handle("PUT /api/categories/{id}", protected(h.UpdateCategory))
	mux.Handle("DELETE /api/categories/{id}", protected(h.DeleteCategory))

	mux.Handle("GET /api/budgets", protected(h.ListBudgets))
	mux.Handle("POST /api/budgets", protected(h.CreateBudget))
	mux.Handle("PUT /api/budgets/{id}", protected(h.UpdateBudget))
	mux.Handle("DELETE /api/budgets/{id}", protected(h.DeleteBudget))

	mux.Handle("GET /api/goals", protected(h.ListGoals))
	mux.Handle("POST /api/goals", protected(h.CreateGoal))
	mux.Handle("PUT /api/goals/{id}", protected(h.UpdateGoal))
	mux.Handle("DELETE /api/goals/{id}", protected(h.DeleteGoal))
	mux.Handle("POST /api/goals/{id}/contribute", protected(h.Contribute))

	mux.Handle("POST /api/chatbot", protected(h.Chatbot))
	mux.Handle("GET /api/predictions", protected(h.Predictions))
	mux.Handle("POST /api/suggest-category", protected(h.SuggestCategory))
	mux.Handle("GET /api/export/csv", protected(h.ExportCSV))
	mux.Handle("GET /api/export/{format}", protected(h.Export))

	return mux
}

func newMailer() mail.Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return mail.LogMailer{}
	}
	return &mail.SMTPMailer{
		Host:     host,
		Port:     envOr("SMTP_PORT", "587"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     envOr("SMTP_FROM", "noreply@localhost"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
