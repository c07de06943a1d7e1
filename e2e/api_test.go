package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// APITestSuite drives the running server through its JSON API the way the
// frontend would: one account registered in SetupSuite, every request
// authenticated with its bearer token.
type APITestSuite struct {
	suite.Suite
	client *http.Client
	token  string
}

func (s *APITestSuite) SetupSuite() {
	s.client = &http.Client{Timeout: 10 * time.Second}

	status, body := s.request("POST", "/api/auth/register", "", map[string]any{
		"username": fmt.Sprintf("e2e-user-%d", time.Now().UnixNano()),
		"password": "e2e password",
	})
	require.Equal(s.T(), http.StatusCreated, status, "register failed: %s", body)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(s.T(), json.Unmarshal(body, &resp))
	require.NotEmpty(s.T(), resp.Token)
	s.token = resp.Token
}

// request sends a JSON request and returns the status code and raw body.
func (s *APITestSuite) request(method, path, token string, payload any) (int, []byte) {
	s.T().Helper()

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(s.T(), err)
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, appURL+path, reqBody)
	require.NoError(s.T(), err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	return resp.StatusCode, body
}

func (s *APITestSuite) authed(method, path string, payload any) (int, []byte) {
	s.T().Helper()
	return s.request(method, path, s.token, payload)
}

func (s *APITestSuite) TestUnauthenticatedRequestRejected() {
	status, _ := s.request("GET", "/api/expenses", "", nil)
	s.Equal(http.StatusUnauthorized, status)
}

func (s *APITestSuite) TestExpenseChatbotPredictionRoundTrip() {
	// Three months of Food history so the forecaster has enough signal.
	// First-of-month dates avoid end-of-month normalization collapsing two
	// records into the same month.
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := range 3 {
		date := firstOfMonth.AddDate(0, -i, 0).Format("2006-01-02")
		status, body := s.authed("POST", "/api/expenses", map[string]any{
			"amount":      100,
			"description": "Groceries",
			"category":    "Food",
			"date":        date,
		})
		s.Require().Equal(http.StatusCreated, status, "create expense failed: %s", body)
	}

	status, body := s.authed("GET", "/api/expenses", nil)
	s.Require().Equal(http.StatusOK, status)
	var expenses []map[string]any
	s.Require().NoError(json.Unmarshal(body, &expenses))
	s.GreaterOrEqual(len(expenses), 3)

	status, body = s.authed("POST", "/api/chatbot", map[string]any{
		"query": "how much did I spend on Food",
	})
	s.Require().Equal(http.StatusOK, status)
	var chat map[string]string
	s.Require().NoError(json.Unmarshal(body, &chat))
	s.Contains(chat["response"], "Food")
	s.Contains(chat["response"], "₹")

	status, body = s.authed("GET", "/api/predictions", nil)
	s.Require().Equal(http.StatusOK, status)
	var forecasts []struct {
		Category    string `json:"category"`
		Predictions []struct {
			Month  string  `json:"month"`
			Amount float64 `json:"predicted_amount"`
		} `json:"predictions"`
	}
	s.Require().NoError(json.Unmarshal(body, &forecasts))
	s.Require().NotEmpty(forecasts, "three months of history should produce a forecast")
	s.Equal("Food", forecasts[0].Category)
	s.Len(forecasts[0].Predictions, 3)
}

func (s *APITestSuite) TestBudgetFlow() {
	status, body := s.authed("POST", "/api/categories", map[string]any{"name": "Utilities"})
	s.Require().Equal(http.StatusCreated, status, "create category failed: %s", body)
	var cat struct {
		ID int64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(body, &cat))

	status, _ = s.authed("POST", "/api/budgets", map[string]any{"category": cat.ID, "limit": 300})
	s.Equal(http.StatusCreated, status)

	// Creating the same budget again upserts.
	status, _ = s.authed("POST", "/api/budgets", map[string]any{"category": cat.ID, "limit": 450})
	s.Equal(http.StatusOK, status)

	status, body = s.authed("GET", "/api/budgets", nil)
	s.Require().Equal(http.StatusOK, status)
	s.Contains(string(body), `"Utilities"`)
	s.Contains(string(body), "450")
}

func (s *APITestSuite) TestGoalContributions() {
	deadline := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	status, body := s.authed("POST", "/api/goals", map[string]any{
		"name":         "Emergency fund",
		"targetAmount": 5000,
		"deadline":     deadline,
	})
	s.Require().Equal(http.StatusCreated, status, "create goal failed: %s", body)
	var goal struct {
		ID int64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(body, &goal))

	path := fmt.Sprintf("/api/goals/%d/contribute", goal.ID)

	status, _ = s.authed("POST", path, map[string]any{"amount": -5})
	s.Equal(http.StatusBadRequest, status)

	status, body = s.authed("POST", path, map[string]any{"amount": 20})
	s.Require().Equal(http.StatusOK, status)
	var updated struct {
		CurrentAmount float64 `json:"currentAmount"`
	}
	s.Require().NoError(json.Unmarshal(body, &updated))
	s.Equal(20.0, updated.CurrentAmount)
}

func (s *APITestSuite) TestCSVExport() {
	status, body := s.authed("GET", "/api/export/csv", nil)
	s.Require().Equal(http.StatusOK, status)
	s.Contains(string(body), "Date,Description,Category,Amount")
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
