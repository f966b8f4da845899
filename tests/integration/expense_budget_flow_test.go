package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

// monthOf formats a time as a budget month key.
func monthOf(t time.Time) string {
	return t.Format("2006-01")
}

func TestExpenseBudgetFlow_SpendingTracksBudget(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "spend@test.com", "password123")

	now := time.Now()
	month := monthOf(now)

	// Set a 200 budget for the current month.
	rec := app.request("POST", "/api/v1/budgets",
		fmt.Sprintf(`{"month":%q,"limit":200}`, month), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 setting budget, got %d: %s", rec.Code, rec.Body.String())
	}

	// Record an expense of 50.
	app.createExpense(t, token, "Groceries", 50, now.Format(time.RFC3339))

	// The budget's running total reflects it.
	rec = app.request("GET", "/api/v1/budgets?month="+month, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	budget := parseJSON(t, rec)["budget"].(map[string]interface{})
	if budget["spent"].(float64) != 50 {
		t.Errorf("expected 50 spent, got %v", budget["spent"])
	}
	if budget["remaining"].(float64) != 150 {
		t.Errorf("expected 150 remaining, got %v", budget["remaining"])
	}
	if budget["spending_percentage"].(float64) != 25 {
		t.Errorf("expected 25%%, got %v", budget["spending_percentage"])
	}
	if budget["status"] != "safe" {
		t.Errorf("expected safe status, got %v", budget["status"])
	}
}

func TestExpenseBudgetFlow_UpdateAppliesDelta(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "delta@test.com", "password123")

	now := time.Now()
	month := monthOf(now)
	id := app.createExpense(t, token, "Shopping", 30, now.Format(time.RFC3339))

	rec := app.request("PUT", fmt.Sprintf("/api/v1/expenses/%.0f", id),
		`{"amount":50}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/budgets?month="+month, "", token)
	budget := parseJSON(t, rec)["budget"].(map[string]interface{})
	if budget["spent"].(float64) != 50 {
		t.Errorf("expected spent 50 after 30->50 edit, got %v", budget["spent"])
	}
}

func TestExpenseBudgetFlow_DeleteNetsToZero(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "netzero@test.com", "password123")

	now := time.Now()
	month := monthOf(now)
	id := app.createExpense(t, token, "Entertainment", 75, now.Format(time.RFC3339))

	rec := app.request("DELETE", fmt.Sprintf("/api/v1/expenses/%.0f", id), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/budgets?month="+month, "", token)
	budget := parseJSON(t, rec)["budget"].(map[string]interface{})
	if budget["spent"].(float64) != 0 {
		t.Errorf("expected spent back to 0, got %v", budget["spent"])
	}
}

func TestExpenseBudgetFlow_AlertAtDangerThreshold(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "alert@test.com", "password123")

	now := time.Now()
	rec := app.request("POST", "/api/v1/budgets",
		fmt.Sprintf(`{"month":%q,"limit":100}`, monthOf(now)), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	app.createExpense(t, token, "Bills & Utilities", 95, now.Format(time.RFC3339))

	rec = app.request("GET", "/api/v1/budgets/alerts", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["has_alerts"] != true {
		t.Fatalf("expected alerts at 95%%, got %v", result)
	}
	alerts := result["alerts"].([]interface{})
	if len(alerts) != 1 {
		t.Fatalf("expected exactly 1 alert, got %d", len(alerts))
	}
	alert := alerts[0].(map[string]interface{})
	if alert["level"] != "danger" {
		t.Errorf("expected danger level, got %v", alert["level"])
	}

	budget := result["budget"].(map[string]interface{})
	if budget["status"] != "danger" {
		t.Errorf("expected danger status, got %v", budget["status"])
	}
}

func TestExpenseBudgetFlow_ListFiltersAndPagination(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "list@test.com", "password123")

	now := time.Now()
	for i := 0; i < 3; i++ {
		app.createExpense(t, token, "Groceries", 10, now.Format(time.RFC3339))
	}
	app.createExpense(t, token, "Travel", 99, now.Format(time.RFC3339))

	rec := app.request("GET", "/api/v1/expenses?category=Groceries", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["total_items"].(float64) != 3 {
		t.Errorf("expected 3 grocery expenses, got %v", result["total_items"])
	}

	rec = app.request("GET", "/api/v1/expenses?page=1&page_size=2", "", token)
	result = parseJSON(t, rec)
	data := result["data"].([]interface{})
	if len(data) != 2 {
		t.Errorf("expected page of 2, got %d", len(data))
	}
	if result["total_pages"].(float64) != 2 {
		t.Errorf("expected 2 pages, got %v", result["total_pages"])
	}
}

func TestExpenseBudgetFlow_UsersAreIsolated(t *testing.T) {
	app := setupApp(t)
	tokenA, _, _ := app.registerUser(t, "alice@test.com", "password123")
	tokenB, _, _ := app.registerUser(t, "bob@test.com", "password123")

	now := time.Now()
	id := app.createExpense(t, tokenA, "Healthcare", 40, now.Format(time.RFC3339))

	// B cannot see or delete A's expense.
	rec := app.request("GET", fmt.Sprintf("/api/v1/expenses/%.0f", id), "", tokenB)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for foreign expense, got %d", rec.Code)
	}
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/expenses/%.0f", id), "", tokenB)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting foreign expense, got %d", rec.Code)
	}

	// B's budget is untouched by A's spending.
	rec = app.request("GET", "/api/v1/budgets?month="+monthOf(now), "", tokenB)
	budget := parseJSON(t, rec)["budget"].(map[string]interface{})
	if budget["spent"].(float64) != 0 {
		t.Errorf("expected B's spent 0, got %v", budget["spent"])
	}
}

func TestExpenseBudgetFlow_DeleteAndRecreateBudget(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "recreate@test.com", "password123")

	month := "2025-02"
	rec := app.request("POST", "/api/v1/budgets",
		fmt.Sprintf(`{"month":%q,"limit":300}`, month), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = app.request("DELETE", "/api/v1/budgets/"+month, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 deleting budget, got %d: %s", rec.Code, rec.Body.String())
	}

	// Deleting again is a 404.
	rec = app.request("DELETE", "/api/v1/budgets/"+month, "", token)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", rec.Code)
	}

	// The month can be budgeted again from scratch.
	rec = app.request("POST", "/api/v1/budgets",
		fmt.Sprintf(`{"month":%q,"limit":450}`, month), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 recreating budget, got %d: %s", rec.Code, rec.Body.String())
	}
	budget := parseJSON(t, rec)["budget"].(map[string]interface{})
	if budget["limit"].(float64) != 450 {
		t.Errorf("expected limit 450, got %v", budget["limit"])
	}
	if budget["spent"].(float64) != 0 {
		t.Errorf("expected fresh spent 0, got %v", budget["spent"])
	}
}

func TestExpenseBudgetFlow_ValidationErrorsListAllFields(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "invalid@test.com", "password123")

	rec := app.request("POST", "/api/v1/expenses",
		`{"category":"Groceries","amount":-5}`, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/categories", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	categories := parseJSON(t, rec)["categories"].([]interface{})
	if len(categories) != 11 {
		t.Errorf("expected 11 categories, got %d", len(categories))
	}
}
