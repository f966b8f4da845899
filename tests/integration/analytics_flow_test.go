package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestAnalyticsFlow_Summary(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "summary@test.com", "password123")

	now := time.Now()
	month := monthOf(now)

	rec := app.request("POST", "/api/v1/budgets",
		fmt.Sprintf(`{"month":%q,"limit":500}`, month), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 setting budget, got %d", rec.Code)
	}

	app.createExpense(t, token, "Groceries", 100, now.Format(time.RFC3339))
	app.createExpense(t, token, "Travel", 200, now.Format(time.RFC3339))
	app.createExpense(t, token, "Groceries", 50, now.Format(time.RFC3339))

	rec = app.request("GET", "/api/v1/analytics/summary", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	summary := parseJSON(t, rec)
	if summary["month"] != month {
		t.Errorf("expected month %s, got %v", month, summary["month"])
	}
	if summary["spent"].(float64) != 350 {
		t.Errorf("expected spent 350, got %v", summary["spent"])
	}
	if summary["limit"].(float64) != 500 {
		t.Errorf("expected limit 500, got %v", summary["limit"])
	}
	if summary["remaining"].(float64) != 150 {
		t.Errorf("expected remaining 150, got %v", summary["remaining"])
	}
	if summary["transaction_count"].(float64) != 3 {
		t.Errorf("expected 3 transactions, got %v", summary["transaction_count"])
	}

	top := summary["top_categories"].([]interface{})
	if len(top) != 2 {
		t.Fatalf("expected 2 top categories, got %d", len(top))
	}
	first := top[0].(map[string]interface{})
	if first["category"] != "Travel" || first["total"].(float64) != 200 {
		t.Errorf("expected Travel 200 first, got %v", first)
	}
}

func TestAnalyticsFlow_CategoryBreakdown(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "breakdown@test.com", "password123")

	now := time.Now()
	app.createExpense(t, token, "Food & Dining", 75, now.Format(time.RFC3339))
	app.createExpense(t, token, "Food & Dining", 25, now.Format(time.RFC3339))
	app.createExpense(t, token, "Transportation", 100, now.Format(time.RFC3339))

	rec := app.request("GET", "/api/v1/analytics/categories?month="+monthOf(now), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	breakdown := parseJSON(t, rec)
	if breakdown["grand_total"].(float64) != 200 {
		t.Errorf("expected grand total 200, got %v", breakdown["grand_total"])
	}
	categories := breakdown["categories"].([]interface{})
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	for _, c := range categories {
		stat := c.(map[string]interface{})
		if stat["percentage"].(float64) != 50 {
			t.Errorf("expected 50%% for %v, got %v", stat["category"], stat["percentage"])
		}
	}
}

func TestAnalyticsFlow_MonthlySeries(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "series@test.com", "password123")

	now := time.Now()
	app.createExpense(t, token, "Education", 120, now.Format(time.RFC3339))

	rec := app.request("GET", fmt.Sprintf("/api/v1/analytics/monthly?year=%d", now.Year()), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	series := parseJSON(t, rec)
	points := series["months"].([]interface{})
	if len(points) != 12 {
		t.Fatalf("expected 12 months, got %d", len(points))
	}
	current := points[int(now.Month())-1].(map[string]interface{})
	if current["spent"].(float64) != 120 {
		t.Errorf("expected 120 spent in current month, got %v", current["spent"])
	}

	// Omitting the year falls back to the current one.
	rec = app.request("GET", "/api/v1/analytics/monthly", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	series = parseJSON(t, rec)
	if series["year"].(float64) != float64(now.Year()) {
		t.Errorf("expected default year %d, got %v", now.Year(), series["year"])
	}
}

func TestAnalyticsFlow_Trends(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "trends@test.com", "password123")

	now := time.Now()
	app.createExpense(t, token, "Personal Care", 60, now.Format(time.RFC3339))

	rec := app.request("GET", "/api/v1/analytics/trends?period=monthly&count=6", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	trends := parseJSON(t, rec)
	if trends["period"] != "monthly" {
		t.Errorf("expected monthly period, got %v", trends["period"])
	}
	points := trends["points"].([]interface{})
	if len(points) != 6 {
		t.Fatalf("expected 6 points, got %d", len(points))
	}
	last := points[5].(map[string]interface{})
	if last["total"].(float64) != 60 {
		t.Errorf("expected 60 in the current month, got %v", last["total"])
	}

	rec = app.request("GET", "/api/v1/analytics/trends?period=daily", "", token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown period, got %d", rec.Code)
	}
}
