package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCategoryHandler_GetCategories(t *testing.T) {
	r := gin.New()
	r.GET("/categories", injectUserID(1), NewCategoryHandler().GetCategories)

	rec := doRequest(r, "GET", "/categories", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	categories := result["categories"].([]interface{})
	if len(categories) != 11 {
		t.Errorf("expected 11 categories, got %d", len(categories))
	}
	if categories[0] != "Food & Dining" {
		t.Errorf("expected Food & Dining first, got %v", categories[0])
	}
}
