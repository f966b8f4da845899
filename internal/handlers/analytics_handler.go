package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "centavo/internal/errors"
	"centavo/internal/services"
)

// AnalyticsHandler handles read-side aggregation requests.
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func parseYearQuery(c *gin.Context) (*int, error) {
	v := c.Query("year")
	if v == "" {
		return nil, nil
	}
	year, err := strconv.Atoi(v)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid year")
	}
	return &year, nil
}

// GetMonthlySeries handles the per-month spending series for a year.
// @Summary     Get monthly series
// @Description Get spending and budget limits for each month of a calendar year
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Calendar year (default current)"
// @Success     200 {object} services.MonthlySeries "Monthly series"
// @Failure     400 {object} ErrorResponse "Invalid year"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/monthly [get]
func (h *AnalyticsHandler) GetMonthlySeries(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, err := parseYearQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	// A zero year lets the service fill in the current one.
	resolved := 0
	if year != nil {
		resolved = *year
	}

	series, err := h.analyticsService.GetMonthlySeries(userID, resolved)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, series)
}

// GetCategoryBreakdown handles the per-category spending breakdown.
// @Summary     Get category breakdown
// @Description Group spending by category over a month, a year, or the current month
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Month (YYYY-MM)"
// @Param       year  query int    false "Calendar year"
// @Success     200 {object} services.CategoryBreakdown "Category breakdown"
// @Failure     400 {object} ErrorResponse "Invalid window"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/categories [get]
func (h *AnalyticsHandler) GetCategoryBreakdown(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var window services.AnalyticsWindow
	if v := c.Query("month"); v != "" {
		month, err := parseMonthQuery(c)
		if err != nil {
			respondWithError(c, err)
			return
		}
		window.Month = &month
	} else {
		window.Year, err = parseYearQuery(c)
		if err != nil {
			respondWithError(c, err)
			return
		}
	}

	breakdown, err := h.analyticsService.GetCategoryBreakdown(userID, window)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

// TrendsQuery represents the query parameters for the trend series.
type TrendsQuery struct {
	Period string `form:"period" binding:"omitempty,trend_period"`
	Count  int    `form:"count" binding:"omitempty,min=1"`
}

// GetTrends handles the rolling spending trend series.
// @Summary     Get spending trends
// @Description Get a rolling monthly or weekly spending series, oldest first
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       period query string false "monthly or weekly (default monthly)"
// @Param       count  query int    false "Monthly buckets (default 12, max 24); ignored for weekly, which always spans 12 weeks"
// @Success     200 {object} services.Trends "Trend series"
// @Failure     400 {object} ErrorResponse "Invalid period or count"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/trends [get]
func (h *AnalyticsHandler) GetTrends(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query TrendsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if query.Period == "" {
		query.Period = "monthly"
	}

	trends, err := h.analyticsService.GetTrends(userID, query.Period, query.Count)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, trends)
}

// GetSummary handles the current month's dashboard summary.
// @Summary     Get summary
// @Description Get the current month's totals, top categories, and month-over-month comparison
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Summary "Current month summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/summary [get]
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.analyticsService.GetSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
