package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
	"centavo/internal/monthkey"
)

// analyticsService computes read-only aggregations over the expense ledger
// and budget rows. Totals come straight from SUM queries, never from the
// denormalized budget spent column, so the two can disagree after a partial
// write.
type analyticsService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(db *gorm.DB) AnalyticsServicer {
	return &analyticsService{db: db, now: time.Now}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// sumBetween totals the user's expenses dated within [start, end].
func (s *analyticsService) sumBetween(userID uint, start, end time.Time) (float64, error) {
	var total float64
	err := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// GetMonthlySeries returns spending and budget limits for each month of the
// given calendar year. A zero year means the current one. Months without
// activity appear as zero points so the series always has twelve entries.
func (s *analyticsService) GetMonthlySeries(userID uint, year int) (*MonthlySeries, error) {
	if year == 0 {
		year = s.now().Year()
	}
	if year < 1970 || year > 9999 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("invalid year %d", year))
	}

	var budgets []models.Budget
	if err := s.db.Where("user_id = ? AND month LIKE ?", userID, fmt.Sprintf("%04d-%%", year)).
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	limits := make(map[string]float64, len(budgets))
	for _, b := range budgets {
		limits[b.Month] = b.Limit
	}

	series := &MonthlySeries{Year: year, Months: make([]MonthlyPoint, 0, 12)}
	for m := 1; m <= 12; m++ {
		key := monthkey.Key(fmt.Sprintf("%04d-%02d", year, m))
		spent, err := s.sumBetween(userID, key.Start(), key.End())
		if err != nil {
			return nil, err
		}
		spent = round2(spent)
		limit := limits[key.String()]

		series.Months = append(series.Months, MonthlyPoint{
			Month: key,
			Label: key.ShortLabel(),
			Spent: spent,
			Limit: limit,
		})
		series.TotalSpent = round2(series.TotalSpent + spent)
		series.TotalLimit = round2(series.TotalLimit + limit)
	}
	return series, nil
}

// categoryStats groups the user's expenses in [start, end] by category,
// largest total first, with each category's integer share of the window total.
func (s *analyticsService) categoryStats(userID uint, start, end time.Time) ([]CategoryStat, float64, error) {
	var stats []CategoryStat
	err := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Select("category, SUM(amount) AS total, COUNT(*) AS count").
		Group("category").
		Order("total DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var grand float64
	for _, st := range stats {
		grand += st.Total
	}
	for i := range stats {
		stats[i].Total = round2(stats[i].Total)
		if grand > 0 {
			stats[i].Percentage = int(math.Round(stats[i].Total / grand * 100))
		}
	}
	return stats, round2(grand), nil
}

// GetCategoryBreakdown groups spending by category over the requested
// window: a single month, a full year, or the current month by default.
func (s *analyticsService) GetCategoryBreakdown(userID uint, window AnalyticsWindow) (*CategoryBreakdown, error) {
	var (
		start, end time.Time
		label      string
	)
	switch {
	case window.Month != nil:
		start, end = window.Month.Start(), window.Month.End()
		label = window.Month.Label()
	case window.Year != nil:
		year := *window.Year
		if year < 1970 || year > 9999 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("invalid year %d", year))
		}
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
		end = start.AddDate(1, 0, 0).Add(-time.Nanosecond)
		label = fmt.Sprintf("%d", year)
	default:
		key := monthkey.FromTime(s.now())
		start, end = key.Start(), key.End()
		label = key.Label()
	}

	stats, grand, err := s.categoryStats(userID, start, end)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []CategoryStat{}
	}

	return &CategoryBreakdown{Label: label, GrandTotal: grand, Categories: stats}, nil
}

// weeklyTrendWeeks is the fixed span of the weekly trend series.
const weeklyTrendWeeks = 12

// GetTrends returns a rolling series of spending buckets ending at the
// current period, oldest first. Monthly count defaults to 12 and clamps
// at 24; weekly always covers the trailing 12 Sunday-aligned weeks.
func (s *analyticsService) GetTrends(userID uint, period string, count int) (*Trends, error) {
	switch period {
	case "monthly":
		if count <= 0 {
			count = 12
		}
		if count > 24 {
			count = 24
		}
	case "weekly":
		count = weeklyTrendWeeks
	default:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("invalid period %q, expected monthly or weekly", period))
	}

	trends := &Trends{Period: period, Points: make([]TrendPoint, 0, count)}
	var sum float64

	if period == "monthly" {
		for _, key := range monthkey.Trailing(monthkey.FromTime(s.now()), count) {
			total, err := s.sumBetween(userID, key.Start(), key.End())
			if err != nil {
				return nil, err
			}
			total = round2(total)
			trends.Points = append(trends.Points, TrendPoint{
				Label: key.ShortLabel(),
				Start: key.Start(),
				Total: total,
			})
			sum += total
		}
	} else {
		day := s.now()
		day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
		thisWeek := day.AddDate(0, 0, -int(day.Weekday()))
		for i := count - 1; i >= 0; i-- {
			start := thisWeek.AddDate(0, 0, -7*i)
			end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
			total, err := s.sumBetween(userID, start, end)
			if err != nil {
				return nil, err
			}
			total = round2(total)
			trends.Points = append(trends.Points, TrendPoint{
				Label: start.Format("Jan 02"),
				Start: start,
				Total: total,
			})
			sum += total
		}
	}

	trends.Average = round2(sum / float64(count))
	return trends, nil
}

// GetSummary assembles the current month's dashboard payload: totals, top
// five categories, and the comparison with last month.
func (s *analyticsService) GetSummary(userID uint) (*Summary, error) {
	current := monthkey.FromTime(s.now())
	previous := current.AddMonths(-1)

	spent, err := s.sumBetween(userID, current.Start(), current.End())
	if err != nil {
		return nil, err
	}
	spent = round2(spent)

	prevSpent, err := s.sumBetween(userID, previous.Start(), previous.End())
	if err != nil {
		return nil, err
	}
	prevSpent = round2(prevSpent)

	var count int64
	if err := s.db.Model(&models.Expense{}).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, current.Start(), current.End()).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budget models.Budget
	var limit float64
	err = s.db.Where("user_id = ? AND month = ?", userID, current.String()).First(&budget).Error
	if err == nil {
		limit = budget.Limit
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	remaining := limit - spent
	if remaining < 0 {
		remaining = 0
	}

	top, _, err := s.categoryStats(userID, current.Start(), current.End())
	if err != nil {
		return nil, err
	}
	if len(top) > 5 {
		top = top[:5]
	}
	if top == nil {
		top = []CategoryStat{}
	}

	change := round2(spent - prevSpent)
	comparison := MonthComparison{
		Previous: prevSpent,
		Current:  spent,
		Change:   change,
		Trend:    "stable",
	}
	if prevSpent > 0 {
		comparison.PercentChange = round2(change / prevSpent * 100)
	}
	switch {
	case change > 0:
		comparison.Trend = "increase"
	case change < 0:
		comparison.Trend = "decrease"
	}

	return &Summary{
		Month:            current,
		Label:            current.Label(),
		Spent:            spent,
		Limit:            limit,
		Remaining:        remaining,
		TransactionCount: count,
		TopCategories:    top,
		Comparison:       comparison,
	}, nil
}
