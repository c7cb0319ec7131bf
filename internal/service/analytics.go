package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hpfs74/family-budget/internal/domain"
	"github.com/hpfs74/family-budget/internal/dynamo"
)

// MonthBucket is one month of the trailing-12-month trend.
type MonthBucket struct {
	Month    string  `json:"month"` // e.g. "Mar 2024"
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// CategorySlice is one category's share of total expenses.
type CategorySlice struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// Summary aggregates the whole transaction set regardless of the trend
// window.
type Summary struct {
	TotalIncome      float64 `json:"totalIncome"`
	TotalExpenses    float64 `json:"totalExpenses"`
	NetBalance       float64 `json:"netBalance"`
	TransactionCount int     `json:"transactionCount"`
}

// Report is the full analytics payload for one account.
type Report struct {
	MonthlyTrend      []MonthBucket   `json:"monthlyTrend"`
	CategoryBreakdown []CategorySlice `json:"categoryBreakdown"`
	Summary           Summary         `json:"summary"`
}

const monthLabelLayout = "Jan 2006"

// BuildReport reduces a transaction set into monthly trend buckets, an
// expense category breakdown and summary totals. It is deterministic given
// the same transactions and the same now; callers own the clock.
//
// The trend covers exactly the 12 calendar months ending at now's month,
// every bucket present even when empty. Transactions outside that window
// are excluded from the trend but still count towards the summary.
func BuildReport(txns []*domain.Transaction, now time.Time) *Report {
	report := &Report{
		MonthlyTrend:      make([]MonthBucket, 0, 12),
		CategoryBreakdown: []CategorySlice{},
	}

	// Oldest bucket first. Normalizing to the first of the month keeps
	// month arithmetic safe around 29-31 day boundaries.
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)
	bucketIndex := make(map[string]int, 12)
	for i := 0; i < 12; i++ {
		month := first.AddDate(0, i, 0)
		bucketIndex[month.Format("2006-01")] = i
		report.MonthlyTrend = append(report.MonthlyTrend, MonthBucket{
			Month: month.Format(monthLabelLayout),
		})
	}

	expenseByCategory := make(map[string]float64)
	var totalIncome, totalExpenses float64

	for _, txn := range txns {
		report.Summary.TransactionCount++
		if txn.Amount > 0 {
			totalIncome += txn.Amount
		} else if txn.Amount < 0 {
			totalExpenses += -txn.Amount
			expenseByCategory[txn.Category] += -txn.Amount
		}

		if len(txn.Date) < 7 {
			continue
		}
		if i, ok := bucketIndex[txn.Date[:7]]; ok {
			if txn.Amount > 0 {
				report.MonthlyTrend[i].Income += txn.Amount
			} else if txn.Amount < 0 {
				report.MonthlyTrend[i].Expenses += -txn.Amount
			}
		}
	}

	for i := range report.MonthlyTrend {
		report.MonthlyTrend[i].Income = domain.Round2(report.MonthlyTrend[i].Income)
		report.MonthlyTrend[i].Expenses = domain.Round2(report.MonthlyTrend[i].Expenses)
	}

	for category, amount := range expenseByCategory {
		slice := CategorySlice{
			Category: category,
			Amount:   domain.Round2(amount),
		}
		if totalExpenses > 0 {
			slice.Percentage = domain.Round2(amount / totalExpenses * 100)
		}
		report.CategoryBreakdown = append(report.CategoryBreakdown, slice)
	}
	sort.Slice(report.CategoryBreakdown, func(i, j int) bool {
		a, b := report.CategoryBreakdown[i], report.CategoryBreakdown[j]
		if a.Amount != b.Amount {
			return a.Amount > b.Amount
		}
		return a.Category < b.Category
	})

	report.Summary.TotalIncome = domain.Round2(totalIncome)
	report.Summary.TotalExpenses = domain.Round2(totalExpenses)
	report.Summary.NetBalance = domain.Round2(totalIncome - totalExpenses)

	return report
}

// AnalyticsService serves the read-side report for one account.
type AnalyticsService struct {
	txns dynamo.TransactionRepository
	now  func() time.Time
}

// NewAnalyticsService builds the aggregator over the transaction store.
func NewAnalyticsService(txns dynamo.TransactionRepository) *AnalyticsService {
	return &AnalyticsService{txns: txns, now: time.Now}
}

// Report fetches every transaction of the account and reduces it.
func (s *AnalyticsService) Report(ctx context.Context, accountID string) (*Report, error) {
	if accountID == "" {
		return nil, domain.NewValidationError("account is required")
	}

	txns, err := s.txns.QueryByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("Report: %w", err)
	}
	return BuildReport(txns, s.now()), nil
}
