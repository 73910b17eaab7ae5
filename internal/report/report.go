package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contas/internal/entry"
)

const (
	DefaultCashflowDays = 30
	MaxCashflowDays     = 366
)

// Balance is the outstanding part of one open or partially paid entry.
type Balance struct {
	Type      entry.Type
	DueDate   time.Time
	Remaining decimal.Decimal
}

// Flow is the sum of payments of one entry type on one day.
type Flow struct {
	Date   time.Time
	Type   entry.Type
	Amount decimal.Decimal
}

type Summary struct {
	TotalOpen        decimal.Decimal
	TotalOverdue     decimal.Decimal
	TotalNext7Days   decimal.Decimal
	TotalNext30Days  decimal.Decimal
	TotalReceivables decimal.Decimal
	TotalPayables    decimal.Decimal
}

type Aging struct {
	Overdue    decimal.Decimal
	Next7Days  decimal.Decimal
	Next30Days decimal.Decimal
	Future     decimal.Decimal
}

type CashflowPoint struct {
	Date    time.Time
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

type Dashboard struct {
	Summary  Summary
	Aging    Aging
	Cashflow []CashflowPoint
}

// summarize folds outstanding balances into the dashboard totals. The 7 and 30 day
// totals are windows starting today, so the 30 day total includes the 7 day one.
func summarize(balances []Balance, today time.Time) Summary {
	today = entry.DateOnly(today)
	week := today.AddDate(0, 0, 7)
	month := today.AddDate(0, 0, 30)

	var s Summary

	for _, b := range balances {
		due := entry.DateOnly(b.DueDate)

		s.TotalOpen = s.TotalOpen.Add(b.Remaining)

		switch b.Type {
		case entry.TypeReceivable:
			s.TotalReceivables = s.TotalReceivables.Add(b.Remaining)
		case entry.TypePayable:
			s.TotalPayables = s.TotalPayables.Add(b.Remaining)
		}

		if due.Before(today) {
			s.TotalOverdue = s.TotalOverdue.Add(b.Remaining)
			continue
		}

		if due.Before(week) {
			s.TotalNext7Days = s.TotalNext7Days.Add(b.Remaining)
		}

		if due.Before(month) {
			s.TotalNext30Days = s.TotalNext30Days.Add(b.Remaining)
		}
	}

	return s
}

// age splits outstanding balances into disjoint due-date buckets.
func age(balances []Balance, today time.Time) Aging {
	today = entry.DateOnly(today)
	week := today.AddDate(0, 0, 7)
	month := today.AddDate(0, 0, 30)

	var a Aging

	for _, b := range balances {
		due := entry.DateOnly(b.DueDate)

		switch {
		case due.Before(today):
			a.Overdue = a.Overdue.Add(b.Remaining)
		case due.Before(week):
			a.Next7Days = a.Next7Days.Add(b.Remaining)
		case due.Before(month):
			a.Next30Days = a.Next30Days.Add(b.Remaining)
		default:
			a.Future = a.Future.Add(b.Remaining)
		}
	}

	return a
}

// cashflowWindow returns the first and last day of a window of days ending today.
func cashflowWindow(today time.Time, days int) (time.Time, time.Time) {
	to := entry.DateOnly(today)

	return to.AddDate(0, 0, -(days - 1)), to
}

// cashflow emits one point per day from from through to. Receivable payments are income,
// payable payments are expense and balance accumulates their difference.
func cashflow(flows []Flow, from, to time.Time) []CashflowPoint {
	byDay := make(map[time.Time]*CashflowPoint)

	for _, f := range flows {
		day := entry.DateOnly(f.Date)

		p, ok := byDay[day]
		if !ok {
			p = &CashflowPoint{Date: day}
			byDay[day] = p
		}

		switch f.Type {
		case entry.TypeReceivable:
			p.Income = p.Income.Add(f.Amount)
		case entry.TypePayable:
			p.Expense = p.Expense.Add(f.Amount)
		}
	}

	var (
		points  []CashflowPoint
		balance decimal.Decimal
	)

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		point := CashflowPoint{Date: day}
		if p, ok := byDay[day]; ok {
			point.Income = p.Income
			point.Expense = p.Expense
		}

		balance = balance.Add(point.Income).Sub(point.Expense)
		point.Balance = balance

		points = append(points, point)
	}

	return points
}
