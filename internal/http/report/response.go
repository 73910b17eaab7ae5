package report

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/contas/internal/http/api"
	"github.com/MrJamesThe3rd/contas/internal/report"
)

type summaryResponse struct {
	TotalOpen        decimal.Decimal `json:"totalOpen"`
	TotalOverdue     decimal.Decimal `json:"totalOverdue"`
	TotalNext7Days   decimal.Decimal `json:"totalNext7Days"`
	TotalNext30Days  decimal.Decimal `json:"totalNext30Days"`
	TotalReceivables decimal.Decimal `json:"totalReceivables"`
	TotalPayables    decimal.Decimal `json:"totalPayables"`
}

type agingResponse struct {
	Overdue    decimal.Decimal `json:"overdue"`
	Next7Days  decimal.Decimal `json:"next7Days"`
	Next30Days decimal.Decimal `json:"next30Days"`
	Future     decimal.Decimal `json:"future"`
}

type cashflowResponse struct {
	Date    api.Date        `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

type dashboardResponse struct {
	Summary  summaryResponse    `json:"summary"`
	Aging    agingResponse      `json:"aging"`
	Cashflow []cashflowResponse `json:"cashflow"`
}

func toSummaryResponse(s report.Summary) summaryResponse {
	return summaryResponse(s)
}

func toAgingResponse(a report.Aging) agingResponse {
	return agingResponse(a)
}

func toCashflowResponse(points []report.CashflowPoint) []cashflowResponse {
	resp := make([]cashflowResponse, len(points))
	for i, p := range points {
		resp[i] = cashflowResponse{
			Date:    api.NewDate(p.Date),
			Income:  p.Income,
			Expense: p.Expense,
			Balance: p.Balance,
		}
	}

	return resp
}
