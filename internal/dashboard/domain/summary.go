// Package domain computes the dashboard summary figures. The fiscal year
// runs April 1 through March 31.
package domain

import (
	"time"

	invoicedomain "github.com/khatahq/khata/internal/invoice/domain"
	paymentdomain "github.com/khatahq/khata/internal/payment/domain"
	"github.com/shopspring/decimal"
)

const monthLayout = "2006-01"

// MonthlyPoint is one month in the trailing activity series.
type MonthlyPoint struct {
	Month    string          `json:"month"`
	Issued   decimal.Decimal `json:"issued"`
	Paid     decimal.Decimal `json:"paid"`
	Payments decimal.Decimal `json:"payments"`
}

// Summary is the dashboard payload.
type Summary struct {
	FiscalYearStart  string          `json:"fiscal_year_start"`
	FiscalYearEnd    string          `json:"fiscal_year_end"`
	Revenue          decimal.Decimal `json:"revenue"`
	RevenueThisMonth decimal.Decimal `json:"revenue_this_month"`
	RevenueLastMonth decimal.Decimal `json:"revenue_last_month"`
	Outstanding      decimal.Decimal `json:"outstanding"`
	OverdueCount     int             `json:"overdue_count"`
	InvoiceCount     int             `json:"invoice_count"`
	ClientCount      int             `json:"client_count"`
	Monthly          []MonthlyPoint  `json:"monthly"`
}

// FiscalYearBounds returns the start and end of the fiscal year containing t.
// The end is inclusive through the last instant of March 31.
func FiscalYearBounds(t time.Time) (time.Time, time.Time) {
	year := t.Year()
	if t.Month() < time.April {
		year--
	}
	start := time.Date(year, time.April, 1, 0, 0, 0, 0, t.Location())
	end := time.Date(year+1, time.April, 1, 0, 0, 0, 0, t.Location()).Add(-time.Millisecond)
	return start, end
}

// Compute derives the summary from the caller's invoices and payments as of
// now. Revenue counts paid invoices dated inside the current fiscal year;
// outstanding counts every unpaid invoice regardless of date.
func Compute(invoices []invoicedomain.Invoice, payments []paymentdomain.Payment, now time.Time) Summary {
	fyStart, fyEnd := FiscalYearBounds(now)
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	thisMonth := now.Format(monthLayout)
	lastMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -1, 0).Format(monthLayout)

	summary := Summary{
		FiscalYearStart: fyStart.Format("2006-01-02"),
		FiscalYearEnd:   fyEnd.Format("2006-01-02"),
	}

	months := trailingMonths(now, 6)
	series := make(map[string]*MonthlyPoint, len(months))
	for i := range months {
		series[months[i].Month] = &months[i]
	}

	clients := map[string]struct{}{}
	for _, inv := range invoices {
		inFY := !inv.InvoiceDate.Before(fyStart) && !inv.InvoiceDate.After(fyEnd)
		month := inv.InvoiceDate.Format(monthLayout)
		paid := inv.Status == invoicedomain.InvoiceStatusPaid

		if inFY {
			summary.InvoiceCount++
			clients[inv.ClientID.String()] = struct{}{}
			if paid {
				summary.Revenue = summary.Revenue.Add(inv.Total)
			}
		}
		if paid {
			switch month {
			case thisMonth:
				summary.RevenueThisMonth = summary.RevenueThisMonth.Add(inv.Total)
			case lastMonth:
				summary.RevenueLastMonth = summary.RevenueLastMonth.Add(inv.Total)
			}
		} else {
			summary.Outstanding = summary.Outstanding.Add(inv.Total)
			if inv.DueDate.Before(startOfToday) {
				summary.OverdueCount++
			}
		}

		if point, ok := series[month]; ok {
			point.Issued = point.Issued.Add(inv.Total)
			if paid {
				point.Paid = point.Paid.Add(inv.Total)
			}
		}
	}
	summary.ClientCount = len(clients)

	for _, p := range payments {
		if point, ok := series[p.PaymentDate.Format(monthLayout)]; ok {
			point.Payments = point.Payments.Add(p.Amount)
		}
	}

	summary.Monthly = months
	return summary
}

// trailingMonths returns the last n calendar months in chronological order,
// ending with the month containing now.
func trailingMonths(now time.Time, n int) []MonthlyPoint {
	points := make([]MonthlyPoint, n)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 0; i < n; i++ {
		points[n-1-i] = MonthlyPoint{Month: first.AddDate(0, -i, 0).Format(monthLayout)}
	}
	return points
}
