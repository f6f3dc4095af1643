// Package domain builds per-invoice GST breakdowns and report totals.
//
// The builder is a pure function and never fails: malformed fields on an
// individual record degrade to a safe default (zero amount, nil state, no
// date constraint) instead of dropping the whole report. One dirty invoice
// must not blank the view.
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StatusAll disables the status filter.
const StatusAll = "all"

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// Params are the report knobs as they arrive from the query string, raw and
// untrusted. Build normalizes them itself.
type Params struct {
	From        string
	To          string
	HomeState   string
	Status      string
	RatePercent string
	Inclusive   bool
}

// Source is one invoice as fed to the builder. Date and Total stay raw
// strings so unparseable values degrade per record instead of failing the
// load that produced them.
type Source struct {
	ID            string
	InvoiceNumber string
	Date          string
	Status        string
	Total         string
	ClientName    string
	ClientState   string
	ClientAddress string
}

// Row is one invoice's tax breakdown. Amounts are rounded to two decimal
// places; totals are computed over the rounded rows so the two always agree.
type Row struct {
	InvoiceID     string          `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Date          string          `json:"date"`
	ClientName    string          `json:"client_name"`
	ClientState   *string         `json:"client_state"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	IGST          decimal.Decimal `json:"igst"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	Total         decimal.Decimal `json:"total"`
}

type Totals struct {
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	IGST          decimal.Decimal `json:"igst"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	Total         decimal.Decimal `json:"total"`
}

type Report struct {
	Rows   []Row  `json:"rows"`
	Totals Totals `json:"totals"`
}

// Build assembles the report. Rows keep the order of the supplied invoices.
func Build(invoices []Source, params Params) Report {
	rate := parseRate(params.RatePercent)
	from, fromOK := parseDate(params.From)
	to, toOK := parseDate(params.To)
	if toOK {
		// inclusive through end of day
		to = to.Add(24*time.Hour - time.Millisecond)
	}
	statusFilter := strings.ToLower(strings.TrimSpace(params.Status))

	report := Report{Rows: make([]Row, 0, len(invoices))}
	for _, inv := range invoices {
		date, dateOK := parseDate(inv.Date)
		if dateOK {
			if fromOK && date.Before(from) {
				continue
			}
			if toOK && date.After(to) {
				continue
			}
		}
		if statusFilter != "" && statusFilter != StatusAll &&
			strings.ToLower(strings.TrimSpace(inv.Status)) != statusFilter {
			continue
		}

		clientState := resolveState(inv.ClientState, inv.ClientAddress)
		total := parseAmount(inv.Total)

		var taxable, tax decimal.Decimal
		switch {
		case rate.IsZero():
			taxable = total.Round(2)
			tax = decimal.Zero
		case params.Inclusive:
			taxable = total.Div(one.Add(rate)).Round(2)
			tax = total.Round(2).Sub(taxable)
		default:
			taxable = total.Round(2)
			tax = total.Mul(rate).Round(2)
		}

		var igst, cgst, sgst decimal.Decimal
		if sameState(params.HomeState, clientState) {
			cgst = tax.Div(two).Round(2)
			sgst = tax.Sub(cgst)
		} else {
			igst = tax
		}

		report.Rows = append(report.Rows, Row{
			InvoiceID:     inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			Date:          inv.Date,
			ClientName:    inv.ClientName,
			ClientState:   clientState,
			TaxableAmount: taxable,
			IGST:          igst,
			CGST:          cgst,
			SGST:          sgst,
			Total:         total.Round(2),
		})
	}

	for _, row := range report.Rows {
		report.Totals.TaxableAmount = report.Totals.TaxableAmount.Add(row.TaxableAmount)
		report.Totals.IGST = report.Totals.IGST.Add(row.IGST)
		report.Totals.CGST = report.Totals.CGST.Add(row.CGST)
		report.Totals.SGST = report.Totals.SGST.Add(row.SGST)
		report.Totals.Total = report.Totals.Total.Add(row.Total)
	}
	return report
}

// parseRate converts the user-entered percentage to a fraction. Non-numeric
// or negative input means no tax.
func parseRate(raw string) decimal.Decimal {
	rate, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || rate.IsNegative() {
		return decimal.Zero
	}
	return rate.Div(hundred)
}

func parseAmount(raw string) decimal.Decimal {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return amount
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
