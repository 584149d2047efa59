package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is one billing record of a credit card as served by the invoice API.
type Invoice struct {
	ID          InvoiceID       `json:"id"`
	PaymentDate string          `json:"payment_date"`
	Store       string          `json:"store"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceID keeps the textual form of an invoice id. The API is free to send
// ids as JSON numbers or strings.
type InvoiceID string

// UnmarshalJSON accepts both numeric and string ids.
func (id *InvoiceID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invoice id: %w", err)
		}
		*id = InvoiceID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invoice id: %w", err)
	}
	*id = InvoiceID(n.String())
	return nil
}

// paymentDateLayouts are the ISO-8601 shapes accepted for payment dates, most
// specific first.
var paymentDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// ParsePaymentDate parses an ISO-8601 payment date. Values carrying a zone keep
// it; date-only and zoneless values are read as UTC calendar dates.
func ParsePaymentDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range paymentDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("parse payment date %q: %w", value, lastErr)
}

// FormatPaymentDate renders a payment date as dd/mm/yyyy. Values that cannot be
// parsed are returned unchanged.
func FormatPaymentDate(value string) string {
	t, err := ParsePaymentDate(value)
	if err != nil {
		return value
	}
	return t.Format("02/01/2006")
}

// FormatAmount renders an amount with the currency label, using the shortest
// decimal form (42.50 becomes "R$ 42.5").
func FormatAmount(amount decimal.Decimal) string {
	return "R$ " + amount.String()
}

// FormattedDate is the display form of the invoice payment date.
func (i Invoice) FormattedDate() string {
	return FormatPaymentDate(i.PaymentDate)
}

// FormattedAmount is the display form of the invoice amount.
func (i Invoice) FormattedAmount() string {
	return FormatAmount(i.Amount)
}
