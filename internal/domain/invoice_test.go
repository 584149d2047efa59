package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPaymentDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"utc timestamp", "2023-03-15T00:00:00Z", "15/03/2023"},
		{"date only", "2023-01-10", "10/01/2023"},
		{"fractional seconds", "2023-12-31T23:59:59.123Z", "31/12/2023"},
		{"offset keeps its calendar day", "2023-06-01T01:30:00-03:00", "01/06/2023"},
		{"zoneless timestamp", "2024-02-29T10:00:00", "29/02/2024"},
		{"unparseable is shown verbatim", "next tuesday", "next tuesday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPaymentDate(tt.input))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "R$ 42.5", FormatAmount(decimal.RequireFromString("42.50")))
	assert.Equal(t, "R$ 100", FormatAmount(decimal.NewFromInt(100)))
	assert.Equal(t, "R$ 0.07", FormatAmount(decimal.RequireFromString("0.07")))
}

func TestInvoice_DecodeAndDisplay(t *testing.T) {
	body := `[{"id":1,"payment_date":"2023-01-10","store":"Market","amount":42.50},
	          {"id":"inv-2","payment_date":"2023-03-15T00:00:00Z","store":"Pharmacy","amount":"9.90"}]`

	var invoices []Invoice
	require.NoError(t, json.Unmarshal([]byte(body), &invoices))
	require.Len(t, invoices, 2)

	first := invoices[0]
	assert.Equal(t, InvoiceID("1"), first.ID)
	assert.Equal(t, "10/01/2023", first.FormattedDate())
	assert.Equal(t, "Market", first.Store)
	assert.Equal(t, "R$ 42.5", first.FormattedAmount())

	second := invoices[1]
	assert.Equal(t, InvoiceID("inv-2"), second.ID)
	assert.Equal(t, "15/03/2023", second.FormattedDate())
	assert.Equal(t, "R$ 9.9", second.FormattedAmount())
}

func TestInvoiceID_RejectsObjects(t *testing.T) {
	var id InvoiceID
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &id))
}

func TestCardHelpers(t *testing.T) {
	cards := []CreditCard{{Number: "1111"}, {Number: "2222"}}

	assert.Equal(t, []string{"1111", "2222"}, CardNumbers(cards))
	assert.True(t, HasCard(cards, "2222"))
	assert.False(t, HasCard(cards, "3333"))
	assert.Empty(t, CardNumbers(nil))
}
