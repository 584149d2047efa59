package domain

// CreditCard is a card known to the invoice API. Its number is the selection
// key of the view and a path segment of the invoice query.
type CreditCard struct {
	Number string `json:"number"`
}

// CardNumbers returns the numbers of cards in their original order.
func CardNumbers(cards []CreditCard) []string {
	numbers := make([]string, 0, len(cards))
	for _, card := range cards {
		numbers = append(numbers, card.Number)
	}
	return numbers
}

// HasCard reports whether number is one of the given cards.
func HasCard(cards []CreditCard, number string) bool {
	for _, card := range cards {
		if card.Number == number {
			return true
		}
	}
	return false
}
