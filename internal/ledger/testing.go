package ledger

import "github.com/shopspring/decimal"

// SeedBalance is a test helper that seeds the balance for a user when using the
// in-memory store.
func SeedBalance(s Store, userID string, amount int64) {
	if mem, ok := s.(*inMemoryStore); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		ledger, exists := mem.ledgers[userID]
		if !exists {
			ledger = &Ledger{UserID: userID}
			mem.ledgers[userID] = ledger
		}
		ledger.Balance = decimal.NewFromInt(amount)
	}
}
