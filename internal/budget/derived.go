package budget

import "github.com/pkeller/capflow/internal/model"

// Remaining computes the remaining budget per category: cap minus the sum
// of transaction amounts whose category matches exactly. It is a pure
// function of its inputs and is never persisted. Values go negative on
// overspend. Transactions for categories without a cap (orphans left by a
// category delete) contribute nothing.
func Remaining(caps model.Caps, transactions []model.Transaction) map[string]float64 {
	remaining := make(map[string]float64, len(caps))
	for name, info := range caps {
		remaining[name] = info.Cap
	}
	for _, tx := range transactions {
		if _, ok := remaining[tx.Category]; ok {
			remaining[tx.Category] -= tx.Amount
		}
	}
	return remaining
}

// Spent computes the total spend per category, including orphaned
// categories that no longer have a cap.
func Spent(transactions []model.Transaction) map[string]float64 {
	spent := make(map[string]float64)
	for _, tx := range transactions {
		spent[tx.Category] += tx.Amount
	}
	return spent
}
