package model

import "time"

// DateLayout is the calendar-date format used for transaction dates.
const DateLayout = "2006-01-02"

// Transaction represents a single logged expense against a category.
//
// The ID encodes the transaction's lifecycle:
//   - ID > 0: committed, assigned by the store, monotonically increasing.
//   - ID < 0: pending placeholder for an optimistic add that has not yet
//     been confirmed by the store. The value is a client-generated
//     correlation id taken from a high-resolution clock, negated so it can
//     never collide with a store-assigned id.
//   - ID == 0: never submitted to the store.
type Transaction struct {
	ID       int64   `json:"id,omitempty"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note,omitempty"`
	Date     string  `json:"date"`
	Type     string  `json:"type"`
}

// Pending reports whether the transaction is an optimistic placeholder
// awaiting a store-assigned id.
func (t Transaction) Pending() bool {
	return t.ID < 0
}

// Committed reports whether the transaction carries a store-assigned id.
func (t Transaction) Committed() bool {
	return t.ID > 0
}

// Today returns the current calendar date in the transaction date format.
func Today() string {
	return time.Now().Format(DateLayout)
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
