package model

// DefaultExpenseTypes is the seed list written to a fresh store. The order
// is preserved everywhere expense types are displayed.
var DefaultExpenseTypes = []string{"Fixed", "Variable", "Priority/Investments"}

// DefaultExpenseType is the type assigned to migrated legacy records that
// predate expense-type support.
const DefaultExpenseType = "Fixed"
