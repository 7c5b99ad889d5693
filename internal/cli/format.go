package cli

import "fmt"

// FormatAmount renders a monetary amount with two decimal places.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatRemaining renders a remaining amount, styled red when overspent.
func FormatRemaining(remaining float64) string {
	s := FormatAmount(remaining)
	if remaining < 0 {
		return OverspentStyle.Render(s)
	}
	return s
}
