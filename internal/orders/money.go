package orders

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var rupee = accounting.Accounting{Symbol: "₹", Precision: 2, Thousand: ",", Decimal: "."}

// FormatAmount renders a money amount for display, e.g. "₹1,234.50".
func FormatAmount(amount decimal.Decimal) string {
	return rupee.FormatMoneyDecimal(amount)
}
