package payments

import (
	"github.com/shopspring/decimal"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/domain"
)

// Evaluate decides the outcome of a simulated charge. No money moves.
func Evaluate(amount decimal.Decimal) domain.PaymentStatus {
	if amount.IsPositive() {
		return domain.PaymentStatusSuccess
	}
	return domain.PaymentStatusFailed
}
