package kernel

import (
	"fmt"

	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is an immutable monetary amount with fixed-point decimal semantics.
// The zero value equals Zero() and is valid, so Money can be embedded in
// entities without a constructor guard. All arithmetic returns new values.
//
// Money carries no currency: the system operates in a single configured
// currency and the domain never mixes denominations.
//
// Example:
//
//	price, _ := kernel.NewMoneyFromString("19.99")
//	lineTotal := price.MulInt(3)
//	fmt.Println(lineTotal) // $59.97
type Money struct {
	amount decimal.Decimal
}

// Zero returns the additive identity.
func Zero() Money {
	return Money{}
}

// NewMoneyFromDecimal creates a Money from a decimal amount.
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// NewMoneyFromString parses a decimal string such as "12.50" into a Money.
// Returns a ValueIsInvalidError when the string is not a valid decimal.
func NewMoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return Money{amount: amount}, nil
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of two amounts.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// MulInt returns the amount scaled by an integer multiplier.
func (m Money) MulInt(multiplier int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(multiplier)))}
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsZero reports whether the amount equals zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual reports whether two amounts are numerically equal,
// regardless of representation ("1.5" equals "1.50").
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal returns the underlying decimal amount for persistence and serialization.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with two decimal places, e.g. "$25.00".
func (m Money) String() string {
	return fmt.Sprintf("$%s", m.amount.StringFixed(2))
}
