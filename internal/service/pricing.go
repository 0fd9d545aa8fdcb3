package service

import (
	"github.com/shopspring/decimal"
)

// ComputeTotal multiplies a unit price by a quantity using exact decimal
// arithmetic. The result is snapshotted onto the booking at admission
// time; later price changes never touch it.
func ComputeTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
