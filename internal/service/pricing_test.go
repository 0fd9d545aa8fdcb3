package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		quantity int
		want     string
	}{
		{name: "whole price", price: "50", quantity: 60, want: "3000"},
		{name: "cents stay exact", price: "19.99", quantity: 3, want: "59.97"},
		{name: "repeated cents", price: "0.10", quantity: 3, want: "0.3"},
		{name: "single unit", price: "12.34", quantity: 1, want: "12.34"},
		{name: "free ticket", price: "0", quantity: 7, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := ComputeTotal(decimal.RequireFromString(tt.price), tt.quantity)
			assert.Equal(t, tt.want, total.String())
		})
	}
}
