// internal/domain/cart/service_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/sportsplus-backend/internal/domain/product"
)

func item(price int64, salePrice *int64, quantity int) CartItemResponse {
	return CartItemResponse{
		CartItem: CartItem{Quantity: quantity},
		Product: &product.Product{
			Price:     price,
			SalePrice: salePrice,
		},
	}
}

func cents(v int64) *int64 { return &v }

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name         string
		items        []CartItemResponse
		wantSubtotal int64
		wantTax      int64
		wantTotal    int64
	}{
		{
			name:         "empty cart",
			items:        nil,
			wantSubtotal: 0,
			wantTax:      0,
			wantTotal:    0,
		},
		{
			name:         "single line",
			items:        []CartItemResponse{item(2000, nil, 2)},
			wantSubtotal: 4000,
			wantTax:      320,
			wantTotal:    4320,
		},
		{
			name: "multiple lines",
			items: []CartItemResponse{
				item(1000, nil, 2),
				item(500, nil, 1),
			},
			wantSubtotal: 2500,
			wantTax:      200,
			wantTotal:    2700,
		},
		{
			name:         "sale price wins over regular price",
			items:        []CartItemResponse{item(18999, cents(14999), 1)},
			wantSubtotal: 14999,
			wantTax:      1200, // 1199.92 rounds half up
			wantTotal:    16199,
		},
		{
			name:         "tax rounds half up",
			items:        []CartItemResponse{item(1006, nil, 1)},
			wantSubtotal: 1006,
			wantTax:      80, // 80.48 rounds down
			wantTotal:    1086,
		},
		{
			name:         "tax rounding boundary",
			items:        []CartItemResponse{item(1019, nil, 1)},
			wantSubtotal: 1019,
			wantTax:      82, // 81.52 rounds up
			wantTotal:    1101,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := ComputeTotals(tt.items)
			assert.Equal(t, tt.wantSubtotal, totals.Subtotal)
			assert.Equal(t, tt.wantTax, totals.Tax)
			assert.Equal(t, tt.wantTotal, totals.Total)
		})
	}
}

func TestComputeTotalsCounts(t *testing.T) {
	totals := ComputeTotals([]CartItemResponse{
		item(1000, nil, 3),
		item(2000, nil, 1),
	})

	assert.Equal(t, 2, totals.ItemCount)
	assert.Equal(t, 4, totals.TotalQuantity)
}

func TestComputeTotalsSkipsMissingProducts(t *testing.T) {
	// A line whose product was withdrawn still counts toward quantity
	// but contributes nothing to the money totals.
	items := []CartItemResponse{
		{CartItem: CartItem{Quantity: 2}, Product: nil},
		item(1000, nil, 1),
	}

	totals := ComputeTotals(items)
	assert.Equal(t, int64(1000), totals.Subtotal)
	assert.Equal(t, 3, totals.TotalQuantity)
}

func TestValidateQuantity(t *testing.T) {
	assert.NoError(t, validateQuantity(1))
	assert.NoError(t, validateQuantity(MaxItemQuantity))
	assert.Error(t, validateQuantity(0))
	assert.Error(t, validateQuantity(-5))
	assert.Error(t, validateQuantity(MaxItemQuantity+1))
}
