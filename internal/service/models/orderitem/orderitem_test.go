package orderitem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderItem_LineTotal(t *testing.T) {
	tests := []struct {
		name string
		item OrderItem
		want int64
	}{
		{name: "regular", item: OrderItem{Name: "Potatoes", Price: 50, Quantity: 3}, want: 150},
		{name: "zero quantity", item: OrderItem{Name: "Apples", Price: 850}, want: 0},
		{name: "empty item", item: OrderItem{}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.LineTotal())
		})
	}
}
