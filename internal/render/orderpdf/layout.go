package orderpdf

import (
	"strconv"

	"github.com/corray333/backend-labs/notify/internal/service/format"
	"github.com/corray333/backend-labs/notify/internal/service/models/currency"
	"github.com/corray333/backend-labs/notify/internal/service/models/order"
)

// Row is a label/value pair of the customer or totals table.
type Row struct {
	Label string
	Value string
}

// Layout holds every string printed in the order document, in drawing order.
type Layout struct {
	Title       string
	Customer    []Row
	ItemsTitle  string
	ItemsHeader []string
	Items       [][]string
	Totals      []Row
}

// BuildLayout turns an order into display strings. Items keep their order and
// are numbered from 1; row totals are price × quantity.
func BuildLayout(o order.Order, shopName string, cur currency.Currency) Layout {
	items := make([][]string, 0, len(o.Items))
	for i, item := range o.Items {
		items = append(items, []string{
			strconv.Itoa(i + 1),
			item.Name,
			format.Amount(item.Price, cur),
			strconv.FormatInt(item.Quantity, 10),
			format.Amount(item.LineTotal(), cur),
		})
	}

	return Layout{
		Title: format.Title(shopName),
		Customer: []Row{
			{Label: format.LabelName, Value: o.CustomerName},
			{Label: format.LabelEmail, Value: o.CustomerEmail},
			{Label: format.LabelPhone, Value: o.CustomerPhone},
			{Label: format.LabelAddress, Value: o.CustomerAddress},
		},
		ItemsTitle:  format.LabelItems,
		ItemsHeader: append([]string(nil), format.ItemsHeader...),
		Items:       items,
		Totals: []Row{
			{Label: format.LabelGoods, Value: format.Amount(o.TotalPrice, cur)},
			{Label: format.LabelDelivery, Value: format.Delivery(o.DeliveryCost, cur)},
			{Label: format.LabelTotal, Value: format.Amount(o.FinalPrice, cur)},
		},
	}
}
