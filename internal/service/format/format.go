// Package format holds the display strings shared by the order document and
// the notification email.
package format

import (
	"strconv"

	"github.com/corray333/backend-labs/notify/internal/service/models/currency"
)

const (
	LabelName         = "Имя:"
	LabelEmail        = "Email:"
	LabelPhone        = "Телефон:"
	LabelAddress      = "Адрес доставки:"
	LabelItems        = "Состав заказа:"
	LabelGoods        = "Товары:"
	LabelDelivery     = "Доставка:"
	LabelTotal        = "ИТОГО:"
	LabelFreeDelivery = "Бесплатно"
)

// ItemsHeader is the header row of the line-items table.
var ItemsHeader = []string{"№", "Наименование", "Цена", "Кол-во", "Сумма"}

// Amount renders a whole amount followed by the currency symbol, e.g. "150 ₽".
func Amount(amount int64, cur currency.Currency) string {
	return strconv.FormatInt(amount, 10) + " " + cur.Symbol()
}

// Delivery renders the delivery cost, or the free delivery label unless the
// cost is positive.
func Delivery(cost int64, cur currency.Currency) string {
	if cost <= 0 {
		return LabelFreeDelivery
	}

	return Amount(cost, cur)
}

// Title is the heading of the order document.
func Title(shopName string) string {
	return "Новый заказ - " + shopName
}

// Subject is the notification email subject.
func Subject(customerName string) string {
	return "Новый заказ от " + customerName
}

// AttachmentName is the file name of the attached order document.
func AttachmentName(customerName string) string {
	return "order_" + customerName + ".pdf"
}
