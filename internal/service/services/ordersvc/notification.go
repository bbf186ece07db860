package ordersvc

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/corray333/backend-labs/notify/internal/service/format"
	"github.com/corray333/backend-labs/notify/internal/service/models/document"
	"github.com/corray333/backend-labs/notify/internal/service/models/notification"
	"github.com/corray333/backend-labs/notify/internal/service/models/order"
)

var bodyTemplate = template.Must(template.New("body").Parse(`<html>
<body style="font-family: Arial, sans-serif;">
    <h2 style="color: #22c55e;">Новый заказ с сайта {{.Shop}}</h2>
    <p><strong>Клиент:</strong> {{.Name}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>
    <p><strong>Телефон:</strong> {{.Phone}}</p>
    <p><strong>Адрес:</strong> {{.Address}}</p>
    <p><strong>Сумма заказа:</strong> {{.FinalPrice}}</p>
    <hr>
    <p>Подробная информация о заказе во вложенном PDF файле.</p>
</body>
</html>
`))

type bodyData struct {
	Shop       string
	Name       string
	Email      string
	Phone      string
	Address    string
	FinalPrice string
}

// composeEmail builds the staff notification. The recipient comes from the
// configuration, never from the order.
func (s *OrderService) composeEmail(o order.Order, pdf []byte) (notification.Email, error) {
	var body bytes.Buffer
	err := bodyTemplate.Execute(&body, bodyData{
		Shop:       s.shopName,
		Name:       o.CustomerName,
		Email:      o.CustomerEmail,
		Phone:      o.CustomerPhone,
		Address:    o.CustomerAddress,
		FinalPrice: format.Amount(o.FinalPrice, s.currency),
	})
	if err != nil {
		return notification.Email{}, fmt.Errorf("failed to execute email body template: %w", err)
	}

	return notification.Email{
		From:     s.mailCfg.Sender(),
		To:       s.mailCfg.Recipient,
		Subject:  format.Subject(o.CustomerName),
		HTMLBody: body.String(),
		Attachment: document.Document{
			Name:        format.AttachmentName(o.CustomerName),
			ContentType: document.ContentTypePDF,
			Data:        pdf,
		},
	}, nil
}
