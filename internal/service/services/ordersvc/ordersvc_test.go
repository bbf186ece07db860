package ordersvc

import (
	"context"
	"errors"
	"testing"

	"github.com/corray333/backend-labs/notify/internal/config"
	"github.com/corray333/backend-labs/notify/internal/service/models/currency"
	"github.com/corray333/backend-labs/notify/internal/service/models/document"
	"github.com/corray333/backend-labs/notify/internal/service/models/notification"
	"github.com/corray333/backend-labs/notify/internal/service/models/order"
	"github.com/corray333/backend-labs/notify/internal/service/models/orderitem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRenderer is a mock implementation of the document renderer.
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(ctx context.Context, o order.Order) ([]byte, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockSender is a mock implementation of the email sender.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, email notification.Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

var mailCfg = config.MailConfig{
	Host:      "smtp.example.com",
	Port:      587,
	Username:  "shop@example.com",
	Password:  "secret",
	Recipient: "staff@example.com",
}

func ivanovOrder() order.Order {
	return order.Order{
		CustomerName:    "Ivanov",
		CustomerEmail:   "ivanov@example.com",
		CustomerPhone:   "8 900 000-00-00",
		CustomerAddress: "Moscow",
		Items:           []orderitem.OrderItem{{Name: "Potatoes", Price: 50, Quantity: 3}},
		TotalPrice:      150,
		FinalPrice:      150,
	}
}

func newService(cfg config.MailConfig, r *MockRenderer, s *MockSender) *OrderService {
	return MustNewOrderService(
		WithMailConfig(cfg),
		WithRenderer(r),
		WithSender(s),
		WithShop("КФХ Бракнис", currency.CurrencyRUB),
	)
}

func TestOrderService_SendOrder(t *testing.T) {
	r := new(MockRenderer)
	s := new(MockSender)
	svc := newService(mailCfg, r, s)
	o := ivanovOrder()
	pdf := []byte("%PDF-1.3")

	r.On("Render", mock.Anything, o).Return(pdf, nil).Once()
	s.On("Send", mock.Anything, mock.MatchedBy(func(e notification.Email) bool {
		return e.From == "shop@example.com" &&
			e.To == "staff@example.com" &&
			e.Attachment.Name == "order_Ivanov.pdf" &&
			e.Attachment.ContentType == document.ContentTypePDF &&
			string(e.Attachment.Data) == string(pdf)
	})).Return(nil).Once()

	err := svc.SendOrder(context.Background(), o)

	assert.NoError(t, err)
	r.AssertExpectations(t)
	s.AssertExpectations(t)
}

func TestOrderService_SendOrder_MissingConfig(t *testing.T) {
	for _, field := range []string{"host", "user", "password", "recipient"} {
		t.Run(field, func(t *testing.T) {
			cfg := mailCfg
			switch field {
			case "host":
				cfg.Host = ""
			case "user":
				cfg.Username = ""
			case "password":
				cfg.Password = ""
			case "recipient":
				cfg.Recipient = ""
			}
			r := new(MockRenderer)
			s := new(MockSender)
			svc := newService(cfg, r, s)

			err := svc.SendOrder(context.Background(), ivanovOrder())

			assert.ErrorIs(t, err, ErrConfigurationMissing)
			assert.ErrorIs(t, err, config.ErrMailConfigMissing)
			r.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
			s.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}
}

func TestOrderService_SendOrder_LoginUsername(t *testing.T) {
	cfg := mailCfg
	cfg.Username = "shop-login"

	r := new(MockRenderer)
	s := new(MockSender)
	err := newService(cfg, r, s).SendOrder(context.Background(), ivanovOrder())

	assert.ErrorIs(t, err, ErrConfigurationMissing)
	r.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
	s.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)

	cfg.From = "orders@example.com"
	o := ivanovOrder()
	r.On("Render", mock.Anything, o).Return([]byte("%PDF-1.3"), nil).Once()
	s.On("Send", mock.Anything, mock.MatchedBy(func(e notification.Email) bool {
		return e.From == "orders@example.com"
	})).Return(nil).Once()

	err = newService(cfg, r, s).SendOrder(context.Background(), o)

	assert.NoError(t, err)
	r.AssertExpectations(t)
	s.AssertExpectations(t)
}

func TestOrderService_SendOrder_RenderError(t *testing.T) {
	r := new(MockRenderer)
	s := new(MockSender)
	svc := newService(mailCfg, r, s)

	r.On("Render", mock.Anything, mock.Anything).Return(nil, errors.New("font missing")).Once()

	err := svc.SendOrder(context.Background(), ivanovOrder())

	assert.ErrorIs(t, err, ErrRender)
	s.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestOrderService_SendOrder_DeliveryError(t *testing.T) {
	r := new(MockRenderer)
	s := new(MockSender)
	svc := newService(mailCfg, r, s)
	sendErr := errors.New("535 authentication failed")

	r.On("Render", mock.Anything, mock.Anything).Return([]byte("%PDF"), nil).Once()
	s.On("Send", mock.Anything, mock.Anything).Return(sendErr).Once()

	err := svc.SendOrder(context.Background(), ivanovOrder())

	assert.ErrorIs(t, err, ErrDelivery)
	assert.ErrorIs(t, err, sendErr)
	s.AssertNumberOfCalls(t, "Send", 1)
}

func TestOrderService_ComposeEmail(t *testing.T) {
	svc := newService(mailCfg, new(MockRenderer), new(MockSender))
	o := ivanovOrder()
	o.CustomerAddress = `<script>alert("x")</script>`
	o.FinalPrice = 650

	email, err := svc.composeEmail(o, []byte("pdf"))
	require.NoError(t, err)

	assert.Equal(t, "shop@example.com", email.From)
	assert.Equal(t, "staff@example.com", email.To)
	assert.Contains(t, email.Subject, "Ivanov")
	assert.Equal(t, "order_Ivanov.pdf", email.Attachment.Name)
	assert.Contains(t, email.HTMLBody, "КФХ Бракнис")
	assert.Contains(t, email.HTMLBody, "Ivanov")
	assert.Contains(t, email.HTMLBody, "ivanov@example.com")
	assert.Contains(t, email.HTMLBody, "8 900 000-00-00")
	assert.Contains(t, email.HTMLBody, "650 ₽")
	assert.Contains(t, email.HTMLBody, "PDF")
	assert.NotContains(t, email.HTMLBody, "<script>")
}

func TestMustNewOrderService_PanicsWithoutDependencies(t *testing.T) {
	assert.Panics(t, func() { MustNewOrderService(WithSender(new(MockSender))) })
	assert.Panics(t, func() { MustNewOrderService(WithRenderer(new(MockRenderer))) })
}
