package ordersvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/corray333/backend-labs/notify/internal/config"
	"github.com/corray333/backend-labs/notify/internal/service/models/currency"
	"github.com/corray333/backend-labs/notify/internal/service/models/notification"
	"github.com/corray333/backend-labs/notify/internal/service/models/order"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "order-notify-svc"

var (
	ErrConfigurationMissing = errors.New("email configuration missing")
	ErrRender               = errors.New("failed to render order document")
	ErrDelivery             = errors.New("failed to deliver order email")
)

type renderer interface {
	Render(ctx context.Context, o order.Order) ([]byte, error)
}

type sender interface {
	Send(ctx context.Context, email notification.Email) error
}

// OrderService turns submitted orders into staff notification emails.
type OrderService struct {
	mailCfg  config.MailConfig
	renderer renderer
	sender   sender
	shopName string
	currency currency.Currency
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		currency: currency.CurrencyRUB,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.renderer == nil {
		panic("ordersvc: renderer is not set")
	}
	if s.sender == nil {
		panic("ordersvc: sender is not set")
	}

	return s
}

// WithMailConfig sets the SMTP settings checked before every order.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMailConfig(cfg config.MailConfig) option {
	return func(s *OrderService) {
		s.mailCfg = cfg
	}
}

// WithRenderer sets the order document renderer.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithRenderer(r renderer) option {
	return func(s *OrderService) {
		s.renderer = r
	}
}

// WithSender sets the email sender.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithSender(snd sender) option {
	return func(s *OrderService) {
		s.sender = snd
	}
}

// WithShop sets the business name and currency used in the email body.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithShop(name string, cur currency.Currency) option {
	return func(s *OrderService) {
		s.shopName = name
		s.currency = cur
	}
}

// SendOrder renders the order document and emails it to the store staff.
// Nothing is rendered or sent when the mail configuration is incomplete.
func (s *OrderService) SendOrder(ctx context.Context, o order.Order) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ordersvc.SendOrder",
		trace.WithAttributes(
			attribute.Int("order.items", len(o.Items)),
			attribute.Int64("order.final_price", o.FinalPrice),
		),
	)
	defer span.End()

	if err := s.mailCfg.Validate(); err != nil {
		return fail(span, fmt.Errorf("%w: %w", ErrConfigurationMissing, err))
	}

	pdf, err := s.render(ctx, o)
	if err != nil {
		return fail(span, fmt.Errorf("%w: %w", ErrRender, err))
	}

	email, err := s.composeEmail(o, pdf)
	if err != nil {
		return fail(span, err)
	}

	if err := s.deliver(ctx, email); err != nil {
		return fail(span, fmt.Errorf("%w: %w", ErrDelivery, err))
	}

	slog.InfoContext(ctx, "Order notification sent",
		"items", len(o.Items),
		"final_price", o.FinalPrice,
		"attachment", email.Attachment.Name,
		"attachment_bytes", len(pdf),
	)

	return nil
}

func (s *OrderService) render(ctx context.Context, o order.Order) ([]byte, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ordersvc.render")
	defer span.End()

	pdf, err := s.renderer.Render(ctx, o)
	if err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.Int("document.bytes", len(pdf)))

	return pdf, nil
}

func (s *OrderService) deliver(ctx context.Context, email notification.Email) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ordersvc.deliver")
	defer span.End()

	if err := s.sender.Send(ctx, email); err != nil {
		return fail(span, err)
	}

	return nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	return err
}
