package sendorder

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/notify/internal/service/models/order"
	"github.com/corray333/backend-labs/notify/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/notify/internal/service/services/ordersvc"
	"github.com/corray333/backend-labs/notify/pkg/http/response"
)

const successMessage = "Order sent successfully"

// service is an interface for the service layer.
type service interface {
	SendOrder(ctx context.Context, o order.Order) error
}

// itemInSendOrderRequest represents an item in a send order request.
type itemInSendOrderRequest struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
}

// sendOrderRequest represents the checkout payload. Absent fields keep their
// zero values.
type sendOrderRequest struct {
	CustomerName    string                   `json:"customerName"`
	CustomerEmail   string                   `json:"customerEmail"`
	CustomerPhone   string                   `json:"customerPhone"`
	CustomerAddress string                   `json:"customerAddress"`
	Items           []itemInSendOrderRequest `json:"items"`
	TotalPrice      int64                    `json:"totalPrice"`
	DeliveryCost    int64                    `json:"deliveryCost"`
	FinalPrice      int64                    `json:"finalPrice"`
}

// toModel converts sendOrderRequest to order.Order.
func (r *sendOrderRequest) toModel() order.Order {
	items := make([]orderitem.OrderItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = orderitem.OrderItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	return order.Order{
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		CustomerAddress: r.CustomerAddress,
		Items:           items,
		TotalPrice:      r.TotalPrice,
		DeliveryCost:    r.DeliveryCost,
		FinalPrice:      r.FinalPrice,
	}
}

type sendOrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Preflight answers a CORS preflight request with an empty body.
func Preflight(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Access-Control-Max-Age", "86400")
	w.WriteHeader(http.StatusOK)
}

// MethodNotAllowed rejects anything but POST and OPTIONS.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	response.AllowOrigin(w)
	response.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// SendOrder handles the order submission.
func SendOrder(w http.ResponseWriter, r *http.Request, service service) {
	switch r.Method {
	case http.MethodOptions:
		Preflight(w)

		return
	case http.MethodPost:
	default:
		MethodNotAllowed(w, r)

		return
	}

	response.AllowOrigin(w)

	req := sendOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.WriteError(w, http.StatusBadRequest, "Invalid request body")
		slog.ErrorContext(r.Context(), "Error decoding request body for send order", "error", err)

		return
	}

	if err := service.SendOrder(r.Context(), req.toModel()); err != nil {
		status, message := errorResponse(err)
		response.WriteError(w, status, message)
		slog.ErrorContext(r.Context(), "Error sending order", "error", err, "status", status)

		return
	}

	response.WriteJSON(w, http.StatusOK, sendOrderResponse{
		Success: true,
		Message: successMessage,
	})
}

func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, ordersvc.ErrConfigurationMissing):
		return http.StatusInternalServerError, "Email configuration missing"
	case errors.Is(err, ordersvc.ErrRender):
		return http.StatusInternalServerError, "Failed to render order document"
	case errors.Is(err, ordersvc.ErrDelivery):
		return http.StatusBadGateway, "Failed to send order email"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
