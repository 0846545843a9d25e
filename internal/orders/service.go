package orders

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gidiparts.ng/gidiparts-web/internal/api"
	"gidiparts.ng/gidiparts-web/internal/apperrors"
)

// Service is the read-mostly order/return query layer.
type Service struct {
	api *api.Client
}

func NewService(client *api.Client) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("orders: api client required")
	}
	return &Service{api: client}, nil
}

// List returns the caller's order history, newest first per backend ordering.
func (s *Service) List(ctx context.Context, token string) ([]Order, error) {
	if token == "" {
		return nil, apperrors.New(apperrors.CodeUnauthenticated, "sign in to view your orders")
	}
	var payloads []orderPayload
	if err := s.api.Get(ctx, "/orders", token, &payloads); err != nil {
		return nil, err
	}
	out := make([]Order, 0, len(payloads))
	for _, p := range payloads {
		out = append(out, p.normalize())
	}
	return out, nil
}

// Get returns one order by id.
func (s *Service) Get(ctx context.Context, token, orderID string) (*Order, error) {
	if token == "" {
		return nil, apperrors.New(apperrors.CodeUnauthenticated, "sign in to view your orders")
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "order id is required")
	}
	var payload orderPayload
	if err := s.api.Get(ctx, "/orders/"+url.PathEscape(orderID), token, &payload); err != nil {
		return nil, err
	}
	order := payload.normalize()
	return &order, nil
}

// ResolveProduct looks an item's product up inside the order's own product
// list; no separate product-detail fetch happens here.
func ResolveProduct(order *Order, productID string) (*Product, error) {
	if order == nil {
		return nil, apperrors.New(apperrors.CodeNotFound, "order not loaded")
	}
	for i := range order.Products {
		if order.Products[i].ID == productID {
			return &order.Products[i], nil
		}
	}
	return nil, apperrors.New(apperrors.CodeNotFound, "product not found on this order")
}

// ReturnRequest is the client-created return record; the server owns its
// status afterwards.
type ReturnRequest struct {
	OrderID     string   `json:"orderId"`
	OrderItemID string   `json:"orderItemId"`
	Reason      string   `json:"reason"`
	ImageURLs   []string `json:"imageUrls,omitempty"`
}

// ReturnReceipt acknowledges a submitted return request.
type ReturnReceipt struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// SubmitReturn creates a return request. Single-shot: no update or delete is
// exposed.
func (s *Service) SubmitReturn(ctx context.Context, token string, req ReturnRequest) (*ReturnReceipt, error) {
	if token == "" {
		return nil, apperrors.New(apperrors.CodeUnauthenticated, "sign in to request a return")
	}
	if strings.TrimSpace(req.OrderID) == "" || strings.TrimSpace(req.OrderItemID) == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "order and item are required")
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "tell us why you're returning this item")
	}
	var receipt ReturnReceipt
	endpoint := "/orders/" + url.PathEscape(strings.TrimSpace(req.OrderID)) + "/returns"
	if err := s.api.Post(ctx, endpoint, token, req, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// ListReturns fetches the caller's return requests.
func (s *Service) ListReturns(ctx context.Context, token string) ([]ReturnReceipt, error) {
	if token == "" {
		return nil, apperrors.New(apperrors.CodeUnauthenticated, "sign in to view your returns")
	}
	var receipts []ReturnReceipt
	if err := s.api.Get(ctx, "/returns", token, &receipts); err != nil {
		return nil, err
	}
	if receipts == nil {
		receipts = []ReturnReceipt{}
	}
	return receipts, nil
}
