package backend

import (
	"context"
	"fmt"

	"github.com/byway/web-gateway/internal/core/domain"
)

// OrderService maps checkout and order history onto /Orders.
type OrderService struct {
	client *Client
}

func NewOrderService(client *Client) *OrderService {
	return &OrderService{client: client}
}

func (s *OrderService) Create(ctx context.Context, order domain.CreateOrder) (*domain.Order, error) {
	var created domain.Order
	if err := s.client.post(ctx, "/Orders", order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID int) ([]domain.Order, error) {
	var orders []domain.Order
	if err := s.client.get(ctx, fmt.Sprintf("/Orders/user/%d", userID), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id int) (*domain.Order, error) {
	var order domain.Order
	if err := s.client.get(ctx, fmt.Sprintf("/Orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
