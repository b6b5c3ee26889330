package backend

import (
	"context"

	"github.com/byway/web-gateway/internal/core/domain"
)

// AdminService maps the dashboard reads onto /Admin.
type AdminService struct {
	client *Client
}

func NewAdminService(client *Client) *AdminService {
	return &AdminService{client: client}
}

func (s *AdminService) Stats(ctx context.Context) (*domain.PlatformStats, error) {
	var stats domain.PlatformStats
	if err := s.client.get(ctx, "/Admin/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *AdminService) Users(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := s.client.get(ctx, "/Admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *AdminService) Orders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := s.client.get(ctx, "/Admin/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
