package backend

import (
	"context"
	"fmt"

	"github.com/byway/web-gateway/internal/core/domain"
)

// CategoryService maps category reads and admin deletion onto /Categories.
// Category create/update use multipart image uploads owned by the backend's
// admin tooling and are not exposed through this gateway.
type CategoryService struct {
	client *Client
}

func NewCategoryService(client *Client) *CategoryService {
	return &CategoryService{client: client}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := s.client.get(ctx, "/Categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id int) (*domain.Category, error) {
	var category domain.Category
	if err := s.client.get(ctx, fmt.Sprintf("/Categories/%d", id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int) error {
	return s.client.delete(ctx, fmt.Sprintf("/Categories/%d", id))
}
