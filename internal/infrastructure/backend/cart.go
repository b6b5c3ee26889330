package backend

import (
	"context"
	"fmt"

	"github.com/byway/web-gateway/internal/core/domain"
)

// CartService maps cart operations onto /Cart/{userID}. The cart aggregate
// and all totals are server-owned; every read hits the backend.
type CartService struct {
	client *Client
}

func NewCartService(client *Client) *CartService {
	return &CartService{client: client}
}

func (s *CartService) Get(ctx context.Context, userID int) (*domain.Cart, error) {
	var cart domain.Cart
	if err := s.client.get(ctx, fmt.Sprintf("/Cart/%d", userID), nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *CartService) AddItem(ctx context.Context, userID, courseID int) error {
	body := struct {
		CourseID int `json:"courseId"`
	}{CourseID: courseID}
	return s.client.post(ctx, fmt.Sprintf("/Cart/%d/items", userID), body, nil)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, courseID int) error {
	return s.client.delete(ctx, fmt.Sprintf("/Cart/%d/items/%d", userID, courseID))
}

// Clear empties the cart. Clearing an already-empty cart succeeds.
func (s *CartService) Clear(ctx context.Context, userID int) error {
	return s.client.delete(ctx, fmt.Sprintf("/Cart/%d", userID))
}
