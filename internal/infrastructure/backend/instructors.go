package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/byway/web-gateway/internal/core/domain"
)

// InstructorService maps instructor reads and admin CRUD onto /Instructors.
type InstructorService struct {
	client *Client
}

func NewInstructorService(client *Client) *InstructorService {
	return &InstructorService{client: client}
}

func (s *InstructorService) List(ctx context.Context, page, pageSize int, search, sortBy string) (*domain.PaginatedResult[domain.Instructor], error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		query.Set("pageSize", strconv.Itoa(pageSize))
	}
	if search != "" {
		query.Set("search", search)
	}
	if sortBy != "" {
		query.Set("sortBy", sortBy)
	}

	var result domain.PaginatedResult[domain.Instructor]
	if err := s.client.get(ctx, "/Instructors", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *InstructorService) Get(ctx context.Context, id int) (*domain.Instructor, error) {
	var instructor domain.Instructor
	if err := s.client.get(ctx, fmt.Sprintf("/Instructors/%d", id), nil, &instructor); err != nil {
		return nil, err
	}
	return &instructor, nil
}

func (s *InstructorService) Create(ctx context.Context, instructor domain.CreateInstructor) (*domain.Instructor, error) {
	var created domain.Instructor
	if err := s.client.post(ctx, "/Instructors", instructor, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *InstructorService) Update(ctx context.Context, id int, instructor domain.CreateInstructor) (*domain.Instructor, error) {
	var updated domain.Instructor
	if err := s.client.put(ctx, fmt.Sprintf("/Instructors/%d", id), instructor, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *InstructorService) Delete(ctx context.Context, id int) error {
	return s.client.delete(ctx, fmt.Sprintf("/Instructors/%d", id))
}
