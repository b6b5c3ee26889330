package backend

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/byway/web-gateway/internal/core/domain"
)

// CourseService maps catalog reads and admin course CRUD onto /Courses.
type CourseService struct {
	client *Client
}

func NewCourseService(client *Client) *CourseService {
	return &CourseService{client: client}
}

// List fetches a catalog page. Zero-valued filters are omitted from the query
// string rather than sent as empty parameters.
func (s *CourseService) List(ctx context.Context, filters domain.CourseFilters) (*domain.PaginatedResult[domain.Course], error) {
	var result domain.PaginatedResult[domain.Course]
	if err := s.client.get(ctx, "/Courses", encodeFilters(filters), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *CourseService) Get(ctx context.Context, id int) (*domain.Course, error) {
	var course domain.Course
	if err := s.client.get(ctx, fmt.Sprintf("/Courses/%d", id), nil, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *CourseService) Top(ctx context.Context, count int) ([]domain.Course, error) {
	query := url.Values{"count": {strconv.Itoa(count)}}
	var courses []domain.Course
	if err := s.client.get(ctx, "/Courses/top", query, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (s *CourseService) Similar(ctx context.Context, courseID, count int) ([]domain.Course, error) {
	query := url.Values{"count": {strconv.Itoa(count)}}
	var courses []domain.Course
	if err := s.client.get(ctx, fmt.Sprintf("/Courses/%d/similar", courseID), query, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (s *CourseService) Create(ctx context.Context, course domain.CreateCourse) (*domain.Course, error) {
	var created domain.Course
	if err := s.client.post(ctx, "/Courses", course, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update modifies a course. The backend refuses to touch a course that has
// already been purchased; that business error is surfaced as
// domain.ErrCoursePurchased so the admin console can explain it.
func (s *CourseService) Update(ctx context.Context, id int, course domain.CreateCourse) (*domain.Course, error) {
	var updated domain.Course
	if err := s.client.put(ctx, fmt.Sprintf("/Courses/%d", id), course, &updated); err != nil {
		return nil, mapPurchasedError(err)
	}
	return &updated, nil
}

func (s *CourseService) Delete(ctx context.Context, id int) error {
	if err := s.client.delete(ctx, fmt.Sprintf("/Courses/%d", id)); err != nil {
		return mapPurchasedError(err)
	}
	return nil
}

// mapPurchasedError pattern-matches the backend's purchased-course refusal so
// callers get a typed business error with the original message preserved.
func mapPurchasedError(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && strings.Contains(strings.ToLower(apiErr.Message), "purchased") {
		return fmt.Errorf("%w: %s", domain.ErrCoursePurchased, apiErr.Message)
	}
	return err
}

// encodeFilters serializes a filter draft; absent/default values are omitted.
func encodeFilters(f domain.CourseFilters) url.Values {
	query := url.Values{}
	if f.Page > 0 {
		query.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		query.Set("pageSize", strconv.Itoa(f.PageSize))
	}
	if f.Search != "" {
		query.Set("search", f.Search)
	}
	if f.CategoryID > 0 {
		query.Set("categoryId", strconv.Itoa(f.CategoryID))
	}
	if f.MinPrice > 0 {
		query.Set("minPrice", formatFloat(f.MinPrice))
	}
	if f.MaxPrice > 0 {
		query.Set("maxPrice", formatFloat(f.MaxPrice))
	}
	if f.MinRating > 0 {
		query.Set("minRating", formatFloat(f.MinRating))
	}
	if f.SortBy != "" {
		query.Set("sortBy", f.SortBy)
	}
	return query
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
