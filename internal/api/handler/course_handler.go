package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/byway/web-gateway/internal/core/domain"
	"github.com/byway/web-gateway/internal/core/ports"
)

const (
	defaultTopCount     = 6
	defaultSimilarCount = 4
)

// CourseHandler serves the catalog screens: course list, detail, and the
// home-page top rail.
type CourseHandler struct {
	courses    ports.CourseAPI
	categories ports.CategoryAPI
}

func NewCourseHandler(courses ports.CourseAPI, categories ports.CategoryAPI) *CourseHandler {
	return &CourseHandler{courses: courses, categories: categories}
}

type courseFiltersRequest struct {
	Page       int     `query:"page"`
	PageSize   int     `query:"pageSize"`
	Search     string  `query:"search"`
	CategoryID int     `query:"categoryId"`
	MinPrice   float64 `query:"minPrice"`
	MaxPrice   float64 `query:"maxPrice"`
	MinRating  float64 `query:"minRating"`
	SortBy     string  `query:"sortBy"`
}

func (r courseFiltersRequest) filters() domain.CourseFilters {
	return domain.CourseFilters{
		Page:       r.Page,
		PageSize:   r.PageSize,
		Search:     r.Search,
		CategoryID: r.CategoryID,
		MinPrice:   r.MinPrice,
		MaxPrice:   r.MaxPrice,
		MinRating:  r.MinRating,
		SortBy:     r.SortBy,
	}
}

// List serves the catalog screen.
//
// @Summary      Browse the course catalog
// @Tags         courses
// @Produce      json
// @Param        page       query  int     false  "Page number"
// @Param        pageSize   query  int     false  "Page size"
// @Param        search     query  string  false  "Search text"
// @Param        categoryId query  int     false  "Category filter"
// @Param        minPrice   query  number  false  "Minimum price"
// @Param        maxPrice   query  number  false  "Maximum price"
// @Param        minRating  query  number  false  "Minimum rating"
// @Param        sortBy     query  string  false  "Sort key"
// @Success      200  {object}  domain.PaginatedResult[domain.Course]
// @Router       /courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	var req courseFiltersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid filters")
	}

	result, err := h.courses.List(c.Request().Context(), req.filters())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

type courseDetailResponse struct {
	Course  *domain.Course  `json:"course"`
	Similar []domain.Course `json:"similar"`
}

// Detail serves the course-details screen. The course and its similar rail
// are fetched concurrently and joined; if either fetch fails the whole screen
// fails as a unit.
//
// @Summary      Course details with similar courses
// @Tags         courses
// @Produce      json
// @Param        id   path      int  true  "Course id"
// @Success      200  {object}  courseDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /courses/{id} [get]
func (h *CourseHandler) Detail(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid course id")
	}

	var (
		course  *domain.Course
		similar []domain.Course
	)
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var err error
		course, err = h.courses.Get(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		similar, err = h.courses.Similar(ctx, id, defaultSimilarCount)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, courseDetailResponse{Course: course, Similar: similar})
}

// Top serves the home-page rail.
//
// @Summary      Top courses
// @Tags         courses
// @Produce      json
// @Param        count  query     int  false  "Number of courses"
// @Success      200    {array}   domain.Course
// @Router       /courses/top [get]
func (h *CourseHandler) Top(c echo.Context) error {
	count := defaultTopCount
	if raw := c.QueryParam("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid count")
		}
		count = parsed
	}

	courses, err := h.courses.Top(c.Request().Context(), count)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courses)
}

// Categories serves the catalog's category rail.
//
// @Summary      List categories
// @Tags         courses
// @Produce      json
// @Success      200  {array}  domain.Category
// @Router       /categories [get]
func (h *CourseHandler) Categories(c echo.Context) error {
	categories, err := h.categories.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}
