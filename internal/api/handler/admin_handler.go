package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/byway/web-gateway/internal/core/domain"
	"github.com/byway/web-gateway/internal/core/ports"
)

const adminFormPageSize = 100

// AdminHandler serves the admin console: the stats dashboard, user and order
// listings, and course/instructor CRUD. Every route is behind the admin guard.
type AdminHandler struct {
	admin       ports.AdminAPI
	courses     ports.CourseAPI
	instructors ports.InstructorAPI
	categories  ports.CategoryAPI
}

func NewAdminHandler(admin ports.AdminAPI, courses ports.CourseAPI, instructors ports.InstructorAPI, categories ports.CategoryAPI) *AdminHandler {
	return &AdminHandler{admin: admin, courses: courses, instructors: instructors, categories: categories}
}

// Stats serves the dashboard tiles.
//
// @Summary      Platform statistics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.PlatformStats
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.admin.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Users lists all accounts.
//
// @Summary      All users
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       /admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	users, err := h.admin.Users(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Orders lists all orders.
//
// @Summary      All orders
// @Tags         admin
// @Produce      json
// @Success      200  {array}  domain.Order
// @Router       /admin/orders [get]
func (h *AdminHandler) Orders(c echo.Context) error {
	orders, err := h.admin.Orders(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

type courseFormResponse struct {
	Categories  []domain.Category   `json:"categories"`
	Instructors []domain.Instructor `json:"instructors"`
}

// CourseForm preps the add/edit course form: categories and instructors are
// fetched concurrently and joined; a failure of either fails the form as a
// unit.
//
// @Summary      Course form reference data
// @Tags         admin
// @Produce      json
// @Success      200  {object}  courseFormResponse
// @Router       /admin/courses/form [get]
func (h *AdminHandler) CourseForm(c echo.Context) error {
	var (
		categories  []domain.Category
		instructors *domain.PaginatedResult[domain.Instructor]
	)
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var err error
		categories, err = h.categories.List(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		instructors, err = h.instructors.List(ctx, 1, adminFormPageSize, "", "name")
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, courseFormResponse{
		Categories:  categories,
		Instructors: instructors.Items,
	})
}

// CreateCourse adds a course to the catalog.
//
// @Summary      Create a course
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      domain.CreateCourse  true  "Course"
// @Success      201   {object}  domain.Course
// @Failure      400   {object}  map[string]string
// @Router       /admin/courses [post]
func (h *AdminHandler) CreateCourse(c echo.Context) error {
	var req domain.CreateCourse
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.courses.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateCourse edits a course. A course that has been purchased cannot be
// modified; the backend's refusal surfaces as a specific business error, not
// a generic failure.
//
// @Summary      Update a course
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Course id"
// @Param        body  body      domain.CreateCourse  true  "Course"
// @Success      200   {object}  domain.Course
// @Failure      409   {object}  map[string]string
// @Router       /admin/courses/{id} [put]
func (h *AdminHandler) UpdateCourse(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid course id")
	}

	var req domain.CreateCourse
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.courses.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteCourse removes a course; purchased courses are refused the same way
// updates are.
//
// @Summary      Delete a course
// @Tags         admin
// @Param        id  path  int  true  "Course id"
// @Success      204  "deleted"
// @Failure      409  {object}  map[string]string
// @Router       /admin/courses/{id} [delete]
func (h *AdminHandler) DeleteCourse(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid course id")
	}
	if err := h.courses.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Instructors lists instructors for the admin table.
//
// @Summary      List instructors
// @Tags         admin
// @Produce      json
// @Param        page      query  int     false  "Page number"
// @Param        pageSize  query  int     false  "Page size"
// @Param        search    query  string  false  "Search text"
// @Param        sortBy    query  string  false  "Sort key"
// @Success      200  {object}  domain.PaginatedResult[domain.Instructor]
// @Router       /admin/instructors [get]
func (h *AdminHandler) Instructors(c echo.Context) error {
	var req struct {
		Page     int    `query:"page"`
		PageSize int    `query:"pageSize"`
		Search   string `query:"search"`
		SortBy   string `query:"sortBy"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}

	result, err := h.instructors.List(c.Request().Context(), req.Page, req.PageSize, req.Search, req.SortBy)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// CreateInstructor adds an instructor.
//
// @Summary      Create an instructor
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      domain.CreateInstructor  true  "Instructor"
// @Success      201   {object}  domain.Instructor
// @Router       /admin/instructors [post]
func (h *AdminHandler) CreateInstructor(c echo.Context) error {
	var req domain.CreateInstructor
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.instructors.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateInstructor edits an instructor.
//
// @Summary      Update an instructor
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "Instructor id"
// @Param        body  body      domain.CreateInstructor  true  "Instructor"
// @Success      200   {object}  domain.Instructor
// @Router       /admin/instructors/{id} [put]
func (h *AdminHandler) UpdateInstructor(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid instructor id")
	}

	var req domain.CreateInstructor
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.instructors.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteInstructor removes an instructor.
//
// @Summary      Delete an instructor
// @Tags         admin
// @Param        id  path  int  true  "Instructor id"
// @Success      204  "deleted"
// @Router       /admin/instructors/{id} [delete]
func (h *AdminHandler) DeleteInstructor(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid instructor id")
	}
	if err := h.instructors.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
