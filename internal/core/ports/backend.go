// Package ports declares the interfaces between the gateway's layers: the
// persisted session store and one client per backend resource. Every client
// method is a stateless mapping from a call to a single HTTP request; no
// client caches, retries, or transforms beyond shape adaptation.
package ports

import (
	"context"

	"github.com/byway/web-gateway/internal/core/domain"
)

// AuthAPI talks to the backend's /Auth endpoints. On success both calls
// persist the issued token and profile into the session store before
// returning, so a crash between response and return cannot leave a token
// without its user.
type AuthAPI interface {
	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error)
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error)
}

// CourseAPI covers catalog reads and the admin course CRUD.
type CourseAPI interface {
	List(ctx context.Context, filters domain.CourseFilters) (*domain.PaginatedResult[domain.Course], error)
	Get(ctx context.Context, id int) (*domain.Course, error)
	Top(ctx context.Context, count int) ([]domain.Course, error)
	Similar(ctx context.Context, courseID, count int) ([]domain.Course, error)
	Create(ctx context.Context, course domain.CreateCourse) (*domain.Course, error)
	Update(ctx context.Context, id int, course domain.CreateCourse) (*domain.Course, error)
	Delete(ctx context.Context, id int) error
}

// CategoryAPI covers category reads and the admin category CRUD.
type CategoryAPI interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id int) (*domain.Category, error)
	Delete(ctx context.Context, id int) error
}

// InstructorAPI covers instructor reads and the admin instructor CRUD.
type InstructorAPI interface {
	List(ctx context.Context, page, pageSize int, search, sortBy string) (*domain.PaginatedResult[domain.Instructor], error)
	Get(ctx context.Context, id int) (*domain.Instructor, error)
	Create(ctx context.Context, instructor domain.CreateInstructor) (*domain.Instructor, error)
	Update(ctx context.Context, id int, instructor domain.CreateInstructor) (*domain.Instructor, error)
	Delete(ctx context.Context, id int) error
}

// CartAPI covers the server-owned cart aggregate.
type CartAPI interface {
	Get(ctx context.Context, userID int) (*domain.Cart, error)
	AddItem(ctx context.Context, userID, courseID int) error
	RemoveItem(ctx context.Context, userID, courseID int) error
	Clear(ctx context.Context, userID int) error
}

// OrderAPI covers checkout and order history.
type OrderAPI interface {
	Create(ctx context.Context, order domain.CreateOrder) (*domain.Order, error)
	ListForUser(ctx context.Context, userID int) ([]domain.Order, error)
	Get(ctx context.Context, id int) (*domain.Order, error)
}

// AdminAPI covers the /Admin dashboard reads.
type AdminAPI interface {
	Stats(ctx context.Context) (*domain.PlatformStats, error)
	Users(ctx context.Context) ([]domain.User, error)
	Orders(ctx context.Context) ([]domain.Order, error)
}
