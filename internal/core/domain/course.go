package domain

// Course is a catalog entry as the backend serializes it.
type Course struct {
	ID               int     `json:"Id"`
	Title            string  `json:"Title"`
	Description      string  `json:"Description"`
	Price            float64 `json:"Price"`
	Rating           float64 `json:"Rating"`
	Duration         int     `json:"Duration"`
	Level            string  `json:"Level"`
	ImagePath        string  `json:"ImagePath"`
	CategoryID       int     `json:"CategoryId"`
	CategoryName     string  `json:"CategoryName"`
	InstructorID     int     `json:"InstructorId"`
	InstructorName   string  `json:"InstructorName"`
	Requirements     string  `json:"Requirements"`
	LearningOutcomes string  `json:"LearningOutcomes"`
	CreatedAt        string  `json:"CreatedAt"`
}

// CreateCourse is the admin-console payload for creating or updating a course.
type CreateCourse struct {
	Title            string  `json:"title" validate:"required"`
	Description      string  `json:"description" validate:"required"`
	Price            float64 `json:"price" validate:"gte=0"`
	Duration         int     `json:"duration" validate:"gt=0"`
	Level            string  `json:"level" validate:"required,oneof=Beginner Intermediate Advanced 'All Levels'"`
	ImagePath        string  `json:"imagePath"`
	CategoryID       int     `json:"categoryId" validate:"required,gt=0"`
	InstructorID     int     `json:"instructorId" validate:"required,gt=0"`
	Requirements     string  `json:"requirements"`
	LearningOutcomes string  `json:"learningOutcomes"`
}

// CourseFilters is a client-local draft query; zero values are omitted from
// the serialized query string, never sent as empty parameters.
type CourseFilters struct {
	Search     string
	CategoryID int
	MinPrice   float64
	MaxPrice   float64
	MinRating  float64
	SortBy     string
	Page       int
	PageSize   int
}

// PaginatedResult is the backend's paging envelope.
type PaginatedResult[T any] struct {
	Items      []T `json:"Items"`
	TotalCount int `json:"TotalCount"`
	Page       int `json:"Page"`
	PageSize   int `json:"PageSize"`
}

// Category groups courses in the catalog.
type Category struct {
	ID           int    `json:"Id"`
	Name         string `json:"Name"`
	ImagePath    string `json:"ImagePath"`
	CoursesCount int    `json:"CoursesCount"`
	CreatedAt    string `json:"CreatedAt"`
}

// Instructor teaches courses; managed from the admin console.
type Instructor struct {
	ID        int     `json:"Id"`
	Name      string  `json:"Name"`
	Bio       string  `json:"Bio"`
	ImagePath string  `json:"ImagePath"`
	JobTitle  string  `json:"JobTitle"`
	Rating    float64 `json:"Rating"`
	CreatedAt string  `json:"CreatedAt"`
}

// CreateInstructor is the admin-console payload for instructor CRUD.
type CreateInstructor struct {
	Name      string `json:"name" validate:"required"`
	Bio       string `json:"bio" validate:"required"`
	ImagePath string `json:"imagePath"`
	JobTitle  string `json:"jobTitle" validate:"required"`
}
