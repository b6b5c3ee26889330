package domain

// OrderItem is one purchased course inside an order.
type OrderItem struct {
	ID             int     `json:"Id"`
	CourseID       int     `json:"CourseId"`
	CourseTitle    string  `json:"CourseTitle"`
	CourseImage    string  `json:"CourseImage"`
	Price          float64 `json:"Price"`
	InstructorName string  `json:"InstructorName"`
	Duration       int     `json:"Duration"`
	Level          string  `json:"Level"`
	Rating         float64 `json:"Rating"`
	CategoryName   string  `json:"CategoryName"`
}

// Order is server-owned; the client submits a payment-method/notes tuple and
// reads back the confirmation.
type Order struct {
	ID            int         `json:"Id"`
	UserID        int         `json:"UserId"`
	OrderDate     string      `json:"OrderDate"`
	TotalAmount   float64     `json:"TotalAmount"`
	TaxAmount     float64     `json:"TaxAmount"`
	FinalAmount   float64     `json:"FinalAmount"`
	Status        string      `json:"Status"`
	PaymentMethod string      `json:"PaymentMethod"`
	Notes         string      `json:"Notes"`
	Items         []OrderItem `json:"Items,omitempty"`
}

// CreateOrder is the checkout submission.
type CreateOrder struct {
	UserID         int    `json:"userId"`
	PaymentMethod  string `json:"paymentMethod"`
	Notes          string `json:"notes,omitempty"`
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

// PlatformStats feeds the admin dashboard.
type PlatformStats struct {
	TotalUsers       int     `json:"TotalUsers"`
	TotalCourses     int     `json:"TotalCourses"`
	TotalInstructors int     `json:"TotalInstructors"`
	TotalCategories  int     `json:"TotalCategories"`
	TotalOrders      int     `json:"TotalOrders"`
	MonthlyRevenue   float64 `json:"MonthlyRevenue"`
}
