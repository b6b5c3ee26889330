package domain

// CartItem is one course held in the server-side cart.
type CartItem struct {
	ID             int     `json:"Id"`
	CourseID       int     `json:"CourseId"`
	CourseTitle    string  `json:"CourseTitle"`
	CourseImage    string  `json:"CourseImage"`
	CoursePrice    float64 `json:"CoursePrice"`
	InstructorName string  `json:"InstructorName"`
	Duration       int     `json:"Duration"`
	AddedAt        string  `json:"AddedAt"`
}

// Cart is the server-owned aggregate. Totals (including tax) are computed by
// the backend and re-read after every mutation; the client never derives them.
type Cart struct {
	ID         int        `json:"Id"`
	UserID     int        `json:"UserId"`
	Items      []CartItem `json:"Items"`
	TotalPrice float64    `json:"TotalPrice"`
	TaxAmount  float64    `json:"TaxAmount"`
	FinalTotal float64    `json:"FinalTotal"`
	ItemsCount int        `json:"ItemsCount"`
}

// CartBadge is the header indicator snapshot: the last known authoritative
// item count plus a transient emphasis flag.
type CartBadge struct {
	Count int  `json:"count"`
	Pulse bool `json:"pulse"`
}
