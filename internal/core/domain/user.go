package domain

// RoleAdmin is the role string the backend assigns to administrators.
// Any other role value is an ordinary learner account.
const RoleAdmin = "Admin"

// User is the profile snapshot the backend returns on login/register.
// It is replaced wholesale on every authentication, never partially mutated.
// Field casing follows the backend's wire format.
type User struct {
	ID        int    `json:"Id"`
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
	Email     string `json:"Email"`
	Role      string `json:"Role"`
	CreatedAt string `json:"CreatedAt,omitempty"`
}

// IsAdmin reports whether the profile carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// AuthResponse is the backend's answer to a successful login or register.
type AuthResponse struct {
	Token     string `json:"Token"`
	UserID    int    `json:"UserId"`
	FirstName string `json:"FirstName"`
	LastName  string `json:"LastName"`
	Email     string `json:"Email"`
	Role      string `json:"Role"`
}

// Profile converts the flat auth payload into a User snapshot.
func (r *AuthResponse) Profile() *User {
	return &User{
		ID:        r.UserID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Role:      r.Role,
	}
}

// LoginRequest carries credentials to POST /Auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest carries a new account to POST /Auth/register.
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}
