package user

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID         int64
	Username   string
	Email      string
	Password   string
	Role       Role
	Age        int
	Phone      *string
	Address    *string
	City       *string
	PostalCode *string
}

// SessionUser is the part of a user kept in the session and in tokens.
type SessionUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Age      int    `json:"age" validate:"gte=18,lte=100"`
}

type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (u User) SessionUser() *SessionUser {
	return &SessionUser{ID: u.ID, Username: u.Username, Role: u.Role}
}
