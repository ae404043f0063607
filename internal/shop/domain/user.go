package domain

type UserID string

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "user"
)

// User is a tagged variant: admins and clients share the field set and
// differ only by role.
type User struct {
	ID           UserID
	Email        string
	PasswordHash string
	Role         Role
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
