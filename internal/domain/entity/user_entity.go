package entity

import "time"

// Role is the authorization role stored on a user.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User is the aggregate root for the user domain. Password holds the
// bcrypt hash and is cleared before the record leaves the service layer.
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	Role      Role      `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserPatch describes a partial update. Nil fields keep their stored
// values; there is no way to clear a field.
type UserPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
	Role      *Role
	Avatar    *string
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil &&
		p.Password == nil && p.Role == nil && p.Avatar == nil
}
