package models

// Role is the privilege level of a user. Roles form a total order used for
// authorization: user < admin < maintainer.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleMaintainer Role = "maintainer"
)

// Rank returns the position of the role in the hierarchy, or -1 for a value
// that is not one of the known roles.
func (r Role) Rank() int {
	switch r {
	case RoleUser:
		return 0
	case RoleAdmin:
		return 1
	case RoleMaintainer:
		return 2
	default:
		return -1
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r.Rank() >= 0
}

// AtLeast reports whether r ranks at or above min. An unknown role never
// satisfies a check, and an unknown min is never satisfied.
func (r Role) AtLeast(min Role) bool {
	if !r.Valid() || !min.Valid() {
		return false
	}
	return r.Rank() >= min.Rank()
}

// User represents a registered account.
// It maps to the `users` table.
type User struct {
	ID       int64  `gorm:"column:id;primaryKey" json:"id"`
	Name     string `gorm:"column:name;size:500;not null" json:"name"`
	Email    string `gorm:"column:email;size:100;not null;uniqueIndex" json:"email"`
	Password string `gorm:"column:password;size:255;not null" json:"-"`
	Role     Role   `gorm:"column:role;size:20;not null;default:user" json:"role"`
}

func (User) TableName() string { return "users" }
