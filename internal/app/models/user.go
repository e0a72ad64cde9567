package models

import "time"

// Role is the account role enumeration.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleRegistrar Role = "REGISTRAR"
	RoleCashier   Role = "CASHIER"
	RoleViewer    Role = "VIEWER"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleRegistrar, RoleCashier, RoleViewer:
		return true
	}
	return false
}

// User account statuses.
const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// PermissionKeys is the fixed capability vocabulary. Permissions drive
// dashboard visibility on the client; they are not enforced server-side.
var PermissionKeys = []string{
	"dashboard",
	"students",
	"subjects",
	"payments",
	"fees",
	"users",
	"announcements",
	"reports",
}

// User defines the account model based on the 'users' table.
type User struct {
	ID           int64     `json:"id" db:"id"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role" example:"REGISTRAR"`
	Status       string    `json:"status" db:"status" example:"active"`
	Permissions  []string  `json:"permissions" db:"permissions"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// FullName joins the user's name parts for display and activity entries.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// ValidPermissionKey reports whether key belongs to the fixed vocabulary.
func ValidPermissionKey(key string) bool {
	for _, k := range PermissionKeys {
		if k == key {
			return true
		}
	}
	return false
}
