// internal/models/user.go
package models

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Capability names an elevated operation class. Handlers declare the
// capability they need; one authorization middleware evaluates it against the
// identity's role.
type Capability string

const (
	CapabilityManageCatalog Capability = "manage_catalog"
	CapabilityManageOrders  Capability = "manage_orders"
	CapabilityManageUsers   Capability = "manage_users"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleCustomer: {},
	RoleAdmin: {
		CapabilityManageCatalog: true,
		CapabilityManageOrders:  true,
		CapabilityManageUsers:   true,
	},
}

func (r Role) Can(c Capability) bool {
	return roleCapabilities[r][c]
}

type User struct {
	BaseModel
	Name         string `json:"name" gorm:"size:255;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`
	Role         Role   `json:"role" gorm:"type:varchar(20);default:'customer'"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// UserProfile is the response shape the storefront client expects.
type UserProfile struct {
	ID      uuid.UUID `json:"_id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"isAdmin"`
}

func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		IsAdmin: u.IsAdmin(),
	}
}
