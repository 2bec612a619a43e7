// Package account holds the account domain entity shared across modules.
package account

import (
	"time"
)

// Account roles.
const (
	RoleAdmin = "Admin"
	RoleAgent = "Agent"
)

// Account represents a registered user of the system. Agents receive and
// complete tasks; Admins manage agents, import task lists, and trigger
// assignment runs.
type Account struct {
	UserID       string    `gorm:"column:user_id;primaryKey;type:text" json:"user_id"`
	Username     string    `gorm:"not null;type:text" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null;type:text" json:"email"`
	PasswordHash string    `gorm:"not null;type:text" json:"-"`
	Role         string    `gorm:"not null;default:Agent;type:text" json:"role"`
	Mobile       string    `gorm:"type:text" json:"mobile,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName returns the table name for the Account entity.
func (Account) TableName() string {
	return "users"
}

// Claims are the authenticated identity fields carried through a request.
type Claims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
