package models

import "time"

// Admin roles. The role is recorded for display only; every authenticated
// admin has the same capabilities.
const (
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// AdminUser is a staff account for the admin panel.
type AdminUser struct {
	UserID       int        `gorm:"primaryKey;column:user_id" json:"id"`
	Username     string     `gorm:"column:username;uniqueIndex;size:64" json:"username"`
	PasswordHash string     `gorm:"column:password_hash" json:"-"`
	Name         string     `gorm:"column:name" json:"name"`
	Role         string     `gorm:"column:role;default:admin" json:"role"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
}

// TableName overrides the table for AdminUser.
func (AdminUser) TableName() string {
	return "admin_users"
}
