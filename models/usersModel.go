package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Staff roles.
const (
	RoleAdmin  = "admin"
	RoleDoctor = "doctor"
	RoleNurse  = "nurse"
	RoleStaff  = "staff"
)

// Roles lists every staff role accepted by the system.
var Roles = []string{RoleAdmin, RoleDoctor, RoleNurse, RoleStaff}

// User represents a staff account
type User struct {
	ID              int64      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name            string     `gorm:"size:255;not null;column:name" json:"name"`
	Email           string     `gorm:"size:255;not null;unique;index;column:email" json:"email"`
	Password        string     `gorm:"size:255;not null;column:password" json:"-"`
	Role            string     `gorm:"size:20;not null;index;check:role IN ('admin', 'doctor', 'nurse', 'staff');column:role" json:"role"`
	EmailVerifiedAt *time.Time `gorm:"column:email_verified_at" json:"email_verified_at"`
	CreatedAt       time.Time  `gorm:"autoCreateTime;column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// HasRole reports whether the account carries the given role.
func (u *User) HasRole(role string) bool {
	return u.Role == role
}

// SeedAdminUser inserts the initial administrator account when no users exist yet.
func SeedAdminUser(db *gorm.DB, email, password string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		now := time.Now()
		admin := User{
			Name:            "Administrator",
			Email:           email,
			Password:        string(hashed),
			Role:            RoleAdmin,
			EmailVerifiedAt: &now,
		}
		return tx.Create(&admin).Error
	})
}
