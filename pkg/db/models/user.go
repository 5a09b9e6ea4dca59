package models

import (
	"time"

	"github.com/angelmondragon/inventory-backend/pkg/enums"
)

// User is an operator account able to sign in to the backend.
type User struct {
	ID           int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string         `gorm:"column:name;not null"`
	Email        string         `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Role         enums.UserRole `gorm:"column:role;not null"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
}
