package model

import "time"

// User stores admin panel accounts. Authentication logic lives outside this
// service; only the schema and the seed tool (cmd/seedadmin) touch these rows.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(20);not null;default:'admin'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Sessions []Session `gorm:"foreignKey:UserID"`
}

type Session struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index;not null"`
	ExpiresAt time.Time
}
