package model

import "time"

// UserRecord is the relational row a User is imported into.
type UserRecord struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Name         string    `gorm:"size:255;not null"`
	NationalID   string    `gorm:"size:9"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Customers []CustomerRecord `gorm:"foreignKey:UserID"`
}

// TableName overrides the default table name.
func (UserRecord) TableName() string { return "users" }

// CustomerRecord is the relational row a Customer is imported into.
type CustomerRecord struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Name      string `gorm:"size:255;not null"`
	Email     string `gorm:"size:255;not null"`
	Phone     string `gorm:"size:64"`
	Company   string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name.
func (CustomerRecord) TableName() string { return "customers" }
