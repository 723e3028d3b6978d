package models

import "time"

type Product struct {
	ID        string   `gorm:"primaryKey;size:64" json:"id"`
	Name      string   `gorm:"not null" json:"name"`
	Price     int64    `gorm:"not null" json:"price"`
	Category  Category `gorm:"size:16;not null" json:"category"`
	Color     string   `gorm:"size:16" json:"color"`
	SortOrder int      `gorm:"not null" json:"sortOrder"`
	Active    bool     `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
