package models

import (
	"time"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Category string

const (
	CategoryTicket Category = "ticket"
	CategoryFood   Category = "food"
	CategoryDrink  Category = "drink"
	CategoryCustom Category = "custom"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryTicket, CategoryFood, CategoryDrink, CategoryCustom:
		return true
	}
	return false
}

// Order is never physically deleted; cancellation is a status.
type Order struct {
	ID             string      `gorm:"primaryKey;size:36" json:"id"`
	Seq            int64       `gorm:"uniqueIndex;not null" json:"seq"`
	OrderNum       int         `gorm:"not null" json:"orderNum"`
	Status         OrderStatus `gorm:"size:16;index;not null" json:"status"`
	TotalAmount    int64       `gorm:"not null" json:"totalAmount"`
	ReceivedAmount int64       `gorm:"not null" json:"receivedAmount"`
	Change         int64       `gorm:"column:change_amount;not null" json:"change"`
	Items          []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	CreatedAt   time.Time  `gorm:"index" json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type OrderItem struct {
	ID        uint     `gorm:"primaryKey" json:"-"`
	OrderID   string   `gorm:"size:36;index;not null" json:"-"`
	Position  int      `gorm:"not null" json:"position"`
	ProductID string   `gorm:"size:64;not null" json:"id"`
	Name      string   `gorm:"not null" json:"name"`
	Price     int64    `gorm:"not null" json:"price"`
	Quantity  int      `gorm:"not null" json:"quantity"`
	Category  Category `gorm:"size:16;not null" json:"category"`
	Completed bool     `gorm:"not null" json:"completed"`
}

// Subtotal is price times quantity for the line.
func (i OrderItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}
