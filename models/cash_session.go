package models

import "time"

const (
	CashSessionOpen   = "open"
	CashSessionClosed = "closed"
)

type CashSession struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"index;not null" json:"user_id"`
	OpeningCash  int64      `gorm:"not null" json:"opening_cash"`
	TotalSales   int64      `gorm:"not null" json:"total_sales"`
	OrderCount   int64      `gorm:"not null" json:"order_count"`
	ExpectedCash int64      `gorm:"not null" json:"expected_cash"`
	ClosingCash  *int64     `json:"closing_cash,omitempty"`
	Difference   *int64     `json:"difference,omitempty"`
	Status       string     `gorm:"size:16;index;not null" json:"status"`
	OpenedAt     time.Time  `gorm:"not null" json:"opened_at"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
}
