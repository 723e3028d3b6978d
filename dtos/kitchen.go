package dtos

import (
	"time"

	"festa-pos/models"
)

type Urgency string

const (
	UrgencyNormal  Urgency = "normal"
	UrgencyWarning Urgency = "warning"
	UrgencyUrgent  Urgency = "urgent"
)

// KitchenBanner is one not-yet-made drink line of a pending order.
type KitchenBanner struct {
	OrderID        string    `json:"orderId"`
	OrderNum       int       `json:"orderNum"`
	Position       int       `json:"position"`
	ProductID      string    `json:"id"`
	Name           string    `json:"name"`
	Quantity       int       `json:"quantity"`
	CreatedAt      time.Time `json:"createdAt"`
	ElapsedSeconds int64     `json:"elapsedSeconds"`
	Urgency        Urgency   `json:"urgency"`
}

type KitchenView struct {
	PendingOrders []models.Order  `json:"pendingOrders"`
	Banners       []KitchenBanner `json:"banners"`
	PendingDrinks int             `json:"pendingDrinks"`
	GeneratedAt   time.Time       `json:"generatedAt"`
}
