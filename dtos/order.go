package dtos

import (
	"festa-pos/models"
)

// Actor identifies who performed a mutation, for the audit trail.
type Actor struct {
	UserID *uint
	IP     string
}

type OrderLineInput struct {
	ProductID string `json:"id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Price     *int64 `json:"price,omitempty"`
}

type CreateOrderInput struct {
	Items          []OrderLineInput `json:"items" binding:"required,dive"`
	ReceivedAmount int64            `json:"receivedAmount" binding:"min=0"`
}

type UpdateOrderStatusInput struct {
	Status models.OrderStatus `json:"status" binding:"required,oneof=pending completed cancelled"`
}

type ItemCompletionInput struct {
	Completed *bool `json:"completed" binding:"required"`
}

type OrderFilter struct {
	Status string `form:"status"`
	Date   string `form:"date"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type OrderPage struct {
	Data []models.Order `json:"data"`
	Meta PageMeta       `json:"meta"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}
