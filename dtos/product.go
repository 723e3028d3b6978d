package dtos

import "festa-pos/models"

type ProductInput struct {
	ID        string          `json:"id" binding:"required,max=64"`
	Name      string          `json:"name" binding:"required"`
	Price     int64           `json:"price" binding:"min=0,max=100000"`
	Category  models.Category `json:"category" binding:"required,oneof=ticket food drink custom"`
	Color     string          `json:"color"`
	SortOrder int             `json:"sortOrder"`
	Active    *bool           `json:"active"`
}
