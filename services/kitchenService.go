package services

import (
	"context"
	"time"

	"festa-pos/dtos"
	"festa-pos/models"

	"gorm.io/gorm"
)

type KitchenService interface {
	View(ctx context.Context) (*dtos.KitchenView, error)
}

type kitchenService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewKitchenService(db *gorm.DB, now func() time.Time) KitchenService {
	if now == nil {
		now = time.Now
	}
	return &kitchenService{db: db, now: now}
}

func (s *kitchenService) View(ctx context.Context) (*dtos.KitchenView, error) {
	var orders []models.Order
	if err := preloadItems(s.db.WithContext(ctx)).
		Where("status = ?", models.StatusPending).
		Order("seq ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}

	view := BuildKitchenView(orders, s.now().UTC())
	return &view, nil
}
