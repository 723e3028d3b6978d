package services

import (
	"sort"
	"time"

	"festa-pos/dtos"
	"festa-pos/models"
)

const (
	warningAfter = 180 * time.Second
	urgentAfter  = 300 * time.Second
)

func UrgencyFor(elapsed time.Duration) dtos.Urgency {
	switch {
	case elapsed >= urgentAfter:
		return dtos.UrgencyUrgent
	case elapsed >= warningAfter:
		return dtos.UrgencyWarning
	}
	return dtos.UrgencyNormal
}

// BuildKitchenView keeps pending orders oldest-first and flattens their
// unfinished drink lines into banners.
func BuildKitchenView(orders []models.Order, now time.Time) dtos.KitchenView {
	pending := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == models.StatusPending {
			pending = append(pending, o)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].CreatedAt.Equal(pending[j].CreatedAt) {
			return pending[i].Seq < pending[j].Seq
		}
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})

	view := dtos.KitchenView{
		PendingOrders: pending,
		Banners:       []dtos.KitchenBanner{},
		GeneratedAt:   now,
	}

	for _, o := range pending {
		elapsed := now.Sub(o.CreatedAt)
		if elapsed < 0 {
			elapsed = 0
		}
		for _, item := range o.Items {
			if !IsKitchenLine(item) || item.Completed {
				continue
			}
			view.Banners = append(view.Banners, dtos.KitchenBanner{
				OrderID:        o.ID,
				OrderNum:       o.OrderNum,
				Position:       item.Position,
				ProductID:      item.ProductID,
				Name:           item.Name,
				Quantity:       item.Quantity,
				CreatedAt:      o.CreatedAt,
				ElapsedSeconds: int64(elapsed / time.Second),
				Urgency:        UrgencyFor(elapsed),
			})
			view.PendingDrinks += item.Quantity
		}
	}
	return view
}
