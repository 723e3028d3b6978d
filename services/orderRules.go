package services

import (
	"errors"
	"time"

	"festa-pos/models"
)

const (
	MaxOrderNum     = 25
	MaxLineQuantity = 10
	MaxUnitPrice    = 100_000 // yen
	dateLayout      = "2006-01-02"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrItemNotFound         = errors.New("order item not found")
	ErrEmptyCart            = errors.New("no items provided")
	ErrInvalidItem          = errors.New("invalid item")
	ErrInsufficientPayment  = errors.New("received amount is less than total")
	ErrOutsideBusinessHours = errors.New("orders are not accepted at this time")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrInvalidDate          = errors.New("invalid date, expected YYYY-MM-DD")
)

// NextOrderNum returns the number following prev in the 1..MaxOrderNum cycle.
// prev of 0 means there is no previous order.
func NextOrderNum(prev int) int {
	if prev < 1 || prev >= MaxOrderNum {
		return 1
	}
	return prev + 1
}

func OrderTotal(items []models.OrderItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

func ComputeChange(total, received int64) (int64, error) {
	if received < total {
		return 0, ErrInsufficientPayment
	}
	return received - total, nil
}

func IsKitchenLine(item models.OrderItem) bool {
	return item.Category == models.CategoryDrink
}

// InitialStatus is pending when the kitchen has something to make.
func InitialStatus(items []models.OrderItem) models.OrderStatus {
	for _, item := range items {
		if IsKitchenLine(item) {
			return models.StatusPending
		}
	}
	return models.StatusCompleted
}

func KitchenLinesDone(items []models.OrderItem) bool {
	for _, item := range items {
		if IsKitchenLine(item) && !item.Completed {
			return false
		}
	}
	return true
}

func CanTransition(from, to models.OrderStatus) bool {
	switch from {
	case models.StatusPending:
		return to == models.StatusCompleted || to == models.StatusCancelled
	case models.StatusCompleted, models.StatusCancelled:
		return to == models.StatusPending
	}
	return false
}

// BusinessHours is the order acceptance window. Close <= Open disables it.
type BusinessHours struct {
	Open       int
	Close      int
	BypassFrom string
	BypassTo   string
	Location   *time.Location
}

func (h BusinessHours) loc() *time.Location {
	if h.Location == nil {
		return time.Local
	}
	return h.Location
}

func (h BusinessHours) Enabled() bool {
	return h.Close > h.Open
}

// Bypassed reports whether t falls on a date inside the inclusive bypass range.
func (h BusinessHours) Bypassed(t time.Time) bool {
	if h.BypassFrom == "" || h.BypassTo == "" {
		return false
	}
	day := t.In(h.loc()).Format(dateLayout)
	return day >= h.BypassFrom && day <= h.BypassTo
}

// Accepts reports whether an order may be taken at t: Open <= hour < Close.
func (h BusinessHours) Accepts(t time.Time) bool {
	if !h.Enabled() || h.Bypassed(t) {
		return true
	}
	hour := t.In(h.loc()).Hour()
	return hour >= h.Open && hour < h.Close
}

// StartOfDay is local midnight of t's date in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DayBounds returns [midnight, next midnight) for t's local date.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := StartOfDay(t, loc)
	return start, start.AddDate(0, 0, 1)
}

// IsToday reports whether t falls on now's local date in loc.
func IsToday(t, now time.Time, loc *time.Location) bool {
	start, end := DayBounds(now, loc)
	return !t.Before(start) && t.Before(end)
}

// ParseDay parses a YYYY-MM-DD date as local midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}
