package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"festa-pos/dtos"
	"festa-pos/live"
	"festa-pos/models"
	"festa-pos/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderService interface {
	CreateOrder(ctx context.Context, input dtos.CreateOrderInput, actor dtos.Actor) (*models.Order, error)
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrders(ctx context.Context, filter dtos.OrderFilter) (*dtos.OrderPage, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus, actor dtos.Actor) (*models.Order, error)
	SetItemCompleted(ctx context.Context, id string, position int, completed bool, actor dtos.Actor) (*models.Order, error)
}

type orderService struct {
	db        *gorm.DB
	publisher live.Publisher
	hours     BusinessHours
	now       func() time.Time

	// serialises order number and sequence assignment
	mu sync.Mutex
}

func NewOrderService(db *gorm.DB, publisher live.Publisher, hours BusinessHours, now func() time.Time) OrderService {
	if now == nil {
		now = time.Now
	}
	return &orderService{
		db:        db,
		publisher: publisher,
		hours:     hours,
		now:       now,
	}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func (s *orderService) CreateOrder(ctx context.Context, input dtos.CreateOrderInput, actor dtos.Actor) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyCart
	}

	now := s.now()
	if !s.hours.Accepts(now) {
		return nil, ErrOutsideBusinessHours
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := buildOrderItems(tx, input.Items)
		if err != nil {
			return err
		}

		total := OrderTotal(items)
		change, err := ComputeChange(total, input.ReceivedAmount)
		if err != nil {
			return err
		}

		var prev models.Order
		prevNum, prevSeq := 0, int64(0)
		err = tx.Select("seq", "order_num").Order("seq DESC").Limit(1).Take(&prev).Error
		switch {
		case err == nil:
			prevNum, prevSeq = prev.OrderNum, prev.Seq
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("load previous order: %w", err)
		}

		createdAt := now.UTC()
		order = models.Order{
			ID:             uuid.NewString(),
			Seq:            prevSeq + 1,
			OrderNum:       NextOrderNum(prevNum),
			Status:         InitialStatus(items),
			TotalAmount:    total,
			ReceivedAmount: input.ReceivedAmount,
			Change:         change,
			Items:          items,
			CreatedAt:      createdAt,
		}
		if order.Status == models.StatusCompleted {
			order.CompletedAt = &createdAt
		}

		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		return utils.CreateOrderAuditLog(tx, utils.AuditEntry{
			Action:      "create",
			EntityID:    order.ID,
			UserID:      actor.UserID,
			IPAddress:   actor.IP,
			Description: fmt.Sprintf("Order #%d created", order.OrderNum),
		}, nil, &order)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("order_id", order.ID).Int("order_num", order.OrderNum).Int64("total", order.TotalAmount).Msg("order created")
	s.publish(live.EventOrderCreated, &order)
	return &order, nil
}

func buildOrderItems(tx *gorm.DB, lines []dtos.OrderLineInput) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(lines))
	for i, line := range lines {
		if line.Quantity < 1 || line.Quantity > MaxLineQuantity {
			return nil, fmt.Errorf("%w: quantity for %q must be between 1 and %d", ErrInvalidItem, line.ProductID, MaxLineQuantity)
		}

		var product models.Product
		if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: unknown product %q", ErrInvalidItem, line.ProductID)
			}
			return nil, err
		}
		if !product.Active {
			return nil, fmt.Errorf("%w: product %q is not on sale", ErrInvalidItem, product.ID)
		}

		price := product.Price
		if product.Category == models.CategoryCustom {
			if line.Price == nil || *line.Price <= 0 {
				return nil, fmt.Errorf("%w: custom item needs a price above zero", ErrInvalidItem)
			}
			price = *line.Price
		}
		if price < 0 || price > MaxUnitPrice {
			return nil, fmt.Errorf("%w: price for %q must be between 0 and %d", ErrInvalidItem, product.ID, MaxUnitPrice)
		}

		items = append(items, models.OrderItem{
			Position:  i,
			ProductID: product.ID,
			Name:      product.Name,
			Price:     price,
			Quantity:  line.Quantity,
			Category:  product.Category,
		})
	}
	return items, nil
}

func (s *orderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := preloadItems(s.db.WithContext(ctx)).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *orderService) ListOrders(ctx context.Context, filter dtos.OrderFilter) (*dtos.OrderPage, error) {
	p := utils.NewPage(filter.Page, filter.Limit)

	var conds []func(*gorm.DB) *gorm.DB
	if filter.Status != "" {
		status := models.OrderStatus(filter.Status)
		if !status.Valid() {
			return nil, ErrInvalidStatus
		}
		conds = append(conds, func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", status)
		})
	}
	if filter.Date != "" {
		day, err := ParseDay(filter.Date, s.hours.loc())
		if err != nil {
			return nil, err
		}
		start, end := DayBounds(day, s.hours.loc())
		conds = append(conds, func(db *gorm.DB) *gorm.DB {
			return db.Where("created_at >= ? AND created_at < ?", start.UTC(), end.UTC())
		})
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Scopes(conds...).Count(&total).Error; err != nil {
		return nil, err
	}

	orders := []models.Order{}
	if err := preloadItems(s.db.WithContext(ctx)).
		Scopes(conds...).
		Order("seq DESC").
		Limit(p.PageSize).
		Offset(p.Offset).
		Find(&orders).Error; err != nil {
		return nil, err
	}

	return &dtos.OrderPage{Data: orders, Meta: utils.BuildMeta(p, total)}, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus, actor dtos.Actor) (*models.Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.mutate(ctx, id, actor, func(order *models.Order, now time.Time) (string, error) {
		if !CanTransition(order.Status, status) {
			return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
		}
		setStatus(order, status, now)
		return fmt.Sprintf("Order #%d marked %s", order.OrderNum, status), nil
	})
}

func (s *orderService) SetItemCompleted(ctx context.Context, id string, position int, completed bool, actor dtos.Actor) (*models.Order, error) {
	return s.mutate(ctx, id, actor, func(order *models.Order, now time.Time) (string, error) {
		if order.Status != models.StatusPending {
			return "", fmt.Errorf("%w: order is %s", ErrInvalidTransition, order.Status)
		}

		var item *models.OrderItem
		for i := range order.Items {
			if order.Items[i].Position == position {
				item = &order.Items[i]
				break
			}
		}
		if item == nil {
			return "", ErrItemNotFound
		}
		item.Completed = completed

		if completed && KitchenLinesDone(order.Items) {
			setStatus(order, models.StatusCompleted, now)
		}
		return fmt.Sprintf("Order #%d item %d completed=%t", order.OrderNum, position, completed), nil
	})
}

func setStatus(order *models.Order, status models.OrderStatus, now time.Time) {
	order.Status = status
	if status == models.StatusCompleted {
		t := now.UTC()
		order.CompletedAt = &t
		return
	}
	order.CompletedAt = nil

	// a reopened order with every drink done goes back to the kitchen queue
	if status == models.StatusPending && KitchenLinesDone(order.Items) {
		for i := range order.Items {
			if IsKitchenLine(order.Items[i]) {
				order.Items[i].Completed = false
			}
		}
	}
}

// mutate loads an order, applies change and persists the order row plus
// every item row with an audit entry, all in one transaction.
func (s *orderService) mutate(ctx context.Context, id string, actor dtos.Actor, change func(*models.Order, time.Time) (string, error)) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := preloadItems(tx).First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		before := order
		before.Items = append([]models.OrderItem(nil), order.Items...)

		description, err := change(&order, s.now())
		if err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Save(&order).Error; err != nil {
			return fmt.Errorf("save order: %w", err)
		}
		for i := range order.Items {
			if order.Items[i].Completed == before.Items[i].Completed {
				continue
			}
			if err := tx.Model(&order.Items[i]).Update("completed", order.Items[i].Completed).Error; err != nil {
				return fmt.Errorf("save order item: %w", err)
			}
		}

		return utils.CreateOrderAuditLog(tx, utils.AuditEntry{
			Action:      "update",
			EntityID:    order.ID,
			UserID:      actor.UserID,
			IPAddress:   actor.IP,
			Description: description,
		}, &before, &order)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("order_id", order.ID).Str("status", string(order.Status)).Msg("order updated")
	s.publish(live.EventOrderUpdated, &order)
	return &order, nil
}

func (s *orderService) publish(eventType string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(live.Event{
		Topic:   live.TopicOrders,
		Type:    eventType,
		Payload: order,
		At:      s.now().UTC(),
	})
}
