package utils

import (
	"encoding/json"
	"fmt"

	"festa-pos/models"

	"gorm.io/gorm"
)

type AuditEntry struct {
	Action      string
	EntityID    string
	UserID      *uint
	IPAddress   string
	Description string
}

func CreateOrderAuditLog(db *gorm.DB, entry AuditEntry, oldOrder, newOrder *models.Order) error {
	var oldValue, newValue any
	if oldOrder != nil {
		oldValue = oldOrder
	}
	if newOrder != nil {
		newValue = newOrder
	}
	return writeAuditLog(db, "order", entry, oldValue, newValue, calculateOrderChanges(entry.Action, oldOrder, newOrder))
}

func CreateProductAuditLog(db *gorm.DB, entry AuditEntry, oldProduct, newProduct *models.Product) error {
	var oldValue, newValue any
	if oldProduct != nil {
		oldValue = oldProduct
	}
	if newProduct != nil {
		newValue = newProduct
	}
	return writeAuditLog(db, "product", entry, oldValue, newValue, calculateProductChanges(entry.Action, oldProduct, newProduct))
}

func writeAuditLog(db *gorm.DB, entityType string, entry AuditEntry, oldValue, newValue any, changes *string) error {
	log := models.AuditLog{
		EntityType:  entityType,
		EntityID:    entry.EntityID,
		Action:      entry.Action,
		UserID:      entry.UserID,
		OldValue:    toJSONString(oldValue),
		NewValue:    toJSONString(newValue),
		Changes:     changes,
		Description: entry.Description,
	}
	if entry.IPAddress != "" {
		ip := entry.IPAddress
		log.IPAddress = &ip
	}
	return db.Create(&log).Error
}

func toJSONString(v any) *string {
	if v == nil {
		return nil
	}
	bytes, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	str := string(bytes)
	return &str
}

func calculateOrderChanges(action string, oldOrder, newOrder *models.Order) *string {
	if action != "update" || oldOrder == nil || newOrder == nil {
		return nil
	}

	changes := make(map[string]any)

	if oldOrder.Status != newOrder.Status {
		changes["status"] = map[string]string{
			"old": string(oldOrder.Status),
			"new": string(newOrder.Status),
		}
	}

	if formatTime(oldOrder.CompletedAt) != formatTime(newOrder.CompletedAt) {
		changes["completedAt"] = map[string]string{
			"old": formatTime(oldOrder.CompletedAt),
			"new": formatTime(newOrder.CompletedAt),
		}
	}

	oldItems := make(map[int]bool, len(oldOrder.Items))
	for _, item := range oldOrder.Items {
		oldItems[item.Position] = item.Completed
	}
	for _, item := range newOrder.Items {
		if was, ok := oldItems[item.Position]; ok && was != item.Completed {
			changes[fmt.Sprintf("items.%d.completed", item.Position)] = map[string]bool{
				"old": was,
				"new": item.Completed,
			}
		}
	}

	if len(changes) == 0 {
		return nil
	}
	return toJSONString(changes)
}

func calculateProductChanges(action string, oldProduct, newProduct *models.Product) *string {
	if action != "update" || oldProduct == nil || newProduct == nil {
		return nil
	}

	changes := make(map[string]any)

	if oldProduct.Name != newProduct.Name {
		changes["name"] = map[string]string{"old": oldProduct.Name, "new": newProduct.Name}
	}
	if oldProduct.Price != newProduct.Price {
		changes["price"] = map[string]int64{"old": oldProduct.Price, "new": newProduct.Price}
	}
	if oldProduct.Category != newProduct.Category {
		changes["category"] = map[string]string{"old": string(oldProduct.Category), "new": string(newProduct.Category)}
	}
	if oldProduct.Active != newProduct.Active {
		changes["active"] = map[string]bool{"old": oldProduct.Active, "new": newProduct.Active}
	}

	if len(changes) == 0 {
		return nil
	}
	return toJSONString(changes)
}
