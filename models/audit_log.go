package models

import "time"

type AuditLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EntityType  string    `gorm:"size:32;index:idx_audit_entity;not null" json:"entity_type"`
	EntityID    string    `gorm:"size:64;index:idx_audit_entity;not null" json:"entity_id"`
	Action      string    `gorm:"size:32;not null" json:"action"`
	UserID      *uint     `json:"user_id,omitempty"`
	OldValue    *string   `gorm:"type:text" json:"old_value,omitempty"`
	NewValue    *string   `gorm:"type:text" json:"new_value,omitempty"`
	Changes     *string   `gorm:"type:text" json:"changes,omitempty"`
	IPAddress   *string   `gorm:"size:64" json:"ip_address,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
