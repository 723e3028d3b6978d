package utils

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

func GetUserRole(c *gin.Context) string {
	role, ok := c.Get(ContextRole)
	if !ok {
		return ""
	}
	s, _ := role.(string)
	return s
}

func GetUserID(c *gin.Context) *uint {
	value, ok := c.Get(ContextUserID)
	if !ok {
		return nil
	}
	switch v := value.(type) {
	case uint:
		return &v
	case float64:
		id := uint(v)
		return &id
	}
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
