package entities

import (
	"gorm.io/datatypes"
	"time"
)

type DashboardCache struct {
	ID        int64          `gorm:"primaryKey"`
	CacheKey  string         `gorm:"size:100;uniqueIndex;not null"`
	CacheData datatypes.JSON `gorm:"not null"`
	ExpiresAt time.Time      `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (DashboardCache) TableName() string {
	return "dashboard_cache"
}
