package models

import "time"

// KpCacheEntry persists one KP-index day in the local sqlite cache so the
// outlook survives restarts and backend outages.
type KpCacheEntry struct {
	ID        uint   `gorm:"primaryKey"`
	Date      string `gorm:"uniqueIndex:uidx_kp_date;not null"`
	KpIndex   *int
	Source    string `gorm:"not null;default:forecast"`
	UpdatedAt time.Time
}

func (KpCacheEntry) TableName() string {
	return "kp_cache"
}

// Entry converts the cached row back into the in-memory series shape.
func (e KpCacheEntry) Entry() KpIndexEntry {
	return KpIndexEntry{Date: e.Date, KpIndex: e.KpIndex, Source: e.Source}
}
