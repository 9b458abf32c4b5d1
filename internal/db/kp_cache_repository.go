package db

import (
	"time"

	"github.com/astrelina/helia/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KpCacheRepository struct {
	database *gorm.DB
}

func NewKpCacheRepository(database *gorm.DB) *KpCacheRepository {
	return &KpCacheRepository{database: database}
}

// UpsertHistorical stores measured values. A historical row always replaces
// whatever the cache holds for that day.
func (repo *KpCacheRepository) UpsertHistorical(entries []models.KpIndexEntry) error {
	return repo.upsert(entries, models.KpSourceHistorical, false)
}

// UpsertForecast stores forecast values without displacing historical rows.
func (repo *KpCacheRepository) UpsertForecast(entries []models.KpIndexEntry) error {
	return repo.upsert(entries, models.KpSourceForecast, true)
}

func (repo *KpCacheRepository) upsert(entries []models.KpIndexEntry, source string, keepHistorical bool) error {
	if len(entries) == 0 {
		return nil
	}

	rows := make([]models.KpCacheEntry, 0, len(entries))
	now := time.Now()
	for _, entry := range entries {
		rows = append(rows, models.KpCacheEntry{
			Date:      entry.Date,
			KpIndex:   entry.KpIndex,
			Source:    source,
			UpdatedAt: now,
		})
	}

	conflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"kp_index", "source", "updated_at"}),
	}
	if keepHistorical {
		conflict.Where = clause.Where{Exprs: []clause.Expression{
			clause.Neq{Column: clause.Column{Table: "kp_cache", Name: "source"}, Value: models.KpSourceHistorical},
		}}
	}

	return repo.database.Clauses(conflict).Create(&rows).Error
}

// Range returns cached days in the inclusive [start, end] date-key range,
// ordered by date.
func (repo *KpCacheRepository) Range(start string, end string) ([]models.KpIndexEntry, error) {
	rows := make([]models.KpCacheEntry, 0)
	if err := repo.database.
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]models.KpIndexEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.Entry())
	}
	return entries, nil
}

// PruneBefore drops cache rows older than the given date key.
func (repo *KpCacheRepository) PruneBefore(date string) error {
	return repo.database.Where("date < ?", date).Delete(&models.KpCacheEntry{}).Error
}
