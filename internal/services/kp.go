package services

import (
	"time"

	"github.com/astrelina/helia/internal/models"
)

// ThreeDayKpOutlook picks today and the following two days out of a merged
// series. A day missing from the series yields an entry with an unknown
// value, so the outlook always has exactly three rows.
func ThreeDayKpOutlook(series []models.KpIndexEntry, now time.Time, location *time.Location) []models.KpIndexEntry {
	byDate := make(map[string]models.KpIndexEntry, len(series))
	for _, entry := range series {
		byDate[entry.Date] = entry
	}

	today := DateAtLocation(now, location)
	outlook := make([]models.KpIndexEntry, 0, 3)
	for offset := 0; offset < 3; offset++ {
		key := DayKey(today.AddDate(0, 0, offset))
		if entry, ok := byDate[key]; ok {
			outlook = append(outlook, entry)
			continue
		}
		outlook = append(outlook, models.KpIndexEntry{Date: key})
	}
	return outlook
}
