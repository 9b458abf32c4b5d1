package services

import (
	"testing"
	"time"

	"github.com/astrelina/helia/internal/models"
)

func kpEntry(date string, value *int) models.KpIndexEntry {
	return models.KpIndexEntry{Date: date, KpIndex: value}
}

func TestThreeDayKpOutlookAlwaysHasThreeRows(t *testing.T) {
	now := time.Date(2024, time.March, 5, 15, 0, 0, 0, time.UTC)
	series := []models.KpIndexEntry{
		kpEntry("2024-03-05", intPtr(4)),
		kpEntry("2024-03-07", intPtr(2)),
		kpEntry("2024-03-09", intPtr(8)),
	}

	outlook := ThreeDayKpOutlook(series, now, time.UTC)
	if len(outlook) != 3 {
		t.Fatalf("expected exactly 3 rows, got %d", len(outlook))
	}
	if outlook[0].Date != "2024-03-05" || outlook[1].Date != "2024-03-06" || outlook[2].Date != "2024-03-07" {
		t.Fatalf("unexpected outlook dates: %+v", outlook)
	}
	if outlook[1].KpIndex != nil {
		t.Fatalf("missing day must surface as unknown, got %+v", outlook[1])
	}
	if *outlook[2].KpIndex != 2 {
		t.Fatalf("known day lost its value: %+v", outlook[2])
	}
}
