package services

import (
	"context"
	"fmt"
	"time"

	"github.com/astrelina/helia/internal/models"
)

type KpGateway interface {
	FetchHistoricalKp(ctx context.Context, start time.Time, end time.Time) ([]models.KpIndexEntry, error)
	FetchForecastKp(ctx context.Context) ([]models.KpIndexEntry, error)
}

type KpCache interface {
	UpsertHistorical(entries []models.KpIndexEntry) error
	UpsertForecast(entries []models.KpIndexEntry) error
	Range(start string, end string) ([]models.KpIndexEntry, error)
}

type KpStore interface {
	MergeHistoricalKp(entries []models.KpIndexEntry)
	MergeForecastKp(entries []models.KpIndexEntry)
	KpSeries() []models.KpIndexEntry
}

// KpService keeps the geomagnetic series fresh: fetched values land in the
// in-memory store for projection and in the sqlite cache so a backend
// outage still leaves an outlook to show.
type KpService struct {
	gateway  KpGateway
	cache    KpCache
	store    KpStore
	location *time.Location
	now      func() time.Time
}

func NewKpService(gateway KpGateway, cache KpCache, store KpStore, location *time.Location) *KpService {
	return &KpService{
		gateway:  gateway,
		cache:    cache,
		store:    store,
		location: location,
		now:      time.Now,
	}
}

// RefreshHistorical loads measured values for the inclusive day range.
func (s *KpService) RefreshHistorical(ctx context.Context, start time.Time, end time.Time) error {
	entries, err := s.gateway.FetchHistoricalKp(ctx, start, end)
	if err != nil {
		return fmt.Errorf("refresh historical kp: %w", err)
	}
	s.store.MergeHistoricalKp(entries)
	if err := s.cache.UpsertHistorical(entries); err != nil {
		return fmt.Errorf("cache historical kp: %w", err)
	}
	return nil
}

// RefreshForecast loads the forecast series; historical cache rows are
// never displaced.
func (s *KpService) RefreshForecast(ctx context.Context) error {
	entries, err := s.gateway.FetchForecastKp(ctx)
	if err != nil {
		return fmt.Errorf("refresh forecast kp: %w", err)
	}
	s.store.MergeForecastKp(entries)
	if err := s.cache.UpsertForecast(entries); err != nil {
		return fmt.Errorf("cache forecast kp: %w", err)
	}
	return nil
}

// Outlook returns today plus two days, preferring the live merged series
// and falling back to the cache when the store has nothing for the window.
func (s *KpService) Outlook(now time.Time) []models.KpIndexEntry {
	outlook := ThreeDayKpOutlook(s.store.KpSeries(), now, s.location)
	for _, entry := range outlook {
		if entry.KpIndex != nil {
			return outlook
		}
	}

	start := DayKey(DateAtLocation(now, s.location))
	end := DayKey(DateAtLocation(now, s.location).AddDate(0, 0, 2))
	cached, err := s.cache.Range(start, end)
	if err != nil || len(cached) == 0 {
		return outlook
	}
	return ThreeDayKpOutlook(cached, now, s.location)
}
