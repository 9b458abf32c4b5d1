// Package store holds the normalized in-memory state the calendar is
// projected from. Reads go through snapshot selectors; writes go only
// through the reconciliation methods the mutation coordinator calls.
// Nothing here is a global: the store is constructed once in main and
// passed by reference.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/astrelina/helia/internal/models"
	"github.com/astrelina/helia/internal/services"
)

type optimisticEntry struct {
	event   models.Event
	expires time.Time
}

type Store struct {
	mu sync.RWMutex

	records     []models.HealthRecord
	symptoms    []models.Symptom
	medications []models.Medication
	analyses    []models.Analysis
	kpSeries    []models.KpIndexEntry

	optimistic map[string]optimisticEntry

	loading bool
	lastErr error
}

func New() *Store {
	return &Store{optimistic: make(map[string]optimisticEntry)}
}

// --- read selectors -----------------------------------------------------

func (s *Store) Records() []models.HealthRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.HealthRecord(nil), s.records...)
}

func (s *Store) Symptoms() []models.Symptom {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Symptom(nil), s.symptoms...)
}

func (s *Store) Medications() []models.Medication {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Medication(nil), s.medications...)
}

func (s *Store) Analyses() []models.Analysis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Analysis(nil), s.analyses...)
}

func (s *Store) KpSeries() []models.KpIndexEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.KpIndexEntry(nil), s.kpSeries...)
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// EventSet projects the current state into the full calendar event set:
// persisted records and analyses first, then any still-pending optimistic
// entries that have not expired by now. Projection errors are returned so
// the caller can log and count them; offending records are skipped, never
// fatal.
func (s *Store) EventSet(now time.Time) ([]models.Event, []error) {
	s.mu.RLock()
	records := append([]models.HealthRecord(nil), s.records...)
	analyses := append([]models.Analysis(nil), s.analyses...)
	pending := make([]models.Event, 0, len(s.optimistic))
	for _, entry := range s.optimistic {
		if entry.expires.After(now) {
			pending = append(pending, entry.event)
		}
	}
	s.mu.RUnlock()

	events, skipped := services.BuildEventSet(records, analyses)
	events = append(events, pending...)
	return events, skipped
}

// --- reconciliation writes ----------------------------------------------

// ReplaceRecords installs an authoritative record list from a full refetch.
// The refetch that resolves last wins; its snapshot replaces, never merges.
func (s *Store) ReplaceRecords(records []models.HealthRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]models.HealthRecord(nil), records...)
}

// PatchRecord swaps the single matching entry for the server's canonical
// record, avoiding a full-list flash after an update.
func (s *Store) PatchRecord(record models.HealthRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == record.ID {
			s.records[i] = record
			return true
		}
	}
	return false
}

func (s *Store) RemoveRecord(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) SetSymptoms(symptoms []models.Symptom) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.symptoms = append([]models.Symptom(nil), symptoms...)
}

func (s *Store) SetMedications(medications []models.Medication) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.medications = append([]models.Medication(nil), medications...)
}

func (s *Store) AddSymptom(symptom models.Symptom) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.symptoms = append(s.symptoms, symptom)
}

func (s *Store) AddMedication(medication models.Medication) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.medications = append(s.medications, medication)
}

func (s *Store) ReplaceAnalyses(analyses []models.Analysis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses = append([]models.Analysis(nil), analyses...)
}

func (s *Store) RemoveAnalysis(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.analyses {
		if s.analyses[i].ID == id {
			s.analyses = append(s.analyses[:i], s.analyses[i+1:]...)
			return true
		}
	}
	return false
}

// MergeHistoricalKp folds measured values into the series; they take
// precedence over anything already present for the same day, except that a
// null measurement never displaces a known value.
func (s *Store) MergeHistoricalKp(entries []models.KpIndexEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byDate := s.kpByDateLocked()
	for _, entry := range entries {
		entry.Source = models.KpSourceHistorical
		if entry.KpIndex == nil {
			if existing, ok := byDate[entry.Date]; ok && existing.KpIndex != nil {
				continue
			}
		}
		byDate[entry.Date] = entry
	}
	s.kpSeries = sortedKpSeries(byDate)
}

// MergeForecastKp folds forecast values into the series without displacing
// historical measurements.
func (s *Store) MergeForecastKp(entries []models.KpIndexEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byDate := s.kpByDateLocked()
	for _, entry := range entries {
		entry.Source = models.KpSourceForecast
		if existing, ok := byDate[entry.Date]; ok && existing.Source == models.KpSourceHistorical {
			continue
		}
		byDate[entry.Date] = entry
	}
	s.kpSeries = sortedKpSeries(byDate)
}

func (s *Store) kpByDateLocked() map[string]models.KpIndexEntry {
	byDate := make(map[string]models.KpIndexEntry, len(s.kpSeries))
	for _, entry := range s.kpSeries {
		byDate[entry.Date] = entry
	}
	return byDate
}

func sortedKpSeries(byDate map[string]models.KpIndexEntry) []models.KpIndexEntry {
	series := make([]models.KpIndexEntry, 0, len(byDate))
	for _, entry := range byDate {
		series = append(series, entry)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}

// --- optimistic entries -------------------------------------------------

// InsertOptimistic registers a locally-synthesized pending event. It stays
// visible in EventSet until it is removed by reconciliation or rollback, or
// until its expiry passes.
func (s *Store) InsertOptimistic(event models.Event, expires time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.Pending = true
	s.optimistic[event.ID] = optimisticEntry{event: event, expires: expires}
}

func (s *Store) RemoveOptimistic(localID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.optimistic[localID]; !ok {
		return false
	}
	delete(s.optimistic, localID)
	return true
}

func (s *Store) PendingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.optimistic)
}

// --- loading / error flags ----------------------------------------------

func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// Fail records a transport failure and stops the loading state. No
// automatic retry happens; the error stays until the next successful
// reconciliation clears it.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.lastErr = err
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}
