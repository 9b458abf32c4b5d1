package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/astrelina/helia/internal/backend"
	"github.com/astrelina/helia/internal/models"
)

// DefaultOptimisticTTL bounds how long a locally-synthesized event may
// outlive its remote call before the event set stops showing it.
const DefaultOptimisticTTL = 2 * time.Minute

// RecordStore is the reconciliation surface of the record store. The
// coordinator is the only writer; everything else reads through selectors.
type RecordStore interface {
	ReplaceRecords(records []models.HealthRecord)
	PatchRecord(record models.HealthRecord) bool
	RemoveRecord(id string) bool
	ReplaceAnalyses(analyses []models.Analysis)
	RemoveAnalysis(id string) bool
	SetSymptoms(symptoms []models.Symptom)
	SetMedications(medications []models.Medication)
	AddSymptom(symptom models.Symptom)
	AddMedication(medication models.Medication)
	InsertOptimistic(event models.Event, expires time.Time)
	RemoveOptimistic(localID string) bool
	SetLoading(loading bool)
	Fail(err error)
	ClearError()
}

// RecordsGateway is the remote collaborator surface the coordinator
// consumes; *backend.Client satisfies it.
type RecordsGateway interface {
	FetchHealthRecords(ctx context.Context, userID string) ([]models.HealthRecord, error)
	CreateSymptomRecord(ctx context.Context, record backend.NewSymptomRecord) (models.HealthRecord, error)
	CreateMedicationRecord(ctx context.Context, record backend.NewMedicationRecord) (models.HealthRecord, error)
	UpdateRecord(ctx context.Context, update backend.RecordUpdate) (models.HealthRecord, error)
	DeleteRecord(ctx context.Context, id string) error
	FetchSymptoms(ctx context.Context, userID string) ([]models.Symptom, error)
	FetchMedications(ctx context.Context, userID string) ([]models.Medication, error)
	CreateSymptom(ctx context.Context, entity backend.NewReferenceEntity) (models.Symptom, error)
	CreateMedication(ctx context.Context, entity backend.NewReferenceEntity) (models.Medication, error)
	FetchAnalyses(ctx context.Context, userID string) ([]models.Analysis, error)
	UploadAnalysis(ctx context.Context, upload backend.AnalysisUpload) (models.Analysis, error)
	DeleteAnalysis(ctx context.Context, id string) error
}

// MutationCoordinator orchestrates create, update and delete against the
// remote collaborator. Within one mutation the optimistic local change
// always precedes the remote call and the confirming reconciliation always
// follows it; mutations touching the same record id are serialized, while
// unrelated mutations stay concurrent and the last full refetch to resolve
// is authoritative for the snapshot it carries.
type MutationCoordinator struct {
	store   RecordStore
	gateway RecordsGateway
	userID  string

	optimisticTTL time.Duration
	now           func() time.Time

	entropyMu sync.Mutex
	entropy   *rand.Rand

	locks keyedLocks
}

func NewMutationCoordinator(store RecordStore, gateway RecordsGateway, userID string) *MutationCoordinator {
	return &MutationCoordinator{
		store:         store,
		gateway:       gateway,
		userID:        userID,
		optimisticTTL: DefaultOptimisticTTL,
		now:           time.Now,
		entropy:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// newLocalID mints a ULID for an optimistic entry. Server ids are plain
// numerics, so a ULID can never shadow a persisted record.
func (c *MutationCoordinator) newLocalID() string {
	c.entropyMu.Lock()
	defer c.entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(c.now()), c.entropy).String()
}

// Refetch replaces every store list with the backend's current truth.
func (c *MutationCoordinator) Refetch(ctx context.Context) error {
	c.store.SetLoading(true)
	c.store.ClearError()

	records, err := c.gateway.FetchHealthRecords(ctx, c.userID)
	if err != nil {
		c.store.Fail(err)
		return err
	}
	symptoms, err := c.gateway.FetchSymptoms(ctx, c.userID)
	if err != nil {
		c.store.Fail(err)
		return err
	}
	medications, err := c.gateway.FetchMedications(ctx, c.userID)
	if err != nil {
		c.store.Fail(err)
		return err
	}
	analyses, err := c.gateway.FetchAnalyses(ctx, c.userID)
	if err != nil {
		c.store.Fail(err)
		return err
	}

	c.store.ReplaceRecords(records)
	c.store.SetSymptoms(symptoms)
	c.store.SetMedications(medications)
	c.store.ReplaceAnalyses(analyses)
	c.store.SetLoading(false)
	return nil
}

// CreateSymptomRecord optimistically shows the new symptom event, submits
// it and reconciles against a full refetch. On remote failure the
// optimistic entry is rolled back rather than left dangling.
func (c *MutationCoordinator) CreateSymptomRecord(ctx context.Context, input backend.NewSymptomRecord, symptomName string) (models.Event, error) {
	weight := input.Weight
	optimistic := models.Event{
		ID:       c.newLocalID(),
		Title:    SymptomTitle(symptomName, &weight),
		Start:    input.RecordDate,
		Category: models.CategorySymptom,
		Symptom:  &models.SymptomDetails{SymptomID: input.SymptomID, Weight: &weight},
	}
	return c.createRecord(ctx, optimistic, func() (models.HealthRecord, error) {
		input.UserID = c.userID
		return c.gateway.CreateSymptomRecord(ctx, input)
	})
}

// CreateMedicationRecord behaves like CreateSymptomRecord; a recurrence
// rule is validated before anything is dispatched so an invalid rule never
// produces a phantom optimistic event.
func (c *MutationCoordinator) CreateMedicationRecord(ctx context.Context, input backend.NewMedicationRecord, medicationName string) (models.Event, error) {
	if input.IsFuture && input.RepeatType != "" && input.RepeatType != models.RepeatNone {
		candidate := models.HealthRecord{
			ID:             "pending",
			RecordDate:     input.RecordDate,
			MedicationID:   &input.MedicationID,
			IsFuture:       true,
			RepeatType:     input.RepeatType,
			RepeatInterval: input.RepeatInterval,
			RepeatEndDate:  input.RepeatEndDate,
		}
		if _, err := ExpandRecurrence(candidate); err != nil {
			return models.Event{}, err
		}
	}

	details := &models.MedicationDetails{MedicationID: input.MedicationID, Dosage: input.Dosage}
	if input.Notes != nil {
		details.Notes = *input.Notes
		details.Quantity = parseQuantityNotes(*input.Notes)
	}
	optimistic := models.Event{
		ID:         c.newLocalID(),
		Title:      MedicationTitle(medicationName, details.Quantity, input.Dosage),
		Start:      input.RecordDate,
		Category:   models.CategoryMedication,
		Medication: details,
		IsFuture:   input.IsFuture,
	}
	return c.createRecord(ctx, optimistic, func() (models.HealthRecord, error) {
		input.UserID = c.userID
		return c.gateway.CreateMedicationRecord(ctx, input)
	})
}

func (c *MutationCoordinator) createRecord(ctx context.Context, optimistic models.Event, submit func() (models.HealthRecord, error)) (models.Event, error) {
	c.store.InsertOptimistic(optimistic, c.now().Add(c.optimisticTTL))
	c.store.SetLoading(true)
	c.store.ClearError()

	if _, err := submit(); err != nil {
		c.store.RemoveOptimistic(optimistic.ID)
		c.store.Fail(err)
		return models.Event{}, err
	}

	records, err := c.gateway.FetchHealthRecords(ctx, c.userID)
	if err != nil {
		// The record was created; the optimistic entry stands in until it
		// expires or a later refetch succeeds.
		c.store.Fail(err)
		return optimistic, err
	}
	c.store.ReplaceRecords(records)
	c.store.RemoveOptimistic(optimistic.ID)
	c.store.SetLoading(false)
	return optimistic, nil
}

// UpdateRecord submits changed fields and patches the single matching
// store entry with the canonical server record. On failure the local entry
// is left as it was.
func (c *MutationCoordinator) UpdateRecord(ctx context.Context, update backend.RecordUpdate) (models.HealthRecord, error) {
	unlock := c.locks.lock(update.ID)
	defer unlock()

	c.store.SetLoading(true)
	c.store.ClearError()

	update.UserID = c.userID
	canonical, err := c.gateway.UpdateRecord(ctx, update)
	if err != nil {
		c.store.Fail(err)
		return models.HealthRecord{}, err
	}

	c.store.PatchRecord(canonical)
	c.store.SetLoading(false)
	return canonical, nil
}

// DeleteRecord removes the record remotely first, then locally; the local
// removal never happens for a failed remote call.
func (c *MutationCoordinator) DeleteRecord(ctx context.Context, id string) error {
	unlock := c.locks.lock(id)
	defer unlock()

	c.store.SetLoading(true)
	c.store.ClearError()

	if err := c.gateway.DeleteRecord(ctx, id); err != nil {
		c.store.Fail(err)
		return err
	}

	c.store.RemoveRecord(id)
	c.store.SetLoading(false)
	return nil
}

// UploadAnalysis pushes the file and refreshes the analysis list with the
// backend's truth. Analyses get no optimistic entry: the server assigns the
// file path, and a calendar entry pointing at no file helps nobody.
func (c *MutationCoordinator) UploadAnalysis(ctx context.Context, upload backend.AnalysisUpload) (models.Analysis, error) {
	c.store.SetLoading(true)
	c.store.ClearError()

	upload.UserID = c.userID
	created, err := c.gateway.UploadAnalysis(ctx, upload)
	if err != nil {
		c.store.Fail(err)
		return models.Analysis{}, err
	}

	analyses, err := c.gateway.FetchAnalyses(ctx, c.userID)
	if err != nil {
		c.store.Fail(err)
		return created, err
	}
	c.store.ReplaceAnalyses(analyses)
	c.store.SetLoading(false)
	return created, nil
}

// DeleteAnalysis drops the analysis and with it the local reference to its
// backing file.
func (c *MutationCoordinator) DeleteAnalysis(ctx context.Context, id string) error {
	unlock := c.locks.lock(id)
	defer unlock()

	c.store.SetLoading(true)
	c.store.ClearError()

	if err := c.gateway.DeleteAnalysis(ctx, id); err != nil {
		c.store.Fail(err)
		return err
	}

	c.store.RemoveAnalysis(id)
	c.store.SetLoading(false)
	return nil
}

// CreateCustomSymptom registers a user-defined symptom type and appends it
// to the reference list.
func (c *MutationCoordinator) CreateCustomSymptom(ctx context.Context, name string, description string) (models.Symptom, error) {
	created, err := c.gateway.CreateSymptom(ctx, backend.NewReferenceEntity{
		Name:        name,
		Description: description,
		IsCustom:    true,
		UserID:      c.userID,
	})
	if err != nil {
		c.store.Fail(err)
		return models.Symptom{}, err
	}
	c.store.AddSymptom(created)
	return created, nil
}

// CreateCustomMedication mirrors CreateCustomSymptom for medications.
func (c *MutationCoordinator) CreateCustomMedication(ctx context.Context, name string, description string) (models.Medication, error) {
	created, err := c.gateway.CreateMedication(ctx, backend.NewReferenceEntity{
		Name:        name,
		Description: description,
		IsCustom:    true,
		UserID:      c.userID,
	})
	if err != nil {
		c.store.Fail(err)
		return models.Medication{}, err
	}
	c.store.AddMedication(created)
	return created, nil
}

// keyedLocks serializes mutations per record id.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedLocks) lock(id string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := k.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[id] = lock
	}
	k.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
