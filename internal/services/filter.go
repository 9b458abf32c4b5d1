package services

import "github.com/astrelina/helia/internal/models"

// FilterEvents applies the user-chosen criteria to a projected event set.
//
// Two stages compose by logical AND:
//
//  1. if any category toggle is on, only events of a toggled category
//     survive (analyses need the analysis toggle);
//  2. if an entity-id allow-list is non-empty, symptom and medication
//     events must match their respective list; analyses are untouched by
//     this stage.
//
// Empty criteria is the off state and returns the input unchanged, not an
// empty set. The input slice is never mutated.
func FilterEvents(events []models.Event, criteria models.FilterCriteria) []models.Event {
	if criteria.IsEmpty() {
		return events
	}

	filtered := make([]models.Event, 0, len(events))
	for _, event := range events {
		if criteria.HasCategoryFlag() && !categoryAllowed(event, criteria) {
			continue
		}
		if !entityAllowed(event, criteria) {
			continue
		}
		filtered = append(filtered, event)
	}
	return filtered
}

func categoryAllowed(event models.Event, criteria models.FilterCriteria) bool {
	switch event.Category {
	case models.CategorySymptom:
		return criteria.Symptom
	case models.CategoryMedication:
		return criteria.Medication
	case models.CategoryAnalysis:
		return criteria.Analysis
	default:
		return false
	}
}

func entityAllowed(event models.Event, criteria models.FilterCriteria) bool {
	switch event.Category {
	case models.CategorySymptom:
		if len(criteria.SymptomIDs) == 0 || event.Symptom == nil {
			return len(criteria.SymptomIDs) == 0
		}
		_, ok := criteria.SymptomIDs[event.Symptom.SymptomID]
		return ok
	case models.CategoryMedication:
		if len(criteria.MedicationIDs) == 0 || event.Medication == nil {
			return len(criteria.MedicationIDs) == 0
		}
		_, ok := criteria.MedicationIDs[event.Medication.MedicationID]
		return ok
	default:
		// Entity-id filters never apply to analyses.
		return true
	}
}
