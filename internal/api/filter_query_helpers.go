package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/astrelina/helia/internal/models"
)

// parseFilterCriteria reads the filter query params. Absent params leave
// the criteria empty, which the filter engine treats as "no filtering".
//
//	?categories=symptom,medication&symptomIds=1,2&medicationIds=7
func parseFilterCriteria(c *fiber.Ctx) (models.FilterCriteria, error) {
	criteria := models.FilterCriteria{}

	for _, category := range splitParam(c.Query("categories")) {
		switch category {
		case models.CategorySymptom:
			criteria.Symptom = true
		case models.CategoryMedication:
			criteria.Medication = true
		case models.CategoryAnalysis:
			criteria.Analysis = true
		default:
			return models.FilterCriteria{}, fmt.Errorf("unknown category %q", category)
		}
	}

	symptomIDs, err := parseIDSet(c.Query("symptomIds"))
	if err != nil {
		return models.FilterCriteria{}, fmt.Errorf("symptomIds: %w", err)
	}
	medicationIDs, err := parseIDSet(c.Query("medicationIds"))
	if err != nil {
		return models.FilterCriteria{}, fmt.Errorf("medicationIds: %w", err)
	}
	criteria.SymptomIDs = symptomIDs
	criteria.MedicationIDs = medicationIDs

	return criteria, nil
}

func parseIDSet(raw string) (map[uint]struct{}, error) {
	parts := splitParam(raw)
	if len(parts) == 0 {
		return nil, nil
	}
	ids := make(map[uint]struct{}, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids[uint(id)] = struct{}{}
	}
	return ids, nil
}

func splitParam(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
