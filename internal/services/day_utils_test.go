package services

import (
	"testing"
	"time"
)

func TestDateAtLocationTruncatesToCivilDay(t *testing.T) {
	moscow, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 23:30 UTC is already the next day in Moscow.
	value := time.Date(2026, 4, 10, 23, 30, 0, 0, time.UTC)
	got := DateAtLocation(value, moscow)

	want := time.Date(2026, 4, 11, 0, 0, 0, 0, moscow)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDateAtLocationNilLocationFallsBackToUTC(t *testing.T) {
	value := time.Date(2026, 4, 10, 15, 45, 12, 0, time.UTC)
	got := DateAtLocation(value, nil)

	want := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDayKeyFormat(t *testing.T) {
	value := time.Date(2026, 4, 5, 8, 0, 0, 0, time.UTC)
	if got := DayKey(value); got != "2026-04-05" {
		t.Fatalf("expected 2026-04-05, got %q", got)
	}
}
