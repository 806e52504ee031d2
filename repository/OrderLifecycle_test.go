package repository

import (
	"strings"
	"testing"
	"unicode/utf8"

	"backend/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.StatusInProgress, models.StatusCompleted, true},
		{models.StatusInProgress, models.StatusPending, true},
		{models.StatusInProgress, models.StatusCancelled, true},
		{models.StatusInProgress, models.StatusInProgress, false},
		{models.StatusCompleted, models.StatusInProgress, false},
		{models.StatusCompleted, models.StatusCancelled, false},
		{models.StatusPending, models.StatusCompleted, false},
		{models.StatusCancelled, models.StatusInProgress, false},
		{"bogus", models.StatusCompleted, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Fatalf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestApplyTransition(t *testing.T) {
	order := models.Order{OrderNumber: "ORD-1", Status: models.StatusInProgress}
	if err := ApplyTransition(&order, models.StatusCompleted); err != nil {
		t.Fatalf("transition to completed failed: %v", err)
	}
	if order.Status != models.StatusCompleted {
		t.Fatalf("status = %s, want completed", order.Status)
	}

	// Terminal statuses reject further moves without mutating the order.
	if err := ApplyTransition(&order, models.StatusCancelled); err == nil {
		t.Fatalf("expected error transitioning out of completed")
	}
	if order.Status != models.StatusCompleted {
		t.Fatalf("failed transition mutated status to %s", order.Status)
	}
}

func TestValidCancelReason(t *testing.T) {
	tests := []struct {
		reason string
		want   bool
	}{
		{"", false},
		{"abcd", false},
		{"abcde", true},
		{strings.Repeat("x", 200), true},
		{strings.Repeat("x", 201), false},
		// Bounds count characters, not bytes.
		{"äää", false},
		{"äääää", true},
		{strings.Repeat("ä", 200), true},
		{strings.Repeat("ä", 201), false},
	}
	for _, tt := range tests {
		if got := ValidCancelReason(tt.reason); got != tt.want {
			t.Fatalf("ValidCancelReason(%d chars) = %v, want %v",
				utf8.RuneCountInString(tt.reason), got, tt.want)
		}
	}
}
