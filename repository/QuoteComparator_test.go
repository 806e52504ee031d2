package repository

import (
	"testing"
	"time"

	"backend/models"
)

func sampleQuotes() []models.FreightQuote {
	return []models.FreightQuote{
		{OrderQuoteID: "q1", Agent: "Ceylon Cargo", NetFreight: 900, TotalFreight: 1200, ValidityDate: "2026-10-01"},
		{OrderQuoteID: "q2", Agent: "Apex Lines", NetFreight: 700, TotalFreight: 950, ValidityDate: "2026-09-15"},
		{OrderQuoteID: "q3", Agent: "Blue Anchor", NetFreight: 700, TotalFreight: 1100, ValidityDate: "2026-09-20"},
		{OrderQuoteID: "q4", Agent: "Delta Freight", NetFreight: 80, TotalFreight: 2000, ValidityDate: "2026-11-05"},
	}
}

func quoteIDs(quotes []models.FreightQuote) []string {
	ids := make([]string, len(quotes))
	for i, q := range quotes {
		ids[i] = q.OrderQuoteID
	}
	return ids
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSortQuotesNumericNotLexical(t *testing.T) {
	quotes := sampleQuotes()
	state := SortState{}
	state.Apply("netFreight")
	SortQuotes(quotes, state)

	// 80 must sort before 700 and 900; lexical order would put "80" last.
	got := quoteIDs(quotes)
	if got[0] != "q4" {
		t.Fatalf("expected q4 (netFreight 80) first, got order %v", got)
	}
	if got[3] != "q1" {
		t.Fatalf("expected q1 (netFreight 900) last, got order %v", got)
	}
}

func TestSortQuotesToggleReverses(t *testing.T) {
	// totalFreight values are all distinct, so the toggled order is the
	// exact reverse.
	quotes := sampleQuotes()
	state := SortState{}
	state.Apply("totalFreight")
	SortQuotes(quotes, state)
	asc := quoteIDs(quotes)

	state.Apply("totalFreight")
	if !state.Descending {
		t.Fatalf("second Apply on same field should flip to descending")
	}
	SortQuotes(quotes, state)
	desc := quoteIDs(quotes)

	for i := range asc {
		if asc[i] != desc[len(desc)-1-i] {
			t.Fatalf("descending order is not the reverse of ascending: asc=%v desc=%v", asc, desc)
		}
	}
}

func TestSortQuotesDescendingKeepsTieOrder(t *testing.T) {
	quotes := sampleQuotes()
	SortQuotes(quotes, SortState{Field: "netFreight", Descending: true})

	// q2 and q3 tie at 700; descending keeps their input order rather than
	// reversing it.
	got := quoteIDs(quotes)
	want := []string{"q1", "q2", "q3", "q4"}
	if !sameIDs(got, want) {
		t.Fatalf("descending order = %v, want %v", got, want)
	}
}

func TestSortQuotesNewFieldResetsAscending(t *testing.T) {
	state := SortState{}
	state.Apply("netFreight")
	state.Apply("netFreight")
	if !state.Descending {
		t.Fatalf("expected descending after double toggle")
	}

	state.Apply("Agent")
	if state.Descending {
		t.Fatalf("switching field should reset to ascending")
	}
	if state.Field != "Agent" {
		t.Fatalf("expected field Agent, got %s", state.Field)
	}
}

func TestSortQuotesStableOnTies(t *testing.T) {
	quotes := sampleQuotes()
	SortQuotes(quotes, SortState{Field: "netFreight"})

	// q2 and q3 tie at 700; q2 preceded q3 in the input and must still do so.
	got := quoteIDs(quotes)
	if got[1] != "q2" || got[2] != "q3" {
		t.Fatalf("tie broke input order, got %v", got)
	}
}

func TestSortQuotesByValidityDate(t *testing.T) {
	quotes := sampleQuotes()
	SortQuotes(quotes, SortState{Field: "validityDate"})

	got := quoteIDs(quotes)
	want := []string{"q2", "q3", "q1", "q4"}
	if !sameIDs(got, want) {
		t.Fatalf("date sort order = %v, want %v", got, want)
	}
}

func TestSortQuotesEmptyFieldIsNoop(t *testing.T) {
	quotes := sampleQuotes()
	before := quoteIDs(quotes)
	SortQuotes(quotes, SortState{})
	if !sameIDs(before, quoteIDs(quotes)) {
		t.Fatalf("empty sort field must not reorder quotes")
	}
}

func TestExcludingSelected(t *testing.T) {
	quotes := sampleQuotes()

	out := ExcludingSelected(quotes, "q3")
	if len(out) != len(quotes)-1 {
		t.Fatalf("expected %d quotes, got %d", len(quotes)-1, len(out))
	}
	for _, q := range out {
		if q.OrderQuoteID == "q3" {
			t.Fatalf("selected quote q3 still present")
		}
	}

	// An ID that matches nothing must preserve the full sequence.
	out = ExcludingSelected(quotes, "missing")
	if !sameIDs(quoteIDs(out), quoteIDs(quotes)) {
		t.Fatalf("non-matching ID changed the sequence: %v", quoteIDs(out))
	}

	out = ExcludingSelected(quotes, "")
	if len(out) != len(quotes) {
		t.Fatalf("empty ID should return all quotes, got %d", len(out))
	}
}

func TestActiveQuotes(t *testing.T) {
	now := time.Date(2026, 9, 18, 10, 0, 0, 0, time.UTC)
	quotes := []models.FreightQuote{
		{OrderQuoteID: "past", ValidityDate: "2026-09-15"},
		{OrderQuoteID: "today", ValidityDate: "2026-09-18"},
		{OrderQuoteID: "future", ValidityDate: "2026-10-01"},
		{OrderQuoteID: "flagged", ValidityDate: "2026-10-01", Expired: true},
		{OrderQuoteID: "undated"},
	}

	out := ActiveQuotes(quotes, now)
	got := quoteIDs(out)
	want := []string{"today", "future", "undated"}
	if !sameIDs(got, want) {
		t.Fatalf("active quotes = %v, want %v", got, want)
	}
}
