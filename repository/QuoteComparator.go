package repository

import (
	"sort"
	"strings"
	"time"

	"backend/models"
)

// fieldKind picks the comparator for a quote field. Numeric and date fields
// must never fall back to string comparison: "9" would sort after "10".
type fieldKind int

const (
	kindString fieldKind = iota
	kindNumeric
	kindDate
)

// quoteFieldKinds is the comparator selection table for every sortable
// FreightQuote field. Unknown fields compare as strings.
var quoteFieldKinds = map[string]fieldKind{
	"netFreight":        kindNumeric,
	"awbFee":            kindNumeric,
	"totalFreight":      kindNumeric,
	"doFee":             kindNumeric,
	"dthc":              kindNumeric,
	"validityDate":      kindDate,
	"Agent":             kindString,
	"carrier":           kindString,
	"transitTime":       kindString,
	"freeTime":          kindString,
	"transShipmentPort": kindString,
	"vesselOrFlight":    kindString,
	"createdUser":       kindString,
}

func numericValue(q models.FreightQuote, field string) float64 {
	switch field {
	case "netFreight":
		return q.NetFreight
	case "awbFee":
		return q.AWBFee
	case "totalFreight":
		return q.TotalFreight
	case "doFee":
		return q.DOFee
	case "dthc":
		return q.DTHC
	}
	return 0
}

func stringValue(q models.FreightQuote, field string) string {
	switch field {
	case "Agent":
		return q.Agent
	case "carrier":
		return q.Carrier
	case "transitTime":
		return q.TransitTime
	case "freeTime":
		return q.FreeTime
	case "transShipmentPort":
		return q.TransShipmentPort
	case "vesselOrFlight":
		return q.VesselOrFlight
	case "createdUser":
		return q.CreatedUser
	case "validityDate":
		return q.ValidityDate
	}
	return ""
}

// lessQuotes reports whether a sorts before b on field, ascending.
func lessQuotes(a, b models.FreightQuote, field string) bool {
	switch quoteFieldKinds[field] {
	case kindNumeric:
		return numericValue(a, field) < numericValue(b, field)
	case kindDate:
		ta, errA := time.Parse("2006-01-02", stringValue(a, field))
		tb, errB := time.Parse("2006-01-02", stringValue(b, field))
		if errA == nil && errB == nil {
			return ta.Before(tb)
		}
		// Unparseable dates degrade to string order rather than panicking
		// the listing.
		return stringValue(a, field) < stringValue(b, field)
	default:
		return strings.Compare(stringValue(a, field), stringValue(b, field)) < 0
	}
}

// SortState tracks the comparison view's current sort column and direction.
type SortState struct {
	Field      string
	Descending bool
}

// Apply implements the column-header toggle: the same field twice flips
// ascending to descending, a new field resets to ascending.
func (s *SortState) Apply(field string) {
	if s.Field == field {
		s.Descending = !s.Descending
		return
	}
	s.Field = field
	s.Descending = false
}

// SortQuotes orders quotes by the sort state using the per-field comparator.
// Descending is a stable sort with the comparator negated: ties keep their
// prior relative order in both directions, so toggling a column reverses the
// sequence only where the field values differ.
func SortQuotes(quotes []models.FreightQuote, state SortState) {
	if state.Field == "" {
		return
	}
	sort.SliceStable(quotes, func(i, j int) bool {
		if state.Descending {
			return lessQuotes(quotes[j], quotes[i], state.Field)
		}
		return lessQuotes(quotes[i], quotes[j], state.Field)
	})
}

// ExcludingSelected returns the display sequence without the already-selected
// quote, so the comparison view never re-lists the chosen bid. With no
// matching ID the input comes back length-preserved.
func ExcludingSelected(quotes []models.FreightQuote, selectedQuoteID string) []models.FreightQuote {
	if selectedQuoteID == "" {
		return quotes
	}
	out := make([]models.FreightQuote, 0, len(quotes))
	for _, q := range quotes {
		if q.OrderQuoteID == selectedQuoteID {
			continue
		}
		out = append(out, q)
	}
	return out
}

// ActiveQuotes filters out quotes whose validity date has passed or that the
// expiry sweep has already flagged. Quotes without a validity date never
// expire.
func ActiveQuotes(quotes []models.FreightQuote, now time.Time) []models.FreightQuote {
	out := make([]models.FreightQuote, 0, len(quotes))
	for _, q := range quotes {
		if q.Expired {
			continue
		}
		if q.ValidityDate != "" {
			if d, err := time.Parse("2006-01-02", q.ValidityDate); err == nil && d.Before(now.Truncate(24*time.Hour)) {
				continue
			}
		}
		out = append(out, q)
	}
	return out
}
