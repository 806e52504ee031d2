package repository

import (
	"fmt"
	"unicode/utf8"

	"backend/models"
)

// allowedTransitions is the order status machine. An order is created
// in-progress (awaiting quotes and selection); completed, pending and
// cancelled are terminal. Selection is one-way: there is no path back out of
// completed, so an agent cannot be unselected.
var allowedTransitions = map[string]map[string]bool{
	models.StatusInProgress: {
		models.StatusCompleted: true,
		models.StatusPending:   true,
		models.StatusCancelled: true,
	},
	models.StatusPending:   {},
	models.StatusCompleted: {},
	models.StatusCancelled: {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	return allowedTransitions[from][to]
}

// ApplyTransition moves the order to the target status, or fails without
// mutating it when the transition is not allowed.
func ApplyTransition(order *models.Order, to string) error {
	if !CanTransition(order.Status, to) {
		return fmt.Errorf("cannot transition order %s from %s to %s", order.OrderNumber, order.Status, to)
	}
	order.Status = to
	return nil
}

// Cancellation reasons are free text but bounded: long enough to mean
// something, short enough for the notification email subject line.
const (
	MinCancelReasonLen = 5
	MaxCancelReasonLen = 200
)

// ValidCancelReason accepts reasons of 5 to 200 characters inclusive. The
// bounds count characters, not bytes, so non-ASCII reasons measure the same
// as what the user typed.
func ValidCancelReason(reason string) bool {
	n := utf8.RuneCountInString(reason)
	return n >= MinCancelReasonLen && n <= MaxCancelReasonLen
}
