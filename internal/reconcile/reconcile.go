// Package reconcile holds the lease date rules and the derivation of a
// property's occupancy status from its leases.
package reconcile

import (
	"time"

	"rental-service/internal/apperr"
	"rental-service/internal/model"
)

const (
	MsgStartInPast    = "start date cannot be in the past."
	MsgInvalidEndDate = "invalid end date."
)

// Clock returns the current instant
type Clock func() time.Time

// Today returns the calendar day of clock() in loc as a UTC midnight
func Today(clock Clock, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return model.Day(clock().In(loc))
}

// ValidateDates checks the save-time invariants of a lease date range.
// All arguments are calendar days.
func ValidateDates(start, end, today time.Time) error {
	v := &apperr.ValidationError{}
	if start.Before(today) {
		v.Add("start_date", MsgStartInPast)
	}
	if end.Before(today) || end.Before(start) {
		v.Add("end_date", MsgInvalidEndDate)
	}
	return v.OrNil()
}

// ActiveOn reports whether a lease counts as active on day
func ActiveOn(lease model.Lease, day time.Time) bool {
	if !lease.ActiveLease {
		return false
	}
	return !day.Before(lease.Start()) && !day.After(lease.End())
}

// Options tune PropertyStatus
type Options struct {
	// PreserveRenovation keeps an under_renovation status untouched.
	PreserveRenovation bool
}

// PropertyStatus derives the status of a property after saved was written.
// others must hold the remaining leases of the same property; saved itself is
// skipped if present.
func PropertyStatus(current model.PropertyStatus, saved model.Lease, others []model.Lease, today time.Time, opts Options) model.PropertyStatus {
	if opts.PreserveRenovation && current == model.StatusUnderRenovation {
		return current
	}
	if ActiveOn(saved, today) {
		return model.StatusRented
	}
	for _, other := range others {
		if other.ID == saved.ID {
			continue
		}
		if ActiveOn(other, today) {
			return model.StatusRented
		}
	}
	return model.StatusAvailable
}

// StatusFromLeases derives a status when no particular lease is being saved,
// e.g. after a deletion.
func StatusFromLeases(current model.PropertyStatus, leases []model.Lease, today time.Time, opts Options) model.PropertyStatus {
	if opts.PreserveRenovation && current == model.StatusUnderRenovation {
		return current
	}
	for _, lease := range leases {
		if ActiveOn(lease, today) {
			return model.StatusRented
		}
	}
	return model.StatusAvailable
}
