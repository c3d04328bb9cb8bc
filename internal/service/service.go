// Package service orchestrates repositories and the reconciliation rule
// inside database transactions.
package service

import (
	"fmt"
	"math"
	"time"

	"rental-service/internal/apperr"
	"rental-service/internal/reconcile"
	"rental-service/prometheus"
)

// Settings are shared by all services
type Settings struct {
	Clock              reconcile.Clock
	Location           *time.Location
	PreserveRenovation bool
}

func (s Settings) today() time.Time {
	clock := s.Clock
	if clock == nil {
		clock = time.Now
	}
	return reconcile.Today(clock, s.Location)
}

func (s Settings) options() reconcile.Options {
	return reconcile.Options{PreserveRenovation: s.PreserveRenovation}
}

func round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

func invalidPK(field string, id uint) *apperr.ValidationError {
	return apperr.NewValidationError(field, fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
}

func recordValidationFailures(err error) {
	if verr, ok := err.(*apperr.ValidationError); ok {
		for field := range verr.Fields {
			prometheus.RecordLeaseValidationFailure(field)
		}
	}
}
