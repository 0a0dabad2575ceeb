// Package service implements the application services invoked by the
// HTTP layer. Services enforce trip membership, run the pure split and
// concurrency checks, and persist results through storage.Store.
package service

import (
	"context"
	"errors"

	"github.com/Ritpra93/wanderlust/internal/models"
	"github.com/Ritpra93/wanderlust/internal/occ"
	"github.com/Ritpra93/wanderlust/internal/storage"
)

// ErrForbidden is returned when the caller is not allowed to act on the
// resource (not a trip member, or not the owner where required).
var ErrForbidden = errors.New("you must be a trip member to perform this action")

// ErrOwnerOnly is returned when an operation is restricted to the trip owner.
var ErrOwnerOnly = errors.New("only the trip owner may perform this action")

// conflictOnMissing reports a vanished record as an edit conflict when
// the caller supplied a version stamp: to that client the record did
// not fail to exist, it changed out from under them after their read.
// A zero ServerUpdatedAt marks the deleted case. Callers without a
// stamp get the original not-found.
func conflictOnMissing(err error, clientUpdatedAt *int64) error {
	if clientUpdatedAt != nil && errors.Is(err, storage.ErrNotFound) {
		return &occ.Conflict{ClientUpdatedAt: *clientUpdatedAt}
	}
	return err
}

// memberTrip loads a trip and verifies the user belongs to it.
func memberTrip(ctx context.Context, store storage.Store, tripID, userID string) (*models.Trip, error) {
	trip, err := store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !trip.HasMember(userID) {
		return nil, ErrForbidden
	}
	return trip, nil
}
