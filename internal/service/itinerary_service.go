package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Ritpra93/wanderlust/internal/models"
	"github.com/Ritpra93/wanderlust/internal/occ"
	"github.com/Ritpra93/wanderlust/internal/storage"
)

// ItineraryService manages trip itinerary items. Items are shared
// mutable records, so edits carry the client's last-seen UpdatedAt and
// stale writes surface as conflicts instead of silently overwriting.
type ItineraryService struct {
	store storage.Store
}

// NewItineraryService creates a new ItineraryService with the given storage backend.
func NewItineraryService(store storage.Store) *ItineraryService {
	return &ItineraryService{store: store}
}

// ItineraryItemParams are the caller-supplied fields of an itinerary item.
type ItineraryItemParams struct {
	Title     string
	Notes     string
	Location  string
	Date      string
	StartTime string
	EndTime   string
}

// Add creates a new itinerary item on the trip.
func (s *ItineraryService) Add(ctx context.Context, userID, tripID string, params ItineraryItemParams) (*models.ItineraryItem, error) {
	if _, err := memberTrip(ctx, s.store, tripID, userID); err != nil {
		return nil, err
	}

	item := &models.ItineraryItem{
		TripID:    tripID,
		Title:     params.Title,
		Notes:     params.Notes,
		Location:  params.Location,
		Date:      params.Date,
		StartTime: params.StartTime,
		EndTime:   params.EndTime,
		CreatedBy: userID,
	}
	if err := s.store.CreateItineraryItem(ctx, item); err != nil {
		slog.Error("CreateItineraryItem failed", "trip_id", tripID, "error", err)
		return nil, err
	}

	slog.Info("Itinerary item added", "trip_id", tripID, "item_id", item.ID, "date", item.Date)
	return item, nil
}

// List retrieves a trip's itinerary ordered by date and start time.
func (s *ItineraryService) List(ctx context.Context, userID, tripID string) ([]*models.ItineraryItem, error) {
	if _, err := memberTrip(ctx, s.store, tripID, userID); err != nil {
		return nil, err
	}
	return s.store.ListItineraryByTrip(ctx, tripID)
}

// UpdateItineraryParams carries the optional field changes of an item
// edit plus the client's last-seen version. Nil pointers leave the
// current value untouched; a nil ClientUpdatedAt skips the version
// check and overwrites unconditionally.
type UpdateItineraryParams struct {
	Title           *string
	Notes           *string
	Location        *string
	Date            *string
	StartTime       *string
	EndTime         *string
	ClientUpdatedAt *int64
}

// Update edits an itinerary item. The write succeeds only if the
// stored version still matches ClientUpdatedAt; otherwise the caller
// gets an occ.Conflict with both stamps so it can reconcile. An item
// deleted since the client's read conflicts too (server stamp zero);
// only an exact version match succeeds.
func (s *ItineraryService) Update(ctx context.Context, userID, tripID, itemID string, params UpdateItineraryParams) (*models.ItineraryItem, error) {
	item, err := s.get(ctx, userID, tripID, itemID)
	if err != nil {
		return nil, conflictOnMissing(err, params.ClientUpdatedAt)
	}
	if err := occ.Check(item.UpdatedAt, params.ClientUpdatedAt); err != nil {
		slog.Info("Itinerary edit conflict", "item_id", itemID, "error", err)
		return nil, err
	}

	if params.Title != nil {
		item.Title = *params.Title
	}
	if params.Notes != nil {
		item.Notes = *params.Notes
	}
	if params.Location != nil {
		item.Location = *params.Location
	}
	if params.Date != nil {
		item.Date = *params.Date
	}
	if params.StartTime != nil {
		item.StartTime = *params.StartTime
	}
	if params.EndTime != nil {
		item.EndTime = *params.EndTime
	}

	expected := item.UpdatedAt
	item.UpdatedAt = occ.NextStamp(expected)

	// The store re-checks the version inside the UPDATE itself, so a
	// write that raced past the check above still cannot clobber.
	if err := s.store.UpdateItineraryItem(ctx, item, &expected); err != nil {
		err = conflictOnMissing(err, params.ClientUpdatedAt)
		if occ.IsConflict(err) {
			slog.Info("Itinerary edit lost race", "item_id", itemID, "error", err)
		} else {
			slog.Error("UpdateItineraryItem failed", "item_id", itemID, "error", err)
		}
		return nil, err
	}
	return item, nil
}

// Delete removes an itinerary item. Any trip member may delete.
func (s *ItineraryService) Delete(ctx context.Context, userID, tripID, itemID string) error {
	if _, err := s.get(ctx, userID, tripID, itemID); err != nil {
		return err
	}
	if err := s.store.DeleteItineraryItem(ctx, itemID); err != nil {
		slog.Error("DeleteItineraryItem failed", "item_id", itemID, "error", err)
		return err
	}
	slog.Info("Itinerary item deleted", "trip_id", tripID, "item_id", itemID, "user_id", userID)
	return nil
}

func (s *ItineraryService) get(ctx context.Context, userID, tripID, itemID string) (*models.ItineraryItem, error) {
	if _, err := memberTrip(ctx, s.store, tripID, userID); err != nil {
		return nil, err
	}
	item, err := s.store.GetItineraryItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.TripID != tripID {
		return nil, fmt.Errorf("itinerary item %s: %w", itemID, storage.ErrNotFound)
	}
	return item, nil
}
