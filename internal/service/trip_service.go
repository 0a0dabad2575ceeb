package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Ritpra93/wanderlust/internal/models"
	"github.com/Ritpra93/wanderlust/internal/occ"
	"github.com/Ritpra93/wanderlust/internal/split"
	"github.com/Ritpra93/wanderlust/internal/storage"
)

// TripService manages trips and their membership.
type TripService struct {
	store storage.Store
}

// NewTripService creates a new TripService with the given storage backend.
func NewTripService(store storage.Store) *TripService {
	return &TripService{store: store}
}

// CreateTripParams are the caller-supplied fields of a new trip.
type CreateTripParams struct {
	Name        string
	Description string
	Destination string
	Currency    string
	StartDate   string
	EndDate     string
	MemberIDs   []string
}

// Create creates a trip owned by ownerID. The owner is always a member.
func (s *TripService) Create(ctx context.Context, ownerID string, params CreateTripParams) (*models.Trip, error) {
	members := append([]string{ownerID}, params.MemberIDs...)
	if err := s.checkUsersExist(ctx, params.MemberIDs); err != nil {
		return nil, err
	}

	trip := &models.Trip{
		Name:        params.Name,
		Description: params.Description,
		Destination: params.Destination,
		Currency:    params.Currency,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		OwnerID:     ownerID,
		MemberIDs:   members,
	}

	if err := s.store.CreateTrip(ctx, trip); err != nil {
		slog.Error("CreateTrip failed", "error", err)
		return nil, err
	}

	slog.Info("Trip created", "trip_id", trip.ID, "owner_id", ownerID)
	return trip, nil
}

// Get retrieves a trip; the caller must be a member.
func (s *TripService) Get(ctx context.Context, userID, tripID string) (*models.Trip, error) {
	return memberTrip(ctx, s.store, tripID, userID)
}

// ListMine retrieves all trips the user belongs to.
func (s *TripService) ListMine(ctx context.Context, userID string) ([]*models.Trip, error) {
	return s.store.ListTripsByUser(ctx, userID)
}

// UpdateTripParams carries the optional field changes of a trip edit.
// Nil pointers leave the current value untouched.
type UpdateTripParams struct {
	Name        *string
	Description *string
	Destination *string
	StartDate   *string
	EndDate     *string
}

// Update edits a trip's details. Any member may edit; the currency is
// immutable because recorded expenses depend on it.
func (s *TripService) Update(ctx context.Context, userID, tripID string, params UpdateTripParams) (*models.Trip, error) {
	trip, err := memberTrip(ctx, s.store, tripID, userID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		trip.Name = *params.Name
	}
	if params.Description != nil {
		trip.Description = *params.Description
	}
	if params.Destination != nil {
		trip.Destination = *params.Destination
	}
	if params.StartDate != nil {
		trip.StartDate = *params.StartDate
	}
	if params.EndDate != nil {
		trip.EndDate = *params.EndDate
	}
	trip.UpdatedAt = occ.NextStamp(trip.UpdatedAt)

	if err := s.store.UpdateTrip(ctx, trip); err != nil {
		slog.Error("UpdateTrip failed", "trip_id", tripID, "error", err)
		return nil, err
	}
	return trip, nil
}

// Delete removes a trip and everything in it. Owner only.
func (s *TripService) Delete(ctx context.Context, userID, tripID string) error {
	trip, err := memberTrip(ctx, s.store, tripID, userID)
	if err != nil {
		return err
	}
	if trip.OwnerID != userID {
		return ErrOwnerOnly
	}

	if err := s.store.DeleteTrip(ctx, tripID); err != nil {
		slog.Error("DeleteTrip failed", "trip_id", tripID, "error", err)
		return err
	}
	slog.Info("Trip deleted", "trip_id", tripID, "user_id", userID)
	return nil
}

// AddMembers adds registered users to a trip. Any member may invite.
func (s *TripService) AddMembers(ctx context.Context, userID, tripID string, memberIDs []string) (*models.Trip, error) {
	if _, err := memberTrip(ctx, s.store, tripID, userID); err != nil {
		return nil, err
	}
	if len(memberIDs) == 0 {
		return nil, split.ValidationErrors{{Field: "memberIds", Message: "at least one member is required"}}
	}
	if err := s.checkUsersExist(ctx, memberIDs); err != nil {
		return nil, err
	}

	if err := s.store.AddTripMembers(ctx, tripID, memberIDs); err != nil {
		slog.Error("AddTripMembers failed", "trip_id", tripID, "error", err)
		return nil, err
	}
	slog.Info("Members added", "trip_id", tripID, "count", len(memberIDs))
	return s.store.GetTrip(ctx, tripID)
}

// RemoveMember removes a member. Members may leave on their own; only
// the owner may remove someone else, and the owner cannot be removed.
func (s *TripService) RemoveMember(ctx context.Context, userID, tripID, targetID string) error {
	trip, err := memberTrip(ctx, s.store, tripID, userID)
	if err != nil {
		return err
	}
	if targetID != userID && trip.OwnerID != userID {
		return ErrOwnerOnly
	}
	if targetID == trip.OwnerID {
		return split.ValidationErrors{{Field: "userId", Message: "the trip owner cannot be removed"}}
	}

	if err := s.store.RemoveTripMember(ctx, tripID, targetID); err != nil {
		return err
	}
	slog.Info("Member removed", "trip_id", tripID, "user_id", targetID)
	return nil
}

// checkUsersExist verifies every referenced user ID is registered,
// reporting unknown IDs as field errors.
func (s *TripService) checkUsersExist(ctx context.Context, userIDs []string) error {
	var errs split.ValidationErrors
	for i, id := range userIDs {
		user, err := s.store.GetUserByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			errs = append(errs, split.FieldError{
				Field:   fmt.Sprintf("memberIds[%d]", i),
				Message: "unknown user",
			})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
