// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/Ritpra93/wanderlust/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
// Implementations wrap it with context; callers match with errors.Is.
var ErrNotFound = errors.New("not found")

// Store defines the persistence operations for Wanderlust. The
// abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// Updates to optimistic-locking records (itinerary items, polls) take
// an expectedUpdatedAt version: when non-nil, the write is a single
// conditional update that only commits if the persisted version still
// matches, and a lost race surfaces as *occ.Conflict. A nil version
// skips the check (force overwrite).
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Trips
	CreateTrip(ctx context.Context, trip *models.Trip) error
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
	ListTripsByUser(ctx context.Context, userID string) ([]*models.Trip, error)
	UpdateTrip(ctx context.Context, trip *models.Trip) error
	DeleteTrip(ctx context.Context, tripID string) error
	AddTripMembers(ctx context.Context, tripID string, userIDs []string) error
	RemoveTripMember(ctx context.Context, tripID, userID string) error

	// Expenses and settlements
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	ListExpensesByTrip(ctx context.Context, tripID string) ([]*models.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string) error
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	ListSettlementsByTrip(ctx context.Context, tripID string) ([]*models.Settlement, error)

	// Itinerary
	CreateItineraryItem(ctx context.Context, item *models.ItineraryItem) error
	GetItineraryItem(ctx context.Context, itemID string) (*models.ItineraryItem, error)
	ListItineraryByTrip(ctx context.Context, tripID string) ([]*models.ItineraryItem, error)
	UpdateItineraryItem(ctx context.Context, item *models.ItineraryItem, expectedUpdatedAt *int64) error
	DeleteItineraryItem(ctx context.Context, itemID string) error

	// Polls
	CreatePoll(ctx context.Context, poll *models.Poll) error
	GetPoll(ctx context.Context, pollID string) (*models.Poll, error)
	ListPollsByTrip(ctx context.Context, tripID string) ([]*models.Poll, error)
	UpdatePoll(ctx context.Context, poll *models.Poll, expectedUpdatedAt *int64) error
	CastVote(ctx context.Context, vote *models.Vote) error

	// Close releases any resources held by the store.
	Close() error
}
