package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ritpra93/wanderlust/internal/models"
	"github.com/Ritpra93/wanderlust/internal/split"
	"github.com/Ritpra93/wanderlust/internal/storage"
	"github.com/Ritpra93/wanderlust/internal/storage/sqlite"
)

// newTestStore opens a fresh SQLite store in a temp directory.
func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// seedUsers registers n users and returns their IDs in creation order.
func seedUsers(t *testing.T, store storage.Store, n int) []string {
	t.Helper()
	ids := make([]string, n)
	for i := range ids {
		user := models.NewUser(
			fmt.Sprintf("user%d@example.com", i),
			fmt.Sprintf("User %d", i),
			"not-a-real-hash",
		)
		require.NoError(t, store.CreateUser(context.Background(), user))
		ids[i] = user.ID
	}
	return ids
}

// seedTrip creates a trip owned by users[0] with all users as members.
func seedTrip(t *testing.T, store storage.Store, users []string) *models.Trip {
	t.Helper()
	trip := &models.Trip{
		Name:      "Lisbon",
		Currency:  "EUR",
		OwnerID:   users[0],
		MemberIDs: users,
	}
	require.NoError(t, store.CreateTrip(context.Background(), trip))
	return trip
}

func fieldErrors(t *testing.T, err error) split.ValidationErrors {
	t.Helper()
	var verrs split.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	return verrs
}

func hasFieldError(errs split.ValidationErrors, field string) bool {
	for _, fe := range errs {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func TestTripService_Create(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := seedUsers(t, store, 3)
	svc := NewTripService(store)

	t.Run("owner is always a member", func(t *testing.T) {
		trip, err := svc.Create(ctx, users[0], CreateTripParams{
			Name:      "Lisbon",
			Currency:  "EUR",
			MemberIDs: []string{users[1]},
		})
		require.NoError(t, err)
		assert.Equal(t, users[0], trip.OwnerID)
		assert.True(t, trip.HasMember(users[0]))
		assert.True(t, trip.HasMember(users[1]))
		assert.False(t, trip.HasMember(users[2]))
	})

	t.Run("unknown member is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, users[0], CreateTripParams{
			Name:      "Lisbon",
			Currency:  "EUR",
			MemberIDs: []string{"no-such-user"},
		})
		errs := fieldErrors(t, err)
		assert.True(t, hasFieldError(errs, "memberIds[0]"))
	})
}

func TestTripService_Membership(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := seedUsers(t, store, 4)
	svc := NewTripService(store)
	trip := seedTrip(t, store, users[:2])

	t.Run("non-member cannot read the trip", func(t *testing.T) {
		_, err := svc.Get(ctx, users[2], trip.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("any member can invite registered users", func(t *testing.T) {
		updated, err := svc.AddMembers(ctx, users[1], trip.ID, []string{users[2]})
		require.NoError(t, err)
		assert.True(t, updated.HasMember(users[2]))
	})

	t.Run("only the owner removes others", func(t *testing.T) {
		err := svc.RemoveMember(ctx, users[1], trip.ID, users[2])
		assert.ErrorIs(t, err, ErrOwnerOnly)

		require.NoError(t, svc.RemoveMember(ctx, users[0], trip.ID, users[2]))
	})

	t.Run("members may leave on their own", func(t *testing.T) {
		require.NoError(t, svc.RemoveMember(ctx, users[1], trip.ID, users[1]))
		updated, err := svc.Get(ctx, users[0], trip.ID)
		require.NoError(t, err)
		assert.False(t, updated.HasMember(users[1]))
	})

	t.Run("the owner cannot be removed", func(t *testing.T) {
		err := svc.RemoveMember(ctx, users[0], trip.ID, users[0])
		errs := fieldErrors(t, err)
		assert.True(t, hasFieldError(errs, "userId"))
	})
}

func TestTripService_Update(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := seedUsers(t, store, 2)
	svc := NewTripService(store)
	trip := seedTrip(t, store, users)

	name := "Lisbon & Porto"
	updated, err := svc.Update(ctx, users[1], trip.ID, UpdateTripParams{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Lisbon & Porto", updated.Name)
	assert.Greater(t, updated.UpdatedAt, trip.UpdatedAt)

	// Currency stays what it was at creation.
	assert.Equal(t, "EUR", updated.Currency)
}

func TestTripService_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := seedUsers(t, store, 2)
	svc := NewTripService(store)
	trip := seedTrip(t, store, users)

	err := svc.Delete(ctx, users[1], trip.ID)
	assert.ErrorIs(t, err, ErrOwnerOnly)

	require.NoError(t, svc.Delete(ctx, users[0], trip.ID))
	_, err = svc.Get(ctx, users[0], trip.ID)
	assert.True(t, errors.Is(err, storage.ErrNotFound))
}
