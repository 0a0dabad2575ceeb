package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ritpra93/wanderlust/internal/occ"
	"github.com/Ritpra93/wanderlust/internal/storage"
)

func strPtr(s string) *string { return &s }

func TestItineraryService_AddAndList(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := seedUsers(t, store, 2)
	trip := seedTrip(t, store, users)
	svc := NewItineraryService(store)

	_, err := svc.Add(ctx, users[0], trip.ID, ItineraryItemParams{
		Title: "Belém Tower", Date: "2026-09-02", StartTime: "10:00",
	})
	require.NoError(t, err)
	_, err = svc.Add(ctx, users[1], trip.ID, ItineraryItemParams{
		Title: "Arrival", Date: "2026-09-01",
	})
	require.NoError(t, err)

	items, err := svc.List(ctx, users[0], trip.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Arrival", items[0].Title)
	assert.Equal(t, "Belém Tower", items[1].Title)
}

func TestItineraryService_Update(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := seedUsers(t, store, 2)
	trip := seedTrip(t, store, users)
	svc := NewItineraryService(store)

	item, err := svc.Add(ctx, users[0], trip.ID, ItineraryItemParams{
		Title: "Museum", Date: "2026-09-03",
	})
	require.NoError(t, err)

	t.Run("edit with the current version succeeds", func(t *testing.T) {
		seen := item.UpdatedAt
		updated, err := svc.Update(ctx, users[1], trip.ID, item.ID, UpdateItineraryParams{
			Title:           strPtr("MAAT Museum"),
			ClientUpdatedAt: &seen,
		})
		require.NoError(t, err)
		assert.Equal(t, "MAAT Museum", updated.Title)
		assert.Greater(t, updated.UpdatedAt, seen)
		item = updated
	})

	t.Run("stale edit conflicts and reports both stamps", func(t *testing.T) {
		stale := item.UpdatedAt - 1
		_, err := svc.Update(ctx, users[0], trip.ID, item.ID, UpdateItineraryParams{
			Title:           strPtr("Aquarium"),
			ClientUpdatedAt: &stale,
		})
		require.True(t, occ.IsConflict(err))

		var conflict *occ.Conflict
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, item.UpdatedAt, conflict.ServerUpdatedAt)
		assert.Equal(t, stale, conflict.ClientUpdatedAt)

		// Nothing changed.
		current, err := svc.List(ctx, users[0], trip.ID)
		require.NoError(t, err)
		assert.Equal(t, "MAAT Museum", current[0].Title)
	})

	t.Run("nil version forces the overwrite", func(t *testing.T) {
		updated, err := svc.Update(ctx, users[0], trip.ID, item.ID, UpdateItineraryParams{
			Notes: strPtr("buy tickets online"),
		})
		require.NoError(t, err)
		assert.Equal(t, "buy tickets online", updated.Notes)
		assert.Equal(t, "MAAT Museum", updated.Title)
	})
}

func TestItineraryService_UpdateAfterDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := seedUsers(t, store, 2)
	trip := seedTrip(t, store, users)
	svc := NewItineraryService(store)

	item, err := svc.Add(ctx, users[0], trip.ID, ItineraryItemParams{
		Title: "Sunset sail", Date: "2026-09-05",
	})
	require.NoError(t, err)
	seen := item.UpdatedAt
	require.NoError(t, svc.Delete(ctx, users[1], trip.ID, item.ID))

	t.Run("edit with a version conflicts", func(t *testing.T) {
		_, err := svc.Update(ctx, users[0], trip.ID, item.ID, UpdateItineraryParams{
			Title:           strPtr("Sunset sail (rebooked)"),
			ClientUpdatedAt: &seen,
		})
		var conflict *occ.Conflict
		require.ErrorAs(t, err, &conflict)
		assert.Zero(t, conflict.ServerUpdatedAt)
		assert.Equal(t, seen, conflict.ClientUpdatedAt)
	})

	t.Run("edit without a version is not found", func(t *testing.T) {
		_, err := svc.Update(ctx, users[0], trip.ID, item.ID, UpdateItineraryParams{
			Title: strPtr("Sunset sail (rebooked)"),
		})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestItineraryService_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := seedUsers(t, store, 3)
	trip := seedTrip(t, store, users[:2])
	svc := NewItineraryService(store)

	item, err := svc.Add(ctx, users[0], trip.ID, ItineraryItemParams{
		Title: "Dinner", Date: "2026-09-04",
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, users[2], trip.ID, item.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(ctx, users[1], trip.ID, item.ID))
	items, err := svc.List(ctx, users[0], trip.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
