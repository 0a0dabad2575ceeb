package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ritpra93/wanderlust/internal/models"
	"github.com/Ritpra93/wanderlust/internal/occ"
	"github.com/Ritpra93/wanderlust/internal/storage"
)

func TestPollService_Create(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := seedUsers(t, store, 2)
	trip := seedTrip(t, store, users)
	svc := NewPollService(store)

	t.Run("valid poll opens with options in order", func(t *testing.T) {
		poll, err := svc.Create(ctx, users[0], trip.ID, "Which day for the museum?", []string{"Tuesday", "Wednesday"})
		require.NoError(t, err)
		assert.Equal(t, models.PollOpen, poll.Status)
		require.Len(t, poll.Options, 2)
		assert.Equal(t, "Tuesday", poll.Options[0].Label)
		assert.Equal(t, "Wednesday", poll.Options[1].Label)
	})

	t.Run("fewer than two options is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, users[0], trip.ID, "Question?", []string{"only one"})
		errs := fieldErrors(t, err)
		assert.True(t, hasFieldError(errs, "options"))
	})

	t.Run("empty question is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, users[0], trip.ID, "", []string{"a", "b"})
		errs := fieldErrors(t, err)
		assert.True(t, hasFieldError(errs, "question"))
	})
}

func TestPollService_Vote(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := seedUsers(t, store, 3)
	trip := seedTrip(t, store, users)
	svc := NewPollService(store)

	poll, err := svc.Create(ctx, users[0], trip.ID, "Dinner spot?", []string{"Ramiro", "Time Out Market"})
	require.NoError(t, err)

	t.Run("votes accumulate per option", func(t *testing.T) {
		_, err := svc.Vote(ctx, users[0], trip.ID, poll.ID, poll.Options[0].ID)
		require.NoError(t, err)
		updated, err := svc.Vote(ctx, users[1], trip.ID, poll.ID, poll.Options[1].ID)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.Options[0].Votes)
		assert.Equal(t, 1, updated.Options[1].Votes)
	})

	t.Run("re-voting moves the vote", func(t *testing.T) {
		updated, err := svc.Vote(ctx, users[0], trip.ID, poll.ID, poll.Options[1].ID)
		require.NoError(t, err)
		assert.Equal(t, 0, updated.Options[0].Votes)
		assert.Equal(t, 2, updated.Options[1].Votes)
	})

	t.Run("voting does not bump the poll version", func(t *testing.T) {
		current, err := svc.Get(ctx, users[0], trip.ID, poll.ID)
		require.NoError(t, err)
		assert.Equal(t, poll.UpdatedAt, current.UpdatedAt)
	})

	t.Run("foreign option is rejected", func(t *testing.T) {
		other, err := svc.Create(ctx, users[0], trip.ID, "Other poll?", []string{"x", "y"})
		require.NoError(t, err)
		_, err = svc.Vote(ctx, users[0], trip.ID, poll.ID, other.Options[0].ID)
		errs := fieldErrors(t, err)
		assert.True(t, hasFieldError(errs, "optionId"))
	})
}

func TestPollService_UpdateAndClose(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	users := seedUsers(t, store, 2)
	trip := seedTrip(t, store, users)
	svc := NewPollService(store)

	poll, err := svc.Create(ctx, users[0], trip.ID, "Beach day?", []string{"Saturday", "Sunday"})
	require.NoError(t, err)

	t.Run("stale close conflicts", func(t *testing.T) {
		stale := poll.UpdatedAt - 1
		closed := models.PollClosed
		_, err := svc.Update(ctx, users[1], trip.ID, poll.ID, UpdatePollParams{
			Status:          &closed,
			ClientUpdatedAt: &stale,
		})
		assert.True(t, occ.IsConflict(err))
	})

	t.Run("close with the current version succeeds", func(t *testing.T) {
		seen := poll.UpdatedAt
		closed := models.PollClosed
		updated, err := svc.Update(ctx, users[1], trip.ID, poll.ID, UpdatePollParams{
			Status:          &closed,
			ClientUpdatedAt: &seen,
		})
		require.NoError(t, err)
		assert.Equal(t, models.PollClosed, updated.Status)
		assert.Greater(t, updated.UpdatedAt, seen)
		// The response reflects the committed write, options included.
		require.Len(t, updated.Options, 2)
		poll = updated
	})

	t.Run("closed polls reject votes", func(t *testing.T) {
		_, err := svc.Vote(ctx, users[0], trip.ID, poll.ID, poll.Options[0].ID)
		errs := fieldErrors(t, err)
		assert.True(t, hasFieldError(errs, "pollId"))
	})

	t.Run("replacing options discards votes", func(t *testing.T) {
		open := models.PollOpen
		seen := poll.UpdatedAt
		updated, err := svc.Update(ctx, users[0], trip.ID, poll.ID, UpdatePollParams{
			Status:          &open,
			Options:         []string{"Friday", "Saturday", "Sunday"},
			ClientUpdatedAt: &seen,
		})
		require.NoError(t, err)
		require.Len(t, updated.Options, 3)
		for _, opt := range updated.Options {
			assert.Zero(t, opt.Votes)
		}
		poll = updated
	})

	t.Run("edit of a deleted poll conflicts when a version is supplied", func(t *testing.T) {
		seen := poll.UpdatedAt
		require.NoError(t, store.DeleteTrip(ctx, trip.ID))

		question := "Still here?"
		_, err := svc.Update(ctx, users[0], trip.ID, poll.ID, UpdatePollParams{
			Question:        &question,
			ClientUpdatedAt: &seen,
		})
		var conflict *occ.Conflict
		require.ErrorAs(t, err, &conflict)
		assert.Zero(t, conflict.ServerUpdatedAt)
		assert.Equal(t, seen, conflict.ClientUpdatedAt)

		// Without a version the caller gets plain not-found.
		_, err = svc.Update(ctx, users[0], trip.ID, poll.ID, UpdatePollParams{Question: &question})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
