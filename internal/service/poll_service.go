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

// PollService manages trip polls and voting. Poll edits and closing go
// through the optimistic-concurrency check; voting on an open poll does
// not bump the poll's version.
type PollService struct {
	store storage.Store
}

// NewPollService creates a new PollService with the given storage backend.
func NewPollService(store storage.Store) *PollService {
	return &PollService{store: store}
}

// Create opens a new poll with the given question and options.
func (s *PollService) Create(ctx context.Context, userID, tripID, question string, optionLabels []string) (*models.Poll, error) {
	if _, err := memberTrip(ctx, s.store, tripID, userID); err != nil {
		return nil, err
	}

	var errs split.ValidationErrors
	if question == "" {
		errs = append(errs, split.FieldError{Field: "question", Message: "is required"})
	}
	if len(optionLabels) < 2 {
		errs = append(errs, split.FieldError{Field: "options", Message: "a poll needs at least two options"})
	}
	for i, label := range optionLabels {
		if label == "" {
			errs = append(errs, split.FieldError{
				Field:   fmt.Sprintf("options[%d]", i),
				Message: "is required",
			})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	options := make([]models.PollOption, len(optionLabels))
	for i, label := range optionLabels {
		options[i] = models.PollOption{Label: label}
	}

	poll := &models.Poll{
		TripID:    tripID,
		Question:  question,
		Status:    models.PollOpen,
		Options:   options,
		CreatedBy: userID,
	}
	if err := s.store.CreatePoll(ctx, poll); err != nil {
		slog.Error("CreatePoll failed", "trip_id", tripID, "error", err)
		return nil, err
	}

	slog.Info("Poll created", "trip_id", tripID, "poll_id", poll.ID)
	return poll, nil
}

// List retrieves a trip's polls with vote counts.
func (s *PollService) List(ctx context.Context, userID, tripID string) ([]*models.Poll, error) {
	if _, err := memberTrip(ctx, s.store, tripID, userID); err != nil {
		return nil, err
	}
	return s.store.ListPollsByTrip(ctx, tripID)
}

// Get retrieves one poll with vote counts.
func (s *PollService) Get(ctx context.Context, userID, tripID, pollID string) (*models.Poll, error) {
	return s.get(ctx, userID, tripID, pollID)
}

// UpdatePollParams carries the optional changes of a poll edit plus the
// client's last-seen version. Replacing Options discards existing votes.
type UpdatePollParams struct {
	Question        *string
	Status          *models.PollStatus
	Options         []string
	ClientUpdatedAt *int64
}

// Update edits or closes a poll. The write succeeds only if the stored
// version still matches ClientUpdatedAt; otherwise the caller gets an
// occ.Conflict with both stamps so it can reconcile. A poll deleted
// since the client's read conflicts too (server stamp zero); only an
// exact version match succeeds.
func (s *PollService) Update(ctx context.Context, userID, tripID, pollID string, params UpdatePollParams) (*models.Poll, error) {
	poll, err := s.get(ctx, userID, tripID, pollID)
	if err != nil {
		return nil, conflictOnMissing(err, params.ClientUpdatedAt)
	}
	if err := occ.Check(poll.UpdatedAt, params.ClientUpdatedAt); err != nil {
		slog.Info("Poll edit conflict", "poll_id", pollID, "error", err)
		return nil, err
	}

	var errs split.ValidationErrors
	if params.Status != nil && *params.Status != models.PollOpen && *params.Status != models.PollClosed {
		errs = append(errs, split.FieldError{Field: "status", Message: "must be open or closed"})
	}
	if params.Options != nil && len(params.Options) < 2 {
		errs = append(errs, split.FieldError{Field: "options", Message: "a poll needs at least two options"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	if params.Question != nil {
		poll.Question = *params.Question
	}
	if params.Status != nil {
		poll.Status = *params.Status
	}
	existing := poll.Options
	if params.Options != nil {
		options := make([]models.PollOption, len(params.Options))
		for i, label := range params.Options {
			options[i] = models.PollOption{Label: label}
		}
		poll.Options = options
	} else {
		// Signal the store to leave the options and votes alone.
		poll.Options = nil
	}

	expected := poll.UpdatedAt
	poll.UpdatedAt = occ.NextStamp(expected)

	if err := s.store.UpdatePoll(ctx, poll, &expected); err != nil {
		err = conflictOnMissing(err, params.ClientUpdatedAt)
		if occ.IsConflict(err) {
			slog.Info("Poll edit lost race", "poll_id", pollID, "error", err)
		} else {
			slog.Error("UpdatePoll failed", "poll_id", pollID, "error", err)
		}
		return nil, err
	}

	// Return what was just committed rather than re-reading: a re-read
	// could pick up a concurrent writer's newer version. Replacement
	// options got their IDs (and zero votes) from the store; an update
	// that left the options alone keeps the set read above.
	if poll.Options == nil {
		poll.Options = existing
	}
	return poll, nil
}

// Vote records the caller's choice on an open poll. A member has one
// vote per poll; voting again moves it to the new option.
func (s *PollService) Vote(ctx context.Context, userID, tripID, pollID, optionID string) (*models.Poll, error) {
	poll, err := s.get(ctx, userID, tripID, pollID)
	if err != nil {
		return nil, err
	}
	if poll.Status != models.PollOpen {
		return nil, split.ValidationErrors{{Field: "pollId", Message: "poll is closed"}}
	}

	valid := false
	for _, opt := range poll.Options {
		if opt.ID == optionID {
			valid = true
			break
		}
	}
	if !valid {
		return nil, split.ValidationErrors{{Field: "optionId", Message: "option does not belong to this poll"}}
	}

	vote := &models.Vote{PollID: pollID, OptionID: optionID, UserID: userID}
	if err := s.store.CastVote(ctx, vote); err != nil {
		slog.Error("CastVote failed", "poll_id", pollID, "error", err)
		return nil, err
	}

	slog.Info("Vote cast", "poll_id", pollID, "user_id", userID)
	return s.store.GetPoll(ctx, pollID)
}

func (s *PollService) get(ctx context.Context, userID, tripID, pollID string) (*models.Poll, error) {
	if _, err := memberTrip(ctx, s.store, tripID, userID); err != nil {
		return nil, err
	}
	poll, err := s.store.GetPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if poll.TripID != tripID {
		return nil, fmt.Errorf("poll %s: %w", pollID, storage.ErrNotFound)
	}
	return poll, nil
}
