package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ritpra93/wanderlust/internal/models"
	"github.com/Ritpra93/wanderlust/internal/occ"
	"github.com/Ritpra93/wanderlust/internal/storage"
)

// CreatePoll persists a poll and its options in one transaction.
func (s *SQLiteStore) CreatePoll(ctx context.Context, poll *models.Poll) error {
	if poll.ID == "" {
		poll.ID = uuid.New().String()
	}
	if poll.CreatedAt == 0 {
		poll.CreatedAt = time.Now().Unix()
	}
	if poll.UpdatedAt == 0 {
		poll.UpdatedAt = occ.NextStamp(0)
	}
	if poll.Status == "" {
		poll.Status = models.PollOpen
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO polls (id, trip_id, question, status, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		poll.ID, poll.TripID, poll.Question, string(poll.Status), poll.CreatedBy, poll.CreatedAt, poll.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	for i := range poll.Options {
		opt := &poll.Options[i]
		if opt.ID == "" {
			opt.ID = uuid.New().String()
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO poll_options (id, poll_id, label, position) VALUES (?, ?, ?, ?)",
			opt.ID, poll.ID, opt.Label, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert poll option: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetPoll retrieves a poll by ID with its options and vote counts.
func (s *SQLiteStore) GetPoll(ctx context.Context, pollID string) (*models.Poll, error) {
	poll := &models.Poll{}
	var status string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, trip_id, question, status, created_by, created_at, updated_at
		 FROM polls WHERE id = ?`,
		pollID,
	).Scan(&poll.ID, &poll.TripID, &poll.Question, &status, &poll.CreatedBy, &poll.CreatedAt, &poll.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("poll %s: %w", pollID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}
	poll.Status = models.PollStatus(status)

	if err := s.attachOptions(ctx, []*models.Poll{poll}); err != nil {
		return nil, err
	}
	return poll, nil
}

// ListPollsByTrip retrieves all polls for a trip with options and vote
// counts, newest first.
func (s *SQLiteStore) ListPollsByTrip(ctx context.Context, tripID string) ([]*models.Poll, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, question, status, created_by, created_at, updated_at
		 FROM polls WHERE trip_id = ? ORDER BY created_at DESC, id`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	defer rows.Close()

	var polls []*models.Poll
	for rows.Next() {
		poll := &models.Poll{}
		var status string
		if err := rows.Scan(&poll.ID, &poll.TripID, &poll.Question, &status,
			&poll.CreatedBy, &poll.CreatedAt, &poll.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		poll.Status = models.PollStatus(status)
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate polls: %w", err)
	}

	if err := s.attachOptions(ctx, polls); err != nil {
		return nil, err
	}
	return polls, nil
}

// attachOptions loads options and vote counts for the given polls.
func (s *SQLiteStore) attachOptions(ctx context.Context, polls []*models.Poll) error {
	if len(polls) == 0 {
		return nil
	}

	byID := make(map[string]*models.Poll, len(polls))
	args := make([]any, len(polls))
	for i, p := range polls {
		byID[p.ID] = p
		args[i] = p.ID
	}

	query := `SELECT o.poll_id, o.id, o.label, COUNT(v.option_id)
		FROM poll_options o
		LEFT JOIN votes v ON v.option_id = o.id
		WHERE o.poll_id IN (` + placeholders(len(polls)) + `)
		GROUP BY o.id
		ORDER BY o.poll_id, o.position`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to get poll options: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pollID string
		var opt models.PollOption
		if err := rows.Scan(&pollID, &opt.ID, &opt.Label, &opt.Votes); err != nil {
			return fmt.Errorf("failed to scan poll option: %w", err)
		}
		if p, ok := byID[pollID]; ok {
			p.Options = append(p.Options, opt)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate poll options: %w", err)
	}
	return nil
}

// UpdatePoll writes the poll's question, status, and new version, and
// replaces its options when the update carries any. As with itinerary
// items, a non-nil expectedUpdatedAt makes the write a conditional
// UPDATE on (id, updated_at).
func (s *SQLiteStore) UpdatePoll(ctx context.Context, poll *models.Poll, expectedUpdatedAt *int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "UPDATE polls SET question = ?, status = ?, updated_at = ? WHERE id = ?"
	args := []any{poll.Question, string(poll.Status), poll.UpdatedAt, poll.ID}
	if expectedUpdatedAt != nil {
		query += " AND updated_at = ?"
		args = append(args, *expectedUpdatedAt)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update poll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return s.versionMismatch(ctx, "polls", poll.ID, expectedUpdatedAt)
	}

	if len(poll.Options) > 0 {
		// Replacing options invalidates existing votes along with them.
		if _, err := tx.ExecContext(ctx, "DELETE FROM poll_options WHERE poll_id = ?", poll.ID); err != nil {
			return fmt.Errorf("failed to clear poll options: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM votes WHERE poll_id = ?", poll.ID); err != nil {
			return fmt.Errorf("failed to clear poll votes: %w", err)
		}
		for i := range poll.Options {
			opt := &poll.Options[i]
			if opt.ID == "" {
				opt.ID = uuid.New().String()
			}
			_, err = tx.ExecContext(ctx,
				"INSERT INTO poll_options (id, poll_id, label, position) VALUES (?, ?, ?, ?)",
				opt.ID, poll.ID, opt.Label, i,
			)
			if err != nil {
				return fmt.Errorf("failed to insert poll option: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CastVote records a member's vote, replacing any previous vote by the
// same member on the same poll.
func (s *SQLiteStore) CastVote(ctx context.Context, vote *models.Vote) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO votes (poll_id, user_id, option_id) VALUES (?, ?, ?)
		 ON CONFLICT(poll_id, user_id) DO UPDATE SET option_id = excluded.option_id`,
		vote.PollID, vote.UserID, vote.OptionID,
	)
	if err != nil {
		return fmt.Errorf("failed to cast vote: %w", err)
	}
	return nil
}
