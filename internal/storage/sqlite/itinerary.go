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

// CreateItineraryItem persists a new itinerary item.
func (s *SQLiteStore) CreateItineraryItem(ctx context.Context, item *models.ItineraryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt == 0 {
		item.CreatedAt = time.Now().Unix()
	}
	if item.UpdatedAt == 0 {
		item.UpdatedAt = occ.NextStamp(0)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO itinerary_items (id, trip_id, title, notes, location, date, start_time, end_time, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.TripID, item.Title, item.Notes, item.Location, item.Date,
		item.StartTime, item.EndTime, item.CreatedBy, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert itinerary item: %w", err)
	}
	return nil
}

// GetItineraryItem retrieves one itinerary item by ID.
func (s *SQLiteStore) GetItineraryItem(ctx context.Context, itemID string) (*models.ItineraryItem, error) {
	item := &models.ItineraryItem{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, trip_id, title, notes, location, date, start_time, end_time, created_by, created_at, updated_at
		 FROM itinerary_items WHERE id = ?`,
		itemID,
	).Scan(&item.ID, &item.TripID, &item.Title, &item.Notes, &item.Location, &item.Date,
		&item.StartTime, &item.EndTime, &item.CreatedBy, &item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("itinerary item %s: %w", itemID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get itinerary item: %w", err)
	}
	return item, nil
}

// ListItineraryByTrip retrieves a trip's itinerary ordered by date and
// start time.
func (s *SQLiteStore) ListItineraryByTrip(ctx context.Context, tripID string) ([]*models.ItineraryItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, title, notes, location, date, start_time, end_time, created_by, created_at, updated_at
		 FROM itinerary_items WHERE trip_id = ? ORDER BY date, start_time, created_at`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list itinerary: %w", err)
	}
	defer rows.Close()

	var items []*models.ItineraryItem
	for rows.Next() {
		item := &models.ItineraryItem{}
		if err := rows.Scan(&item.ID, &item.TripID, &item.Title, &item.Notes, &item.Location, &item.Date,
			&item.StartTime, &item.EndTime, &item.CreatedBy, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan itinerary item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate itinerary items: %w", err)
	}
	return items, nil
}

// UpdateItineraryItem writes the item's fields and new version. With a
// non-nil expectedUpdatedAt the write is a single conditional UPDATE on
// (id, updated_at), so the compare-and-swap is atomic at the database:
// there is no separate read inside the race window. Zero rows affected
// is re-read once only to distinguish a vanished row from a version
// mismatch.
func (s *SQLiteStore) UpdateItineraryItem(ctx context.Context, item *models.ItineraryItem, expectedUpdatedAt *int64) error {
	query := `UPDATE itinerary_items
		SET title = ?, notes = ?, location = ?, date = ?, start_time = ?, end_time = ?, updated_at = ?
		WHERE id = ?`
	args := []any{item.Title, item.Notes, item.Location, item.Date, item.StartTime, item.EndTime, item.UpdatedAt, item.ID}
	if expectedUpdatedAt != nil {
		query += " AND updated_at = ?"
		args = append(args, *expectedUpdatedAt)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update itinerary item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return s.versionMismatch(ctx, "itinerary_items", item.ID, expectedUpdatedAt)
	}
	return nil
}

// versionMismatch explains a conditional update that matched no rows:
// either the record is gone (not found) or its version moved on
// (conflict carrying the current server version).
func (s *SQLiteStore) versionMismatch(ctx context.Context, table, id string, expected *int64) error {
	var current int64
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT updated_at FROM %s WHERE id = ?", table), id,
	).Scan(&current)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%s %s: %w", table, id, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read current version: %w", err)
	}
	if expected == nil {
		// Unconditional update that matched no rows, yet the row
		// exists now: it reappeared mid-flight. Report not found.
		return fmt.Errorf("%s %s: %w", table, id, storage.ErrNotFound)
	}
	return &occ.Conflict{ServerUpdatedAt: current, ClientUpdatedAt: *expected}
}

// DeleteItineraryItem removes an itinerary item.
func (s *SQLiteStore) DeleteItineraryItem(ctx context.Context, itemID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM itinerary_items WHERE id = ?", itemID)
	if err != nil {
		return fmt.Errorf("failed to delete itinerary item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("itinerary item %s: %w", itemID, storage.ErrNotFound)
	}
	return nil
}
