package models

// ItineraryItem is a scheduled activity on a trip's itinerary.
//
// Items are shared mutable records: any member may edit them, so writes
// go through the optimistic-concurrency check keyed on UpdatedAt.
type ItineraryItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// TripID is the trip this item belongs to.
	TripID string `json:"tripId"`

	// Title is the activity name (e.g., "Belém Tower").
	Title string `json:"title"`

	// Notes is optional free-form detail.
	Notes string `json:"notes,omitempty"`

	// Location is an optional place name or address.
	Location string `json:"location,omitempty"`

	// Date is the ISO date (YYYY-MM-DD) the activity is planned for.
	Date string `json:"date"`

	// StartTime and EndTime are optional times of day (HH:MM).
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`

	// CreatedBy is the member who added the item.
	CreatedBy string `json:"createdBy"`

	// CreatedAt is the Unix timestamp when the item was added.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the Unix-microsecond timestamp of the last edit; it
	// is the version checked by the optimistic-concurrency protocol.
	UpdatedAt int64 `json:"updatedAt"`
}
