package models

// Trip represents a group trip being planned together.
//
// A trip has exactly one currency; every expense recorded against the
// trip must use it. Mixed-currency trips are intentionally unsupported.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string `json:"id"`

	// Name is the display name of the trip (e.g., "Lisbon 2026").
	Name string `json:"name"`

	// Description is an optional free-form summary.
	Description string `json:"description,omitempty"`

	// Destination is the primary destination of the trip.
	Destination string `json:"destination"`

	// Currency is the ISO 4217 code all trip expenses are recorded in.
	Currency string `json:"currency"`

	// StartDate and EndDate are ISO dates (YYYY-MM-DD). Optional.
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`

	// OwnerID is the user who created the trip. Only the owner may
	// delete the trip or remove other members.
	OwnerID string `json:"ownerId"`

	// MemberIDs is the list of user IDs participating in the trip,
	// always including the owner.
	MemberIDs []string `json:"memberIds"`

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the Unix-microsecond timestamp of the last edit.
	UpdatedAt int64 `json:"updatedAt"`
}

// HasMember reports whether the user is a member of the trip.
func (t *Trip) HasMember(userID string) bool {
	for _, id := range t.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}
