package models

// PollStatus is the lifecycle state of a poll.
type PollStatus string

const (
	PollOpen   PollStatus = "open"
	PollClosed PollStatus = "closed"
)

// Poll is a group decision within a trip ("Which day for the museum?").
//
// Polls are shared mutable records: edits and closing go through the
// optimistic-concurrency check keyed on UpdatedAt. Voting on an open
// poll does not bump the version; only edits to the poll itself do.
type Poll struct {
	// ID is the unique identifier for the poll (UUID format).
	ID string `json:"id"`

	// TripID is the trip this poll belongs to.
	TripID string `json:"tripId"`

	// Question is the text members vote on.
	Question string `json:"question"`

	// Status is open or closed. Closed polls reject votes.
	Status PollStatus `json:"status"`

	// Options are the choices, in creation order.
	Options []PollOption `json:"options"`

	// CreatedBy is the member who created the poll.
	CreatedBy string `json:"createdBy"`

	// CreatedAt is the Unix timestamp when the poll was created.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the Unix-microsecond timestamp of the last edit; it
	// is the version checked by the optimistic-concurrency protocol.
	UpdatedAt int64 `json:"updatedAt"`
}

// PollOption is one choice on a poll.
type PollOption struct {
	// ID is the unique identifier for the option (UUID format).
	ID string `json:"id"`

	// Label is the display text of the option.
	Label string `json:"label"`

	// Votes is the current vote count, populated on reads.
	Votes int `json:"votes"`
}

// Vote records one member's choice on a poll. A member has at most one
// vote per poll; re-voting moves it to the new option.
type Vote struct {
	PollID   string `json:"pollId"`
	OptionID string `json:"optionId"`
	UserID   string `json:"userId"`
}
