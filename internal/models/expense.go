package models

import "github.com/shopspring/decimal"

// SplitType selects how an expense is divided among participants.
type SplitType string

const (
	SplitEqual      SplitType = "EQUAL"
	SplitCustom     SplitType = "CUSTOM"
	SplitPercentage SplitType = "PERCENTAGE"
)

// Valid reports whether the split type is one of the known strategies.
func (s SplitType) Valid() bool {
	switch s {
	case SplitEqual, SplitCustom, SplitPercentage:
		return true
	}
	return false
}

// ExpenseCategory classifies an expense for summaries and filtering.
type ExpenseCategory string

const (
	CategoryFood       ExpenseCategory = "food"
	CategoryTransport  ExpenseCategory = "transport"
	CategoryLodging    ExpenseCategory = "lodging"
	CategoryActivities ExpenseCategory = "activities"
	CategoryShopping   ExpenseCategory = "shopping"
	CategoryOther      ExpenseCategory = "other"
)

// Valid reports whether the category is a known value.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryLodging,
		CategoryActivities, CategoryShopping, CategoryOther:
		return true
	}
	return false
}

// Expense represents a shared cost within a trip.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// TripID is the trip this expense belongs to.
	TripID string `json:"tripId"`

	// Title is the human-readable description (e.g., "Dinner at Cervejaria").
	Title string `json:"title"`

	// Amount is the total expense amount, 2-decimal precision.
	Amount decimal.Decimal `json:"amount"`

	// Currency is the ISO 4217 code; always matches the trip currency.
	Currency string `json:"currency"`

	// Category classifies the expense.
	Category ExpenseCategory `json:"category"`

	// SplitType records the strategy used to divide the amount.
	SplitType SplitType `json:"splitType"`

	// PayerID is the member who paid the full amount.
	PayerID string `json:"payerId"`

	// PaidAt is the Unix timestamp when the expense was paid.
	PaidAt int64 `json:"paidAt"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"createdAt"`

	// Splits is the per-member division. Their amounts always sum to
	// Amount exactly; the split package guarantees this.
	Splits []Split `json:"splits"`
}

// Split is one member's assigned share of an expense.
type Split struct {
	// ExpenseID is the expense this share belongs to.
	ExpenseID string `json:"expenseId"`

	// UserID is the member who owes this share.
	UserID string `json:"userId"`

	// AmountOwed is the member's share, 2-decimal precision.
	AmountOwed decimal.Decimal `json:"amountOwed"`
}

// Settlement represents a payment between trip members to clear debts.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"id"`

	// TripID is the trip this settlement belongs to.
	TripID string `json:"tripId"`

	// FromUserID is the member who paid (debtor settling up).
	FromUserID string `json:"fromUserId"`

	// ToUserID is the member who received payment.
	ToUserID string `json:"toUserId"`

	// Amount is the payment amount.
	Amount decimal.Decimal `json:"amount"`

	// Note is an optional description.
	Note string `json:"note,omitempty"`

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64 `json:"createdAt"`

	// CreatedBy is the user who recorded it.
	CreatedBy string `json:"createdBy"`
}

// Balance is the derived net position of one trip member. It is
// computed on demand from expenses, splits, and settlements; never
// persisted.
type Balance struct {
	// UserID identifies the member.
	UserID string `json:"userId"`

	// TotalPaid is the sum of expense amounts this member paid for,
	// plus settlements they sent.
	TotalPaid decimal.Decimal `json:"totalPaid"`

	// TotalOwed is the sum of this member's split shares, plus
	// settlements they received.
	TotalOwed decimal.Decimal `json:"totalOwed"`

	// Net is TotalPaid - TotalOwed. Positive means the group owes the
	// member; negative means the member owes the group.
	Net decimal.Decimal `json:"balance"`
}

// Settled reports whether the balance is within a cent of zero.
func (b Balance) Settled() bool {
	return b.Net.Abs().LessThan(decimal.NewFromFloat(0.01))
}

// Transfer is a suggested payment that reduces group debt.
type Transfer struct {
	// FromUserID is the member who should pay.
	FromUserID string `json:"fromUserId"`

	// ToUserID is the member who should be paid.
	ToUserID string `json:"toUserId"`

	// Amount is the suggested payment amount.
	Amount decimal.Decimal `json:"amount"`
}
