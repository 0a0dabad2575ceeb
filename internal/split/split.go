// Package split implements the expense split engine: validation of a
// split strategy, computation of per-member shares that reconcile to
// the expense total to the cent, and aggregation of member balances.
//
// Everything here is a pure function over its inputs; callers persist
// the results.
package split

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Ritpra93/wanderlust/internal/models"
)

// centTolerance absorbs rounding when comparing user-supplied sums:
// deviations of 0.01 or more are rejected.
var centTolerance = decimal.New(1, -2)

var hundred = decimal.NewFromInt(100)

// FieldError is a single field-scoped validation failure, serializable
// for the calling form layer.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the full list of failures for one request. All
// applicable rules run; validation does not stop at the first failure.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Participant carries the strategy-specific data for one member of a
// split. Amount is read for CUSTOM splits, Percentage for PERCENTAGE
// splits; EQUAL uses only the UserID.
type Participant struct {
	UserID     string
	Amount     decimal.Decimal
	Percentage decimal.Decimal
}

// Input is a split request: the expense total, the chosen strategy,
// and the participant data that strategy needs.
type Input struct {
	Amount       decimal.Decimal
	Type         models.SplitType
	Participants []Participant
}

// rule is one named validation check. Rules run in order and each
// appends its failures; later rules may declare preconditions on
// earlier ones (e.g. totals are only checked once the strategy and
// participant list are known to be sane).
type rule struct {
	name  string
	check func(in Input) ValidationErrors
}

var rules = []rule{
	{"amount", checkAmount},
	{"split type", checkType},
	{"participants", checkParticipants},
	{"entries", checkEntries},
	{"totals", checkTotals},
}

// Validate runs every rule against the input and returns the combined
// field-error list, or nil if the split is acceptable.
func Validate(in Input) error {
	var errs ValidationErrors
	for _, r := range rules {
		errs = append(errs, r.check(in)...)
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func checkAmount(in Input) ValidationErrors {
	var errs ValidationErrors
	if !in.Amount.IsPositive() {
		errs = append(errs, FieldError{"amount", "must be a positive amount"})
	}
	if in.Amount.Exponent() < -2 {
		errs = append(errs, FieldError{"amount", "must have at most 2 decimal places"})
	}
	return errs
}

func checkType(in Input) ValidationErrors {
	if !in.Type.Valid() {
		return ValidationErrors{{"splitType", "must be one of EQUAL, CUSTOM, PERCENTAGE"}}
	}
	return nil
}

func checkParticipants(in Input) ValidationErrors {
	var errs ValidationErrors
	if len(in.Participants) == 0 {
		return ValidationErrors{{"participants", "at least one participant is required"}}
	}
	seen := make(map[string]bool, len(in.Participants))
	for i, p := range in.Participants {
		if p.UserID == "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("participants[%d].userId", i),
				Message: "userId is required",
			})
			continue
		}
		if seen[p.UserID] {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("participants[%d].userId", i),
				Message: "duplicate participant",
			})
		}
		seen[p.UserID] = true
	}
	return errs
}

func checkEntries(in Input) ValidationErrors {
	var errs ValidationErrors
	for i, p := range in.Participants {
		switch in.Type {
		case models.SplitCustom:
			if !p.Amount.IsPositive() {
				errs = append(errs, FieldError{
					Field:   fmt.Sprintf("participants[%d].amount", i),
					Message: "must be a positive amount",
				})
			}
		case models.SplitPercentage:
			if !p.Percentage.IsPositive() {
				errs = append(errs, FieldError{
					Field:   fmt.Sprintf("participants[%d].percentage", i),
					Message: "must be a positive percentage",
				})
			}
		}
	}
	return errs
}

// checkTotals verifies that user-supplied shares reconcile. It requires
// the strategy and participant list to have passed their own rules;
// otherwise a sum check would just repeat earlier failures.
func checkTotals(in Input) ValidationErrors {
	if !in.Type.Valid() || len(in.Participants) == 0 {
		return nil
	}
	switch in.Type {
	case models.SplitCustom:
		sum := decimal.Zero
		for _, p := range in.Participants {
			sum = sum.Add(p.Amount)
		}
		if sum.Sub(in.Amount).Abs().GreaterThanOrEqual(centTolerance) {
			return ValidationErrors{{"participants", "splits must equal total"}}
		}
	case models.SplitPercentage:
		sum := decimal.Zero
		for _, p := range in.Participants {
			sum = sum.Add(p.Percentage)
		}
		if sum.Sub(hundred).Abs().GreaterThanOrEqual(centTolerance) {
			return ValidationErrors{{"participants", "percentages must sum to 100"}}
		}
	}
	return nil
}

// Compute validates the input and produces one Split per participant.
//
// EQUAL and PERCENTAGE shares are rounded to 2 decimal places and the
// rounding residual is assigned to the first participant in input
// order, so the shares always sum to the amount exactly. CUSTOM shares
// are passed through unchanged.
func Compute(in Input) ([]models.Split, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	splits := make([]models.Split, len(in.Participants))
	for i, p := range in.Participants {
		splits[i] = models.Split{UserID: p.UserID}
	}

	switch in.Type {
	case models.SplitEqual:
		n := decimal.NewFromInt(int64(len(in.Participants)))
		base := in.Amount.Div(n).RoundDown(2)
		for i := range splits {
			splits[i].AmountOwed = base
		}
		// Leftover cents go to the first participant.
		residual := in.Amount.Sub(base.Mul(n))
		splits[0].AmountOwed = splits[0].AmountOwed.Add(residual)

	case models.SplitCustom:
		for i, p := range in.Participants {
			splits[i].AmountOwed = p.Amount
		}

	case models.SplitPercentage:
		sum := decimal.Zero
		for i, p := range in.Participants {
			share := in.Amount.Mul(p.Percentage).Div(hundred).Round(2)
			splits[i].AmountOwed = share
			sum = sum.Add(share)
		}
		// Per-share rounding can over- or under-shoot by a few cents;
		// the first participant absorbs the difference.
		residual := in.Amount.Sub(sum)
		splits[0].AmountOwed = splits[0].AmountOwed.Add(residual)
	}

	return splits, nil
}
