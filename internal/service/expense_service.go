package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Ritpra93/wanderlust/internal/models"
	"github.com/Ritpra93/wanderlust/internal/split"
	"github.com/Ritpra93/wanderlust/internal/storage"
)

// ExpenseService manages trip expenses, settlements, and balances.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpenseParams are the caller-supplied fields of a new expense.
type CreateExpenseParams struct {
	Title        string
	Amount       decimal.Decimal
	Currency     string
	Category     models.ExpenseCategory
	SplitType    models.SplitType
	PayerID      string
	PaidAt       int64
	Participants []split.Participant
}

// Create validates the split strategy, computes the per-member shares,
// and persists the expense with its splits in one transaction.
func (s *ExpenseService) Create(ctx context.Context, userID, tripID string, params CreateExpenseParams) (*models.Expense, error) {
	trip, err := memberTrip(ctx, s.store, tripID, userID)
	if err != nil {
		return nil, err
	}

	if verrs := s.checkExpenseRefs(trip, params); len(verrs) > 0 {
		return nil, verrs
	}

	splits, err := split.Compute(split.Input{
		Amount:       params.Amount,
		Type:         params.SplitType,
		Participants: params.Participants,
	})
	if err != nil {
		slog.Warn("Expense split rejected", "trip_id", tripID, "error", err)
		return nil, err
	}

	expense := &models.Expense{
		TripID:    tripID,
		Title:     params.Title,
		Amount:    params.Amount,
		Currency:  trip.Currency,
		Category:  params.Category,
		SplitType: params.SplitType,
		PayerID:   params.PayerID,
		PaidAt:    params.PaidAt,
		Splits:    splits,
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "trip_id", tripID, "error", err)
		return nil, err
	}

	slog.Info("Expense created",
		"trip_id", tripID,
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"split_type", expense.SplitType,
	)
	return expense, nil
}

// checkExpenseRefs validates the parts of an expense that depend on the
// trip: category, currency, and that payer and participants are members.
func (s *ExpenseService) checkExpenseRefs(trip *models.Trip, params CreateExpenseParams) split.ValidationErrors {
	var errs split.ValidationErrors
	if !params.Category.Valid() {
		errs = append(errs, split.FieldError{Field: "category", Message: "unknown category"})
	}
	if params.Currency != "" && params.Currency != trip.Currency {
		errs = append(errs, split.FieldError{
			Field:   "currency",
			Message: fmt.Sprintf("trip is tracked in %s; mixed currencies are not supported", trip.Currency),
		})
	}
	if !trip.HasMember(params.PayerID) {
		errs = append(errs, split.FieldError{Field: "payerId", Message: "payer must be a trip member"})
	}
	for i, p := range params.Participants {
		if p.UserID != "" && !trip.HasMember(p.UserID) {
			errs = append(errs, split.FieldError{
				Field:   fmt.Sprintf("participants[%d].userId", i),
				Message: "participant must be a trip member",
			})
		}
	}
	return errs
}

// Get retrieves one expense; the caller must be a trip member.
func (s *ExpenseService) Get(ctx context.Context, userID, tripID, expenseID string) (*models.Expense, error) {
	if _, err := memberTrip(ctx, s.store, tripID, userID); err != nil {
		return nil, err
	}
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.TripID != tripID {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return expense, nil
}

// List retrieves all of a trip's expenses with splits.
func (s *ExpenseService) List(ctx context.Context, userID, tripID string) ([]*models.Expense, error) {
	if _, err := memberTrip(ctx, s.store, tripID, userID); err != nil {
		return nil, err
	}
	return s.store.ListExpensesByTrip(ctx, tripID)
}

// Delete removes an expense. Any trip member may delete.
func (s *ExpenseService) Delete(ctx context.Context, userID, tripID, expenseID string) error {
	if _, err := s.Get(ctx, userID, tripID, expenseID); err != nil {
		return err
	}
	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expenseID, "error", err)
		return err
	}
	slog.Info("Expense deleted", "trip_id", tripID, "expense_id", expenseID, "user_id", userID)
	return nil
}

// Balances aggregates the trip's expenses and settlements into one
// balance per member plus a suggested transfer list that would settle
// the group.
func (s *ExpenseService) Balances(ctx context.Context, userID, tripID string) ([]models.Balance, []models.Transfer, error) {
	trip, err := memberTrip(ctx, s.store, tripID, userID)
	if err != nil {
		return nil, nil, err
	}

	expensePtrs, err := s.store.ListExpensesByTrip(ctx, tripID)
	if err != nil {
		return nil, nil, err
	}
	settlementPtrs, err := s.store.ListSettlementsByTrip(ctx, tripID)
	if err != nil {
		return nil, nil, err
	}

	expenses := make([]models.Expense, len(expensePtrs))
	for i, e := range expensePtrs {
		expenses[i] = *e
	}
	settlements := make([]models.Settlement, len(settlementPtrs))
	for i, st := range settlementPtrs {
		settlements[i] = *st
	}

	balances := split.ComputeBalances(expenses, settlements, trip.MemberIDs)
	transfers := split.SuggestSettlements(balances)
	return balances, transfers, nil
}

// RecordSettlementParams are the caller-supplied fields of a settlement.
type RecordSettlementParams struct {
	FromUserID string
	ToUserID   string
	Amount     decimal.Decimal
	Note       string
}

// RecordSettlement records a payment between two members.
func (s *ExpenseService) RecordSettlement(ctx context.Context, userID, tripID string, params RecordSettlementParams) (*models.Settlement, error) {
	trip, err := memberTrip(ctx, s.store, tripID, userID)
	if err != nil {
		return nil, err
	}

	var errs split.ValidationErrors
	if !params.Amount.IsPositive() {
		errs = append(errs, split.FieldError{Field: "amount", Message: "must be a positive amount"})
	}
	if !trip.HasMember(params.FromUserID) {
		errs = append(errs, split.FieldError{Field: "fromUserId", Message: "must be a trip member"})
	}
	if !trip.HasMember(params.ToUserID) {
		errs = append(errs, split.FieldError{Field: "toUserId", Message: "must be a trip member"})
	}
	if params.FromUserID == params.ToUserID {
		errs = append(errs, split.FieldError{Field: "toUserId", Message: "cannot settle with yourself"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	settlement := &models.Settlement{
		TripID:     tripID,
		FromUserID: params.FromUserID,
		ToUserID:   params.ToUserID,
		Amount:     params.Amount,
		Note:       params.Note,
		CreatedBy:  userID,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("CreateSettlement failed", "trip_id", tripID, "error", err)
		return nil, err
	}

	slog.Info("Settlement recorded",
		"trip_id", tripID,
		"from", params.FromUserID,
		"to", params.ToUserID,
		"amount", params.Amount,
	)
	return settlement, nil
}

// ListSettlements retrieves a trip's recorded settlements.
func (s *ExpenseService) ListSettlements(ctx context.Context, userID, tripID string) ([]*models.Settlement, error) {
	if _, err := memberTrip(ctx, s.store, tripID, userID); err != nil {
		return nil, err
	}
	return s.store.ListSettlementsByTrip(ctx, tripID)
}
