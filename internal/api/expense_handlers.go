package api

import (
	"net/http"

	"github.com/Ritpra93/wanderlust/internal/middleware"
	"github.com/Ritpra93/wanderlust/internal/models"
	"github.com/Ritpra93/wanderlust/internal/service"
	"github.com/Ritpra93/wanderlust/internal/split"
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if !s.decode(w, r, &req) {
		return
	}

	participants := make([]split.Participant, len(req.Participants))
	for i, p := range req.Participants {
		participants[i] = split.Participant{
			UserID:     p.UserID,
			Amount:     p.Amount,
			Percentage: p.Percentage,
		}
	}

	expense, err := s.expenses.Create(r.Context(),
		middleware.GetUserID(r.Context()), r.PathValue("id"),
		service.CreateExpenseParams{
			Title:        req.Title,
			Amount:       req.Amount,
			Currency:     req.Currency,
			Category:     models.ExpenseCategory(req.Category),
			SplitType:    models.SplitType(req.SplitType),
			PayerID:      req.PayerID,
			PaidAt:       req.PaidAt,
			Participants: participants,
		})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.List(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := s.expenses.Get(r.Context(),
		middleware.GetUserID(r.Context()), r.PathValue("id"), r.PathValue("expenseId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expense)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	err := s.expenses.Delete(r.Context(),
		middleware.GetUserID(r.Context()), r.PathValue("id"), r.PathValue("expenseId"))
	if err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// balancesResponse pairs per-member balances with the transfers that
// would settle the group.
type balancesResponse struct {
	Balances  []models.Balance  `json:"balances"`
	Suggested []models.Transfer `json:"suggestedSettlements"`
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	balances, transfers, err := s.expenses.Balances(r.Context(),
		middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, balancesResponse{Balances: balances, Suggested: transfers})
}

func (s *Server) handleRecordSettlement(w http.ResponseWriter, r *http.Request) {
	var req recordSettlementRequest
	if !s.decode(w, r, &req) {
		return
	}

	settlement, err := s.expenses.RecordSettlement(r.Context(),
		middleware.GetUserID(r.Context()), r.PathValue("id"),
		service.RecordSettlementParams{
			FromUserID: req.FromUserID,
			ToUserID:   req.ToUserID,
			Amount:     req.Amount,
			Note:       req.Note,
		})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, settlement)
}

func (s *Server) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := s.expenses.ListSettlements(r.Context(),
		middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settlements)
}
