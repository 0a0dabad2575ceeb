package api

import (
	"net/http"

	"github.com/Ritpra93/wanderlust/internal/middleware"
	"github.com/Ritpra93/wanderlust/internal/models"
	"github.com/Ritpra93/wanderlust/internal/service"
)

func (s *Server) handleCreatePoll(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if !s.decode(w, r, &req) {
		return
	}

	poll, err := s.polls.Create(r.Context(),
		middleware.GetUserID(r.Context()), r.PathValue("id"), req.Question, req.Options)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, poll)
}

func (s *Server) handleListPolls(w http.ResponseWriter, r *http.Request) {
	polls, err := s.polls.List(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, polls)
}

func (s *Server) handleGetPoll(w http.ResponseWriter, r *http.Request) {
	poll, err := s.polls.Get(r.Context(),
		middleware.GetUserID(r.Context()), r.PathValue("id"), r.PathValue("pollId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, poll)
}

func (s *Server) handleUpdatePoll(w http.ResponseWriter, r *http.Request) {
	var req updatePollRequest
	if !s.decode(w, r, &req) {
		return
	}

	params := service.UpdatePollParams{
		Question:        req.Question,
		Options:         req.Options,
		ClientUpdatedAt: req.UpdatedAt,
	}
	if req.Status != nil {
		status := models.PollStatus(*req.Status)
		params.Status = &status
	}

	poll, err := s.polls.Update(r.Context(),
		middleware.GetUserID(r.Context()), r.PathValue("id"), r.PathValue("pollId"), params)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, poll)
}

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if !s.decode(w, r, &req) {
		return
	}

	poll, err := s.polls.Vote(r.Context(),
		middleware.GetUserID(r.Context()), r.PathValue("id"), r.PathValue("pollId"), req.OptionID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, poll)
}
